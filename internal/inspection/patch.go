// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package inspection

// Patch is a partial update applied to many records at once. Nil fields are
// left unchanged.
type Patch struct {
	Status        *Status        `json:"status,omitempty"           validate:"omitempty,enum"`
	PaymentMethod *PaymentMethod `json:"paymentMethod,omitempty"    validate:"omitempty,enum"`
	RecordStatus  *RecordStatus  `json:"status_ficha,omitempty"     validate:"omitempty,enum"`
	PaymentStatus *PaymentStatus `json:"status_pagamento,omitempty" validate:"omitempty,enum"`
	NFe           *string        `json:"nfe,omitempty"`
	Inspector     *string        `json:"inspector,omitempty"`
	PaymentDate   *string        `json:"data_pagamento,omitempty"   validate:"omitempty,datetime=2006-01-02"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.PaymentMethod == nil &&
		p.RecordStatus == nil &&
		p.PaymentStatus == nil &&
		p.NFe == nil &&
		p.Inspector == nil &&
		p.PaymentDate == nil
}

// Apply returns a copy of r with the patch merged over it.
func (p Patch) Apply(
	r Inspection,
) Inspection {
	out := r.Clone()

	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		out.PaymentMethod = *p.PaymentMethod
	}
	if p.RecordStatus != nil {
		out.RecordStatus = *p.RecordStatus
	}
	if p.PaymentStatus != nil {
		out.PaymentStatus = *p.PaymentStatus
	}
	if p.NFe != nil {
		out.NFe = *p.NFe
	}
	if p.Inspector != nil {
		out.Inspector = *p.Inspector
	}
	if p.PaymentDate != nil {
		out.PaymentDate = *p.PaymentDate
	}

	return out
}

// SettlesPayment reports whether the patch completes the workflow or picks
// a payment method other than MethodToBePaid.
func (p Patch) SettlesPayment() bool {
	if p.Status != nil && *p.Status == StatusCompleted {
		return true
	}

	return p.PaymentMethod != nil && p.PaymentMethod.SettlesPayment()
}
