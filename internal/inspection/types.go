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

// Package inspection defines inspection records ("fichas") and their storage
// contract.
package inspection

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// RecordStatus is the completeness state of a record (status_ficha).
type RecordStatus string

// RecordStatus values.
const (
	RecordIncomplete RecordStatus = "Incompleta"
	RecordComplete   RecordStatus = "Completa"
)

// Valid reports whether s is a known value.
func (s RecordStatus) Valid() bool {
	return s == RecordIncomplete || s == RecordComplete
}

// PaymentStatus is the payment state of a record (status_pagamento).
type PaymentStatus string

// PaymentStatus values.
const (
	PaymentPending PaymentStatus = "A pagar"
	PaymentPaid    PaymentStatus = "Pago"
)

// Valid reports whether s is a known value.
func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid
}

// Status is the overall workflow state of a record.
type Status string

// Status values.
const (
	StatusInProgress Status = "Em andamento"
	StatusAtCashier  Status = "No Caixa"
	StatusCompleted  Status = "Concluída"
)

// Valid reports whether s is a known value.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusAtCashier, StatusCompleted:
		return true
	}
	return false
}

// PaymentMethod is how the client pays.
type PaymentMethod string

// PaymentMethod values. MethodToBePaid means payment is still outstanding.
const (
	MethodPIX      PaymentMethod = "PIX"
	MethodDebit    PaymentMethod = "Débito"
	MethodCredit   PaymentMethod = "Crédito"
	MethodCash     PaymentMethod = "Dinheiro"
	MethodToBePaid PaymentMethod = "A Pagar"
)

// Valid reports whether m is a known value.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodPIX, MethodDebit, MethodCredit, MethodCash, MethodToBePaid:
		return true
	}
	return false
}

// SettlesPayment reports whether choosing m marks the record as paid.
func (m PaymentMethod) SettlesPayment() bool {
	return m != "" && m != MethodToBePaid
}

// Client is the customer attached to an inspection.
type Client struct {
	Name    string `json:"name"`
	CPF     string `json:"cpf"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	CEP     string `json:"cep"`
	Number  string `json:"number"`
}

// Inspection is one vehicle inspection event.
type Inspection struct {
	ID               string          `json:"id"                       validate:"required,record_id"`
	Date             string          `json:"date"                     validate:"omitempty,datetime=2006-01-02"`
	VehicleModel     string          `json:"vehicleModel"`
	LicensePlate     string          `json:"licensePlate"             validate:"required"`
	SelectedServices []string        `json:"selectedServices"`
	IndicationID     string          `json:"indicationId,omitempty"`
	IndicationName   string          `json:"indicationName,omitempty"`
	Client           Client          `json:"client"`
	Inspector        string          `json:"inspector"`
	TotalValue       decimal.Decimal `json:"totalValue"               validate:"gte=0"`
	PaymentMethod    PaymentMethod   `json:"paymentMethod,omitempty"  validate:"omitempty,enum"`
	RecordStatus     RecordStatus    `json:"status_ficha"             validate:"required,enum"`
	PaymentStatus    PaymentStatus   `json:"status_pagamento"         validate:"required,enum"`
	Status           Status          `json:"status"                   validate:"required,enum"`
	Month            string          `json:"mes_referencia"           validate:"required,month_key"`
	NFe              string          `json:"nfe,omitempty"`
	PaymentDate      string          `json:"data_pagamento,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Key returns the storage key.
func (i Inspection) Key() string {
	return i.ID
}

// ViolatesPaymentInvariant reports a paid record that is not complete.
func (i Inspection) ViolatesPaymentInvariant() bool {
	return i.PaymentStatus == PaymentPaid && i.RecordStatus != RecordComplete
}

// Clone returns a deep copy.
func (i Inspection) Clone() Inspection {
	c := i
	if i.SelectedServices != nil {
		c.SelectedServices = append([]string(nil), i.SelectedServices...)
	}

	return c
}

// ApplyDefaults fills workflow states and the billing month when absent.
// The month is derived from Date.
func (i *Inspection) ApplyDefaults() {
	if i.RecordStatus == "" {
		i.RecordStatus = RecordIncomplete
	}
	if i.PaymentStatus == "" {
		i.PaymentStatus = PaymentPending
	}
	if i.Status == "" {
		i.Status = StatusInProgress
	}
	if i.Month == "" && len(i.Date) >= 7 {
		i.Month = i.Date[:7]
	}
}
