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

// Package catalog manages the service price list and the referrers
// ("indicações") attached to inspections.
package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a catalog item does not exist.
	ErrNotFound = errors.New("catalog item not found")
	// ErrInvalid is returned when a catalog item fails validation.
	ErrInvalid = errors.New("invalid catalog item")
)

// Service is one billable inspection service.
type Service struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"                  validate:"required"`
	Price                 decimal.Decimal `json:"price"                 validate:"gte=0"`
	Description           string          `json:"description"`
	AllowManualClientEdit bool            `json:"allowManualClientEdit"`
}

// Key returns the storage key.
func (s Service) Key() string {
	return s.ID
}

// Indication is a referrer that sends clients to the company.
type Indication struct {
	ID           string `json:"id"`
	Name         string `json:"name"         validate:"required"`
	Document     string `json:"document"`
	Phone        string `json:"phone"`
	Email        string `json:"email"        validate:"omitempty,email"`
	CEP          string `json:"cep"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
}

// Key returns the storage key.
func (i Indication) Key() string {
	return i.ID
}

// DefaultServices is the price list installed on an empty catalog.
func DefaultServices() []Service {
	return []Service{
		{
			ID:                    "1",
			Name:                  "Laudo de Transferência",
			Price:                 decimal.NewFromInt(100),
			Description:           "Laudo obrigatório para transferência.",
			AllowManualClientEdit: true,
		},
		{
			ID:                    "2",
			Name:                  "Laudo Cautelar",
			Price:                 decimal.NewFromInt(250),
			Description:           "Análise completa da estrutura.",
			AllowManualClientEdit: true,
		},
		{
			ID:                    "3",
			Name:                  "Laudo de Revistoria",
			Price:                 decimal.NewFromInt(80),
			Description:           "Reavaliação de itens apontados em laudo anterior.",
			AllowManualClientEdit: true,
		},
		{
			ID:          "4",
			Name:        "Vistoria Prévia",
			Price:       decimal.NewFromInt(150),
			Description: "Para seguradoras.",
		},
		{
			ID:          "5",
			Name:        "Pesquisa",
			Price:       decimal.NewFromInt(50),
			Description: "Pesquisa de débitos e restrições.",
		},
		{
			ID:          "6",
			Name:        "Prevenscan",
			Price:       decimal.NewFromInt(300),
			Description: "Scanner completo.",
		},
	}
}
