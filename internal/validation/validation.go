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

// Package validation provides a shared validator instance with the
// service's custom tags registered.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var instance = newValidator()

var (
	monthKeyRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	recordIDRe = regexp.MustCompile(`^[A-Za-z0-9_=-]{1,128}$`)
)

// customHints maps validator tags to a hint appended to the default error.
var customHints = map[string]func(fe validator.FieldError) string{
	"month_key": func(fe validator.FieldError) string {
		return fmt.Sprintf("month %q must be formatted YYYY-MM", fe.Value())
	},
	"record_id": func(fe validator.FieldError) string {
		return fmt.Sprintf("id %q may only contain letters, digits, '-', '_' or '='", fe.Value())
	},
	"enum": func(fe validator.FieldError) string {
		return fmt.Sprintf("%q is not an accepted value", fe.Value())
	},
}

// enumerated is implemented by string enums that know their members.
type enumerated interface {
	Valid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("month_key", func(fl validator.FieldLevel) bool {
		return IsMonthKey(fl.Field().String())
	})
	_ = v.RegisterValidation("record_id", func(fl validator.FieldLevel) bool {
		return recordIDRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumerated)
		return ok && e.Valid()
	})

	// Money fields validate as numbers, e.g. `validate:"gte=0"`.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

// IsMonthKey reports whether s is a YYYY-MM billing period key.
func IsMonthKey(
	s string,
) bool {
	return monthKeyRe.MatchString(s)
}

// Struct validates a struct and returns the error message and false if invalid.
func Struct(
	v any,
) (string, bool) {
	if err := instance.Struct(v); err != nil {
		return describe(err), false
	}

	return "", true
}

// Var validates a single value against a tag.
func Var(
	field any,
	tag string,
) (string, bool) {
	if err := instance.Var(field, tag); err != nil {
		return describe(err), false
	}

	return "", true
}

func describe(
	err error,
) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return formatErrors(validationErrors)
	}

	return err.Error()
}

// formatErrors builds the error string, appending a custom hint for known
// tags while keeping the standard validator prefix.
func formatErrors(
	errs validator.ValidationErrors,
) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msg := fe.Error()
		if fn, ok := customHints[fe.Tag()]; ok {
			msg = fmt.Sprintf("%s: %s", msg, fn(fe))
		}
		msgs = append(msgs, msg)
	}

	return strings.Join(msgs, "; ")
}

// Instance returns the shared validator for registering custom validators.
func Instance() *validator.Validate {
	return instance
}
