package engine

import (
	"fmt"
	"math"
	"strings"
)

// FieldError pinpoints one offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a deal or sensitivity spec as a whole. It lists every
// offending field found, in input order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// collector accumulates field errors while a value is checked.
type collector struct {
	fields []FieldError
}

func (c *collector) add(field, format string, args ...any) {
	c.fields = append(c.fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) finite(field string, value float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		c.add(field, "must be a finite number")
		return false
	}
	return true
}

func (c *collector) nonNegative(field string, value float64) {
	if !c.finite(field, value) {
		return
	}
	if value < 0 {
		c.add(field, "must be >= 0, got %g", value)
	}
}

// amount accepts a currency figure in [0, MaxAmount].
func (c *collector) amount(field string, value float64) {
	c.within(field, value, 0, MaxAmount)
}

func (c *collector) within(field string, value, lo, hi float64) {
	if !c.finite(field, value) {
		return
	}
	if value < lo || value > hi {
		c.add(field, "must be between %g and %g, got %g", lo, hi, value)
	}
}

func (c *collector) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
