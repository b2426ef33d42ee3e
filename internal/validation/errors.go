// Package validation holds the form schemas shared by the HTTP API, the
// transfer wizards and the terminal client. Every check reports at most one
// message per field, the first rule that failed.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// Errors maps a field name to the message of the first rule it failed.
type Errors map[string]string

// Error implements the error interface with a stable field order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add records msg for field unless the field already failed an earlier rule.
func (e Errors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// orNil returns nil for an empty set so callers can return it as an error.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// AsErrors extracts field errors from err, looking through wrapping.
func AsErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
