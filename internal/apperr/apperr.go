// Package apperr defines the error taxonomy surfaced to the views and the API.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindReferenced
	KindInsufficientStock
	KindStorage
)

func (k Kind) String() string {
	return [...]string{"UNKNOWN", "VALIDATION", "NOT_FOUND", "REFERENCED", "INSUFFICIENT_STOCK", "STORAGE"}[k]
}

// FieldError describes one offending input field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// Error is the application error. It carries a stable code, a message fit for
// the user, optional field details and the underlying cause.
type Error struct {
	kind   Kind
	code   string
	msg    string
	fields []FieldError
	parent error
}

func New(kind Kind, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

func (e *Error) Unwrap() error { return e.parent }

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Code() string { return e.code }

func (e *Error) Msg() string { return e.msg }

func (e *Error) Fields() []FieldError { return e.fields }

// Wrap returns a copy of e with parent attached.
func (e *Error) Wrap(parent error) *Error {
	cp := *e
	cp.parent = parent
	return &cp
}

// Validation builds a validation error listing the offending fields.
func Validation(fields ...FieldError) *Error {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return &Error{
		kind:   KindValidation,
		code:   "VALIDATION_FAILED",
		msg:    "invalid input: " + strings.Join(names, ", "),
		fields: fields,
	}
}

func NotFound(entity string, id int) *Error {
	return &Error{
		kind: KindNotFound,
		code: strings.ToUpper(entity) + "_NOT_FOUND",
		msg:  fmt.Sprintf("%s %d not found", entity, id),
	}
}

func Referenced(entity string, id, refs int) *Error {
	return &Error{
		kind: KindReferenced,
		code: strings.ToUpper(entity) + "_REFERENCED",
		msg:  fmt.Sprintf("%s %d is referenced by %d transaction(s) and cannot be deleted", entity, id, refs),
	}
}

func InsufficientStock(productID, requested, available int) *Error {
	return &Error{
		kind: KindInsufficientStock,
		code: "INSUFFICIENT_STOCK",
		msg:  fmt.Sprintf("cannot remove %d from product %d: only %d on hand", requested, productID, available),
	}
}

// Storage wraps an I/O failure of the database or the report file.
func Storage(op string, err error) *Error {
	return &Error{
		kind:   KindStorage,
		code:   "STORAGE_FAILURE",
		msg:    op + " failed",
		parent: err,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FieldsOf returns the field details of a validation error, if any.
func FieldsOf(err error) []FieldError {
	var e *Error
	if errors.As(err, &e) {
		return e.fields
	}
	return nil
}

// Message returns the user facing message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "an unexpected error occurred"
}
