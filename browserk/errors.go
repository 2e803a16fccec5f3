package browserk

import (
	"context"

	"github.com/pkg/errors"
)

// NoSuchElementErr is returned by a raw lookup that matched nothing
type NoSuchElementErr struct {
	Message string
}

func (e *NoSuchElementErr) Error() string {
	return "no such element: " + e.Message
}

func (e *NoSuchElementErr) NotFound() bool {
	return true
}

// ElementNotFoundErr when a search gave up without finding the element
type ElementNotFoundErr struct {
	Message string
	Data    *SearchFailureData
}

func (e *ElementNotFoundErr) Error() string {
	return e.Message
}

func (e *ElementNotFoundErr) NotFound() bool {
	return true
}

// NewElementNotFoundErr with a message built from data
func NewElementNotFoundErr(ctx context.Context, data *SearchFailureData) *ElementNotFoundErr {
	if data == nil {
		data = &SearchFailureData{}
	}
	return &ElementNotFoundErr{Message: data.NotFoundMessage(ctx), Data: data}
}

// ElementNotMissingErr when a search gave up waiting for an element to go away
type ElementNotMissingErr struct {
	Message string
	Data    *SearchFailureData
}

func (e *ElementNotMissingErr) Error() string {
	return e.Message
}

// NewElementNotMissingErr with a message built from data
func NewElementNotMissingErr(ctx context.Context, data *SearchFailureData) *ElementNotMissingErr {
	if data == nil {
		data = &SearchFailureData{}
	}
	return &ElementNotMissingErr{Message: data.NotMissingMessage(ctx), Data: data}
}

// StaleElementErr when an element handle no longer refers to the document
type StaleElementErr struct {
	Message string
}

func (e *StaleElementErr) Error() string {
	return "stale element reference: " + e.Message
}

func (e *StaleElementErr) Stale() bool {
	return true
}

// TransientErr is a driver failure that may succeed if tried again
type TransientErr struct {
	Message string
}

func (e *TransientErr) Error() string {
	return "transient driver error: " + e.Message
}

func (e *TransientErr) Transient() bool {
	return true
}

type notFounder interface {
	NotFound() bool
}

// IsNotFound returns true for raw lookups and searches that found nothing
func IsNotFound(err error) bool {
	var nf notFounder
	return errors.As(err, &nf) && nf.NotFound()
}

// IsNotMissing returns true if err is, or wraps, an *ElementNotMissingErr
func IsNotMissing(err error) bool {
	var nm *ElementNotMissingErr
	return errors.As(err, &nm)
}
