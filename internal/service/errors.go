package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"donorly/internal/domain"
)

// ValidationError carries field-level input problems keyed by the JSON field
// name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := lo.Keys(e.Fields)
	sort.Strings(keys)
	parts := lo.Map(keys, func(k string, _ int) string {
		return k + ": " + e.Fields[k]
	})
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Step names one write of the sign-up sequence.
type Step string

const (
	StepAccount Step = "account"
	StepProfile Step = "profile"
	StepRole    Step = "role"
)

// StepError reports which sign-up write failed. Err holds the store error
// unchanged.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("sign-up failed at %s step: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ResolveError is a transient store failure during role resolution. Callers
// may retry by resolving again.
type ResolveError struct {
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve destination: %v", e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// RedirectError is returned by guards when the visitor may not use a page or
// operation. Destination is where the client should go instead.
type RedirectError struct {
	Destination domain.Destination
	Err         error
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("%v: redirect to %s", e.Err, e.Destination)
}

func (e *RedirectError) Unwrap() error { return e.Err }
