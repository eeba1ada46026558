// Package outcome provides the result type returned by every backend operation.
//
// An Outcome is exactly one of: ok with a payload, declined by the backend
// (the request arrived and was refused), or failed in transport (the request
// could not complete or the response could not be understood).
package outcome

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/mo"
)

// DefaultDeclineMessage is shown when a decline carries neither errors nor a message.
const DefaultDeclineMessage = "request declined by backend"

// Kind discriminates the three variants of an Outcome.
type Kind int

const (
	KindOk Kind = iota + 1
	KindDeclined
	KindFailed
)

// String names the kind.
func (k Kind) String() string {
	switch k {
	case KindOk:
		return "ok"
	case KindDeclined:
		return "declined"
	case KindFailed:
		return "failed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Decline is a well-formed refusal from the backend.
type Decline struct {
	Message string
	Errors  []string
}

// Display prefers the field errors, then the message, then DefaultDeclineMessage.
func (d *Decline) Display() string {
	var errs []string
	for _, e := range d.Errors {
		if e = strings.TrimSpace(e); e != "" {
			errs = append(errs, e)
		}
	}

	switch {
	case len(errs) > 0:
		return strings.Join(errs, "\n")
	case strings.TrimSpace(d.Message) != "":
		return d.Message
	default:
		return DefaultDeclineMessage
	}
}

// Error is the Display text.
func (d *Decline) Error() string {
	return strings.ReplaceAll(d.Display(), "\n", "; ")
}

// TransportError is a request that did not complete: connection, timeout, or an undecodable body.
type TransportError struct {
	Op    string
	Cause error
}

// Error names the operation and its cause.
func (e *TransportError) Error() string {
	if e.Cause == nil {
		return e.Op
	}
	return e.Op + ": " + e.Cause.Error()
}

// Unwrap returns the cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Outcome is the tri-state result of a backend operation.
// The zero value is a failed outcome with no cause.
type Outcome[T any] struct {
	kind      Kind
	value     T
	message   string
	decline   *Decline
	transport *TransportError
}

// Ok wraps a successful payload.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{kind: KindOk, value: value}
}

// Declined builds an application decline.
func Declined[T any](message string, errs []string) Outcome[T] {
	return Outcome[T]{
		kind:    KindDeclined,
		message: message,
		decline: &Decline{Message: message, Errors: errs},
	}
}

// Failed builds a transport failure for the named operation.
func Failed[T any](op string, cause error) Outcome[T] {
	return Outcome[T]{
		kind:      KindFailed,
		transport: &TransportError{Op: op, Cause: cause},
	}
}

// WithMessage attaches the backend's message to an ok outcome.
func (o Outcome[T]) WithMessage(message string) Outcome[T] {
	if o.kind == KindOk {
		o.message = message
	}
	return o
}

// Kind classifies the outcome. A declined outcome without its decline
// counts as failed.
func (o Outcome[T]) Kind() Kind {
	switch {
	case o.kind == KindOk:
		return KindOk
	case o.kind == KindDeclined && o.decline != nil:
		return KindDeclined
	default:
		return KindFailed
	}
}

// IsOk reports whether the call succeeded.
func (o Outcome[T]) IsOk() bool { return o.Kind() == KindOk }

// IsDeclined reports whether the service answered with a refusal.
func (o Outcome[T]) IsDeclined() bool { return o.Kind() == KindDeclined }

// IsFailed reports whether the call never got a usable answer.
// The zero Outcome is failed.
func (o Outcome[T]) IsFailed() bool { return o.Kind() == KindFailed }

// Get returns the payload and whether the outcome is ok.
func (o Outcome[T]) Get() (T, bool) {
	if o.kind != KindOk {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Value is the payload as an option.
func (o Outcome[T]) Value() mo.Option[T] {
	if v, ok := o.Get(); ok {
		return mo.Some(v)
	}
	return mo.None[T]()
}

// Decline returns the decline when the backend refused the request.
func (o Outcome[T]) Decline() (*Decline, bool) {
	if o.Kind() != KindDeclined {
		return nil, false
	}
	return o.decline, true
}

// Transport returns the transport failure, if any.
func (o Outcome[T]) Transport() (*TransportError, bool) {
	if o.Kind() != KindFailed {
		return nil, false
	}
	if o.transport == nil {
		return &TransportError{Op: "unknown"}, true
	}
	return o.transport, true
}

// Message is the backend's message for ok and declined outcomes.
func (o Outcome[T]) Message() string {
	return o.message
}

// Err is nil for ok outcomes, otherwise a *Decline or a *TransportError.
func (o Outcome[T]) Err() error {
	if d, ok := o.Decline(); ok {
		return d
	}
	if t, ok := o.Transport(); ok {
		return t
	}
	return nil
}

// Match calls exactly one of the handlers. Nil handlers are skipped.
func (o Outcome[T]) Match(onOk func(T), onDecline func(*Decline), onFailed func(*TransportError)) {
	switch o.Kind() {
	case KindOk:
		if onOk != nil {
			onOk(o.value)
		}
	case KindDeclined:
		if onDecline != nil {
			onDecline(o.decline)
		}
	default:
		if onFailed != nil {
			t, _ := o.Transport()
			onFailed(t)
		}
	}
}

// Map transforms the payload of an ok outcome; declines and failures pass through.
func Map[T, U any](o Outcome[T], f func(T) U) Outcome[U] {
	return Outcome[U]{
		kind:      o.Kind(),
		value:     mapValue(o, f),
		message:   o.message,
		decline:   o.decline,
		transport: o.transport,
	}
}

func mapValue[T, U any](o Outcome[T], f func(T) U) U {
	if v, ok := o.Get(); ok {
		return f(v)
	}
	var zero U
	return zero
}

// IsDecline reports whether err is, or wraps, a backend decline.
func IsDecline(err error) bool {
	var d *Decline
	return errors.As(err, &d)
}

// IsTransport reports whether err is, or wraps, a transport failure.
func IsTransport(err error) bool {
	var t *TransportError
	return errors.As(err, &t)
}
