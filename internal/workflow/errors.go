// Package workflow owns the project/payment/valuation/submission/cancellation
// state machines. Handlers load entities, call a transition here, and persist
// the result; nothing in this package touches the database.
package workflow

import "errors"

// Violation is a guard failure: the command is not legal from the entity's
// current state. Handlers surface the message verbatim with HTTP 400.
type Violation struct {
	Msg string
}

func (v *Violation) Error() string { return v.Msg }

func violation(msg string) error { return &Violation{Msg: msg} }

func IsViolation(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
