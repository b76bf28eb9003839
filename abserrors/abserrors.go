// Package abserrors defines the typed failure vocabulary shared by every
// abstract domain and data structure in the module.
//
// The original C++ library throws one of a handful of exception types
// derived from abstract_interpretation_exception. Go has no exceptions, so
// each exception type becomes a sentinel error that callers can recognize
// with errors.Is, carrying context added with errors.Wrap/Wrapf.
package abserrors

import "github.com/pkg/errors"

// ErrInvalidArgument flags an operation that received a value outside its
// domain, e.g. a malformed finite-lattice specification or a non-positive
// worker count.
var ErrInvalidArgument = errors.New("sparta: invalid argument")

// ErrUndefinedOperation flags the use of an operation outside its domain of
// definition, e.g. asking a bottom lifted value for its underlying value.
var ErrUndefinedOperation = errors.New("sparta: undefined operation")

// ErrInternal flags a violated internal invariant: a broken trie invariant,
// a counter gone negative, a pool joined while still accepting work. These
// should be unreachable in correct use of the library.
var ErrInternal = errors.New("sparta: internal error")

// ErrInvalidAbstractValue flags a domain receiving a value whose Kind()
// disagrees with its stored tag.
var ErrInvalidAbstractValue = errors.New("sparta: invalid abstract value")

// InvalidArgument wraps ErrInvalidArgument with the name of the offending
// argument and a human-readable reason.
func InvalidArgument(argumentName, reason string) error {
	return errors.Wrapf(ErrInvalidArgument, "%s: %s", argumentName, reason)
}

// UndefinedOperation wraps ErrUndefinedOperation with the name of the
// operation that has no defined result in the current state.
func UndefinedOperation(operationName, reason string) error {
	return errors.Wrapf(ErrUndefinedOperation, "%s: %s", operationName, reason)
}

// Internal wraps ErrInternal with a description of the violated invariant.
func Internal(reason string) error {
	return errors.Wrap(ErrInternal, reason)
}

// InvalidAbstractValue wraps ErrInvalidAbstractValue with a description of
// the mismatch between the stored tag and the value's reported Kind().
func InvalidAbstractValue(reason string) error {
	return errors.Wrap(ErrInvalidAbstractValue, reason)
}
