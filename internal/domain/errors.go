package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// LoadError reports that the dataset could not be fetched or decoded.
// It is terminal for the session: there is no partial dataset.
type LoadError struct {
	Source string
	Err    error
}

func (e LoadError) Error() string {
	switch {
	case e.Source != "" && e.Err != nil:
		return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("load dataset: %v", e.Err)
	case e.Source != "":
		return fmt.Sprintf("load dataset from %s failed", e.Source)
	default:
		return "load dataset failed"
	}
}

func (e LoadError) Unwrap() error { return e.Err }

// InvalidCriterionError describes a filter, sort or page parameter that was
// dropped. Callers surface it as a warning; the view stays computable.
type InvalidCriterionError struct {
	Criterion string
	Reason    string
}

func (e InvalidCriterionError) Error() string {
	if e.Criterion == "" {
		return "invalid criterion: " + e.Reason
	}
	return fmt.Sprintf("invalid criterion %q: %s", e.Criterion, e.Reason)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsLoad(err error) bool {
	var target LoadError
	return errors.As(err, &target)
}

func IsInvalidCriterion(err error) bool {
	var target InvalidCriterionError
	return errors.As(err, &target)
}
