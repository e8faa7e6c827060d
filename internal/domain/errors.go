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
		return "não encontrado"
	}
	return fmt.Sprintf("%s não encontrado(a)", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError carries a user-facing message. Field is optional and only
// used for the JSON "details" payload.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s inválido", e.Field)
	}
	return "dados inválidos"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s foi alterado(a) por outro usuário", e.Resource)
	default:
		return "conflito"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type ForbiddenError struct {
	Msg string
}

func (e ForbiddenError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "acesso negado"
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target ForbiddenError
	return errors.As(err, &target)
}
