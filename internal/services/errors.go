package services

import (
	"errors"
	"fmt"

	"github.com/SanjayChandraSamudrala/forum-board/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Error is a client-facing failure. Kind is one of the sentinels above and
// Msg is safe to show to the caller.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// fromRepo lifts repository sentinels into service errors naming what.
func fromRepo(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return fail(ErrNotFound, "%s not found", what)
	case errors.Is(err, repository.ErrDuplicate):
		return fail(ErrConflict, "%s already exists", what)
	}
	return err
}
