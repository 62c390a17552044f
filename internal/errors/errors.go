package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	NotSupported  Kind = "not_supported"
	NoPermission  Kind = "no_permission"
	NotFound      Kind = "not_found"
	InvalidPath   Kind = "invalid_path"
	InvalidConfig Kind = "invalid_config"
	IOFailure     Kind = "io_failure"
	Busy          Kind = "busy"
	Internal      Kind = "internal"
)

// Blocking reports whether the kind halts the pipeline and replaces the
// screen with an error. Every other kind is a soft failure.
func (k Kind) Blocking() bool {
	return k == NotSupported || k == NoPermission
}

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// New builds an AppError around a plain message.
func New(kind Kind, op, path, msg string) error {
	return Wrap(kind, op, path, stderrors.New(msg))
}

// KindOf returns the kind of the outermost AppError in the chain, or Internal
// for foreign errors. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message is the one-line text shown for a blocking kind.
func Message(kind Kind) string {
	switch kind {
	case NotSupported:
		return "Not supported"
	case NoPermission:
		return "No permission"
	default:
		return ""
	}
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case NotSupported, NoPermission:
		return Message(appErr.Kind)
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case NotFound:
		if appErr.Path != "" {
			return fmt.Sprintf("Nothing found: %s", appErr.Path)
		}
		return fmt.Sprintf("Nothing found: %v", appErr.Err)
	case InvalidPath:
		return fmt.Sprintf("Unexpected device path: %s", appErr.Path)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	case Busy:
		return "Discovery already in progress"
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
