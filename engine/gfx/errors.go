package gfx

import (
	"errors"
	"fmt"
)

// Kind classifies a resource construction failure.
type Kind int

const (
	KindResourceCreation Kind = iota + 1
	KindCompile
	KindLink
	KindAssetLoad
	KindFormatConversion
)

func (k Kind) String() string {
	switch k {
	case KindResourceCreation:
		return "resource creation failure"
	case KindCompile:
		return "compile failure"
	case KindLink:
		return "link failure"
	case KindAssetLoad:
		return "asset load failure"
	case KindFormatConversion:
		return "format conversion failure"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrResourceCreation = errors.New(KindResourceCreation.String())
	ErrCompile          = errors.New(KindCompile.String())
	ErrLink             = errors.New(KindLink.String())
	ErrAssetLoad        = errors.New(KindAssetLoad.String())
	ErrFormatConversion = errors.New(KindFormatConversion.String())
)

// Error reports which resource failed to build and why.
type Error struct {
	Kind     Kind
	Resource string // file name or GPU object kind
	Detail   string // driver log or short description
	Err      error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Resource
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	var errs []error
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (k Kind) sentinel() error {
	switch k {
	case KindResourceCreation:
		return ErrResourceCreation
	case KindCompile:
		return ErrCompile
	case KindLink:
		return ErrLink
	case KindAssetLoad:
		return ErrAssetLoad
	case KindFormatConversion:
		return ErrFormatConversion
	}
	return nil
}

func errorf(kind Kind, resource string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Resource: resource, Detail: fmt.Sprintf(format, args...), Err: cause}
}
