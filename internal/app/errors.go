package app

import (
	"errors"
	"strings"

	"petspotter/internal/repository"
)

var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateKey       = errors.New("duplicated value")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrBadFilter          = errors.New("unrecognized filter value")
	ErrBadRequest         = errors.New("invalid request")
	ErrServiceUnavailable = errors.New("service not available")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// DuplicateKeyError carries the field set that violated a uniqueness
// constraint. errors.Is(err, ErrDuplicateKey) holds for it.
type DuplicateKeyError struct {
	Fields map[string]string
}

func (e *DuplicateKeyError) Error() string {
	if len(e.Fields) == 0 {
		return ErrDuplicateKey.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return ErrDuplicateKey.Error() + ": " + strings.Join(names, ",")
}

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

func asDuplicateKey(err error) (*DuplicateKeyError, bool) {
	var dup *repository.DuplicateKeyError
	if errors.As(err, &dup) {
		return &DuplicateKeyError{Fields: dup.Fields}, true
	}
	return nil, false
}
