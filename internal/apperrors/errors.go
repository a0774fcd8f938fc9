package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the store reported a serialization failure; the caller
// must retry the whole operation, never a partial step.
var ErrConflict = errors.New("concurrency conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
