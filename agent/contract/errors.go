package contract

import "errors"

var (
	ErrConfiguration     = errors.New("configuration error")
	ErrSchemaValidation  = errors.New("output violates schema")
	ErrProvider          = errors.New("model provider failed")
	ErrValidation        = errors.New("validation failed")
	ErrUnknownSpecialist = errors.New("specialist is not registered")
)
