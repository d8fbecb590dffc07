package testutil

import (
	"errors"
)

const ProviderError = "provider request failed"

type OperationResult[T any] struct {
	Data T
	Err  error
}

// Return a generic typed error result for a provider call.
func GetMockProviderError[T any]() *OperationResult[T] {
	return NewErrorResult[T](ProviderError)
}

func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into an OperationResult struct.
func NewSuccessResult[T any](Data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: Data,
		Err:  nil,
	}
}
