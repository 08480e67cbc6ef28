package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrInvalidDictionary is returned when a material dictionary fails validation at load time
	ErrInvalidDictionary = errors.New("invalid material dictionary")

	// ErrMaterialNotFound is returned when a material is not present in either dictionary
	ErrMaterialNotFound = errors.New("material not found in dictionary")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBatchTooLarge is returned when a batch request exceeds the configured limit
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")

	// ErrInvalidHTML is returned when a product HTML fragment cannot be parsed
	ErrInvalidHTML = errors.New("invalid product HTML")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
