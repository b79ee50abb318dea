package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrDecomposition is returned when a reading string cannot be broken
	// into entities at all.
	ErrDecomposition = errors.New("decomposition failed")

	// ErrConversion is returned when no decomposition of a search string
	// converts into the dictionary's reading.
	ErrConversion = errors.New("reading conversion failed")

	// ErrInvalidEntity marks a plain form / tone combination the reading
	// does not produce.
	ErrInvalidEntity = errors.New("invalid reading entity")

	// ErrUnsupported is returned for reading operations a particular
	// reading does not provide (e.g. tone splitting on a toneless reading).
	ErrUnsupported = errors.New("operation not supported")

	// ErrUnsupportedPredicate is returned by row stores that cannot
	// evaluate a predicate form handed to them (e.g. pattern predicates on
	// an equality-only store).
	ErrUnsupportedPredicate = errors.New("unsupported predicate")
)
