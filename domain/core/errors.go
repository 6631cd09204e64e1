package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Test selection errors
	ErrMissingTest     = errors.New("no statistical test specified")
	ErrUnsupportedTest = errors.New("unsupported statistical test")

	// Dataset errors
	ErrColumnNotFound   = errors.New("column not found")
	ErrColumnType       = errors.New("column has wrong type")
	ErrColumnLength     = errors.New("column length mismatch")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Option errors
	ErrInvalidOption = errors.New("invalid test option")

	// Plotting errors
	ErrAnnotationMismatch = errors.New("annotation count does not match pair count")
	ErrUnknownCategory    = errors.New("category not on plot axis")
	ErrUnknownPalette     = errors.New("unknown color palette")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrEmptyFigure        = errors.New("figure has nothing to render")
)

// Error constructors with context

func NewMissingTestError(supported []string) error {
	return fmt.Errorf("%w: set test to one of %s", ErrMissingTest, strings.Join(supported, ", "))
}

func NewUnsupportedTestError(name string, supported []string) error {
	return fmt.Errorf("%w %q: use one of %s", ErrUnsupportedTest, name, strings.Join(supported, ", "))
}

func NewColumnNotFoundError(param, column string) error {
	if column == "" {
		return fmt.Errorf("%w: parameter %s is empty", ErrColumnNotFound, param)
	}
	return fmt.Errorf("%w: %s=%q", ErrColumnNotFound, param, column)
}

func NewColumnTypeError(column, want string) error {
	return fmt.Errorf("%w: column %q is not %s", ErrColumnType, column, want)
}

func NewInsufficientDataError(what string, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrInsufficientData, what, detail)
}

func NewInvalidOptionError(key string, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidOption, key, reason)
}

func NewAnnotationMismatchError(pairs, annotations int) error {
	return fmt.Errorf("%w: %d pairs, %d annotations", ErrAnnotationMismatch, pairs, annotations)
}

// Error checking helpers

func IsTestSelectionError(err error) bool {
	return errors.Is(err, ErrMissingTest) || errors.Is(err, ErrUnsupportedTest)
}

func IsColumnError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrColumnType) ||
		errors.Is(err, ErrColumnLength) ||
		errors.Is(err, ErrDuplicateColumn)
}

func IsPlotError(err error) bool {
	return errors.Is(err, ErrAnnotationMismatch) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrUnknownPalette) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrEmptyFigure)
}
