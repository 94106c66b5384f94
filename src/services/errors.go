package services

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnsupportedFileType = errors.New("only CSV files are allowed")
	// ErrNonFiniteValue rejects NaN and infinities, which cannot be rendered as JSON.
	ErrNonFiniteValue = errors.New("value must be a finite number")
)

// MalformedPairError is returned by the balance calculation when a stored
// transaction's pair cannot be split into base and quote currencies.
type MalformedPairError struct {
	TransactionID int
	Pair          string
}

func (e *MalformedPairError) Error() string {
	return fmt.Sprintf("transaction %d: malformed pair %q, expected BASE-QUOTE", e.TransactionID, e.Pair)
}

// InvalidFieldError identifies a CSV row (1-based, header excluded) and the
// field that is missing or not numeric.
type InvalidFieldError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("row %d: missing field %q", e.Row, e.Field)
	}
	return fmt.Sprintf("row %d: invalid value %q for field %q: %v", e.Row, e.Value, e.Field, e.Err)
}

func (e *InvalidFieldError) Unwrap() error {
	return e.Err
}

// CSVFormatError wraps a failure to read the uploaded document as CSV.
type CSVFormatError struct {
	Err error
}

func (e *CSVFormatError) Error() string {
	return e.Err.Error()
}

func (e *CSVFormatError) Unwrap() error {
	return e.Err
}
