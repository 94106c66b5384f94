package services

import (
	"cryptoledger/src/models"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

const (
	FieldDate   = "date"
	FieldPair   = "pair"
	FieldAmount = "amount"
	FieldPrice  = "price"
	FieldType   = "type"
	FieldFees   = "fees"
)

type ImportServiceI interface {
	ValidateRows(rows []map[string]string) ([]models.Transaction, error)
}

type ImportService struct{}

func NewImportService() *ImportService {
	return &ImportService{}
}

// ValidateRows converts raw CSV rows into transactions. Every row is checked
// and all failures are returned together; a single failure rejects the batch.
// Pairs and types are stored as given.
func (s *ImportService) ValidateRows(rows []map[string]string) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, len(rows))
	var errs error

	for i, row := range rows {
		tx, err := parseRow(i+1, row)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		transactions = append(transactions, tx)
	}

	if errs != nil {
		return nil, errs
	}
	return transactions, nil
}

func parseRow(rowNumber int, row map[string]string) (models.Transaction, error) {
	var tx models.Transaction
	var err error

	if tx.Date, err = requireField(rowNumber, row, FieldDate); err != nil {
		return tx, err
	}
	if tx.Pair, err = requireField(rowNumber, row, FieldPair); err != nil {
		return tx, err
	}
	if tx.Amount, err = parseFloatField(rowNumber, row, FieldAmount); err != nil {
		return tx, err
	}
	if tx.Price, err = parseFloatField(rowNumber, row, FieldPrice); err != nil {
		return tx, err
	}
	txType, err := requireField(rowNumber, row, FieldType)
	if err != nil {
		return tx, err
	}
	tx.Type = models.TransactionType(txType)
	if tx.Fees, err = parseFloatField(rowNumber, row, FieldFees); err != nil {
		return tx, err
	}

	return tx, nil
}

func requireField(rowNumber int, row map[string]string, field string) (string, error) {
	value, ok := row[field]
	if !ok {
		return "", &InvalidFieldError{Row: rowNumber, Field: field}
	}
	return value, nil
}

func parseFloatField(rowNumber int, row map[string]string, field string) (float64, error) {
	raw, err := requireField(rowNumber, row, field)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &InvalidFieldError{Row: rowNumber, Field: field, Value: raw, Err: err}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InvalidFieldError{Row: rowNumber, Field: field, Value: raw, Err: ErrNonFiniteValue}
	}
	return value, nil
}
