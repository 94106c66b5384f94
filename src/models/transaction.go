package models

import (
	"errors"
	"strings"
)

type TransactionType string

const (
	TransactionTypeBuy      TransactionType = "buy"
	TransactionTypeSell     TransactionType = "sell"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Known reports whether the type is one the balance calculation acts on.
// Other values are still stored as-is.
func (t TransactionType) Known() bool {
	switch t {
	case TransactionTypeBuy, TransactionTypeSell, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}

func (t TransactionType) String() string { return string(t) }

type Transaction struct {
	ID     int             `db:"id"`
	Date   string          `db:"date"`
	Pair   string          `db:"pair"`
	Amount float64         `db:"amount"`
	Price  float64         `db:"price"`
	Type   TransactionType `db:"type"`
	Fees   float64         `db:"fees"`
}

const PairSeparator = "-"

var ErrMalformedPair = errors.New("pair must have the form BASE-QUOTE")

// Pair is a trading pair split into its base and quote currencies.
type Pair struct {
	Base  string
	Quote string
}

func (p Pair) String() string {
	return p.Base + PairSeparator + p.Quote
}

// ParsePair splits "BASE-QUOTE" on the single separator. Anything other than
// exactly two non-empty segments is rejected.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, PairSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, ErrMalformedPair
	}
	return Pair{Base: parts[0], Quote: parts[1]}, nil
}
