package services

import (
	"context"
	"cryptoledger/src/models"
	"cryptoledger/src/utils"

	"github.com/sirupsen/logrus"
)

// BalanceSheet maps a currency symbol to its net signed balance.
type BalanceSheet map[string]float64

type BalanceServiceI interface {
	CalculateBalances(ctx context.Context, transactions []models.Transaction) (BalanceSheet, error)
}

type BalanceService struct{}

func NewBalanceService() *BalanceService {
	return &BalanceService{}
}

// CalculateBalances folds the transactions into a BalanceSheet. The result does
// not depend on the order of the input. A transaction with a malformed pair
// aborts the whole calculation.
func (s *BalanceService) CalculateBalances(ctx context.Context, transactions []models.Transaction) (BalanceSheet, error) {
	logger := utils.LoggerFromContext(ctx)

	balances := make(BalanceSheet)
	for _, tx := range transactions {
		if err := ApplyTransaction(balances, tx); err != nil {
			return nil, err
		}
		entry := logger.WithFields(logrus.Fields{
			"id":     tx.ID,
			"pair":   tx.Pair,
			"type":   tx.Type,
			"amount": tx.Amount,
			"price":  tx.Price,
			"fees":   tx.Fees,
		})
		if !tx.Type.Known() {
			entry.Debug("ignored transaction with unrecognised type")
			continue
		}
		entry.Debug("applied transaction")
	}

	logger.WithField("balances", balances).Debug("final balances")
	return balances, nil
}

// ApplyTransaction adds the effect of a single transaction to balances.
// Missing currencies start at zero.
func ApplyTransaction(balances BalanceSheet, tx models.Transaction) error {
	pair, err := models.ParsePair(tx.Pair)
	if err != nil {
		return &MalformedPairError{TransactionID: tx.ID, Pair: tx.Pair}
	}

	switch tx.Type {
	case models.TransactionTypeBuy:
		balances[pair.Base] += tx.Amount
		balances[pair.Quote] -= tx.Amount*tx.Price + tx.Fees
	case models.TransactionTypeSell:
		balances[pair.Base] -= tx.Amount
		balances[pair.Quote] += tx.Amount*tx.Price - tx.Fees
	case models.TransactionTypeTransfer:
		// quote currency and fees do not apply to transfers
		balances[pair.Base] += tx.Amount
	default:
		// unrecognised types are kept in the ledger but have no balance effect
	}
	return nil
}
