package controllers

import (
	"context"

	"cryptoledger/src/services"
)

// GetBalances recomputes the balance sheet from the full ledger on every call.
func (c *Controller) GetBalances(ctx context.Context) (services.BalanceSheet, error) {
	transactions, err := c.TransactionRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return c.BalanceService.CalculateBalances(ctx, transactions)
}
