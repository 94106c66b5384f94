package controllers

import (
	"context"

	"github.com/xuri/excelize/v2"
)

func (c *Controller) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	transactions, err := c.TransactionRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := c.BalanceService.CalculateBalances(ctx, transactions)
	if err != nil {
		return nil, err
	}

	return c.ExportService.GenerateXLSX(transactions, balances)
}
