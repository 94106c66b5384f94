package controllers

import (
	"context"

	"cryptoledger/src/schemas"
	"cryptoledger/src/services"
	"cryptoledger/src/utils"

	"github.com/sirupsen/logrus"
)

func (c *Controller) GetAllTransactions(ctx context.Context) ([]schemas.TransactionResponse, error) {
	transactions, err := c.TransactionRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]schemas.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		response = append(response, schemas.NewTransactionResponse(t))
	}
	return response, nil
}

func (c *Controller) CreateTransaction(ctx context.Context, req *schemas.TransactionRequest) (*schemas.CreateTransactionResponse, error) {
	id, err := c.TransactionRepository.Insert(ctx, req.ToModel())
	if err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"id":   id,
		"pair": req.Pair,
		"type": req.Type,
	}).Info("transaction added")

	return &schemas.CreateTransactionResponse{ID: id, Message: "Transaction added successfully"}, nil
}

// UpdateTransaction replaces every field of the stored transaction.
func (c *Controller) UpdateTransaction(ctx context.Context, id int, req *schemas.TransactionRequest) (*schemas.MessageResponse, error) {
	ok, err := c.TransactionRepository.Update(ctx, id, req.ToModel())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, services.ErrTransactionNotFound
	}

	utils.LoggerFromContext(ctx).WithField("id", id).Info("transaction updated")
	return &schemas.MessageResponse{Message: "Transaction updated successfully"}, nil
}

func (c *Controller) DeleteTransaction(ctx context.Context, id int) (*schemas.MessageResponse, error) {
	ok, err := c.TransactionRepository.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, services.ErrTransactionNotFound
	}

	utils.LoggerFromContext(ctx).WithField("id", id).Info("transaction deleted")
	return &schemas.MessageResponse{Message: "Transaction deleted successfully"}, nil
}
