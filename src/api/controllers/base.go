package controllers

import (
	"context"
	"io"

	"cryptoledger/src/repositories"
	"cryptoledger/src/schemas"
	"cryptoledger/src/services"

	"github.com/xuri/excelize/v2"
)

type IController interface {
	GetAllTransactions(ctx context.Context) ([]schemas.TransactionResponse, error)
	CreateTransaction(ctx context.Context, req *schemas.TransactionRequest) (*schemas.CreateTransactionResponse, error)
	UpdateTransaction(ctx context.Context, id int, req *schemas.TransactionRequest) (*schemas.MessageResponse, error)
	DeleteTransaction(ctx context.Context, id int) (*schemas.MessageResponse, error)
	GetBalances(ctx context.Context) (services.BalanceSheet, error)
	ImportCSV(ctx context.Context, filename string, file io.Reader) (*schemas.MessageResponse, error)
	ExportXLSX(ctx context.Context) (*excelize.File, error)
}

type Controller struct {
	TransactionRepository repositories.TransactionRepository
	BalanceService        services.BalanceServiceI
	ImportService         services.ImportServiceI
	ExportService         services.ExportServiceI
}

func NewController(transactionRepository repositories.TransactionRepository) *Controller {
	return &Controller{
		TransactionRepository: transactionRepository,
		BalanceService:        services.NewBalanceService(),
		ImportService:         services.NewImportService(),
		ExportService:         services.NewExportService(),
	}
}
