package services

import (
	"cryptoledger/src/models"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	TransactionsSheet = "Transactions"
	BalancesSheet     = "Balances"
)

var (
	transactionsHeader = []interface{}{"ID", "Date", "Pair", "Type", "Amount", "Price", "Fees"}
	balancesHeader     = []interface{}{"Currency", "Balance"}
)

type ExportServiceI interface {
	GenerateXLSX(transactions []models.Transaction, balances BalanceSheet) (*excelize.File, error)
}

type ExportService struct {
	rowLimit int
}

func NewExportService() *ExportService {
	return &ExportService{rowLimit: excelize.TotalRows}
}

// GenerateXLSX writes the ledger in storage order and the balances sorted by
// currency into two sheets of a new workbook.
func (s *ExportService) GenerateXLSX(transactions []models.Transaction, balances BalanceSheet) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			f.Close()
		}
	}()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(BalancesSheet); err != nil {
		return nil, err
	}

	if err := s.writeRow(f, TransactionsSheet, 1, transactionsHeader); err != nil {
		return nil, err
	}
	for i, tx := range transactions {
		row := []interface{}{tx.ID, tx.Date, tx.Pair, tx.Type.String(), tx.Amount, tx.Price, tx.Fees}
		if err := s.writeRow(f, TransactionsSheet, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := s.writeRow(f, BalancesSheet, 1, balancesHeader); err != nil {
		return nil, err
	}
	currencies := make([]string, 0, len(balances))
	for currency := range balances {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	for i, currency := range currencies {
		if err := s.writeRow(f, BalancesSheet, i+2, []interface{}{currency, balances[currency]}); err != nil {
			return nil, err
		}
	}

	if err := styleHeaders(f, map[string]int{
		TransactionsSheet: len(transactionsHeader),
		BalancesSheet:     len(balancesHeader),
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *ExportService) writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	if row > s.rowLimit {
		return excelize.ErrMaxRows
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleHeaders(f *excelize.File, columns map[string]int) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
	})
	if err != nil {
		return err
	}

	for sheet, count := range columns {
		lastCell, err := excelize.CoordinatesToCellName(count, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", lastCell, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
