package controllers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cryptoledger/src/schemas"
	"cryptoledger/src/services"
	"cryptoledger/src/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ImportCSV validates every row of the upload before writing any of them.
// The file name must end in .csv; that is checked before the body is read.
func (c *Controller) ImportCSV(ctx context.Context, filename string, file io.Reader) (*schemas.MessageResponse, error) {
	if !strings.HasSuffix(filename, ".csv") {
		return nil, services.ErrUnsupportedFileType
	}

	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"batch": uuid.NewString(),
		"file":  filename,
	})

	rows, err := utils.ReadCSVRecords(file)
	if err != nil {
		logger.WithError(err).Warn("unreadable csv upload")
		return nil, &services.CSVFormatError{Err: err}
	}

	transactions, err := c.ImportService.ValidateRows(rows)
	if err != nil {
		logger.WithError(err).Warn("csv import rejected")
		return nil, err
	}

	count, err := c.TransactionRepository.InsertMany(ctx, transactions)
	if err != nil {
		return nil, err
	}

	logger.WithField("count", count).Info("csv import committed")
	return &schemas.MessageResponse{Message: fmt.Sprintf("Successfully imported %d transactions", count)}, nil
}
