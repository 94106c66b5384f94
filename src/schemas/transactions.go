package schemas

import "cryptoledger/src/models"

// TransactionRequest is the body of POST /transactions and PUT /transactions/{id}.
// Numeric fields are pointers so that a missing value can be told apart from zero.
type TransactionRequest struct {
	Date   string   `json:"date" validate:"required"`
	Pair   string   `json:"pair" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
	Price  *float64 `json:"price" validate:"required"`
	Type   string   `json:"type" validate:"required"`
	Fees   *float64 `json:"fees" validate:"required"`
}

func (r *TransactionRequest) ToModel() *models.Transaction {
	t := &models.Transaction{
		Date: r.Date,
		Pair: r.Pair,
		Type: models.TransactionType(r.Type),
	}
	if r.Amount != nil {
		t.Amount = *r.Amount
	}
	if r.Price != nil {
		t.Price = *r.Price
	}
	if r.Fees != nil {
		t.Fees = *r.Fees
	}
	return t
}

type TransactionResponse struct {
	ID     int     `json:"id"`
	Date   string  `json:"date"`
	Pair   string  `json:"pair"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
	Type   string  `json:"type"`
	Fees   float64 `json:"fees"`
}

func NewTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:     t.ID,
		Date:   t.Date,
		Pair:   t.Pair,
		Amount: t.Amount,
		Price:  t.Price,
		Type:   t.Type.String(),
		Fees:   t.Fees,
	}
}

type CreateTransactionResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
