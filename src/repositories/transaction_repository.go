package repositories

import (
	"context"
	"fmt"

	"cryptoledger/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type TransactionRepository interface {
	ListAll(ctx context.Context) ([]models.Transaction, error)
	Insert(ctx context.Context, t *models.Transaction) (int, error)
	InsertMany(ctx context.Context, transactions []models.Transaction) (int, error)
	Update(ctx context.Context, id int, t *models.Transaction) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// DBTX is the part of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

const insertTransactionQuery = `
	INSERT INTO transactions (date, pair, amount, price, type, fees)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

type transactionRepo struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) ListAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, date, pair, amount, price, type, fees FROM transactions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		var txType string
		if err := rows.Scan(&t.ID, &t.Date, &t.Pair, &t.Amount, &t.Price, &txType, &t.Fees); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = models.TransactionType(txType)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) Insert(ctx context.Context, t *models.Transaction) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, insertTransactionQuery,
		t.Date, t.Pair, t.Amount, t.Price, string(t.Type), t.Fees,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	t.ID = id
	return id, nil
}

// InsertMany writes all transactions in a single database transaction; either
// every row is stored or none is.
func (r *transactionRepo) InsertMany(ctx context.Context, transactions []models.Transaction) (count int, err error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	for i := range transactions {
		t := &transactions[i]
		if err = tx.QueryRow(ctx, insertTransactionQuery,
			t.Date, t.Pair, t.Amount, t.Price, string(t.Type), t.Fees,
		).Scan(&t.ID); err != nil {
			return 0, fmt.Errorf("insert transaction %d of %d: %w", i+1, len(transactions), err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(transactions), nil
}

func (r *transactionRepo) Update(ctx context.Context, id int, t *models.Transaction) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET date = $1, pair = $2, amount = $3, price = $4, type = $5, fees = $6
		WHERE id = $7`,
		t.Date, t.Pair, t.Amount, t.Price, string(t.Type), t.Fees, id,
	)
	if err != nil {
		return false, fmt.Errorf("update transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	t.ID = id
	return true, nil
}

func (r *transactionRepo) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
