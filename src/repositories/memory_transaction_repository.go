package repositories

import (
	"context"
	"sync"

	"cryptoledger/src/models"
)

type memoryTransactionRepo struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	lastID       int
}

// NewInMemoryTransactionRepository keeps the ledger in process memory. Ids
// grow monotonically and are never handed out twice.
func NewInMemoryTransactionRepository() TransactionRepository {
	return &memoryTransactionRepo{transactions: make([]models.Transaction, 0)}
}

func (r *memoryTransactionRepo) ListAll(_ context.Context) ([]models.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out, nil
}

func (r *memoryTransactionRepo) Insert(_ context.Context, t *models.Transaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	t.ID = r.lastID
	r.transactions = append(r.transactions, *t)
	return t.ID, nil
}

func (r *memoryTransactionRepo) InsertMany(_ context.Context, transactions []models.Transaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range transactions {
		r.lastID++
		transactions[i].ID = r.lastID
		r.transactions = append(r.transactions, transactions[i])
	}
	return len(transactions), nil
}

func (r *memoryTransactionRepo) Update(_ context.Context, id int, t *models.Transaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	t.ID = id
	r.transactions[i] = *t
	return true, nil
}

func (r *memoryTransactionRepo) Delete(_ context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return false, nil
	}
	r.transactions = append(r.transactions[:i], r.transactions[i+1:]...)
	return true, nil
}

func (r *memoryTransactionRepo) indexOf(id int) int {
	for i, t := range r.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}
