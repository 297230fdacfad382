package repository

import "gorm.io/gorm"

// TxManager runs a function inside a database transaction. Services depend
// on this instead of *gorm.DB directly so the transactional protocols can be
// exercised in tests with mocked repositories.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a TxManager backed by gorm transactions
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
