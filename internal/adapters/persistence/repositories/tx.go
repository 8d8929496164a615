package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos bundles the repositories that participate in multi-table
// writes, all bound to the same transaction.
type TxRepos struct {
	Users    UserRepository
	Members  MemberRepository
	Payments PaymentRepository
}

// TxManager exposes the transactional boundary of the persistence
// gateway. Multi-step operations (registering a user plus its member
// row, recording a renewal payment plus the membership update) run
// atomically inside WithinTx: fn returning an error rolls everything
// back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(r *TxRepos) error) error
}

// gormTxManager implements TxManager over a gorm connection
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithinTx(ctx context.Context, fn func(r *TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&TxRepos{
			Users:    NewUserRepository(tx),
			Members:  NewMemberRepository(tx),
			Payments: NewPaymentRepository(tx),
		})
	})
}
