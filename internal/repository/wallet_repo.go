package repository

import (
	"gorm.io/gorm"

	"ytboost/internal/models"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{UserID: userID, Balance: 0}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Credit adds coins to a wallet and appends the matching ledger entry in one
// transaction, so a crash between the two cannot lose the audit trail.
func (r *WalletRepository) Credit(userID uint, amount int64, txType, reason string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return creditTx(tx, userID, amount, txType, reason)
	})
}

// creditTx is the shared credit step used inside larger transactions.
func creditTx(tx *gorm.DB, userID uint, amount int64, txType, reason string) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.Wallet{UserID: userID, Balance: amount}).Error; err != nil {
			return err
		}
	}
	return tx.Create(&models.Transaction{
		UserID: userID,
		Amount: amount,
		Type:   txType,
		Reason: reason,
	}).Error
}

// debitTx subtracts coins inside a transaction with a guarded balance check:
// the UPDATE only matches when the balance covers the amount, so the wallet
// can never go negative even under concurrent spends.
func debitTx(tx *gorm.DB, userID uint, amount int64, txType, reason string) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return tx.Create(&models.Transaction{
		UserID: userID,
		Amount: amount,
		Type:   txType,
		Reason: reason,
	}).Error
}

// ListTransactions returns the user's ledger entries, newest first.
func (r *WalletRepository) ListTransactions(userID uint, limit, offset int) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
