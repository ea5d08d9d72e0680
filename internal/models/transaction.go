package models

import "time"

// Transaction is one entry in the append-only coin ledger. Rows are never
// updated or deleted, so there is no soft-delete column here.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Type      string    `gorm:"size:30;not null;index" json:"type"` // spend, reward, welcome_bonus, referral_bonus
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }
