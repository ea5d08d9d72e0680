package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrInsufficientBalance means a debit would take the wallet below zero.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	// ErrDuplicateClaim means a second view was submitted for the same
	// (campaign, viewer) pair. Surfaced as a named kind so callers never
	// match on backend error codes.
	ErrDuplicateClaim = errors.New("view already claimed for this campaign")
	// ErrCampaignFull means the campaign already reached its view target.
	ErrCampaignFull = errors.New("campaign has no remaining views")
	// ErrNotFound wraps gorm's record-not-found at the repository boundary.
	ErrNotFound = errors.New("record not found")
)

// isDuplicateKey reports whether err is a unique-constraint violation.
// The MySQL error number check covers driver paths where gorm does not
// translate the error.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var my *mysql.MySQLError
	return errors.As(err, &my) && my.Number == 1062
}
