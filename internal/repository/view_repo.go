package repository

import (
	"fmt"

	"gorm.io/gorm"

	"ytboost/internal/domain"
	"ytboost/internal/models"
)

type ViewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// CreateWithReward records a completed view and pays for it in one database
// transaction: insert the view row, credit the viewer's wallet with the
// matching ledger entry, and advance the campaign's used_views (flipping it
// to completed at the target). The unique (campaign, viewer) index turns a
// second claim into ErrDuplicateClaim; a campaign already at its target turns
// into ErrCampaignFull. On any error nothing is written.
func (r *ViewRepository) CreateWithReward(v *models.View) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Claim a view slot first: the guarded UPDATE only matches while
		// the campaign is active and below target.
		res := tx.Model(&models.Campaign{}).
			Where("id = ? AND status = ? AND used_views < required_views",
				v.CampaignID, domain.CampaignStatusActive).
			UpdateColumn("used_views", gorm.Expr("used_views + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCampaignFull
		}
		if err := tx.Model(&models.Campaign{}).
			Where("id = ? AND used_views >= required_views", v.CampaignID).
			UpdateColumn("status", domain.CampaignStatusCompleted).Error; err != nil {
			return err
		}
		if err := tx.Create(v).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateClaim
			}
			return err
		}
		reason := fmt.Sprintf("watched campaign %d", v.CampaignID)
		return creditTx(tx, v.ViewerID, v.RewardAmount, domain.TxTypeReward, reason)
	})
}

// CountByViewer returns how many views the user has completed, for stats.
func (r *ViewRepository) CountByViewer(viewerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.View{}).Where("viewer_id = ?", viewerID).Count(&n).Error
	return n, err
}
