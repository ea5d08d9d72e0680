package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ytboost/internal/domain"
	"ytboost/internal/models"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// CreateWithDebit inserts the campaign, appends the spend ledger entry and
// debits the owner's wallet as one database transaction. Either a reader
// observes all three effects or none. Returns ErrInsufficientBalance when the
// wallet does not cover the cost; nothing is written in that case.
func (r *CampaignRepository) CreateWithDebit(c *models.Campaign) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		reason := fmt.Sprintf("campaign %dmin x %d views", c.WatchSeconds/60, c.RequiredViews)
		if err := debitTx(tx, c.OwnerID, c.Cost, domain.TxTypeSpend, reason); err != nil {
			return err
		}
		return tx.Create(c).Error
	})
}

// ListByOwner returns the owner's campaigns, most recently created first.
func (r *CampaignRepository) ListByOwner(ownerID uint) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// ListAvailable returns campaigns a viewer may watch: active, not yet at
// their view target, and not the viewer's own, most recently created first.
func (r *CampaignRepository) ListAvailable(viewerID uint) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.Where("status = ? AND used_views < required_views AND owner_id <> ?",
		domain.CampaignStatusActive, viewerID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *CampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var c models.Campaign
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// DeleteOwned removes a campaign, but only when it belongs to ownerID.
// Coins already spent are not refunded; deletion just stops further views.
func (r *CampaignRepository) DeleteOwned(ownerID, id uint) error {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
