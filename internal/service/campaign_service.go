package service

import (
	"errors"

	"ytboost/internal/domain"
	"ytboost/internal/models"
	"ytboost/internal/pricing"
	"ytboost/internal/ws"
	"ytboost/internal/youtube"
)

var (
	ErrInvalidViews    = errors.New("required views must be at least 1")
	ErrInvalidDuration = errors.New("watch duration must be a whole number of minutes between 2 and 20")
)

// CampaignStore is the persistence surface the campaign service needs.
// Implemented by repository.CampaignRepository.
type CampaignStore interface {
	CreateWithDebit(c *models.Campaign) error
	ListByOwner(ownerID uint) ([]models.Campaign, error)
	ListAvailable(viewerID uint) ([]models.Campaign, error)
	GetByID(id uint) (*models.Campaign, error)
	DeleteOwned(ownerID, id uint) error
}

// WalletStore exposes the balance read used for change-feed pushes.
type WalletStore interface {
	GetByUserID(userID uint) (*models.Wallet, error)
}

type CampaignService struct {
	campaigns CampaignStore
	wallets   WalletStore
	hub       *ws.Hub
}

func NewCampaignService(campaigns CampaignStore, wallets WalletStore, hub *ws.Hub) *CampaignService {
	return &CampaignService{campaigns: campaigns, wallets: wallets, hub: hub}
}

// Create validates the request, prices it and performs the atomic
// insert+ledger+debit write. The store returns ErrInsufficientBalance when
// the wallet cannot cover the cost; the caller surfaces it with the balance.
func (s *CampaignService) Create(ownerID uint, videoRef string, requiredViews, watchSeconds int) (*models.Campaign, error) {
	videoID, err := youtube.ExtractVideoID(videoRef)
	if err != nil {
		return nil, err
	}
	if requiredViews < 1 {
		return nil, ErrInvalidViews
	}
	if watchSeconds < domain.MinWatchSeconds || watchSeconds > domain.MaxWatchSeconds || watchSeconds%60 != 0 {
		return nil, ErrInvalidDuration
	}
	c := &models.Campaign{
		OwnerID:       ownerID,
		VideoID:       videoID,
		RequiredViews: requiredViews,
		WatchSeconds:  watchSeconds,
		Cost:          pricing.CampaignCost(requiredViews, watchSeconds),
		Status:        domain.CampaignStatusActive,
	}
	if err := s.campaigns.CreateWithDebit(c); err != nil {
		return nil, err
	}
	s.hub.PublishCampaign(ownerID, "insert", c)
	s.pushBalance(ownerID)
	return c, nil
}

// ListMine returns the owner's campaigns, newest first.
func (s *CampaignService) ListMine(ownerID uint) ([]models.Campaign, error) {
	return s.campaigns.ListByOwner(ownerID)
}

// ListAvailable returns the feed for a viewer. The store already filters,
// but self-owned and exhausted campaigns are dropped again here so a stale
// or misbehaving store can never surface them.
func (s *CampaignService) ListAvailable(viewerID uint) ([]models.Campaign, error) {
	rows, err := s.campaigns.ListAvailable(viewerID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Campaign, 0, len(rows))
	for _, c := range rows {
		if c.OwnerID == viewerID || c.UsedViews >= c.RequiredViews || c.IsCompleted() {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	return s.campaigns.GetByID(id)
}

// Delete removes an owned campaign. Coins already spent are not refunded.
func (s *CampaignService) Delete(ownerID, id uint) error {
	if err := s.campaigns.DeleteOwned(ownerID, id); err != nil {
		return err
	}
	s.hub.PublishCampaign(ownerID, "delete", &models.Campaign{ID: id, OwnerID: ownerID})
	return nil
}

func (s *CampaignService) pushBalance(userID uint) {
	if w, err := s.wallets.GetByUserID(userID); err == nil {
		s.hub.PublishWallet(userID, w.Balance)
	}
}
