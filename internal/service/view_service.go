package service

import (
	"errors"

	"ytboost/internal/models"
	"ytboost/internal/pricing"
	"ytboost/internal/ws"
)

var ErrOwnCampaign = errors.New("cannot watch your own campaign")

// ViewStore is the persistence surface for completion records.
// Implemented by repository.ViewRepository.
type ViewStore interface {
	CreateWithReward(v *models.View) error
	CountByViewer(viewerID uint) (int64, error)
}

type ViewService struct {
	views     ViewStore
	campaigns CampaignStore
	wallets   WalletStore
	hub       *ws.Hub
}

func NewViewService(views ViewStore, campaigns CampaignStore, wallets WalletStore, hub *ws.Hub) *ViewService {
	return &ViewService{views: views, campaigns: campaigns, wallets: wallets, hub: hub}
}

// SubmitView records a completed watch and pays the reward. The reward is
// computed here, at claim time, from the campaign's duration and the flags
// as submitted; watched_seconds is always the campaign's full duration since
// partial watches are never submitted. Satisfies session.Submitter.
func (s *ViewService) SubmitView(campaignID, viewerID uint, watchedSeconds int, liked, subscribed bool) (int64, error) {
	c, err := s.campaigns.GetByID(campaignID)
	if err != nil {
		return 0, err
	}
	if c.OwnerID == viewerID {
		return 0, ErrOwnCampaign
	}
	reward := pricing.TotalReward(c.Minutes(), liked, subscribed)
	v := &models.View{
		CampaignID:     campaignID,
		ViewerID:       viewerID,
		WatchedSeconds: c.WatchSeconds,
		RewardAmount:   reward,
		Liked:          liked,
		Subscribed:     subscribed,
	}
	if err := s.views.CreateWithReward(v); err != nil {
		return 0, err
	}
	// Push the credited balance to the viewer and the bumped view count to
	// the campaign owner.
	if w, err := s.wallets.GetByUserID(viewerID); err == nil {
		s.hub.PublishWallet(viewerID, w.Balance)
	}
	if updated, err := s.campaigns.GetByID(campaignID); err == nil {
		s.hub.PublishCampaign(updated.OwnerID, "update", updated)
	}
	return reward, nil
}

// CountWatched returns how many videos the viewer has completed.
func (s *ViewService) CountWatched(viewerID uint) (int64, error) {
	return s.views.CountByViewer(viewerID)
}
