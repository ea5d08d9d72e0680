package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytboost/internal/domain"
	"ytboost/internal/models"
	"ytboost/internal/repository"
	"ytboost/internal/ws"
	"ytboost/internal/youtube"
)

// fakeCampaignStore keeps campaigns in memory and scripts failures.
type fakeCampaignStore struct {
	created   []*models.Campaign
	available []models.Campaign
	byID      map[uint]*models.Campaign
	createErr error
	deleteErr error
	nextID    uint
}

func newFakeCampaignStore() *fakeCampaignStore {
	return &fakeCampaignStore{byID: make(map[uint]*models.Campaign)}
}

func (f *fakeCampaignStore) CreateWithDebit(c *models.Campaign) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	f.created = append(f.created, c)
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCampaignStore) ListByOwner(ownerID uint) ([]models.Campaign, error) {
	var out []models.Campaign
	for _, c := range f.created {
		if c.OwnerID == ownerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCampaignStore) ListAvailable(viewerID uint) ([]models.Campaign, error) {
	return f.available, nil
}

func (f *fakeCampaignStore) GetByID(id uint) (*models.Campaign, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaignStore) DeleteOwned(ownerID, id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	c, ok := f.byID[id]
	if !ok || c.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeWalletStore struct {
	balances map[uint]int64
}

func (f *fakeWalletStore) GetByUserID(userID uint) (*models.Wallet, error) {
	b, ok := f.balances[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &models.Wallet{UserID: userID, Balance: b}, nil
}

func newCampaignService(store *fakeCampaignStore) (*CampaignService, *ws.Hub) {
	hub := ws.NewHub()
	wallets := &fakeWalletStore{balances: map[uint]int64{1: 500}}
	return NewCampaignService(store, wallets, hub), hub
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newCampaignService(newFakeCampaignStore())

	_, err := svc.Create(1, "not a video", 5, 120)
	assert.ErrorIs(t, err, youtube.ErrInvalidVideoRef)

	_, err = svc.Create(1, "dQw4w9WgXcQ", 0, 120)
	assert.ErrorIs(t, err, ErrInvalidViews)

	for _, secs := range []int{60, 119, 150, 1201, 1260} {
		_, err = svc.Create(1, "dQw4w9WgXcQ", 5, secs)
		assert.ErrorIs(t, err, ErrInvalidDuration, "watch_seconds=%d", secs)
	}
}

func TestCreatePricesCampaign(t *testing.T) {
	store := newFakeCampaignStore()
	svc, _ := newCampaignService(store)

	// 5 views of 10 minutes: 5 * 50 coins
	c, err := svc.Create(1, "https://youtu.be/dQw4w9WgXcQ", 5, 600)
	require.NoError(t, err)
	assert.EqualValues(t, 250, c.Cost)
	assert.Equal(t, "dQw4w9WgXcQ", c.VideoID)
	assert.Equal(t, domain.CampaignStatusActive, c.Status)
	assert.Zero(t, c.UsedViews)
	require.Len(t, store.created, 1)
}

func TestCreatePublishesChangeFeed(t *testing.T) {
	store := newFakeCampaignStore()
	svc, hub := newCampaignService(store)

	sub := &ws.Client{UserID: 1, Send: make(chan []byte, 8)}
	hub.Register(sub)
	defer sub.Close()

	_, err := svc.Create(1, "dQw4w9WgXcQ", 2, 120)
	require.NoError(t, err)

	types := map[string]bool{}
	for len(sub.Send) > 0 {
		var ev ws.Event
		require.NoError(t, json.Unmarshal(<-sub.Send, &ev))
		types[ev.Type] = true
	}
	assert.True(t, types["campaign"], "campaign insert not pushed")
	assert.True(t, types["wallet"], "wallet balance not pushed")
}

func TestCreateInsufficientBalance(t *testing.T) {
	store := newFakeCampaignStore()
	store.createErr = repository.ErrInsufficientBalance
	svc, _ := newCampaignService(store)

	_, err := svc.Create(1, "dQw4w9WgXcQ", 100, 1200)
	assert.ErrorIs(t, err, repository.ErrInsufficientBalance)
	assert.Empty(t, store.created)
}

func TestListAvailableNeverShowsOwnOrExhausted(t *testing.T) {
	store := newFakeCampaignStore()
	store.available = []models.Campaign{
		{ID: 1, OwnerID: 9, RequiredViews: 10, UsedViews: 3, Status: domain.CampaignStatusActive},
		{ID: 2, OwnerID: 1, RequiredViews: 10, UsedViews: 0, Status: domain.CampaignStatusActive},  // viewer's own
		{ID: 3, OwnerID: 9, RequiredViews: 10, UsedViews: 10, Status: domain.CampaignStatusActive}, // exhausted
		{ID: 4, OwnerID: 9, RequiredViews: 5, UsedViews: 5, Status: domain.CampaignStatusCompleted},
		{ID: 5, OwnerID: 8, RequiredViews: 1, UsedViews: 0, Status: domain.CampaignStatusActive},
	}
	svc, _ := newCampaignService(store)

	list, err := svc.ListAvailable(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.NotEqual(t, uint(1), c.OwnerID)
		assert.Less(t, c.UsedViews, c.RequiredViews)
	}
}

func TestDeleteOwnership(t *testing.T) {
	store := newFakeCampaignStore()
	svc, _ := newCampaignService(store)
	c, err := svc.Create(1, "dQw4w9WgXcQ", 1, 120)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(2, c.ID), repository.ErrNotFound)
	assert.NoError(t, svc.Delete(1, c.ID))
}
