package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 8)}
}

func TestRegisterCloseLeavesNoClients(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 50; i++ {
		c := newClient(uint(i%3 + 1))
		hub.Register(c)
		c.Close()
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestCloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := newClient(1)
	hub.Register(c)
	c.Close()
	c.Close()
	c.Close()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestPublishWalletReachesOnlyOwner(t *testing.T) {
	hub := NewHub()
	owner := newClient(1)
	other := newClient(2)
	hub.Register(owner)
	hub.Register(other)
	defer owner.Close()
	defer other.Close()

	hub.PublishWallet(1, 42)

	select {
	case msg := <-owner.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, "wallet", ev.Type)
		require.NotNil(t, ev.Balance)
		assert.EqualValues(t, 42, *ev.Balance)
	default:
		t.Fatal("owner did not receive wallet event")
	}
	assert.Empty(t, other.Send)
}

func TestPublishRacingCloseDoesNotPanic(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 200; i++ {
		c := newClient(5)
		hub.Register(c)
		done := make(chan struct{})
		go func() {
			hub.PublishWallet(5, int64(i))
			close(done)
		}()
		c.Close()
		<-done
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	hub := NewHub()
	c := newClient(7)
	hub.Register(c)
	c.Close()
	// must not panic or deliver
	hub.PublishWallet(7, 1)
	hub.PublishCampaign(7, "update", nil)
	assert.Equal(t, 0, hub.ClientCount())
}
