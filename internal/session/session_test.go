package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ytboost/internal/repository"
)

// fakeSubmitter records submissions and returns a scripted result.
type fakeSubmitter struct {
	calls  int
	reward int64
	err    error

	lastLiked      bool
	lastSubscribed bool
	lastSeconds    int
}

func (f *fakeSubmitter) SubmitView(campaignID, viewerID uint, watchedSeconds int, liked, subscribed bool) (int64, error) {
	f.calls++
	f.lastSeconds = watchedSeconds
	f.lastLiked = liked
	f.lastSubscribed = subscribed
	if f.err != nil {
		return 0, f.err
	}
	return f.reward, nil
}

func tick(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestCountdownReachesReady(t *testing.T) {
	sub := &fakeSubmitter{reward: 7}
	s := New("s1", 1, 2, 180, sub)

	assert.Equal(t, StateCountdown, s.State())
	assert.Equal(t, 180, s.Remaining())

	tick(s, 179)
	assert.Equal(t, StateCountdown, s.State())
	assert.Equal(t, 1, s.Remaining())

	tick(s, 1)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 0, s.Remaining())
}

func TestClaimBeforeCountdownRejected(t *testing.T) {
	sub := &fakeSubmitter{reward: 7}
	s := New("s1", 1, 2, 180, sub)
	tick(s, 100)

	_, err := s.Claim()
	assert.ErrorIs(t, err, ErrCountdownRunning)
	assert.Zero(t, sub.calls)
	assert.Equal(t, StateCountdown, s.State())
}

func TestClaimAtZeroSubmitsBaseReward(t *testing.T) {
	sub := &fakeSubmitter{reward: 7}
	s := New("s1", 1, 2, 180, sub)
	tick(s, 180)

	reward, err := s.Claim()
	require.NoError(t, err)
	assert.EqualValues(t, 7, reward)
	assert.Equal(t, StateClaimed, s.State())
	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, 180, sub.lastSeconds)
	assert.False(t, sub.lastLiked)
	assert.False(t, sub.lastSubscribed)
}

func TestSecondClaimRejected(t *testing.T) {
	sub := &fakeSubmitter{reward: 7}
	s := New("s1", 1, 2, 180, sub)
	tick(s, 180)

	_, err := s.Claim()
	require.NoError(t, err)
	_, err = s.Claim()
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, 1, sub.calls)
}

func TestFlagsRequireOpenAcknowledgement(t *testing.T) {
	sub := &fakeSubmitter{reward: 14}
	s := New("s1", 1, 2, 300, sub)
	tick(s, 300)

	err := s.SetFlags(true, true)
	assert.ErrorIs(t, err, ErrOpenRequired)

	s.MarkOpened()
	require.NoError(t, s.SetFlags(true, true))

	reward, err := s.Claim()
	require.NoError(t, err)
	assert.EqualValues(t, 14, reward)
	assert.True(t, sub.lastLiked)
	assert.True(t, sub.lastSubscribed)
}

func TestFlagsRejectedDuringCountdown(t *testing.T) {
	s := New("s1", 1, 2, 300, &fakeSubmitter{})
	s.MarkOpened()

	err := s.SetFlags(true, false)
	assert.ErrorIs(t, err, ErrCountdownRunning)

	tick(s, 300)
	require.NoError(t, s.SetFlags(true, false))
}

func TestPendingRewardTracksFlagState(t *testing.T) {
	sub := &fakeSubmitter{}
	s := New("s1", 1, 2, 300, sub) // 5 minutes: base 11
	tick(s, 300)
	assert.EqualValues(t, 11, s.PendingReward())

	s.MarkOpened()
	require.NoError(t, s.SetFlags(true, false))
	assert.EqualValues(t, 12, s.PendingReward())

	require.NoError(t, s.SetFlags(true, true))
	assert.EqualValues(t, 14, s.PendingReward())

	require.NoError(t, s.SetFlags(false, false))
	assert.EqualValues(t, 11, s.PendingReward())
}

func TestDuplicateClaimIsTerminal(t *testing.T) {
	sub := &fakeSubmitter{err: repository.ErrDuplicateClaim}
	s := New("s1", 1, 2, 120, sub)
	tick(s, 120)

	_, err := s.Claim()
	assert.ErrorIs(t, err, repository.ErrDuplicateClaim)
	assert.Equal(t, StateFailed, s.State())

	// terminal: no retry
	_, err = s.Claim()
	assert.ErrorIs(t, err, ErrNotClaimable)
	assert.Equal(t, 1, sub.calls)
}

func TestTransientFailureAllowsRetryWithoutReplay(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("store unavailable")}
	s := New("s1", 1, 2, 120, sub)
	tick(s, 120)

	_, err := s.Claim()
	require.Error(t, err)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 0, s.Remaining())

	sub.err = nil
	sub.reward = 5
	reward, err := s.Claim()
	require.NoError(t, err)
	assert.EqualValues(t, 5, reward)
	assert.Equal(t, 2, sub.calls)
}

func TestManagerOpenCloseLeavesNoSessions(t *testing.T) {
	m := NewManager(&fakeSubmitter{})
	for i := 0; i < 20; i++ {
		s := m.Open(1, 2, 120)
		ok := m.Close(s.ID, 2)
		require.True(t, ok)
	}
	assert.Equal(t, 0, m.Count())
}

func TestManagerReturnsExistingSession(t *testing.T) {
	m := NewManager(&fakeSubmitter{})
	a := m.Open(1, 2, 120)
	b := m.Open(1, 2, 120)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, m.Count())
	m.Close(a.ID, 2)
}

func TestManagerEnforcesOwnership(t *testing.T) {
	m := NewManager(&fakeSubmitter{})
	s := m.Open(1, 2, 120)

	_, ok := m.Get(s.ID, 99)
	assert.False(t, ok)
	assert.False(t, m.Close(s.ID, 99))

	_, ok = m.Get(s.ID, 2)
	assert.True(t, ok)
	assert.True(t, m.Close(s.ID, 2))
}

func TestCloseIsIdempotent(t *testing.T) {
	s := New("s1", 1, 2, 120, &fakeSubmitter{})
	s.Start()
	s.Close()
	s.Close()
}
