// Package session drives a single watch-and-claim interaction: a one-second
// countdown gate, the optional engagement flags, and the final reward claim.
package session

import (
	"errors"
	"sync"
	"time"

	"ytboost/internal/pricing"
	"ytboost/internal/repository"
)

type State string

const (
	StateCountdown State = "countdown"
	StateReady     State = "ready_to_claim"
	StateClaiming  State = "claiming"
	StateClaimed   State = "claimed"
	StateFailed    State = "claim_failed"
)

var (
	ErrCountdownRunning = errors.New("countdown has not finished")
	ErrOpenRequired     = errors.New("open the video before using bonus actions")
	ErrNotClaimable     = errors.New("session is not claimable")
	ErrAlreadyClaimed   = errors.New("reward already claimed")
)

// Submitter persists a completed view and returns the credited reward.
// It must return repository.ErrDuplicateClaim for a repeat (campaign,
// viewer) pair so the session can distinguish it from transient failures.
type Submitter interface {
	SubmitView(campaignID, viewerID uint, watchedSeconds int, liked, subscribed bool) (int64, error)
}

// Session is one viewer's in-flight watch of one campaign. All state behind
// the mutex; the ticker goroutine and HTTP handlers both touch it.
type Session struct {
	ID           string
	CampaignID   uint
	ViewerID     uint
	WatchSeconds int

	submit Submitter

	mu         sync.Mutex
	state      State
	remaining  int
	liked      bool
	subscribed bool
	opened     bool

	done      chan struct{}
	closeOnce sync.Once
}

func New(id string, campaignID, viewerID uint, watchSeconds int, submit Submitter) *Session {
	return &Session{
		ID:           id,
		CampaignID:   campaignID,
		ViewerID:     viewerID,
		WatchSeconds: watchSeconds,
		submit:       submit,
		state:        StateCountdown,
		remaining:    watchSeconds,
		done:         make(chan struct{}),
	}
}

// Start runs the countdown on a real one-second ticker until it reaches zero
// or the session is closed. The ticker is tied to the session's lifetime:
// Close stops it on every exit path, so no callback fires after teardown.
func (s *Session) Start() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				if s.Tick() {
					return
				}
			}
		}
	}()
}

// Tick advances the countdown by one second and reports whether it is done.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCountdown {
		return true
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		s.state = StateReady
		return true
	}
	return false
}

// MarkOpened records that the user opened the external video. One-way: the
// flag is never reset, and it gates the bonus actions.
func (s *Session) MarkOpened() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opened = true
}

// SetFlags toggles the like/subscribe acknowledgements. Only allowed once
// the countdown has completed, and only after the user has opened the
// external video.
func (s *Session) SetFlags(liked, subscribed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCountdown {
		return ErrCountdownRunning
	}
	if s.state != StateReady {
		return ErrNotClaimable
	}
	if !s.opened {
		return ErrOpenRequired
	}
	s.liked = liked
	s.subscribed = subscribed
	return nil
}

// PendingReward is what a claim at this instant would pay, computed from the
// current flag state. The claim itself uses the same computation, so the
// running display and the submitted amount can never diverge.
func (s *Session) PendingReward() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.TotalReward(s.WatchSeconds/60, s.liked, s.subscribed)
}

// Claim submits the completed view. Only valid once the countdown has hit
// zero; if bonus flags are set the open acknowledgement must have been made.
// A duplicate claim is terminal; any other submit failure returns the
// session to ready so the user may retry without replaying the countdown.
func (s *Session) Claim() (int64, error) {
	s.mu.Lock()
	switch s.state {
	case StateClaimed:
		s.mu.Unlock()
		return 0, ErrAlreadyClaimed
	case StateCountdown:
		s.mu.Unlock()
		return 0, ErrCountdownRunning
	case StateReady:
		// proceed
	default:
		s.mu.Unlock()
		return 0, ErrNotClaimable
	}
	if s.remaining > 0 {
		s.mu.Unlock()
		return 0, ErrCountdownRunning
	}
	if (s.liked || s.subscribed) && !s.opened {
		s.mu.Unlock()
		return 0, ErrOpenRequired
	}
	s.state = StateClaiming
	liked, subscribed := s.liked, s.subscribed
	s.mu.Unlock()

	reward, err := s.submit.SubmitView(s.CampaignID, s.ViewerID, s.WatchSeconds, liked, subscribed)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateClaim) {
			s.state = StateFailed
			return 0, err
		}
		s.state = StateReady
		return 0, err
	}
	s.state = StateClaimed
	return reward, nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

func (s *Session) Flags() (liked, subscribed, opened bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked, s.subscribed, s.opened
}

// Close cancels the session. Abandoning before the countdown finishes
// forfeits the whole reward; there is no partial credit. Safe to call more
// than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
