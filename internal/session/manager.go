package session

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks in-flight viewing sessions by id. Sessions are in-memory
// only: a server restart forfeits them, matching the no-partial-credit rule.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	submit   Submitter
}

func NewManager(submit Submitter) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		submit:   submit,
	}
}

// Open creates and starts a session for one viewer watching one campaign.
// A viewer gets one session per campaign at a time; opening again while one
// is in flight returns the existing session.
func (m *Manager) Open(campaignID, viewerID uint, watchSeconds int) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.CampaignID == campaignID && s.ViewerID == viewerID {
			return s
		}
	}
	s := New(uuid.NewString(), campaignID, viewerID, watchSeconds, m.submit)
	m.sessions[s.ID] = s
	s.Start()
	return s
}

// Get returns the session only to the viewer who owns it.
func (m *Manager) Get(id string, viewerID uint) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.ViewerID != viewerID {
		return nil, false
	}
	return s, true
}

// Close cancels and removes a session. Exactly one teardown happens per
// open, no matter how many times this is called.
func (m *Manager) Close(id string, viewerID uint) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok || s.ViewerID != viewerID {
		m.mu.Unlock()
		return false
	}
	delete(m.sessions, id)
	m.mu.Unlock()
	s.Close()
	return true
}

// Count reports live sessions, used to verify teardown in tests.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
