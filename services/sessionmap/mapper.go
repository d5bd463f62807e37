// File: services/sessionmap/mapper.go
package sessionmap

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
)

// Mapper maintains a bidirectional in-memory mapping between (userID,
// sessionID) pairs and conversation-thread identifiers. The thread ID is a
// deterministic one-way transform of the pair, so the same session always
// lands on the same thread even across Mapper instances. This lives beside
// the scheduling core but is consumed only by the upstream agent layer.
type Mapper struct {
	mu              sync.Mutex
	sessionToThread map[sessionKey]string
	threadToSession map[string]sessionKey
}

type sessionKey struct {
	UserID    string
	SessionID string
}

// Stats is a point-in-time count of active mappings.
type Stats struct {
	ActiveSessions int `json:"active_sessions"`
	ActiveThreads  int `json:"active_threads"`
}

// NewMapper returns an empty mapper.
func NewMapper() *Mapper {
	return &Mapper{
		sessionToThread: make(map[sessionKey]string),
		threadToSession: make(map[string]sessionKey),
	}
}

// GetThreadID returns the thread ID for the given user and session, creating
// and recording it on first use.
func (m *Mapper) GetThreadID(userID, sessionID string) string {
	key := sessionKey{UserID: userID, SessionID: sessionID}

	m.mu.Lock()
	defer m.mu.Unlock()

	if threadID, ok := m.sessionToThread[key]; ok {
		return threadID
	}
	threadID := threadIDFor(userID, sessionID)
	m.sessionToThread[key] = threadID
	m.threadToSession[threadID] = key
	return threadID
}

// GetSessionInfo reverse-looks-up the user and session behind a thread ID.
func (m *Mapper) GetSessionInfo(threadID string) (userID, sessionID string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := m.threadToSession[threadID]
	if !ok {
		return "", "", false
	}
	return key.UserID, key.SessionID, true
}

// ClearSession removes the mapping for one user/session pair. Reports whether
// a mapping existed.
func (m *Mapper) ClearSession(userID, sessionID string) bool {
	key := sessionKey{UserID: userID, SessionID: sessionID}

	m.mu.Lock()
	defer m.mu.Unlock()

	threadID, ok := m.sessionToThread[key]
	if !ok {
		return false
	}
	delete(m.sessionToThread, key)
	delete(m.threadToSession, threadID)
	return true
}

// ClearAll drops every mapping and returns how many were held.
func (m *Mapper) ClearAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := len(m.sessionToThread)
	m.sessionToThread = make(map[sessionKey]string)
	m.threadToSession = make(map[string]sessionKey)
	return count
}

// GetStats reports the current mapping counts.
func (m *Mapper) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		ActiveSessions: len(m.sessionToThread),
		ActiveThreads:  len(m.threadToSession),
	}
}

// threadIDFor hashes "user:session" and keeps the first 16 hex characters,
// prefixed for readability.
func threadIDFor(userID, sessionID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", userID, sessionID)))
	return "thread_" + hex.EncodeToString(sum[:])[:16]
}
