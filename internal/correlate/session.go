package correlate

import (
	"fmt"
	"time"

	"github.com/loglens/loglens/internal/record"
)

// MaxSessionGroups bounds the number of concurrently tracked sessions.
const MaxSessionGroups = 100000

// DefaultSessionTimeout is the default idle gap that closes a session.
const DefaultSessionTimeout = 30 * time.Minute

// defaultSessionAliases lists the structured-data fallback keys probed
// when a record carries no typed session/user identifier.
var defaultSessionAliases = []string{"session_id", "user_id", "client_ip", "user_agent"}

type sessionState struct {
	members  []record.Record
	lastSeen *time.Time
}

// SessionStrategy groups records by session identity, closing a session's
// group once a new record for it arrives more than SessionTimeout after
// the last one seen.
type SessionStrategy struct {
	SessionTimeout time.Duration
	SessionAliases []string
}

func NewSessionStrategy() *SessionStrategy {
	return &SessionStrategy{
		SessionTimeout: DefaultSessionTimeout,
		SessionAliases: defaultSessionAliases,
	}
}

func (s *SessionStrategy) Name() string { return "session" }

func (s *SessionStrategy) SupportsStreaming() bool { return false }

func (s *SessionStrategy) identifierOf(r record.Record) string {
	if id := firstNonEmpty(r.Correlation.SessionID, r.Correlation.UserID); id != "" {
		return id
	}
	return structuredAlias(r, s.SessionAliases)
}

func (s *SessionStrategy) Correlate(records []record.Record, bufferSize int) Result {
	timeout := s.SessionTimeout
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}

	sessions := make(map[string]*sessionState)
	order := make([]string, 0)
	var groups []Group
	var orphans []record.Record
	overflowWarned := false

	closeSession := func(key string) {
		st := sessions[key]
		if st == nil {
			return
		}
		if len(st.members) >= 2 {
			groups = append(groups, NewGroup(fmt.Sprintf("session:%s:%d", key, len(groups)), key, s.Name(), st.members))
		} else {
			orphans = append(orphans, st.members...)
		}
		delete(sessions, key)
	}

	for _, r := range records {
		id := s.identifierOf(r)
		if id == "" {
			orphans = append(orphans, r)
			continue
		}
		st, exists := sessions[id]
		if !exists {
			if len(sessions) >= MaxSessionGroups {
				if !overflowWarned {
					overflowWarned = true
					DiagWarn("session: session map exceeded MaxSessionGroups, dropping additional sessions")
				}
				orphans = append(orphans, r)
				continue
			}
			st = &sessionState{}
			sessions[id] = st
			order = append(order, id)
		} else if st.lastSeen != nil && r.Timestamp != nil && r.Timestamp.Sub(*st.lastSeen) > timeout {
			closeSession(id)
			st = &sessionState{}
			sessions[id] = st
		}
		st.members = append(st.members, r)
		if r.Timestamp != nil {
			t := *r.Timestamp
			st.lastSeen = &t
		}
	}

	for _, id := range order {
		closeSession(id)
	}

	return NewResult(groups, orphans)
}
