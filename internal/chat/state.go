// Package chat holds the conversation state machine: a single owned state
// value mutated only through the reducer's event set.
package chat

import (
	"slices"

	"github.com/avelis/coachflow/internal/domain"
)

// State is the full conversation state for one client instance. It is a
// plain value; the reducer returns a new State and never mutates its input.
type State struct {
	Messages         []domain.Message
	SessionID        string
	Streaming        bool
	StreamingContent string
	Stats            domain.Stats

	// Transient UI flags.
	ShowCelebration bool
	NewLevel        int // level reached when ShowCelebration is set, else 0
	SidebarOpen     bool
	Err             string
}

// NewState returns the empty default state.
func NewState() State {
	return State{
		Stats: domain.Stats{Level: 1},
	}
}

// Snapshot projects the persistable subset of the state. Derived progress is
// excluded; the message list is bounded later by the store.
func (s State) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		Messages:  slices.Clone(s.Messages),
		SessionID: s.SessionID,
		Stats: domain.SnapshotStats{
			TotalMessages:      s.Stats.TotalMessages,
			Level:              s.Stats.Level,
			CurrentStreak:      s.Stats.CurrentStreak,
			LastEngagementDate: s.Stats.LastEngagementDate,
		},
	}
}
