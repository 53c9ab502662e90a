package chat

import (
	"github.com/avelis/coachflow/internal/domain"
)

// Event is the closed set of conversation state transitions. The sealed
// marker method keeps dispatch exhaustive: a new event type fails to compile
// until the reducer handles it or deliberately falls through to the no-op
// default.
type Event interface {
	isEvent()
}

// AddUserMessage appends a user message and advances the gamification stats.
type AddUserMessage struct {
	ID      string
	Content string
}

// StartStreaming marks the beginning of a coach response stream.
type StartStreaming struct{}

// AppendStreamChunk adds a fragment to the in-flight streaming buffer.
type AppendStreamChunk struct {
	Chunk string
}

// FinishStreaming materializes the streaming buffer as a coach message.
type FinishStreaming struct {
	ID string
}

// StreamError aborts the in-flight stream with a user-visible message.
type StreamError struct {
	Message string
}

// DismissCelebration hides the level-up celebration.
type DismissCelebration struct{}

// DismissError clears the error banner.
type DismissError struct{}

// ToggleSidebar flips the stats sidebar.
type ToggleSidebar struct{}

// CloseSidebar closes the stats sidebar.
type CloseSidebar struct{}

// Hydrate replaces messages, session id, and stats from a persisted
// snapshot. Derived stats fields are recomputed, never trusted.
type Hydrate struct {
	Snapshot domain.Snapshot
}

// ClearMessages empties the message list only.
type ClearMessages struct{}

func (AddUserMessage) isEvent()     {}
func (StartStreaming) isEvent()     {}
func (AppendStreamChunk) isEvent()  {}
func (FinishStreaming) isEvent()    {}
func (StreamError) isEvent()        {}
func (DismissCelebration) isEvent() {}
func (DismissError) isEvent()       {}
func (ToggleSidebar) isEvent()      {}
func (CloseSidebar) isEvent()       {}
func (Hydrate) isEvent()            {}
func (ClearMessages) isEvent()      {}
