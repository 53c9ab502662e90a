package chat

import (
	"slices"
	"time"

	"github.com/avelis/coachflow/internal/domain"
	"github.com/avelis/coachflow/internal/gamify"
)

// Reducer applies events to conversation state. Now is injectable so streak
// transitions can be tested against fixed dates.
type Reducer struct {
	Now func() time.Time
}

// NewReducer returns a reducer using the wall clock.
func NewReducer() *Reducer {
	return &Reducer{Now: time.Now}
}

// Apply returns the state after handling ev. Every transition is total;
// unrecognized events return the state unchanged.
func (r *Reducer) Apply(s State, ev Event) State {
	switch ev := ev.(type) {
	case AddUserMessage:
		return r.addUserMessage(s, ev)

	case StartStreaming:
		s.Streaming = true
		s.StreamingContent = ""
		s.Err = ""
		return s

	case AppendStreamChunk:
		s.StreamingContent += ev.Chunk
		return s

	case FinishStreaming:
		msg := domain.Message{
			ID:        ev.ID,
			Role:      domain.RoleCoach,
			Content:   s.StreamingContent,
			Timestamp: r.Now(),
		}
		s.Messages = append(slices.Clone(s.Messages), msg)
		s.Streaming = false
		s.StreamingContent = ""
		return s

	case StreamError:
		s.Streaming = false
		s.StreamingContent = ""
		s.Err = ev.Message
		return s

	case DismissCelebration:
		s.ShowCelebration = false
		s.NewLevel = 0
		return s

	case DismissError:
		s.Err = ""
		return s

	case ToggleSidebar:
		s.SidebarOpen = !s.SidebarOpen
		return s

	case CloseSidebar:
		s.SidebarOpen = false
		return s

	case Hydrate:
		return r.hydrate(s, ev.Snapshot)

	case ClearMessages:
		s.Messages = nil
		return s

	default:
		return s
	}
}

func (r *Reducer) addUserMessage(s State, ev AddUserMessage) State {
	now := r.Now()

	msg := domain.Message{
		ID:        ev.ID,
		Role:      domain.RoleUser,
		Content:   ev.Content,
		Timestamp: now,
	}

	total := s.Stats.TotalMessages + 1
	level := gamify.Level(total)
	leveledUp := level > s.Stats.Level

	// A day's first message extends or restarts the streak; later messages
	// the same day leave it alone.
	streak := s.Stats.CurrentStreak
	if !gamify.EngagedToday(s.Stats.LastEngagementDate, now) {
		if gamify.StreakValid(s.Stats.LastEngagementDate, now) {
			streak++
		} else {
			streak = 1
		}
	}

	s.Messages = append(slices.Clone(s.Messages), msg)
	s.Stats = domain.Stats{
		TotalMessages:       total,
		Level:               level,
		ProgressToNextLevel: gamify.Progress(total),
		CurrentStreak:       streak,
		LastEngagementDate:  now.Format(gamify.DateLayout),
	}
	s.ShowCelebration = leveledUp
	if leveledUp {
		s.NewLevel = level
	} else {
		s.NewLevel = 0
	}
	s.Err = ""
	return s
}

func (r *Reducer) hydrate(s State, snap domain.Snapshot) State {
	now := r.Now()

	streak := snap.Stats.CurrentStreak
	if !gamify.StreakValid(snap.Stats.LastEngagementDate, now) {
		streak = 0
	}

	s.Messages = slices.Clone(snap.Messages)
	s.SessionID = snap.SessionID
	s.Stats = domain.Stats{
		TotalMessages:       snap.Stats.TotalMessages,
		Level:               gamify.Level(snap.Stats.TotalMessages),
		ProgressToNextLevel: gamify.Progress(snap.Stats.TotalMessages),
		CurrentStreak:       streak,
		LastEngagementDate:  snap.Stats.LastEngagementDate,
	}
	return s
}
