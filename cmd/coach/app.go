package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/avelis/coachflow/internal/chat"
	"github.com/avelis/coachflow/internal/config"
	"github.com/avelis/coachflow/internal/domain"
	"github.com/avelis/coachflow/internal/store"
	"github.com/avelis/coachflow/internal/stream"
	"github.com/google/uuid"
	"github.com/peterh/liner"
)

// App owns the conversation state. All state transitions run on the REPL
// goroutine: the consumer's callbacks fire inside the blocking Send call, so
// the reducer is never invoked concurrently.
type App struct {
	cfg      *config.ClientConfig
	store    store.SnapshotStore
	reducer  *chat.Reducer
	state    chat.State
	consumer *stream.Consumer
	line     *liner.State
}

// NewApp wires the client pieces together.
func NewApp(cfg *config.ClientConfig, snapshots store.SnapshotStore) *App {
	app := &App{
		cfg:     cfg,
		store:   snapshots,
		reducer: chat.NewReducer(),
		state:   chat.NewState(),
	}
	app.consumer = stream.NewConsumer(cfg.ServerURL+"/api/chat", stream.Handlers{
		OnChunk:    app.onChunk,
		OnComplete: app.onComplete,
		OnError:    app.onError,
	})
	return app
}

// dispatch applies an event and persists the resulting snapshot. Persistence
// failures are logged and swallowed; losing a snapshot must never break the
// conversation.
func (a *App) dispatch(ev chat.Event) {
	a.state = a.reducer.Apply(a.state, ev)
	snap := a.state.Snapshot()
	if err := a.store.Save(context.Background(), &snap); err != nil {
		slog.Warn("Failed to persist snapshot", "error", err)
	}
}

// hydrate restores persisted state, generating a session ID when none was
// restored.
func (a *App) hydrate(ctx context.Context) {
	snap, err := a.store.Load(ctx)
	if err != nil {
		slog.Warn("Failed to load snapshot, starting fresh", "error", err)
	}
	if snap == nil || snap.SessionID == "" {
		snap = &domain.Snapshot{SessionID: uuid.NewString()}
	}
	a.dispatch(chat.Hydrate{Snapshot: *snap})
}

// Run starts the REPL and blocks until the user quits.
func (a *App) Run(ctx context.Context) error {
	a.hydrate(ctx)

	a.line = liner.NewLiner()
	a.line.SetCtrlCAborts(true)
	defer a.line.Close()

	printWelcome(a.state)

	for {
		input, err := a.line.Prompt("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		a.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := a.handleCommand(input); quit {
				return nil
			}
			continue
		}

		a.sendMessage(input)
	}
}

func (a *App) handleCommand(cmd string) (quit bool) {
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/stats":
		a.dispatch(chat.ToggleSidebar{})
		if a.state.SidebarOpen {
			printStats(a.state.Stats)
			a.dispatch(chat.CloseSidebar{})
		}
	case "/history":
		printHistory(a.state.Messages)
	case "/clear":
		a.dispatch(chat.ClearMessages{})
		fmt.Println("Conversation cleared. Your stats are untouched.")
	default:
		fmt.Println("Commands: /stats /history /clear /quit")
	}
	return false
}

// sendMessage runs one full exchange: record the user message, stream the
// coach's reply, and settle the state afterwards. Ctrl+C during the stream
// cancels it silently.
func (a *App) sendMessage(content string) {
	if a.state.Streaming {
		return
	}

	a.dispatch(chat.AddUserMessage{ID: uuid.NewString(), Content: content})
	if a.state.ShowCelebration {
		printCelebration(a.state.NewLevel)
		a.dispatch(chat.DismissCelebration{})
	}

	a.dispatch(chat.StartStreaming{})
	printCoachPrefix()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a.consumer.Send(ctx, a.state.SessionID, content)
	stop()

	if a.state.Streaming {
		// Cancelled mid-stream: drop the partial reply without surfacing
		// an error banner.
		fmt.Println()
		a.dispatch(chat.StreamError{Message: ""})
	}
}

func (a *App) onChunk(chunk string) {
	a.dispatch(chat.AppendStreamChunk{Chunk: chunk})
	fmt.Print(chunk)
}

func (a *App) onComplete() {
	a.dispatch(chat.FinishStreaming{ID: uuid.NewString()})
	fmt.Print("\n\n")
}

func (a *App) onError(message string) {
	a.dispatch(chat.StreamError{Message: message})
	fmt.Println()
	printError(message)
	a.dispatch(chat.DismissError{})
}
