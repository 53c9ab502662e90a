package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/avelis/coachflow/internal/chat"
	"github.com/avelis/coachflow/internal/domain"
	"github.com/avelis/coachflow/internal/gamify"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	coachStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	celebrationStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 2).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FFD700"))

	statsBoxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241"))
)

func tierStyle(level int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gamify.TierColor(level)))
}

func printWelcome(state chat.State) {
	fmt.Println(titleStyle.Render("CoachFlow"))
	if len(state.Messages) == 0 {
		fmt.Println(coachStyle.Render("coach> ") + gamify.WelcomeMessage)
	} else {
		last := state.Messages[len(state.Messages)-1]
		fmt.Println(dimStyle.Render(fmt.Sprintf("Welcome back. Last message %s.", FormatRelativeTime(last.Timestamp, time.Now()))))
	}
	quote := gamify.MotivationalQuotes[rand.Intn(len(gamify.MotivationalQuotes))]
	fmt.Println(dimStyle.Render(`"` + quote + `"`))
	fmt.Println(dimStyle.Render("Type /stats for your progress, /quit to leave."))
	fmt.Println()
}

func printCoachPrefix() {
	fmt.Print(coachStyle.Render("coach> "))
}

func printError(message string) {
	fmt.Println(errorStyle.Render("error: ") + message)
	fmt.Println()
}

func printCelebration(level int) {
	body := fmt.Sprintf("Level up! You reached level %d\n%s", level, gamify.TierName(level))
	fmt.Println(celebrationStyle.BorderForeground(lipgloss.Color(gamify.TierColor(level))).Render(body))
	fmt.Println()
}

func printStats(stats domain.Stats) {
	style := tierStyle(stats.Level)
	lines := []string{
		style.Render(fmt.Sprintf("Level %d", stats.Level)) + dimStyle.Render(" "+string(gamify.TierFor(stats.Level))),
		style.Render(gamify.TierName(stats.Level)),
		progressBar(stats.ProgressToNextLevel) + dimStyle.Render(fmt.Sprintf(" %d/%d", stats.ProgressToNextLevel, gamify.MessagesPerLevel)),
		fmt.Sprintf("Streak: %s", streakLabel(stats.CurrentStreak)),
		dimStyle.Render(fmt.Sprintf("%d messages total", stats.TotalMessages)),
	}
	fmt.Println(statsBoxStyle.Render(strings.Join(lines, "\n")))
	fmt.Println()
}

func printHistory(messages []domain.Message) {
	if len(messages) == 0 {
		fmt.Println(dimStyle.Render("No messages yet."))
		fmt.Println()
		return
	}
	now := time.Now()
	for _, m := range messages {
		who := "you> "
		render := lipgloss.NewStyle().Bold(true).Render
		if m.Role == domain.RoleCoach {
			who = "coach> "
			render = coachStyle.Render
		}
		fmt.Println(render(who) + m.Content + dimStyle.Render("  ("+FormatRelativeTime(m.Timestamp, now)+")"))
	}
	fmt.Println()
}

func progressBar(progress int) string {
	filled := progress
	if filled > gamify.MessagesPerLevel {
		filled = gamify.MessagesPerLevel
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", gamify.MessagesPerLevel-filled)
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Render(bar)
}

func streakLabel(streak int) string {
	if streak <= 0 {
		return "0 days"
	}
	if streak == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days 🔥", streak)
}

// FormatRelativeTime renders a timestamp relative to now, falling back to a
// plain date once it is more than a week old.
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
