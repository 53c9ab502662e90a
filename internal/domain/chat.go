// Package domain contains core domain types for the coachflow application.
package domain

import (
	"time"
)

// Role identifies the author of a message.
type Role string

const (
	// RoleUser is a message written by the person chatting.
	RoleUser Role = "user"
	// RoleCoach is a message produced by the coach workflow.
	RoleCoach Role = "coach"
)

// Message is a single conversation entry. Messages are immutable once
// created; the conversation state owns them exclusively.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats holds the gamification counters for a conversation.
// Level and ProgressToNextLevel are derived from TotalMessages and are
// recomputed whenever TotalMessages changes; they are never authoritative
// on their own.
type Stats struct {
	TotalMessages       int    `json:"totalMessages"`
	Level               int    `json:"level"`
	ProgressToNextLevel int    `json:"progressToNextLevel"`
	CurrentStreak       int    `json:"currentStreak"`
	LastEngagementDate  string `json:"lastEngagementDate,omitempty"` // YYYY-MM-DD, empty when never engaged
}
