package domain

// SnapshotStats is the persisted subset of Stats. ProgressToNextLevel is
// deliberately absent: it is derived and recomputed on hydration. Level is
// stored for display by external readers but hydration recomputes it too.
type SnapshotStats struct {
	TotalMessages      int    `json:"totalMessages"`
	Level              int    `json:"level"`
	CurrentStreak      int    `json:"currentStreak"`
	LastEngagementDate string `json:"lastEngagementDate,omitempty"`
}

// Snapshot is the reduced, serializable projection of conversation state
// that survives process restarts. The message list is bounded by the store
// before writing.
type Snapshot struct {
	Messages  []Message     `json:"messages"`
	SessionID string        `json:"sessionId"`
	Stats     SnapshotStats `json:"stats"`
}
