package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the user's verdict on a resolved spin.
type Status string

const (
	StatusCompleted Status = "Выполнено"
	StatusSkipped   Status = "Пропущено"
)

// HistoryTimeLayout is the timestamp layout stored in history entries.
const HistoryTimeLayout = "02.01 15:04"

// HistoryDisplayLimit is the number of entries shown in the sidebar.
const HistoryDisplayLimit = 30

// HistoryEntry records one confirmed spin result.
type HistoryEntry struct {
	ID        string   `json:"id,omitempty"`
	Time      string   `json:"time"`
	Status    Status   `json:"status"`
	Exercises []string `json:"ex,omitempty"`
}

// NewHistoryEntry builds an entry for the given items.
func NewHistoryEntry(at time.Time, status Status, items []Item) HistoryEntry {
	exercises := make([]string, 0, len(items))
	for _, item := range items {
		exercises = append(exercises, item.Label())
	}
	return HistoryEntry{
		ID:        uuid.NewString(),
		Time:      at.Format(HistoryTimeLayout),
		Status:    status,
		Exercises: exercises,
	}
}

// Completed reports whether the entry was marked as done.
func (entry HistoryEntry) Completed() bool {
	return entry.Status == StatusCompleted
}

// UnmarshalJSON tolerates legacy entries whose "ex" field is missing or not a list.
func (entry *HistoryEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		Time      string          `json:"time"`
		Status    Status          `json:"status"`
		Exercises json.RawMessage `json:"ex"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var exercises []string
	if len(raw.Exercises) > 0 {
		if err := json.Unmarshal(raw.Exercises, &exercises); err != nil {
			exercises = nil
		}
	}

	*entry = HistoryEntry{
		ID:        raw.ID,
		Time:      raw.Time,
		Status:    raw.Status,
		Exercises: exercises,
	}
	return nil
}
