package domain

import "time"

type JournalEntry struct {
	Date          string
	Type          string
	Duration      float64
	Timestamp     time.Time
	CurrentStreak int
	LongestStreak int
}

func NewJournalEntry(r Record, date string) (JournalEntry, bool) {
	entry, ok := r.Checkins[date]
	if !ok || !entry.Meditated {
		return JournalEntry{}, false
	}
	return JournalEntry{
		Date:          date,
		Type:          entry.Type,
		Duration:      entry.Duration,
		Timestamp:     entry.Timestamp,
		CurrentStreak: r.CurrentStreak,
		LongestStreak: r.LongestStreak,
	}, true
}
