package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"zenstreak/internal/modules/streak/domain"
	streakout "zenstreak/internal/modules/streak/port/out"
	"zenstreak/internal/platform/markdown"
	"zenstreak/internal/platform/slug"
)

type VaultJournal struct {
	dir string
}

func NewVaultJournal(dir string) streakout.Journal {
	return &VaultJournal{dir: dir}
}

type journalMeta struct {
	Date          string  `yaml:"date"`
	Type          string  `yaml:"type"`
	Duration      float64 `yaml:"duration"`
	Timestamp     string  `yaml:"timestamp"`
	Streak        int     `yaml:"streak"`
	LongestStreak int     `yaml:"longest_streak"`
}

// Write renders one note per check-in under YYYY/MM. A note already written
// for the same date is kept as is.
func (j *VaultJournal) Write(_ context.Context, entry domain.JournalEntry) (string, error) {
	day, err := time.Parse(domain.DateLayout, entry.Date)
	if err != nil {
		return "", fmt.Errorf("journal date %q: %w", entry.Date, err)
	}
	dir := filepath.Join(j.dir, day.Format("2006"), day.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", day.Format("02"), slug.Make(entry.Type)))

	if existing, err := os.ReadFile(path); err == nil {
		meta := journalMeta{}
		if _, err := markdown.ParseNote(string(existing), &meta); err == nil && meta.Date == entry.Date {
			return path, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read journal note: %w", err)
	}

	meta := journalMeta{
		Date:          entry.Date,
		Type:          entry.Type,
		Duration:      entry.Duration,
		Timestamp:     entry.Timestamp.UTC().Format(time.RFC3339),
		Streak:        entry.CurrentStreak,
		LongestStreak: entry.LongestStreak,
	}
	body := fmt.Sprintf("# %s meditation\n\n- Duration: %g minutes\n- Streak: %d days\n\n## Reflection\n\n", entry.Type, entry.Duration, entry.CurrentStreak)
	rendered, err := markdown.RenderNote(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}
