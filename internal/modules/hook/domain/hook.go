package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type EventKind string

const (
	EventCheckin   EventKind = "checkin"
	EventMilestone EventKind = "milestone"
)

var (
	ErrHookDisabled     = errors.New("hook is disabled")
	ErrChecksumMismatch = errors.New("hook checksum mismatch")
	ErrHookTimeout      = errors.New("hook timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Binary  string      `json:"binary"`
	SHA256  string      `json:"sha256"`
	Enabled bool        `json:"enabled"`
	Events  []EventKind `json:"events"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("hook name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("hook version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("hook binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("hook sha256 must be lowercase 64-char hex")
	}
	if len(m.Events) == 0 {
		return fmt.Errorf("hook %s subscribes to no events", m.Name)
	}
	seen := map[EventKind]struct{}{}
	for _, kind := range m.Events {
		if err := kind.Validate(); err != nil {
			return err
		}
		if _, ok := seen[kind]; ok {
			return fmt.Errorf("duplicate event: %s", kind)
		}
		seen[kind] = struct{}{}
	}
	return nil
}

func (k EventKind) Validate() error {
	switch k {
	case EventCheckin, EventMilestone:
		return nil
	default:
		return fmt.Errorf("unknown event: %s", k)
	}
}

func (m Manifest) Subscribes(kind EventKind) bool {
	for _, k := range m.Events {
		if k == kind {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name    string
	Version string
	Events  []EventKind
}

type Event struct {
	ID             string
	Kind           EventKind
	Date           string
	Type           string
	Duration       float64
	CurrentStreak  int
	LongestStreak  int
	TotalSessions  int
	Milestone      int
	MilestoneTitle string
}

func (e Event) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}
	if e.Date == "" {
		return fmt.Errorf("event date is required")
	}
	if e.Kind == EventMilestone && e.Milestone <= 0 {
		return fmt.Errorf("milestone event without milestone days")
	}
	return nil
}

type Reply struct {
	Message string
}

// Outcome is what one hook produced for one event.
type Outcome struct {
	Name    string
	Message string
	Err     error
}
