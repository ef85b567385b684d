package domain

import (
	"strings"
	"testing"
)

func validManifest() Manifest {
	return Manifest{
		Name:    "share",
		Version: "1.0.0",
		Binary:  "/opt/hooks/share",
		SHA256:  strings.Repeat("a", 64),
		Enabled: true,
		Events:  []EventKind{EventCheckin, EventMilestone},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	if err := validManifest().Validate(); err != nil {
		t.Fatalf("expected valid manifest: %v", err)
	}
	cases := map[string]func(*Manifest){
		"missing name":    func(m *Manifest) { m.Name = "" },
		"missing version": func(m *Manifest) { m.Version = "" },
		"missing binary":  func(m *Manifest) { m.Binary = "" },
		"bad checksum":    func(m *Manifest) { m.SHA256 = "ABC" },
		"no events":       func(m *Manifest) { m.Events = nil },
		"unknown event":   func(m *Manifest) { m.Events = []EventKind{"reset"} },
		"duplicate event": func(m *Manifest) { m.Events = []EventKind{EventCheckin, EventCheckin} },
	}
	for name, mutate := range cases {
		m := validManifest()
		mutate(&m)
		if err := m.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestSubscribes(t *testing.T) {
	t.Parallel()
	m := validManifest()
	m.Events = []EventKind{EventMilestone}
	if m.Subscribes(EventCheckin) || !m.Subscribes(EventMilestone) {
		t.Fatalf("unexpected subscription: %+v", m.Events)
	}
}

func TestEventValidate(t *testing.T) {
	t.Parallel()
	if err := (Event{Kind: EventCheckin, Date: "2026-03-10"}).Validate(); err != nil {
		t.Fatalf("expected valid checkin event: %v", err)
	}
	if err := (Event{Kind: EventMilestone, Date: "2026-03-10"}).Validate(); err == nil {
		t.Fatalf("milestone event needs days")
	}
	if err := (Event{Kind: EventCheckin}).Validate(); err == nil {
		t.Fatalf("event needs a date")
	}
}
