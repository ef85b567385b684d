package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type MeditationType struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Phase struct {
	Title    string   `yaml:"title"`
	Seconds  int      `yaml:"seconds"`
	Guidance []string `yaml:"guidance"`
}

func (p Phase) Duration() time.Duration {
	return time.Duration(p.Seconds) * time.Second
}

type Meditation struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Type        string  `yaml:"type"`
	Seconds     int     `yaml:"seconds"`
	Phases      []Phase `yaml:"phases"`
}

func (m Meditation) Duration() time.Duration {
	return time.Duration(m.Seconds) * time.Second
}

// Minutes is the length credited to a check-in after the session completes.
func (m Meditation) Minutes() float64 {
	return float64(m.Seconds) / 60
}

type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
	Theme  string `yaml:"theme"`
}

type Catalog struct {
	Types       []MeditationType `yaml:"types"`
	Meditations []Meditation     `yaml:"meditations"`
	Quotes      []Quote          `yaml:"quotes"`
}

func (c Catalog) Validate() error {
	var errs []error
	if len(c.Types) == 0 {
		errs = append(errs, errors.New("no meditation types"))
	}
	if len(c.Quotes) == 0 {
		errs = append(errs, errors.New("no quotes"))
	}
	types := map[string]bool{}
	for _, t := range c.Types {
		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, errors.New("type with empty id"))
			continue
		}
		if types[t.ID] {
			errs = append(errs, fmt.Errorf("duplicate type %q", t.ID))
		}
		types[t.ID] = true
	}
	seen := map[string]bool{}
	for _, m := range c.Meditations {
		if seen[m.ID] {
			errs = append(errs, fmt.Errorf("duplicate meditation %q", m.ID))
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
		if !types[m.Type] {
			errs = append(errs, fmt.Errorf("meditation %q: unknown type %q", m.ID, m.Type))
		}
	}
	return errors.Join(errs...)
}

func (m Meditation) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return errors.New("meditation with empty id")
	}
	if len(m.Phases) == 0 {
		return fmt.Errorf("meditation %q: no phases", m.ID)
	}
	sum := 0
	for i, p := range m.Phases {
		if p.Seconds <= 0 {
			return fmt.Errorf("meditation %q: phase %d has no duration", m.ID, i)
		}
		if len(p.Guidance) == 0 {
			return fmt.Errorf("meditation %q: phase %d has no guidance", m.ID, i)
		}
		sum += p.Seconds
	}
	if sum != m.Seconds {
		return fmt.Errorf("meditation %q: phases sum to %ds, want %ds", m.ID, sum, m.Seconds)
	}
	return nil
}

func (c Catalog) Meditation(id string) (Meditation, bool) {
	for _, m := range c.Meditations {
		if m.ID == id {
			return m, true
		}
	}
	return Meditation{}, false
}

func (c Catalog) Type(id string) (MeditationType, bool) {
	for _, t := range c.Types {
		if t.ID == id {
			return t, true
		}
	}
	return MeditationType{}, false
}

// QuoteOfDay picks the quote for the calendar day of t, rotating through the
// list by day of year.
func (c Catalog) QuoteOfDay(t time.Time) Quote {
	if len(c.Quotes) == 0 {
		return Quote{}
	}
	return c.Quotes[t.YearDay()%len(c.Quotes)]
}
