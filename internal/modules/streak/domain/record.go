package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

const (
	SchemaVersion = 1
	DateLayout    = "2006-01-02"
	LookbackDays  = 365

	RecordKey    = "zenstreak_data"
	MilestoneKey = "zenstreak_milestone"

	DefaultType     = "mindfulness"
	DefaultDuration = 5
)

type Entry struct {
	Meditated bool      `json:"meditated"`
	Type      string    `json:"type"`
	Duration  float64   `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is the persisted check-in history. CurrentStreak, LongestStreak and
// TotalSessions are derived from Checkins but stored alongside it.
type Record struct {
	SchemaVersion int              `json:"schemaVersion"`
	CurrentStreak int              `json:"currentStreak"`
	LongestStreak int              `json:"longestStreak"`
	TotalSessions int              `json:"totalSessions"`
	Checkins      map[string]Entry `json:"checkins"`
	LastCheckIn   string           `json:"lastCheckIn,omitempty"`
}

func NewRecord() Record {
	return Record{SchemaVersion: SchemaVersion, Checkins: map[string]Entry{}}
}

// DateKey formats t as a calendar date in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Decode reads a persisted record field by field. Only a payload that is not
// a JSON object is an error: a field of the wrong type keeps its zero value
// and an unreadable check-in entry is dropped, so one bad value never costs
// the rest of the history. A payload without schemaVersion decodes with
// version 0; Migrate brings it up to date and rebuilds the counters.
func Decode(payload []byte) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return Record{}, fmt.Errorf("decode streak record: %w", err)
	}
	r := Record{Checkins: map[string]Entry{}}
	decodeField(fields, "schemaVersion", &r.SchemaVersion)
	decodeField(fields, "currentStreak", &r.CurrentStreak)
	decodeField(fields, "longestStreak", &r.LongestStreak)
	decodeField(fields, "totalSessions", &r.TotalSessions)
	decodeField(fields, "lastCheckIn", &r.LastCheckIn)

	var checkins map[string]json.RawMessage
	decodeField(fields, "checkins", &checkins)
	for date, raw := range checkins {
		if entry, ok := decodeEntry(date, raw); ok {
			r.Checkins[date] = entry
		}
	}
	return r, nil
}

func decodeField(fields map[string]json.RawMessage, name string, dst any) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// decodeEntry keeps an entry whenever it says meditated:true. Type, duration
// and timestamp are repaired when unreadable.
func decodeEntry(date string, raw json.RawMessage) (Entry, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Entry{}, false
	}
	var e Entry
	decodeField(fields, "meditated", &e.Meditated)
	if !e.Meditated {
		return Entry{}, false
	}
	decodeField(fields, "type", &e.Type)
	if e.Type == "" {
		e.Type = DefaultType
	}
	if err := json.Unmarshal(fields["duration"], &e.Duration); err != nil {
		var text string
		if json.Unmarshal(fields["duration"], &text) == nil {
			e.Duration, _ = strconv.ParseFloat(text, 64)
		}
	}
	if math.IsNaN(e.Duration) || e.Duration < 0 {
		e.Duration = 0
	}
	var stamp string
	decodeField(fields, "timestamp", &stamp)
	if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
		e.Timestamp = t.UTC()
	} else if d, err := time.Parse(DateLayout, date); err == nil {
		e.Timestamp = d.Add(12 * time.Hour)
	}
	return e, true
}

func Encode(r Record) ([]byte, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode streak record: %w", err)
	}
	return payload, nil
}

func (r Record) Clone() Record {
	out := r
	out.Checkins = make(map[string]Entry, len(r.Checkins))
	for k, v := range r.Checkins {
		out.Checkins[k] = v
	}
	return out
}

func (r Record) CheckedInOn(date string) bool {
	return r.Checkins[date].Meditated
}

func (r Record) CheckedInToday(now time.Time) bool {
	return r.CheckedInOn(DateKey(now))
}

// Dates returns the check-in dates in ascending order.
func (r Record) Dates() []string {
	out := make([]string, 0, len(r.Checkins))
	for date, entry := range r.Checkins {
		if entry.Meditated {
			out = append(out, date)
		}
	}
	sort.Strings(out)
	return out
}

// Checkin records a session for the calendar day of now. It returns false
// and leaves r untouched when that day already has an entry.
func (r *Record) Checkin(now time.Time, kind string, minutes float64) bool {
	today := DateKey(now)
	if r.CheckedInOn(today) {
		return false
	}
	if r.Checkins == nil {
		r.Checkins = map[string]Entry{}
	}
	r.Checkins[today] = Entry{
		Meditated: true,
		Type:      kind,
		Duration:  minutes,
		Timestamp: now.UTC(),
	}
	r.TotalSessions++
	r.LastCheckIn = today
	r.CurrentStreak = CurrentStreak(r.Checkins, now)
	if r.CurrentStreak > r.LongestStreak {
		r.LongestStreak = r.CurrentStreak
	}
	return true
}

// CurrentStreak counts consecutive check-in days ending today. When today has
// no entry yet the run ending yesterday still counts. The walk stops at the
// first gap or after LookbackDays days.
func CurrentStreak(checkins map[string]Entry, now time.Time) int {
	day := noon(now)
	if !checkins[DateKey(day)].Meditated {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for i := 0; i < LookbackDays; i++ {
		if !checkins[DateKey(day)].Meditated {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// noon pins t to midday so day arithmetic never lands on a DST gap.
func noon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, t.Location())
}
