package domain

import "time"

// Migrate upgrades a decoded record to SchemaVersion and restores the
// invariants between the stored counters and the check-in map. Version 0 is
// the untagged layout written before the schema carried a version.
func Migrate(r Record, now time.Time) Record {
	out := r.Clone()
	for date, entry := range out.Checkins {
		if !entry.Meditated {
			delete(out.Checkins, date)
			continue
		}
		if _, err := time.Parse(DateLayout, date); err != nil {
			delete(out.Checkins, date)
		}
	}
	if out.SchemaVersion < SchemaVersion {
		out.SchemaVersion = SchemaVersion
	}

	out.TotalSessions = len(out.Checkins)
	out.CurrentStreak = CurrentStreak(out.Checkins, now)
	if out.LongestStreak < 0 {
		out.LongestStreak = 0
	}
	if out.LongestStreak < out.CurrentStreak {
		out.LongestStreak = out.CurrentStreak
	}

	dates := out.Dates()
	if len(dates) == 0 {
		out.LastCheckIn = ""
	} else if latest := dates[len(dates)-1]; !out.CheckedInOn(out.LastCheckIn) || out.LastCheckIn < latest {
		out.LastCheckIn = latest
	}
	return out
}
