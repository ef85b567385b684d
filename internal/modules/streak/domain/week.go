package domain

import "time"

type Day struct {
	Date      string
	Weekday   string
	Day       int
	Meditated bool
	Type      string
	IsToday   bool
}

// LastDays returns the n calendar days ending today, oldest first.
func LastDays(r Record, now time.Time, n int) []Day {
	if n <= 0 {
		return nil
	}
	today := noon(now)
	out := make([]Day, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := DateKey(day)
		entry := r.Checkins[key]
		out = append(out, Day{
			Date:      key,
			Weekday:   day.Format("Mon"),
			Day:       day.Day(),
			Meditated: entry.Meditated,
			Type:      entry.Type,
			IsToday:   i == 0,
		})
	}
	return out
}

// CountInMonth counts check-ins in the calendar month of now.
func CountInMonth(r Record, now time.Time) int {
	prefix := now.Format("2006-01-")
	count := 0
	for date, entry := range r.Checkins {
		if entry.Meditated && len(date) == len(DateLayout) && date[:len(prefix)] == prefix {
			count++
		}
	}
	return count
}

type Summary struct {
	Record         Record
	CheckedInToday bool
	ThisMonth      int
	Week           []Day
	Next           Milestone
	HasNext        bool
	DaysToNext     int
}

func Summarize(r Record, now time.Time) Summary {
	s := Summary{
		Record:         r,
		CheckedInToday: r.CheckedInToday(now),
		ThisMonth:      CountInMonth(r, now),
		Week:           LastDays(r, now, 7),
	}
	if next, ok := NextMilestone(r.CurrentStreak); ok {
		s.Next = next
		s.HasNext = true
		s.DaysToNext = next.Days - r.CurrentStreak
	}
	return s
}

// CheckinOutcome is the result of a check-in attempt.
type CheckinOutcome struct {
	Record    Record
	Recorded  bool
	Milestone *Milestone
}
