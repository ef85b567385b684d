package dto

import (
	"time"

	hookdto "zenstreak/internal/modules/hook/dto"
)

type CheckinEntry struct {
	Date      string
	Type      string
	Duration  float64
	Timestamp time.Time
}

type RecordOutput struct {
	CurrentStreak int
	LongestStreak int
	TotalSessions int
	LastCheckIn   string
	Checkins      []CheckinEntry
}

type DayOutput struct {
	Date      string
	Weekday   string
	Day       int
	Meditated bool
	Type      string
	IsToday   bool
}

type MilestoneOutput struct {
	Days        int
	Title       string
	Subtitle    string
	Achievement string
	Message     string
}

type StatusOutput struct {
	Record         RecordOutput
	CheckedInToday bool
	ThisMonth      int
	Week           []DayOutput
	Tier           *MilestoneOutput
	Next           *MilestoneOutput
	DaysToNext     int
	Today          string
}

type CheckinInput struct {
	Type    string
	Minutes float64
}

type CheckinOutput struct {
	Recorded    bool
	Record      RecordOutput
	Milestone   *MilestoneOutput
	JournalPath string
	Hooks       []hookdto.HookResult
}

type ResetInput struct {
	Confirm bool
}
