package dto

const (
	EventCheckin   = "checkin"
	EventMilestone = "milestone"
)

type HookInfo struct {
	Name    string
	Version string
	Enabled bool
	Binary  string
	Events  []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

// Event is delivered to every enabled hook subscribed to Kind.
type Event struct {
	ID             string
	Kind           string
	Date           string
	Type           string
	Duration       float64
	CurrentStreak  int
	LongestStreak  int
	TotalSessions  int
	Milestone      int
	MilestoneTitle string
}

type HookResult struct {
	Name    string
	Message string
	Error   string
}

type DispatchOutput struct {
	Results []HookResult
}
