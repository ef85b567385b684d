package domain

type Milestone struct {
	Days        int
	Title       string
	Subtitle    string
	Achievement string
	Message     string
}

var Milestones = []Milestone{
	{Days: 7, Title: "Weekly Warrior", Subtitle: "Your first week of mindfulness", Achievement: "First Week Champion",
		Message: "Seven days in a row. The habit has taken root."},
	{Days: 14, Title: "Fortnight Focused", Subtitle: "Two weeks of dedication", Achievement: "Calm Cultivator",
		Message: "Two weeks of showing up for yourself, one breath at a time."},
	{Days: 21, Title: "Habit Cultivator", Subtitle: "21 days of new patterns", Achievement: "Mindful Sprouter",
		Message: "Twenty-one days. Mindfulness is becoming part of who you are."},
	{Days: 30, Title: "Serenity Keeper", Subtitle: "A full month of mindfulness", Achievement: "Monthly Meditator",
		Message: "Thirty days of consistent practice. A beautiful habit of presence."},
	{Days: 50, Title: "Mindful Warrior", Subtitle: "50 days of inner strength", Achievement: "Serenity Seeker",
		Message: "Fifty days. You are building an unshakeable foundation of peace."},
	{Days: 100, Title: "Zen Master", Subtitle: "100 days of pure dedication", Achievement: "Meditation Centurion",
		Message: "A century of meditation. Your commitment inspires others."},
	{Days: 365, Title: "Enlightened Soul", Subtitle: "One full year of mindfulness", Achievement: "Zen Master",
		Message: "A full year of daily meditation. You are a beacon of inner peace."},
}

// MilestoneAt returns the milestone reached at exactly streak days.
func MilestoneAt(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Days == streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// NextMilestone returns the first milestone beyond streak.
func NextMilestone(streak int) (Milestone, bool) {
	for _, m := range Milestones {
		if m.Days > streak {
			return m, true
		}
	}
	return Milestone{}, false
}

// Tier returns the highest milestone at or below streak.
func Tier(streak int) (Milestone, bool) {
	found := false
	out := Milestone{}
	for _, m := range Milestones {
		if m.Days <= streak {
			out = m
			found = true
		}
	}
	return out, found
}
