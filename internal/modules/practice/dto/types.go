package dto

import "time"

type TypeOutput struct {
	ID          string
	Name        string
	Description string
}

type PhaseOutput struct {
	Title    string
	Seconds  int
	Guidance []string
}

type MeditationOutput struct {
	ID          string
	Title       string
	Description string
	Type        string
	Seconds     int
	Minutes     float64
	Phases      []PhaseOutput
	Script      string
}

type QuoteOutput struct {
	Text   string
	Author string
	Theme  string
	Date   string
}

type PositionInput struct {
	MeditationID string
	Elapsed      time.Duration
}

type PositionOutput struct {
	PhaseIndex    int
	PhaseTitle    string
	PhaseCount    int
	PhaseElapsed  time.Duration
	PhaseProgress float64
	Progress      float64
	Guidance      string
	Remaining     time.Duration
	Complete      bool
}

type TypeCheckOutput struct {
	ID    string
	Known bool
	Name  string
}
