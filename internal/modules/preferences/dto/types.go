package dto

type AudioOutput struct {
	Sound           string
	Volume          float64
	AutoStart       bool
	FadeInDuration  float64
	FadeOutDuration float64
	Sounds          []string
}

// UpdateInput carries optional changes; nil fields are kept.
type UpdateInput struct {
	Sound           *string
	Volume          *float64
	AutoStart       *bool
	FadeInDuration  *float64
	FadeOutDuration *float64
}
