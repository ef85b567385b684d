package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const Key = "zenstreak_preferences"

type Sound string

const (
	SoundForest     Sound = "forest"
	SoundOcean      Sound = "ocean"
	SoundRain       Sound = "rain"
	SoundWhiteNoise Sound = "whitenoise"
	SoundBowls      Sound = "bowls"
	SoundSilent     Sound = "silent"
)

var Sounds = []Sound{SoundForest, SoundOcean, SoundRain, SoundWhiteNoise, SoundBowls, SoundSilent}

func (s Sound) Valid() bool {
	for _, known := range Sounds {
		if s == known {
			return true
		}
	}
	return false
}

type Audio struct {
	Sound           Sound   `json:"sound"`
	Volume          float64 `json:"volume"`
	AutoStart       bool    `json:"autoStart"`
	FadeInDuration  float64 `json:"fadeInDuration"`
	FadeOutDuration float64 `json:"fadeOutDuration"`
}

func Defaults() Audio {
	return Audio{
		Sound:           SoundSilent,
		Volume:          0.3,
		AutoStart:       true,
		FadeInDuration:  1,
		FadeOutDuration: 1,
	}
}

// Patch holds the fields to change; nil fields are left alone.
type Patch struct {
	Sound           *Sound
	Volume          *float64
	AutoStart       *bool
	FadeInDuration  *float64
	FadeOutDuration *float64
}

func (p Patch) Empty() bool {
	return p.Sound == nil && p.Volume == nil && p.AutoStart == nil && p.FadeInDuration == nil && p.FadeOutDuration == nil
}

func (a Audio) Apply(p Patch) Audio {
	if p.Sound != nil {
		a.Sound = *p.Sound
	}
	if p.Volume != nil {
		a.Volume = *p.Volume
	}
	if p.AutoStart != nil {
		a.AutoStart = *p.AutoStart
	}
	if p.FadeInDuration != nil {
		a.FadeInDuration = *p.FadeInDuration
	}
	if p.FadeOutDuration != nil {
		a.FadeOutDuration = *p.FadeOutDuration
	}
	return a
}

func (a Audio) Validate() error {
	var errs []error
	if !a.Sound.Valid() {
		errs = append(errs, fmt.Errorf("unknown sound %q", a.Sound))
	}
	if math.IsNaN(a.Volume) || a.Volume < 0 || a.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside [0,1]", a.Volume))
	}
	if math.IsNaN(a.FadeInDuration) || a.FadeInDuration < 0 {
		errs = append(errs, fmt.Errorf("fade in %v must not be negative", a.FadeInDuration))
	}
	if math.IsNaN(a.FadeOutDuration) || a.FadeOutDuration < 0 {
		errs = append(errs, fmt.Errorf("fade out %v must not be negative", a.FadeOutDuration))
	}
	return errors.Join(errs...)
}

// Decode merges a stored payload over Defaults. Fields that fail validation
// fall back to their default value individually.
func Decode(payload []byte) (Audio, error) {
	a := Defaults()
	if err := json.Unmarshal(payload, &a); err != nil {
		return Defaults(), fmt.Errorf("decode preferences: %w", err)
	}
	d := Defaults()
	if !a.Sound.Valid() {
		a.Sound = d.Sound
	}
	if math.IsNaN(a.Volume) || a.Volume < 0 || a.Volume > 1 {
		a.Volume = d.Volume
	}
	if a.FadeInDuration < 0 {
		a.FadeInDuration = d.FadeInDuration
	}
	if a.FadeOutDuration < 0 {
		a.FadeOutDuration = d.FadeOutDuration
	}
	return a, nil
}

func Encode(a Audio) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return payload, nil
}
