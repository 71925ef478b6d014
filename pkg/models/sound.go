package models

import "encoding/json"

// Sound identifies one of the bundled alert tones.
type Sound string

const (
	SoundAlarm  Sound = "alarm"
	SoundChimes Sound = "chimes"
	SoundSoft   Sound = "soft"
	SoundBeacon Sound = "beacon"
	SoundBell   Sound = "bell"
)

// DefaultSound is what unrecognized or legacy sound tokens collapse to.
// The sound set has grown over time and persisted data may still reference
// retired names, so decoding never fails on an unknown token.
const DefaultSound = SoundAlarm

// Sounds returns all selectable sounds in display order.
func Sounds() []Sound {
	return []Sound{SoundAlarm, SoundChimes, SoundSoft, SoundBeacon, SoundBell}
}

// ParseSound maps a persisted token to a known sound, falling back to the default.
func ParseSound(s string) Sound {
	switch Sound(s) {
	case SoundAlarm, SoundChimes, SoundSoft, SoundBeacon, SoundBell:
		return Sound(s)
	default:
		return DefaultSound
	}
}

// Valid reports whether the sound is one of the known tones.
func (s Sound) Valid() bool {
	return ParseSound(string(s)) == s
}

// DisplayName returns the user-facing name of the sound.
func (s Sound) DisplayName() string {
	switch s {
	case SoundAlarm:
		return "Alarm"
	case SoundChimes:
		return "Chimes"
	case SoundSoft:
		return "Soft"
	case SoundBeacon:
		return "Beacon"
	case SoundBell:
		return "Bell"
	default:
		return DefaultSound.DisplayName()
	}
}

// FileName returns the resource file name the sound resolves to.
func (s Sound) FileName() string {
	return string(s) + ".wav"
}

func (s *Sound) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSound(raw)
	return nil
}
