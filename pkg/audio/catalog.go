package audio

import (
	"sync"
	"time"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

// tonePatterns describes one alert sound per entry. Unknown sounds fall back
// to the default pattern.
var tonePatterns = map[models.Sound][]note{
	models.SoundAlarm: {
		{freq: 880, dur: 150 * time.Millisecond, gap: 100 * time.Millisecond},
		{freq: 880, dur: 150 * time.Millisecond, gap: 100 * time.Millisecond},
		{freq: 880, dur: 150 * time.Millisecond, gap: 100 * time.Millisecond},
		{freq: 880, dur: 150 * time.Millisecond, gap: 400 * time.Millisecond},
	},
	models.SoundChimes: {
		{freq: 659.25, dur: 300 * time.Millisecond, gap: 50 * time.Millisecond},
		{freq: 880, dur: 450 * time.Millisecond, gap: 500 * time.Millisecond},
	},
	models.SoundSoft: {
		{freq: 440, dur: 600 * time.Millisecond, gap: 700 * time.Millisecond, decay: true},
	},
	models.SoundBeacon: {
		{freq: 1040, dur: 500 * time.Millisecond, gap: 500 * time.Millisecond},
	},
	models.SoundBell: {
		{freq: 587.33, dur: 1200 * time.Millisecond, gap: 300 * time.Millisecond, decay: true},
	},
}

var (
	toneCache   = map[models.Sound][]byte{}
	toneCacheMu sync.Mutex
)

// Data returns the rendered waveform for a sound. Rendering happens once per
// sound and is cached for the lifetime of the process.
func Data(sound models.Sound) []byte {
	pattern, ok := tonePatterns[sound]
	if !ok {
		sound = models.DefaultSound
		pattern = tonePatterns[sound]
	}

	toneCacheMu.Lock()
	defer toneCacheMu.Unlock()

	if cached, ok := toneCache[sound]; ok {
		return cached
	}
	rendered := renderWAV(pattern)
	toneCache[sound] = rendered
	return rendered
}
