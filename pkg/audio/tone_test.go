package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borgmon/weekday-alarm/pkg/models"
)

func TestRenderedTonesParseAsWAV(t *testing.T) {
	for _, sound := range models.Sounds() {
		data := Data(sound)
		require.NotEmpty(t, data, "sound %s", sound)

		format, audioData, err := parseWAV(data)
		require.NoError(t, err, "sound %s", sound)
		assert.Equal(t, 44100, format.SampleRate)
		assert.Equal(t, 1, format.Channels)
		assert.Equal(t, 16, format.BitDepth)
		assert.NotEmpty(t, audioData)
	}
}

func TestUnknownSoundFallsBackToDefault(t *testing.T) {
	data := Data(models.Sound("shofar"))
	assert.Equal(t, Data(models.DefaultSound), data)
}

func TestDataIsCached(t *testing.T) {
	first := Data(models.SoundBell)
	second := Data(models.SoundBell)
	// Same backing slice, not a re-render.
	assert.Same(t, &first[0], &second[0])
}
