package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Tones are synthesized instead of shipped as binary assets: each alert
// sound is a short sequence of sine notes rendered to a 16-bit mono WAV.

const (
	toneSampleRate = 44100
	toneAmplitude  = 0.6
	// Short fade at note edges to avoid clicks.
	toneEdgeFade = 5 * time.Millisecond
)

type note struct {
	freq  float64
	dur   time.Duration
	gap   time.Duration
	decay bool // bell-style exponential fade over the whole note
}

func renderWAV(notes []note) []byte {
	var samples []int16
	for _, n := range notes {
		samples = append(samples, renderNote(n)...)
		samples = append(samples, make([]int16, durToSamples(n.gap))...)
	}

	return encodeWAV(samples)
}

func renderNote(n note) []int16 {
	total := durToSamples(n.dur)
	fade := durToSamples(toneEdgeFade)
	out := make([]int16, total)

	for i := 0; i < total; i++ {
		t := float64(i) / toneSampleRate
		amp := toneAmplitude

		if n.decay {
			amp *= math.Exp(-4 * float64(i) / float64(total))
		}
		if i < fade {
			amp *= float64(i) / float64(fade)
		}
		if remaining := total - i; remaining < fade {
			amp *= float64(remaining) / float64(fade)
		}

		out[i] = int16(amp * math.MaxInt16 * math.Sin(2*math.Pi*n.freq*t))
	}
	return out
}

func durToSamples(d time.Duration) int {
	return int(float64(toneSampleRate) * d.Seconds())
}

func encodeWAV(samples []int16) []byte {
	dataSize := uint32(len(samples) * 2)
	buf := &bytes.Buffer{}

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(buf, binary.LittleEndian, uint32(toneSampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(toneSampleRate*2)) // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(2))                // block align
	binary.Write(buf, binary.LittleEndian, uint16(16))               // bit depth

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, dataSize)
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
