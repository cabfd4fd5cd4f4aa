// Package audio synthesizes the arcade sound effects.
//
// Tones are beep generators; Render drains one into 16-bit stereo PCM
// for Ebitengine's audio player.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Waveform oscillator shape.
type Waveform int

const (
	// WaveSine is a pure sine oscillator.
	WaveSine Waveform = iota
	// WaveSquare is a hard-clipped square oscillator.
	WaveSquare
	// WaveTriangle is a linear triangle oscillator.
	WaveTriangle
)

// Tone describes a short synthesized sound effect: a frequency sweep from
// StartHz to EndHz with a linear fade-out envelope.
type Tone struct {
	StartHz  float64
	EndHz    float64
	Duration time.Duration
	Volume   float64 // 0.0 ~ 1.0 peak amplitude
	Wave     Waveform
}

// sweep generates a frequency sweep with a linear fade-out.
// It ends by itself after total samples.
type sweep struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64 // cycles, kept in [0, 1)
	position int
	total    int
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.total)
		freq := s.tone.StartHz + (s.tone.EndHz-s.tone.StartHz)*progress

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)

		v := oscillate(s.tone.Wave, s.phase) * (1 - progress)
		samples[i][0] = v
		samples[i][1] = v
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// oscillate returns the waveform value at phase (in cycles).
func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Streamer returns the tone as a beep generator at the given rate.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	n := rate.N(t.Duration)
	gen := &sweep{tone: t, rate: rate, total: n}
	return beep.Take(n, &effects.Gain{Streamer: gen, Gain: clamp01(t.Volume) - 1})
}

// Render synthesizes the tone as 16-bit signed little-endian stereo PCM,
// the format expected by Ebitengine's audio.Player.
func (t Tone) Render(sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if t.Duration <= 0 {
		return nil, fmt.Errorf("invalid tone duration: %v", t.Duration)
	}

	rate := beep.SampleRate(sampleRate)
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	s := t.Streamer(rate)

	pcm := make([]byte, 0, rate.N(t.Duration)*format.Width())
	frame := make([]byte, format.Width())
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, sample := range buf[:n] {
			format.EncodeSigned(frame, sample)
			pcm = append(pcm, frame...)
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("render tone: %w", err)
	}
	return pcm, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
