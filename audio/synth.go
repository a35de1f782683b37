package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/plus3/meteors/game"
)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator emits a fixed number of samples of one wave, optionally
// sliding its frequency towards end.
type oscillator struct {
	freq, end float64
	phase     float64
	position  int
	total     int
	wave      Wave
	rate      beep.SampleRate
}

func newOscillator(freq, end float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, end: end, total: rate.N(d), wave: wave, rate: rate}
}

// Tone returns a constant-frequency streamer lasting d.
func Tone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newOscillator(freq, freq, d, wave, rate)
}

// Sweep returns a streamer whose frequency slides linearly from freq to end.
func Sweep(freq, end float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return newOscillator(freq, end, d, wave, rate)
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		progress := float64(o.position) / float64(o.total)
		freq := o.freq + (o.end-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a streamer out linearly over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func withDecay(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, total: rate.N(d)}
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := range n {
		gain := 1 - float64(d.position)/float64(d.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a streamer linearly; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synthesize builds the streamer for a cue. Unknown cues return nil.
func Synthesize(cue game.Cue, rate beep.SampleRate, vol float64) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case game.CueFire:
		d := 80 * time.Millisecond
		s = withDecay(Sweep(1200, 600, d, WaveSquare, rate), d, rate)
	case game.CueExplosion:
		d := 250 * time.Millisecond
		s = withDecay(Tone(0, d, WaveNoise, rate), d, rate)
	case game.CueShipLost:
		d := 450 * time.Millisecond
		s = beep.Take(rate.N(d), beep.Mix(
			withDecay(Sweep(440, 110, d, WaveSaw, rate), d, rate),
			withVolume(withDecay(Tone(0, d, WaveNoise, rate), d, rate), 0.5),
		))
	case game.CueGameOver:
		note := 220 * time.Millisecond
		s = beep.Seq(
			withDecay(Tone(392, note, WaveSine, rate), note, rate),
			withDecay(Tone(330, note, WaveSine, rate), note, rate),
			withDecay(Tone(262, 2*note, WaveSine, rate), 2*note, rate),
		)
	case game.CueWave:
		note := 120 * time.Millisecond
		s = beep.Seq(
			withDecay(Tone(523, note, WaveSine, rate), note, rate),
			withDecay(Tone(784, note, WaveSine, rate), note, rate),
		)
	default:
		return nil
	}
	return withVolume(s, vol)
}
