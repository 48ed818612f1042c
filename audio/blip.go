package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	blipDuration = 50 * time.Millisecond

	EatTone      = 880.0
	GameOverTone = 220.0
)

// Blip plays short generated tones. A Blip that failed to initialise, or a
// nil *Blip, stays silent so the game can run without sound.
type Blip struct {
	ready bool
}

// NewBlip opens the speaker. On error the returned Blip is still usable.
func NewBlip() (*Blip, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Blip{}, err
	}
	return &Blip{ready: true}, nil
}

// Play queues a sine tone of the given frequency
func (b *Blip) Play(freq float64) {
	if b == nil || !b.ready {
		return
	}
	t, err := tone(freq)
	if err != nil {
		return
	}
	speaker.Play(t)
}

// tone is a sine of freq cut to blipDuration
func tone(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sampleRate.N(blipDuration), sine), nil
}

func (b *Blip) Close() {
	if b == nil || !b.ready {
		return
	}
	speaker.Close()
	b.ready = false
}
