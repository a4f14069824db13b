package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cue plays short tones after runs. A failed speaker init leaves it silent.
type cue struct {
	enabled bool
}

func newCue(on bool) *cue {
	if !on {
		return &cue{}
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// Non-fatal, runs work without sound
		log.Printf("audio initialization failed: %v", err)
		return &cue{}
	}
	return &cue{enabled: true}
}

func (c *cue) Done() { c.play(880, 80*time.Millisecond) }

func (c *cue) Fail() { c.play(220, 250*time.Millisecond) }

// play blocks until the tone has finished so the process can exit right after.
func (c *cue) play(freq float64, d time.Duration) {
	if !c.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(beep.Take(sampleRate.N(d), sine), beep.Callback(func() {
		close(done)
	})))
	select {
	case <-done:
	case <-time.After(d + time.Second):
	}
}

func (c *cue) Close() {
	if c.enabled {
		speaker.Close()
	}
}
