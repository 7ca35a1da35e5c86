package tracker

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneFrequency  = 880.0
	toneDuration   = 600 * time.Millisecond
)

// playEndTone plays a short sine tone to mark the end of a session.
func playEndTone() error {
	tone, err := generators.SineTone(toneSampleRate, toneFrequency)
	if err != nil {
		return err
	}

	bufferSize := 10

	err = speaker.Init(
		toneSampleRate,
		toneSampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	done := make(chan struct{})

	speaker.Play(beep.Seq(
		beep.Take(toneSampleRate.N(toneDuration), tone),
		beep.Callback(func() {
			close(done)
		}),
	))

	<-done

	speaker.Close()

	return nil
}
