package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(48000)
	clickFreq    = 880
	clickLength  = 40 * time.Millisecond
	clickSpacing = 50 * time.Millisecond
)

// contactSound plays a short decaying tone per contact, at most one every
// clickSpacing so dense scenes do not saturate the mixer.
type contactSound struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	last        time.Time
	initialized bool
}

func newContactSound() *contactSound {
	return &contactSound{mixer: &beep.Mixer{}}
}

func (s *contactSound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *contactSound) Click() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || time.Since(s.last) < clickSpacing {
		return
	}
	s.last = time.Now()
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(clickLength), newClickGenerator(sampleRate, clickFreq)))
	speaker.Unlock()
}

func (s *contactSound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// clickGenerator is a sine tone with an exponential decay envelope.
type clickGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newClickGenerator(sr beep.SampleRate, freq float64) *clickGenerator {
	return &clickGenerator{sr: sr, freq: freq}
}

func (g *clickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		sample := 0.25 * math.Sin(2*math.Pi*g.freq*t) * math.Exp(-t*60)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *clickGenerator) Err() error {
	return nil
}
