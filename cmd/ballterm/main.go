// Command ballterm runs a scene in the terminal. Each cell shows whichever
// ball covers its center; contacts can click through the speaker.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/ballpit/physics"
	"github.com/milk9111/ballpit/scenes"
)

type viewer struct {
	screen tcell.Screen
	sound  *contactSound

	sceneName  string
	broadphase string
	scene      *scenes.Scene
	stepper    *physics.Stepper

	frame    uint64
	contacts uint64
	paused   bool
	step     bool

	// message replaces the key help on the status line.
	message string
}

func main() {
	sceneName := flag.String("scene", "rain", "scene name in scenes/ (basename, .yaml optional)")
	broadphase := flag.String("broadphase", "grid", "pair scan: all or grid")
	sound := flag.Bool("sound", false, "beep on ball contacts")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	v := &viewer{screen: screen, sceneName: *sceneName, broadphase: *broadphase}
	if err := v.load(); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	if *sound {
		v.sound = newContactSound()
		if err := v.sound.Init(); err != nil {
			v.sound = nil
			v.message = "sound disabled: " + err.Error()
		}
	}

	v.run()
	v.cleanup()
}

func (v *viewer) load() error {
	sc, err := scenes.LoadScene(v.sceneName)
	if err != nil {
		return err
	}
	broad, err := physics.NewBroadphase(v.broadphase)
	if err != nil {
		return err
	}
	stepper, err := physics.NewStepper(sc.Params, broad)
	if err != nil {
		return err
	}
	stepper.OnContact = func(a, b physics.Handle) {
		v.contacts++
		if v.sound != nil {
			v.sound.Click()
		}
	}
	v.scene, v.stepper = sc, stepper
	v.frame = 0
	v.contacts = 0
	return nil
}

func (v *viewer) run() {
	dt := physics.FixedStep(v.scene.TPS)
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}
		case <-ticker.C:
			if !v.paused || v.step {
				v.step = false
				if err := v.stepper.Step(v.scene.Bodies, dt); err != nil {
					v.message = err.Error()
					v.paused = true
				} else {
					v.frame++
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ', 'p':
			v.paused = !v.paused
		case 'n':
			v.paused = true
			v.step = true
		case 'r':
			if err := v.load(); err != nil {
				v.message = "reload: " + err.Error()
			} else {
				v.message = ""
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	cols, rows := v.screen.Size()
	if rows < 2 {
		return
	}
	v.screen.Clear()

	grid := rasterize(v.scene, cols, rows-1)
	for y, row := range grid {
		for x, c := range row {
			if c.body < 0 {
				continue
			}
			v.screen.SetContent(x, y, '█', nil, tcell.StyleDefault.Foreground(c.color))
		}
	}

	drawText(v.screen, 0, rows-1, statusLine(v.scene, v.frame, v.contacts, v.paused, v.message), tcell.StyleDefault.Reverse(true))
	v.screen.Show()
}

func (v *viewer) cleanup() {
	if v.sound != nil {
		v.sound.Close()
	}
	v.screen.Fini()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
