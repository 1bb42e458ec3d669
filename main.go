package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"git.lost.host/meutraa/pulse/internal/beat"
	"git.lost.host/meutraa/pulse/internal/config"
	"git.lost.host/meutraa/pulse/internal/input"
	"git.lost.host/meutraa/pulse/internal/render"
	"git.lost.host/meutraa/pulse/internal/score"
	"git.lost.host/meutraa/pulse/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if nil != err {
		return err
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if nil != err {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = render.NewDefaultRenderer(os.Stdout)
	var th theme.Theme = &theme.DefaultTheme{}
	var sc score.Scorer = &score.DefaultScorer{}

	// Losing the history is not worth refusing to play
	if err := sc.Init(cfg.Database); nil != err {
		log.Println("playing without score history:", err)
		sc = nil
	} else {
		defer sc.Deinit()
	}

	kb, err := input.Open(128)
	if nil != err {
		return err
	}
	// restore closes it first on a normal exit
	defer func() {
		if err := kb.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	// Beat 0 lands once the start delay is over
	clock, err := beat.New(cfg.BPM, time.Now().Add(cfg.Delay))
	if nil != err {
		return err
	}
	log.Printf("session at %v bpm, beat every %v\n", clock.BPM(), clock.Interval())

	p := NewProgram(clock, cfg.Windows, th, cfg.Lookahead, cfg.TapKey())

	if err := r.Init(); nil != err {
		return err
	}
	p.Resize(r.Size())
	r.RenderLoop(cfg.FramePeriod, func(now time.Time) bool {
		if !p.Update(r, kb.Events()) {
			return false
		}
		p.Render(r, now)
		return true
	})
	restore(r, kb)

	sum := score.Summarize(p.Session.Hits)
	fmt.Printf("%d taps, mean %+.1f ms, stdev %.1f ms, accuracy %.1f%%\n",
		sum.Total, ms(sum.Mean), ms(sum.Stdev), 100*sum.Accuracy)

	if nil == sc || sum.Total == 0 {
		return nil
	}
	if err := sc.Save(p.Session); nil != err {
		log.Println(err)
		return nil
	}
	if best, ok, err := sc.Best(clock.BPM()); nil != err {
		log.Println(err)
	} else if ok {
		fmt.Printf("best at %v bpm: %.1f%% on %v\n", clock.BPM(), 100*best.Summary.Accuracy, best.PlayedAt.Format(time.RFC822))
	}
	return nil
}

// restore hands the terminal back in reverse order. The renderer saved
// the keyboard's raw mode, the keyboard saved the original state, and
// both must be undone before anything is printed.
func restore(r render.Renderer, kb io.Closer) {
	if err := r.Deinit(); nil != err {
		log.Println("unable to restore terminal", err)
	}
	if err := kb.Close(); nil != err {
		log.Println("unable to close keyboard", err)
	}
}
