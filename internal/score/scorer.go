package score

import (
	"time"

	"git.lost.host/meutraa/pulse/internal/game"
	"git.lost.host/meutraa/pulse/internal/judge"
)

type Scorer interface {
	Init(path string) error
	Deinit()

	// Save the result of this session
	Save(session *Session) error

	// Load every previous session at this tempo, oldest first
	Load(bpm float64) ([]History, error)

	Best(bpm float64) (History, bool, error)
}

type Session struct {
	ID       string
	BPM      float64
	PlayedAt time.Time
	Hits     []game.Hit
}

type History struct {
	ID       string
	BPM      float64
	PlayedAt time.Time
	Summary  Summary
}

type Summary struct {
	Counts   [len(judge.Tiers)]int
	Total    int
	Mean     time.Duration // of signed offsets, negative means early
	Stdev    time.Duration
	Accuracy float64 // mean score
}
