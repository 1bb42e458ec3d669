package score

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"git.lost.host/meutraa/pulse/internal/game"
	"git.lost.host/meutraa/pulse/internal/judge"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultScorer struct {
	db *sql.DB
}

type HitsCompact struct {
	Tier    judge.Tier
	Offsets []time.Duration // signed
	Scores  []float64
}

func NewSession(bpm float64, now time.Time) *Session {
	return &Session{
		ID:       uuid.NewString(),
		BPM:      bpm,
		PlayedAt: now,
	}
}

func (s *Session) Add(hit game.Hit) {
	s.Hits = append(s.Hits, hit)
}

func compactHits(hits []game.Hit) []HitsCompact {
	tierCount := 0
	for _, h := range hits {
		if int(h.Tier) >= tierCount {
			tierCount = int(h.Tier) + 1
		}
	}
	hcs := make([]HitsCompact, tierCount)
	for i := range hcs {
		hcs[i].Tier = judge.Tier(i)
	}
	for _, h := range hits {
		hcs[h.Tier].Offsets = append(hcs[h.Tier].Offsets, h.Signed)
		hcs[h.Tier].Scores = append(hcs[h.Tier].Scores, h.Score)
	}
	return hcs
}

func uncompactHits(hcs []HitsCompact) []game.Hit {
	hits := []game.Hit{}
	for _, hc := range hcs {
		for i, signed := range hc.Offsets {
			hit := game.Hit{Tier: hc.Tier, Signed: signed, Offset: abs(signed)}
			if i < len(hc.Scores) {
				hit.Score = hc.Scores[i]
			}
			hits = append(hits, hit)
		}
	}
	return hits
}

func (s *DefaultScorer) Init(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("unable to open score database: %w", err)
	}
	// an in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)

	initStatement := `
	create table if not exists sessions
	  (
		  id text not null primary key,
		  bpm real,
		  played_at integer,
		  hits blob
	  );
	`
	_, err = db.Exec(initStatement)
	if nil != err {
		db.Close()
		return fmt.Errorf("unable to create sessions table: %w", err)
	}

	s.db = db
	return nil
}

func (s *DefaultScorer) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultScorer) Save(session *Session) error {
	data, err := json.Marshal(compactHits(session.Hits))
	if nil != err {
		return fmt.Errorf("unable to marshal hits: %w", err)
	}
	_, err = s.db.Exec(
		"insert into sessions(id, bpm, played_at, hits) values(?, ?, ?, ?)",
		session.ID, session.BPM, session.PlayedAt.UnixNano(), data,
	)
	if nil != err {
		return fmt.Errorf("unable to save session %v: %w", session.ID, err)
	}
	return nil
}

func (s *DefaultScorer) Load(bpm float64) ([]History, error) {
	histories := []History{}
	rows, err := s.db.Query("select id, bpm, played_at, hits from sessions where bpm = ? order by played_at", bpm)
	if nil != err {
		return histories, fmt.Errorf("unable to load sessions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var rate float64
		var playedAt int64
		var data []byte
		if err := rows.Scan(&id, &rate, &playedAt, &data); nil != err {
			return histories, fmt.Errorf("unable to scan session: %w", err)
		}
		var hcs []HitsCompact
		if err := json.Unmarshal(data, &hcs); nil != err {
			log.Println("unable to unmarshal hit history", id, err)
			continue
		}
		histories = append(histories, History{
			ID:       id,
			BPM:      rate,
			PlayedAt: time.Unix(0, playedAt),
			Summary:  Summarize(uncompactHits(hcs)),
		})
	}
	return histories, rows.Err()
}

// Best is the session with the highest accuracy at this tempo
func (s *DefaultScorer) Best(bpm float64) (History, bool, error) {
	histories, err := s.Load(bpm)
	if nil != err || len(histories) == 0 {
		return History{}, false, err
	}
	best := histories[0]
	for _, h := range histories[1:] {
		if h.Summary.Accuracy > best.Summary.Accuracy {
			best = h
		}
	}
	return best, true, nil
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

func Summarize(hits []game.Hit) Summary {
	var sum Summary
	if len(hits) == 0 {
		return sum
	}

	var total, scores float64
	for _, h := range hits {
		if int(h.Tier) < len(sum.Counts) {
			sum.Counts[h.Tier]++
		}
		total += float64(h.Signed)
		scores += h.Score
	}
	n := float64(len(hits))
	mean := total / n
	sum.Total = len(hits)
	sum.Mean = time.Duration(math.Round(mean))
	sum.Accuracy = scores / n

	if len(hits) > 1 {
		stdev := 0.0
		for _, h := range hits {
			xi := float64(h.Signed) - mean
			stdev += xi * xi
		}
		stdev /= n - 1
		sum.Stdev = time.Duration(math.Round(math.Sqrt(stdev)))
	}
	return sum
}
