package game

import (
	"time"

	"github.com/google/uuid"
)

// MaxRounds bounds the round history kept in memory
const MaxRounds = 200

// RoundRecord describes one finished round
type RoundRecord struct {
	ID        string
	StartTime time.Time
	EndTime   time.Time
	Score     int
	Reason    GameOverReason
}

// Duration returns how long the round lasted
func (r RoundRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// SessionStats keeps the rounds played since the host started.
// Nothing is written to disk.
type SessionStats struct {
	Rounds []RoundRecord

	current    RoundRecord
	games      int
	totalScore int
	best       int
}

func NewSessionStats() *SessionStats {
	return &SessionStats{Rounds: make([]RoundRecord, 0)}
}

// StartRound opens a new round and returns its ID
func (s *SessionStats) StartRound(now time.Time) string {
	s.current = RoundRecord{ID: uuid.New().String(), StartTime: now}
	return s.current.ID
}

// EndRound closes the current round and adds it to the history
func (s *SessionStats) EndRound(score int, reason GameOverReason, now time.Time) RoundRecord {
	rec := s.current
	rec.EndTime = now
	rec.Score = score
	rec.Reason = reason

	s.games++
	s.totalScore += score
	if score > s.best {
		s.best = score
	}

	if len(s.Rounds) >= MaxRounds {
		s.Rounds = s.Rounds[1:]
	}
	s.Rounds = append(s.Rounds, rec)
	return rec
}

// CurrentRound returns the ID of the round in progress
func (s *SessionStats) CurrentRound() string {
	return s.current.ID
}

func (s *SessionStats) GamesPlayed() int {
	return s.games
}

// BestScore is the highest score of any finished round
func (s *SessionStats) BestScore() int {
	return s.best
}

// AverageScore over every finished round, including those dropped from Rounds
func (s *SessionStats) AverageScore() float64 {
	if s.games == 0 {
		return 0
	}
	return float64(s.totalScore) / float64(s.games)
}

// LastRound returns the most recently finished round
func (s *SessionStats) LastRound() (RoundRecord, bool) {
	if len(s.Rounds) == 0 {
		return RoundRecord{}, false
	}
	return s.Rounds[len(s.Rounds)-1], true
}
