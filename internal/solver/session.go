package solver

import (
	"github.com/robalobadob/wordle/apps/go-solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// AttemptRecord is one entry of the per-game attempt log.
type AttemptRecord struct {
	Number    int
	Guess     game.Word
	Feedback  game.Feedback
	Rejected  bool // the service refused the guess; Feedback is meaningless
	Remaining int  // candidates left after the attempt
}

// Session is the state of one game: knowledge so far, words still possible and
// the attempt log. It is owned and mutated by a single Loop.
type Session struct {
	constraints constraint.Set
	candidates  []game.Word
	records     []AttemptRecord
	attempts    int
}

// newSession starts from the full word list. The list is shared read-only; the
// session only ever replaces its candidates slice, never writes into it.
func newSession(words []game.Word) *Session {
	return &Session{candidates: words}
}

// Constraints returns the facts learned so far.
func (s *Session) Constraints() constraint.Set { return s.constraints }

// Candidates returns a copy of the words still consistent with all feedback.
func (s *Session) Candidates() []game.Word {
	return append([]game.Word(nil), s.candidates...)
}

// Remaining returns the number of candidates.
func (s *Session) Remaining() int { return len(s.candidates) }

// Records returns a copy of the attempt log.
func (s *Session) Records() []AttemptRecord {
	return append([]AttemptRecord(nil), s.records...)
}

// Attempts returns the number of completed attempts.
func (s *Session) Attempts() int { return s.attempts }

// apply folds one feedback into the session. Either every field is updated or,
// on a contradiction, none is.
func (s *Session) apply(guess game.Word, fb game.Feedback) (AttemptRecord, error) {
	next, err := s.constraints.Apply(guess, fb)
	if err != nil {
		return AttemptRecord{}, err
	}
	cands := constraint.Filter(s.candidates, next)

	s.attempts++
	rec := AttemptRecord{Number: s.attempts, Guess: guess, Feedback: fb, Remaining: len(cands)}
	s.constraints = next
	s.candidates = cands
	s.records = append(s.records, rec)
	return rec, nil
}

// reject drops a guess the service refused. It teaches nothing about the secret.
func (s *Session) reject(guess game.Word) AttemptRecord {
	cands := make([]game.Word, 0, len(s.candidates))
	for _, w := range s.candidates {
		if w != guess {
			cands = append(cands, w)
		}
	}
	s.attempts++
	rec := AttemptRecord{Number: s.attempts, Guess: guess, Rejected: true, Remaining: len(cands)}
	s.candidates = cands
	s.records = append(s.records, rec)
	return rec
}
