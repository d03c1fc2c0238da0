// apps/go-solver/internal/constraint/set.go
//
// Accumulated knowledge about the secret word.
//
// A Set is a value: every field is a fixed-size array or bitmask, so assigning or
// returning a Set copies it and no two holders ever share state. New facts are
// folded in with Derive + Merge (or Apply), which return a new Set and never
// modify the receiver.
//
// Facts tracked:
//   - locks:     letter required at a position (Correct).
//   - excluded:  positions where a letter is known wrong; the letter is still required.
//   - minCounts: occurrences proven present by a single feedback.
//   - maxCounts: exact cap once a feedback marks an extra copy Absent.
//   - forbidden: letters proven absent from the secret altogether.

package constraint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// ErrInconsistent reports feedback that contradicts facts already established.
var ErrInconsistent = errors.New("inconsistent constraint")

// Set is an immutable collection of facts about the secret. The zero value knows nothing.
type Set struct {
	locks     [game.WordLen]byte // 0 = unlocked
	excluded  [26]uint8          // bit i set: letter not at position i
	minCounts [26]uint8
	maxCounts [26]uint8
	capped    uint32 // bit c set: maxCounts[c] is meaningful
	forbidden uint32
}

// Derive extracts the facts carried by a single guess and its feedback.
//
// Correct locks the position, Present excludes it; both raise the letter's
// minimum count. An Absent letter is forbidden only if no other copy of it in the
// same guess scored Correct or Present. Otherwise the Absent caps the letter at
// the confirmed count and excludes that position.
func Derive(guess game.Word, fb game.Feedback) Set {
	var s Set
	var confirmed [26]uint8
	for i := 0; i < game.WordLen; i++ {
		c := letter(guess[i])
		switch fb[i] {
		case game.Correct:
			s.locks[i] = guess[i]
			confirmed[c]++
		case game.Present:
			s.excluded[c] |= 1 << i
			confirmed[c]++
		}
	}

	for i := 0; i < game.WordLen; i++ {
		if fb[i] != game.Absent {
			continue
		}
		c := letter(guess[i])
		if confirmed[c] == 0 {
			s.forbidden |= 1 << c
			continue
		}
		s.excluded[c] |= 1 << i
		s.capped |= 1 << c
		s.maxCounts[c] = confirmed[c]
	}

	s.minCounts = confirmed
	return s
}

// Merge combines s with o. Facts only accumulate: locks, exclusions and forbidden
// letters are unioned, minimum counts take the larger and caps the smaller value.
// A contradiction returns ErrInconsistent and the receiver unchanged.
func (s Set) Merge(o Set) (Set, error) {
	out := s
	for i := 0; i < game.WordLen; i++ {
		if o.locks[i] == 0 {
			continue
		}
		if out.locks[i] != 0 && out.locks[i] != o.locks[i] {
			return s, fmt.Errorf("%w: position %d locked to %q, feedback says %q",
				ErrInconsistent, i, out.locks[i], o.locks[i])
		}
		out.locks[i] = o.locks[i]
	}
	for c := 0; c < 26; c++ {
		out.excluded[c] |= o.excluded[c]
		if o.minCounts[c] > out.minCounts[c] {
			out.minCounts[c] = o.minCounts[c]
		}
		if o.capped&(1<<c) != 0 {
			if out.capped&(1<<c) == 0 || o.maxCounts[c] < out.maxCounts[c] {
				out.maxCounts[c] = o.maxCounts[c]
			}
			out.capped |= 1 << c
		}
	}
	out.forbidden |= o.forbidden

	if err := out.check(); err != nil {
		return s, err
	}
	return out, nil
}

// Apply derives the facts of one guess and merges them into s.
func (s Set) Apply(guess game.Word, fb game.Feedback) (Set, error) {
	return s.Merge(Derive(guess, fb))
}

// check verifies that no word could be ruled out by the facts alone.
func (s Set) check() error {
	var locked [26]uint8
	for i, b := range s.locks {
		if b == 0 {
			continue
		}
		c := letter(b)
		locked[c]++
		if s.excluded[c]&(1<<i) != 0 {
			return fmt.Errorf("%w: %q both locked and excluded at position %d", ErrInconsistent, b, i)
		}
	}
	for c := 0; c < 26; c++ {
		ch := byte('a' + c)
		required := s.minCounts[c]
		if locked[c] > required {
			required = locked[c]
		}
		if s.excluded[c] != 0 && required == 0 {
			required = 1
		}
		if s.forbidden&(1<<c) != 0 && required > 0 {
			return fmt.Errorf("%w: %q is both forbidden and required", ErrInconsistent, ch)
		}
		if s.capped&(1<<c) != 0 && required > s.maxCounts[c] {
			return fmt.Errorf("%w: %q needs %d copies but is capped at %d",
				ErrInconsistent, ch, required, s.maxCounts[c])
		}
	}
	return nil
}

// Lock returns the letter locked at position i, if any.
func (s Set) Lock(i int) (byte, bool) {
	b := s.locks[i]
	return b, b != 0
}

// ExcludedAt returns the positions where c is known not to be, in ascending order.
func (s Set) ExcludedAt(c byte) []int {
	var out []int
	mask := s.excluded[letter(c)]
	for i := 0; i < game.WordLen; i++ {
		if mask&(1<<i) != 0 {
			out = append(out, i)
		}
	}
	return out
}

// MinCount returns the minimum number of copies of c the secret holds.
func (s Set) MinCount(c byte) int { return int(s.minCounts[letter(c)]) }

// MaxCount returns the cap on copies of c, if one is known.
func (s Set) MaxCount(c byte) (int, bool) {
	l := letter(c)
	return int(s.maxCounts[l]), s.capped&(1<<l) != 0
}

// Forbidden reports whether c is known to be absent from the secret.
func (s Set) Forbidden(c byte) bool { return s.forbidden&(1<<letter(c)) != 0 }

// Empty reports whether s carries no facts.
func (s Set) Empty() bool { return s == Set{} }

// String renders s compactly for logs, e.g. "locks=c.a.. minimums=a1,c1 forbidden=ert".
func (s Set) String() string {
	var b strings.Builder
	b.WriteString("locks=")
	for _, l := range s.locks {
		if l == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(l)
		}
	}
	var mins, caps, forb []string
	for c := 0; c < 26; c++ {
		ch := string(rune('a' + c))
		if s.minCounts[c] > 0 {
			mins = append(mins, fmt.Sprintf("%s%d", ch, s.minCounts[c]))
		}
		if s.capped&(1<<c) != 0 {
			caps = append(caps, fmt.Sprintf("%s%d", ch, s.maxCounts[c]))
		}
		if s.forbidden&(1<<c) != 0 {
			forb = append(forb, ch)
		}
	}
	if len(mins) > 0 {
		b.WriteString(" minimums=" + strings.Join(mins, ","))
	}
	if len(caps) > 0 {
		b.WriteString(" caps=" + strings.Join(caps, ","))
	}
	if len(forb) > 0 {
		b.WriteString(" forbidden=" + strings.Join(forb, ""))
	}
	return b.String()
}

func letter(b byte) int { return int(b - 'a') }
