package constraint

import "github.com/robalobadob/wordle/apps/go-solver/internal/game"

// Allows reports whether w is consistent with every fact in s.
func (s Set) Allows(w game.Word) bool {
	for i, l := range s.locks {
		if l != 0 && w[i] != l {
			return false
		}
	}
	counts := w.Counts()
	for c := 0; c < 26; c++ {
		n := counts[c]
		if s.forbidden&(1<<c) != 0 && n > 0 {
			return false
		}
		if n < int(s.minCounts[c]) {
			return false
		}
		if s.capped&(1<<c) != 0 && n > int(s.maxCounts[c]) {
			return false
		}
		if mask := s.excluded[c]; mask != 0 {
			if n == 0 {
				return false
			}
			for i := 0; i < game.WordLen; i++ {
				if mask&(1<<i) != 0 && letter(w[i]) == c {
					return false
				}
			}
		}
	}
	return true
}

// Filter returns the candidates allowed by s, in their original order.
// The input slice is not modified.
func Filter(candidates []game.Word, s Set) []game.Word {
	out := make([]game.Word, 0, len(candidates))
	for _, w := range candidates {
		if s.Allows(w) {
			out = append(out, w)
		}
	}
	return out
}
