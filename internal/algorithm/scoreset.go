package algorithm

// ScoreSet maps each catalog signal to a probability estimate in [0,1].
// Construct via NewScoreSet when the input comes from outside the process so
// unknown keys are rejected instead of silently carried along.
type ScoreSet map[Signal]float64

// NewScoreSet validates raw against the catalog and returns a typed set.
// Any key outside the 19 known signals is an UnknownSignalError.
func NewScoreSet(raw map[string]float64) (ScoreSet, error) {
	out := make(ScoreSet, len(raw))
	for k, v := range raw {
		s := Signal(k)
		if !Known(s) {
			return nil, &UnknownSignalError{Signal: k}
		}
		out[s] = v
	}
	return out, nil
}

// Get returns the score for s, treating a missing entry as 0.
func (ss ScoreSet) Get(s Signal) float64 {
	return ss[s]
}

// Complete reports whether every catalog signal is present.
func (ss ScoreSet) Complete() bool {
	for _, s := range order {
		if _, ok := ss[s]; !ok {
			return false
		}
	}
	return true
}

// Strings returns the set keyed by plain strings, for JSON payloads.
func (ss ScoreSet) Strings() map[string]float64 {
	out := make(map[string]float64, len(ss))
	for k, v := range ss {
		out[string(k)] = v
	}
	return out
}
