package puzzle

import (
	"encoding/json"
	"strconv"
)

// HighScoreKey is the persistence key of the best score.
const HighScoreKey = "daily-dashboard-tetris-highscore"

// Values is the key/value collaborator sessions persist through. Values are
// JSON documents. Implementations absorb their own failures: Get reports a
// value it cannot read as absent and Set never fails from the caller's side.
type Values interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// LoadHighScore returns the stored best score, or zero when none is stored.
func LoadHighScore(v Values) int {
	if v == nil {
		return 0
	}
	raw, ok := v.Get(HighScoreKey)
	if !ok {
		return 0
	}
	var best int
	if err := json.Unmarshal(raw, &best); err != nil {
		return 0
	}
	return best
}

// RecordHighScore stores score if it beats the stored best. It returns the
// best score after the call and whether the store was written.
func RecordHighScore(v Values, score int) (int, bool) {
	best := LoadHighScore(v)
	if v == nil || score <= best {
		return best, false
	}
	v.Set(HighScoreKey, []byte(strconv.Itoa(score)))
	return score, true
}
