// internal/domain/cursor/cursor.go
package cursor

import "time"

// State is the persisted progress through the verse sequence.
// Only CurrentIndex drives control flow; LastRun and TotalVerses are
// recorded for observability.
type State struct {
	CurrentIndex int
	LastRun      time.Time
	TotalVerses  int
}

// Wrap returns the index to post for a dataset of total verses.
// An index at or past the end starts over from zero.
func Wrap(index, total int) (int, bool) {
	if index < 0 || index >= total {
		return 0, index != 0
	}
	return index, false
}
