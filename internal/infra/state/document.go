package state

import (
	"encoding/json"
	"fmt"
	"time"

	"verse_channel_bot/internal/domain/cursor"
)

// document is the JSON shape shared by the file, GitHub and redis backends:
// {"current_index": 12, "last_run": "...", "total_verses": 6236}
type document struct {
	CurrentIndex *int   `json:"current_index,omitempty"`
	LastRun      string `json:"last_run,omitempty"`
	TotalVerses  int    `json:"total_verses,omitempty"`
}

// decodeDocument parses a state blob. A missing current_index means 0.
// last_run is informational and tolerated in any format.
func decodeDocument(data []byte) (cursor.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return cursor.State{}, fmt.Errorf("parse state document: %w", err)
	}

	var st cursor.State
	if doc.CurrentIndex != nil {
		if *doc.CurrentIndex < 0 {
			return cursor.State{}, fmt.Errorf("parse state document: negative current_index %d", *doc.CurrentIndex)
		}
		st.CurrentIndex = *doc.CurrentIndex
	}
	st.TotalVerses = doc.TotalVerses
	if doc.LastRun != "" {
		if ts, err := time.Parse(time.RFC3339Nano, doc.LastRun); err == nil {
			st.LastRun = ts
		}
	}
	return st, nil
}

func encodeDocument(st cursor.State) ([]byte, error) {
	idx := st.CurrentIndex
	doc := document{
		CurrentIndex: &idx,
		TotalVerses:  st.TotalVerses,
	}
	if !st.LastRun.IsZero() {
		doc.LastRun = st.LastRun.Format(time.RFC3339Nano)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state document: %w", err)
	}
	return append(data, '\n'), nil
}
