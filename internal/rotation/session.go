// Package rotation implements the playback state machine that cycles catalog
// codes on the display: cursor sequencing, generated-code history with
// replay, the periodic advance timer, and double-scan composite derivation.
package rotation

import (
	"github.com/retailqa/scanbench/backend/internal/models"
)

// Code is one displayable payload with its rendering hint.
type Code struct {
	Payload string        `json:"payload"`
	Format  models.Format `json:"format"`
}

// HistoryEntry captures everything needed to redisplay a generated code
// without recomputation, including the composite pairing that was active when
// it was produced.
type HistoryEntry struct {
	SourceIndex int    `json:"source_index"`
	Primary     Code   `json:"primary"`
	Secondary   *Code  `json:"secondary,omitempty"`
	Kind        string `json:"kind"`
}

// Session is the live playback state for one tab's carousel. Items are
// snapshotted at rotation start; later catalog edits do not affect a session
// in progress. A session is discarded on stop, it is not durable state.
type Session struct {
	Items []models.Item

	// Cursor indexes the next source item to generate from.
	Cursor int

	// Attempted counts generation attempts, including skipped items. The
	// session is exhausted once every source item has been attempted.
	Attempted int

	// Skipped counts items whose encoding failed and were passed over.
	Skipped int

	History       []HistoryEntry
	HistoryCursor int
}

// exhausted reports whether every distinct source item has appeared (or been
// skipped) at least once. From then on navigation replays history only.
func (s *Session) exhausted() bool {
	return s.Attempted >= len(s.Items)
}

// current returns the history entry under the history cursor.
func (s *Session) current() *HistoryEntry {
	if len(s.History) == 0 {
		return nil
	}
	return &s.History[s.HistoryCursor]
}
