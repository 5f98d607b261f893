package models

// ActivityEntry is one row of the process-wide activity log. Every newly
// generated payload is recorded exactly once; cache replays are not.
type ActivityEntry struct {
	ID        UUID   `db:"id" json:"id"`
	Kind      string `db:"kind" json:"kind"`
	Payload   string `db:"payload" json:"payload"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

// TableName returns the table name for ActivityEntry.
func (ActivityEntry) TableName() string {
	return "activity_log"
}
