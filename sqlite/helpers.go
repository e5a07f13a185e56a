package sqlite

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Timestamps are stored as RFC3339 text in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

// paginate applies limit and offset when positive. SQLite only accepts
// OFFSET after LIMIT, so an offset alone is paired with LIMIT -1.
func paginate(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	switch {
	case limit > 0 && offset > 0:
		return b.Limit(uint64(limit)).Offset(uint64(offset))
	case limit > 0:
		return b.Limit(uint64(limit))
	case offset > 0:
		return b.Suffix("LIMIT -1 OFFSET ?", offset)
	}
	return b
}
