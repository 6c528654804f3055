package sqlite

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Repo provides a base for Squirrel-based repositories.
type Repo struct {
	DB *sql.DB
	SQ sq.StatementBuilderType
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db, SQ: sq.StatementBuilder}
}

// Timestamps are stored as RFC3339 UTC strings.
func nowString() (time.Time, string) {
	now := time.Now().UTC()
	return now, now.Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
