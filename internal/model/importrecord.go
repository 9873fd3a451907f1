package model

import "time"

// ImportRecord captures one statement import attempt: which account it was
// for and the statement period it covered. Records are immutable once
// created and are never deduplicated; only transactions are.
type ImportRecord struct {
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	ID        int64
	AccountID int64
}
