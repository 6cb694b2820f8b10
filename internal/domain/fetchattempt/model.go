package fetchattempt

import (
	"fmt"
	"time"
)

// Attempt is one audit row for one pipeline invocation. Rows are append-only;
// the pipeline never updates or deletes them.
type Attempt struct {
	ID             int64
	Date           time.Time
	SourceURL      string
	Success        bool
	GamesProcessed int
	ErrorMessage   *string
	FetchedAt      time.Time
}

func (a Attempt) Validate() error {
	if a.Date.IsZero() {
		return fmt.Errorf("attempt date is required")
	}
	if a.SourceURL == "" {
		return fmt.Errorf("attempt source url is required")
	}
	if a.GamesProcessed < 0 {
		return fmt.Errorf("attempt games processed cannot be negative")
	}

	return nil
}
