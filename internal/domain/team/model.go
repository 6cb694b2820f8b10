package team

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateExternalID reports a uniqueness violation on the team's
// natural key, raised when a concurrent run inserted the same team first.
var ErrDuplicateExternalID = errors.New("team external id already exists")

// Team is an NHL club referenced by games. The provider's numeric id is the
// natural key; name, abbreviation and logo are descriptive metadata that the
// remote source is authoritative for.
type Team struct {
	ExternalID int64
	Name       string
	Abbrev     string
	LogoURL    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (t Team) Validate() error {
	if t.ExternalID <= 0 {
		return fmt.Errorf("team external id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Abbrev == "" {
		return fmt.Errorf("team abbreviation is required")
	}

	return nil
}
