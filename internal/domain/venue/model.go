package venue

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrDuplicateNameKey reports a uniqueness violation on the venue's derived
// name key, raised when a concurrent run inserted the same venue first.
var ErrDuplicateNameKey = errors.New("venue name key already exists")

// Venue is a rink games are played at. The provider does not expose a venue
// id, so the normalized display name doubles as the natural key. Timezone
// and offset come from the game rows that reference the venue.
type Venue struct {
	NameKey   string
	Name      string
	Timezone  string
	UTCOffset string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v Venue) Validate() error {
	if v.NameKey == "" {
		return fmt.Errorf("venue name key is required")
	}
	if v.Name == "" {
		return fmt.Errorf("venue name is required")
	}

	return nil
}

// NameKeyFor derives the natural key from a display name: lowercase with
// non-alphanumeric runs collapsed to single dashes.
func NameKeyFor(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return ""
	}

	var builder strings.Builder
	lastDash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			builder.WriteByte('-')
			lastDash = true
		}
	}

	return strings.Trim(builder.String(), "-")
}
