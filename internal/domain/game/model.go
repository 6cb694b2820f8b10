package game

import (
	"errors"
	"fmt"
	"time"
)

// ErrDuplicateExternalID reports a uniqueness violation on the game's
// natural key, raised when a concurrent run inserted the same game first.
var ErrDuplicateExternalID = errors.New("game external id already exists")

const (
	GameTypePreseason = 1
	GameTypeRegular   = 2
	GameTypePlayoffs  = 3
)

// Game is one scheduled NHL game keyed by the provider's numeric id.
// Scores, records and shot counts stay nil until the provider reports them;
// zero is a real score, not an unknown one.
type Game struct {
	ExternalID         int64
	Season             int
	GameType           int
	GameDate           time.Time
	State              State
	ScheduleState      string
	NeutralSite        bool
	HomeTeamExternalID int64
	AwayTeamExternalID int64
	HomeScore          *int
	AwayScore          *int
	HomeSOG            *int
	AwaySOG            *int
	HomeRecord         *string
	AwayRecord         *string
	VenueNameKey       *string
	StartTimeUTC       *time.Time
	EasternUTCOffset   string
	GameCenterLink     *string
	TicketsLink        *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (g Game) Validate() error {
	if g.ExternalID <= 0 {
		return fmt.Errorf("game external id is required")
	}
	if g.Season <= 0 {
		return fmt.Errorf("game season is required")
	}
	if g.GameType <= 0 {
		return fmt.Errorf("game type is required")
	}
	if g.GameDate.IsZero() {
		return fmt.Errorf("game date is required")
	}
	if g.HomeTeamExternalID <= 0 {
		return fmt.Errorf("home team external id is required")
	}
	if g.AwayTeamExternalID <= 0 {
		return fmt.Errorf("away team external id is required")
	}
	if _, ok := ParseState(string(g.State)); !ok {
		return fmt.Errorf("unknown game state %q", g.State)
	}

	return nil
}
