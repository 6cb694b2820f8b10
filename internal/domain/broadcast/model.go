package broadcast

import "fmt"

// Broadcast is one TV/streaming listing for a game. Listings are replaced
// wholesale per game on every fetch, never patched individually, so the
// composite key (game, network, country) only needs to hold within one
// game's set.
type Broadcast struct {
	GameExternalID int64
	Network        string
	CountryCode    string
	Market         string
	SequenceNumber int
}

func (b Broadcast) Validate() error {
	if b.GameExternalID <= 0 {
		return fmt.Errorf("broadcast game external id is required")
	}
	if b.Network == "" {
		return fmt.Errorf("broadcast network is required")
	}
	if b.CountryCode == "" {
		return fmt.Errorf("broadcast country code is required")
	}

	return nil
}
