package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/infrastructure/repository/memory"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
)

func TestScoreSyncService_Run_InsertsNewDay(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = ExternalScoreDay{
		CurrentDate: "2025-09-21",
		Games: []ExternalGame{
			makeExternalGame(2025010006),
			makeExternalGame(2025010007),
		},
	}

	summary, err := fx.svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !summary.Success {
		t.Fatalf("expected successful run, got %+v", summary)
	}
	if summary.Inserted != 2 || summary.Updated != 0 || summary.Skipped != 0 {
		t.Fatalf("expected 2 inserts, got %+v", summary)
	}
	if summary.GamesProcessed != 2 {
		t.Fatalf("expected 2 games processed, got=%d", summary.GamesProcessed)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", summary.Errors)
	}

	teams, err := fx.teams.List(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 deduplicated teams, got=%d", len(teams))
	}

	venues, err := fx.venues.List(t.Context())
	if err != nil {
		t.Fatalf("list venues: %v", err)
	}
	if len(venues) != 1 || venues[0].NameKey != "scotiabank-arena" {
		t.Fatalf("expected one scotiabank-arena venue, got %+v", venues)
	}

	attempts, err := fx.attempts.List(t.Context(), fetchattempt.ListFilter{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected exactly one fetch attempt, got=%d", len(attempts))
	}
	if !attempts[0].Success || attempts[0].GamesProcessed != 2 {
		t.Fatalf("unexpected attempt row: %+v", attempts[0])
	}
	if attempts[0].ErrorMessage != nil {
		t.Fatalf("expected nil error message, got %q", *attempts[0].ErrorMessage)
	}
	if attempts[0].SourceURL != "https://api-web.nhle.com/v1/score/2025-09-21" {
		t.Fatalf("unexpected source url: %s", attempts[0].SourceURL)
	}
}

func TestScoreSyncService_Run_SecondIdenticalRunAllUpdated(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = ExternalScoreDay{
		CurrentDate: "2025-09-21",
		Games: []ExternalGame{
			makeExternalGame(2025010006),
			makeExternalGame(2025010007),
		},
	}

	if _, err := fx.svc.Run(t.Context(), RunParams{Date: testRunDate()}); err != nil {
		t.Fatalf("first run error: %v", err)
	}

	summary, err := fx.svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}

	if summary.Inserted != 0 {
		t.Fatalf("expected no inserts on identical re-run, got=%d", summary.Inserted)
	}
	if summary.Updated != 2 || summary.Skipped != 0 {
		t.Fatalf("expected both games updated, got %+v", summary)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", summary.Errors)
	}
}

func TestScoreSyncService_Run_GameLifecycle(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	date := testRunDate()

	// Preview: the game exists upstream but has not started.
	fx.provider.day = dayWith(makeExternalGame(2025010007))
	summary := mustRun(t, fx, RunParams{Date: date})
	if summary.Inserted != 1 {
		t.Fatalf("expected insert on first sighting, got %+v", summary)
	}

	stored := mustGetGame(t, fx, 2025010007)
	if stored.State != game.StateScheduled {
		t.Fatalf("expected SCHEDULED after preview, got=%s", stored.State)
	}
	if stored.HomeScore != nil || stored.AwayScore != nil {
		t.Fatalf("expected nil scores before the game starts, got %+v", stored)
	}

	// Final result arrives.
	finished := makeExternalGame(2025010007)
	finished.GameState = "OFF"
	finished.HomeTeam.Score = intPtr(4)
	finished.AwayTeam.Score = intPtr(2)
	finished.HomeTeam.SOG = intPtr(31)
	finished.AwayTeam.SOG = intPtr(27)
	fx.provider.day = dayWith(finished)

	summary = mustRun(t, fx, RunParams{Date: date})
	if summary.Updated != 1 || summary.Skipped != 0 {
		t.Fatalf("expected plain update for final result, got %+v", summary)
	}

	stored = mustGetGame(t, fx, 2025010007)
	if stored.State != game.StateFinal {
		t.Fatalf("expected FINAL, got=%s", stored.State)
	}
	if stored.HomeScore == nil || *stored.HomeScore != 4 || stored.AwayScore == nil || *stored.AwayScore != 2 {
		t.Fatalf("expected 4-2 final, got %+v", stored)
	}

	// A stale feed replays the game as live. Without force the result must
	// survive while venue and links still refresh.
	stale := makeExternalGame(2025010007)
	stale.GameState = "LIVE"
	stale.HomeTeam.Score = intPtr(1)
	stale.AwayTeam.Score = intPtr(0)
	stale.VenueName = "Rogers Place"
	stale.TicketsLink = "https://www.ticketmaster.com/event/replayed"
	fx.provider.day = dayWith(stale)

	summary = mustRun(t, fx, RunParams{Date: date})
	if summary.Skipped != 1 || summary.Updated != 0 {
		t.Fatalf("expected terminal protection to skip, got %+v", summary)
	}

	stored = mustGetGame(t, fx, 2025010007)
	if stored.State != game.StateFinal {
		t.Fatalf("unforced stale feed must not demote FINAL, got=%s", stored.State)
	}
	if stored.HomeScore == nil || *stored.HomeScore != 4 {
		t.Fatalf("unforced stale feed must not change the score, got %+v", stored)
	}
	if stored.VenueNameKey == nil || *stored.VenueNameKey != "rogers-place" {
		t.Fatalf("venue must refresh even under protection, got %+v", stored.VenueNameKey)
	}
	if stored.TicketsLink == nil || *stored.TicketsLink != "https://www.ticketmaster.com/event/replayed" {
		t.Fatalf("links must refresh even under protection, got %+v", stored.TicketsLink)
	}

	// Forced, the same payload overwrites the result.
	summary = mustRun(t, fx, RunParams{Date: date, Force: true})
	if summary.Updated != 1 || summary.Skipped != 0 {
		t.Fatalf("expected forced update, got %+v", summary)
	}

	stored = mustGetGame(t, fx, 2025010007)
	if stored.State != game.StateLive {
		t.Fatalf("expected LIVE after forced run, got=%s", stored.State)
	}
	if stored.HomeScore == nil || *stored.HomeScore != 1 || stored.AwayScore == nil || *stored.AwayScore != 0 {
		t.Fatalf("expected forced 1-0, got %+v", stored)
	}
}

func TestScoreSyncService_Run_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()

	games := make([]ExternalGame, 0, 11)
	for i := int64(1); i <= 10; i++ {
		games = append(games, makeExternalGame(2025010000+i))
	}
	broken := makeExternalGame(2025010099)
	broken.HomeTeam.ExternalID = 0
	games = append(games, broken)

	fx.provider.day = ExternalScoreDay{CurrentDate: "2025-09-21", Games: games}

	summary, err := fx.svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if summary.Inserted != 10 {
		t.Fatalf("expected 10 inserts, got %+v", summary)
	}
	if summary.GamesProcessed != 10 {
		t.Fatalf("expected 10 games processed, got=%d", summary.GamesProcessed)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", summary.Errors)
	}
	if !strings.Contains(summary.Errors[0], "2025010099") || !strings.Contains(summary.Errors[0], "homeTeam.id") {
		t.Fatalf("error must name the game and field, got %q", summary.Errors[0])
	}

	attempts, err := fx.attempts.List(t.Context(), fetchattempt.ListFilter{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 || !attempts[0].Success || attempts[0].GamesProcessed != 10 {
		t.Fatalf("unexpected attempt row: %+v", attempts)
	}
	if attempts[0].ErrorMessage == nil || !strings.Contains(*attempts[0].ErrorMessage, "2025010099") {
		t.Fatalf("attempt must carry the record error, got %+v", attempts[0].ErrorMessage)
	}
}

func TestScoreSyncService_Run_ProviderFailureStillLogsAttempt(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.err = fmt.Errorf("GET /v1/score/2025-09-21: %w", ErrProviderTimeout)

	summary, err := fx.svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if !errors.Is(err, ErrProviderTimeout) {
		t.Fatalf("expected ErrProviderTimeout, got %v", err)
	}
	if summary.Success {
		t.Fatalf("expected failed summary, got %+v", summary)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected one error entry, got %v", summary.Errors)
	}

	attempts, listErr := fx.attempts.List(t.Context(), fetchattempt.ListFilter{})
	if listErr != nil {
		t.Fatalf("list attempts: %v", listErr)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected exactly one fetch attempt, got=%d", len(attempts))
	}
	if attempts[0].Success || attempts[0].GamesProcessed != 0 {
		t.Fatalf("unexpected attempt row: %+v", attempts[0])
	}
	if attempts[0].ErrorMessage == nil || !strings.Contains(*attempts[0].ErrorMessage, "timed out") {
		t.Fatalf("attempt must record the failure, got %+v", attempts[0].ErrorMessage)
	}
}

func TestScoreSyncService_Run_AttemptWriteFailureDoesNotFailRun(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = dayWith(makeExternalGame(2025010007))

	svc := &ScoreSyncService{
		provider:      fx.provider,
		teamRepo:      fx.teams,
		venueRepo:     fx.venues,
		gameRepo:      fx.games,
		broadcastRepo: fx.broadcasts,
		attemptRepo:   failingAttemptRepo{},
		logger:        logging.NewNop(),
		now:           fx.svc.now,
	}

	summary, err := svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if err != nil {
		t.Fatalf("audit failure must not fail the run: %v", err)
	}
	if !summary.Success || summary.Inserted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestScoreSyncService_Run_BroadcastReplaceShrinks(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()

	full := makeExternalGame(2025010007)
	full.Broadcasts = []ExternalBroadcast{
		{Network: "SN", CountryCode: "CA", Market: "N", SequenceNumber: 1},
		{Network: "TVAS", CountryCode: "CA", Market: "N", SequenceNumber: 2},
		{Network: "ESPN+", CountryCode: "US", Market: "N", SequenceNumber: 3},
	}
	fx.provider.day = dayWith(full)
	mustRun(t, fx, RunParams{Date: testRunDate()})

	rows, err := fx.broadcasts.ListForGame(t.Context(), 2025010007)
	if err != nil {
		t.Fatalf("list broadcasts: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 broadcasts, got=%d", len(rows))
	}

	shrunk := makeExternalGame(2025010007)
	shrunk.Broadcasts = []ExternalBroadcast{
		{Network: "SN", CountryCode: "CA", Market: "N", SequenceNumber: 1},
	}
	fx.provider.day = dayWith(shrunk)
	mustRun(t, fx, RunParams{Date: testRunDate()})

	rows, err = fx.broadcasts.ListForGame(t.Context(), 2025010007)
	if err != nil {
		t.Fatalf("list broadcasts: %v", err)
	}
	if len(rows) != 1 || rows[0].Network != "SN" {
		t.Fatalf("expected the replace to leave one SN row, got %+v", rows)
	}
}

func TestScoreSyncService_Run_DuplicateBroadcastPairCollapses(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()

	item := makeExternalGame(2025010007)
	item.Broadcasts = []ExternalBroadcast{
		{Network: "SN", CountryCode: "CA", Market: "National", SequenceNumber: 1},
		{Network: "SN", CountryCode: "CA", Market: "Home", SequenceNumber: 2},
		{Network: "SN", CountryCode: "US", Market: "National", SequenceNumber: 3},
	}
	fx.provider.day = dayWith(item)
	mustRun(t, fx, RunParams{Date: testRunDate()})

	rows, err := fx.broadcasts.ListForGame(t.Context(), 2025010007)
	if err != nil {
		t.Fatalf("list broadcasts: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("repeated network/country pair must collapse to one row, got %+v", rows)
	}
	if rows[0].Market != "National" || rows[0].CountryCode != "CA" {
		t.Fatalf("first occurrence wins, got %+v", rows[0])
	}
	if rows[1].CountryCode != "US" {
		t.Fatalf("distinct country survives, got %+v", rows[1])
	}
}

func TestScoreSyncService_Run_ZeroGamesDay(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = ExternalScoreDay{CurrentDate: "2025-07-01", Games: nil}

	summary, err := fx.svc.Run(t.Context(), RunParams{Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !summary.Success || summary.GamesProcessed != 0 || len(summary.Errors) != 0 {
		t.Fatalf("expected clean empty-day summary, got %+v", summary)
	}

	attempts, err := fx.attempts.List(t.Context(), fetchattempt.ListFilter{})
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 1 || !attempts[0].Success || attempts[0].GamesProcessed != 0 {
		t.Fatalf("empty day still needs its attempt row, got %+v", attempts)
	}
}

func TestScoreSyncService_Run_DuplicateInsertSettledAsUpdate(t *testing.T) {
	t.Parallel()

	fx := newScoreSyncFixture()
	fx.provider.day = dayWith(makeExternalGame(2025010007))

	racing := &racingGameRepo{GameRepository: fx.games}
	svc := &ScoreSyncService{
		provider:      fx.provider,
		teamRepo:      fx.teams,
		venueRepo:     fx.venues,
		gameRepo:      racing,
		broadcastRepo: fx.broadcasts,
		attemptRepo:   fx.attempts,
		logger:        logging.NewNop(),
		now:           fx.svc.now,
	}

	summary, err := svc.Run(t.Context(), RunParams{Date: testRunDate()})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if summary.Inserted != 0 || summary.Updated != 1 {
		t.Fatalf("expected the lost race to settle as an update, got %+v", summary)
	}
	if len(summary.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", summary.Errors)
	}
}

func TestNormalizeScoreDay_DedupesTeamsAndVenues(t *testing.T) {
	t.Parallel()

	first := makeExternalGame(2025010006)
	first.HomeTeam.LogoURL = ""

	second := makeExternalGame(2025010007)
	second.AwayTeam = ExternalGameTeam{ExternalID: 8, Name: "Montréal Canadiens", Abbrev: "MTL"}

	drafts := normalizeScoreDay(ExternalScoreDay{Games: []ExternalGame{first, second}})

	if len(drafts.errors) != 0 {
		t.Fatalf("expected no errors, got %v", drafts.errors)
	}
	if len(drafts.teams) != 3 {
		t.Fatalf("expected 3 deduplicated teams, got %+v", drafts.teams)
	}
	if drafts.teams[0].ExternalID != 8 || drafts.teams[1].ExternalID != 9 || drafts.teams[2].ExternalID != 10 {
		t.Fatalf("expected teams ordered by external id, got %+v", drafts.teams)
	}
	if drafts.teams[2].LogoURL == "" {
		t.Fatalf("later sighting must fill the missing logo, got %+v", drafts.teams[2])
	}
	if len(drafts.venues) != 1 {
		t.Fatalf("expected 1 deduplicated venue, got %+v", drafts.venues)
	}
	if len(drafts.games) != 2 || drafts.games[0].game.ExternalID != 2025010006 {
		t.Fatalf("expected games ordered by external id, got %d entries", len(drafts.games))
	}
}

func TestNormalizeGame_RequiredFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(*ExternalGame)
		wantPath string
	}{
		{"missing id", func(g *ExternalGame) { g.ExternalID = 0 }, "id"},
		{"missing season", func(g *ExternalGame) { g.Season = 0 }, "season"},
		{"missing game type", func(g *ExternalGame) { g.GameType = 0 }, "gameType"},
		{"missing game date", func(g *ExternalGame) { g.GameDate = "" }, "gameDate"},
		{"malformed game date", func(g *ExternalGame) { g.GameDate = "09/21/2025" }, "gameDate"},
		{"missing home team", func(g *ExternalGame) { g.HomeTeam.ExternalID = 0 }, "homeTeam.id"},
		{"missing away team", func(g *ExternalGame) { g.AwayTeam.ExternalID = 0 }, "awayTeam.id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw := makeExternalGame(2025010007)
			tc.mutate(&raw)

			_, err := normalizeGame(raw)
			if err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
			if !strings.Contains(err.Error(), tc.wantPath) {
				t.Fatalf("error must name field %q, got %q", tc.wantPath, err.Error())
			}
		})
	}
}

func TestNormalizeGame_OptionalFieldsStayAbsent(t *testing.T) {
	t.Parallel()

	raw := makeExternalGame(2025010007)
	raw.VenueName = ""
	raw.StartTimeUTC = nil
	raw.GameCenterLink = ""
	raw.TicketsLink = ""
	raw.HomeTeam.Score = nil
	raw.AwayTeam.Score = nil

	draft, err := normalizeGame(raw)
	if err != nil {
		t.Fatalf("normalizeGame error: %v", err)
	}

	g := draft.game
	if g.VenueNameKey != nil || g.StartTimeUTC != nil || g.GameCenterLink != nil || g.TicketsLink != nil {
		t.Fatalf("absent optionals must stay nil, got %+v", g)
	}
	if g.HomeScore != nil || g.AwayScore != nil {
		t.Fatalf("absent scores must stay nil, got %+v", g)
	}
}

func TestMergeGame(t *testing.T) {
	t.Parallel()

	stored := game.Game{
		ExternalID: 2025010007,
		Season:     20252026,
		GameType:   game.GameTypePreseason,
		GameDate:   time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC),
		State:      game.StateFinal,
		HomeScore:  intPtr(4),
		AwayScore:  intPtr(2),
	}

	live := stored
	live.State = game.StateLive
	live.HomeScore = intPtr(1)
	live.AwayScore = intPtr(0)

	merged, withheld := mergeGame(stored, live, false)
	if !withheld {
		t.Fatalf("conflicting score on a terminal game must be withheld")
	}
	if merged.State != game.StateFinal || *merged.HomeScore != 4 {
		t.Fatalf("protected fields must keep stored values, got %+v", merged)
	}

	merged, withheld = mergeGame(stored, live, true)
	if withheld {
		t.Fatalf("force must disable protection")
	}
	if merged.State != game.StateLive || *merged.HomeScore != 1 {
		t.Fatalf("forced merge must take the draft, got %+v", merged)
	}

	identical := stored
	merged, withheld = mergeGame(stored, identical, false)
	if withheld {
		t.Fatalf("identical values are not a conflict")
	}
	if merged.State != game.StateFinal || *merged.HomeScore != 4 {
		t.Fatalf("identical merge must keep the result, got %+v", merged)
	}

	scheduled := stored
	scheduled.State = game.StateScheduled
	scheduled.HomeScore = nil
	scheduled.AwayScore = nil
	merged, withheld = mergeGame(scheduled, live, false)
	if withheld || merged.State != game.StateLive {
		t.Fatalf("non-terminal rows always take the draft, got %+v", merged)
	}
}

type scoreSyncFixture struct {
	provider   *scriptedScoreProvider
	teams      *memory.TeamRepository
	venues     *memory.VenueRepository
	games      *memory.GameRepository
	broadcasts *memory.BroadcastRepository
	attempts   *memory.FetchAttemptRepository
	svc        *ScoreSyncService
}

func newScoreSyncFixture() *scoreSyncFixture {
	fx := &scoreSyncFixture{
		provider:   &scriptedScoreProvider{},
		teams:      memory.NewTeamRepository(nil),
		venues:     memory.NewVenueRepository(nil),
		games:      memory.NewGameRepository(nil),
		broadcasts: memory.NewBroadcastRepository(),
		attempts:   memory.NewFetchAttemptRepository(),
	}

	fx.svc = NewScoreSyncService(fx.provider, fx.teams, fx.venues, fx.games, fx.broadcasts, fx.attempts, logging.NewNop())
	fx.svc.now = func() time.Time { return time.Date(2025, 9, 21, 18, 30, 0, 0, time.UTC) }

	return fx
}

func mustRun(t *testing.T, fx *scoreSyncFixture, params RunParams) RunSummary {
	t.Helper()

	summary, err := fx.svc.Run(t.Context(), params)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return summary
}

func mustGetGame(t *testing.T, fx *scoreSyncFixture, externalID int64) game.Game {
	t.Helper()

	stored, found, err := fx.games.GetByExternalID(t.Context(), externalID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if !found {
		t.Fatalf("game %d not found", externalID)
	}
	return stored
}

func testRunDate() time.Time {
	return time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC)
}

func dayWith(games ...ExternalGame) ExternalScoreDay {
	return ExternalScoreDay{CurrentDate: "2025-09-21", Games: games}
}

func makeExternalGame(externalID int64) ExternalGame {
	start := time.Date(2025, 9, 21, 21, 0, 0, 0, time.UTC)
	return ExternalGame{
		ExternalID:        externalID,
		Season:            20252026,
		GameType:          game.GameTypePreseason,
		GameDate:          "2025-09-21",
		GameState:         "FUT",
		GameScheduleState: "OK",
		StartTimeUTC:      &start,
		EasternUTCOffset:  "-04:00",
		VenueUTCOffset:    "-04:00",
		VenueTimezone:     "America/Toronto",
		VenueName:         "Scotiabank Arena",
		GameCenterLink:    "/gamecenter/ott-vs-tor/2025/09/21/2025010007",
		HomeTeam: ExternalGameTeam{
			ExternalID: 10,
			Name:       "Toronto Maple Leafs",
			Abbrev:     "TOR",
			LogoURL:    "https://assets.nhle.com/logos/nhl/svg/TOR_light.svg",
		},
		AwayTeam: ExternalGameTeam{
			ExternalID: 9,
			Name:       "Ottawa Senators",
			Abbrev:     "OTT",
			LogoURL:    "https://assets.nhle.com/logos/nhl/svg/OTT_light.svg",
		},
		Broadcasts: []ExternalBroadcast{
			{Network: "SN", CountryCode: "CA", Market: "N", SequenceNumber: 1},
		},
	}
}

func intPtr(v int) *int {
	return &v
}

type scriptedScoreProvider struct {
	day       ExternalScoreDay
	err       error
	failDates map[string]error
}

func (p *scriptedScoreProvider) FetchScoresByDate(_ context.Context, date time.Time) (ExternalScoreDay, error) {
	if p.err != nil {
		return ExternalScoreDay{}, p.err
	}
	if err, ok := p.failDates[date.Format("2006-01-02")]; ok {
		return ExternalScoreDay{}, err
	}
	return p.day, nil
}

func (p *scriptedScoreProvider) ScoreURL(date time.Time) string {
	return "https://api-web.nhle.com/v1/score/" + date.Format("2006-01-02")
}

type failingAttemptRepo struct{}

func (failingAttemptRepo) Append(_ context.Context, _ fetchattempt.Attempt) error {
	return errors.New("audit store offline")
}

func (failingAttemptRepo) List(_ context.Context, _ fetchattempt.ListFilter) ([]fetchattempt.Attempt, error) {
	return nil, nil
}

// racingGameRepo makes the first insert lose to a concurrent writer: the
// row lands (as the other writer's) and the caller sees a duplicate error.
type racingGameRepo struct {
	*memory.GameRepository
	once sync.Once
}

func (r *racingGameRepo) Insert(ctx context.Context, item game.Game) error {
	raced := false
	r.once.Do(func() {
		raced = true
		_ = r.GameRepository.Insert(ctx, item)
	})
	if raced {
		return fmt.Errorf("insert game %d: %w", item.ExternalID, game.ErrDuplicateExternalID)
	}
	return r.GameRepository.Insert(ctx, item)
}
