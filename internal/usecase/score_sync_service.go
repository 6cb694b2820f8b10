package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/slapshotlabs/scoresync/internal/domain/broadcast"
	"github.com/slapshotlabs/scoresync/internal/domain/fetchattempt"
	"github.com/slapshotlabs/scoresync/internal/domain/game"
	"github.com/slapshotlabs/scoresync/internal/domain/team"
	"github.com/slapshotlabs/scoresync/internal/domain/venue"
	"github.com/slapshotlabs/scoresync/internal/platform/logging"
)

const dateLayout = "2006-01-02"

// ScoreProvider fetches one day of games from the remote score feed.
// Implementations perform exactly one request per call and classify every
// failure as ErrProviderTimeout, ErrProviderNetwork or
// ErrProviderInvalidResponse; retry policy stays with the caller.
type ScoreProvider interface {
	FetchScoresByDate(ctx context.Context, date time.Time) (ExternalScoreDay, error)
	ScoreURL(date time.Time) string
}

// ExternalScoreDay mirrors the provider's daily score document before any
// validation. Field presence is preserved: pointers stay nil when the
// provider omitted the value.
type ExternalScoreDay struct {
	CurrentDate string
	Games       []ExternalGame
}

type ExternalGame struct {
	ExternalID        int64
	Season            int
	GameType          int
	GameDate          string
	GameState         string
	GameScheduleState string
	NeutralSite       bool
	StartTimeUTC      *time.Time
	EasternUTCOffset  string
	VenueUTCOffset    string
	VenueTimezone     string
	VenueName         string
	GameCenterLink    string
	TicketsLink       string
	HomeTeam          ExternalGameTeam
	AwayTeam          ExternalGameTeam
	Broadcasts        []ExternalBroadcast
}

type ExternalGameTeam struct {
	ExternalID int64
	Name       string
	Abbrev     string
	LogoURL    string
	Score      *int
	SOG        *int
	Record     string
}

type ExternalBroadcast struct {
	Network        string
	CountryCode    string
	Market         string
	SequenceNumber int
}

// RunParams selects one ingestion run. A zero Date means the invocation's
// current date.
type RunParams struct {
	Date  time.Time
	Force bool
}

// RunSummary is the aggregate result of one pipeline invocation. Skipped
// counts games whose score and state were withheld by terminal protection
// because the remote reported conflicting values; errors carries one entry
// per dropped or failed record.
type RunSummary struct {
	Date           string   `json:"date"`
	Success        bool     `json:"success"`
	GamesProcessed int      `json:"games_processed"`
	Inserted       int      `json:"inserted"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors"`
}

type ScoreSyncService struct {
	provider      ScoreProvider
	teamRepo      team.Repository
	venueRepo     venue.Repository
	gameRepo      game.Repository
	broadcastRepo broadcast.Repository
	attemptRepo   fetchattempt.Repository
	logger        *logging.Logger
	now           func() time.Time
}

func NewScoreSyncService(
	provider ScoreProvider,
	teamRepo team.Repository,
	venueRepo venue.Repository,
	gameRepo game.Repository,
	broadcastRepo broadcast.Repository,
	attemptRepo fetchattempt.Repository,
	logger *logging.Logger,
) *ScoreSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoreSyncService{
		provider:      provider,
		teamRepo:      teamRepo,
		venueRepo:     venueRepo,
		gameRepo:      gameRepo,
		broadcastRepo: broadcastRepo,
		attemptRepo:   attemptRepo,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes one ingestion: fetch the day's payload, normalize it,
// reconcile every record independently, and append exactly one fetch
// attempt regardless of outcome. Only a provider failure marks the run as
// failed; per-record problems land in the summary's error list.
func (s *ScoreSyncService) Run(ctx context.Context, params RunParams) (RunSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreSyncService.Run")
	defer span.End()

	if s.provider == nil {
		return RunSummary{}, fmt.Errorf("%w: score provider is not configured", ErrDependencyUnavailable)
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}
	date = civilDate(date.UTC())
	dateKey := date.Format(dateLayout)
	sourceURL := s.provider.ScoreURL(date)

	summary := RunSummary{Date: dateKey}

	day, err := s.provider.FetchScoresByDate(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "score fetch failed", "date", dateKey, "force", params.Force, "error", err)
		s.appendAttempt(ctx, date, sourceURL, false, 0, err.Error())
		summary.Errors = append(summary.Errors, fmt.Sprintf("fetch %s: %v", dateKey, err))
		return summary, fmt.Errorf("fetch scores date=%s: %w", dateKey, err)
	}

	if day.CurrentDate != "" && day.CurrentDate != dateKey {
		s.logger.WarnContext(ctx, "provider reported a different current date", "requested", dateKey, "reported", day.CurrentDate)
	}

	drafts := normalizeScoreDay(day)
	summary.Errors = append(summary.Errors, drafts.errors...)

	for _, item := range drafts.teams {
		if err := s.reconcileTeam(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "team reconcile failed", "team_external_id", item.ExternalID, "error", err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("team %d: %v", item.ExternalID, err))
		}
	}

	for _, item := range drafts.venues {
		if err := s.reconcileVenue(ctx, item); err != nil {
			s.logger.WarnContext(ctx, "venue reconcile failed", "venue_name_key", item.NameKey, "error", err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("venue %s: %v", item.NameKey, err))
		}
	}

	for _, draft := range drafts.games {
		outcome, err := s.reconcileGame(ctx, draft.game, params.Force)
		if err != nil {
			s.logger.WarnContext(ctx, "game reconcile failed", "game_external_id", draft.game.ExternalID, "error", err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("game %d: %v", draft.game.ExternalID, err))
			continue
		}

		switch outcome {
		case reconcileInserted:
			summary.Inserted++
		case reconcileUpdated:
			summary.Updated++
		case reconcileSkipped:
			summary.Skipped++
		}

		if err := s.broadcastRepo.ReplaceForGame(ctx, draft.game.ExternalID, draft.broadcasts); err != nil {
			s.logger.WarnContext(ctx, "broadcast replace failed", "game_external_id", draft.game.ExternalID, "error", err)
			summary.Errors = append(summary.Errors, fmt.Sprintf("game %d broadcasts: %v", draft.game.ExternalID, err))
		}
	}

	summary.GamesProcessed = summary.Inserted + summary.Updated + summary.Skipped
	summary.Success = true

	s.logger.InfoContext(ctx, "score sync finished",
		"date", dateKey,
		"force", params.Force,
		"games_processed", summary.GamesProcessed,
		"inserted", summary.Inserted,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", len(summary.Errors),
	)

	s.appendAttempt(ctx, date, sourceURL, true, summary.GamesProcessed, joinForAudit(summary.Errors))
	return summary, nil
}

type reconcileOutcome int

const (
	reconcileInserted reconcileOutcome = iota
	reconcileUpdated
	reconcileSkipped
)

func (s *ScoreSyncService) reconcileTeam(ctx context.Context, draft team.Team) error {
	_, found, err := s.teamRepo.GetByExternalID(ctx, draft.ExternalID)
	if err != nil {
		return fmt.Errorf("lookup team: %w", err)
	}

	if !found {
		err := s.teamRepo.Insert(ctx, draft)
		if err == nil {
			return nil
		}
		if !errors.Is(err, team.ErrDuplicateExternalID) {
			return fmt.Errorf("insert team: %w", err)
		}
		// Concurrent run inserted it first; the update below settles it.
	}

	if err := s.teamRepo.Update(ctx, draft); err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

func (s *ScoreSyncService) reconcileVenue(ctx context.Context, draft venue.Venue) error {
	_, found, err := s.venueRepo.GetByNameKey(ctx, draft.NameKey)
	if err != nil {
		return fmt.Errorf("lookup venue: %w", err)
	}

	if !found {
		err := s.venueRepo.Insert(ctx, draft)
		if err == nil {
			return nil
		}
		if !errors.Is(err, venue.ErrDuplicateNameKey) {
			return fmt.Errorf("insert venue: %w", err)
		}
	}

	if err := s.venueRepo.Update(ctx, draft); err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return nil
}

func (s *ScoreSyncService) reconcileGame(ctx context.Context, draft game.Game, force bool) (reconcileOutcome, error) {
	stored, found, err := s.gameRepo.GetByExternalID(ctx, draft.ExternalID)
	if err != nil {
		return 0, fmt.Errorf("lookup game: %w", err)
	}

	if !found {
		err := s.gameRepo.Insert(ctx, draft)
		if err == nil {
			return reconcileInserted, nil
		}
		if !errors.Is(err, game.ErrDuplicateExternalID) {
			return 0, fmt.Errorf("insert game: %w", err)
		}

		// Concurrent run inserted it between lookup and insert. Re-read the
		// stored row once and settle the write as an update.
		stored, found, err = s.gameRepo.GetByExternalID(ctx, draft.ExternalID)
		if err != nil {
			return 0, fmt.Errorf("lookup game after duplicate insert: %w", err)
		}
		if !found {
			return 0, fmt.Errorf("game vanished after duplicate insert")
		}
	}

	if stored.Season != draft.Season {
		s.logger.WarnContext(ctx, "game season changed between fetches",
			"game_external_id", draft.ExternalID,
			"stored_season", stored.Season,
			"incoming_season", draft.Season,
		)
	}

	merged, withheld := mergeGame(stored, draft, force)
	if err := s.gameRepo.Update(ctx, merged); err != nil {
		return 0, fmt.Errorf("update game: %w", err)
	}

	if withheld {
		return reconcileSkipped, nil
	}
	return reconcileUpdated, nil
}

// mergeGame folds a fresh draft onto the stored row. Scheduling, venue,
// team references and links always take the draft's values; score and
// lifecycle state keep the stored values when the stored state is terminal
// and force is unset. The second return reports whether that protection
// withheld a conflicting score or state.
func mergeGame(stored, draft game.Game, force bool) (game.Game, bool) {
	out := draft
	out.CreatedAt = stored.CreatedAt

	if force || !stored.State.Terminal() {
		return out, false
	}

	conflict := stored.State != draft.State ||
		!intPtrEqual(stored.HomeScore, draft.HomeScore) ||
		!intPtrEqual(stored.AwayScore, draft.AwayScore)

	out.State = stored.State
	out.HomeScore = cloneIntPtr(stored.HomeScore)
	out.AwayScore = cloneIntPtr(stored.AwayScore)
	out.HomeSOG = cloneIntPtr(stored.HomeSOG)
	out.AwaySOG = cloneIntPtr(stored.AwaySOG)
	out.HomeRecord = cloneStringPtr(stored.HomeRecord)
	out.AwayRecord = cloneStringPtr(stored.AwayRecord)

	return out, conflict
}

// appendAttempt writes the audit row for this invocation. It never fails
// the run: losing an audit row must not abort an otherwise-successful
// ingestion, so errors only reach the log.
func (s *ScoreSyncService) appendAttempt(ctx context.Context, date time.Time, sourceURL string, success bool, processed int, errMsg string) {
	attempt := fetchattempt.Attempt{
		Date:           date,
		SourceURL:      sourceURL,
		Success:        success,
		GamesProcessed: processed,
		FetchedAt:      s.now().UTC(),
	}
	if errMsg != "" {
		attempt.ErrorMessage = &errMsg
	}

	if err := s.attemptRepo.Append(ctx, attempt); err != nil {
		s.logger.ErrorContext(ctx, "record fetch attempt failed",
			"date", date.Format(dateLayout),
			"success", success,
			"error", err,
		)
	}
}

type scoreDrafts struct {
	teams  []team.Team
	venues []venue.Venue
	games  []gameDraft
	errors []string
}

type gameDraft struct {
	game       game.Game
	broadcasts []broadcast.Broadcast
}

// normalizeScoreDay validates every raw game independently. A game missing
// a required field is dropped with one error naming the field path; its
// teams and venue contribute nothing. Optional fields stay absent rather
// than defaulting to sentinels.
func normalizeScoreDay(day ExternalScoreDay) scoreDrafts {
	out := scoreDrafts{}
	teamsByID := make(map[int64]team.Team, len(day.Games)*2)
	venuesByKey := make(map[string]venue.Venue, len(day.Games))

	for i, raw := range day.Games {
		draft, err := normalizeGame(raw)
		if err != nil {
			out.errors = append(out.errors, fmt.Sprintf("game %s: %v", describeRawGame(raw, i), err))
			continue
		}
		out.games = append(out.games, draft)

		upsertTeamDraft(teamsByID, mapExternalGameTeam(raw.HomeTeam))
		upsertTeamDraft(teamsByID, mapExternalGameTeam(raw.AwayTeam))

		if name := strings.TrimSpace(raw.VenueName); name != "" {
			upsertVenueDraft(venuesByKey, venue.Venue{
				NameKey:   venue.NameKeyFor(name),
				Name:      name,
				Timezone:  strings.TrimSpace(raw.VenueTimezone),
				UTCOffset: strings.TrimSpace(raw.VenueUTCOffset),
			})
		}
	}

	out.teams = make([]team.Team, 0, len(teamsByID))
	for _, item := range teamsByID {
		out.teams = append(out.teams, item)
	}
	sort.SliceStable(out.teams, func(i, j int) bool { return out.teams[i].ExternalID < out.teams[j].ExternalID })

	out.venues = make([]venue.Venue, 0, len(venuesByKey))
	for _, item := range venuesByKey {
		out.venues = append(out.venues, item)
	}
	sort.SliceStable(out.venues, func(i, j int) bool { return out.venues[i].NameKey < out.venues[j].NameKey })

	sort.SliceStable(out.games, func(i, j int) bool { return out.games[i].game.ExternalID < out.games[j].game.ExternalID })

	return out
}

func normalizeGame(raw ExternalGame) (gameDraft, error) {
	if raw.ExternalID <= 0 {
		return gameDraft{}, fmt.Errorf("missing required field id")
	}
	if raw.Season <= 0 {
		return gameDraft{}, fmt.Errorf("missing required field season")
	}
	if raw.GameType <= 0 {
		return gameDraft{}, fmt.Errorf("missing required field gameType")
	}
	gameDate, err := time.Parse(dateLayout, strings.TrimSpace(raw.GameDate))
	if err != nil {
		return gameDraft{}, fmt.Errorf("missing required field gameDate")
	}
	if raw.HomeTeam.ExternalID <= 0 {
		return gameDraft{}, fmt.Errorf("missing required field homeTeam.id")
	}
	if raw.AwayTeam.ExternalID <= 0 {
		return gameDraft{}, fmt.Errorf("missing required field awayTeam.id")
	}

	item := game.Game{
		ExternalID:         raw.ExternalID,
		Season:             raw.Season,
		GameType:           raw.GameType,
		GameDate:           gameDate,
		State:              game.StateFromProvider(raw.GameState),
		ScheduleState:      strings.TrimSpace(raw.GameScheduleState),
		NeutralSite:        raw.NeutralSite,
		HomeTeamExternalID: raw.HomeTeam.ExternalID,
		AwayTeamExternalID: raw.AwayTeam.ExternalID,
		HomeScore:          cloneIntPtr(raw.HomeTeam.Score),
		AwayScore:          cloneIntPtr(raw.AwayTeam.Score),
		HomeSOG:            cloneIntPtr(raw.HomeTeam.SOG),
		AwaySOG:            cloneIntPtr(raw.AwayTeam.SOG),
		HomeRecord:         optionalTrimmed(raw.HomeTeam.Record),
		AwayRecord:         optionalTrimmed(raw.AwayTeam.Record),
		StartTimeUTC:       cloneTimePtr(raw.StartTimeUTC),
		EasternUTCOffset:   strings.TrimSpace(raw.EasternUTCOffset),
		GameCenterLink:     optionalTrimmed(raw.GameCenterLink),
		TicketsLink:        optionalTrimmed(raw.TicketsLink),
	}

	if name := strings.TrimSpace(raw.VenueName); name != "" {
		key := venue.NameKeyFor(name)
		item.VenueNameKey = &key
	}

	if err := item.Validate(); err != nil {
		return gameDraft{}, err
	}

	broadcasts := make([]broadcast.Broadcast, 0, len(raw.Broadcasts))
	seenBroadcasts := make(map[string]struct{}, len(raw.Broadcasts))
	for _, b := range raw.Broadcasts {
		entry := broadcast.Broadcast{
			GameExternalID: raw.ExternalID,
			Network:        strings.TrimSpace(b.Network),
			CountryCode:    strings.TrimSpace(b.CountryCode),
			Market:         strings.TrimSpace(b.Market),
			SequenceNumber: b.SequenceNumber,
		}
		if entry.Validate() != nil {
			// Broadcasts are optional decoration; a bad entry is dropped
			// without failing the game.
			continue
		}
		// The listing table keys on (game, network, country); a payload that
		// repeats the pair keeps the first occurrence.
		dedupeKey := entry.Network + "|" + entry.CountryCode
		if _, dup := seenBroadcasts[dedupeKey]; dup {
			continue
		}
		seenBroadcasts[dedupeKey] = struct{}{}
		broadcasts = append(broadcasts, entry)
	}

	return gameDraft{game: item, broadcasts: broadcasts}, nil
}

func mapExternalGameTeam(raw ExternalGameTeam) team.Team {
	return team.Team{
		ExternalID: raw.ExternalID,
		Name:       strings.TrimSpace(raw.Name),
		Abbrev:     strings.TrimSpace(raw.Abbrev),
		LogoURL:    strings.TrimSpace(raw.LogoURL),
	}
}

// upsertTeamDraft dedupes teams within one payload: the first occurrence
// wins, later sightings only fill fields the first left empty.
func upsertTeamDraft(items map[int64]team.Team, candidate team.Team) {
	if candidate.ExternalID <= 0 || candidate.Name == "" || candidate.Abbrev == "" {
		return
	}

	existing, ok := items[candidate.ExternalID]
	if !ok {
		items[candidate.ExternalID] = candidate
		return
	}

	if existing.LogoURL == "" {
		existing.LogoURL = candidate.LogoURL
	}
	items[candidate.ExternalID] = existing
}

func upsertVenueDraft(items map[string]venue.Venue, candidate venue.Venue) {
	if candidate.NameKey == "" || candidate.Name == "" {
		return
	}

	existing, ok := items[candidate.NameKey]
	if !ok {
		items[candidate.NameKey] = candidate
		return
	}

	if existing.Timezone == "" {
		existing.Timezone = candidate.Timezone
	}
	if existing.UTCOffset == "" {
		existing.UTCOffset = candidate.UTCOffset
	}
	items[candidate.NameKey] = existing
}

func describeRawGame(raw ExternalGame, index int) string {
	if raw.ExternalID > 0 {
		return fmt.Sprintf("%d", raw.ExternalID)
	}
	return fmt.Sprintf("at index %d", index)
}

func joinForAudit(errs []string) string {
	if len(errs) == 0 {
		return ""
	}

	joined := strings.Join(errs, "; ")
	if len(joined) > 1000 {
		joined = joined[:1000] + "..."
	}
	return joined
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func optionalTrimmed(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func intPtrEqual(left, right *int) bool {
	if left == nil || right == nil {
		return left == right
	}
	return *left == *right
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}

func cloneTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	v := value.UTC()
	return &v
}
