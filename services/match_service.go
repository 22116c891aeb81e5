package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/sporter/live"
	"github.com/Dosada05/sporter/metrics"
	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/Dosada05/sporter/scoring"
	"golang.org/x/sync/errgroup"
)

// SetResult is returned after every accepted set.
type SetResult struct {
	MatchID  int  `json:"matchId"`
	Seq      int  `json:"seq"`
	Finished bool `json:"finished"`
	HomeWin  int  `json:"homeWin"`
	AwayWin  int  `json:"awayWin"`
	WinnerID *int `json:"winnerId,omitempty"`
}

// ClassicResult is returned after a final score of a classic sport match is recorded.
type ClassicResult struct {
	MatchID   int  `json:"matchId"`
	HomeScore int  `json:"homeScore"`
	AwayScore int  `json:"awayScore"`
	Draw      bool `json:"draw"`
	WinnerID  *int `json:"winnerId,omitempty"`
}

type ScheduleMatchInput struct {
	SportID      int        `json:"sport_id"`
	Mode         string     `json:"match_mode"`
	HomeTeamID   *int       `json:"home_team_id,omitempty"`
	AwayTeamID   *int       `json:"away_team_id,omitempty"`
	Participants []int      `json:"participants,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	Venue        *string    `json:"venue,omitempty"`
}

type MatchService interface {
	ScheduleMatch(ctx context.Context, actor models.Identity, input ScheduleMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, actor models.Identity, matchID int) (*models.Match, error)
	// SubmitSet appends one padel set to a match played in the given mode.
	SubmitSet(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, homeScore, awayScore int) (*SetResult, error)
	// SubmitLegacyScore is SubmitSet with the mode taken from the match itself.
	SubmitLegacyScore(ctx context.Context, actor models.Identity, matchID int, homeScore, awayScore int) (*SetResult, error)
	RecordClassicResult(ctx context.Context, actor models.Identity, matchID int, homeScore, awayScore int) (*ClassicResult, error)
}

type matchService struct {
	tx        repositories.Transactor
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	sportRepo repositories.SportRepository
	ledger    ledger
	access    AccessService
	hub       live.Publisher
	metrics   metrics.Recorder
	logger    *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
	standingRepo repositories.StandingRepository,
	access AccessService,
	hub live.Publisher,
	recorder metrics.Recorder,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:        tx,
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		sportRepo: sportRepo,
		ledger:    ledger{standingRepo: standingRepo},
		access:    access,
		hub:       hub,
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *matchService) ScheduleMatch(ctx context.Context, actor models.Identity, input ScheduleMatchInput) (*models.Match, error) {
	mode, err := parseCompetitorKind(input.Mode)
	if err != nil {
		return nil, err
	}
	sport, err := s.sportRepo.GetByID(ctx, nil, input.SportID)
	if err != nil {
		return nil, handleRepositoryError(err, "get sport")
	}
	if err := s.access.AuthorizeSport(ctx, actor, sport.ID); err != nil {
		return nil, err
	}

	var competitors []int
	switch mode {
	case models.KindTeam:
		if input.HomeTeamID == nil || input.AwayTeamID == nil {
			return nil, ErrMatchSidesMissing
		}
		competitors = []int{*input.HomeTeamID, *input.AwayTeamID}
	case models.KindIndividual:
		if len(input.Participants) != 2 {
			return nil, ErrParticipantCount
		}
		competitors = []int{input.Participants[0], input.Participants[1]}
	}
	if competitors[0] == competitors[1] {
		return nil, ErrSameCompetitor
	}
	for _, id := range competitors {
		if err := s.checkCompetitor(ctx, id, sport.ID, mode); err != nil {
			return nil, err
		}
	}

	match := &models.Match{
		SportID:   sport.ID,
		Mode:      mode,
		StartTime: input.StartTime,
		Venue:     input.Venue,
		Status:    models.MatchStatusScheduled,
	}
	if mode == models.KindTeam {
		match.HomeTeamID = intPtr(competitors[0])
		match.AwayTeamID = intPtr(competitors[1])
	}

	err = s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		if err := s.matchRepo.Create(ctx, tx, match); err != nil {
			return handleRepositoryError(err, "create match")
		}
		if mode == models.KindIndividual {
			if err := s.matchRepo.AddParticipants(ctx, tx, match.ID, competitors); err != nil {
				return handleRepositoryError(err, "add match participants")
			}
			match.Participants = competitors
		}
		return s.ledger.ensure(ctx, tx, sport.ID, competitors...)
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "match scheduled",
		slog.Int("match_id", match.ID), slog.Int("sport_id", sport.ID), slog.String("mode", string(mode)))
	return match, nil
}

func (s *matchService) checkCompetitor(ctx context.Context, teamID, sportID int, mode models.CompetitorKind) error {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return handleRepositoryError(err, "get competitor")
	}
	if team.SportID != sportID {
		return ErrCompetitorSport
	}
	if team.Kind() != mode {
		return ErrCompetitorKind
	}
	return nil
}

func (s *matchService) GetMatch(ctx context.Context, actor models.Identity, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	if err := s.access.AuthorizeSport(ctx, actor, match.SportID); err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		games, err := s.matchRepo.ListGames(gCtx, nil, matchID)
		if err != nil {
			return fmt.Errorf("list sets of match %d: %w", matchID, err)
		}
		match.Games = games
		return nil
	})
	if match.Mode == models.KindIndividual {
		g.Go(func() error {
			ids, err := s.matchRepo.ListParticipants(gCtx, nil, matchID)
			if err != nil {
				return fmt.Errorf("list participants of match %d: %w", matchID, err)
			}
			match.Participants = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) SubmitLegacyScore(ctx context.Context, actor models.Identity, matchID int, homeScore, awayScore int) (*SetResult, error) {
	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	return s.SubmitSet(ctx, actor, matchID, match.Mode, homeScore, awayScore)
}

func (s *matchService) SubmitSet(ctx context.Context, actor models.Identity, matchID int, mode models.CompetitorKind, homeScore, awayScore int) (*SetResult, error) {
	set := scoring.SetScore{Home: homeScore, Away: awayScore}
	if err := set.Validate(); err != nil {
		s.metrics.SetSubmitted(string(mode), metrics.OutcomeRejected)
		return nil, mapScoringError(err)
	}
	if !mode.Valid() {
		return nil, ErrInvalidMatchMode
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	if err := s.access.AuthorizeSport(ctx, actor, match.SportID); err != nil {
		return nil, err
	}

	var result *SetResult
	err = s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		var txErr error
		result, txErr = s.submitSetTx(ctx, tx, matchID, mode, set)
		return txErr
	})
	if err != nil {
		s.metrics.SetSubmitted(string(mode), outcomeOf(err))
		return nil, err
	}

	s.metrics.SetSubmitted(string(mode), metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "set recorded",
		slog.Int("match_id", matchID),
		slog.Int("seq", result.Seq),
		slog.Int("home_score", homeScore),
		slog.Int("away_score", awayScore),
		slog.Bool("finished", result.Finished),
	)

	msgType := live.MessageSetRecorded
	if result.Finished {
		msgType = live.MessageMatchFinished
		s.metrics.MatchFinished(string(mode))
	}
	room := live.MatchRoom(matchID)
	s.hub.BroadcastToRoom(room, live.Message{Type: msgType, Payload: result, RoomID: room})

	return result, nil
}

func (s *matchService) submitSetTx(ctx context.Context, tx repositories.SQLExecutor, matchID int, mode models.CompetitorKind, set scoring.SetScore) (*SetResult, error) {
	match, err := s.matchRepo.GetForUpdate(ctx, tx, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "lock match")
	}
	if match.Mode != mode {
		return nil, ErrMatchModeMismatch
	}
	if match.IsFinished {
		return nil, ErrMatchFinished
	}

	sport, err := s.sportRepo.GetByID(ctx, tx, match.SportID)
	if err != nil {
		return nil, handleRepositoryError(err, "get sport")
	}
	if sport.ScoringSystem != models.ScoringPadel {
		return nil, ErrScoringSystem
	}

	sides, err := s.resolveCompetitors(ctx, tx, match)
	if err != nil {
		return nil, err
	}

	games, err := s.matchRepo.ListGames(ctx, tx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list sets of match %d: %w", matchID, err)
	}
	state, err := scoring.Replay(games)
	if err != nil {
		return nil, fmt.Errorf("replay set log: %w", err)
	}
	next, err := state.Apply(set)
	if err != nil {
		return nil, mapScoringError(err)
	}

	game := &models.MatchGame{
		MatchID:    matchID,
		Seq:        state.NextSeq(),
		HomeScore:  set.Home,
		AwayScore:  set.Away,
		WinnerSide: set.Winner(),
	}
	if err := s.matchRepo.InsertGame(ctx, tx, game); err != nil {
		return nil, handleRepositoryError(err, "insert set")
	}

	if err := s.ledger.ensure(ctx, tx, match.SportID, sides.Home, sides.Away); err != nil {
		return nil, err
	}
	if err := s.ledger.applySet(ctx, tx, match.SportID, sides, set); err != nil {
		return nil, err
	}

	result := &SetResult{
		MatchID: matchID,
		Seq:     game.Seq,
		HomeWin: next.HomeWins,
		AwayWin: next.AwayWins,
	}

	var winnerID *int
	if side, ok := next.Winner(); ok {
		winnerID = intPtr(sides.of(side))
		if err := s.ledger.applyMatchResult(ctx, tx, match.SportID, sides.of(side), sides.of(side.Opponent())); err != nil {
			return nil, err
		}
		result.Finished = true
		result.WinnerID = winnerID
	}

	if err := s.matchRepo.UpdateProgress(ctx, tx, matchID, next.Phase().MatchStatus(), next.HomeWins, next.AwayWins, winnerID); err != nil {
		return nil, handleRepositoryError(err, "update match progress")
	}
	return result, nil
}

// resolveCompetitors returns the standings keys of both sides according to the stored match mode.
func (s *matchService) resolveCompetitors(ctx context.Context, tx repositories.SQLExecutor, match *models.Match) (competitorPair, error) {
	switch match.Mode {
	case models.KindTeam:
		if match.HomeTeamID == nil || match.AwayTeamID == nil {
			return competitorPair{}, ErrMatchSidesMissing
		}
		return competitorPair{Home: *match.HomeTeamID, Away: *match.AwayTeamID}, nil
	case models.KindIndividual:
		ids, err := s.matchRepo.ListParticipants(ctx, tx, match.ID)
		if err != nil {
			return competitorPair{}, fmt.Errorf("list participants of match %d: %w", match.ID, err)
		}
		if len(ids) != 2 {
			return competitorPair{}, ErrParticipantCount
		}
		return competitorPair{Home: ids[0], Away: ids[1]}, nil
	default:
		return competitorPair{}, ErrInvalidMatchMode
	}
}

func (s *matchService) RecordClassicResult(ctx context.Context, actor models.Identity, matchID int, homeScore, awayScore int) (*ClassicResult, error) {
	if homeScore < 0 || awayScore < 0 {
		s.metrics.ResultRecorded(metrics.OutcomeRejected)
		return nil, ErrNegativeFinalScore
	}

	match, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, handleRepositoryError(err, "get match")
	}
	if err := s.access.AuthorizeSport(ctx, actor, match.SportID); err != nil {
		return nil, err
	}

	result := &ClassicResult{MatchID: matchID, HomeScore: homeScore, AwayScore: awayScore}
	err = s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		locked, err := s.matchRepo.GetForUpdate(ctx, tx, matchID)
		if err != nil {
			return handleRepositoryError(err, "lock match")
		}
		if locked.IsFinished {
			return ErrMatchFinished
		}
		sport, err := s.sportRepo.GetByID(ctx, tx, locked.SportID)
		if err != nil {
			return handleRepositoryError(err, "get sport")
		}
		if sport.ScoringSystem != models.ScoringClassic {
			return ErrScoringSystem
		}

		sides, err := s.resolveCompetitors(ctx, tx, locked)
		if err != nil {
			return err
		}
		if err := s.ledger.ensure(ctx, tx, locked.SportID, sides.Home, sides.Away); err != nil {
			return err
		}
		if err := s.ledger.applyClassicResult(ctx, tx, locked.SportID, sides, homeScore, awayScore); err != nil {
			return err
		}

		switch {
		case homeScore > awayScore:
			result.WinnerID = intPtr(sides.Home)
		case awayScore > homeScore:
			result.WinnerID = intPtr(sides.Away)
		default:
			result.Draw = true
		}
		if err := s.matchRepo.UpdateProgress(ctx, tx, matchID, models.MatchStatusFinished, homeScore, awayScore, result.WinnerID); err != nil {
			return handleRepositoryError(err, "update match result")
		}
		return nil
	})
	if err != nil {
		s.metrics.ResultRecorded(outcomeOf(err))
		return nil, err
	}

	s.metrics.ResultRecorded(metrics.OutcomeAccepted)
	s.logger.InfoContext(ctx, "classic result recorded",
		slog.Int("match_id", matchID), slog.Int("home_score", homeScore), slog.Int("away_score", awayScore))

	room := live.MatchRoom(matchID)
	s.hub.BroadcastToRoom(room, live.Message{Type: live.MessageResultSaved, Payload: result, RoomID: room})
	return result, nil
}
