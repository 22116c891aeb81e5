package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/Dosada05/sporter/storage"
)

type StandingService interface {
	// EnsureStandingsRow creates the zero row of a competitor if it does not exist yet.
	EnsureStandingsRow(ctx context.Context, sportID, teamID int) error
	ListStandings(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error)
	// SyncStandings seeds rows for every competitor scheduled in the sport and mode.
	SyncStandings(ctx context.Context, actor models.Identity, sportID int, mode string) (int, error)
	// PublishSnapshot uploads the current table as JSON to object storage.
	PublishSnapshot(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error)
}

type standingService struct {
	tx           repositories.Transactor
	standingRepo repositories.StandingRepository
	sportRepo    repositories.SportRepository
	teamRepo     repositories.TeamRepository
	matchRepo    repositories.MatchRepository
	access       AccessService
	uploader     storage.FileUploader
	logger       *slog.Logger
	now          func() time.Time
}

func NewStandingService(
	tx repositories.Transactor,
	standingRepo repositories.StandingRepository,
	sportRepo repositories.SportRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	access AccessService,
	uploader storage.FileUploader,
	logger *slog.Logger,
) StandingService {
	return &standingService{
		tx:           tx,
		standingRepo: standingRepo,
		sportRepo:    sportRepo,
		teamRepo:     teamRepo,
		matchRepo:    matchRepo,
		access:       access,
		uploader:     uploader,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *standingService) EnsureStandingsRow(ctx context.Context, sportID, teamID int) error {
	return s.ensureStandingsRow(ctx, nil, sportID, teamID)
}

func (s *standingService) ensureStandingsRow(ctx context.Context, exec repositories.SQLExecutor, sportID, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, exec, teamID)
	if err != nil {
		return handleRepositoryError(err, "get competitor")
	}
	if team.SportID != sportID {
		return ErrCompetitorSport
	}
	if err := s.standingRepo.Ensure(ctx, exec, sportID, teamID); err != nil {
		return handleRepositoryError(err, "ensure standing")
	}
	return nil
}

func (s *standingService) ListStandings(ctx context.Context, sportID int, mode string) (*models.StandingsTable, error) {
	kind, err := parseCompetitorKind(mode)
	if err != nil {
		return nil, err
	}

	sport, err := s.sportRepo.GetByID(ctx, nil, sportID)
	if err != nil {
		return nil, handleRepositoryError(err, "get sport")
	}
	rows, err := s.standingRepo.List(ctx, nil, sportID, kind, sport.ScoringSystem)
	if err != nil {
		return nil, handleRepositoryError(err, "list standings")
	}

	populateSportLogoURL(sport, s.uploader)
	populateStandingLogoURLs(rows, s.uploader)

	return &models.StandingsTable{
		Sport:       sport,
		Mode:        kind,
		Rows:        rows,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *standingService) SyncStandings(ctx context.Context, actor models.Identity, sportID int, mode string) (int, error) {
	kind, err := parseCompetitorKind(mode)
	if err != nil {
		return 0, err
	}
	if _, err := s.sportRepo.GetByID(ctx, nil, sportID); err != nil {
		return 0, handleRepositoryError(err, "get sport")
	}
	if err := s.access.AuthorizeSport(ctx, actor, sportID); err != nil {
		return 0, err
	}

	var seeded int
	err = s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		ids, err := s.matchRepo.ListCompetitorIDs(ctx, tx, sportID, kind)
		if err != nil {
			return fmt.Errorf("list competitors: %w", err)
		}
		for _, id := range ids {
			if err := s.ensureStandingsRow(ctx, tx, sportID, id); err != nil {
				return err
			}
		}
		seeded = len(ids)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "standings synced",
		slog.Int("sport_id", sportID), slog.String("mode", string(kind)), slog.Int("competitors", seeded))
	return seeded, nil
}

// SnapshotKey is the object key a standings table is published under.
func SnapshotKey(sportID int, mode models.CompetitorKind) string {
	return fmt.Sprintf("standings/sport-%d-%s.json", sportID, mode)
}

func (s *standingService) PublishSnapshot(ctx context.Context, sportID int, mode string) (*storage.UploadResult, error) {
	table, err := s.ListStandings(ctx, sportID, mode)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("marshal standings snapshot: %w", err)
	}

	key := SnapshotKey(sportID, table.Mode)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("upload standings snapshot: %w", err)
	}

	s.logger.InfoContext(ctx, "standings snapshot published",
		slog.Int("sport_id", sportID), slog.String("key", key), slog.Int("rows", len(table.Rows)))
	return result, nil
}
