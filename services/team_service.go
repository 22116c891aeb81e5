package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/Dosada05/sporter/storage"
)

// TeamService отдаёт участников вида спорта (команды и спортсменов) и управляет их логотипами.
type TeamService interface {
	ListTeams(ctx context.Context, sportID int, mode string) ([]models.Team, error)
	GetTeamByID(ctx context.Context, teamID int) (*models.Team, error)
	// UploadTeamLogo is allowed to admins and to subadmins assigned to the team's sport.
	UploadTeamLogo(ctx context.Context, actor models.Identity, teamID int, file io.Reader, contentType string) (*models.Team, error)
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	sportRepo repositories.SportRepository
	access    AccessService
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	sportRepo repositories.SportRepository,
	access AccessService,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		sportRepo: sportRepo,
		access:    access,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *teamService) ListTeams(ctx context.Context, sportID int, mode string) ([]models.Team, error) {
	var kind models.CompetitorKind
	if mode != "" {
		parsed, err := parseCompetitorKind(mode)
		if err != nil {
			return nil, err
		}
		kind = parsed
	}

	if _, err := s.sportRepo.GetByID(ctx, nil, sportID); err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("get sport %d", sportID))
	}

	teams, err := s.teamRepo.ListBySport(ctx, sportID, kind)
	if err != nil {
		return nil, fmt.Errorf("list teams of sport %d: %w", sportID, err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("get team %d", teamID))
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadTeamLogo(ctx context.Context, actor models.Identity, teamID int, file io.Reader, contentType string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, nil, teamID)
	if err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("get team %d", teamID))
	}
	if err := s.access.AuthorizeSport(ctx, actor, team.SportID); err != nil {
		return nil, err
	}

	key, err := logoObjectKey("teams", team.ID, contentType)
	if err != nil {
		return nil, err
	}

	err = replaceLogo(ctx, s.uploader, s.logger, key, contentType, file, team.LogoKey, func(newKey *string) error {
		if err := s.teamRepo.UpdateLogoKey(ctx, team.ID, newKey); err != nil {
			return handleRepositoryError(err, fmt.Sprintf("update logo of team %d", team.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	s.logger.InfoContext(ctx, "team logo updated",
		slog.Int("team_id", team.ID), slog.Int("user_id", actor.UserID), slog.String("key", key))
	return team, nil
}
