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

type SportService interface {
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	GetSportByID(ctx context.Context, id int) (*models.Sport, error)
	UploadSportLogo(ctx context.Context, sportID int, file io.Reader, contentType string) (*models.Sport, error)
}

type sportService struct {
	sportRepo repositories.SportRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewSportService(sportRepo repositories.SportRepository, uploader storage.FileUploader, logger *slog.Logger) SportService {
	return &sportService{
		sportRepo: sportRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all sports: %w", err)
	}
	if sports == nil {
		return []models.Sport{}, nil
	}
	for i := range sports {
		populateSportLogoURL(&sports[i], s.uploader)
	}
	return sports, nil
}

func (s *sportService) GetSportByID(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("get sport %d", id))
	}
	populateSportLogoURL(sport, s.uploader)
	return sport, nil
}

func (s *sportService) UploadSportLogo(ctx context.Context, sportID int, file io.Reader, contentType string) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, nil, sportID)
	if err != nil {
		return nil, handleRepositoryError(err, fmt.Sprintf("get sport %d", sportID))
	}

	key, err := logoObjectKey("sports", sport.ID, contentType)
	if err != nil {
		return nil, err
	}

	err = replaceLogo(ctx, s.uploader, s.logger, key, contentType, file, sport.LogoKey, func(newKey *string) error {
		if err := s.sportRepo.UpdateLogoKey(ctx, sport.ID, newKey); err != nil {
			return handleRepositoryError(err, fmt.Sprintf("update logo of sport %d", sport.ID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sport.LogoKey = &key
	populateSportLogoURL(sport, s.uploader)
	s.logger.InfoContext(ctx, "sport logo updated", slog.Int("sport_id", sport.ID), slog.String("key", key))
	return sport, nil
}
