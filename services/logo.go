package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/storage"
	"github.com/google/uuid"
)

// MaxLogoSize ограничивает размер загружаемого логотипа.
const MaxLogoSize = 5 << 20

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// logoObjectKey builds a fresh object key so that CDN caches never serve a replaced logo.
func logoObjectKey(owner string, ownerID int, contentType string) (string, error) {
	ext, ok := logoExtensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrLogoContentType
	}
	return fmt.Sprintf("logos/%s/%d/%s%s", owner, ownerID, uuid.NewString(), ext), nil
}

// replaceLogo uploads the object, persists its key with save and removes the previous object.
// The uploaded object is removed again when save fails.
func replaceLogo(
	ctx context.Context,
	uploader storage.FileUploader,
	logger *slog.Logger,
	key, contentType string,
	file io.Reader,
	previous *string,
	save func(key *string) error,
) error {
	if _, err := uploader.Upload(ctx, key, contentType, file); err != nil {
		return fmt.Errorf("upload logo %s: %w", key, err)
	}

	if err := save(&key); err != nil {
		if delErr := uploader.Delete(ctx, key); delErr != nil {
			logger.WarnContext(ctx, "failed to remove orphaned logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return err
	}

	if previous != nil && *previous != "" && *previous != key {
		if err := uploader.Delete(ctx, *previous); err != nil {
			logger.WarnContext(ctx, "failed to delete previous logo", slog.String("key", *previous), slog.Any("error", err))
		}
	}
	return nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}
