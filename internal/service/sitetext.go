package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

// SiteTextService handles the editable site copy.
type SiteTextService struct {
	repo   repository.SiteTextRepository
	logger *slog.Logger
}

func NewSiteTextService(repo repository.SiteTextRepository, logger *slog.Logger) *SiteTextService {
	return &SiteTextService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all site texts with their keys and admin descriptions.
func (s *SiteTextService) List(ctx context.Context) ([]model.SiteText, error) {
	texts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list site texts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing site texts: %w", err)
	}
	return texts, nil
}

// GetValue resolves a key to its value. Unknown keys fall back to the key
// itself — this call never fails for a missing key, only for storage errors.
func (s *SiteTextService) GetValue(ctx context.Context, key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", apperror.ValidationFailed("key", "text key is required")
	}

	return s.repo.GetValue(ctx, key)
}

// UpdateValue overwrites the value for an existing key. The value may be
// empty (the admin can blank out a text); the key must exist.
func (s *SiteTextService) UpdateValue(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperror.ValidationFailed("key", "text key is required")
	}

	if err := s.repo.UpdateValue(ctx, key, value); err != nil {
		return err
	}

	s.logger.Info("site text updated", slog.String("key", key))
	return nil
}
