package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
)

// ProfileService управляет творческими профилями пользователя.
type ProfileService struct {
	profiles interfaces.ProfileRepository
	logger   *zap.Logger
}

func NewProfileService(profiles interfaces.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		logger:   logger.Named("ProfileService"),
	}
}

func (s *ProfileService) Create(ctx context.Context, profile *models.CreativeProfile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	return s.profiles.Create(ctx, profile)
}

func (s *ProfileService) Get(ctx context.Context, userID, id uuid.UUID) (*models.CreativeProfile, error) {
	return s.profiles.GetByID(ctx, userID, id)
}

func (s *ProfileService) List(ctx context.Context, userID uuid.UUID) ([]*models.CreativeProfile, error) {
	return s.profiles.ListByUser(ctx, userID)
}

func (s *ProfileService) Update(ctx context.Context, profile *models.CreativeProfile) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	return s.profiles.Update(ctx, profile)
}

func (s *ProfileService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.profiles.Delete(ctx, userID, id)
}

// SetActive делает профиль активным, атомарно деактивируя остальные.
func (s *ProfileService) SetActive(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.profiles.SetActive(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info("Active profile switched",
		zap.String("userID", userID.String()),
		zap.String("profileID", id.String()),
	)
	return nil
}

// validateProfile проверяет доменные ограничения профиля.
func validateProfile(p *models.CreativeProfile) error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile name is required", models.ErrInvalidInput)
	}
	if p.Model == "" {
		return fmt.Errorf("%w: model is required", models.ErrInvalidInput)
	}
	if p.MaxTokens <= 0 {
		return fmt.Errorf("%w: maxTokens must be positive", models.ErrInvalidInput)
	}
	if p.Temperature != "" {
		t, err := strconv.ParseFloat(p.Temperature, 64)
		if err != nil || t < 0 || t > 2 {
			return fmt.Errorf("%w: temperature must be a decimal in [0,2]", models.ErrInvalidInput)
		}
	}
	return nil
}
