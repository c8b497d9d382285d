package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writer-server/internal/mocks"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

func TestProfileService_SetActive(t *testing.T) {
	ctx := context.Background()
	userID, profileID := uuid.New(), uuid.New()

	t.Run("delegates atomic switch to repository", func(t *testing.T) {
		profiles := mocks.NewMockProfileRepository(t)
		profiles.On("SetActive", mock.Anything, userID, profileID).Return(nil).Once()

		svc := service.NewProfileService(profiles, zap.NewNop())
		require.NoError(t, svc.SetActive(ctx, userID, profileID))
		profiles.AssertExpectations(t)
	})

	t.Run("unknown profile surfaces not found", func(t *testing.T) {
		profiles := mocks.NewMockProfileRepository(t)
		profiles.On("SetActive", mock.Anything, userID, profileID).
			Return(models.ErrProfileNotFound).Once()

		svc := service.NewProfileService(profiles, zap.NewNop())
		err := svc.SetActive(ctx, userID, profileID)
		assert.ErrorIs(t, err, models.ErrProfileNotFound)
	})

	t.Run("repository errors propagate unchanged", func(t *testing.T) {
		infraErr := errors.New("connection refused")
		profiles := mocks.NewMockProfileRepository(t)
		profiles.On("SetActive", mock.Anything, userID, profileID).Return(infraErr).Once()

		svc := service.NewProfileService(profiles, zap.NewNop())
		assert.ErrorIs(t, svc.SetActive(ctx, userID, profileID), infraErr)
	})
}

func TestProfileService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	valid := func() *models.CreativeProfile {
		return &models.CreativeProfile{
			UserID:      userID,
			Name:        "drafting",
			Model:       "gpt-4o-mini",
			Temperature: "0.8",
			MaxTokens:   2048,
		}
	}

	tests := []struct {
		name   string
		mutate func(*models.CreativeProfile)
	}{
		{"empty name", func(p *models.CreativeProfile) { p.Name = "" }},
		{"empty model", func(p *models.CreativeProfile) { p.Model = "" }},
		{"non-positive maxTokens", func(p *models.CreativeProfile) { p.MaxTokens = 0 }},
		{"temperature not a number", func(p *models.CreativeProfile) { p.Temperature = "warm" }},
		{"temperature out of range", func(p *models.CreativeProfile) { p.Temperature = "2.5" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := mocks.NewMockProfileRepository(t)
			svc := service.NewProfileService(profiles, zap.NewNop())

			profile := valid()
			tt.mutate(profile)
			err := svc.Create(ctx, profile)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
			profiles.AssertNotCalled(t, "Create")
		})
	}

	t.Run("valid profile reaches repository", func(t *testing.T) {
		profiles := mocks.NewMockProfileRepository(t)
		profiles.On("Create", mock.Anything, mock.AnythingOfType("*models.CreativeProfile")).
			Return(nil).Once()

		svc := service.NewProfileService(profiles, zap.NewNop())
		require.NoError(t, svc.Create(ctx, valid()))
		profiles.AssertExpectations(t)
	})
}
