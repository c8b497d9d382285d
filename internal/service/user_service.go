package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/models"
	"writer-server/internal/utils"
)

// UserService управляет пользователями и ротацией ключей провайдеров.
type UserService struct {
	users     interfaces.UserRepository
	secretBox *utils.SecretBox
	logger    *zap.Logger
}

func NewUserService(users interfaces.UserRepository, secretBox *utils.SecretBox, logger *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		secretBox: secretBox,
		logger:    logger.Named("UserService"),
	}
}

// EnsureUser создает пользователя при первом аутентифицированном запросе
// (upsert по внешнему auth id).
func (s *UserService) EnsureUser(ctx context.Context, externalID, username, email string) (*models.User, error) {
	return s.users.UpsertByExternalID(ctx, externalID, username, email)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ProviderKeyUpdate - запрос ротации ключей. nil-поле не трогает ключ,
// пустая строка удаляет его.
type ProviderKeyUpdate struct {
	OpenAIKey     *string `json:"openaiKey"`
	GeminiKey     *string `json:"geminiKey"`
	OpenRouterKey *string `json:"openrouterKey"`
}

// RotateKeys шифрует и сохраняет переданные ключи провайдеров.
func (s *UserService) RotateKeys(ctx context.Context, userID uuid.UUID, update ProviderKeyUpdate) error {
	encrypt := func(plain *string) (*string, error) {
		if plain == nil {
			return nil, nil
		}
		ct, err := s.secretBox.Encrypt(*plain)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt provider key: %w", err)
		}
		return &ct, nil
	}

	openaiKey, err := encrypt(update.OpenAIKey)
	if err != nil {
		return err
	}
	geminiKey, err := encrypt(update.GeminiKey)
	if err != nil {
		return err
	}
	openrouterKey, err := encrypt(update.OpenRouterKey)
	if err != nil {
		return err
	}

	if err := s.users.UpdateProviderKeys(ctx, userID, openaiKey, geminiKey, openrouterKey); err != nil {
		return err
	}
	s.logger.Info("Provider keys rotated", zap.String("userID", userID.String()))
	return nil
}
