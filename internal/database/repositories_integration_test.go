package database_test // Используем _test пакет для изоляции

import (
	"context"
	"testing"
	"time"

	"writer-server/internal/database"
	"writer-server/internal/models"
	"writer-server/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Докер клиент для проверки доступности
	"github.com/docker/docker/client"
)

// RepositoryTestSuite поднимает PostgreSQL в контейнере и гоняет репозитории
// против реальной схемы: инварианты, живущие в SQL (частичный уникальный
// индекс активного профиля, версионирование промптов), иначе не проверить.
type RepositoryTestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pool        *pgxpool.Pool
	users       *database.PgUserRepository
	profiles    *database.PgProfileRepository
	prompts     *database.PgPromptRepository
	user        *models.User
}

// SetupSuite выполняется один раз перед всеми тестами в наборе
func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	// Запускаем контейнер PostgreSQL
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	// Применяем миграции из встроенной FS - тем же путем, что и сервер
	migrator := database.NewMigrator(migrations.FS, ".", s.pool)
	require.NoError(s.T(), migrator.Up(s.ctx), "Failed to run migrations")

	s.users = database.NewPgUserRepository(s.pool)
	s.profiles = database.NewPgProfileRepository(s.pool)
	s.prompts = database.NewPgPromptRepository(s.pool)
}

// TearDownSuite выполняется один раз после всех тестов в наборе
func (s *RepositoryTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.T().Logf("Failed to terminate postgres container: %v", err)
		}
	}
}

// Перед каждым тестом очищаем таблицы и создаем свежего пользователя
func (s *RepositoryTestSuite) SetupTest() {
	// ОСТОРОЖНО: НЕ запускать на production БД!
	_, err := s.pool.Exec(s.ctx, "TRUNCATE TABLE users CASCADE")
	require.NoError(s.T(), err, "Failed to truncate users table")

	s.user, err = s.users.UpsertByExternalID(s.ctx, "ext-auth-1", "writer", "writer@example.com")
	require.NoError(s.T(), err, "Failed to create test user")
}

// TestRepositoryTestSuite запускает набор тестов
func TestRepositoryTestSuite(t *testing.T) {
	// Пропускаем тесты, если запущены с флагом -short
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	// Проверяем доступность Docker перед запуском
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositoryTestSuite))
}

// --- Сами Тестовые Функции ---

func (s *RepositoryTestSuite) createProfile(name string) *models.CreativeProfile {
	profile := &models.CreativeProfile{
		UserID:      s.user.ID,
		Name:        name,
		Model:       "gpt-4o-mini",
		Temperature: "0.8",
		MaxTokens:   2048,
	}
	require.NoError(s.T(), s.profiles.Create(s.ctx, profile))
	return profile
}

// После SetActive(P2) ровно один профиль активен, и это P2.
func (s *RepositoryTestSuite) TestSetActive_SingleActiveProfile() {
	t := s.T()
	ctx := context.Background()

	p1 := s.createProfile("drafting")
	p2 := s.createProfile("editing")
	p3 := s.createProfile("brainstorm")

	// Новые профили создаются неактивными
	require.False(t, p1.Active)
	require.False(t, p2.Active)
	require.False(t, p3.Active)

	require.NoError(t, s.profiles.SetActive(ctx, s.user.ID, p1.ID))
	active, err := s.profiles.GetActive(ctx, s.user.ID)
	require.NoError(t, err)
	require.Equal(t, p1.ID, active.ID)

	// Переключение на другой профиль деактивирует предыдущий
	require.NoError(t, s.profiles.SetActive(ctx, s.user.ID, p2.ID))
	active, err = s.profiles.GetActive(ctx, s.user.ID)
	require.NoError(t, err)
	require.Equal(t, p2.ID, active.ID)

	profiles, err := s.profiles.ListByUser(ctx, s.user.ID)
	require.NoError(t, err)
	require.Len(t, profiles, 3)
	var activeCount int
	for _, p := range profiles {
		if p.Active {
			activeCount++
			require.Equal(t, p2.ID, p.ID, "Only the last activated profile should be active")
		}
	}
	require.Equal(t, 1, activeCount, "Exactly one profile should be active")
}

// Активация несуществующего профиля откатывает транзакцию целиком:
// ранее активный профиль остается активным.
func (s *RepositoryTestSuite) TestSetActive_NotFoundRollsBack() {
	t := s.T()
	ctx := context.Background()

	p1 := s.createProfile("drafting")
	require.NoError(t, s.profiles.SetActive(ctx, s.user.ID, p1.ID))

	err := s.profiles.SetActive(ctx, s.user.ID, uuid.New())
	require.ErrorIs(t, err, models.ErrProfileNotFound)

	active, err := s.profiles.GetActive(ctx, s.user.ID)
	require.NoError(t, err)
	require.Equal(t, p1.ID, active.ID, "Previous active profile should survive a failed activation")
}

// Частичный уникальный индекс не дает обойти SetActive прямым UPDATE.
func (s *RepositoryTestSuite) TestSetActive_SecondActiveRowRejected() {
	t := s.T()
	ctx := context.Background()

	p1 := s.createProfile("drafting")
	s.createProfile("editing")
	require.NoError(t, s.profiles.SetActive(ctx, s.user.ID, p1.ID))

	_, err := s.pool.Exec(ctx, "UPDATE creative_profiles SET active = true WHERE user_id = $1", s.user.ID)
	require.Error(t, err, "A second active profile for the same user must be rejected")
}

// version инкрементируется только при изменении content.
func (s *RepositoryTestSuite) TestPromptUpdate_VersionBumpsOnContentChange() {
	t := s.T()
	ctx := context.Background()

	prompt := &models.Prompt{
		UserID:   s.user.ID,
		Name:     "tone",
		Category: "style",
		Type:     models.PromptRoleSystem,
		Content:  "Write in a dry, understated tone.",
		Active:   true,
	}
	require.NoError(t, s.prompts.Create(ctx, prompt))
	require.Equal(t, 1, prompt.Version, "New prompt should start at version 1")

	// Метаданные меняются, content нет - версия на месте
	prompt.Name = "tone-v2"
	prompt.Active = false
	require.NoError(t, s.prompts.Update(ctx, prompt))
	require.Equal(t, 1, prompt.Version, "Version should not bump when content is unchanged")

	// Изменение content поднимает версию
	prompt.Content = "Write in a lush, ornate tone."
	require.NoError(t, s.prompts.Update(ctx, prompt))
	require.Equal(t, 2, prompt.Version, "Version should bump when content changes")

	// Повторное сохранение того же content версию не трогает
	require.NoError(t, s.prompts.Update(ctx, prompt))
	require.Equal(t, 2, prompt.Version)

	stored, err := s.prompts.GetByID(ctx, s.user.ID, prompt.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.Version)
	require.Equal(t, "tone-v2", stored.Name)
	require.Equal(t, "Write in a lush, ornate tone.", stored.Content)
}
