package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/emellop-senai/arena-senai-forca/internal/config"
	"github.com/emellop-senai/arena-senai-forca/internal/domain"
)

// Store is the PostgreSQL surface the service needs. PostgreSQL is the
// system of record for usuarios, palavras and partidas.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	RandomWord(ctx context.Context) (*domain.Word, error)
	RecordMatch(ctx context.Context, m domain.MatchSubmission) (*domain.User, error)
	TopUsers(ctx context.Context, limit int) ([]domain.RankingEntry, error)
}

// Cache is the Redis ranking surface. It only mirrors scores; a cache
// failure never fails a write.
type Cache interface {
	SetScore(ctx context.Context, username string, score int64) error
	IncrementScore(ctx context.Context, username string, delta int64) (int64, error)
	TopN(ctx context.Context, n int) ([]domain.RankingEntry, error)
}

// Notifier pushes ranking updates to connected clients.
type Notifier interface {
	BroadcastRanking(entries []domain.RankingEntry)
}

// GameService provides business logic for login, word draws, match
// recording and the ranking.
type GameService struct {
	store    Store
	cache    Cache
	notifier Notifier
	config   *config.RankingConfig
	logger   *slog.Logger
}

// NewGameService creates a new game service
func NewGameService(store Store, cache Cache, cfg *config.RankingConfig, logger *slog.Logger) *GameService {
	return &GameService{
		store:  store,
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

// SetNotifier wires the websocket hub in after construction. The hub needs
// the service running before it can exist, so the dependency is set late.
func (s *GameService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Login finds the user by username or creates it with score zero. Two
// concurrent logins for a new username race on the unique index; the loser
// re-fetches the row the winner inserted.
func (s *GameService) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	username, err := req.Validate()
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	user, err = s.store.CreateUser(ctx, username)
	if errors.Is(err, domain.ErrUsernameTaken) {
		return s.store.GetUserByUsername(ctx, username)
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	// Register the fresh user in the cached ranking right away; a user who
	// never scores must still be visible on the board.
	if err := s.cache.SetScore(ctx, username, 0); err != nil {
		s.logger.Warn("failed to register user in ranking cache", "username", username, "error", err)
	}

	s.logger.Info("user created", "username", username, "user_id", user.ID)
	return user, nil
}

// RandomWord draws a puzzle for a new round
func (s *GameService) RandomWord(ctx context.Context) (*domain.Word, error) {
	return s.store.RandomWord(ctx)
}

// RecordMatch appends the finished match and credits the points. The cache
// update and the ranking broadcast are best-effort.
func (s *GameService) RecordMatch(ctx context.Context, m domain.MatchSubmission) (*domain.User, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.RecordMatch(ctx, m)
	if err != nil {
		return nil, err
	}

	// A zero-point increment still registers the user in the sorted set, so
	// losses keep loss-only users on the board.
	if _, err := s.cache.IncrementScore(ctx, user.Username, m.PontosGanhos); err != nil {
		s.logger.Warn("failed to update ranking cache", "username", user.Username, "error", err)
	}

	s.broadcastRanking(ctx)
	return user, nil
}

// RecordMatchBatch records matches drained from the bulk ingestion topic.
// A bad submission is logged and skipped so one poison message cannot stall
// the batch.
func (s *GameService) RecordMatchBatch(ctx context.Context, matches []domain.MatchSubmission) error {
	for _, m := range matches {
		if _, err := s.RecordMatch(ctx, m); err != nil {
			s.logger.Error("failed to record match in batch",
				"usuario_id", m.UsuarioID,
				"palavra_id", m.PalavraID,
				"error", err,
			)
		}
	}
	return nil
}

// Ranking returns the top users, best first. Reads hit the Redis cache;
// when the cache is unavailable or cold the query falls through to
// PostgreSQL.
func (s *GameService) Ranking(ctx context.Context) ([]domain.RankingEntry, error) {
	limit := s.config.Limit

	entries, err := s.cache.TopN(ctx, limit)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	if err != nil {
		s.logger.Warn("ranking cache read failed, falling back to postgres", "error", err)
	}

	entries, err = s.store.TopUsers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("getting ranking: %w", err)
	}
	return entries, nil
}

// broadcastRanking pushes the fresh top list to websocket subscribers
func (s *GameService) broadcastRanking(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	entries, err := s.Ranking(ctx)
	if err != nil {
		s.logger.Warn("failed to load ranking for broadcast", "error", err)
		return
	}
	s.notifier.BroadcastRanking(entries)
}
