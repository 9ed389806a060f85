package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emellop-senai/arena-senai-forca/internal/config"
	"github.com/emellop-senai/arena-senai-forca/internal/domain"
	"github.com/emellop-senai/arena-senai-forca/internal/words"
)

// Postgres error codes used to translate constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Repository provides PostgreSQL-based data access
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(cfg *config.PostgresConfig, logger *slog.Logger) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &Repository{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}

// RunMigrations executes database migrations
func (r *Repository) RunMigrations(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS usuarios (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			score BIGINT NOT NULL DEFAULT 0 CHECK (score >= 0),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS palavras (
			id BIGSERIAL PRIMARY KEY,
			palavra VARCHAR(64) NOT NULL UNIQUE,
			dica VARCHAR(255) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS partidas (
			id BIGSERIAL PRIMARY KEY,
			usuario_id BIGINT NOT NULL REFERENCES usuarios(id),
			palavra_id BIGINT NOT NULL REFERENCES palavras(id),
			pontos_ganhos BIGINT NOT NULL CHECK (pontos_ganhos >= 0),
			resultado VARCHAR(10) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_usuarios_score ON usuarios(score DESC, id ASC)`,
		`CREATE INDEX IF NOT EXISTS idx_partidas_usuario ON partidas(usuario_id, created_at DESC)`,
	}

	for _, migration := range migrations {
		_, err := r.pool.Exec(ctx, migration)
		if err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}

	r.logger.Info("database migrations completed")
	return nil
}

// SeedWords inserts the puzzle corpus, skipping entries already present.
func (r *Repository) SeedWords(ctx context.Context, entries []words.Entry) error {
	query := `INSERT INTO palavras (palavra, dica) VALUES ($1, $2) ON CONFLICT (palavra) DO NOTHING`

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.Palavra, e.Dica)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := 0
	for range entries {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("seeding palavras: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	r.logger.Info("palavras seeded", "new", inserted, "total", len(entries))
	return nil
}

// GetUserByUsername retrieves a user by its exact (case-sensitive) username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, score, created_at FROM usuarios WHERE username = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.Score, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return &u, nil
}

// GetUserByID retrieves a user by id
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, score, created_at FROM usuarios WHERE id = $1`

	var u domain.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Username, &u.Score, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a new user with score 0. A concurrent creation of the
// same username surfaces as domain.ErrUsernameTaken for the caller to
// re-fetch the winning row.
func (r *Repository) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	query := `INSERT INTO usuarios (username, score) VALUES ($1, 0) RETURNING id, created_at`

	u := domain.User{Username: username}
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &u, nil
}

// RandomWord draws one puzzle uniformly at random
func (r *Repository) RandomWord(ctx context.Context) (*domain.Word, error) {
	query := `SELECT id, palavra, dica FROM palavras ORDER BY RANDOM() LIMIT 1`

	var w domain.Word
	err := r.pool.QueryRow(ctx, query).Scan(&w.ID, &w.Palavra, &w.Dica)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWordNotFound
		}
		return nil, fmt.Errorf("getting random word: %w", err)
	}
	return &w, nil
}

// RecordMatch appends a partidas row and adds the points to the user's
// score in one transaction. The score increment runs server-side
// (score = score + delta) so concurrent matches never lose updates.
func (r *Repository) RecordMatch(ctx context.Context, m domain.MatchSubmission) (*domain.User, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insert := `
		INSERT INTO partidas (usuario_id, palavra_id, pontos_ganhos, resultado)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, insert, m.UsuarioID, m.PalavraID, m.PontosGanhos, string(m.Resultado)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			if pgErr.ConstraintName == "partidas_palavra_id_fkey" {
				return nil, domain.ErrWordNotFound
			}
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("inserting partida: %w", err)
	}

	update := `UPDATE usuarios SET score = score + $1 WHERE id = $2 RETURNING id, username, score, created_at`
	var u domain.User
	if err := tx.QueryRow(ctx, update, m.PontosGanhos, m.UsuarioID).Scan(&u.ID, &u.Username, &u.Score, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("incrementing score: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing match: %w", err)
	}
	return &u, nil
}

// TopUsers returns the highest-scoring users. Ties are broken by user id
// ascending, i.e. insertion order.
func (r *Repository) TopUsers(ctx context.Context, limit int) ([]domain.RankingEntry, error) {
	query := `SELECT username, score FROM usuarios ORDER BY score DESC, id ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting ranking: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.RankingEntry, 0, limit)
	for rows.Next() {
		var e domain.RankingEntry
		if err := rows.Scan(&e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("scanning ranking entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AllScores retrieves every user's score, keyed by username (for cache rebuilds)
func (r *Repository) AllScores(ctx context.Context) (map[string]int64, error) {
	query := `SELECT username, score FROM usuarios`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("getting all scores: %w", err)
	}
	defer rows.Close()

	scores := make(map[string]int64)
	for rows.Next() {
		var username string
		var score int64
		if err := rows.Scan(&username, &score); err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		scores[username] = score
	}
	return scores, rows.Err()
}

// WordCount returns how many puzzles are available
func (r *Repository) WordCount(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM palavras`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting palavras: %w", err)
	}
	return count, nil
}
