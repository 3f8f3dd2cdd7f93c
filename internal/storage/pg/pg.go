package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/nitespot-dev/nitespot/shared/config"
	"github.com/nitespot-dev/nitespot/shared/logger"
)

// Querier abstracts database operations so core query logic works
// against both *sql.DB and *sql.Tx.
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Storage struct {
	db   *sql.DB
	cfg  *config.Config
	cron *cron.Cron
}

func New(cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "db", cfg.Private.Pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(cfg); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("db ready")

	storage := &Storage{db: db, cfg: cfg}
	if err := storage.startStatsRefresh(cfg.Public.StatsRefreshSpec); err != nil {
		db.Close()
		return nil, err
	}
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port, cfg.Private.Pg.User, cfg.Private.Pg.Password, cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// withTx runs fn inside a transaction, committing on success and
// rolling back on error.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op if transaction is already committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func runMigrations(cfg *config.Config) error {
	pg := cfg.Private.Pg
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(pg.User), url.QueryEscape(pg.Password), pg.Host, pg.Port, pg.Dbname)

	m, err := migrate.New("file://"+cfg.Public.MigrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}

// startStatsRefresh refreshes the venue_booking_stats materialized view
// on the configured schedule so analytics reads stay cheap.
func (s *Storage) startStatsRefresh(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := s.RefreshBookingStats(); err != nil {
			logger.Log.Error("booking stats refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid stats refresh spec %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	return nil
}

func (s *Storage) Cleanup() error {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	return s.db.Close()
}

func (s *Storage) Ping() error {
	return s.db.Ping()
}
