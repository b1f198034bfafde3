// Package postgres pins an application's niceid configuration in its
// database. Encoded IDs handed out under one configuration cannot be
// decoded under another, so a deploy that changes the secret, alphabet or
// minimum length by accident should fail at startup rather than break
// every link already in the wild.
package postgres

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/blake2b"

	"github.com/paraglidehq/niceid"
)

// Logger receives migration events. Discarded unless replaced.
var Logger = slog.New(slog.DiscardHandler)

var ErrConfigMismatch = errors.New("niceid: database config does not match application config")

// Config is the configuration recorded in the database. The secret itself
// is never stored, only its fingerprint.
type Config struct {
	Characters  string
	MinLength   int
	Fingerprint string
}

// ConfigFor returns the Config describing e.
func ConfigFor(e *niceid.Encoder) Config {
	return Config{
		Characters:  e.Characters(),
		MinLength:   e.MinLength(),
		Fingerprint: Fingerprint(e.Secret()),
	}
}

// Fingerprint returns the hex BLAKE2b-256 digest of secret. It identifies
// a secret without revealing it, but a weak secret can still be guessed
// from it offline.
func Fingerprint(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// lockKey serializes concurrent migrations across instances.
const lockKey = 0x6e696365 // "nice"

// Migrate creates the config table and records cfg on first run.
// If the database already holds a different configuration, returns
// ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("niceid: begin migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("niceid: acquire migration lock: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _niceid_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			characters text NOT NULL,
			min_length int NOT NULL CHECK (min_length >= 0),
			fingerprint char(64) NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("niceid: create config table: %w", err)
	}

	stored, err := getConfig(ctx, tx)
	switch {
	case err == nil:
		if err := compare(stored, cfg); err != nil {
			return err
		}
		Logger.DebugContext(ctx, "niceid config verified", "min_length", cfg.MinLength)
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO _niceid_config (characters, min_length, fingerprint) VALUES ($1, $2, $3)`,
			cfg.Characters, cfg.MinLength, cfg.Fingerprint)
		if err != nil {
			return fmt.Errorf("niceid: insert config: %w", err)
		}
		Logger.InfoContext(ctx, "niceid config recorded", "characters", cfg.Characters, "min_length", cfg.MinLength)
	default:
		return fmt.Errorf("niceid: read config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("niceid: commit migration: %w", err)
	}
	return nil
}

// MigrateEncoder is Migrate with the configuration of e.
func MigrateEncoder(ctx context.Context, db *sql.DB, e *niceid.Encoder) error {
	return Migrate(ctx, db, ConfigFor(e))
}

// GetConfig reads the recorded configuration. Returns sql.ErrNoRows if
// none has been recorded yet.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	return getConfig(ctx, db)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getConfig(ctx context.Context, q queryer) (Config, error) {
	var cfg Config
	err := q.QueryRowContext(ctx,
		`SELECT characters, min_length, fingerprint FROM _niceid_config WHERE id = 1`,
	).Scan(&cfg.Characters, &cfg.MinLength, &cfg.Fingerprint)
	return cfg, err
}

func compare(stored, cfg Config) error {
	if stored == cfg {
		return nil
	}
	var diff []string
	if stored.Characters != cfg.Characters {
		diff = append(diff, "characters")
	}
	if stored.MinLength != cfg.MinLength {
		diff = append(diff, fmt.Sprintf("min_length (db %d, app %d)", stored.MinLength, cfg.MinLength))
	}
	if stored.Fingerprint != cfg.Fingerprint {
		diff = append(diff, "secret")
	}
	Logger.Error("niceid config mismatch", "differs", diff)
	return fmt.Errorf("%w: differs in %v", ErrConfigMismatch, diff)
}
