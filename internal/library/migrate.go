package library

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateUp applies every pending migration to the database at dbPath.
func migrateUp(dbPath string) (err error) {
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("access migrations: %w", err)
	}
	source, err := iofs.New(migrationsDir, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	normalized := filepath.ToSlash(dbPath)
	if filepath.IsAbs(dbPath) && normalized[0] != '/' {
		normalized = "/" + normalized
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, "sqlite://"+normalized)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
