package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var ErrMigration = errors.New("migrator: migration failed")

// Up накатывает все миграции из каталога dir. Отсутствие новых миграций не ошибка.
// Возвращает текущую версию схемы
func Up(db *sql.DB, dir string) (uint, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("%w: postgres driver: %w", ErrMigration, err)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: resolve %s: %w", ErrMigration, dir, err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMigration, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("%w: up: %w", ErrMigration, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, fmt.Errorf("%w: version: %w", ErrMigration, err)
	}
	if dirty {
		return version, fmt.Errorf("%w: schema version %d is dirty", ErrMigration, version)
	}

	return version, nil
}
