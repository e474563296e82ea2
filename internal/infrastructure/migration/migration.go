// Package migration runs the embedded goose SQL migrations.
package migration

import (
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"dav/internal/shared/logger"
)

//go:embed scripts/*.sql
var scripts embed.FS

const scriptsDir = "scripts"

// Migrator applies the schema migrations embedded in the binary.
type Migrator struct {
	log logger.Interface
}

func NewMigrator(log logger.Interface) *Migrator {
	return &Migrator{log: log}
}

func (m *Migrator) prepare() error {
	goose.SetBaseFS(scripts)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(db *gorm.DB) error {
	if err := m.prepare(); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := goose.Up(sqlDB, scriptsDir); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(db *gorm.DB, steps int) error {
	if err := m.prepare(); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	for i := 0; i < steps; i++ {
		if err := goose.Down(sqlDB, scriptsDir); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
	}
	return nil
}

// Status prints the per-migration status.
func (m *Migrator) Status(db *gorm.DB) error {
	if err := m.prepare(); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return goose.Status(sqlDB, scriptsDir)
}

// Version returns the current migration version.
func (m *Migrator) Version(db *gorm.DB) (int64, error) {
	if err := m.prepare(); err != nil {
		return 0, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return goose.GetDBVersion(sqlDB)
}
