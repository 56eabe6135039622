package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/revisit/schemas"
)

// MigrationDirection selects which way Migrate moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

// Migrator applies the embedded schema migrations to an open database.
// It never closes the database it was given.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator prepares the embedded migrations matching the driver of db.
func NewMigrator(db *sqlx.DB) (*Migrator, error) {
	driverName := db.DriverName()

	var (
		instance migratedb.Driver
		err      error
	)
	switch driverName {
	case DriverMySQL:
		instance, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	case DriverSQLite:
		instance, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	default:
		return nil, fmt.Errorf("no migrations for database driver %q", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s migration driver: %w", driverName, err)
	}

	source, err := iofs.New(schemas.Migrations, "migrations/"+driverName)
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, instance)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Run moves the schema all the way up or down. An already up-to-date schema is not an error.
func (mg *Migrator) Run(direction MigrationDirection) error {
	var err error
	switch direction {
	case MigrateUp:
		err = mg.m.Up()
	case MigrateDown:
		err = mg.m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// Version reports the current schema version. A database without migrations reports 0.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Migrate brings db up to the latest embedded schema.
func Migrate(db *sqlx.DB) error {
	mg, err := NewMigrator(db)
	if err != nil {
		return err
	}
	return mg.Run(MigrateUp)
}
