package database

import (
	"database/sql"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/metcal/asset-api/internal/auth"
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin',
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS asset (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT,
		owner TEXT,
		status TEXT,
		location TEXT,
		value REAL,
		purchase_date TEXT,
		metadata TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		updated_at TEXT
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// assetSeed mirrors the writable asset columns.
type assetSeed struct {
	name, category, owner, status, location string
	value                                   float64
	purchaseDate, metadata                  string
}

var assetSeedData = []assetSeed{
	{
		name: "Thermal Camera", category: "Diagnostics", owner: "Maintenance",
		status: "active", location: "Warehouse A", value: 2850.00,
		purchaseDate: "2023-05-17", metadata: "Calibrated Q4",
	},
	{
		name: "Server Rack", category: "IT", owner: "Infrastructure",
		status: "active", location: "Data Center 2", value: 12400.00,
		purchaseDate: "2022-11-03", metadata: "42U, dual PDU",
	},
}

// Seed inserts the default admin account and the sample asset rows. Each
// check is independent and idempotent, so running Seed repeatedly is safe.
func Seed(db *sql.DB) error {
	if err := seedAdminUser(db); err != nil {
		return err
	}
	return seedAssets(db)
}

func seedAdminUser(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM user").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("admin user already present, skipping seed")
		return nil
	}

	log.Info().Msg("seeding default admin user")
	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO user (username, password_hash, role) VALUES (?, ?, ?)",
		"admin", hash, "admin",
	)
	return err
}

func seedAssets(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(1) FROM asset").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		log.Info().Msg("asset table already contains records, skipping seed")
		return nil
	}

	log.Info().Msg("seeding sample asset records")
	stmt, err := db.Prepare(`
		INSERT INTO asset (name, category, owner, status, location, value, purchase_date, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range assetSeedData {
		if _, err := stmt.Exec(a.name, a.category, a.owner, a.status, a.location, a.value, a.purchaseDate, a.metadata); err != nil {
			return err
		}
	}
	return nil
}
