// Package db opens the relational store and applies its schema.
//
// The store is a local SQLite file by default (research setups query it
// directly from notebooks); Postgres can be selected via DB_DRIVER for
// shared deployments. Table and column names are stable across runs and
// migrations are additive-only so re-ingestion stays idempotent.
package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quant_backend/internal/feature/timeseries/adapters"
)

const defaultSQLitePath = "data/market.db"

// OpenDB opens the store selected by environment variables and applies
// migrations and views. It terminates the process on failure; call it from
// main only.
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))

		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = defaultSQLitePath
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("failed to create db directory: %v", err)
			}
		}
		db, err = gorm.Open(gsqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite db: %v", err)
		}
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate applies the table schema and (re)creates the return views.
// Safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&adapters.SeriesModel{},
		&adapters.ObservationModel{},
		&adapters.IngestRunModel{},
	); err != nil {
		return err
	}
	return adapters.CreateReturnViews(db)
}
