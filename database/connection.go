package database

import (
	"log"

	"gospelcms/config"
	"gospelcms/storage"
)

// Connect opens the storage backend named by STORAGE_DRIVER.
func Connect(cfg *config.Config) storage.Storage {
	switch cfg.StorageDriver {
	case "postgres":
		store, err := storage.NewPostgresStorage(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to postgres storage:", err)
		}
		log.Println("Postgres storage connected successfully")
		return store
	case "sqlite":
		store, err := storage.NewSQLiteStorage(cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open sqlite storage:", err)
		}
		log.Println("SQLite storage opened at", cfg.SQLitePath)
		return store
	case "memory":
		log.Println("Using in-memory storage, data will not survive restarts")
		return storage.NewMemoryStorage()
	default:
		log.Fatalf("Unknown storage driver: %s", cfg.StorageDriver)
		return nil
	}
}
