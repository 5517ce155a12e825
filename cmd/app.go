package cmd

import (
	"context"
	"log"
	"time"

	"gallery/config"
	"gallery/db"
	"gallery/lifecycle"
	"gallery/records"
	"gallery/storage"
)

// openRecords picks the first configured record store: Mongo, MySQL, SQLite, then memory
func openRecords(ctx context.Context) (records.Store, error) {
	if config.MONGO_URI != "" {
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		return records.NewMongoStore(ctx, config.MONGO_URI, config.MONGO_DATABASE)
	}
	if config.MYSQL_DSN != "" || config.SQLITE_FILE != "" {
		if err := db.Init(config.MYSQL_DSN, config.SQLITE_FILE, config.DEBUG_MODE); err != nil {
			return nil, err
		}
		return records.NewGormStore(db.Instance)
	}
	log.Printf("Record store: in-memory, nothing will survive a restart")
	return records.NewMemoryStore(), nil
}

func openObjects() (storage.ObjectStore, error) {
	bucket, err := storage.BucketFromConfig()
	if err != nil {
		return nil, err
	}
	return storage.New(bucket)
}

func newLifecycle(store records.Store, objects storage.ObjectStore) *lifecycle.Manager {
	return &lifecycle.Manager{
		Records:      store,
		Objects:      objects,
		FetchTimeout: config.EXPORT_FETCH_TIMEOUT,
		Concurrency:  config.EXPORT_CONCURRENCY,
	}
}
