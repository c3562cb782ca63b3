package internal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/tavsec/gin-healthcheck/checks"
)

//go:embed sql/get_setting.sql
var getSettingSQL string

//go:embed sql/upsert_setting.sql
var upsertSettingSQL string

//go:embed sql/delete_setting.sql
var deleteSettingSQL string

// SQLiteStore keeps settings in the local database so a session survives
// restarts of the CLI.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db: db,
	}
}

func (store *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := store.db.QueryRow(getSettingSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (store *SQLiteStore) Set(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	return store.inTx(upsertSettingSQL, func(stmt *sql.Stmt) error {
		now := time.Now().UTC()
		for key, value := range values {
			if _, err := stmt.Exec(key, value, now); err != nil {
				return fmt.Errorf("failed to write setting %s: %w", key, err)
			}
		}
		return nil
	})
}

func (store *SQLiteStore) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return store.inTx(deleteSettingSQL, func(stmt *sql.Stmt) error {
		for _, key := range keys {
			if _, err := stmt.Exec(key); err != nil {
				return fmt.Errorf("failed to delete setting %s: %w", key, err)
			}
		}
		return nil
	})
}

func (store *SQLiteStore) inTx(query string, fn func(*sql.Stmt) error) (err error) {
	tx, err := store.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("error rolling back transaction: %v", rbErr)
			}
		}
	}()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Printf("failed to close statement: %v", err)
		}
	}()

	if err = fn(stmt); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (store *SQLiteStore) Check() checks.Check {
	return checks.SqlCheck{Sql: store.db}
}

func (store *SQLiteStore) Close() error {
	return store.db.Close()
}
