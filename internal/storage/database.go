package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (and creates if needed) the sqlite database at path.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("OpenSQLite(): failed to open database: %w", err)
	}
	// sqlite는 단일 writer이므로 커넥션 하나로 직렬화
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSQLite(): failed to connect to database: %w", err)
	}

	createProfilesTable := `
	CREATE TABLE IF NOT EXISTS profiles (
			"namespace" TEXT NOT NULL,
			"uid" TEXT NOT NULL,
			"data" TEXT NOT NULL,
			"updated_at" DATETIME NOT NULL,
			PRIMARY KEY (namespace, uid)
	);`

	if _, err := db.ExecContext(ctx, createProfilesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenSQLite(): failed to create profiles table: %w", err)
	}
	return db, nil
}
