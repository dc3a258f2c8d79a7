package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"GelezaSmart/internal/models"
)

// Namespace is the fixed application key every profile record is stored under.
const Namespace = "geleza_user_profile"

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists a complete UserProfile as one opaque record.
type ProfileStore interface {
	Load(ctx context.Context, uid string) (models.UserProfile, error)
	Save(ctx context.Context, profile models.UserProfile) error
	Delete(ctx context.Context, uid string) error
}

type SQLiteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(db *sql.DB) *SQLiteProfileStore {
	return &SQLiteProfileStore{db: db}
}

func (s *SQLiteProfileStore) Load(ctx context.Context, uid string) (models.UserProfile, error) {
	var profile models.UserProfile
	var data string

	row := s.db.QueryRowContext(ctx, "SELECT data FROM profiles WHERE namespace = ? AND uid = ?", Namespace, uid)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return profile, ErrProfileNotFound
		}
		return profile, fmt.Errorf("load profile %s: %w", uid, err)
	}

	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		return profile, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return profile, nil
}

func (s *SQLiteProfileStore) Save(ctx context.Context, profile models.UserProfile) error {
	if profile.UID == "" {
		return errors.New("save profile: uid is required")
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", profile.UID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles(namespace, uid, data, updated_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(namespace, uid) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		Namespace, profile.UID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save profile %s: %w", profile.UID, err)
	}
	return nil
}

func (s *SQLiteProfileStore) Delete(ctx context.Context, uid string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE namespace = ? AND uid = ?", Namespace, uid); err != nil {
		return fmt.Errorf("delete profile %s: %w", uid, err)
	}
	return nil
}
