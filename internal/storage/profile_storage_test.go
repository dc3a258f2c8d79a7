package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"GelezaSmart/internal/models"
	"GelezaSmart/internal/storage"
)

func newSQLiteStore(t *testing.T) *storage.SQLiteProfileStore {
	t.Helper()
	db, err := storage.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "geleza.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewSQLiteProfileStore(db)
}

func sampleProfile() models.UserProfile {
	return models.UserProfile{
		UID:               "demo-user-42",
		DisplayName:       "Student",
		GradeLevel:        "Grade 8",
		FavoredCelebrity:  "MrBeast",
		DreamJob:          "Astronaut",
		Hobby:             "Gaming",
		Bio:               "I like math",
		IsProfileComplete: true,
	}
}

func exerciseProfileStore(t *testing.T, s storage.ProfileStore) {
	ctx := context.Background()
	want := sampleProfile()

	if _, err := s.Load(ctx, want.UID); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound before save, got %v", err)
	}

	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := s.Load(ctx, want.UID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	if err := s.Delete(ctx, want.UID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Load(ctx, want.UID); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound after delete, got %v", err)
	}
}

func TestSQLiteProfileStoreRoundTrip(t *testing.T) {
	exerciseProfileStore(t, newSQLiteStore(t))
}

func TestSQLiteProfileStoreSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	p := sampleProfile()
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	p.Hobby = "Chess"
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, err := s.Load(ctx, p.UID)
	if err != nil || got.Hobby != "Chess" {
		t.Fatalf("expected overwritten profile, got %+v, %v", got, err)
	}
}

func TestSQLiteProfileStoreRequiresUID(t *testing.T) {
	if err := newSQLiteStore(t).Save(context.Background(), models.UserProfile{}); err == nil {
		t.Fatalf("expected error for empty uid")
	}
}

func TestFirestoreProfileStoreRoundTrip(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	s, err := storage.NewFirestoreProfileStore(context.Background(), "geleza-test")
	if err != nil {
		t.Fatalf("NewFirestoreProfileStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	exerciseProfileStore(t, s)
}
