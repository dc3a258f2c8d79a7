package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"GelezaSmart/internal/models"
)

type FirestoreProfileStore struct {
	client *firestore.Client
}

// NewFirestoreProfileStore connects to Firestore in projectID.
// FIRESTORE_EMULATOR_HOST is honoured by the client library.
func NewFirestoreProfileStore(ctx context.Context, projectID string) (*FirestoreProfileStore, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	return &FirestoreProfileStore{client: client}, nil
}

func (s *FirestoreProfileStore) doc(uid string) *firestore.DocumentRef {
	return s.client.Collection(Namespace).Doc(uid)
}

func (s *FirestoreProfileStore) Load(ctx context.Context, uid string) (models.UserProfile, error) {
	var profile models.UserProfile
	snap, err := s.doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return profile, ErrProfileNotFound
		}
		return profile, fmt.Errorf("load profile %s: %w", uid, err)
	}
	if err := snap.DataTo(&profile); err != nil {
		return profile, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return profile, nil
}

func (s *FirestoreProfileStore) Save(ctx context.Context, profile models.UserProfile) error {
	if profile.UID == "" {
		return fmt.Errorf("save profile: uid is required")
	}
	if _, err := s.doc(profile.UID).Set(ctx, profile); err != nil {
		return fmt.Errorf("save profile %s: %w", profile.UID, err)
	}
	return nil
}

func (s *FirestoreProfileStore) Delete(ctx context.Context, uid string) error {
	if _, err := s.doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("delete profile %s: %w", uid, err)
	}
	return nil
}

func (s *FirestoreProfileStore) Close() error {
	return s.client.Close()
}
