// Package identity resolves externally authenticated principals to
// local user records.
package identity

import (
	"context"
	"errors"
	"log"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/repositories"
)

// Service finds-or-creates local users for identity provider subjects.
type Service interface {
	// EnsureUser returns the local user for an external id, restoring
	// a soft-deleted row or lazily creating a fresh one. The email is
	// best effort and may be empty.
	EnsureUser(ctx context.Context, externalID, email string) (*models.User, error)

	// SyncFromEvent upserts a user from an identity provider webhook
	// event. It must stay consistent with EnsureUser: soft-deleted
	// rows are restored, inserts start with zeroed counters.
	SyncFromEvent(ctx context.Context, externalID, email string) error
}

type service struct {
	users repositories.UserRepository
}

// NewService creates a new identity service instance
func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{users: users}
}

func (s *service) EnsureUser(ctx context.Context, externalID, email string) (*models.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		if user.DeletedAt.Valid {
			if err := s.users.Restore(ctx, user.ID); err != nil {
				log.Printf("failed to restore user %s: %v", user.ID, err)
				return nil, domainErrors.ErrAccountCreation
			}
			user.DeletedAt.Valid = false
		}
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	user = &models.User{
		ExternalID:        externalID,
		Email:             email,
		QRCount:           0,
		AISuggestionsUsed: 0,
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.Printf("failed to create user for external id %s: %v", externalID, err)
		return nil, domainErrors.ErrAccountCreation
	}
	return user, nil
}

func (s *service) SyncFromEvent(ctx context.Context, externalID, email string) error {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		if user.DeletedAt.Valid {
			if err := s.users.Restore(ctx, user.ID); err != nil {
				return err
			}
		}
		return s.users.UpdateEmail(ctx, externalID, email)
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}
	return s.users.Create(ctx, &models.User{
		ExternalID:        externalID,
		Email:             email,
		QRCount:           0,
		AISuggestionsUsed: 0,
	})
}
