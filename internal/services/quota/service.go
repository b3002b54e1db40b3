// Package quota answers "can this user perform action X" for the three
// metered resources of the free tier. All checks recompute fresh counts
// per request; none of them mutate state.
package quota

import (
	"context"
	"time"

	"qrmint/internal/models"
	"qrmint/internal/repositories"
)

// Free tier limits.
const (
	MaxQRCodes         = 4
	MaxAISuggestions   = 2
	MaxActiveDynamicQR = 1
)

// Status is the result of a quota check.
type Status struct {
	CanCreate bool `json:"canCreate"`
	Count     int  `json:"count"`
	Limit     int  `json:"limit"`
}

// Service exposes the quota checks. Safe to call on every page load.
type Service interface {
	// CheckQRLimit counts active (non-deleted) QR codes against MaxQRCodes.
	CheckQRLimit(ctx context.Context, userID string) (Status, error)

	// CheckDynamicQRLimit counts active, non-expired dynamic QR codes
	// against MaxActiveDynamicQR.
	CheckDynamicQRLimit(ctx context.Context, userID string) (Status, error)

	// AIRemaining reports how many AI suggestion calls the user has left.
	AIRemaining(user *models.User) int
}

type service struct {
	qrs      repositories.QRCodeRepository
	dynamics repositories.DynamicQRCodeRepository
	now      func() time.Time
}

// NewService creates a new quota service instance
func NewService(qrs repositories.QRCodeRepository, dynamics repositories.DynamicQRCodeRepository) Service {
	if qrs == nil {
		panic("qr code repository is required")
	}
	if dynamics == nil {
		panic("dynamic qr code repository is required")
	}
	return &service{qrs: qrs, dynamics: dynamics, now: time.Now}
}

func (s *service) CheckQRLimit(ctx context.Context, userID string) (Status, error) {
	count, err := s.qrs.CountActive(ctx, userID)
	if err != nil {
		return Status{Limit: MaxQRCodes}, err
	}
	return Status{
		CanCreate: count < MaxQRCodes,
		Count:     int(count),
		Limit:     MaxQRCodes,
	}, nil
}

func (s *service) CheckDynamicQRLimit(ctx context.Context, userID string) (Status, error) {
	count, err := s.dynamics.CountActive(ctx, userID, s.now())
	if err != nil {
		return Status{Limit: MaxActiveDynamicQR}, err
	}
	return Status{
		CanCreate: count < MaxActiveDynamicQR,
		Count:     int(count),
		Limit:     MaxActiveDynamicQR,
	}, nil
}

func (s *service) AIRemaining(user *models.User) int {
	remaining := MaxAISuggestions - user.AISuggestionsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
