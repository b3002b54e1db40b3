// Package redirect resolves the public scan identifiers of dynamic QR
// codes to their destination URLs.
package redirect

import (
	"context"
	"errors"
	"log"
	"time"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/repositories"
	"qrmint/internal/services/qr"
)

// ScanCache is the read/write side of the scan destination cache.
type ScanCache interface {
	GetDestination(ctx context.Context, uniqueID string) (string, error)
	SetDestination(ctx context.Context, uniqueID, destination string, remaining time.Duration) error
}

// Service resolves scan identifiers. Resolve serves the public,
// unauthenticated endpoint; Destination and ScanURL are the
// owner-facing variants.
type Service interface {
	// Resolve maps a public unique id to its destination URL.
	// Returns ErrScanNotFound for unknown or soft-deleted ids and
	// ErrScanExpired at or after the record's expiry — distinct, so
	// the boundary can answer 404 versus 410.
	Resolve(ctx context.Context, uniqueID string) (string, error)

	// Destination returns the destination URL of an owned dynamic QR
	// code, or "" when it is absent or expired (not distinguished).
	Destination(ctx context.Context, userID, qrID string) (string, error)

	// ScanURL returns the public scan URL of an owned dynamic QR code,
	// or "" when it is absent or expired.
	ScanURL(ctx context.Context, userID, qrID string) (string, error)
}

type service struct {
	dynamics repositories.DynamicQRCodeRepository
	cache    ScanCache
	baseURL  string
	now      func() time.Time
}

// NewService creates a new redirect resolver instance
func NewService(dynamics repositories.DynamicQRCodeRepository, cache ScanCache, baseURL string) Service {
	if dynamics == nil {
		panic("dynamic qr code repository is required")
	}
	if cache == nil {
		panic("scan cache is required")
	}
	return &service{
		dynamics: dynamics,
		cache:    cache,
		baseURL:  baseURL,
		now:      time.Now,
	}
}

func (s *service) Resolve(ctx context.Context, uniqueID string) (string, error) {
	if dest, err := s.cache.GetDestination(ctx, uniqueID); err == nil && dest != "" {
		return dest, nil
	}

	record, err := s.dynamics.GetByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, repositories.ErrDynamicQRNotFound) {
			return "", domainErrors.ErrScanNotFound
		}
		return "", err
	}

	now := s.now()
	if !now.Before(record.ExpiresAt) {
		return "", domainErrors.ErrScanExpired
	}

	if err := s.cache.SetDestination(ctx, uniqueID, record.DestinationURL, record.ExpiresAt.Sub(now)); err != nil {
		log.Printf("failed to cache scan destination for %s: %v", uniqueID, err)
	}

	// Destination is trusted as stored; no re-validation or encoding.
	return record.DestinationURL, nil
}

func (s *service) Destination(ctx context.Context, userID, qrID string) (string, error) {
	record, err := s.activeCompanion(ctx, userID, qrID)
	if err != nil || record == nil {
		return "", err
	}
	return record.DestinationURL, nil
}

func (s *service) ScanURL(ctx context.Context, userID, qrID string) (string, error) {
	record, err := s.activeCompanion(ctx, userID, qrID)
	if err != nil || record == nil {
		return "", err
	}
	return s.baseURL + qr.ScanPathPrefix + record.UniqueID, nil
}

// activeCompanion returns the owned, unexpired companion row, or nil
// when it is missing or lapsed. The owner-facing calls do not
// distinguish the two cases.
func (s *service) activeCompanion(ctx context.Context, userID, qrID string) (*models.DynamicQRCode, error) {
	record, err := s.dynamics.GetByQRCodeID(ctx, qrID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrDynamicQRNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !s.now().Before(record.ExpiresAt) {
		return nil, nil
	}
	return record, nil
}
