// Package qr implements the QR code record lifecycle: create, update,
// soft-delete and rename, with the immutability rules that apply once
// a record's dynamic flag is set.
package qr

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/repositories"
	"qrmint/internal/utils"
	"qrmint/internal/validation"
)

type service struct {
	users    repositories.UserRepository
	qrs      repositories.QRCodeRepository
	dynamics repositories.DynamicQRCodeRepository
	quotas   QuotaChecker
	cache    ScanInvalidator
	baseURL  string

	now         func() time.Time
	newUniqueID func() (string, error)
}

// NewService creates a new QR lifecycle service instance. baseURL is
// the public base the scan URLs are built on, e.g. https://qrmint.app.
func NewService(users repositories.UserRepository, qrs repositories.QRCodeRepository,
	dynamics repositories.DynamicQRCodeRepository, quotas QuotaChecker,
	cache ScanInvalidator, baseURL string) Service {
	if users == nil {
		panic("user repository is required")
	}
	if qrs == nil {
		panic("qr code repository is required")
	}
	if dynamics == nil {
		panic("dynamic qr code repository is required")
	}
	if quotas == nil {
		panic("quota checker is required")
	}
	if cache == nil {
		panic("scan invalidator is required")
	}

	return &service{
		users:       users,
		qrs:         qrs,
		dynamics:    dynamics,
		quotas:      quotas,
		cache:       cache,
		baseURL:     baseURL,
		now:         time.Now,
		newUniqueID: utils.GenerateUniqueID,
	}
}

func (s *service) scanURL(uniqueID string) string {
	return s.baseURL + ScanPathPrefix + uniqueID
}

func (s *service) Save(ctx context.Context, userID string, req SaveRequest) (string, error) {
	name, err := validation.ValidateName(req.Name)
	if err != nil {
		return "", err
	}
	if err := validation.ValidateURL(req.URL); err != nil {
		return "", err
	}

	if req.QRID != "" {
		return s.update(ctx, userID, name, req)
	}
	return s.create(ctx, userID, name, req)
}

func (s *service) create(ctx context.Context, userID, name string, req SaveRequest) (string, error) {
	isDynamic := req.Settings.IsDynamic()

	if isDynamic {
		status, err := s.quotas.CheckDynamicQRLimit(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to check dynamic QR quota: %w", err)
		}
		if !status.CanCreate {
			return "", domainErrors.ErrDynamicQRLimitReached
		}
	}

	status, err := s.quotas.CheckQRLimit(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to check QR quota: %w", err)
	}
	if !status.CanCreate {
		return "", domainErrors.ErrQRLimitReached
	}

	finalURL := req.URL
	var uniqueID string
	if isDynamic {
		uniqueID, err = s.newUniqueID()
		if err != nil {
			return "", fmt.Errorf("failed to generate unique id: %w", err)
		}
		finalURL = s.scanURL(uniqueID)
	}

	record := &models.QRCode{
		UserID:    userID,
		Name:      name,
		URL:       finalURL,
		IsDynamic: isDynamic,
		Settings:  req.Settings.WithContent(finalURL, isDynamic),
	}
	if err := s.qrs.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to save QR code: %w", err)
	}

	if isDynamic {
		companion := &models.DynamicQRCode{
			QRCodeID:       record.ID,
			UserID:         userID,
			UniqueID:       uniqueID,
			DestinationURL: req.URL,
			ExpiresAt:      s.now().Add(DynamicLifetime),
		}
		if err := s.dynamics.Create(ctx, companion); err != nil {
			// Compensating rollback: never leave a dynamic QR code
			// without its companion row.
			if delErr := s.qrs.HardDelete(ctx, record.ID); delErr != nil {
				log.Printf("rollback of QR code %s failed: %v", record.ID, delErr)
			}
			return "", fmt.Errorf("failed to save dynamic QR code: %w", err)
		}
	}

	// Best effort: the visible record is not at risk if the historical
	// counter update fails.
	if err := s.users.IncrementQRCount(ctx, userID); err != nil {
		log.Printf("failed to increment qr_count for user %s: %v", userID, err)
	}

	return record.ID, nil
}

func (s *service) update(ctx context.Context, userID, name string, req SaveRequest) (string, error) {
	current, err := s.qrs.GetByID(ctx, req.QRID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrQRCodeNotFound) {
			return "", domainErrors.ErrQRNotFound
		}
		return "", err
	}

	isDynamic := req.Settings.IsDynamic()
	if current.IsDynamic != isDynamic {
		return "", domainErrors.ErrTypeImmutable
	}
	if !isDynamic && req.URL != current.URL {
		return "", domainErrors.ErrContentImmutable
	}

	finalURL := current.URL
	if isDynamic {
		companion, err := s.dynamics.GetByQRCodeID(ctx, current.ID, userID)
		if err != nil && !errors.Is(err, repositories.ErrDynamicQRNotFound) {
			return "", err
		}
		if companion != nil {
			if err := s.dynamics.UpdateDestination(ctx, companion.ID, req.URL); err != nil {
				return "", fmt.Errorf("failed to update destination: %w", err)
			}
			if err := s.cache.InvalidateScan(ctx, companion.UniqueID); err != nil {
				log.Printf("failed to invalidate scan cache for %s: %v", companion.UniqueID, err)
			}
			// The public scan URL never changes across edits.
			finalURL = s.scanURL(companion.UniqueID)
		}
	}

	current.Name = name
	current.URL = finalURL
	current.Settings = req.Settings.WithContent(finalURL, isDynamic)
	if err := s.qrs.Update(ctx, current); err != nil {
		return "", fmt.Errorf("failed to update QR code: %w", err)
	}

	return current.ID, nil
}

func (s *service) Delete(ctx context.Context, userID, qrID string) error {
	current, err := s.qrs.GetByID(ctx, qrID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrQRCodeNotFound) {
			return domainErrors.ErrQRNotFound
		}
		return err
	}

	if current.IsDynamic {
		companion, err := s.dynamics.GetByQRCodeID(ctx, qrID, userID)
		if err != nil && !errors.Is(err, repositories.ErrDynamicQRNotFound) {
			return err
		}
		if companion != nil {
			if err := s.dynamics.SoftDeleteByQRCodeID(ctx, qrID); err != nil {
				return fmt.Errorf("failed to delete dynamic QR code: %w", err)
			}
			if err := s.cache.InvalidateScan(ctx, companion.UniqueID); err != nil {
				log.Printf("failed to invalidate scan cache for %s: %v", companion.UniqueID, err)
			}
		}
	}

	if err := s.qrs.SoftDelete(ctx, qrID, userID); err != nil {
		if errors.Is(err, repositories.ErrQRCodeNotFound) {
			return domainErrors.ErrQRNotFound
		}
		return err
	}

	// qr_count intentionally keeps its historical value; the quota
	// check recounts active rows and will see the freed slot.
	return nil
}

func (s *service) Rename(ctx context.Context, userID, qrID, name string) error {
	trimmed, err := validation.ValidateName(name)
	if err != nil {
		return err
	}
	if err := s.qrs.Rename(ctx, qrID, userID, trimmed); err != nil {
		if errors.Is(err, repositories.ErrQRCodeNotFound) {
			return domainErrors.ErrQRNotFound
		}
		return err
	}
	return nil
}

func (s *service) Get(ctx context.Context, userID, qrID string) (*models.QRCode, error) {
	record, err := s.qrs.GetByID(ctx, qrID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrQRCodeNotFound) {
			return nil, domainErrors.ErrQRNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]models.QRCode, error) {
	return s.qrs.ListByUser(ctx, userID)
}
