package qr

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "qrmint/internal/errors"
	"qrmint/internal/models"
	"qrmint/internal/repositories"
	"qrmint/internal/services/quota"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Restore(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) UpdateEmail(ctx context.Context, externalID, email string) error {
	return m.Called(ctx, externalID, email).Error(0)
}

func (m *MockUserRepo) IncrementQRCount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) IncrementAISuggestions(ctx context.Context, id string, limit int) (bool, error) {
	args := m.Called(ctx, id, limit)
	return args.Bool(0), args.Error(1)
}

type MockQRRepo struct{ mock.Mock }

func (m *MockQRRepo) Create(ctx context.Context, qr *models.QRCode) error {
	return m.Called(ctx, qr).Error(0)
}

func (m *MockQRRepo) GetByID(ctx context.Context, id, userID string) (*models.QRCode, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRCode), args.Error(1)
}

func (m *MockQRRepo) ListByUser(ctx context.Context, userID string) ([]models.QRCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QRCode), args.Error(1)
}

func (m *MockQRRepo) Update(ctx context.Context, qr *models.QRCode) error {
	return m.Called(ctx, qr).Error(0)
}

func (m *MockQRRepo) Rename(ctx context.Context, id, userID, name string) error {
	return m.Called(ctx, id, userID, name).Error(0)
}

func (m *MockQRRepo) SoftDelete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockQRRepo) HardDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockQRRepo) CountActive(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockDynamicRepo struct{ mock.Mock }

func (m *MockDynamicRepo) Create(ctx context.Context, d *models.DynamicQRCode) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDynamicRepo) GetByUniqueID(ctx context.Context, uniqueID string) (*models.DynamicQRCode, error) {
	args := m.Called(ctx, uniqueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DynamicQRCode), args.Error(1)
}

func (m *MockDynamicRepo) GetByQRCodeID(ctx context.Context, qrCodeID, userID string) (*models.DynamicQRCode, error) {
	args := m.Called(ctx, qrCodeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DynamicQRCode), args.Error(1)
}

func (m *MockDynamicRepo) UpdateDestination(ctx context.Context, id, destination string) error {
	return m.Called(ctx, id, destination).Error(0)
}

func (m *MockDynamicRepo) SoftDeleteByQRCodeID(ctx context.Context, qrCodeID string) error {
	return m.Called(ctx, qrCodeID).Error(0)
}

func (m *MockDynamicRepo) CountActive(ctx context.Context, userID string, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockQuota struct{ mock.Mock }

func (m *MockQuota) CheckQRLimit(ctx context.Context, userID string) (quota.Status, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(quota.Status), args.Error(1)
}

func (m *MockQuota) CheckDynamicQRLimit(ctx context.Context, userID string) (quota.Status, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(quota.Status), args.Error(1)
}

type MockInvalidator struct{ mock.Mock }

func (m *MockInvalidator) InvalidateScan(ctx context.Context, uniqueID string) error {
	return m.Called(ctx, uniqueID).Error(0)
}

type testDeps struct {
	users    *MockUserRepo
	qrs      *MockQRRepo
	dynamics *MockDynamicRepo
	quotas   *MockQuota
	cache    *MockInvalidator
}

func newTestService(t *testing.T) (*service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		users:    new(MockUserRepo),
		qrs:      new(MockQRRepo),
		dynamics: new(MockDynamicRepo),
		quotas:   new(MockQuota),
		cache:    new(MockInvalidator),
	}
	svc := &service{
		users:       deps.users,
		qrs:         deps.qrs,
		dynamics:    deps.dynamics,
		quotas:      deps.quotas,
		cache:       deps.cache,
		baseURL:     "https://qrmint.test",
		now:         func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
		newUniqueID: func() (string, error) { return "aabbccddeeff00112233445566778899", nil },
	}
	return svc, deps
}

func staticSettings() models.Settings {
	return models.Settings{"isDynamic": false, "dotsColor": "#000000"}
}

func dynamicSettings() models.Settings {
	return models.Settings{"isDynamic": true}
}

func TestService_Save_CreateStatic(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.quotas.On("CheckQRLimit", ctx, "u1").Return(quota.Status{CanCreate: true, Count: 2, Limit: 4}, nil)
	deps.qrs.On("Create", ctx, mock.MatchedBy(func(q *models.QRCode) bool {
		return q.UserID == "u1" && q.Name == "My QR" && q.URL == "https://example.com" && !q.IsDynamic
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.QRCode).ID = "qr-1"
	}).Return(nil)
	deps.users.On("IncrementQRCount", ctx, "u1").Return(nil)

	id, err := svc.Save(ctx, "u1", SaveRequest{
		Name:     "My QR",
		URL:      "https://example.com",
		Settings: staticSettings(),
	})

	require.NoError(t, err)
	assert.Equal(t, "qr-1", id)
	deps.qrs.AssertExpectations(t)
	deps.users.AssertExpectations(t)
}

func TestService_Save_CreateStatic_QuotaExceeded(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.quotas.On("CheckQRLimit", ctx, "u1").Return(quota.Status{CanCreate: false, Count: 4, Limit: 4}, nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		Name:     "Fifth",
		URL:      "https://example.com/5",
		Settings: staticSettings(),
	})

	assert.ErrorIs(t, err, domainErrors.ErrQRLimitReached)
	deps.qrs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	deps.users.AssertNotCalled(t, "IncrementQRCount", mock.Anything, mock.Anything)
}

func TestService_Save_CreateDynamic(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()
	wantScanURL := "https://qrmint.test/dynamic/scan/aabbccddeeff00112233445566778899"

	deps.quotas.On("CheckDynamicQRLimit", ctx, "u1").Return(quota.Status{CanCreate: true, Count: 0, Limit: 1}, nil)
	deps.quotas.On("CheckQRLimit", ctx, "u1").Return(quota.Status{CanCreate: true, Count: 0, Limit: 4}, nil)
	deps.qrs.On("Create", ctx, mock.MatchedBy(func(q *models.QRCode) bool {
		return q.IsDynamic && q.URL == wantScanURL && q.Settings["url"] == wantScanURL
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.QRCode).ID = "qr-2"
	}).Return(nil)
	deps.dynamics.On("Create", ctx, mock.MatchedBy(func(d *models.DynamicQRCode) bool {
		return d.QRCodeID == "qr-2" &&
			d.UniqueID == "aabbccddeeff00112233445566778899" &&
			d.DestinationURL == "https://example.com/landing" &&
			d.ExpiresAt.Equal(time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC))
	})).Return(nil)
	deps.users.On("IncrementQRCount", ctx, "u1").Return(nil)

	id, err := svc.Save(ctx, "u1", SaveRequest{
		Name:     "Campaign",
		URL:      "https://example.com/landing",
		Settings: dynamicSettings(),
	})

	require.NoError(t, err)
	assert.Equal(t, "qr-2", id)
	deps.dynamics.AssertExpectations(t)
}

func TestService_Save_CreateDynamic_QuotaExceeded(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.quotas.On("CheckDynamicQRLimit", ctx, "u1").Return(quota.Status{CanCreate: false, Count: 1, Limit: 1}, nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		Name:     "Second dynamic",
		URL:      "https://example.com",
		Settings: dynamicSettings(),
	})

	assert.ErrorIs(t, err, domainErrors.ErrDynamicQRLimitReached)
	deps.qrs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Save_CreateDynamic_CompanionFailureRollsBack(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.quotas.On("CheckDynamicQRLimit", ctx, "u1").Return(quota.Status{CanCreate: true, Count: 0, Limit: 1}, nil)
	deps.quotas.On("CheckQRLimit", ctx, "u1").Return(quota.Status{CanCreate: true, Count: 0, Limit: 4}, nil)
	deps.qrs.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.QRCode).ID = "qr-3"
	}).Return(nil)
	deps.dynamics.On("Create", ctx, mock.Anything).Return(errors.New("insert failed"))
	deps.qrs.On("HardDelete", ctx, "qr-3").Return(nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		Name:     "Broken",
		URL:      "https://example.com",
		Settings: dynamicSettings(),
	})

	require.Error(t, err)
	deps.qrs.AssertCalled(t, "HardDelete", ctx, "qr-3")
	deps.users.AssertNotCalled(t, "IncrementQRCount", mock.Anything, mock.Anything)
}

func TestService_Save_Update_TypeImmutable(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "qr-1", "u1").Return(&models.QRCode{
		ID: "qr-1", UserID: "u1", URL: "https://example.com", IsDynamic: false,
	}, nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		QRID:     "qr-1",
		Name:     "Renamed",
		URL:      "https://example.com",
		Settings: dynamicSettings(),
	})

	assert.ErrorIs(t, err, domainErrors.ErrTypeImmutable)
	deps.qrs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Save_Update_StaticURLImmutable(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "qr-1", "u1").Return(&models.QRCode{
		ID: "qr-1", UserID: "u1", URL: "https://example.com", IsDynamic: false,
	}, nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		QRID:     "qr-1",
		Name:     "Renamed",
		URL:      "https://other.example.com",
		Settings: staticSettings(),
	})

	assert.ErrorIs(t, err, domainErrors.ErrContentImmutable)
	deps.qrs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Save_Update_DynamicDestination(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()
	scanURL := "https://qrmint.test/dynamic/scan/unique-123"

	deps.qrs.On("GetByID", ctx, "qr-2", "u1").Return(&models.QRCode{
		ID: "qr-2", UserID: "u1", URL: scanURL, IsDynamic: true,
	}, nil)
	deps.dynamics.On("GetByQRCodeID", ctx, "qr-2", "u1").Return(&models.DynamicQRCode{
		ID: "dyn-1", QRCodeID: "qr-2", UniqueID: "unique-123",
		DestinationURL: "https://old.example.com",
	}, nil)
	deps.dynamics.On("UpdateDestination", ctx, "dyn-1", "https://new.example.com").Return(nil)
	deps.cache.On("InvalidateScan", ctx, "unique-123").Return(nil)
	deps.qrs.On("Update", ctx, mock.MatchedBy(func(q *models.QRCode) bool {
		// the stored URL stays the scan URL, not the new destination
		return q.URL == scanURL && q.Settings["url"] == scanURL
	})).Return(nil)

	id, err := svc.Save(ctx, "u1", SaveRequest{
		QRID:     "qr-2",
		Name:     "Campaign v2",
		URL:      "https://new.example.com",
		Settings: dynamicSettings(),
	})

	require.NoError(t, err)
	assert.Equal(t, "qr-2", id)
	deps.dynamics.AssertExpectations(t)
	deps.cache.AssertExpectations(t)
}

func TestService_Save_Update_NotFound(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "missing", "u1").Return(nil, repositories.ErrQRCodeNotFound)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		QRID:     "missing",
		Name:     "X",
		URL:      "https://example.com",
		Settings: staticSettings(),
	})

	assert.ErrorIs(t, err, domainErrors.ErrQRNotFound)
}

func TestService_Save_UpdateSkipsQuota(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "qr-1", "u1").Return(&models.QRCode{
		ID: "qr-1", UserID: "u1", URL: "https://example.com", IsDynamic: false,
	}, nil)
	deps.qrs.On("Update", ctx, mock.Anything).Return(nil)

	_, err := svc.Save(ctx, "u1", SaveRequest{
		QRID:     "qr-1",
		Name:     "Renamed",
		URL:      "https://example.com",
		Settings: staticSettings(),
	})

	require.NoError(t, err)
	deps.quotas.AssertNotCalled(t, "CheckQRLimit", mock.Anything, mock.Anything)
	deps.users.AssertNotCalled(t, "IncrementQRCount", mock.Anything, mock.Anything)
}

func TestService_Save_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     SaveRequest
		wantErr error
	}{
		{
			name:    "empty name",
			req:     SaveRequest{Name: "   ", URL: "https://example.com", Settings: staticSettings()},
			wantErr: domainErrors.ErrEmptyName,
		},
		{
			name:    "empty url",
			req:     SaveRequest{Name: "QR", URL: "", Settings: staticSettings()},
			wantErr: domainErrors.ErrInvalidURL,
		},
		{
			name:    "not a url",
			req:     SaveRequest{Name: "QR", URL: "not a url", Settings: staticSettings()},
			wantErr: domainErrors.ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, "u1", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Delete_CascadesToCompanion(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "qr-2", "u1").Return(&models.QRCode{
		ID: "qr-2", UserID: "u1", IsDynamic: true,
	}, nil)
	deps.dynamics.On("GetByQRCodeID", ctx, "qr-2", "u1").Return(&models.DynamicQRCode{
		ID: "dyn-1", QRCodeID: "qr-2", UniqueID: "unique-123",
	}, nil)
	deps.dynamics.On("SoftDeleteByQRCodeID", ctx, "qr-2").Return(nil)
	deps.cache.On("InvalidateScan", ctx, "unique-123").Return(nil)
	deps.qrs.On("SoftDelete", ctx, "qr-2", "u1").Return(nil)

	err := svc.Delete(ctx, "u1", "qr-2")

	require.NoError(t, err)
	deps.dynamics.AssertExpectations(t)
	deps.cache.AssertExpectations(t)
	// historical counter is never decremented
	deps.users.AssertNotCalled(t, "IncrementQRCount", mock.Anything, mock.Anything)
}

func TestService_Delete_NotOwned(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	deps.qrs.On("GetByID", ctx, "qr-9", "u1").Return(nil, repositories.ErrQRCodeNotFound)

	err := svc.Delete(ctx, "u1", "qr-9")
	assert.ErrorIs(t, err, domainErrors.ErrQRNotFound)
	deps.qrs.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Rename(t *testing.T) {
	svc, deps := newTestService(t)
	ctx := context.Background()

	t.Run("trims the name", func(t *testing.T) {
		deps.qrs.On("Rename", ctx, "qr-1", "u1", "New name").Return(nil).Once()
		require.NoError(t, svc.Rename(ctx, "u1", "qr-1", "  New name  "))
		deps.qrs.AssertExpectations(t)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := svc.Rename(ctx, "u1", "qr-1", "   ")
		assert.ErrorIs(t, err, domainErrors.ErrEmptyName)
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		deps.qrs.On("Rename", ctx, "gone", "u1", "X").Return(repositories.ErrQRCodeNotFound).Once()
		err := svc.Rename(ctx, "u1", "gone", "X")
		assert.ErrorIs(t, err, domainErrors.ErrQRNotFound)
	})
}
