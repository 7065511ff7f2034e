package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
	"github.com/parking-microservice/internal/zoneindex"
)

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// provisionalPaidSource - paid zone whose attributes match no rate rule
func provisionalPaidSource(id string, lat, lng, sideMeters float64) zoneindex.Source[domain.PaidZoneAttributes] {
	s := paidSource(id, lat, lng, sideMeters)
	s.Attributes.Zone = "M9"
	return s
}

func TestRecommendationUseCase_Recommend(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	lat := 35.2810
	lng := -120.6630

	t.Run("ranked paid and residential lists", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t,
				paidSource("paid-far", lat, offsetLng(lng, lat, 400), 50),
				paidSource("paid-near", lat, offsetLng(lng, lat, 100), 50),
			),
			buildPermitIndex(t, permitSource("permit-a", "R1", lat, offsetLng(lng, lat, 200), 50)),
			nil, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng, Limit: 5})

		require.NoError(t, err)
		// Both paid sources share the rate code SLO-4071, only the nearer survives
		require.Len(t, resp.Paid, 1)
		assert.Equal(t, "paid-near", resp.Paid[0].Zone.ID)
		assert.InDelta(t, 75, resp.Paid[0].DistanceMeters, 1)

		require.Len(t, resp.Residential, 1)
		assert.Equal(t, "R1", resp.Residential[0].Zone.Code)

		assert.True(t, resp.WithinDowntownDistance)
		assert.InDelta(t, 75, resp.NearestPaidMeters, 1)
		assert.Empty(t, resp.Warnings)
	})

	t.Run("no paid zones is a typed failure", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t),
			buildPermitIndex(t, permitSource("permit-a", "R1", lat, lng, 50)),
			nil, testPolicy(), time.Minute, logger,
		)

		_, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.Error(t, err)
		assert.Equal(t, errors.ErrNoPaidZones, err)
	})

	t.Run("destination too far hard failure", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, paidSource("paid-a", lat, offsetLng(lng, lat, 3000), 50)),
			buildPermitIndex(t),
			nil, testPolicy(), time.Minute, logger,
		)

		_, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng, FailWhenTooFar: true})

		require.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrDestinationTooFar.Code, appErr.Code)
		assert.Contains(t, appErr.Details, "nearest_paid_meters")
	})

	t.Run("destination too far flag mode", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, paidSource("paid-a", lat, offsetLng(lng, lat, 3000), 50)),
			buildPermitIndex(t),
			nil, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		assert.False(t, resp.WithinDowntownDistance)
		require.Len(t, resp.Paid, 1)
		assert.Greater(t, resp.NearestPaidMeters, testPolicy().DowntownCapMeters)
	})

	t.Run("empty residential list carries a warning", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, paidSource("paid-a", lat, lng, 50)),
			buildPermitIndex(t, permitSource("permit-a", "R1", lat, offsetLng(lng, lat, 900), 50)),
			nil, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		// The only residential zone is beyond the residential radius
		assert.Empty(t, resp.Residential)
		assert.Contains(t, resp.Warnings, usecase.WarnNoResidentialZones)
	})

	t.Run("confirmed only drops provisional zones", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t,
				provisionalPaidSource("paid-prov", lat, offsetLng(lng, lat, 100), 50),
				paidSource("paid-ok", lat, offsetLng(lng, lat, 300), 50),
			),
			buildPermitIndex(t),
			nil, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng, ConfirmedOnly: true})

		require.NoError(t, err)
		require.Len(t, resp.Paid, 1)
		assert.Equal(t, "paid-ok", resp.Paid[0].Zone.ID)
		assert.False(t, resp.Paid[0].Zone.Provisional)
	})

	t.Run("provisional zones included by default", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, provisionalPaidSource("paid-prov", lat, lng, 50)),
			buildPermitIndex(t),
			nil, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		require.Len(t, resp.Paid, 1)
		assert.True(t, resp.Paid[0].Zone.Provisional)
		assert.NotEmpty(t, resp.Paid[0].Zone.ProvisionalReason)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t), buildPermitIndex(t),
			nil, testPolicy(), time.Minute, logger,
		)

		_, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: 91, Lng: lng})
		assert.Error(t, err)
	})
}

func TestRecommendationUseCase_Cache(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	lat := 35.2810
	lng := -120.6630

	t.Run("miss computes and stores the response", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, nil)
		mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8"), time.Minute).Return(nil)

		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, paidSource("paid-a", lat, lng, 50)),
			buildPermitIndex(t),
			mockCache, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		require.Len(t, resp.Paid, 1)
		mockCache.AssertExpectations(t)
	})

	t.Run("hit skips recomputation", func(t *testing.T) {
		cached := dto.RecommendationResponse{
			Paid: []dto.RecommendationItem{
				{Zone: dto.ZoneSummary{ID: "cached-zone", Category: domain.CategoryPaid}},
			},
			WithinDowntownDistance: true,
		}
		data, err := json.Marshal(cached)
		require.NoError(t, err)

		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(data, nil)

		// Empty indexes: a recomputation would fail with ErrNoPaidZones
		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t), buildPermitIndex(t),
			mockCache, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		require.Len(t, resp.Paid, 1)
		assert.Equal(t, "cached-zone", resp.Paid[0].Zone.ID)
		mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache errors do not fail the request", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		mockCache.On("Get", ctx, mock.AnythingOfType("string")).Return(nil, assert.AnError)
		mockCache.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("[]uint8"), time.Minute).Return(assert.AnError)

		uc := usecase.NewRecommendationUseCase(
			buildPaidIndex(t, paidSource("paid-a", lat, lng, 50)),
			buildPermitIndex(t),
			mockCache, testPolicy(), time.Minute, logger,
		)

		resp, err := uc.Recommend(ctx, dto.RecommendationRequest{Lat: lat, Lng: lng})

		require.NoError(t, err)
		require.Len(t, resp.Paid, 1)
	})
}
