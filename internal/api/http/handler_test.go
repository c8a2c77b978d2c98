package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"promoplace-backend/internal/domain"
	"promoplace-backend/internal/security"
	"promoplace-backend/internal/service"
)

type MockTrustScoreService struct {
	mock.Mock
}

func (m *MockTrustScoreService) CalculateScore(ctx context.Context, promoterID int32) (int32, error) {
	args := m.Called(ctx, promoterID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockTrustScoreService) GetScoreBreakdown(ctx context.Context, promoterID int32) (*service.ScoreBreakdown, error) {
	args := m.Called(ctx, promoterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScoreBreakdown), args.Error(1)
}
func (m *MockTrustScoreService) RecalculateAllScores(ctx context.Context) (service.BatchResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.BatchResult), args.Error(1)
}
func (m *MockTrustScoreService) ApplyGlobalCorrection(ctx context.Context, adminID, percent int32) (service.BatchResult, error) {
	args := m.Called(ctx, adminID, percent)
	return args.Get(0).(service.BatchResult), args.Error(1)
}

type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) CreateBadge(ctx context.Context, b *domain.Badge) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBadgeService) ListBadges(ctx context.Context) ([]domain.Badge, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Badge), args.Error(1)
}
func (m *MockBadgeService) AwardBadge(ctx context.Context, adminID, promoterID, badgeID int32) error {
	args := m.Called(ctx, adminID, promoterID, badgeID)
	return args.Error(0)
}
func (m *MockBadgeService) AutoAwardIfEligible(ctx context.Context, promoterID int32) (int, error) {
	args := m.Called(ctx, promoterID)
	return args.Int(0), args.Error(1)
}
func (m *MockBadgeService) AutoAwardAll(ctx context.Context) (service.BatchResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.BatchResult), args.Error(1)
}
func (m *MockBadgeService) CheckExpiredBadges(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
func (m *MockBadgeService) RevokeBadge(ctx context.Context, adminID, promoterID, badgeID int32) error {
	args := m.Called(ctx, adminID, promoterID, badgeID)
	return args.Error(0)
}

type MockComplianceService struct {
	mock.Mock
}

func (m *MockComplianceService) RequestComplianceUpgrade(ctx context.Context, promoterID int32, target domain.ComplianceStatus, reason string) (*domain.ComplianceRequest, error) {
	args := m.Called(ctx, promoterID, target, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ComplianceRequest), args.Error(1)
}
func (m *MockComplianceService) ReviewComplianceRequest(ctx context.Context, promoterID, reviewerID int32, approved bool, comment string) (*domain.Promoter, error) {
	args := m.Called(ctx, promoterID, reviewerID, approved, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}

type MockScoreConfigService struct {
	mock.Mock
}

func (m *MockScoreConfigService) SaveConfig(ctx context.Context, adminID int32, cfg *domain.ScoreConfig) error {
	args := m.Called(ctx, adminID, cfg)
	return args.Error(0)
}
func (m *MockScoreConfigService) GetActiveConfig(ctx context.Context) (*domain.ScoreConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreConfig), args.Error(1)
}
func (m *MockScoreConfigService) ListConfigs(ctx context.Context) ([]domain.ScoreConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ScoreConfig), args.Error(1)
}
func (m *MockScoreConfigService) ActivateConfig(ctx context.Context, adminID, configID int32) error {
	args := m.Called(ctx, adminID, configID)
	return args.Error(0)
}

type testEnv struct {
	trustScore  *MockTrustScoreService
	badge       *MockBadgeService
	compliance  *MockComplianceService
	scoreConfig *MockScoreConfigService
	router      http.Handler
	adminToken  string
	promoToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		trustScore:  new(MockTrustScoreService),
		badge:       new(MockBadgeService),
		compliance:  new(MockComplianceService),
		scoreConfig: new(MockScoreConfigService),
	}
	tokens := security.NewTokenManager("test-secret-at-least-32-characters!!", time.Hour)
	env.router = NewRouter(Services{
		TrustScore:  env.trustScore,
		Badge:       env.badge,
		Compliance:  env.compliance,
		ScoreConfig: env.scoreConfig,
	}, tokens)

	var err error
	env.adminToken, err = tokens.GenerateAccessToken(1, "admin@promoplace.test", string(domain.UserRoleAdmin))
	require.NoError(t, err)
	env.promoToken, err = tokens.GenerateAccessToken(100, "promo@promoplace.test", string(domain.UserRolePromoter))
	require.NoError(t, err)
	return env
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/admin/scores/recalculate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/admin/scores/recalculate", env.promoToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCalculateScore(t *testing.T) {
	env := newTestEnv(t)
	env.trustScore.On("CalculateScore", mock.Anything, int32(42)).Return(int32(88), nil)

	rec := env.do(http.MethodPost, "/api/v1/admin/promoters/42/score/calculate", env.adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int32
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int32(88), body["trust_score"])
}

func TestCalculateScore_UnknownPromoter(t *testing.T) {
	env := newTestEnv(t)
	env.trustScore.On("CalculateScore", mock.Anything, int32(99)).Return(int32(0), domain.ErrNotFound)

	rec := env.do(http.MethodPost, "/api/v1/admin/promoters/99/score/calculate", env.adminToken, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyCorrection_Validation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/admin/scores/correction", env.adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.trustScore.On("ApplyGlobalCorrection", mock.Anything, int32(1), int32(150)).
		Return(service.BatchResult{}, domain.NewValidationError("correction percentage must be between 0 and 100, got 150"))
	rec = env.do(http.MethodPost, "/api/v1/admin/scores/correction", env.adminToken, map[string]any{"percent": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAwardBadge_DuplicateConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.badge.On("AwardBadge", mock.Anything, int32(1), int32(42), int32(3)).Return(domain.ErrAlreadyHasBadge)

	rec := env.do(http.MethodPost, "/api/v1/admin/promoters/42/badges/3/award", env.adminToken, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRequestComplianceUpgrade(t *testing.T) {
	env := newTestEnv(t)
	env.compliance.On("RequestComplianceUpgrade", mock.Anything, int32(42), domain.ComplianceStatusConforme, "docs ready").
		Return(&domain.ComplianceRequest{
			ID:           "req-1",
			TargetStatus: domain.ComplianceStatusConforme,
			Status:       domain.ComplianceRequestPending,
		}, nil)

	rec := env.do(http.MethodPost, "/api/v1/promoters/42/compliance/request", env.promoToken,
		map[string]string{"target_status": "CONFORME", "reason": "docs ready"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	var req domain.ComplianceRequest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &req))
	assert.Equal(t, domain.ComplianceRequestPending, req.Status)
}

func TestRequestComplianceUpgrade_BadTarget(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/v1/promoters/42/compliance/request", env.promoToken,
		map[string]string{"target_status": "PLATINUM"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env.compliance.AssertNotCalled(t, "RequestComplianceUpgrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestComplianceUpgrade_AlreadyPendingConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.compliance.On("RequestComplianceUpgrade", mock.Anything, int32(42), domain.ComplianceStatusConforme, "").
		Return(nil, domain.ErrRequestAlreadyPending)

	rec := env.do(http.MethodPost, "/api/v1/promoters/42/compliance/request", env.promoToken,
		map[string]string{"target_status": "CONFORME"})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReviewCompliance(t *testing.T) {
	env := newTestEnv(t)
	env.compliance.On("ReviewComplianceRequest", mock.Anything, int32(42), int32(1), true, "looks good").
		Return(&domain.Promoter{ID: 42, ComplianceStatus: domain.ComplianceStatusConforme}, nil)

	rec := env.do(http.MethodPost, "/api/v1/admin/promoters/42/compliance/review", env.adminToken,
		map[string]any{"approved": true, "comment": "looks good"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var p domain.Promoter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, domain.ComplianceStatusConforme, p.ComplianceStatus)
}

func TestSaveScoreConfig_BadWeights(t *testing.T) {
	env := newTestEnv(t)
	env.scoreConfig.On("SaveConfig", mock.Anything, int32(1), mock.AnythingOfType("*domain.ScoreConfig")).
		Return(domain.NewValidationError("criterion weights must sum to 100, got 115"))

	rec := env.do(http.MethodPost, "/api/v1/admin/score-configs", env.adminToken, map[string]any{
		"name":    "lopsided",
		"weights": map[string]int{"kyc": 40, "documents": 15, "financial": 20, "track_record": 25, "responsiveness": 15},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActivateScoreConfig(t *testing.T) {
	env := newTestEnv(t)
	env.scoreConfig.On("ActivateConfig", mock.Anything, int32(1), int32(7)).Return(nil)

	rec := env.do(http.MethodPost, "/api/v1/admin/score-configs/7/activate", env.adminToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	env.scoreConfig.AssertExpectations(t)
}

func TestGetScoreBreakdown(t *testing.T) {
	env := newTestEnv(t)
	env.trustScore.On("GetScoreBreakdown", mock.Anything, int32(42)).Return(&service.ScoreBreakdown{
		Score: 74,
		Components: []service.ScoreComponent{
			{Name: "kyc", Points: 25, Max: 25},
		},
		Suggestions: []string{"Respond to leads faster to improve your responsiveness score"},
	}, nil)

	rec := env.do(http.MethodGet, "/api/v1/promoters/42/score", env.promoToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var breakdown service.ScoreBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &breakdown))
	assert.Equal(t, int32(74), breakdown.Score)
	assert.Len(t, breakdown.Suggestions, 1)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
