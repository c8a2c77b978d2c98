package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"promoplace-backend/internal/domain"
)

// MockPromoterRepo
type MockPromoterRepo struct {
	mock.Mock
}

func (m *MockPromoterRepo) Create(ctx context.Context, p *domain.Promoter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPromoterRepo) GetByID(ctx context.Context, id int32) (*domain.Promoter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}
func (m *MockPromoterRepo) GetByUserID(ctx context.Context, userID int32) (*domain.Promoter, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Promoter), args.Error(1)
}
func (m *MockPromoterRepo) ListAll(ctx context.Context) ([]domain.Promoter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Promoter), args.Error(1)
}
func (m *MockPromoterRepo) Update(ctx context.Context, p *domain.Promoter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPromoterRepo) SetTrustScore(ctx context.Context, id int32, score int32) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}
func (m *MockPromoterRepo) UpdateBadges(ctx context.Context, id int32, badges []domain.PromoterBadge) error {
	args := m.Called(ctx, id, badges)
	return args.Error(0)
}
func (m *MockPromoterRepo) UpdateRestrictions(ctx context.Context, id int32, restrictions []domain.Restriction) error {
	args := m.Called(ctx, id, restrictions)
	return args.Error(0)
}
func (m *MockPromoterRepo) UpdateComplianceState(ctx context.Context, id int32, status domain.ComplianceStatus, req *domain.ComplianceRequest) error {
	args := m.Called(ctx, id, status, req)
	return args.Error(0)
}

// MockBadgeRepo
type MockBadgeRepo struct {
	mock.Mock
}

func (m *MockBadgeRepo) Create(ctx context.Context, b *domain.Badge) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBadgeRepo) GetByID(ctx context.Context, id int32) (*domain.Badge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Badge), args.Error(1)
}
func (m *MockBadgeRepo) List(ctx context.Context) ([]domain.Badge, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Badge), args.Error(1)
}
func (m *MockBadgeRepo) ListActive(ctx context.Context) ([]domain.Badge, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Badge), args.Error(1)
}
func (m *MockBadgeRepo) Update(ctx context.Context, b *domain.Badge) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBadgeRepo) AdjustCounters(ctx context.Context, id int32, activeDelta, totalDelta int32) error {
	args := m.Called(ctx, id, activeDelta, totalDelta)
	return args.Error(0)
}

// MockScoreConfigRepo
type MockScoreConfigRepo struct {
	mock.Mock
}

func (m *MockScoreConfigRepo) Create(ctx context.Context, c *domain.ScoreConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockScoreConfigRepo) GetByID(ctx context.Context, id int32) (*domain.ScoreConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreConfig), args.Error(1)
}
func (m *MockScoreConfigRepo) GetActive(ctx context.Context) (*domain.ScoreConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreConfig), args.Error(1)
}
func (m *MockScoreConfigRepo) List(ctx context.Context) ([]domain.ScoreConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ScoreConfig), args.Error(1)
}
func (m *MockScoreConfigRepo) Update(ctx context.Context, c *domain.ScoreConfig) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockScoreConfigRepo) Activate(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockScoreConfigRepo) SetCorrectionPercent(ctx context.Context, id int32, percent int32) error {
	args := m.Called(ctx, id, percent)
	return args.Error(0)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) ListByPromoter(ctx context.Context, promoterID int32) ([]domain.Project, error) {
	args := m.Called(ctx, promoterID)
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProjectRepo) LastUpdateAt(ctx context.Context, promoterID int32) (*time.Time, error) {
	args := m.Called(ctx, promoterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}
func (m *MockProjectRepo) RecordUpdate(ctx context.Context, projectID int32, at time.Time) error {
	args := m.Called(ctx, projectID, at)
	return args.Error(0)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, e *domain.AuditEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *MockAuditRepo) ListByTarget(ctx context.Context, targetType string, targetID int32, limit int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, targetType, targetID, limit)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// recordingNotifier captures fire-and-forget notifications for assertions.
type recordedNote struct {
	UserID  int32
	Type    domain.NotificationType
	Title   string
	Message string
}

type recordingNotifier struct {
	mu         sync.Mutex
	promoter   []recordedNote
	adminNotes []recordedNote
}

func (n *recordingNotifier) NotifyPromoter(_ context.Context, p *domain.Promoter, typ domain.NotificationType, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.promoter = append(n.promoter, recordedNote{UserID: p.UserID, Type: typ, Title: title, Message: message})
}

func (n *recordingNotifier) NotifyAdmins(_ context.Context, typ domain.NotificationType, title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.adminNotes = append(n.adminNotes, recordedNote{Type: typ, Title: title, Message: message})
}

// fakePromoterRepo is an in-memory store for the end-to-end compliance
// scenario, where the same record is read back after each mutation.
type fakePromoterRepo struct {
	mu        sync.Mutex
	promoters map[int32]*domain.Promoter
}

func newFakePromoterRepo(promoters ...*domain.Promoter) *fakePromoterRepo {
	r := &fakePromoterRepo{promoters: make(map[int32]*domain.Promoter)}
	for _, p := range promoters {
		r.promoters[p.ID] = p
	}
	return r
}

func (r *fakePromoterRepo) Create(_ context.Context, p *domain.Promoter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promoters[p.ID] = p
	return nil
}

func (r *fakePromoterRepo) GetByID(_ context.Context, id int32) (*domain.Promoter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promoters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePromoterRepo) GetByUserID(_ context.Context, userID int32) (*domain.Promoter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.promoters {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakePromoterRepo) ListAll(_ context.Context) ([]domain.Promoter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Promoter
	for _, p := range r.promoters {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePromoterRepo) Update(_ context.Context, p *domain.Promoter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.promoters[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.promoters[p.ID] = &clone
	return nil
}

func (r *fakePromoterRepo) SetTrustScore(_ context.Context, id int32, score int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promoters[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.TrustScore = score
	return nil
}

func (r *fakePromoterRepo) UpdateBadges(_ context.Context, id int32, badges []domain.PromoterBadge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promoters[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Badges = badges
	return nil
}

func (r *fakePromoterRepo) UpdateRestrictions(_ context.Context, id int32, restrictions []domain.Restriction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promoters[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Restrictions = restrictions
	return nil
}

func (r *fakePromoterRepo) UpdateComplianceState(_ context.Context, id int32, status domain.ComplianceStatus, req *domain.ComplianceRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promoters[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ComplianceStatus = status
	p.ComplianceRequest = req
	return nil
}
