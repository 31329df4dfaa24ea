package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/dto"
	"github.com/SscSPs/builder_crm/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, tenantID, unitID string) (*domain.Unit, error) {
	args := m.Called(ctx, tenantID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListUnitsByProject(ctx context.Context, tenantID, projectID string) ([]domain.Unit, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) SaveUnit(ctx context.Context, unit domain.Unit) error {
	return m.Called(ctx, unit).Error(0)
}

func (m *MockUnitRepository) MarkUnitSold(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, tenantID, unitID, updatedBy, updatedAt).Error(0)
}

func (m *MockUnitRepository) ReleaseUnit(ctx context.Context, tenantID, unitID, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, tenantID, unitID, updatedBy, updatedAt).Error(0)
}

func (m *MockUnitRepository) SetUnitStatus(ctx context.Context, tenantID, unitID string, status domain.UnitStatus, updatedBy string, updatedAt time.Time) (*domain.Unit, error) {
	args := m.Called(ctx, tenantID, unitID, status, updatedBy, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) FindBookingByID(ctx context.Context, tenantID, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, tenantID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBookings(ctx context.Context, tenantID string) ([]domain.Booking, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) CancelBooking(ctx context.Context, tenantID, bookingID, updatedBy string, updatedAt time.Time) error {
	return m.Called(ctx, tenantID, bookingID, updatedBy, updatedAt).Error(0)
}

type MockLeadReader struct {
	mock.Mock
}

func (m *MockLeadReader) FindLeadByID(ctx context.Context, tenantID, leadID string) (*domain.Lead, error) {
	args := m.Called(ctx, tenantID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadReader) ListLeads(ctx context.Context, tenantID string, limit int, nextToken *string) ([]domain.Lead, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	return args.Get(0).([]domain.Lead), nil, args.Error(2)
}

func (m *MockLeadReader) ListFollowupCandidates(ctx context.Context, tenantID string, until time.Time) ([]domain.Lead, error) {
	args := m.Called(ctx, tenantID, until)
	return args.Get(0).([]domain.Lead), args.Error(1)
}

// passThroughTx runs fn directly; the mocks record what happened inside it.
type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type BookingServiceTestSuite struct {
	suite.Suite
	units    *MockUnitRepository
	bookings *MockBookingRepository
	leads    *MockLeadReader
	svc      *bookingService
	identity domain.Identity
	fixedNow time.Time
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.units = new(MockUnitRepository)
	s.bookings = new(MockBookingRepository)
	s.leads = new(MockLeadReader)
	s.identity = domain.Identity{TenantID: "tenant-1", UserID: "user-1", Role: domain.RoleAdmin}
	s.fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	s.svc = NewBookingService(passThroughTx{}, s.bookings, s.units, s.leads,
		WithClock(func() time.Time { return s.fixedNow }),
	).(*bookingService)
}

func (s *BookingServiceTestSuite) TearDownTest() {
	s.units.AssertExpectations(s.T())
	s.bookings.AssertExpectations(s.T())
	s.leads.AssertExpectations(s.T())
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (s *BookingServiceTestSuite) request() dto.CreateBookingRequest {
	price := decimal.NewFromInt(950000)
	return dto.CreateBookingRequest{LeadID: "lead-1", UnitID: "unit-1", SellingPrice: &price}
}

func (s *BookingServiceTestSuite) TestCreateBooking_SoldConcurrently() {
	s.leads.On("FindLeadByID", mock.Anything, "tenant-1", "lead-1").Return(&domain.Lead{LeadID: "lead-1"}, nil)
	s.units.On("FindUnitByID", mock.Anything, "tenant-1", "unit-1").Return(&domain.Unit{UnitID: "unit-1", Status: domain.UnitAvailable}, nil)
	s.units.On("MarkUnitSold", mock.Anything, "tenant-1", "unit-1", "user-1", s.fixedNow).
		Return(apperrors.NewConflictError("unit is already sold"))

	booking, err := s.svc.CreateBooking(context.Background(), s.identity, s.request())

	s.Nil(booking)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.bookings.AssertNotCalled(s.T(), "SaveBooking", mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestCreateBooking_SoldUnitShortCircuits() {
	s.leads.On("FindLeadByID", mock.Anything, "tenant-1", "lead-1").Return(&domain.Lead{LeadID: "lead-1"}, nil)
	s.units.On("FindUnitByID", mock.Anything, "tenant-1", "unit-1").Return(&domain.Unit{UnitID: "unit-1", Status: domain.UnitSold}, nil)

	_, err := s.svc.CreateBooking(context.Background(), s.identity, s.request())

	s.ErrorIs(err, apperrors.ErrConflict)
	s.units.AssertNotCalled(s.T(), "MarkUnitSold", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *BookingServiceTestSuite) TestCreateBooking_StoreFailureIsInternal() {
	s.leads.On("FindLeadByID", mock.Anything, "tenant-1", "lead-1").Return(&domain.Lead{LeadID: "lead-1"}, nil)
	s.units.On("FindUnitByID", mock.Anything, "tenant-1", "unit-1").Return(&domain.Unit{UnitID: "unit-1", Status: domain.UnitHold}, nil)
	s.units.On("MarkUnitSold", mock.Anything, "tenant-1", "unit-1", "user-1", s.fixedNow).Return(nil)
	s.bookings.On("SaveBooking", mock.Anything, mock.MatchedBy(func(b domain.Booking) bool {
		return b.UnitID == "unit-1" && b.Status == domain.BookingBooked && b.BookingAmount.IsZero()
	})).Return(errors.New("connection reset"))

	_, err := s.svc.CreateBooking(context.Background(), s.identity, s.request())

	s.ErrorIs(err, apperrors.ErrInternal)
}

func (s *BookingServiceTestSuite) TestCreateBooking_UnknownLead() {
	s.leads.On("FindLeadByID", mock.Anything, "tenant-1", "lead-1").Return(nil, apperrors.NewNotFoundError("lead"))

	_, err := s.svc.CreateBooking(context.Background(), s.identity, s.request())

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BookingServiceTestSuite) TestCancelBooking_AlreadyCancelled() {
	s.bookings.On("FindBookingByID", mock.Anything, "tenant-1", "booking-1").
		Return(&domain.Booking{BookingID: "booking-1", UnitID: "unit-1", Status: domain.BookingCancelled}, nil)

	_, err := s.svc.CancelBooking(context.Background(), s.identity, "booking-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.units.AssertNotCalled(s.T(), "ReleaseUnit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// failingBookings wraps the memory store so the booking insert always fails.
type failingBookings struct {
	*memory.Store
}

func (f failingBookings) SaveBooking(context.Context, domain.Booking) error {
	return errors.New("disk full")
}

func TestCreateBooking_RollsBackUnitStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	identity := domain.Identity{TenantID: "tenant-1", UserID: "user-1", Role: domain.RoleAdmin}
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	require.NoError(t, store.SaveProject(ctx, domain.Project{ProjectID: "project-1", TenantID: identity.TenantID, Name: "Green Heights", AuditFields: domain.NewAuditFields(identity.UserID, now)}))
	require.NoError(t, store.SaveUnit(ctx, domain.Unit{UnitID: "unit-1", TenantID: identity.TenantID, ProjectID: "project-1", UnitNumber: "A-101", Status: domain.UnitHold, AuditFields: domain.NewAuditFields(identity.UserID, now)}))
	require.NoError(t, store.SaveLead(ctx, domain.Lead{LeadID: "lead-1", TenantID: identity.TenantID, Name: "Ravi", Status: domain.LeadNew, Notes: []domain.LeadNote{}, AuditFields: domain.NewAuditFields(identity.UserID, now)}))

	svc := NewBookingService(store, failingBookings{store}, store, store)
	price := decimal.NewFromInt(950000)
	_, err := svc.CreateBooking(ctx, identity, dto.CreateBookingRequest{LeadID: "lead-1", UnitID: "unit-1", SellingPrice: &price})
	assert.ErrorIs(t, err, apperrors.ErrInternal)

	unit, err := store.FindUnitByID(ctx, identity.TenantID, "unit-1")
	require.NoError(t, err)
	assert.Equal(t, domain.UnitHold, unit.Status, "unit status restored after failed booking insert")

	bookings, err := store.ListBookings(ctx, identity.TenantID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
