package pgsql

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	repos    portsrepo.RepositoryProvider
	ctx      context.Context
	tenantID string
	userID   string
	at       time.Time
}

func (s *RepositoryTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(s.T(), err)
	s.mock = mock
	s.repos = NewRepositoryProvider(mock)
	s.ctx = context.Background()
	s.tenantID = "tenant-1"
	s.userID = "user-1"
	s.at = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
}

func (s *RepositoryTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

// anyArgs builds an argument list for WithArgs. An int n expands to n
// AnyArg matchers; any other value is matched exactly.
func anyArgs(parts ...any) []any {
	var args []any
	for _, part := range parts {
		if n, ok := part.(int); ok {
			for i := 0; i < n; i++ {
				args = append(args, pgxmock.AnyArg())
			}
			continue
		}
		args = append(args, part)
	}
	return args
}

func (s *RepositoryTestSuite) expectUnitExists(unitID string, exists bool) {
	s.mock.ExpectQuery(q(`SELECT EXISTS (SELECT 1 FROM units WHERE tenant_id = $1 AND unit_id = $2)`)).
		WithArgs(s.tenantID, unitID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func (s *RepositoryTestSuite) TestMarkUnitSold_Success() {
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.repos.UnitRepo.MarkUnitSold(s.ctx, s.tenantID, "unit-1", s.userID, s.at)
	assert.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TestMarkUnitSold_AlreadySold() {
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	s.expectUnitExists("unit-1", true)

	err := s.repos.UnitRepo.MarkUnitSold(s.ctx, s.tenantID, "unit-1", s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestMarkUnitSold_OtherTenantsUnitIsNotFound() {
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-x", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	s.expectUnitExists("unit-x", false)

	err := s.repos.UnitRepo.MarkUnitSold(s.ctx, s.tenantID, "unit-x", s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestReleaseUnit_NotSold() {
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Available'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	s.expectUnitExists("unit-1", true)

	err := s.repos.UnitRepo.ReleaseUnit(s.ctx, s.tenantID, "unit-1", s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestMarkUnitSold_StoreFailure() {
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnError(errors.New("connection reset"))

	err := s.repos.UnitRepo.MarkUnitSold(s.ctx, s.tenantID, "unit-1", s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrInternal)
}

func (s *RepositoryTestSuite) TestCancelBooking() {
	s.mock.ExpectExec(q(`UPDATE bookings SET status = 'Cancelled'`)).
		WithArgs(s.tenantID, "booking-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(s.T(), s.repos.BookingRepo.CancelBooking(s.ctx, s.tenantID, "booking-1", s.userID, s.at))
}

func (s *RepositoryTestSuite) TestCancelBooking_AlreadyCancelled() {
	s.mock.ExpectExec(q(`UPDATE bookings SET status = 'Cancelled'`)).
		WithArgs(s.tenantID, "booking-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	s.mock.ExpectQuery(q(`SELECT EXISTS (SELECT 1 FROM bookings`)).
		WithArgs(s.tenantID, "booking-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err := s.repos.BookingRepo.CancelBooking(s.ctx, s.tenantID, "booking-1", s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestSaveBooking_ActiveBookingExists() {
	s.mock.ExpectExec(q(`INSERT INTO bookings`)).
		WithArgs(anyArgs("booking-2", s.tenantID, "lead-1", "unit-1", 2, "Booked", 4)...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := s.repos.BookingRepo.SaveBooking(s.ctx, domain.Booking{
		BookingID: "booking-2",
		TenantID:  s.tenantID,
		LeadID:    "lead-1",
		UnitID:    "unit-1",
		Status:    domain.BookingBooked,
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestSavePayment_UnknownBooking() {
	s.mock.ExpectExec(q(`INSERT INTO payments`)).
		WithArgs(anyArgs("pay-1", s.tenantID, "nope", 8)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := s.repos.PaymentRepo.SavePayment(s.ctx, domain.Payment{PaymentID: "pay-1", TenantID: s.tenantID, BookingID: "nope"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestSavePayment_AmountOutOfRange() {
	s.mock.ExpectExec(q(`INSERT INTO payments`)).
		WithArgs(anyArgs("pay-1", s.tenantID, "booking-1", 8)...).
		WillReturnError(&pgconn.PgError{Code: numericOutOfRange})

	err := s.repos.PaymentRepo.SavePayment(s.ctx, domain.Payment{PaymentID: "pay-1", TenantID: s.tenantID, BookingID: "booking-1"})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *RepositoryTestSuite) TestSaveBooking_PriceOutOfRange() {
	s.mock.ExpectExec(q(`INSERT INTO bookings`)).
		WithArgs(anyArgs("booking-3", s.tenantID, "lead-1", "unit-1", 2, "Booked", 4)...).
		WillReturnError(&pgconn.PgError{Code: numericOutOfRange})

	err := s.repos.BookingRepo.SaveBooking(s.ctx, domain.Booking{BookingID: "booking-3", TenantID: s.tenantID, LeadID: "lead-1", UnitID: "unit-1", Status: domain.BookingBooked})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *RepositoryTestSuite) TestSaveExpense_AmountOutOfRange() {
	s.mock.ExpectExec(q(`INSERT INTO expenses`)).
		WithArgs(anyArgs("e-2", s.tenantID, "p-1", 9)...).
		WillReturnError(&pgconn.PgError{Code: numericOutOfRange})

	err := s.repos.ExpenseRepo.SaveExpense(s.ctx, domain.Expense{ExpenseID: "e-2", TenantID: s.tenantID, ProjectID: "p-1"})
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *RepositoryTestSuite) TestSaveUser_DuplicateEmail() {
	s.mock.ExpectExec(q(`INSERT INTO users`)).
		WithArgs("user-2", s.tenantID, "", "a@b.c", "", "staff", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := s.repos.UserRepo.SaveUser(s.ctx, domain.User{UserID: "user-2", TenantID: s.tenantID, Email: "a@b.c", Role: domain.RoleStaff})
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestFindUserByEmail_NormalizesAndMapsNoRows() {
	s.mock.ExpectQuery(q(`WHERE lower(u.email) = $1`)).
		WithArgs("owner@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.repos.UserRepo.FindUserByEmail(s.ctx, "  Owner@Example.com ")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestListProjects_NewestFirst() {
	columns := []string{"project_id", "tenant_id", "name", "location", "total_units", "created_at", "created_by", "last_updated_at", "last_updated_by"}
	s.mock.ExpectQuery(q(`ORDER BY p.created_at DESC, p.project_id DESC`)).
		WithArgs(s.tenantID).
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("p-2", s.tenantID, "Green Heights", "Pune", 40, s.at.Add(time.Hour), s.userID, s.at.Add(time.Hour), s.userID).
			AddRow("p-1", s.tenantID, "Lake View", "Nashik", 24, s.at, s.userID, s.at, s.userID))

	projects, err := s.repos.ProjectRepo.ListProjects(s.ctx, s.tenantID)
	require.NoError(s.T(), err)
	require.Len(s.T(), projects, 2)
	assert.Equal(s.T(), "p-2", projects[0].ProjectID)
	assert.Equal(s.T(), 40, projects[0].TotalUnits)
	assert.Equal(s.T(), "Lake View", projects[1].Name)
}

func (s *RepositoryTestSuite) TestListProjects_EmptyIsNotNil() {
	columns := []string{"project_id", "tenant_id", "name", "location", "total_units", "created_at", "created_by", "last_updated_at", "last_updated_by"}
	s.mock.ExpectQuery(q(`FROM projects p`)).
		WithArgs(s.tenantID).
		WillReturnRows(pgxmock.NewRows(columns))

	projects, err := s.repos.ProjectRepo.ListProjects(s.ctx, s.tenantID)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), projects)
	assert.Empty(s.T(), projects)
}

func (s *RepositoryTestSuite) TestFindProjectByID_NotFound() {
	s.mock.ExpectQuery(q(`WHERE p.tenant_id = $1 AND p.project_id = $2`)).
		WithArgs(s.tenantID, "p-x").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.repos.ProjectRepo.FindProjectByID(s.ctx, s.tenantID, "p-x")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestSaveExpense_ProjectOfOtherTenant() {
	s.mock.ExpectExec(q(`INSERT INTO expenses`)).
		WithArgs(anyArgs("e-1", s.tenantID, "p-other", 9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	err := s.repos.ExpenseRepo.SaveExpense(s.ctx, domain.Expense{ExpenseID: "e-1", TenantID: s.tenantID, ProjectID: "p-other"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestSaveUnit_DuplicateNumber() {
	s.mock.ExpectExec(q(`INSERT INTO units`)).
		WithArgs(anyArgs("u-2", s.tenantID, "p-1", 2, "A-101", 3, "Available", 4)...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := s.repos.UnitRepo.SaveUnit(s.ctx, domain.Unit{UnitID: "u-2", TenantID: s.tenantID, ProjectID: "p-1", UnitNumber: "A-101", Status: domain.UnitAvailable})
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestUpdateLeadStatus_NotFound() {
	s.mock.ExpectExec(q(`UPDATE leads SET status = $3`)).
		WithArgs(s.tenantID, "lead-x", "Lost", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.repos.LeadRepo.UpdateLeadStatus(s.ctx, s.tenantID, "lead-x", domain.LeadLost, s.userID, s.at)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *RepositoryTestSuite) TestAppendLeadNote_SingleStatement() {
	note := domain.LeadNote{Note: "called, wants 3BHK", Date: s.at}
	s.mock.ExpectExec(q(`SET notes = notes || $3::jsonb`)).
		WithArgs(s.tenantID, "lead-1", []domain.LeadNote{note}, s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(s.T(), s.repos.LeadRepo.AppendLeadNote(s.ctx, s.tenantID, "lead-1", note, s.userID))
}

func (s *RepositoryTestSuite) TestUpdateLeadFollowUp_Clear() {
	s.mock.ExpectExec(q(`UPDATE leads SET follow_up_date = $3`)).
		WithArgs(s.tenantID, "lead-1", (*time.Time)(nil), s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(s.T(), s.repos.LeadRepo.UpdateLeadFollowUp(s.ctx, s.tenantID, "lead-1", nil, s.userID, s.at))
}

func (s *RepositoryTestSuite) TestListLeads_InvalidToken() {
	bad := "not-a-token!"
	_, _, err := s.repos.LeadRepo.ListLeads(s.ctx, s.tenantID, 10, &bad)
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *RepositoryTestSuite) TestWithinTransaction_Commit() {
	s.mock.ExpectBeginTx(pgx.TxOptions{})
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectCommit()

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		return s.repos.UnitRepo.MarkUnitSold(ctx, s.tenantID, "unit-1", s.userID, s.at)
	})
	assert.NoError(s.T(), err)
}

func (s *RepositoryTestSuite) TestWithinTransaction_RollbackKeepsCause() {
	s.mock.ExpectBeginTx(pgx.TxOptions{})
	s.mock.ExpectExec(q(`UPDATE units SET status = 'Sold'`)).
		WithArgs(s.tenantID, "unit-1", s.at, s.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	s.mock.ExpectExec(q(`INSERT INTO bookings`)).
		WithArgs(anyArgs("b-1", s.tenantID, "lead-1", "unit-1", 2, "Booked", 4)...).
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})
	s.mock.ExpectRollback()

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.repos.UnitRepo.MarkUnitSold(ctx, s.tenantID, "unit-1", s.userID, s.at); err != nil {
			return err
		}
		return s.repos.BookingRepo.SaveBooking(ctx, domain.Booking{BookingID: "b-1", TenantID: s.tenantID, UnitID: "unit-1", LeadID: "lead-1", Status: domain.BookingBooked})
	})
	assert.ErrorIs(s.T(), err, apperrors.ErrConflict)
}

func (s *RepositoryTestSuite) TestWithinTransaction_NestedJoinsOuter() {
	s.mock.ExpectBeginTx(pgx.TxOptions{})
	s.mock.ExpectCommit()

	calls := 0
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context) error {
		return s.repos.TxManager.WithinTransaction(ctx, func(context.Context) error {
			calls++
			return nil
		})
	})
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 1, calls)
}
