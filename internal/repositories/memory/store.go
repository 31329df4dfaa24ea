// Package memory is an in-process record store. It backs the service when no
// database is configured and drives the scenario tests of the service layer.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/builder_crm/internal/core/ports/repositories"
)

// Store keeps every tenant's records in maps guarded by a single lock.
type Store struct {
	mu       sync.RWMutex
	tenants  map[string]domain.Tenant
	users    map[string]domain.User
	projects map[string]domain.Project
	units    map[string]domain.Unit
	leads    map[string]domain.Lead
	bookings map[string]domain.Booking
	payments map[string]domain.Payment
	expenses map[string]domain.Expense
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tenants:  make(map[string]domain.Tenant),
		users:    make(map[string]domain.User),
		projects: make(map[string]domain.Project),
		units:    make(map[string]domain.Unit),
		leads:    make(map[string]domain.Lead),
		bookings: make(map[string]domain.Booking),
		payments: make(map[string]domain.Payment),
		expenses: make(map[string]domain.Expense),
	}
}

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:   store,
		TenantRepo:  store,
		UserRepo:    store,
		ProjectRepo: store,
		UnitRepo:    store,
		LeadRepo:    store,
		BookingRepo: store,
		PaymentRepo: store,
		ExpenseRepo: store,
		LedgerRepo:  store,
	}
}

var (
	_ portsrepo.TransactionManager      = (*Store)(nil)
	_ portsrepo.TenantRepositoryFacade  = (*Store)(nil)
	_ portsrepo.UserRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ProjectRepositoryFacade = (*Store)(nil)
	_ portsrepo.UnitRepositoryFacade    = (*Store)(nil)
	_ portsrepo.LeadRepositoryFacade    = (*Store)(nil)
	_ portsrepo.BookingRepositoryFacade = (*Store)(nil)
	_ portsrepo.PaymentRepositoryFacade = (*Store)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerRepository        = (*Store)(nil)
)

type undoCtxKey struct{}

// undoLog collects compensating actions for the writes of one unit of work.
type undoLog struct {
	mu      sync.Mutex
	actions []func()
}

func (l *undoLog) push(action func()) {
	l.mu.Lock()
	l.actions = append(l.actions, action)
	l.mu.Unlock()
}

// WithinTransaction runs fn and, if it fails, undoes every write fn made
// through its ctx in reverse order.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, nested := ctx.Value(undoCtxKey{}).(*undoLog); nested {
		return fn(ctx)
	}

	undo := &undoLog{}
	if err := fn(context.WithValue(ctx, undoCtxKey{}, undo)); err != nil {
		s.mu.Lock()
		for i := len(undo.actions) - 1; i >= 0; i-- {
			undo.actions[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// recordUndo registers action if ctx belongs to a unit of work. Callers hold s.mu.
func recordUndo(ctx context.Context, action func()) {
	if undo, ok := ctx.Value(undoCtxKey{}).(*undoLog); ok {
		undo.push(action)
	}
}

// newestFirst sorts by creation time descending, then id descending.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}

func copyLead(l domain.Lead) domain.Lead {
	notes := make([]domain.LeadNote, len(l.Notes))
	copy(notes, l.Notes)
	l.Notes = notes
	if l.FollowUpDate != nil {
		at := *l.FollowUpDate
		l.FollowUpDate = &at
	}
	return l
}
