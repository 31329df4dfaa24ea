package memory

import (
	"context"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
)

func (s *Store) SaveProject(ctx context.Context, project domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects[project.ProjectID] = project
	recordUndo(ctx, func() { delete(s.projects, project.ProjectID) })
	return nil
}

func (s *Store) FindProjectByID(ctx context.Context, tenantID, projectID string) (*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[projectID]
	if !ok || project.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("project not found")
	}
	return &project, nil
}

func (s *Store) ListProjects(ctx context.Context, tenantID string) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Project{}
	for _, p := range s.projects {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	newestFirst(out, func(p domain.Project) time.Time { return p.CreatedAt }, func(p domain.Project) string { return p.ProjectID })
	return out, nil
}

func (s *Store) SaveExpense(ctx context.Context, expense domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.projects[expense.ProjectID]; !ok || p.TenantID != expense.TenantID {
		return apperrors.NewNotFoundError("project not found")
	}
	s.expenses[expense.ExpenseID] = expense
	recordUndo(ctx, func() { delete(s.expenses, expense.ExpenseID) })
	return nil
}

func (s *Store) ListExpensesByProject(ctx context.Context, tenantID, projectID string) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Expense{}
	for _, e := range s.expenses {
		if e.TenantID == tenantID && e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	newestFirst(out, func(e domain.Expense) time.Time { return e.CreatedAt }, func(e domain.Expense) string { return e.ExpenseID })
	return out, nil
}
