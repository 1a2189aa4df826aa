package leadview

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tharun-codes/wheelswebb/internal/leads"
	"github.com/Tharun-codes/wheelswebb/internal/models"
)

// LocalFetcher serves the view engine straight from the in-process lead
// service, skipping the HTTP hop when the dashboard and the leads API are
// one binary.
type LocalFetcher struct {
	service *leads.Service
	log     *slog.Logger
}

func NewLocalFetcher(service *leads.Service, log *slog.Logger) *LocalFetcher {
	return &LocalFetcher{
		service: service,
		log:     log,
	}
}

func (f *LocalFetcher) FetchLeads(ctx context.Context, vc ViewContext) ([]Lead, error) {
	q := leads.ListQuery{
		UserID: vc.ActingUserID,
		Role:   vc.ActingRole,
	}
	if vc.Scope == ScopeAdminViewOther {
		q.Role = models.RoleAdmin
		q.ViewUser = vc.ScopeTarget
	}

	items, err := f.service.ListVisible(ctx, q)
	if err != nil {
		f.log.Error("local lead fetch failed", slog.String("error", err.Error()))
		return []Lead{}, nil
	}

	out := make([]Lead, 0, len(items))
	for _, item := range items {
		out = append(out, fromStored(item))
	}
	return out, nil
}

func (f *LocalFetcher) DeleteLead(ctx context.Context, loanID string) error {
	return f.service.Delete(ctx, loanID)
}

func fromStored(l leads.Lead) Lead {
	return Lead{
		LoanID:      l.LoanID,
		CreatedBy:   l.CreatedBy,
		ManagerID:   l.ManagerID,
		EmployeeID:  l.EmployeeID,
		CreatorRole: l.CreatorRole,
		Data:        l.Data,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   l.UpdatedAt.Format(time.RFC3339),
	}
}
