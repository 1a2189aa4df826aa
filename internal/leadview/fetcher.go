package leadview

import "context"

// Fetcher supplies the engine with its lead collection and executes row
// deletions. Implementations: Client (remote leads API) and LocalFetcher
// (in-process lead service).
type Fetcher interface {
	// FetchLeads returns the leads visible under vc. Implementations are
	// fail-soft: backend trouble yields an empty slice, not an error, so a
	// flaky upstream degrades to an empty table instead of a broken page.
	FetchLeads(ctx context.Context, vc ViewContext) ([]Lead, error)
	// DeleteLead removes one lead by loan id. Unlike fetching, failures are
	// surfaced: the caller must know the row was not removed.
	DeleteLead(ctx context.Context, loanID string) error
}
