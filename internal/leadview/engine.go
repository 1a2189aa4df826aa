package leadview

import (
	"context"
	"log/slog"
	"sync"
)

// Engine owns the state of one cases view: the fetched collection, the
// active filters and the current page. The view is always re-derived from
// the latest collection plus the latest filters, never from intermediates.
type Engine struct {
	fetcher Fetcher
	log     *slog.Logger

	mu       sync.Mutex
	seq      uint64
	vc       ViewContext
	leads    []Lead
	filters  FilterState
	page     int
	pageSize int
}

// ViewState is one fully derived render of the table.
type ViewState struct {
	Rows       []Row    `json:"rows"`
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	Total      int      `json:"total"`
	Stages     []string `json:"stages"`
	Heading    string   `json:"heading,omitempty"`
}

func NewEngine(fetcher Fetcher, vc ViewContext, log *slog.Logger) *Engine {
	return &Engine{
		fetcher:  fetcher,
		log:      log,
		vc:       vc,
		page:     1,
		pageSize: DefaultPageSize,
	}
}

// Refresh replaces the collection with a fresh fetch. Each fetch is tagged
// with a monotonic sequence number; a completion that is no longer the
// newest issued fetch is discarded so late responses cannot clobber newer
// state.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	vc := e.vc
	e.mu.Unlock()

	leads, err := e.fetcher.FetchLeads(ctx, vc)
	if err != nil {
		// Fetchers are fail-soft, so an error here means the fetch could not
		// run at all. Degrade to an empty set like any other fetch failure.
		e.log.Error("lead refresh failed", slog.String("error", err.Error()))
		leads = []Lead{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		e.log.Debug("discarding stale lead fetch",
			slog.Uint64("seq", seq), slog.Uint64("latest", e.seq))
		return nil
	}
	e.leads = leads
	return nil
}

// SetFilters installs a new filter state and resets to page 1, matching the
// table behavior where any filter change restarts pagination.
func (e *Engine) SetFilters(f FilterState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters = f
	e.page = 1
}

func (e *Engine) SetPage(page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = page
}

func (e *Engine) SetPageSize(size int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if size > 0 {
		e.pageSize = size
		e.page = 1
	}
}

// View derives the current table render: filter, paginate, project.
func (e *Engine) View() ViewState {
	e.mu.Lock()
	leads := e.leads
	vc := e.vc
	filters := e.filters
	page := e.page
	pageSize := e.pageSize
	e.mu.Unlock()

	filtered := Apply(leads, vc, filters)
	p := Paginate(filtered, pageSize, page)

	return ViewState{
		Rows:       ProjectRows(p.Rows, filters.Search),
		Page:       p.Number,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Stages:     Stages(leads),
		Heading:    vc.Heading,
	}
}

// Delete removes a lead by loan id and refreshes the collection on success.
// On failure the collection is left untouched; the row stays until a
// successful re-fetch confirms removal.
func (e *Engine) Delete(ctx context.Context, loanID string) error {
	if err := e.fetcher.DeleteLead(ctx, loanID); err != nil {
		return err
	}
	return e.Refresh(ctx)
}
