package leadview

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
)

// fakeFetcher serves canned leads and can block a fetch until released,
// or fail deletes on demand.
type fakeFetcher struct {
	mu      sync.Mutex
	leads   []Lead
	block   chan struct{}
	deleted []string
	delErr  error
}

func (f *fakeFetcher) FetchLeads(ctx context.Context, vc ViewContext) ([]Lead, error) {
	f.mu.Lock()
	leads := f.leads
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return leads, nil
}

func (f *fakeFetcher) DeleteLead(ctx context.Context, loanID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, loanID)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func engineLeads(ids ...string) []Lead {
	leads := make([]Lead, 0, len(ids))
	for _, id := range ids {
		leads = append(leads, Lead{LoanID: id, CreatedBy: "u1", Data: map[string]interface{}{}})
	}
	return leads
}

func TestEngineRefreshAndView(t *testing.T) {
	f := &fakeFetcher{leads: engineLeads("L1", "L2", "L3")}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())

	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	state := e.View()
	if state.Total != 3 || len(state.Rows) != 3 {
		t.Fatalf("expected 3 rows, got total=%d rows=%d", state.Total, len(state.Rows))
	}
	if state.Page != 1 || state.TotalPages != 1 {
		t.Fatalf("unexpected pagination: %+v", state)
	}
}

func TestEngineStaleFetchDiscarded(t *testing.T) {
	slow := make(chan struct{})
	f := &fakeFetcher{leads: engineLeads("OLD"), block: slow}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = e.Refresh(context.Background())
	}()

	// A newer fetch completes while the first is still in flight.
	f.mu.Lock()
	f.leads = engineLeads("NEW-1", "NEW-2")
	f.block = nil
	f.mu.Unlock()
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}

	close(slow)
	<-done

	state := e.View()
	if state.Total != 2 {
		t.Fatalf("stale fetch overwrote newer state: total=%d", state.Total)
	}
}

func TestEngineDeleteFailureLeavesCollection(t *testing.T) {
	f := &fakeFetcher{leads: engineLeads("L1", "L2")}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	f.mu.Lock()
	f.delErr = errors.New("upstream said no")
	f.mu.Unlock()

	if err := e.Delete(context.Background(), "L1"); err == nil {
		t.Fatal("expected delete error to surface")
	}
	state := e.View()
	if state.Total != 2 {
		t.Fatalf("failed delete must not shrink the collection: total=%d", state.Total)
	}
}

func TestEngineDeleteSuccessRefreshes(t *testing.T) {
	f := &fakeFetcher{leads: engineLeads("L1", "L2")}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	f.mu.Lock()
	f.leads = engineLeads("L2")
	f.mu.Unlock()

	if err := e.Delete(context.Background(), "L1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	f.mu.Lock()
	deleted := append([]string(nil), f.deleted...)
	f.mu.Unlock()
	if len(deleted) != 1 || deleted[0] != "L1" {
		t.Fatalf("unexpected delete calls: %v", deleted)
	}
	if state := e.View(); state.Total != 1 {
		t.Fatalf("expected refreshed collection after delete: total=%d", state.Total)
	}
}

func TestEngineFilterChangeResetsPage(t *testing.T) {
	f := &fakeFetcher{leads: engineLeads("L1", "L2", "L3", "L4", "L5")}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	e.SetPageSize(2)
	e.SetPage(3)
	if state := e.View(); state.Page != 3 {
		t.Fatalf("expected page 3, got %d", state.Page)
	}

	e.SetFilters(FilterState{Search: "L"})
	if state := e.View(); state.Page != 1 {
		t.Fatalf("filter change must reset to page 1, got %d", state.Page)
	}
}

func TestEnginePageSizeChangeResetsPage(t *testing.T) {
	f := &fakeFetcher{leads: engineLeads("L1", "L2", "L3", "L4")}
	e := NewEngine(f, ViewContext{ActingUserID: "u1"}, testLogger())
	if err := e.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	e.SetPageSize(2)
	e.SetPage(2)
	e.SetPageSize(3)
	if state := e.View(); state.Page != 1 {
		t.Fatalf("page size change must reset to page 1, got %d", state.Page)
	}
}
