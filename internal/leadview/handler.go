package leadview

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tharun-codes/wheelswebb/internal/httpx"
	"github.com/Tharun-codes/wheelswebb/internal/leads"
	"github.com/Tharun-codes/wheelswebb/internal/middleware"
	"github.com/Tharun-codes/wheelswebb/internal/transport"
)

const maxPageSize = 100

// Handler serves the cases table. Each request builds a fresh engine for
// the acting session: resolve scope, fetch, filter, paginate, project.
type Handler struct {
	fetcher Fetcher
	log     *slog.Logger
}

func NewHandler(fetcher Fetcher, log *slog.Logger) *Handler {
	return &Handler{
		fetcher: fetcher,
		log:     log,
	}
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	params := r.URL.Query()

	vc, err := Resolve(middleware.PrincipalFromContext(r.Context()), params)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			log.Warn("cases view: no session")
			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	page, pageSize, err := httpx.ParsePage(params, DefaultPageSize, maxPageSize)
	if err != nil {
		log.Warn("cases view: invalid paging", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	engine := NewEngine(h.fetcher, vc, log)
	if err := engine.Refresh(ctx); err != nil {
		log.Error("cases view: refresh failed", slog.String("error", err.Error()))
	}
	engine.SetFilters(FilterState{
		Role:   strings.TrimSpace(params.Get("filterRole")),
		User:   strings.TrimSpace(params.Get("filterUser")),
		Stage:  strings.TrimSpace(params.Get("stage")),
		Search: strings.TrimSpace(params.Get("search")),
	})
	engine.SetPageSize(pageSize)
	engine.SetPage(page)

	view := engine.View()
	log.Info("cases view: ok",
		slog.String("scope", vc.Scope.String()),
		slog.Int("total", view.Total),
		slog.Int("page", view.Page),
	)
	transport.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	claims := middleware.PrincipalFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	loanID := strings.TrimSpace(chi.URLParam(r, "loanID"))
	if loanID == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing loan id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.fetcher.DeleteLead(ctx, loanID); err != nil {
		if errors.Is(err, leads.ErrNotFound) {
			log.Warn("cases delete: not found", slog.String("loan_id", loanID))
			transport.WriteError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		// The table keeps the row; the client shows a non-fatal notice.
		log.Error("cases delete: failed", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadGateway, "delete failed", nil)
		return
	}

	log.Info("cases delete: ok", slog.String("loan_id", loanID))
	transport.WriteStatus(w, http.StatusOK, "deleted")
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
