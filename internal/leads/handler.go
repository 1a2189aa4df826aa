package leads

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tharun-codes/wheelswebb/internal/httpx"
	"github.com/Tharun-codes/wheelswebb/internal/middleware"
	"github.com/Tharun-codes/wheelswebb/internal/transport"
)

type Handler struct {
	service *Service
	log     *slog.Logger
}

func NewHandler(service *Service, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// List always responds with a JSON array; an empty visibility set is an
// empty array, never an error body.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	q := ListQuery{
		UserID:   strings.TrimSpace(r.URL.Query().Get("userId")),
		Role:     strings.TrimSpace(r.URL.Query().Get("role")),
		ViewUser: strings.TrimSpace(r.URL.Query().Get("viewUser")),
	}
	if claims := middleware.PrincipalFromContext(r.Context()); claims != nil {
		// The session wins over query params; the params only exist for
		// compatibility with the dashboard's fetch URLs.
		q.UserID = claims.UserID
		q.Role = claims.Role
	}
	if q.UserID == "" || q.Role == "" {
		log.Warn("leads list: missing scope")
		transport.WriteError(w, http.StatusBadRequest, "missing userId or role", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListVisible(ctx, q)
	if err != nil {
		log.Error("leads list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("leads list: ok", slog.Int("count", len(items)), slog.String("role", q.Role))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	data, err := httpx.DecodeJSONMap(r.Body)
	if err != nil {
		log.Warn("lead create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	claims := middleware.PrincipalFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	lead, err := h.service.Create(ctx, CreateInput{
		UserID: claims.UserID,
		Role:   claims.Role,
		Data:   data,
	})
	if err != nil {
		if errors.Is(err, ErrUnknownCreator) {
			log.Warn("lead create: unknown creator", slog.String("user_id", claims.UserID))
			transport.WriteError(w, http.StatusBadRequest, "unknown creator", nil)
			return
		}
		log.Error("lead create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("lead create: ok", slog.String("loan_id", lead.LoanID), slog.String("creator_role", lead.CreatorRole))
	transport.WriteJSON(w, http.StatusCreated, lead)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	loanID := strings.TrimSpace(chi.URLParam(r, "loanID"))
	if loanID == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing loan id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	lead, err := h.service.Get(ctx, loanID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("lead get: not found", slog.String("loan_id", loanID))
			transport.WriteError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		log.Error("lead get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	loanID := strings.TrimSpace(chi.URLParam(r, "loanID"))
	if loanID == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing loan id", nil)
		return
	}

	data, err := httpx.DecodeJSONMap(r.Body)
	if err != nil {
		log.Warn("lead update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	lead, err := h.service.Update(ctx, loanID, data)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("lead update: not found", slog.String("loan_id", loanID))
			transport.WriteError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		log.Error("lead update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("lead update: ok", slog.String("loan_id", loanID))
	transport.WriteJSON(w, http.StatusOK, lead)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	loanID := strings.TrimSpace(chi.URLParam(r, "loanID"))
	if loanID == "" {
		transport.WriteError(w, http.StatusBadRequest, "missing loan id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, loanID); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("lead delete: not found", slog.String("loan_id", loanID))
			transport.WriteError(w, http.StatusNotFound, "lead not found", nil)
			return
		}
		log.Error("lead delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("lead delete: ok", slog.String("loan_id", loanID))
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
