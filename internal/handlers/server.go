package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Tharun-codes/wheelswebb/internal/auth"
	"github.com/Tharun-codes/wheelswebb/internal/cache"
	"github.com/Tharun-codes/wheelswebb/internal/config"
	"github.com/Tharun-codes/wheelswebb/internal/db"
	"github.com/Tharun-codes/wheelswebb/internal/middleware"
	"github.com/Tharun-codes/wheelswebb/internal/validation"
)

type Server struct {
	Cfg   *config.Config
	Cols  *db.Collections
	Val   *validation.Validator
	Log   *slog.Logger
	Cache cache.Cache
	JWT   *auth.Manager
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
