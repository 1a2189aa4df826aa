package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Tharun-codes/wheelswebb/internal/cache"
	"github.com/Tharun-codes/wheelswebb/internal/transport"
)

const disbursedStage = "Disbursed"

type DashboardTotals struct {
	DisbursedAmount float64 `json:"disbursed_amount"`
	DisbursedCases  int64   `json:"disbursed_cases"`
}

type BusinessTypeRow struct {
	LoanType string `bson:"_id" json:"loan_type"`
	Count    int64  `bson:"count" json:"count"`
}

// Dashboard aggregates disbursed totals. The dashboard polls this every few
// seconds, so the result is cached.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	var totals DashboardTotals
	if ok, _ := cache.GetJSON(ctx, s.Cache, "dashboard:totals", &totals); ok {
		transport.WriteJSON(w, http.StatusOK, totals)
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{"data.loanStage": disbursedStage}},
		{"$group": bson.M{
			"_id":    nil,
			"amount": bson.M{"$sum": bson.M{"$toDouble": bson.M{"$ifNull": []interface{}{"$data.loanAmount", 0}}}},
			"cases":  bson.M{"$sum": 1},
		}},
	}

	cursor, err := s.Cols.Leads.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error("dashboard: aggregation error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var row struct {
			Amount float64 `bson:"amount"`
			Cases  int64   `bson:"cases"`
		}
		if err := cursor.Decode(&row); err != nil {
			log.Error("dashboard: decode error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
			return
		}
		totals = DashboardTotals{DisbursedAmount: row.Amount, DisbursedCases: row.Cases}
	}

	ttl := time.Duration(s.Cfg.CacheTTLSeconds) * time.Second
	if err := cache.SetJSON(ctx, s.Cache, "dashboard:totals", totals, ttl); err != nil {
		log.Warn("dashboard: cache set failed", slog.String("error", err.Error()))
	}

	log.Info("dashboard: ok", slog.Int64("cases", totals.DisbursedCases))
	transport.WriteJSON(w, http.StatusOK, totals)
}

// DashboardBusinessType counts disbursed leads per loan type for the
// business mix bar.
func (s *Server) DashboardBusinessType(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	rows := make([]BusinessTypeRow, 0)
	if ok, _ := cache.GetJSON(ctx, s.Cache, "dashboard:business-type", &rows); ok {
		transport.WriteJSON(w, http.StatusOK, rows)
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{"data.loanStage": disbursedStage}},
		{"$group": bson.M{
			"_id":   bson.M{"$ifNull": []interface{}{"$data.loanType", "unknown"}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := s.Cols.Leads.Aggregate(ctx, pipeline)
	if err != nil {
		log.Error("dashboard business type: aggregation error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row BusinessTypeRow
		if err := cursor.Decode(&row); err != nil {
			log.Error("dashboard business type: decode error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
			return
		}
		rows = append(rows, row)
	}
	if err := cursor.Err(); err != nil {
		log.Error("dashboard business type: cursor error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	ttl := time.Duration(s.Cfg.CacheTTLSeconds) * time.Second
	if err := cache.SetJSON(ctx, s.Cache, "dashboard:business-type", rows, ttl); err != nil {
		log.Warn("dashboard business type: cache set failed", slog.String("error", err.Error()))
	}

	log.Info("dashboard business type: ok", slog.Int("types", len(rows)))
	transport.WriteJSON(w, http.StatusOK, rows)
}
