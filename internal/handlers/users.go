package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tharun-codes/wheelswebb/internal/auth"
	"github.com/Tharun-codes/wheelswebb/internal/models"
	"github.com/Tharun-codes/wheelswebb/internal/transport"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,role"`
	// Hierarchy linkage: the manager an employee reports to, the employee a
	// dealer submits through.
	ManagerID  string `json:"managerId"`
	EmployeeID string `json:"employeeId"`
}

// AllUsers serves the role/user filter dropdowns: a plain array of
// {id, username, role}, sorted by username.
func (s *Server) AllUsers(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := s.Cols.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("all users: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	users := make([]models.UserRef, 0)
	for cursor.Next(ctx) {
		var u models.UserRef
		if err := cursor.Decode(&u); err != nil {
			log.Error("all users: decode error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
			return
		}
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		log.Error("all users: cursor error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("all users: ok", slog.Int("count", len(users)))
	transport.WriteJSON(w, http.StatusOK, users)
}

func (s *Server) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("user create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("user create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", validationDetails(s.Val.ValidationErrors(err)))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("user create: hash error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "password error", nil)
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	user := models.User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		ManagerID:    strings.TrimSpace(req.ManagerID),
		EmployeeID:   strings.TrimSpace(req.EmployeeID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.Cols.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("user create: duplicate", slog.String("username", req.Username))
			transport.WriteError(w, http.StatusConflict, "username already exists", nil)
			return
		}
		log.Error("user create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("user create: ok", slog.String("user_id", user.ID), slog.String("role", user.Role))
	transport.WriteJSON(w, http.StatusCreated, user)
}

// UserDirectory adapts the users collection for the lead service's creator
// lookups.
type UserDirectory struct {
	Cols *mongo.Collection
}

func (d *UserDirectory) GetByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := d.Cols.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
