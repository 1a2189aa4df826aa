package leads

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tharun-codes/wheelswebb/internal/models"
)

var (
	ErrNotFound       = errors.New("lead not found")
	ErrUnknownCreator = errors.New("creator not found")
)

// UserDirectory resolves a creator so leads can be stamped with the
// manager/employee linkage of the user who submitted them.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type Service struct {
	repo     Repository
	users    UserDirectory
	location *time.Location
}

func NewService(repo Repository, users UserDirectory, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		location: location,
	}
}

// Create stores a new lead. The loan id comes from the submitted form when
// present (the form pre-generates one) and is generated otherwise. Hierarchy
// stamping: an employee's lead carries their manager, a dealer's lead
// carries the dealer's employee and that employee's manager.
func (s *Service) Create(ctx context.Context, in CreateInput) (Lead, error) {
	creator, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return Lead{}, ErrUnknownCreator
	}

	data := make(map[string]interface{}, len(in.Data))
	for k, v := range in.Data {
		data[k] = v
	}
	// Session fields ride along in the form post; they are not lead data.
	delete(data, "userId")
	delete(data, "role")

	loanID := ""
	if raw, ok := data["loanId"].(string); ok {
		loanID = strings.TrimSpace(raw)
	}
	if loanID == "" {
		loanID = newLoanID()
	}

	now := time.Now().In(s.location)
	lead := Lead{
		ID:          primitive.NewObjectID().Hex(),
		LoanID:      loanID,
		CreatedBy:   creator.ID,
		CreatorRole: creator.Role,
		Data:        data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch creator.Role {
	case models.RoleManager:
		lead.ManagerID = creator.ID
	case models.RoleEmployee:
		lead.EmployeeID = creator.ID
		lead.ManagerID = creator.ManagerID
	case models.RoleDealer:
		lead.EmployeeID = creator.EmployeeID
		lead.ManagerID = creator.ManagerID
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// Update merges new form data into an existing lead. Hierarchy identifiers
// are never part of the update set.
func (s *Service) Update(ctx context.Context, loanID string, data map[string]interface{}) (Lead, error) {
	merged := make(map[string]interface{}, len(data))
	for k, v := range data {
		merged[k] = v
	}
	delete(merged, "userId")
	delete(merged, "role")

	set := bson.M{
		"data":      merged,
		"updatedAt": time.Now().In(s.location),
	}

	updated, err := s.repo.UpdateData(ctx, strings.TrimSpace(loanID), set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, loanID string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(loanID))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Get(ctx context.Context, loanID string) (Lead, error) {
	lead, err := s.repo.FindByLoanID(ctx, strings.TrimSpace(loanID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Lead{}, ErrNotFound
		}
		return Lead{}, err
	}
	return lead, nil
}

func (s *Service) ListVisible(ctx context.Context, q ListQuery) ([]Lead, error) {
	if q.Role != models.RoleAdmin {
		q.ViewUser = ""
	}
	return s.repo.ListVisible(ctx, q)
}

// newLoanID follows the form's scheme: millisecond timestamp plus a short
// random suffix. Uniqueness is enforced by the loan_id index.
func newLoanID() string {
	return fmt.Sprintf("%d%03d", time.Now().UnixMilli(), rand.Intn(1000))
}
