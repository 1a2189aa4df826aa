package leads

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tharun-codes/wheelswebb/internal/models"
)

type fakeRepo struct {
	created   []Lead
	createErr error

	updatedLoanID string
	updatedSet    bson.M
	updateErr     error

	deletedLoanID string
	deleteHit     bool
	deleteErr     error

	listQuery ListQuery
	listOut   []Lead
}

func (r *fakeRepo) Create(ctx context.Context, lead Lead) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, lead)
	return nil
}

func (r *fakeRepo) UpdateData(ctx context.Context, loanID string, set bson.M) (Lead, error) {
	if r.updateErr != nil {
		return Lead{}, r.updateErr
	}
	r.updatedLoanID = loanID
	r.updatedSet = set
	return Lead{LoanID: loanID, Data: set["data"].(map[string]interface{})}, nil
}

func (r *fakeRepo) Delete(ctx context.Context, loanID string) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	r.deletedLoanID = loanID
	return r.deleteHit, nil
}

func (r *fakeRepo) FindByLoanID(ctx context.Context, loanID string) (Lead, error) {
	for _, l := range r.listOut {
		if l.LoanID == loanID {
			return l, nil
		}
	}
	return Lead{}, mongo.ErrNoDocuments
}

func (r *fakeRepo) ListVisible(ctx context.Context, q ListQuery) ([]Lead, error) {
	r.listQuery = q
	return r.listOut, nil
}

type fakeDirectory struct {
	users map[string]models.User
}

func (d *fakeDirectory) GetByID(ctx context.Context, id string) (models.User, error) {
	u, ok := d.users[id]
	if !ok {
		return models.User{}, errors.New("no such user")
	}
	return u, nil
}

func newTestService(repo *fakeRepo, dir *fakeDirectory) *Service {
	return NewService(repo, dir, time.UTC)
}

func TestCreateStampsManagerLead(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"mgr2": {ID: "mgr2", Role: models.RoleManager},
	}}
	svc := newTestService(repo, dir)

	lead, err := svc.Create(context.Background(), CreateInput{
		UserID: "mgr2",
		Role:   models.RoleManager,
		Data:   map[string]interface{}{"name": "Ram Kumar"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.CreatedBy != "mgr2" || lead.ManagerID != "mgr2" || lead.EmployeeID != "" {
		t.Fatalf("unexpected hierarchy: %+v", lead)
	}
	if lead.CreatorRole != models.RoleManager {
		t.Fatalf("unexpected creator role: %q", lead.CreatorRole)
	}
}

func TestCreateStampsEmployeeLead(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"emp7": {ID: "emp7", Role: models.RoleEmployee, ManagerID: "mgr2"},
	}}
	svc := newTestService(repo, dir)

	lead, err := svc.Create(context.Background(), CreateInput{
		UserID: "emp7",
		Data:   map[string]interface{}{},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.EmployeeID != "emp7" || lead.ManagerID != "mgr2" {
		t.Fatalf("employee lead must carry the manager link: %+v", lead)
	}
}

func TestCreateStampsDealerLead(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"dlr3": {ID: "dlr3", Role: models.RoleDealer, EmployeeID: "emp7", ManagerID: "mgr2"},
	}}
	svc := newTestService(repo, dir)

	lead, err := svc.Create(context.Background(), CreateInput{UserID: "dlr3", Data: map[string]interface{}{}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.CreatedBy != "dlr3" || lead.EmployeeID != "emp7" || lead.ManagerID != "mgr2" {
		t.Fatalf("dealer lead must carry employee and manager links: %+v", lead)
	}
}

func TestCreateUnknownCreator(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeDirectory{users: map[string]models.User{}})
	if _, err := svc.Create(context.Background(), CreateInput{UserID: "ghost"}); !errors.Is(err, ErrUnknownCreator) {
		t.Fatalf("expected ErrUnknownCreator, got %v", err)
	}
}

func TestCreateLoanIDFromForm(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"mgr2": {ID: "mgr2", Role: models.RoleManager},
	}}
	svc := newTestService(repo, dir)

	lead, err := svc.Create(context.Background(), CreateInput{
		UserID: "mgr2",
		Data:   map[string]interface{}{"loanId": " FORM-42 "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if lead.LoanID != "FORM-42" {
		t.Fatalf("expected trimmed form loan id, got %q", lead.LoanID)
	}
}

func TestCreateGeneratesLoanID(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"mgr2": {ID: "mgr2", Role: models.RoleManager},
	}}
	svc := newTestService(repo, dir)

	lead, err := svc.Create(context.Background(), CreateInput{UserID: "mgr2", Data: map[string]interface{}{}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(lead.LoanID) < 13 {
		t.Fatalf("expected generated loan id, got %q", lead.LoanID)
	}
}

func TestCreateStripsSessionFields(t *testing.T) {
	repo := &fakeRepo{}
	dir := &fakeDirectory{users: map[string]models.User{
		"mgr2": {ID: "mgr2", Role: models.RoleManager},
	}}
	svc := newTestService(repo, dir)

	in := CreateInput{
		UserID: "mgr2",
		Data:   map[string]interface{}{"userId": "mgr2", "role": "manager", "name": "Ram Kumar"},
	}
	lead, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, ok := lead.Data["userId"]; ok {
		t.Fatal("userId must not be stored as lead data")
	}
	if _, ok := lead.Data["role"]; ok {
		t.Fatal("role must not be stored as lead data")
	}
	if lead.Data["name"] != "Ram Kumar" {
		t.Fatalf("form data lost: %+v", lead.Data)
	}
	// The caller's map stays untouched.
	if _, ok := in.Data["userId"]; !ok {
		t.Fatal("input map must not be mutated")
	}
}

func TestUpdateNeverTouchesHierarchy(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeDirectory{})

	_, err := svc.Update(context.Background(), "L1", map[string]interface{}{
		"name":   "Ram Kumar",
		"userId": "someone-else",
		"role":   "admin",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updatedLoanID != "L1" {
		t.Fatalf("unexpected loan id: %q", repo.updatedLoanID)
	}
	for _, key := range []string{"created_by", "manager_id", "employee_id", "creator_role"} {
		if _, ok := repo.updatedSet[key]; ok {
			t.Fatalf("update set must not contain %q", key)
		}
	}
	data := repo.updatedSet["data"].(map[string]interface{})
	if _, ok := data["userId"]; ok {
		t.Fatal("session fields must be stripped from updates")
	}
	if _, ok := repo.updatedSet["updatedAt"]; !ok {
		t.Fatal("updates must refresh updatedAt")
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := &fakeRepo{updateErr: mongo.ErrNoDocuments}
	svc := newTestService(repo, &fakeDirectory{})
	if _, err := svc.Update(context.Background(), "gone", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissesReportNotFound(t *testing.T) {
	repo := &fakeRepo{deleteHit: false}
	svc := newTestService(repo, &fakeDirectory{})
	if err := svc.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListVisibleClearsViewUserForNonAdmins(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo, &fakeDirectory{})

	if _, err := svc.ListVisible(context.Background(), ListQuery{UserID: "mgr2", Role: models.RoleManager, ViewUser: "emp7"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listQuery.ViewUser != "" {
		t.Fatalf("non-admin viewUser must be dropped, got %q", repo.listQuery.ViewUser)
	}

	if _, err := svc.ListVisible(context.Background(), ListQuery{UserID: "admin1", Role: models.RoleAdmin, ViewUser: "emp7"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listQuery.ViewUser != "emp7" {
		t.Fatalf("admin viewUser must pass through, got %q", repo.listQuery.ViewUser)
	}
}
