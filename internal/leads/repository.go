package leads

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tharun-codes/wheelswebb/internal/models"
)

type Repository interface {
	Create(ctx context.Context, lead Lead) error
	UpdateData(ctx context.Context, loanID string, set bson.M) (Lead, error)
	Delete(ctx context.Context, loanID string) (bool, error)
	FindByLoanID(ctx context.Context, loanID string) (Lead, error)
	ListVisible(ctx context.Context, q ListQuery) ([]Lead, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, lead Lead) error {
	_, err := r.col.InsertOne(ctx, lead)
	return err
}

func (r *MongoRepository) UpdateData(ctx context.Context, loanID string, set bson.M) (Lead, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": set}

	var updated Lead
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"loan_id": loanID}, update, opts).Decode(&updated); err != nil {
		return Lead{}, err
	}
	return updated, nil
}

func (r *MongoRepository) Delete(ctx context.Context, loanID string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"loan_id": loanID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoRepository) FindByLoanID(ctx context.Context, loanID string) (Lead, error) {
	var lead Lead
	if err := r.col.FindOne(ctx, bson.M{"loan_id": loanID}).Decode(&lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (r *MongoRepository) ListVisible(ctx context.Context, q ListQuery) ([]Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, visibleQuery(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]Lead, 0)
	for cursor.Next(ctx) {
		var lead Lead
		if err := cursor.Decode(&lead); err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// visibleQuery translates role-scoped visibility into a Mongo filter:
// admins see everything (or one user's hierarchy subset via viewUser),
// managers see their own leads plus those created under them, employees
// likewise, dealers only their own.
func visibleQuery(q ListQuery) bson.M {
	switch q.Role {
	case models.RoleAdmin:
		if q.ViewUser != "" {
			return bson.M{"$or": []bson.M{
				{"created_by": q.ViewUser},
				{"manager_id": q.ViewUser},
				{"employee_id": q.ViewUser},
			}}
		}
		return bson.M{}
	case models.RoleManager:
		return bson.M{"$or": []bson.M{
			{"created_by": q.UserID},
			{"manager_id": q.UserID},
		}}
	case models.RoleEmployee:
		return bson.M{"$or": []bson.M{
			{"created_by": q.UserID},
			{"employee_id": q.UserID},
		}}
	default:
		return bson.M{"created_by": q.UserID}
	}
}
