package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/salary-api/internal/core/domain"
)

const collectionSalaries = "salaries"

type SalaryRepository struct {
	col *mongo.Collection
}

func NewSalaryRepository(db *mongo.Database) *SalaryRepository {
	return &SalaryRepository{col: db.Collection(collectionSalaries)}
}

// FindByOwner retrieves the salary record owned by the given username.
func (r *SalaryRepository) FindByOwner(ctx context.Context, owner string) (*domain.Salary, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Salary
	err := r.col.FindOne(ctx, bson.M{"owner": owner}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSalaryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// EnsureIndexes makes owner unique: a user has at most one salary record.
func (r *SalaryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_owner"),
	})
	if err != nil {
		return fmt.Errorf("create salaries index: %w", err)
	}
	return nil
}
