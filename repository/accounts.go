package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notesapp/model"
	"notesapp/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AccountsRepo struct {
	MongoCollection *mongo.Collection
	timeout         time.Duration
}

func NewAccountsRepo(db *mongo.Database, collection string, timeout time.Duration) *AccountsRepo {
	return &AccountsRepo{
		MongoCollection: db.Collection(collection),
		timeout:         timeout,
	}
}

func (r *AccountsRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// CreateAccount inserts the account. Email uniqueness is enforced by the
// unique index, so a concurrent duplicate still fails with ErrDuplicateEmail.
func (r *AccountsRepo) CreateAccount(ctx context.Context, account *model.Account) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.TrackError("database", "duplicate_email")
			return ErrDuplicateEmail
		}
		utils.TrackError("database", "account_creation_failed")
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *AccountsRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountsRepo) FindByID(ctx context.Context, id string) (*model.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountsRepo) findOne(ctx context.Context, filter bson.M) (*model.Account, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var account model.Account
	err := r.MongoCollection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		utils.TrackError("database", "account_lookup_error")
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}
