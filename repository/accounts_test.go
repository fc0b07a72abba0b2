package repository

import (
	"context"
	"testing"
	"time"

	"notesapp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAccountsRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	account := &model.Account{
		ID:        "u1",
		FullName:  "Ada Lovelace",
		Email:     "ada@example.com",
		Password:  "salt$hash",
		CreatedOn: time.Now().UTC(),
	}

	mt.Run("CreateAccount", func(mt *mtest.T) {
		repo := &AccountsRepo{MongoCollection: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.CreateAccount(ctx, account))
	})

	mt.Run("CreateAccountDuplicateEmail", func(mt *mtest.T) {
		repo := &AccountsRepo{MongoCollection: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: notes_app.users index: unique_email",
		}))

		err := repo.CreateAccount(ctx, account)
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})

	mt.Run("FindByEmail", func(mt *mtest.T) {
		repo := &AccountsRepo{MongoCollection: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "u1"},
			{Key: "fullName", Value: "Ada Lovelace"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "salt$hash"},
			{Key: "createdOn", Value: account.CreatedOn},
		}))

		found, err := repo.FindByEmail(ctx, "ada@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "u1", found.ID)
		assert.Equal(mt, "salt$hash", found.Password)
		assert.Equal(mt, "ada@example.com", mt.GetStartedEvent().Command.Lookup("filter", "email").StringValue())
	})

	mt.Run("FindByIDNotFound", func(mt *mtest.T) {
		repo := &AccountsRepo{MongoCollection: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(mt, err, ErrAccountNotFound)
	})
}
