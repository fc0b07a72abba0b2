package repository_test

import (
	"context"
	"testing"
	"time"

	"notesapp/model"
	"notesapp/repository"
	"notesapp/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoriesAgainstMongo(t *testing.T) {
	db, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	accounts := repository.NewAccountsRepo(db, "users", 5*time.Second)
	notes := repository.NewNotesRepo(db, "notes", 5*time.Second)
	require.NoError(t, repository.SetupIndexes(ctx, accounts, notes))

	t.Run("unique email index", func(t *testing.T) {
		first := &model.Account{ID: "a1", FullName: "Ann", Email: "ann@example.com", Password: "x$y", CreatedOn: time.Now().UTC()}
		second := &model.Account{ID: "a2", FullName: "Ann Again", Email: "ann@example.com", Password: "x$y", CreatedOn: time.Now().UTC()}

		require.NoError(t, accounts.CreateAccount(ctx, first))
		err := accounts.CreateAccount(ctx, second)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

		_, err = accounts.FindByID(ctx, "a2")
		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	})

	t.Run("notes are scoped to their owner", func(t *testing.T) {
		base := time.Now().UTC().Truncate(time.Millisecond)
		for i, n := range []*model.Note{
			{ID: "n1", UserID: "u1", Title: "Groceries", Content: "buy Milk", Tags: []string{}},
			{ID: "n2", UserID: "u1", Title: "Ideas", Content: "a+b (maybe)", Tags: []string{"x"}},
			{ID: "n3", UserID: "u2", Title: "milk run", Content: "", Tags: []string{}},
		} {
			n.CreatedOn = base.Add(time.Duration(i) * time.Second)
			n.UpdatedOn = n.CreatedOn
			require.NoError(t, notes.CreateNote(ctx, n))
		}

		pinned := true
		updated, err := notes.UpdateNote(ctx, "n2", "u1", model.NoteChanges{IsPinned: &pinned})
		require.NoError(t, err)
		assert.True(t, updated.IsPinned)
		assert.Equal(t, "Ideas", updated.Title)

		list, err := notes.GetUserNotes(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "n2", list[0].ID)
		assert.Equal(t, "n1", list[1].ID)

		found, err := notes.SearchNotes(ctx, "u1", "milk")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "n1", found[0].ID)

		found, err = notes.SearchNotes(ctx, "u1", "a+b (")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "n2", found[0].ID)

		_, err = notes.UpdateNote(ctx, "n3", "u1", model.NoteChanges{IsPinned: &pinned})
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)
		assert.ErrorIs(t, notes.DeleteNote(ctx, "n3", "u1"), repository.ErrNoteNotFound)

		require.NoError(t, notes.DeleteNote(ctx, "n1", "u1"))
		assert.ErrorIs(t, notes.DeleteNote(ctx, "n1", "u1"), repository.ErrNoteNotFound)
	})
}
