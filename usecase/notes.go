package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notesapp/model"
	"notesapp/utils"
)

// NoteStore is the durable note collection. Every method that takes a
// userID must only see notes owned by that user.
type NoteStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error)
	SearchNotes(ctx context.Context, userID, query string) ([]*model.Note, error)
	UpdateNote(ctx context.Context, noteID, userID string, changes model.NoteChanges) (*model.Note, error)
	DeleteNote(ctx context.Context, noteID, userID string) error
}

type NotesService struct {
	NotesRepo NoteStore
}

type AddNoteInput struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// EditNoteInput is a partial update; nil or empty fields keep their value.
type EditNoteInput struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

var errMissingUser = errors.New("user ID is required")

func (svc *NotesService) AddNote(ctx context.Context, userID string, input AddNoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, errMissingUser
	}
	if err := utils.Validate.Struct(input); err != nil {
		return nil, fieldsError("Title and content are required", err)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	note := &model.Note{
		ID:        utils.NewID(),
		UserID:    userID,
		Title:     input.Title,
		Content:   input.Content,
		Tags:      tags,
		IsPinned:  false,
		CreatedOn: now,
		UpdatedOn: now,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	utils.TrackNoteOperation("add")
	return note, nil
}

// EditNote applies the supplied fields. At least one of title, content or
// tags must be present; isPinned alone is rejected, use SetPinned for that.
func (svc *NotesService) EditNote(ctx context.Context, userID, noteID string, input EditNoteInput) (*model.Note, error) {
	if userID == "" {
		return nil, errMissingUser
	}

	changes := model.NoteChanges{
		Title:    nonEmpty(input.Title),
		Content:  nonEmpty(input.Content),
		Tags:     input.Tags,
		IsPinned: input.IsPinned,
	}
	if changes.Title == nil && changes.Content == nil && changes.Tags == nil {
		return nil, validationError("No changes provided")
	}

	note, err := svc.NotesRepo.UpdateNote(ctx, noteID, userID, changes)
	if err != nil {
		return nil, noteError("update", err)
	}

	utils.TrackNoteOperation("edit")
	return note, nil
}

// ListNotes returns every note the user owns, pinned notes first.
func (svc *NotesService) ListNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	if userID == "" {
		return nil, errMissingUser
	}

	notes, err := svc.NotesRepo.GetUserNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if userID == "" {
		return errMissingUser
	}

	if err := svc.NotesRepo.DeleteNote(ctx, noteID, userID); err != nil {
		return noteError("delete", err)
	}

	utils.TrackNoteOperation("delete")
	return nil
}

func (svc *NotesService) SetPinned(ctx context.Context, userID, noteID string, pinned bool) (*model.Note, error) {
	if userID == "" {
		return nil, errMissingUser
	}

	note, err := svc.NotesRepo.UpdateNote(ctx, noteID, userID, model.NoteChanges{IsPinned: &pinned})
	if err != nil {
		return nil, noteError("pin", err)
	}

	utils.TrackNoteOperation("pin")
	return note, nil
}

// SearchNotes matches query as a case-insensitive substring of title or content.
func (svc *NotesService) SearchNotes(ctx context.Context, userID, query string) ([]*model.Note, error) {
	if userID == "" {
		return nil, errMissingUser
	}
	if query == "" {
		return nil, validationError("Search query is required")
	}

	notes, err := svc.NotesRepo.SearchNotes(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}

	utils.TrackNoteOperation("search")
	return notes, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func noteError(op string, err error) error {
	if errors.Is(err, ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	return fmt.Errorf("failed to %s note: %w", op, err)
}
