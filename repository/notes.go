package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"notesapp/model"
	"notesapp/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
	timeout         time.Duration
}

func NewNotesRepo(db *mongo.Database, collection string, timeout time.Duration) *NotesRepo {
	return &NotesRepo{
		MongoCollection: db.Collection(collection),
		timeout:         timeout,
	}
}

func (r *NotesRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Every filter below carries userId. A note id on its own never matches.
func ownedBy(noteID, userID string) bson.M {
	return bson.M{"_id": noteID, "userId": userID}
}

// listOrder puts pinned notes first, oldest first within each group.
var listOrder = bson.D{{Key: "isPinned", Value: -1}, {Key: "createdOn", Value: 1}}

// CreateNote inserts a new note
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return errors.New("user ID is required")
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		utils.TrackError("database", "note_creation_failed")
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetUserNotes retrieves all notes for a user, pinned first
func (r *NotesRepo) GetUserNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	return r.find(ctx, bson.M{"userId": userID}, options.Find().SetSort(listOrder))
}

// SearchNotes returns the user's notes whose title or content contains query,
// ignoring case. The query is matched literally, never as a pattern.
func (r *NotesRepo) SearchNotes(ctx context.Context, userID, query string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("search", "notes")
	defer timer.ObserveDuration()

	pattern := literalPattern(query)
	filter := bson.M{
		"userId": userID,
		"$or": []bson.M{
			{"title": pattern},
			{"content": pattern},
		},
	}
	return r.find(ctx, filter, options.Find().SetSort(listOrder))
}

func literalPattern(query string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
}

func (r *NotesRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Note, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database", "note_find_failed")
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		utils.TrackError("database", "note_decode_failed")
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a specific note owned by userID
func (r *NotesRepo) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx, ownedBy(noteID, userID)).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

// UpdateNote applies the non-nil fields of changes in a single
// findOneAndUpdate and returns the note as stored afterwards.
func (r *NotesRepo) UpdateNote(ctx context.Context, noteID, userID string, changes model.NoteChanges) (*model.Note, error) {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	if changes.IsEmpty() {
		return nil, errors.New("no changes to apply")
	}

	set := bson.M{"updatedOn": time.Now().UTC()}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Content != nil {
		set["content"] = *changes.Content
	}
	if changes.Tags != nil {
		tags := *changes.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	if changes.IsPinned != nil {
		set["isPinned"] = *changes.IsPinned
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.MongoCollection.FindOneAndUpdate(ctx, ownedBy(noteID, userID), bson.M{"$set": set}, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		utils.TrackError("database", "note_update_failed")
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}

// DeleteNote deletes a specific note
func (r *NotesRepo) DeleteNote(ctx context.Context, noteID, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.MongoCollection.DeleteOne(ctx, ownedBy(noteID, userID))
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}
