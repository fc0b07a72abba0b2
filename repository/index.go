package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(ctx context.Context, accounts *AccountsRepo, notes *NotesRepo) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	accountIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("unique_email").
				SetUnique(true),
		},
	}

	noteIndexes := []mongo.IndexModel{
		// Listing: owner, pinned first, then creation order
		{
			Keys: bson.D{
				{Key: "userId", Value: 1},
				{Key: "isPinned", Value: -1},
				{Key: "createdOn", Value: 1},
			},
			Options: options.Index().
				SetName("user_pinned_notes_order"),
		},
		// Ownership lookups by note id
		{
			Keys: bson.D{
				{Key: "_id", Value: 1},
				{Key: "userId", Value: 1},
			},
			Options: options.Index().
				SetName("note_owner"),
		},
	}

	if _, err := accounts.MongoCollection.Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}

	if _, err := notes.MongoCollection.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
