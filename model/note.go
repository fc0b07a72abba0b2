package model

import (
	"time"
)

type Note struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Tags      []string  `bson:"tags" json:"tags"`
	IsPinned  bool      `bson:"isPinned" json:"isPinned"`
	CreatedOn time.Time `bson:"createdOn" json:"createdOn"`
	UpdatedOn time.Time `bson:"updatedOn" json:"updatedOn"`
}

// NoteChanges is a partial update. Nil fields are left untouched.
type NoteChanges struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
}

func (c NoteChanges) IsEmpty() bool {
	return c.Title == nil && c.Content == nil && c.Tags == nil && c.IsPinned == nil
}
