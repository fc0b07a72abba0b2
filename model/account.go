package model

import "time"

type Account struct {
	ID        string    `bson:"_id" json:"id"`
	FullName  string    `bson:"fullName" json:"fullName"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password" json:"-"` // argon2id hash, never serialized
	CreatedOn time.Time `bson:"createdOn" json:"createdOn"`
}

// Snapshot is the view of an account embedded in access tokens and returned
// by /get-user. It carries no credential material.
type Snapshot struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

func (a *Account) Snapshot() Snapshot {
	return Snapshot{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		CreatedOn: a.CreatedOn,
	}
}
