// Package testutils holds in-memory stand-ins for the Mongo repositories.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"notesapp/model"
	"notesapp/repository"
)

// MemoryNoteStore mirrors repository.NotesRepo semantics: ownership filter on
// every lookup, pinned notes first, atomic partial updates.
type MemoryNoteStore struct {
	mu    sync.Mutex
	notes []*model.Note // insertion order
	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryNoteStore() *MemoryNoteStore {
	return &MemoryNoteStore{}
}

func cloneNote(n *model.Note) *model.Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	return &c
}

func (s *MemoryNoteStore) CreateNote(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.notes = append(s.notes, cloneNote(note))
	return nil
}

func (s *MemoryNoteStore) GetUserNotes(_ context.Context, userID string) ([]*model.Note, error) {
	return s.filter(userID, func(*model.Note) bool { return true })
}

func (s *MemoryNoteStore) SearchNotes(_ context.Context, userID, query string) ([]*model.Note, error) {
	q := strings.ToLower(query)
	return s.filter(userID, func(n *model.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q)
	})
}

func (s *MemoryNoteStore) filter(userID string, keep func(*model.Note) bool) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*model.Note, 0)
	for _, n := range s.notes {
		if n.UserID == userID && keep(n) {
			out = append(out, cloneNote(n))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].IsPinned && !out[j].IsPinned
	})
	return out, nil
}

func (s *MemoryNoteStore) UpdateNote(_ context.Context, noteID, userID string, changes model.NoteChanges) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, n := range s.notes {
		if n.ID != noteID || n.UserID != userID {
			continue
		}
		if changes.Title != nil {
			n.Title = *changes.Title
		}
		if changes.Content != nil {
			n.Content = *changes.Content
		}
		if changes.Tags != nil {
			n.Tags = append([]string{}, (*changes.Tags)...)
		}
		if changes.IsPinned != nil {
			n.IsPinned = *changes.IsPinned
		}
		n.UpdatedOn = time.Now().UTC()
		return cloneNote(n), nil
	}
	return nil, repository.ErrNoteNotFound
}

func (s *MemoryNoteStore) DeleteNote(_ context.Context, noteID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, n := range s.notes {
		if n.ID == noteID && n.UserID == userID {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNoteNotFound
}

// Count returns how many notes are stored for every owner.
func (s *MemoryNoteStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// MemoryAccountStore enforces unique emails like the Mongo unique index.
type MemoryAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	Err      error
	// Lookups counts FindByID calls.
	Lookups int
}

func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]*model.Account)}
}

func (s *MemoryAccountStore) CreateAccount(_ context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, a := range s.accounts {
		if a.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	c := *account
	s.accounts[account.ID] = &c
	return nil
}

func (s *MemoryAccountStore) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.accounts {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (s *MemoryAccountStore) FindByID(_ context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lookups++
	if s.Err != nil {
		return nil, s.Err
	}
	if a, ok := s.accounts[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, repository.ErrAccountNotFound
}

// Count returns the number of stored accounts.
func (s *MemoryAccountStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}
