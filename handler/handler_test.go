package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"notesapp/middleware"
	"notesapp/services"
	"notesapp/testutils"
	"notesapp/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	notes    *testutils.MemoryNoteStore
	accounts *testutils.MemoryAccountStore
}

func newTestServer(t *testing.T, deps ...Dependency) *testServer {
	t.Helper()

	accounts := testutils.NewMemoryAccountStore()
	notes := testutils.NewMemoryNoteStore()
	tokens := services.NewTokenManager(testutils.TestTokenSecret, time.Hour, "notes-test")

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	RegisterRoutes(router, Services{
		Accounts:     &usecase.AccountsService{AccountsRepo: accounts, Tokens: tokens},
		Notes:        &usecase.NotesService{NotesRepo: notes},
		Tokens:       tokens,
		Dependencies: deps,
	})

	return &testServer{router: router, notes: notes, accounts: accounts}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *testServer) register(t *testing.T, name, email string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/create-account", "", gin.H{
		"fullName": name,
		"email":    email,
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, code, body)
	return body["accessToken"].(string)
}

func (s *testServer) addNote(t *testing.T, token, title, content string) string {
	t.Helper()
	code, body := s.do(t, http.MethodPost, "/add-note", token, gin.H{"title": title, "content": content})
	require.Equal(t, http.StatusOK, code, body)
	return body["note"].(map[string]interface{})["id"].(string)
}

func TestRootAndHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		s := newTestServer(t, Dependency{Name: "mongo", Required: true, Ping: func(context.Context) error { return nil }})

		code, body := s.do(t, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "hello from notes backend", body["data"])

		code, body = s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "up", body["dependencies"].(map[string]interface{})["mongo"])
		assert.Contains(t, body, "system")
	})

	t.Run("optional dependency down", func(t *testing.T) {
		s := newTestServer(t,
			Dependency{Name: "mongo", Required: true, Ping: func(context.Context) error { return nil }},
			Dependency{Name: "redis", Ping: func(context.Context) error { return errors.New("refused") }},
		)

		code, body := s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", body["status"])
	})

	t.Run("database down", func(t *testing.T) {
		s := newTestServer(t, Dependency{Name: "mongo", Required: true, Ping: func(context.Context) error { return errors.New("no primary") }})

		code, body := s.do(t, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "down", body["dependencies"].(map[string]interface{})["mongo"])
	})
}

func TestAccountRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "Ann Lee", "ann@example.com")

	t.Run("register response", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/create-account", "", gin.H{
			"fullName": "Bob", "email": "bob@example.com", "password": "pw",
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, body["error"])
		assert.NotEmpty(t, body["accessToken"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "bob@example.com", user["email"])
		assert.NotContains(t, user, "password")
	})

	t.Run("duplicate registration", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/create-account", "", gin.H{
			"fullName": "Again", "email": "ann@example.com", "password": "pw",
		})
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, true, body["error"])
		assert.Equal(t, "User already exists", body["message"])
		assert.Equal(t, 2, s.accounts.Count())
	})

	t.Run("missing registration fields", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/create-account", "", gin.H{"email": "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "All fields are required", body["message"])
	})

	t.Run("login", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "s3cret"})
		require.Equal(t, http.StatusOK, code)
		assert.NotEmpty(t, body["accessToken"])

		code, body = s.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid credentials", body["message"])

		code, body = s.do(t, http.MethodPost, "/login", "", gin.H{"email": "nobody@example.com", "password": "s3cret"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "User not found", body["message"])

		code, body = s.do(t, http.MethodPost, "/login", "", gin.H{"email": "ann@example.com"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Email and password are required", body["message"])
	})

	t.Run("get user", func(t *testing.T) {
		code, body := s.do(t, http.MethodGet, "/get-user", token, nil)
		require.Equal(t, http.StatusOK, code)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "Ann Lee", user["fullName"])
		assert.Equal(t, "ann@example.com", user["email"])
		assert.NotEmpty(t, user["id"])
		assert.NotEmpty(t, user["createdOn"])
	})

	t.Run("get user without token", func(t *testing.T) {
		code, body := s.do(t, http.MethodGet, "/get-user", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, true, body["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNoteRoutes(t *testing.T) {
	s := newTestServer(t)
	ann := s.register(t, "Ann", "ann@example.com")
	bob := s.register(t, "Bob", "bob@example.com")

	t.Run("add requires a token", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/add-note", "", gin.H{"title": "T", "content": "C"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Zero(t, s.notes.Count())
	})

	t.Run("add, list and pin ordering", func(t *testing.T) {
		first := s.addNote(t, ann, "Groceries", "buy Milk")
		second := s.addNote(t, ann, "Work", "standup")

		code, body := s.do(t, http.MethodPut, "/update-note-pinned/"+second, ann, gin.H{"isPinned": true})
		require.Equal(t, http.StatusOK, code, body)
		assert.Equal(t, true, body["note"].(map[string]interface{})["isPinned"])

		code, body = s.do(t, http.MethodGet, "/get-all-notes", ann, nil)
		require.Equal(t, http.StatusOK, code)
		notes := body["notes"].([]interface{})
		require.Len(t, notes, 2)
		assert.Equal(t, second, notes[0].(map[string]interface{})["id"])
		assert.Equal(t, first, notes[1].(map[string]interface{})["id"])
	})

	t.Run("add validation", func(t *testing.T) {
		code, body := s.do(t, http.MethodPost, "/add-note", ann, gin.H{"title": "only title"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Title and content are required", body["message"])
	})

	t.Run("edit", func(t *testing.T) {
		id := s.addNote(t, ann, "T", "C")

		code, body := s.do(t, http.MethodPut, "/edit-note/"+id, ann, gin.H{"title": "T2"})
		require.Equal(t, http.StatusOK, code)
		note := body["note"].(map[string]interface{})
		assert.Equal(t, "T2", note["title"])
		assert.Equal(t, "C", note["content"])

		code, body = s.do(t, http.MethodPut, "/edit-note/"+id, ann, gin.H{})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "No changes provided", body["message"])
	})

	t.Run("pin requires the flag", func(t *testing.T) {
		id := s.addNote(t, ann, "T", "C")
		code, body := s.do(t, http.MethodPut, "/update-note-pinned/"+id, ann, gin.H{})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "isPinned is required", body["message"])
	})

	t.Run("other accounts cannot touch a note", func(t *testing.T) {
		id := s.addNote(t, ann, "private", "secret")

		code, body := s.do(t, http.MethodPut, "/edit-note/"+id, bob, gin.H{"title": "mine"})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Note not found", body["message"])

		code, _ = s.do(t, http.MethodPut, "/update-note-pinned/"+id, bob, gin.H{"isPinned": true})
		assert.Equal(t, http.StatusNotFound, code)

		code, _ = s.do(t, http.MethodDelete, "/delete-note/"+id, bob, nil)
		assert.Equal(t, http.StatusNotFound, code)

		code, body = s.do(t, http.MethodGet, "/search-notes?query=secret", bob, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, body["notes"])

		code, body = s.do(t, http.MethodGet, "/get-all-notes", bob, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Empty(t, body["notes"])
	})

	t.Run("delete twice", func(t *testing.T) {
		id := s.addNote(t, ann, "T", "C")

		code, body := s.do(t, http.MethodDelete, "/delete-note/"+id, ann, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, false, body["error"])

		code, body = s.do(t, http.MethodDelete, "/delete-note/"+id, ann, nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, true, body["error"])
	})

	t.Run("search", func(t *testing.T) {
		code, body := s.do(t, http.MethodGet, "/search-notes?query=milk", ann, nil)
		require.Equal(t, http.StatusOK, code)
		notes := body["notes"].([]interface{})
		require.Len(t, notes, 1)
		assert.Equal(t, "Groceries", notes[0].(map[string]interface{})["title"])

		code, body = s.do(t, http.MethodGet, "/search-notes", ann, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Search query is required", body["message"])
	})

	t.Run("store failure is generic", func(t *testing.T) {
		s.notes.Err = errors.New("connection refused by 10.0.0.5")
		defer func() { s.notes.Err = nil }()

		code, body := s.do(t, http.MethodGet, "/get-all-notes", ann, nil)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Internal server error", body["message"])
	})
}
