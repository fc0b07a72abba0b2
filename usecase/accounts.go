package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"notesapp/model"
	"notesapp/repository"
	"notesapp/services"
	"notesapp/utils"
)

type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id string) (*model.Account, error)
}

type TokenIssuer interface {
	Issue(user model.Snapshot) (string, error)
}

type ProfileCache interface {
	Get(ctx context.Context, accountID string) (*model.Snapshot, error)
	Set(ctx context.Context, snapshot model.Snapshot) error
}

type AccountsService struct {
	AccountsRepo AccountStore
	Tokens       TokenIssuer
	// Profiles is optional
	Profiles ProfileCache
}

type RegisterInput struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account and returns it with a fresh access token.
// An email that is already registered yields ErrDuplicateAccount and no
// second record.
func (svc *AccountsService) Register(ctx context.Context, input RegisterInput) (*model.Account, string, error) {
	if err := utils.Validate.Struct(input); err != nil {
		return nil, "", fieldsError("All fields are required", err)
	}

	existing, err := svc.AccountsRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, ErrAccountNotFound) {
		return nil, "", fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, "", ErrDuplicateAccount
	}

	hashed, err := services.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:        utils.NewID(),
		FullName:  input.FullName,
		Email:     input.Email,
		Password:  hashed,
		CreatedOn: time.Now().UTC(),
	}

	if err := svc.AccountsRepo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateAccount
		}
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := svc.Tokens.Issue(account.Snapshot())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return account, token, nil
}

// Login checks the password against the stored hash and issues a token.
func (svc *AccountsService) Login(ctx context.Context, input LoginInput) (*model.Account, string, error) {
	if err := utils.Validate.Struct(input); err != nil {
		return nil, "", fieldsError("Email and password are required", err)
	}

	account, err := svc.AccountsRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, "", ErrAccountNotFound
		}
		return nil, "", fmt.Errorf("failed to find account: %w", err)
	}

	match, err := services.VerifyPassword(account.Password, input.Password)
	if err != nil {
		log.Printf("[auth] stored password for account %s is unreadable: %v", account.ID, err)
		return nil, "", ErrInvalidCredentials
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.Tokens.Issue(account.Snapshot())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return account, token, nil
}

// GetProfile loads the public view of an account, through the cache when
// one is configured. Cache failures fall back to the store.
func (svc *AccountsService) GetProfile(ctx context.Context, accountID string) (*model.Snapshot, error) {
	if svc.Profiles != nil {
		cached, err := svc.Profiles.Get(ctx, accountID)
		if err != nil {
			utils.TrackError("cache", "profile_get_failed")
			log.Printf("Warning: Failed to read profile cache: %v", err)
		}
		if cached != nil {
			utils.TrackCacheOperation("profile", true)
			return cached, nil
		}
		utils.TrackCacheOperation("profile", false)
	}

	account, err := svc.AccountsRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	snapshot := account.Snapshot()
	if svc.Profiles != nil {
		if err := svc.Profiles.Set(ctx, snapshot); err != nil {
			utils.TrackError("cache", "profile_set_failed")
			log.Printf("Warning: Failed to cache profile: %v", err)
		}
	}

	return &snapshot, nil
}
