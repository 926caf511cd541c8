package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthResult struct {
	User   *models.User
	Tokens TokenPair
}

type UserService struct {
	users  models.UserRepo
	tokens *auth.TokenManager
	store  *auth.TokenStore
}

func NewUserService(users models.UserRepo, tokens *auth.TokenManager, store *auth.TokenStore) *UserService {
	return &UserService{users: users, tokens: tokens, store: store}
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	// Admin accounts are provisioned out of band, never via registration.
	if role != auth.RoleUser && role != auth.RoleHotelOwner {
		return nil, apperr.New(apperr.Validation, "role must be user or hotel_owner")
	}

	if !helpers.IsPasswordStrong(req.Password) {
		return nil, apperr.New(apperr.Validation, "password must be at least 8 characters with upper, lower and numeric characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, apperr.Wrap(apperr.Validation, "invalid registration data", err)
	}

	if err := us.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return us.issueTokens(ctx, user)
}

func (us *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := us.users.GetUserByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the account exists.
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}

	return us.issueTokens(ctx, user)
}

// Refresh rotates the token pair: the presented refresh token is revoked and
// a fresh pair is issued.
func (us *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := us.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	ok, err := us.store.Valid(ctx, claims.ID, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "refresh token revoked")
	}

	user, err := us.users.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil, apperr.New(apperr.Unauthorized, "account no longer exists")
		}
		return nil, err
	}

	if err := us.store.Revoke(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return us.issueTokens(ctx, user)
}

// Logout revokes the refresh token. A malformed token is not an error here;
// the cookies get cleared regardless.
func (us *UserService) Logout(ctx context.Context, refreshToken string) {
	claims, err := us.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return
	}
	_ = us.store.Revoke(ctx, claims.ID)
}

func (us *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return us.users.GetUserByID(ctx, id)
}

func (us *UserService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	access, err := us.tokens.SignAccess(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, jti, err := us.tokens.SignRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	if err := us.store.Save(ctx, jti, user.ID, us.tokens.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return &AuthResult{
		User:   user,
		Tokens: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}
