package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	return u, err
}

func (r *Repo) GetByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, err
}

// IssueToken creates and persists an opaque bearer token for the user.
func (r *Repo) IssueToken(ctx context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("users: token generation failed: %w", err)
	}
	tok := AuthToken{
		Token:     hex.EncodeToString(b),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&tok).Error; err != nil {
		return "", err
	}
	return tok.Token, nil
}

// GetByToken resolves a bearer token to its user.
func (r *Repo) GetByToken(ctx context.Context, token string) (User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Joins("JOIN auth_tokens ON auth_tokens.user_id = users.id").
		Where("auth_tokens.token = ?", token).
		First(&u).Error
	return u, err
}
