package users

import "time"

type User struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(100);not null" json:"last_name"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (User) TableName() string { return "users" }

// AuthToken is an opaque bearer token handed out at login.
type AuthToken struct {
	Token     string    `gorm:"type:char(64);primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;index:ix_auth_tokens_user_id"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (AuthToken) TableName() string { return "auth_tokens" }

func (u User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}
