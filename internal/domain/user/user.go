package user

import (
	"errors"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Skills       []string  `json:"skills"`
	Interests    []string  `json:"interests"`
	Location     string    `json:"location,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	JoinedAt     time.Time `json:"joinedDate"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type RegisterRequest struct {
	Name      string   `json:"name" binding:"required,min=2,max=120"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8,max=72"`
	Skills    []string `json:"skills" binding:"omitempty,dive,min=1,max=80"`
	Interests []string `json:"interests" binding:"omitempty,dive,min=1,max=80"`
	Location  string   `json:"location" binding:"omitempty,max=160"`
	Phone     string   `json:"phone" binding:"omitempty,max=32"`
}

// UpdateProfileRequest is the allow-list for profile updates. Email, id,
// joined date and the password hash can never be touched through this path.
type UpdateProfileRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=120"`
	Skills       *[]string `json:"skills" binding:"omitempty,dive,min=1,max=80"`
	Interests    *[]string `json:"interests" binding:"omitempty,dive,min=1,max=80"`
	Location     *string   `json:"location" binding:"omitempty,max=160"`
	Phone        *string   `json:"phone" binding:"omitempty,max=32"`
	ProfileImage *string   `json:"profileImage" binding:"omitempty,url,max=500"`
}

// Empty reports whether the payload carries no updatable field at all.
func (r UpdateProfileRequest) Empty() bool {
	return r.Name == nil &&
		r.Skills == nil &&
		r.Interests == nil &&
		r.Location == nil &&
		r.Phone == nil &&
		r.ProfileImage == nil
}

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Skills       []string
	Interests    []string
	Location     string
	Phone        string
	ProfileImage string
}
