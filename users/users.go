package users

import (
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/go-quiz-server/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned by a UserRepo when no principal matches.
var ErrNotFound = fmt.Errorf("user %w", apperrors.ErrNotFound)

// User is a principal allowed to sign in to the admin area.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialize
	Name         string `json:"name"`
}

// PublicUser is the view of a User that may leave the server.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// CheckPassword compares password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsNotFound reports whether err is a missing-principal error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
