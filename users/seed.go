package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// SeedUser describes a principal created at start-up. Either Password or
// PasswordHash must be set; a plain password is hashed before storing.
type SeedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Name         string `json:"name"`
}

// DefaultSeedUsers are the development principals.
func DefaultSeedUsers() []SeedUser {
	return []SeedUser{
		{ID: "user1", Email: "test@example.com", Password: "password123", Name: "Test User"},
		{ID: "user2", Email: "admin@gmail.com", Password: "secureadmin", Name: "Admin User"},
	}
}

// LoadSeedFile reads a JSON array of SeedUser.
func LoadSeedFile(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[users LoadSeedFile] read %s: %w", path, err)
	}
	var seeds []SeedUser
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("[users LoadSeedFile] decode %s: %w", path, err)
	}
	return seeds, nil
}

// Seed hashes and stores every seed user. Emails are lower-cased and must be
// unique across the set.
func Seed(ctx context.Context, repo UserRepo, seeds []SeedUser) error {
	seen := make(map[string]struct{}, len(seeds))
	for i, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.Email))
		if s.ID == "" || email == "" {
			return fmt.Errorf("[users Seed] entry %d: id and email are required", i)
		}
		if _, dup := seen[email]; dup {
			return fmt.Errorf("[users Seed] duplicate email %s", email)
		}
		seen[email] = struct{}{}

		hash := s.PasswordHash
		if hash == "" {
			if s.Password == "" {
				return fmt.Errorf("[users Seed] entry %s: password or passwordHash is required", s.ID)
			}
			var err error
			if hash, err = HashPassword(s.Password); err != nil {
				return fmt.Errorf("[users Seed] hash password for %s: %w", s.ID, err)
			}
		}

		if err := repo.Upsert(ctx, &User{ID: s.ID, Email: email, PasswordHash: hash, Name: s.Name}); err != nil {
			return fmt.Errorf("[users Seed] upsert %s: %w", s.ID, err)
		}
	}
	return nil
}
