package service

import (
	"comply/media-api/internal/model"
	"comply/media-api/internal/repository"
	"comply/media-api/pkg/security"
	"context"
	"fmt"

	"go.uber.org/zap"
)

type seedUser struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      model.Role
}

var sampleUsers = []seedUser{
	{"user@example.com", "password123", "John", "Doe", model.RoleUser},
	{"admin@example.com", "admin123", "Admin", "User", model.RoleAdmin},
	{"test@example.com", "test123", "Test", "User", model.RoleUser},
}

// Seed replaces every user with the sample accounts. Digests are always
// bcrypt with cost 10 regardless of the configured hasher.
func Seed(ctx context.Context, users *repository.UserRepository) error {
	hasher := security.NewHasher(security.AlgorithmBcrypt, security.DefaultBcryptCost)

	batch := make([]*model.User, 0, len(sampleUsers))
	for _, s := range sampleUsers {
		hash, err := hasher.Hash(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s, %w", s.email, err)
		}

		batch = append(batch, &model.User{
			Email:        s.email,
			PasswordHash: hash,
			FirstName:    s.firstName,
			LastName:     s.lastName,
			Role:         s.role,
			Active:       true,
		})
	}

	if err := users.ReplaceAll(ctx, batch); err != nil {
		return err
	}

	for _, u := range batch {
		zap.L().Info("Created user", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	}

	return nil
}
