package bootstrap

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// adminUser is the dashboard admin account name.
const adminUser = "admin"

// generateAdminCredentials creates a fresh random dashboard admin password
// and its bcrypt hash. A new password is generated on every run; the cluster
// only ever sees the hash.
func generateAdminCredentials() (*AdminCredentials, error) {
	raw := make([]byte, 12)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	password := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &AdminCredentials{
		User:         adminUser,
		Password:     password,
		PasswordHash: string(hash),
	}, nil
}
