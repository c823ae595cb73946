package auth

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// RandomPassword returns a throwaway secret for accounts created via OAuth.
// Nobody ever learns it, so the account cannot log in with a password.
func RandomPassword() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
