package credentials

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// fallbackWord stands in for the family name when a row arrives without one
const fallbackWord = "STUDENT"

// DeriveTempPassword builds the deterministic first-login password handed to
// a newly provisioned student: the uppercased first family name followed by
// the document number. The account carries a must-change flag, so the
// password only has to survive until first login.
func DeriveTempPassword(firstFamilyName, document string) string {
	name := strings.ToUpper(strings.TrimSpace(firstFamilyName))
	if name == "" {
		name = fallbackWord
	}
	return name + strings.TrimSpace(document)
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
