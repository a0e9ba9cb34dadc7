package admin

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// CheckPassword compares an entered password with the stored one. Stored
// values that look like bcrypt hashes are verified as hashes, anything else
// is compared as plain text.
func CheckPassword(stored, entered string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(entered)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(entered)) == 1
}

func isBcryptHash(value string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
