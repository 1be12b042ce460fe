package credentials

import (
	"crypto/rand"
	"math/big"
)

// Family codes avoid characters that are easy to misread (0/O, 1/I/L)
// since kids type them on a login screen.
const familyCodeChars = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// FamilyCodeLength is the length of generated family codes
const FamilyCodeLength = 6

// PinLength is the length of generated kid PINs
const PinLength = 4

// GenerateFamilyCode generates a random family code a parent account
// exposes so child profiles can log in with code + PIN.
func GenerateFamilyCode() (string, error) {
	return randomString(familyCodeChars, FamilyCodeLength)
}

// GeneratePin generates a random numeric PIN for a kid profile
func GeneratePin() (string, error) {
	return randomString("0123456789", PinLength)
}

// randomString builds a string of length n from the given alphabet using
// crypto/rand.
func randomString(alphabet string, n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))

	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[num.Int64()]
	}

	return string(out), nil
}
