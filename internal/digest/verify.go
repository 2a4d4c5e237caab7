package digest

import (
	"crypto/subtle"
	"strings"
)

// Verify checks password against a stored "$1$" or "$apr1$" crypt string,
// as found in htpasswd files.
func Verify(password, hashed string) (bool, error) {
	var magic string
	switch {
	case strings.HasPrefix(hashed, MagicApache):
		magic = MagicApache
	case strings.HasPrefix(hashed, MagicMD5):
		magic = MagicMD5
	default:
		return false, ErrUnsupportedMagic
	}

	got, err := SaltedCrypt(password, NormalizeSalt(hashed, magic), magic)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(hashed)) == 1, nil
}
