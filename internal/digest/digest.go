// Package digest implements the password digest required by the Webshare
// login protocol: MD5-crypt of the password with the account salt, then
// SHA-1 of the crypt string, hex encoded.
package digest

import (
	"crypto"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
)

// DigestLen is the length of the hex digest sent as the login password.
const DigestLen = sha1.Size * 2

// Sentinel errors for digest operations.
var (
	ErrHashUnavailable  = errors.New("hash primitive unavailable")
	ErrUnsupportedMagic = errors.New("unsupported crypt magic")
)

// Available reports whether MD5 and SHA-1 are usable in this build.
// A failure is a configuration error and is never recovered from by
// switching to another hash.
func Available() error {
	if !crypto.MD5.Available() {
		return fmt.Errorf("%w: md5", ErrHashUnavailable)
	}
	if !crypto.SHA1.Available() {
		return fmt.Errorf("%w: sha1", ErrHashUnavailable)
	}
	return nil
}

// Digest returns the 40 character lowercase hex SHA-1 of the $1$ crypt of
// password with salt. An empty salt is valid input; callers must decide
// beforehand whether the salt lookup itself failed.
func Digest(password, salt string) (string, error) {
	crypted, err := SaltedCrypt(password, salt, MagicMD5)
	if err != nil {
		return "", err
	}
	return SHA1Hex(crypted), nil
}

// SHA1Hex hashes the UTF-8 bytes of s and hex encodes the sum.
func SHA1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
