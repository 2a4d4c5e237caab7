package digest

import (
	"crypto/md5"
	"strings"
)

// Supported crypt magic markers
const (
	MagicMD5    = "$1$"
	MagicApache = "$apr1$"
)

const (
	maxSaltLen    = 8
	stretchRounds = 1000
)

// itoa64 is the crypt(3) alphabet, not standard base64
const itoa64 = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// SaltedCrypt computes the MD5-crypt digest of password with the given salt.
//
// The output is "<magic><salt>$<22 chars>" and is bit-for-bit compatible with
// FreeBSD/glibc $1$ crypt and Apache $apr1$. The steps below follow the
// historical algorithm and their byte-feed order must not change.
func SaltedCrypt(password, salt, magic string) (string, error) {
	if magic != MagicMD5 && magic != MagicApache {
		return "", ErrUnsupportedMagic
	}
	if err := Available(); err != nil {
		return "", err
	}

	pw := []byte(password)
	s := []byte(NormalizeSalt(salt, magic))

	// Step 2: A = MD5(password || magic || salt), kept open
	ctx := md5.New()
	ctx.Write(pw)
	ctx.Write([]byte(magic))
	ctx.Write(s)

	// Step 3: B = MD5(password || salt || password)
	alt := md5.New()
	alt.Write(pw)
	alt.Write(s)
	alt.Write(pw)
	final := alt.Sum(nil)

	// Step 4: feed len(password) bytes of B into A, 16 at a time
	for pl := len(pw); pl > 0; pl -= md5.Size {
		ctx.Write(final[:min(md5.Size, pl)])
	}
	clear(final)

	// Step 5: walk the bits of len(password); set bits feed final[0],
	// which is zero after the clear above
	for i := len(pw); i != 0; i >>= 1 {
		if i&1 != 0 {
			ctx.Write(final[:1])
		} else {
			ctx.Write(pw[:1])
		}
	}
	final = ctx.Sum(nil)

	// Step 6: 1000 rounds
	for i := 0; i < stretchRounds; i++ {
		round := md5.New()
		if i&1 != 0 {
			round.Write(pw)
		} else {
			round.Write(final)
		}
		if i%3 != 0 {
			round.Write(s)
		}
		if i%7 != 0 {
			round.Write(pw)
		}
		if i&1 != 0 {
			round.Write(final)
		} else {
			round.Write(pw)
		}
		final = round.Sum(nil)
	}

	// Steps 7 and 8
	var out strings.Builder
	out.Grow(len(magic) + len(s) + 1 + 22)
	out.WriteString(magic)
	out.Write(s)
	out.WriteByte('$')
	encodeTriple(&out, final[0], final[6], final[12])
	encodeTriple(&out, final[1], final[7], final[13])
	encodeTriple(&out, final[2], final[8], final[14])
	encodeTriple(&out, final[3], final[9], final[15])
	encodeTriple(&out, final[4], final[10], final[5])
	to64(&out, uint32(final[11]), 2)

	return out.String(), nil
}

// NormalizeSalt strips the magic prefix, cuts at the first '$' and caps the
// salt at 8 bytes. The cap counts bytes, not runes, as glibc crypt does;
// salts issued by the server are ASCII.
func NormalizeSalt(salt, magic string) string {
	salt = strings.TrimPrefix(salt, magic)
	if i := strings.IndexByte(salt, '$'); i >= 0 {
		salt = salt[:i]
	}
	if len(salt) > maxSaltLen {
		salt = salt[:maxSaltLen]
	}
	return salt
}

func encodeTriple(out *strings.Builder, b0, b1, b2 byte) {
	to64(out, uint32(b0)<<16|uint32(b1)<<8|uint32(b2), 4)
}

// to64 writes n itoa64 characters of v, least significant 6 bits first
func to64(out *strings.Builder, v uint32, n int) {
	for ; n > 0; n-- {
		out.WriteByte(itoa64[v&0x3f])
		v >>= 6
	}
}
