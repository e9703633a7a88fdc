// Package session signs and verifies the compact identity tokens carried in
// the organizer and admin cookies.
//
// A token is subject.expiresAtUnix.signature where the signature is the
// unpadded base64url HMAC-SHA256 of "subject.expiresAtUnix".
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
	ErrEmptySecret  = errors.New("session secret must not be empty")
)

const (
	KindOrganizer = "organizer"
	KindAdmin     = "admin"
)

type Codec struct {
	key []byte
	now func() time.Time
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &Codec{key: append([]byte(nil), secret...), now: time.Now}, nil
}

// Scoped returns a codec whose signing key is derived from the parent key and
// kind, so tokens issued for one kind never verify under another.
func (c *Codec) Scoped(kind string) *Codec {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(kind))
	return &Codec{key: mac.Sum(nil), now: c.now}
}

// WithClock returns a copy of the codec that reads the current time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	return &Codec{key: c.key, now: now}
}

func (c *Codec) Issue(subject string, expiresAt time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("session subject must not be empty")
	}
	payload := subject + "." + strconv.FormatInt(expiresAt.Unix(), 10)
	return payload + "." + c.sign(payload), nil
}

// Verify returns the token subject. The subject may itself contain dots, so
// the expiry and signature are taken from the last two segments.
func (c *Codec) Verify(token string) (string, error) {
	sigAt := strings.LastIndexByte(token, '.')
	if sigAt <= 0 {
		return "", ErrInvalidToken
	}
	payload, sig := token[:sigAt], token[sigAt+1:]

	expAt := strings.LastIndexByte(payload, '.')
	if expAt <= 0 {
		return "", ErrInvalidToken
	}
	subject, expRaw := payload[:expAt], payload[expAt+1:]

	expected := c.sign(payload)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}

	exp, err := strconv.ParseInt(expRaw, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if exp < c.now().Unix() {
		return "", ErrTokenExpired
	}
	return subject, nil
}

// sign returns the encoded signature. Verify compares encoded strings because
// decoding would accept a flipped final character that only touches padding
// bits.
func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.key)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
