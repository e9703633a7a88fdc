package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, now time.Time) *Codec {
	t.Helper()
	c, err := NewCodec([]byte("test-secret"))
	require.NoError(t, err)
	return c.WithClock(func() time.Time { return now })
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	_, err := NewCodec(nil)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("organizer-1", now.Add(time.Hour))
	require.NoError(t, err)

	subject, err := c.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "organizer-1", subject)
}

func TestIssueLayout(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)
	exp := now.Add(time.Hour)

	token, err := c.Issue("abc", exp)
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write([]byte("abc." + strconv.FormatInt(exp.Unix(), 10)))
	want := "abc." + strconv.FormatInt(exp.Unix(), 10) + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, token)
	assert.NotContains(t, token, "=")
}

func TestVerifyExpired(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("organizer-1", now.Add(-time.Second))
	require.NoError(t, err)

	_, err = c.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAtExactExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("organizer-1", now)
	require.NoError(t, err)

	_, err = c.Verify(token)
	assert.NoError(t, err)
}

func TestVerifyRejectsEverySignatureFlip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("organizer-1", now.Add(time.Hour))
	require.NoError(t, err)

	sigStart := strings.LastIndexByte(token, '.') + 1
	for i := sigStart; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]
		_, err := c.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken, "flip at %d", i)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("organizer-1", now.Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	forgedSubject := "organizer-2." + parts[1] + "." + parts[2]
	_, err = c.Verify(forgedSubject)
	assert.ErrorIs(t, err, ErrInvalidToken)

	laterExp := strconv.FormatInt(now.Add(48*time.Hour).Unix(), 10)
	_, err = c.Verify(parts[0] + "." + laterExp + "." + parts[2])
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	c := newTestCodec(t, time.Now())

	for _, token := range []string{"", "abc", "abc.def", ".123.sig", "abc..", "a.notanumber.sig"} {
		_, err := c.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestVerifySubjectWithDots(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := newTestCodec(t, now)

	token, err := c.Issue("team.alpha", now.Add(time.Minute))
	require.NoError(t, err)

	subject, err := c.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "team.alpha", subject)
}

func TestScopedCodecsDoNotCrossVerify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	base := newTestCodec(t, now)
	admin := base.Scoped(KindAdmin)
	organizer := base.Scoped(KindOrganizer)

	token, err := admin.Issue("admin", now.Add(time.Hour))
	require.NoError(t, err)

	_, err = organizer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = base.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	subject, err := admin.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}
