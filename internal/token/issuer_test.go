package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *Issuer {
	i := NewIssuer("testkey", "testsecret-testsecret")
	// Pinned clock (whole seconds — JWT timestamps have second precision)
	// so issued/expiry arithmetic is exact.
	fixed := time.Now().Truncate(time.Second)
	i.now = func() time.Time { return fixed }
	return i
}

func TestIssue_TokenHasThreeSegments(t *testing.T) {
	signed, err := testIssuer().Issue(ValidatedRequest{Room: "standup", Identity: "bob"}, 24)
	require.NoError(t, err)
	assert.Len(t, strings.Split(signed, "."), 3)
}

func TestIssue_PayloadRecoversRoomAndIdentity(t *testing.T) {
	signed, err := testIssuer().Issue(ValidatedRequest{Room: "my-room", Identity: "Bob.Smith"}, 24)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims Claims
	require.NoError(t, json.Unmarshal(payload, &claims))

	assert.Equal(t, "my-room", claims.Video.Room)
	assert.Equal(t, "Bob.Smith", claims.Subject)
	assert.True(t, claims.Video.RoomJoin)
	assert.True(t, claims.Video.CanPublish)
	assert.True(t, claims.Video.CanSubscribe)
	assert.True(t, claims.Video.CanPublishData)
}

func TestIssue_ExpiryMatchesTTL(t *testing.T) {
	i := testIssuer()
	signed, err := i.Issue(ValidatedRequest{Room: "standup", Identity: "bob"}, 24)
	require.NoError(t, err)

	claims, err := i.Verify(signed)
	require.NoError(t, err)

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	assert.Equal(t, 24*time.Hour, expires.Sub(issued))
	assert.True(t, expires.After(issued))
}

func TestIssue_TTLBounds(t *testing.T) {
	i := testIssuer()
	req := ValidatedRequest{Room: "standup", Identity: "bob"}

	for _, ttl := range []int{0, -1, 200, 169} {
		_, err := i.Issue(req, ttl)
		require.Error(t, err, "ttl %d", ttl)
		assert.Equal(t, KindInvalidTTL, KindOf(err), "ttl %d", ttl)
	}

	for _, ttl := range []int{1, 24, 168} {
		_, err := i.Issue(req, ttl)
		assert.NoError(t, err, "ttl %d", ttl)
	}
}

func TestIssue_DisplayNameCarriedInClaims(t *testing.T) {
	i := testIssuer()

	signed, err := i.Issue(ValidatedRequest{Room: "standup", Identity: "bob", Name: "Alice"}, 1)
	require.NoError(t, err)
	claims, err := i.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)

	// Absent name is omitted from the payload entirely.
	signed, err = i.Issue(ValidatedRequest{Room: "standup", Identity: "bob"}, 1)
	require.NoError(t, err)
	parts := strings.Split(signed, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.NotContains(t, string(payload), `"name"`)
}

func TestIssue_IssuerIsKeyID(t *testing.T) {
	i := testIssuer()
	signed, err := i.Issue(ValidatedRequest{Room: "standup", Identity: "bob"}, 1)
	require.NoError(t, err)
	claims, err := i.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "testkey", claims.Issuer)
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	signed, err := testIssuer().Issue(ValidatedRequest{Room: "standup", Identity: "bob"}, 1)
	require.NoError(t, err)

	other := NewIssuer("testkey", "a-different-secret")
	_, err = other.Verify(signed)
	assert.Error(t, err)
}
