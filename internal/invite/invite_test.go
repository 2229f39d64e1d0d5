package invite

import (
	"testing"

	kerrors "github.com/PolarWolf314/hush/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "AQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQEBAQE"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"S1", testSecret},
		{"3f1c2a9e-8b7d-4c3e-a1f0-123456789abc", testSecret},
		{"x", "y"},
	}

	for _, p := range pairs {
		code, err := Encode(p[0], p[1])
		require.NoError(t, err)

		id, secret, err := Decode(code)
		require.NoError(t, err)
		assert.Equal(t, p[0], id)
		assert.Equal(t, p[1], secret)
	}
}

func TestEncodeUsesCanonicalSeparator(t *testing.T) {
	code, err := Encode("S1", testSecret)
	require.NoError(t, err)
	assert.Equal(t, "S1:"+testSecret, code)
}

func TestDecodeLegacySeparator(t *testing.T) {
	canonicalID, canonicalSecret, err := Decode("S1:" + testSecret)
	require.NoError(t, err)

	legacyID, legacySecret, err := Decode("S1|" + testSecret)
	require.NoError(t, err)

	assert.Equal(t, canonicalID, legacyID)
	assert.Equal(t, canonicalSecret, legacySecret)
}

func TestDecodeSplitsOnFirstOccurrence(t *testing.T) {
	id, secret, err := Decode("a:b:c")
	require.NoError(t, err)
	assert.Equal(t, "a", id)
	assert.Equal(t, "b:c", secret)
}

func TestDecodePrefersCanonicalSeparator(t *testing.T) {
	id, secret, err := Decode("a|b:c")
	require.NoError(t, err)
	assert.Equal(t, "a|b", id)
	assert.Equal(t, "c", secret)
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	id, secret, err := Decode("  S1:" + testSecret + "\n")
	require.NoError(t, err)
	assert.Equal(t, "S1", id)
	assert.Equal(t, testSecret, secret)
}

func TestDecodeInvalid(t *testing.T) {
	for _, code := range []string{"", "   ", "nosep", ":secret", "id:", ":", "|", "id|", "|secret"} {
		t.Run(code, func(t *testing.T) {
			_, _, err := Decode(code)
			assert.ErrorIs(t, err, kerrors.ErrInvalidInviteFormat)
		})
	}
}

func TestEncodeRejectsInvalidParts(t *testing.T) {
	tests := []struct{ id, secret string }{
		{"", testSecret},
		{"S1", ""},
		{"S:1", testSecret},
		{"S1", "abc|def"},
	}
	for _, tt := range tests {
		_, err := Encode(tt.id, tt.secret)
		assert.ErrorIs(t, err, kerrors.ErrInvalidInviteFormat, "id=%q secret=%q", tt.id, tt.secret)
	}
}
