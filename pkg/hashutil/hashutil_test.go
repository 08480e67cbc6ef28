package hashutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/ecoscan/backend/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"
)

func TestHashBytes_SHA256(t *testing.T) {
	got, err := hashutil.HashBytes([]byte{}, hashutil.HashAlgoSHA256)
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", got)
}

func TestHashBytes_BLAKE3(t *testing.T) {
	data := []byte("organic cotton")
	want := blake3.Sum256(data)

	got, err := hashutil.HashBytes(data, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestHashBytes_UnsupportedAlgo(t *testing.T) {
	_, err := hashutil.HashBytes([]byte("x"), hashutil.HashAlgo("md5"))
	assert.Error(t, err)
}

func TestDigest(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, hashutil.Digest("a", "b"), hashutil.Digest("a", "b"))
	})

	t.Run("separates parts", func(t *testing.T) {
		assert.NotEqual(t, hashutil.Digest("ab", "c"), hashutil.Digest("a", "bc"))
	})

	t.Run("returns 64 hex characters", func(t *testing.T) {
		assert.Len(t, hashutil.Digest("polyester shell"), 64)
	})
}
