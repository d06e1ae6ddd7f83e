package avatars

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "a.png", "image/png", []byte("png")))

	content, ct, err := s.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), content)
	assert.Equal(t, "image/png", ct)

	_, _, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
