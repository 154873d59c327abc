package ebitenbackend_test

import (
	"testing"

	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/render/ebitenbackend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameBuffering(t *testing.T) {
	b := ebitenbackend.New()

	require.NoError(t, b.Begin())
	require.NoError(t, b.Draw(render.DrawCall{Entity: 1}))
	require.NoError(t, b.Draw(render.DrawCall{Entity: 2}))
	assert.Equal(t, 0, b.Len(), "calls are not visible before End")
	require.NoError(t, b.End())
	assert.Equal(t, 2, b.Len())

	require.NoError(t, b.Begin())
	require.NoError(t, b.Draw(render.DrawCall{Entity: 3}))
	assert.Equal(t, 2, b.Len())
	require.NoError(t, b.End())
	assert.Equal(t, 1, b.Len())

	assert.ErrorIs(t, b.DrawTo(nil), ebitenbackend.ErrNoTarget)
}
