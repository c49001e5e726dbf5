package api

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentsNewestFirst(t *testing.T) {
	a, clk, _ := newTestAPI(t)
	ctx := context.Background()

	clk.Advance(time.Hour)
	created, err := a.CreateMoment(ctx, NewMoment{
		UserID: "brocoder1", ImageURL: "https://example.com/latest.png", Caption: "fresh",
	})
	require.NoError(t, err)

	moments, err := a.Moments(ctx, "brocoder1")
	require.NoError(t, err)
	require.Len(t, moments, 2)
	assert.Equal(t, created.ID, moments[0].ID)
	assert.Equal(t, "mom-1", moments[1].ID)
}

func TestCreateMomentValidation(t *testing.T) {
	a, _, _ := newTestAPI(t)
	ctx := context.Background()

	_, err := a.CreateMoment(ctx, NewMoment{UserID: "brocoder1", ImageURL: "  "})
	assert.True(t, IsValidation(err))

	_, err = a.CreateMoment(ctx, NewMoment{
		UserID: "brocoder1", ImageURL: "https://example.com/x.png",
		Caption: strings.Repeat("a", 281),
	})
	assert.True(t, IsValidation(err))

	_, err = a.CreateMoment(ctx, NewMoment{UserID: "ghost", ImageURL: "https://example.com/x.png"})
	assert.True(t, IsNotFound(err))
}

func TestCreateMomentCaptionCountsRunes(t *testing.T) {
	a, _, _ := newTestAPI(t)

	// 280 multibyte runes are within the cap even though the byte count
	// is far larger.
	moment, err := a.CreateMoment(context.Background(), NewMoment{
		UserID: "brocoder2", ImageURL: "https://example.com/x.png",
		Caption: strings.Repeat("ü", 280),
	})
	require.NoError(t, err)
	assert.Len(t, []rune(moment.Caption), 280)
}

func TestDeleteMoment(t *testing.T) {
	a, _, _ := newTestAPI(t)
	ctx := context.Background()

	require.NoError(t, a.DeleteMoment(ctx, "mom-1"))

	moments, err := a.Moments(ctx, "brocoder1")
	require.NoError(t, err)
	assert.Empty(t, moments)

	err = a.DeleteMoment(ctx, "mom-1")
	assert.True(t, IsNotFound(err))
}
