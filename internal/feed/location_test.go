package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paujie/brocode/internal/model"
)

// fakeSource records the watch callback so tests can push fixes by hand.
type fakeSource struct {
	fn       func(model.Coordinates)
	cancels  int
	watchErr error
}

func (s *fakeSource) Watch(fn func(model.Coordinates)) (func(), error) {
	if s.watchErr != nil {
		return nil, s.watchErr
	}
	s.fn = fn
	return func() {
		s.cancels++
		s.fn = nil
	}, nil
}

func (s *fakeSource) push(c model.Coordinates) {
	if s.fn != nil {
		s.fn(c)
	}
}

func TestLocationPublisherPublishesFixes(t *testing.T) {
	a, _ := newTestAPI(t)
	p := NewLocationPublisher(a, "brocoder2", discard())
	src := &fakeSource{}
	ctx := context.Background()

	require.NoError(t, p.Start(ctx, src))
	assert.True(t, p.Active())

	src.push(model.Coordinates{Lat: 40.7, Lng: -74.0})

	profile, err := a.Profile(ctx, "brocoder2")
	require.NoError(t, err)
	require.NotNil(t, profile.LiveLocation)
	assert.Equal(t, 40.7, profile.LiveLocation.Lat)

	// Later fixes overwrite, they never accumulate.
	src.push(model.Coordinates{Lat: 41.0, Lng: -73.5})
	profile, err = a.Profile(ctx, "brocoder2")
	require.NoError(t, err)
	assert.Equal(t, 41.0, profile.LiveLocation.Lat)
}

func TestLocationPublisherStopCancelsWatch(t *testing.T) {
	a, _ := newTestAPI(t)
	p := NewLocationPublisher(a, "brocoder2", discard())
	src := &fakeSource{}

	require.NoError(t, p.Start(context.Background(), src))
	p.Stop()
	assert.False(t, p.Active())
	assert.Equal(t, 1, src.cancels)

	// Stop is idempotent.
	p.Stop()
	assert.Equal(t, 1, src.cancels)
}

func TestLocationPublisherStartTwiceIsNoop(t *testing.T) {
	a, _ := newTestAPI(t)
	p := NewLocationPublisher(a, "brocoder2", discard())
	src := &fakeSource{}
	ctx := context.Background()

	require.NoError(t, p.Start(ctx, src))
	other := &fakeSource{}
	require.NoError(t, p.Start(ctx, other))
	assert.Nil(t, other.fn, "second source must not be watched")
}

func TestLocationPublisherWatchError(t *testing.T) {
	a, _ := newTestAPI(t)
	p := NewLocationPublisher(a, "brocoder2", discard())
	src := &fakeSource{watchErr: errors.New("permission denied")}

	err := p.Start(context.Background(), src)
	require.Error(t, err)
	assert.False(t, p.Active())
}
