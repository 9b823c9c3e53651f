package srv

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	log     *[]string
	started chan struct{}
}

func (r *recorder) Start(ctx context.Context) error {
	close(r.started)
	<-ctx.Done()
	return ctx.Err()
}

func (r *recorder) Shutdown(ctx context.Context) error {
	*r.log = append(*r.log, r.name)
	return nil
}

func TestServices_Lifecycle(t *testing.T) {
	var order []string
	a := &recorder{name: "a", log: &order, started: make(chan struct{})}
	b := &recorder{name: "b", log: &order, started: make(chan struct{})}
	services := []Service{a, b}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, r := range []*recorder{a, b} {
		select {
		case <-r.started:
		case <-time.After(time.Second):
			t.Fatalf("service %s did not start", r.name)
		}
	}

	cancel()
	ShutdownServices(ctx, services)

	assert.Equal(t, []string{"b", "a"}, order)
}

func TestNewCleanup(t *testing.T) {
	calls := 0
	svc := NewCleanup(func() error {
		calls++
		return errors.New("close failed")
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.EqualError(t, svc.Shutdown(context.Background()), "close failed")
	assert.Equal(t, 1, calls)

	assert.NoError(t, NewCleanup(nil).Shutdown(context.Background()))
}
