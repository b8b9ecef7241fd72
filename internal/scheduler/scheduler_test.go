package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	err   error
	calls atomic.Int32
}

func (p *stubProber) ProbeUpstream(context.Context) error {
	p.calls.Add(1)
	return p.err
}

func TestProbeRecordsStatus(t *testing.T) {
	p := &stubProber{}
	s := New(time.Minute, p)

	assert.False(t, s.Status().Checked)

	s.probe()
	st := s.Status()
	assert.True(t, st.Checked)
	assert.True(t, st.Reachable)
	assert.Empty(t, st.Error)
	assert.False(t, st.CheckedAt.IsZero())

	p.err = errors.New("connection refused")
	s.probe()
	st = s.Status()
	assert.False(t, st.Reachable)
	assert.Equal(t, "connection refused", st.Error)
}

func TestStartRunsFirstProbeImmediately(t *testing.T) {
	p := &stubProber{}
	s := New(time.Hour, p)

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return s.Status().Reachable
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), p.calls.Load())
}

func TestStartDisabled(t *testing.T) {
	p := &stubProber{}
	s := New(0, p)

	require.NoError(t, s.Start())
	s.Stop()

	assert.Zero(t, p.calls.Load())
	assert.False(t, s.Status().Checked)
}
