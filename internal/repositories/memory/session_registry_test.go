package memory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/posync/internal/apperrors"
	"github.com/SscSPs/posync/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_Lifecycle(t *testing.T) {
	reg := NewSessionRegistry()
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	session := reg.Create(now)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, 1, reg.Len())

	got, store, err := reg.Get(session.SessionID, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), got.LastSeenAt)
	require.NotNil(t, store)

	require.NoError(t, reg.End(session.SessionID))
	_, _, err = reg.Get(session.SessionID, now)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	assert.ErrorIs(t, reg.End(session.SessionID), apperrors.ErrSessionNotFound)
}

func TestSessionRegistry_StoresAreIsolated(t *testing.T) {
	reg := NewSessionRegistry()
	now := time.Now().UTC()
	a := reg.Create(now)
	b := reg.Create(now)

	_, storeA, err := reg.Get(a.SessionID, now)
	require.NoError(t, err)
	_, err = storeA.AddLineItem(domain.Expenses, domain.NewCashLineItem(dec("10"), "tea"))
	require.NoError(t, err)

	_, storeB, err := reg.Get(b.SessionID, now)
	require.NoError(t, err)
	items, err := storeB.LineItems(domain.Expenses)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSessionRegistry_Sweep(t *testing.T) {
	reg := NewSessionRegistry()
	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	idle := reg.Create(start)
	active := reg.Create(start)

	_, _, err := reg.Get(active.SessionID, start.Add(2*time.Hour))
	require.NoError(t, err)

	expired := reg.Sweep(start.Add(time.Hour))
	assert.Equal(t, []string{idle.SessionID}, expired)
	assert.Equal(t, 1, reg.Len())
}

func TestSessionRegistry_RunSweeperStopsOnCancel(t *testing.T) {
	reg := NewSessionRegistry()
	reg.Create(time.Now().UTC().Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.RunSweeper(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Millisecond, time.Minute)
		close(done)
	}()

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
