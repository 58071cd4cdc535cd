package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	"github.com/noah-isme/erasmus-advisor-api/pkg/config"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

func newTestStore(ttl time.Duration) *Store {
	return NewStore(config.SessionConfig{TTL: ttl, CleanupInterval: time.Minute}, nil)
}

func TestStoreCreateAndGet(t *testing.T) {
	store := newTestStore(time.Hour)

	created := store.Create("Università di Pisa")
	require.NotEmpty(t, created.ID)
	assert.Nil(t, created.Period)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Università di Pisa", got.HomeUniversity)
	assert.Equal(t, created.ID, got.ID)
}

func TestStoreGetUnknownSession(t *testing.T) {
	store := newTestStore(time.Hour)

	_, err := store.Get("missing")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionInvalid))
}

func TestStoreExpiredSessionDroppedOnRead(t *testing.T) {
	store := newTestStore(time.Hour)
	sess := store.Create("Pisa")

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := store.Get(sess.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionInvalid))
	assert.Zero(t, store.Len())
}

func TestStoreSetPeriodThroughHandle(t *testing.T) {
	store := newTestStore(time.Hour)
	sess := store.Create("Pisa")

	h, err := store.Acquire(sess.ID)
	require.NoError(t, err)
	h.SetPeriod(models.PeriodSpring)
	h.Release()

	got, err := store.Get(sess.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Period)
	assert.Equal(t, models.PeriodSpring, *got.Period)
}

func TestStoreAcquireSerializesSteps(t *testing.T) {
	store := newTestStore(time.Hour)
	sess := store.Create("Pisa")

	h1, err := store.Acquire(sess.ID)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		h2, err := store.Acquire(sess.ID)
		if err == nil {
			h2.Release()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire should block until release")
	case <-time.After(50 * time.Millisecond):
	}

	h1.Release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquire never completed")
	}
}

func TestStoreUnrelatedSessionsIndependent(t *testing.T) {
	store := newTestStore(time.Hour)
	a := store.Create("Pisa")
	b := store.Create("Bologna")

	ha, err := store.Acquire(a.ID)
	require.NoError(t, err)
	defer ha.Release()

	done := make(chan struct{})
	go func() {
		hb, err := store.Acquire(b.ID)
		if err == nil {
			hb.Release()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unrelated session blocked")
	}
}

func TestStoreSweepRemovesExpired(t *testing.T) {
	store := newTestStore(time.Hour)
	store.Create("Pisa")
	store.Create("Bologna")

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	removed := store.removeExpired()
	assert.Equal(t, 2, removed)
	assert.Zero(t, store.Len())
}

func TestStoreConcurrentCreate(t *testing.T) {
	store := newTestStore(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Create("Pisa")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.Len())
}
