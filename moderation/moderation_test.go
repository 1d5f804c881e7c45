package moderation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uykelishuv_bot/database"
)

type fakeStore struct {
	listings map[string]*database.Listing
	users    map[string]*database.User

	updateErr error
	calls     int
}

func newFakeStore(pending int) *fakeStore {
	s := &fakeStore{
		listings: make(map[string]*database.Listing),
		users:    make(map[string]*database.User),
	}
	owner := &database.User{ID: "owner-1", TelegramUserID: 9001}
	s.users[owner.ID] = owner
	for i := 0; i < pending; i++ {
		id := fmt.Sprintf("listing-%d", i)
		s.listings[id] = &database.Listing{
			ID:        id,
			UserID:    owner.ID,
			Status:    database.StatusPending,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		}
	}
	return s
}

func (s *fakeStore) ListingsByStatus(_ context.Context, status database.ListingStatus) ([]*database.Listing, error) {
	s.calls++
	var out []*database.Listing
	for _, l := range s.listings {
		if l.Status == status {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateListingStatus(_ context.Context, id string, status database.ListingStatus, reason *string) (*database.Listing, error) {
	s.calls++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	l, ok := s.listings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	l.Status = status
	l.RejectionReason = reason
	if status == database.StatusApproved {
		now := time.Now()
		l.ApprovedAt = &now
	}
	return l, nil
}

func (s *fakeStore) DeleteListing(_ context.Context, id string) (bool, error) {
	s.calls++
	if _, ok := s.listings[id]; !ok {
		return false, nil
	}
	delete(s.listings, id)
	return true, nil
}

func (s *fakeStore) Statistics(_ context.Context) (*database.Statistics, error) {
	s.calls++
	return &database.Statistics{TotalListings: len(s.listings)}, nil
}

func (s *fakeStore) GetUserByID(_ context.Context, id string) (*database.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) GetAllUsers(_ context.Context) ([]*database.User, error) {
	s.calls++
	out := make([]*database.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeStore) SetUserBlocked(_ context.Context, id string, blocked bool) error {
	s.calls++
	u, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Blocked = blocked
	return nil
}

func (s *fakeStore) SetUserVerified(_ context.Context, id string, verified bool) error {
	s.calls++
	u, ok := s.users[id]
	if !ok {
		return database.ErrNotFound
	}
	u.Verified = verified
	return nil
}

type recordingNotifier struct {
	sent []int64
}

func (n *recordingNotifier) ListingModerated(ownerTelegramID int64, _ *database.Listing, _ string) {
	n.sent = append(n.sent, ownerTelegramID)
}

const adminID = int64(42)

func isAdmin(id int64) bool { return id == adminID }

func TestQueueDrainsToExhaustion(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(3)
	notifier := &recordingNotifier{}
	w := New(store, notifier, isAdmin)

	q, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)
	require.Len(t, q.Items, 3)

	for i := 0; i < 3; i++ {
		current, err := q.Current()
		require.NoError(t, err)
		require.NoError(t, w.Approve(ctx, adminID, current.ID))
		assert.Equal(t, i+1, q.Cursor)
		assert.Equal(t, database.StatusApproved, current.Status)
		assert.NotNil(t, current.ApprovedAt, "approval must stamp approved_at")
	}

	_, err = q.Current()
	assert.ErrorIs(t, err, ErrQueueExhausted)
	assert.Len(t, notifier.sent, 3)
	assert.Equal(t, []int64{9001, 9001, 9001}, notifier.sent)
}

func TestNonAdminShortCircuits(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2)
	w := New(store, nil, isAdmin)

	_, err := w.OpenQueue(ctx, 7, database.StatusPending)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, w.Approve(ctx, 7, "listing-0"), ErrUnauthorized)
	assert.ErrorIs(t, w.Reject(ctx, 7, "listing-0", "spam"), ErrUnauthorized)
	assert.ErrorIs(t, w.Delete(ctx, 7, "listing-0"), ErrUnauthorized)
	_, err = w.Statistics(ctx, 7)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The store is never touched on the denied path.
	assert.Zero(t, store.calls)
	assert.Equal(t, database.StatusPending, store.listings["listing-0"].Status)
}

func TestRejectRequiresReason(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	w := New(store, nil, isAdmin)

	_, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)

	err = w.Reject(ctx, adminID, "listing-0", "   ")
	assert.ErrorIs(t, err, database.ErrReasonRequired)
	assert.Equal(t, database.StatusPending, store.listings["listing-0"].Status)

	require.NoError(t, w.Reject(ctx, adminID, "listing-0", "Narx noto'g'ri"))
	l := store.listings["listing-0"]
	assert.Equal(t, database.StatusRejected, l.Status)
	require.NotNil(t, l.RejectionReason)
	assert.Equal(t, "Narx noto'g'ri", *l.RejectionReason)
	assert.Nil(t, l.ApprovedAt)
}

func TestStoreFailureKeepsCursor(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2)
	w := New(store, nil, isAdmin)

	q, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)

	store.updateErr = errors.New("connection reset")
	current, err := q.Current()
	require.NoError(t, err)

	err = w.Approve(ctx, adminID, current.ID)
	assert.Error(t, err)
	assert.Equal(t, 0, q.Cursor)

	// Retry after the store recovers acts on the same item.
	store.updateErr = nil
	require.NoError(t, w.Approve(ctx, adminID, current.ID))
	assert.Equal(t, 1, q.Cursor)
}

func TestNavigationBounds(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(2)
	w := New(store, nil, isAdmin)

	q, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)

	assert.ErrorIs(t, w.Prev(adminID), ErrQueueExhausted)
	require.NoError(t, w.Next(adminID))
	assert.Equal(t, 1, q.Cursor)
	assert.ErrorIs(t, w.Next(adminID), ErrQueueExhausted)
	require.NoError(t, w.Prev(adminID))
	assert.Equal(t, 0, q.Cursor)
}

func TestSnapshotIgnoresLateSubmissions(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	w := New(store, nil, isAdmin)

	q, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)
	require.Len(t, q.Items, 1)

	store.listings["late"] = &database.Listing{ID: "late", UserID: "owner-1", Status: database.StatusPending}

	require.NoError(t, w.Approve(ctx, adminID, "listing-0"))
	_, err = q.Current()
	assert.ErrorIs(t, err, ErrQueueExhausted)

	// A fresh open picks up the late submission.
	q2, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)
	assert.Len(t, q2.Items, 1)
	assert.Equal(t, "late", q2.Items[0].ID)
}

func TestDeleteMissingListing(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	w := New(store, nil, isAdmin)

	err := w.Delete(ctx, adminID, "nope")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestUserManagement(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(0)
	w := New(store, nil, isAdmin)

	require.NoError(t, w.SetUserBlocked(ctx, adminID, "owner-1", true))
	assert.True(t, store.users["owner-1"].Blocked)

	require.NoError(t, w.SetUserVerified(ctx, adminID, "owner-1", true))
	assert.True(t, store.users["owner-1"].Verified)

	users, err := w.ListUsers(ctx, adminID)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSweepDropsIdleQueues(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore(1)
	w := New(store, nil, isAdmin)

	_, err := w.OpenQueue(ctx, adminID, database.StatusPending)
	require.NoError(t, err)

	w.mu.Lock()
	w.queues[adminID].touched = time.Now().Add(-2 * time.Hour)
	w.mu.Unlock()

	assert.Equal(t, 1, w.Sweep(time.Hour))
	_, err = w.Queue(adminID)
	assert.ErrorIs(t, err, ErrNoQueue)
}
