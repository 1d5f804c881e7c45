// Package moderation implements the admin review workflow: a snapshot
// queue of candidate listings iterated by cursor, with approve, reject,
// and delete actions gated by an authorization check.
package moderation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"uykelishuv_bot/database"
	"uykelishuv_bot/notify"
)

var (
	// ErrUnauthorized means the actor is not in the admin set. Nothing
	// is read or written when this is returned.
	ErrUnauthorized = errors.New("not an admin")
	// ErrNoQueue means the admin has no open moderation session.
	ErrNoQueue = errors.New("no open queue")
	// ErrQueueExhausted means the cursor is past the end of the snapshot.
	ErrQueueExhausted = errors.New("queue exhausted")
)

// ListingStore is the slice of the listing store the workflow needs.
// *database.DB satisfies it.
type ListingStore interface {
	ListingsByStatus(ctx context.Context, status database.ListingStatus) ([]*database.Listing, error)
	UpdateListingStatus(ctx context.Context, id string, status database.ListingStatus, reason *string) (*database.Listing, error)
	DeleteListing(ctx context.Context, id string) (bool, error)
	Statistics(ctx context.Context) (*database.Statistics, error)

	GetUserByID(ctx context.Context, id string) (*database.User, error)
	GetAllUsers(ctx context.Context) ([]*database.User, error)
	SetUserBlocked(ctx context.Context, id string, blocked bool) error
	SetUserVerified(ctx context.Context, id string, verified bool) error
}

// Queue is the snapshot an admin iterates. The item list is captured
// when the queue opens and never re-queried mid-session: submissions
// arriving while an admin reviews appear on the next open.
type Queue struct {
	Kind   database.ListingStatus
	Items  []*database.Listing
	Cursor int

	touched time.Time
}

// Current returns the listing under the cursor.
func (q *Queue) Current() (*database.Listing, error) {
	if q.Cursor >= len(q.Items) {
		return nil, ErrQueueExhausted
	}
	return q.Items[q.Cursor], nil
}

func (q *Queue) HasNext() bool { return q.Cursor < len(q.Items)-1 }
func (q *Queue) HasPrev() bool { return q.Cursor > 0 }

type Workflow struct {
	store    ListingStore
	notifier notify.Notifier
	isAdmin  func(int64) bool

	mu     sync.Mutex
	queues map[int64]*Queue
}

func New(store ListingStore, notifier notify.Notifier, isAdmin func(int64) bool) *Workflow {
	return &Workflow{
		store:    store,
		notifier: notifier,
		isAdmin:  isAdmin,
		queues:   make(map[int64]*Queue),
	}
}

// OpenQueue snapshots the candidate set (newest first) and resets the
// cursor. An empty snapshot is returned as-is so the caller can say so.
func (w *Workflow) OpenQueue(ctx context.Context, adminID int64, kind database.ListingStatus) (*Queue, error) {
	if !w.isAdmin(adminID) {
		return nil, ErrUnauthorized
	}

	items, err := w.store.ListingsByStatus(ctx, kind)
	if err != nil {
		return nil, err
	}

	q := &Queue{Kind: kind, Items: items, touched: time.Now()}
	w.mu.Lock()
	w.queues[adminID] = q
	w.mu.Unlock()
	return q, nil
}

func (w *Workflow) Queue(adminID int64) (*Queue, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.queues[adminID]
	if !ok {
		return nil, ErrNoQueue
	}
	q.touched = time.Now()
	return q, nil
}

// CloseQueue drops the admin's session, e.g. when navigating away.
func (w *Workflow) CloseQueue(adminID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.queues, adminID)
}

func (w *Workflow) Next(adminID int64) error {
	q, err := w.Queue(adminID)
	if err != nil {
		return err
	}
	if !q.HasNext() {
		return ErrQueueExhausted
	}
	q.Cursor++
	return nil
}

func (w *Workflow) Prev(adminID int64) error {
	q, err := w.Queue(adminID)
	if err != nil {
		return err
	}
	if !q.HasPrev() {
		return ErrQueueExhausted
	}
	q.Cursor--
	return nil
}

// Approve transitions a listing to approved and advances the cursor
// past the acted-on item. On a store failure the cursor stays so the
// admin can retry the same item.
func (w *Workflow) Approve(ctx context.Context, adminID int64, listingID string) error {
	if !w.isAdmin(adminID) {
		return ErrUnauthorized
	}

	listing, err := w.store.UpdateListingStatus(ctx, listingID, database.StatusApproved, nil)
	if err != nil {
		return err
	}

	slog.Info("listing approved", "listing", listingID, "admin", adminID)
	w.advance(adminID)
	w.notifyOwner(ctx, listing, "")
	return nil
}

// Reject requires a non-empty reason; the transition carries it to the
// listing row and the owner notification.
func (w *Workflow) Reject(ctx context.Context, adminID int64, listingID, reason string) error {
	if !w.isAdmin(adminID) {
		return ErrUnauthorized
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return database.ErrReasonRequired
	}

	listing, err := w.store.UpdateListingStatus(ctx, listingID, database.StatusRejected, &reason)
	if err != nil {
		return err
	}

	slog.Info("listing rejected", "listing", listingID, "admin", adminID, "reason", reason)
	w.advance(adminID)
	w.notifyOwner(ctx, listing, reason)
	return nil
}

// Delete hard-deletes the listing and advances identically to approve.
func (w *Workflow) Delete(ctx context.Context, adminID int64, listingID string) error {
	if !w.isAdmin(adminID) {
		return ErrUnauthorized
	}

	found, err := w.store.DeleteListing(ctx, listingID)
	if err != nil {
		return err
	}
	if !found {
		return database.ErrNotFound
	}

	slog.Info("listing deleted", "listing", listingID, "admin", adminID)
	w.advance(adminID)
	return nil
}

// advance moves the cursor past the item just acted on. Without an open
// queue (action taken from a direct notification) it is a no-op.
func (w *Workflow) advance(adminID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.queues[adminID]
	if !ok {
		return
	}
	if q.Cursor < len(q.Items) {
		q.Cursor++
	}
}

func (w *Workflow) notifyOwner(ctx context.Context, listing *database.Listing, reason string) {
	if w.notifier == nil {
		return
	}
	owner, err := w.store.GetUserByID(ctx, listing.UserID)
	if err != nil {
		slog.Error("owner lookup for notification failed", "listing", listing.ID, "err", err)
		return
	}
	w.notifier.ListingModerated(owner.TelegramUserID, listing, reason)
}

func (w *Workflow) Statistics(ctx context.Context, adminID int64) (*database.Statistics, error) {
	if !w.isAdmin(adminID) {
		return nil, ErrUnauthorized
	}
	return w.store.Statistics(ctx)
}

func (w *Workflow) ListUsers(ctx context.Context, adminID int64) ([]*database.User, error) {
	if !w.isAdmin(adminID) {
		return nil, ErrUnauthorized
	}
	return w.store.GetAllUsers(ctx)
}

func (w *Workflow) SetUserBlocked(ctx context.Context, adminID int64, userID string, blocked bool) error {
	if !w.isAdmin(adminID) {
		return ErrUnauthorized
	}
	return w.store.SetUserBlocked(ctx, userID, blocked)
}

func (w *Workflow) SetUserVerified(ctx context.Context, adminID int64, userID string, verified bool) error {
	if !w.isAdmin(adminID) {
		return ErrUnauthorized
	}
	return w.store.SetUserVerified(ctx, userID, verified)
}

// Sweep drops moderation sessions idle longer than maxIdle.
func (w *Workflow) Sweep(maxIdle time.Duration) int {
	if maxIdle <= 0 {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	dropped := 0
	for id, q := range w.queues {
		if q.touched.Before(cutoff) {
			delete(w.queues, id)
			dropped++
		}
	}
	return dropped
}
