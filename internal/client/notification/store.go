package notification

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

type mutationKind int

const (
	mutationMarkRead mutationKind = iota
	mutationMarkAll
	mutationDelete
)

// pendingMutation is an optimistic change whose server confirmation has not
// arrived yet. A list fetch that resolves while mutations are pending
// re-applies them on top of the fetched base, so a fetch started before the
// mutation cannot silently undo it.
type pendingMutation struct {
	kind mutationKind
	id   uuid.UUID
}

// Store is the single in-memory source of truth for one user's notification
// view. It is explicitly constructed and injected into consumers; there is no
// package-level instance. All state transitions go through its methods.
//
// Two races are handled (see the tests):
//   - stale responses: each list/count fetch takes a sequence number at issue
//     time and its result is discarded if a newer fetch was issued meanwhile,
//     or if the store switched users;
//   - optimistic mutations vs. in-flight fetches: the pending journal above.
type Store struct {
	svc *Service

	mu            sync.Mutex
	userID        uuid.UUID
	notifications []domain.Notification
	unreadCount   int
	listSeq       uint64
	countSeq      uint64
	pending       []pendingMutation
}

func NewStore(svc *Service) *Store {
	return &Store{svc: svc, notifications: []domain.Notification{}}
}

// SetUser switches the store to a new user: previous state is dropped and any
// in-flight request for the old user resolves into the void (its sequence and
// user checks both fail).
func (s *Store) SetUser(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(userID)
}

func (s *Store) setUserLocked(userID uuid.UUID) {
	s.userID = userID
	s.notifications = []domain.Notification{}
	s.unreadCount = 0
	s.pending = nil
	s.listSeq++
	s.countSeq++
}

// Reset is the teardown counterpart of NewStore: empty list, zero count,
// no user. Timers are the Poller's concern.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(uuid.Nil)
}

func (s *Store) UserID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Notifications returns a copy of the current list, newest first.
func (s *Store) Notifications() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unreadCount
}

// Refresh replaces the local list with the server's current set for userID
// and recomputes the unread count from it. A stale response (older sequence,
// or issued for a previous user) is discarded without touching state.
func (s *Store) Refresh(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	if userID != s.userID {
		s.setUserLocked(userID)
	}
	s.listSeq++
	seq := s.listSeq
	s.mu.Unlock()

	list, err := s.svc.ListNotifications(ctx, userID, false)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.listSeq || userID != s.userID {
		// A newer fetch was issued, or the user switched. Drop this result.
		return nil
	}
	sortNotifications(list)
	s.notifications = list
	for _, m := range s.pending {
		s.applyLocked(m)
	}
	s.recountLocked()
	return nil
}

// RefreshCount updates only the unread count; the list is left alone. While
// optimistic mutations are unconfirmed the fetched number is discarded, since
// the server may not reflect them yet.
func (s *Store) RefreshCount(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	if userID != s.userID {
		s.setUserLocked(userID)
	}
	s.countSeq++
	seq := s.countSeq
	s.mu.Unlock()

	count, err := s.svc.UnreadCount(ctx, userID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.countSeq || userID != s.userID || len(s.pending) > 0 {
		return nil
	}
	s.unreadCount = count
	return nil
}

// MarkAsRead optimistically flips the notification and decrements the count,
// then confirms with the server. On failure the optimistic change is rolled
// back. Marking an already-read notification is a no-op locally and
// idempotent on the server.
func (s *Store) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	s.mu.Lock()
	user := s.userID
	wasUnread := false
	if idx := s.indexLocked(notificationID); idx >= 0 && !s.notifications[idx].IsRead {
		wasUnread = true
		now := time.Now().UTC()
		s.notifications[idx].IsRead = true
		s.notifications[idx].ReadAt = &now
		if s.unreadCount > 0 {
			s.unreadCount--
		}
		s.pending = append(s.pending, pendingMutation{kind: mutationMarkRead, id: notificationID})
	}
	s.mu.Unlock()

	updated, err := s.svc.MarkAsRead(ctx, notificationID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if wasUnread {
		s.dropPendingLocked(mutationMarkRead, notificationID)
	}
	if user != s.userID {
		// State for this user is already gone; nothing to reconcile.
		return err
	}
	if err != nil {
		if wasUnread {
			if idx := s.indexLocked(notificationID); idx >= 0 {
				s.notifications[idx].IsRead = false
				s.notifications[idx].ReadAt = nil
			}
			s.recountLocked()
		}
		return err
	}
	if updated != nil {
		// Adopt the server's record; its readAt is the authoritative one.
		if idx := s.indexLocked(notificationID); idx >= 0 {
			s.notifications[idx] = *updated
		}
	}
	return nil
}

// MarkAllAsRead optimistically zeroes the unread view, then confirms with the
// server, rolling back the affected notifications on failure.
func (s *Store) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	if userID != s.userID {
		s.setUserLocked(userID)
	}
	var flipped []uuid.UUID
	now := time.Now().UTC()
	for i := range s.notifications {
		if !s.notifications[i].IsRead {
			flipped = append(flipped, s.notifications[i].ID)
			s.notifications[i].IsRead = true
			s.notifications[i].ReadAt = &now
		}
	}
	s.unreadCount = 0
	s.pending = append(s.pending, pendingMutation{kind: mutationMarkAll})
	s.mu.Unlock()

	err := s.svc.MarkAllAsRead(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropPendingLocked(mutationMarkAll, uuid.Nil)
	if userID != s.userID {
		return err
	}
	if err != nil {
		for _, id := range flipped {
			if idx := s.indexLocked(id); idx >= 0 {
				s.notifications[idx].IsRead = false
				s.notifications[idx].ReadAt = nil
			}
		}
		s.recountLocked()
		return err
	}
	return nil
}

// Delete removes the notification locally right away, decrementing the count
// if it was unread, then confirms with the server. A 404 means the server
// already lost the record, which is the state we wanted; anything else rolls
// the removal back.
func (s *Store) Delete(ctx context.Context, notificationID uuid.UUID) error {
	s.mu.Lock()
	user := s.userID
	var removed *domain.Notification
	if idx := s.indexLocked(notificationID); idx >= 0 {
		n := s.notifications[idx]
		removed = &n
		s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
		if !n.IsRead && s.unreadCount > 0 {
			s.unreadCount--
		}
		s.pending = append(s.pending, pendingMutation{kind: mutationDelete, id: notificationID})
	}
	s.mu.Unlock()

	err := s.svc.Delete(ctx, notificationID)
	if err != nil && IsNotFound(err) {
		err = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if removed != nil {
		s.dropPendingLocked(mutationDelete, notificationID)
	}
	if user != s.userID {
		return err
	}
	if err != nil {
		if removed != nil {
			s.notifications = append(s.notifications, *removed)
			sortNotifications(s.notifications)
			s.recountLocked()
		}
		return err
	}
	return nil
}

// applyLocked re-applies an unconfirmed optimistic mutation on top of freshly
// fetched base state.
func (s *Store) applyLocked(m pendingMutation) {
	switch m.kind {
	case mutationMarkRead:
		if idx := s.indexLocked(m.id); idx >= 0 && !s.notifications[idx].IsRead {
			now := time.Now().UTC()
			s.notifications[idx].IsRead = true
			s.notifications[idx].ReadAt = &now
		}
	case mutationMarkAll:
		now := time.Now().UTC()
		for i := range s.notifications {
			if !s.notifications[i].IsRead {
				s.notifications[i].IsRead = true
				s.notifications[i].ReadAt = &now
			}
		}
	case mutationDelete:
		if idx := s.indexLocked(m.id); idx >= 0 {
			s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
		}
	}
}

func (s *Store) indexLocked(id uuid.UUID) int {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) dropPendingLocked(kind mutationKind, id uuid.UUID) {
	for i, m := range s.pending {
		if m.kind == kind && m.id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// recountLocked re-derives the unread count from the list, the only
// authoritative source.
func (s *Store) recountLocked() {
	count := 0
	for i := range s.notifications {
		if !s.notifications[i].IsRead {
			count++
		}
	}
	s.unreadCount = count
}

// sortNotifications orders newest first, id descending as the tie-break.
func sortNotifications(list []domain.Notification) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID.String() > list[j].ID.String()
	})
}
