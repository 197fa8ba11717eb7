package notification

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typePtr(t domain.NotificationType) *domain.NotificationType { return &t }

func TestFilter(t *testing.T) {
	userID := uuid.New()
	list := []domain.Notification{
		{ID: uuid.New(), UserID: userID, Type: domain.TypeCourseUpdate, Title: "Go Basics updated", Message: "Chapter 3 rewritten", IsRead: false},
		{ID: uuid.New(), UserID: userID, Type: domain.TypeQuizReminder, Title: "Quiz due tomorrow", Message: "Go Basics quiz 2", IsRead: true},
		{ID: uuid.New(), UserID: userID, Type: domain.TypeGradeReceived, Title: "Grade posted", Message: "You scored 92%", IsRead: false},
	}

	t.Run("no criteria passes everything", func(t *testing.T) {
		assert.Len(t, Filter(list, Criteria{}), 3)
	})

	t.Run("by type", func(t *testing.T) {
		got := Filter(list, Criteria{Type: typePtr(domain.TypeQuizReminder)})
		require.Len(t, got, 1)
		assert.Equal(t, "Quiz due tomorrow", got[0].Title)
	})

	t.Run("by read status", func(t *testing.T) {
		assert.Len(t, Filter(list, Criteria{Status: StatusUnread}), 2)
		assert.Len(t, Filter(list, Criteria{Status: StatusRead}), 1)
	})

	t.Run("search is case-insensitive over title and message", func(t *testing.T) {
		got := Filter(list, Criteria{Search: "go basics"})
		assert.Len(t, got, 2)

		got = Filter(list, Criteria{Search: "SCORED"})
		require.Len(t, got, 1)
		assert.Equal(t, "Grade posted", got[0].Title)
	})

	t.Run("criteria combine conjunctively", func(t *testing.T) {
		got := Filter(list, Criteria{
			Type:   typePtr(domain.TypeCourseUpdate),
			Status: StatusUnread,
			Search: "chapter",
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Go Basics updated", got[0].Title)

		// Same type and search, wrong status: nothing passes.
		got = Filter(list, Criteria{
			Type:   typePtr(domain.TypeCourseUpdate),
			Status: StatusRead,
			Search: "chapter",
		})
		assert.Empty(t, got)
	})

	t.Run("input slice is untouched", func(t *testing.T) {
		before := make([]domain.Notification, len(list))
		copy(before, list)
		Filter(list, Criteria{Status: StatusUnread, Search: "quiz"})
		assert.Equal(t, before, list)
	})
}

func TestPaginate(t *testing.T) {
	userID := uuid.New()
	list := make([]domain.Notification, 25)
	for i := range list {
		list[i] = domain.Notification{
			ID:     uuid.New(),
			UserID: userID,
			Title:  fmt.Sprintf("notification %d", i+1),
		}
	}

	t.Run("middle page", func(t *testing.T) {
		got := Paginate(list, 2, 10)
		require.Len(t, got, 10)
		assert.Equal(t, "notification 11", got[0].Title)
		assert.Equal(t, "notification 20", got[9].Title)
	})

	t.Run("final short page", func(t *testing.T) {
		got := Paginate(list, 3, 10)
		require.Len(t, got, 5)
		assert.Equal(t, "notification 21", got[0].Title)
		assert.Equal(t, "notification 25", got[4].Title)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Empty(t, Paginate(list, 4, 10))
		assert.Empty(t, Paginate(list, 0, 10))
		assert.Empty(t, Paginate(nil, 1, 10))
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
}

func TestView(t *testing.T) {
	userID := uuid.New()
	list := make([]domain.Notification, 25)
	for i := range list {
		list[i] = domain.Notification{
			ID:        uuid.New(),
			UserID:    userID,
			Type:      domain.TypeCourseUpdate,
			Title:     fmt.Sprintf("notification %d", i+1),
			IsRead:    i%2 == 0,
			CreatedAt: time.Now().UTC().Add(-time.Duration(i) * time.Minute),
		}
	}

	t.Run("pages through the full list", func(t *testing.T) {
		v := NewView(DefaultPageSize)
		res := v.Apply(list)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 25, res.TotalItems)
		assert.Equal(t, 3, res.TotalPages)
		assert.Len(t, res.Items, 10)

		v.SetPage(3)
		res = v.Apply(list)
		assert.Len(t, res.Items, 5)
	})

	t.Run("changing a criterion resets to page 1", func(t *testing.T) {
		v := NewView(DefaultPageSize)
		v.SetPage(3)
		require.Equal(t, 3, v.Page())

		v.SetStatus(StatusUnread)
		assert.Equal(t, 1, v.Page())

		v.SetPage(2)
		v.SetSearch("notification")
		assert.Equal(t, 1, v.Page())

		v.SetPage(2)
		v.SetType(typePtr(domain.TypeCourseUpdate))
		assert.Equal(t, 1, v.Page())
	})

	t.Run("deterministic", func(t *testing.T) {
		v := NewView(DefaultPageSize)
		v.SetStatus(StatusUnread)
		first := v.Apply(list)
		second := v.Apply(list)
		assert.Equal(t, first, second)
	})
}
