package notification

import (
	"strings"

	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

// DefaultPageSize matches the notifications page of both front-ends.
const DefaultPageSize = 10

// ReadStatus selects notifications by read state.
type ReadStatus int

const (
	StatusAll ReadStatus = iota
	StatusUnread
	StatusRead
)

// Criteria are combined conjunctively: a notification must match the type,
// the read status, and the search text to pass.
type Criteria struct {
	Type   *domain.NotificationType
	Status ReadStatus
	Search string
}

// Filter returns the notifications matching all criteria. Search is a
// case-insensitive substring match over title and message. Pure function;
// the input slice is not modified.
func Filter(list []domain.Notification, c Criteria) []domain.Notification {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := []domain.Notification{}
	for _, n := range list {
		if c.Type != nil && n.Type != *c.Type {
			continue
		}
		if c.Status == StatusUnread && n.IsRead {
			continue
		}
		if c.Status == StatusRead && !n.IsRead {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.Title), search) &&
			!strings.Contains(strings.ToLower(n.Message), search) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Paginate returns the 1-indexed page of the given size. Out-of-range pages
// yield an empty slice.
func Paginate(list []domain.Notification, page, pageSize int) []domain.Notification {
	if page < 1 || pageSize < 1 {
		return []domain.Notification{}
	}
	start := (page - 1) * pageSize
	if start >= len(list) {
		return []domain.Notification{}
	}
	end := start + pageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// TotalPages is the page count for n filtered items at the given size.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize < 1 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// View is the read model of the notifications page: criteria plus a current
// page. Changing any criterion resets to page 1.
type View struct {
	criteria Criteria
	page     int
	pageSize int
}

func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &View{page: 1, pageSize: pageSize}
}

func (v *View) SetType(t *domain.NotificationType) {
	v.criteria.Type = t
	v.page = 1
}

func (v *View) SetStatus(status ReadStatus) {
	v.criteria.Status = status
	v.page = 1
}

func (v *View) SetSearch(search string) {
	v.criteria.Search = search
	v.page = 1
}

func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

func (v *View) Page() int { return v.page }

// Result is one rendered page of the filtered list.
type Result struct {
	Items      []domain.Notification
	Page       int
	TotalItems int
	TotalPages int
}

// Apply filters and paginates the list. Deterministic and side-effect-free:
// the same list and view state always produce the same result.
func (v *View) Apply(list []domain.Notification) Result {
	filtered := Filter(list, v.criteria)
	return Result{
		Items:      Paginate(filtered, v.page, v.pageSize),
		Page:       v.page,
		TotalItems: len(filtered),
		TotalPages: TotalPages(len(filtered), v.pageSize),
	}
}
