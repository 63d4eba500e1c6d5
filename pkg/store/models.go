package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the publication state of an article.
type Status string

const (
	StatusPublish   Status = "publish"
	StatusFuture    Status = "future"
	StatusDraft     Status = "draft"
	StatusPaused    Status = "paused"
	StatusPending   Status = "pending"
	StatusBlocked   Status = "blocked"
	StatusAutoDraft Status = "auto-draft"
)

var statuses = []Status{
	StatusPublish, StatusFuture, StatusDraft, StatusPaused,
	StatusPending, StatusBlocked, StatusAutoDraft,
}

// Statuses lists every valid status.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus converts s to a Status. Empty input means draft.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return StatusDraft, nil
	}
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is a stored post. Body keeps the author's source text, HTML the
// rendered form.
type Article struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Body        string      `json:"body"`
	Format      string      `json:"format"`
	HTML        string      `json:"html"`
	Excerpt     string      `json:"excerpt"`
	Status      Status      `json:"status"`
	IsFeatured  bool        `json:"is_featured"`
	PublishAt   *time.Time  `json:"publish_at,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ListParams filters ListArticles. Zero values mean no filter; Limit
// defaults to 20.
type ListParams struct {
	Status     Status
	CategoryID uuid.UUID
	Limit      int
}

func (p ListParams) limit() int {
	if p.Limit <= 0 {
		return 20
	}
	return min(p.Limit, 500)
}

// prepareArticle fills generated fields and validates a before insert.
func prepareArticle(a *Article, now time.Time) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now.UTC()
	}
	return nil
}

func prepareCategory(c *Category, now time.Time) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
}
