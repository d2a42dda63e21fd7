// Package article holds the article entity stored by the sample repository and
// the merge policy applied when an article is saved over an existing one.
package article

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
)

// Kind is the repository kind under which articles are stored.
const Kind = "article"

const (
	maxTitleLength = 200
	maxTags        = 16
)

// Article is a piece of content identified by a stable string ID.
type Article struct {
	ID        string
	Title     string
	Body      string
	Author    string
	Tags      []string
	Revision  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business rules for the Article entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass.
func (a *Article) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(a.ID) == "" {
		fields["id"] = domain.MsgRequired
	}
	if strings.TrimSpace(a.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if len(a.Title) > maxTitleLength {
		fields["title"] = fmt.Sprintf("must be at most %d characters, got %d", maxTitleLength, len(a.Title))
	}
	if len(a.Tags) > maxTags {
		fields["tags"] = fmt.Sprintf("must have at most %d entries, got %d", maxTags, len(a.Tags))
	}
	for _, tag := range a.Tags {
		if strings.TrimSpace(tag) == "" {
			fields["tags"] = "must not contain empty entries"
			break
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Adapter resolves article identity and merges an incoming article over the
// stored one. Its method set matches ports.EntityAdapter[string, Article].
type Adapter struct {
	// Now stamps CreatedAt/UpdatedAt. Defaults to time.Now in UTC.
	Now func() time.Time
}

// ID returns the article's identity.
func (Adapter) ID(a Article) string {
	return a.ID
}

// Update merges incoming over existing. A zero existing article means the
// record is new. Non-empty incoming fields win, tags are unioned in order of
// first appearance, and every merge bumps the revision.
func (ad Adapter) Update(existing, incoming Article) Article {
	now := ad.now()

	if existing.ID == "" {
		merged := incoming
		merged.Tags = slices.Clone(incoming.Tags)
		merged.Revision = 1
		if merged.CreatedAt.IsZero() {
			merged.CreatedAt = now
		}
		merged.UpdatedAt = now
		return merged
	}

	merged := existing
	if incoming.Title != "" {
		merged.Title = incoming.Title
	}
	if incoming.Body != "" {
		merged.Body = incoming.Body
	}
	if incoming.Author != "" {
		merged.Author = incoming.Author
	}
	merged.Tags = unionTags(existing.Tags, incoming.Tags)
	merged.Revision = existing.Revision + 1
	merged.UpdatedAt = now
	return merged
}

func (ad Adapter) now() time.Time {
	if ad.Now != nil {
		return ad.Now()
	}
	return time.Now().UTC()
}

func unionTags(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, tag := range slices.Concat(a, b) {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
