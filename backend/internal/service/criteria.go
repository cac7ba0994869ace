package service

import (
	"context"
	"strconv"
	"time"

	"github.com/threadlens/threadlens/shared/domain"
)

// RawCriteria carries the request's filter parameters as received, before any
// validation. Every field may hold garbage.
type RawCriteria struct {
	Username   string
	PostNumber string
	FromDate   string
	ToDate     string
	Page       string
}

// UserResolver resolves a username filter to a user id.
type UserResolver interface {
	UserIdByUsername(ctx context.Context, username domain.Username) (domain.UserId, bool, error)
}

// CriteriaBuilder normalizes raw filter parameters. Normalization is total:
// malformed values degrade to "no filter" instead of erroring, so a bad date
// or an unknown username gives the same result as omitting the parameter.
type CriteriaBuilder struct {
	users UserResolver
}

func NewCriteriaBuilder(users UserResolver) *CriteriaBuilder {
	return &CriteriaBuilder{users: users}
}

const dateLayout = "2006-01-02"

// Normalize builds the filter set. The only error it returns is a user-lookup
// collaborator failure; invalid input never produces one.
func (b *CriteriaBuilder) Normalize(ctx context.Context, raw RawCriteria) (domain.GalleryCriteria, error) {
	var criteria domain.GalleryCriteria

	if raw.Username != "" {
		id, found, err := b.users.UserIdByUsername(ctx, raw.Username)
		if err != nil {
			return criteria, err
		}
		if found {
			criteria.AuthorId = &id
		}
		// unknown username: filter dropped, not an error
	}

	if raw.PostNumber != "" {
		// non-numeric parses to 0, a no-op filter
		n, _ := strconv.Atoi(raw.PostNumber)
		if n > 0 {
			criteria.MinPosition = n
		}
	}

	if raw.FromDate != "" {
		if day, err := time.ParseInLocation(dateLayout, raw.FromDate, time.UTC); err == nil {
			criteria.From = &day
		}
	}
	if raw.ToDate != "" {
		if day, err := time.ParseInLocation(dateLayout, raw.ToDate, time.UTC); err == nil {
			// inclusive of the whole day: exclusive bound at next midnight
			before := day.AddDate(0, 0, 1)
			criteria.Before = &before
		}
	}

	if raw.Page != "" {
		page, _ := strconv.Atoi(raw.Page)
		criteria.Page = max(0, page)
	}

	return criteria, nil
}
