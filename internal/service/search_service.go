package service

import (
	"strings"
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
)

// Search entity kinds
const (
	KindThreads = "threads"
	KindPosts   = "posts"
	KindUsers   = "users"
)

// Date range presets mapping to a lower bound on created_at
const (
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
	DateRangeYear  = "year"
	DateRangeAll   = "all"
)

// MinQueryLength below which a search returns empty results (not an error)
const MinQueryLength = 2

// SearchFilters shared filter set for combined search. Users are matched on
// username only and are never filtered by date, category, or author.
type SearchFilters struct {
	DateRange   string
	CategoryIDs []uint64
	AuthorID    uint64
	// Kind optionally narrows the search to one entity kind
	Kind string
}

// SearchResult three independently paginated result sets under the same
// page/perPage, merged: total is the sum, total_pages the maximum. A page
// can be non-empty for one kind and empty for another; presentation is the
// caller's concern.
type SearchResult struct {
	Threads    *common.PageResult[*domain.Thread] `json:"threads"`
	Posts      *common.PageResult[*domain.Post]   `json:"posts"`
	Users      *common.PageResult[*domain.User]   `json:"users"`
	Total      int64                              `json:"total"`
	TotalPages int                                `json:"total_pages"`
}

// SearchService combined substring search over threads, posts, and users
type SearchService interface {
	Search(query string, req common.PageRequest, filters SearchFilters) (*SearchResult, error)
}

type searchService struct {
	threads repository.ThreadRepository
	posts   repository.PostRepository
	users   repository.UserRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(
	threads repository.ThreadRepository,
	posts repository.PostRepository,
	users repository.UserRepository,
) SearchService {
	return &searchService{threads: threads, posts: posts, users: users}
}

// dateCutoff maps a range preset to the created_at lower bound; zero time
// means unbounded
func dateCutoff(dateRange string, now time.Time) time.Time {
	switch dateRange {
	case DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case DateRangeMonth:
		return now.AddDate(0, -1, 0)
	case DateRangeYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

func (s *searchService) Search(query string, req common.PageRequest, filters SearchFilters) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLength {
		return emptyResult(req), nil
	}

	cutoff := dateCutoff(filters.DateRange, time.Now())
	wantKind := func(kind string) bool {
		return filters.Kind == "" || filters.Kind == kind
	}

	result := &SearchResult{
		Threads: common.EmptyPage[*domain.Thread](req),
		Posts:   common.EmptyPage[*domain.Post](req),
		Users:   common.EmptyPage[*domain.User](req),
	}

	if wantKind(KindThreads) {
		f := repository.ThreadFilter{
			Query:        query,
			CategoryIDs:  filters.CategoryIDs,
			AuthorID:     filters.AuthorID,
			CreatedAfter: cutoff,
		}
		page, err := common.Paginate(req,
			func() (int64, error) { return s.threads.Count(f) },
			func(p, pp int) ([]*domain.Thread, error) { return s.threads.FindPage(f, p, pp) },
		)
		if err != nil {
			return nil, err
		}
		result.Threads = page
	}

	if wantKind(KindPosts) {
		f := repository.PostFilter{
			Query:        query,
			CategoryIDs:  filters.CategoryIDs,
			AuthorID:     filters.AuthorID,
			CreatedAfter: cutoff,
		}
		page, err := common.Paginate(req,
			func() (int64, error) { return s.posts.Count(f) },
			func(p, pp int) ([]*domain.Post, error) { return s.posts.FindPage(f, p, pp) },
		)
		if err != nil {
			return nil, err
		}
		result.Posts = page
	}

	if wantKind(KindUsers) {
		f := repository.UserFilter{Query: query}
		page, err := common.Paginate(req,
			func() (int64, error) { return s.users.Count(f) },
			func(p, pp int) ([]*domain.User, error) { return s.users.FindPage(f, p, pp) },
		)
		if err != nil {
			return nil, err
		}
		result.Users = page
	}

	result.Total = result.Threads.Total + result.Posts.Total + result.Users.Total
	result.TotalPages = maxInt(result.Threads.TotalPages, result.Posts.TotalPages, result.Users.TotalPages)
	return result, nil
}

func emptyResult(req common.PageRequest) *SearchResult {
	return &SearchResult{
		Threads:    common.EmptyPage[*domain.Thread](req),
		Posts:      common.EmptyPage[*domain.Post](req),
		Users:      common.EmptyPage[*domain.User](req),
		Total:      0,
		TotalPages: 1,
	}
}

func maxInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
