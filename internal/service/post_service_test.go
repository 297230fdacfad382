package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
)

func newPostService(posts *MockPostRepository, threads *MockThreadRepository, revisions *MockRevisionRepository, users *MockUserRepository) PostService {
	return NewPostService(fakeTxManager{}, posts, threads, revisions, users)
}

func TestPostServiceCreateReply(t *testing.T) {
	t.Run("reply to open thread", func(t *testing.T) {
		posts := new(MockPostRepository)
		threads := new(MockThreadRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, threads, new(MockRevisionRepository), users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		threads.On("FindByID", uint64(10)).Return(&domain.Thread{ID: 10, IsLocked: false}, nil)
		posts.On("Create", mock.AnythingOfType("*domain.Post")).
			Run(func(args mock.Arguments) {
				p := args.Get(0).(*domain.Post)
				assert.Equal(t, uint64(10), p.ThreadID)
				assert.Equal(t, uint64(1), p.AuthorID)
				assert.Equal(t, uint(1), p.CurrentVersion)
			}).Return(nil)

		post, err := svc.CreateReply(10, 1, &domain.CreatePostRequest{Content: "reply"})

		assert.NoError(t, err)
		assert.Equal(t, "reply", post.Content)
		posts.AssertExpectations(t)
	})

	t.Run("locked thread blocks replies from everyone", func(t *testing.T) {
		posts := new(MockPostRepository)
		threads := new(MockThreadRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, threads, new(MockRevisionRepository), users)

		users.On("FindByID", uint64(9)).Return(activeAdmin(9), nil)
		threads.On("FindByID", uint64(10)).Return(&domain.Thread{ID: 10, IsLocked: true}, nil)

		_, err := svc.CreateReply(10, 9, &domain.CreatePostRequest{Content: "reply"})

		assert.ErrorIs(t, err, common.ErrThreadLocked)
		posts.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("banned user cannot reply", func(t *testing.T) {
		threads := new(MockThreadRepository)
		users := new(MockUserRepository)
		svc := newPostService(new(MockPostRepository), threads, new(MockRevisionRepository), users)

		banned := activeUser(1)
		banned.Status = domain.StatusBanned
		users.On("FindByID", uint64(1)).Return(banned, nil)
		threads.On("FindByID", uint64(10)).Return(&domain.Thread{ID: 10}, nil)

		_, err := svc.CreateReply(10, 1, &domain.CreatePostRequest{Content: "reply"})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("missing thread yields not found", func(t *testing.T) {
		threads := new(MockThreadRepository)
		users := new(MockUserRepository)
		svc := newPostService(new(MockPostRepository), threads, new(MockRevisionRepository), users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		threads.On("FindByID", uint64(99)).Return(nil, common.ErrNotFound)

		_, err := svc.CreateReply(99, 1, &domain.CreatePostRequest{Content: "reply"})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestPostServiceEdit(t *testing.T) {
	t.Run("snapshots and bumps version", func(t *testing.T) {
		posts := new(MockPostRepository)
		revisions := new(MockRevisionRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), revisions, users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{
			ID: 20, ThreadID: 10, AuthorID: 1, Content: "before", CurrentVersion: 1,
		}, nil)
		revisions.On("Create", mock.AnythingOfType("*domain.Revision")).
			Run(func(args mock.Arguments) {
				rev := args.Get(0).(*domain.Revision)
				assert.Equal(t, domain.EntityPost, rev.EntityType)
				assert.Equal(t, uint64(20), rev.EntityID)
				assert.Equal(t, uint(1), rev.Version)
				assert.Equal(t, "before", rev.Content)
			}).Return(nil)
		posts.On("UpdateVersioned", mock.AnythingOfType("*domain.Post"), uint(1)).Return(int64(1), nil)

		updated, err := svc.Edit(20, 1, &domain.UpdatePostRequest{Content: "after"})

		assert.NoError(t, err)
		assert.Equal(t, "after", updated.Content)
		assert.Equal(t, uint(2), updated.CurrentVersion)
	})

	t.Run("version check miss is a conflict", func(t *testing.T) {
		posts := new(MockPostRepository)
		revisions := new(MockRevisionRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), revisions, users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{ID: 20, AuthorID: 1, CurrentVersion: 1}, nil)
		revisions.On("Create", mock.Anything).Return(nil)
		posts.On("UpdateVersioned", mock.Anything, uint(1)).Return(int64(0), nil)

		_, err := svc.Edit(20, 1, &domain.UpdatePostRequest{Content: "after"})
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("post in locked thread stays editable by its author", func(t *testing.T) {
		// The lock is a barrier on new replies only.
		posts := new(MockPostRepository)
		revisions := new(MockRevisionRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), revisions, users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{ID: 20, ThreadID: 10, AuthorID: 1, CurrentVersion: 2}, nil)
		revisions.On("Create", mock.Anything).Return(nil)
		posts.On("UpdateVersioned", mock.Anything, uint(2)).Return(int64(1), nil)

		_, err := svc.Edit(20, 1, &domain.UpdatePostRequest{Content: "still editable"})
		assert.NoError(t, err)
	})

	t.Run("non-author non-admin is forbidden", func(t *testing.T) {
		posts := new(MockPostRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), new(MockRevisionRepository), users)

		users.On("FindByID", uint64(2)).Return(activeUser(2), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{ID: 20, AuthorID: 1, CurrentVersion: 1}, nil)

		_, err := svc.Edit(20, 2, &domain.UpdatePostRequest{Content: "nope"})
		assert.ErrorIs(t, err, common.ErrForbidden)
	})
}

func TestPostServiceDelete(t *testing.T) {
	t.Run("removes post with its history", func(t *testing.T) {
		posts := new(MockPostRepository)
		revisions := new(MockRevisionRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), revisions, users)

		users.On("FindByID", uint64(1)).Return(activeUser(1), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{ID: 20, AuthorID: 1}, nil)
		revisions.On("DeleteByEntity", domain.EntityPost, uint64(20)).Return(nil)
		posts.On("Delete", uint64(20)).Return(nil)

		assert.NoError(t, svc.Delete(20, 1))
		posts.AssertExpectations(t)
		revisions.AssertExpectations(t)
	})

	t.Run("admin deletes someone else's post", func(t *testing.T) {
		posts := new(MockPostRepository)
		revisions := new(MockRevisionRepository)
		users := new(MockUserRepository)
		svc := newPostService(posts, new(MockThreadRepository), revisions, users)

		users.On("FindByID", uint64(9)).Return(activeAdmin(9), nil)
		posts.On("FindByID", uint64(20)).Return(&domain.Post{ID: 20, AuthorID: 1}, nil)
		revisions.On("DeleteByEntity", domain.EntityPost, uint64(20)).Return(nil)
		posts.On("Delete", uint64(20)).Return(nil)

		assert.NoError(t, svc.Delete(20, 9))
	})
}

func TestPostServiceListByThread(t *testing.T) {
	posts := new(MockPostRepository)
	threads := new(MockThreadRepository)
	svc := newPostService(posts, threads, new(MockRevisionRepository), new(MockUserRepository))

	threads.On("FindByID", uint64(10)).Return(&domain.Thread{ID: 10}, nil)
	posts.On("Count", mock.Anything).Return(int64(2), nil)
	posts.On("FindPage", mock.Anything, 1, 15).Return([]*domain.Post{{ID: 20}, {ID: 21}}, nil)

	result, err := svc.ListByThread(10, common.PageRequest{Page: 1, PerPage: 15})

	assert.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}
