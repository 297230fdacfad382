package service

import (
	"time"

	"github.com/talkbase/forum-backend/internal/common"
	"github.com/talkbase/forum-backend/internal/domain"
	"github.com/talkbase/forum-backend/internal/repository"
	"gorm.io/gorm"
)

// PostService business logic for posts. Replies are gated by the thread
// lock write barrier; edits run the same versioned protocol as threads.
type PostService interface {
	CreateReply(threadID, actorID uint64, req *domain.CreatePostRequest) (*domain.Post, error)
	Get(id uint64) (*domain.Post, error)
	ListByThread(threadID uint64, req common.PageRequest) (*common.PageResult[*domain.Post], error)
	Edit(id, actorID uint64, req *domain.UpdatePostRequest) (*domain.Post, error)
	Delete(id, actorID uint64) error
	ListHistory(id uint64) ([]*domain.Revision, error)
	GetVersion(id uint64, version uint) (*domain.Revision, error)
}

type postService struct {
	tx        repository.TxManager
	posts     repository.PostRepository
	threads   repository.ThreadRepository
	revisions repository.RevisionRepository
	users     repository.UserRepository
}

// NewPostService creates a new PostService
func NewPostService(
	tx repository.TxManager,
	posts repository.PostRepository,
	threads repository.ThreadRepository,
	revisions repository.RevisionRepository,
	users repository.UserRepository,
) PostService {
	return &postService{
		tx:        tx,
		posts:     posts,
		threads:   threads,
		revisions: revisions,
		users:     users,
	}
}

func (s *postService) CreateReply(threadID, actorID uint64, req *domain.CreatePostRequest) (*domain.Post, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	thread, err := s.threads.FindByID(threadID)
	if err != nil {
		return nil, err
	}
	if err := CanPostReply(actor, thread, time.Now()); err != nil {
		return nil, err
	}

	post := &domain.Post{
		ThreadID:       thread.ID,
		AuthorID:       actor.ID,
		Content:        req.Content,
		CurrentVersion: 1,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(id uint64) (*domain.Post, error) {
	return s.posts.FindByID(id)
}

func (s *postService) ListByThread(threadID uint64, req common.PageRequest) (*common.PageResult[*domain.Post], error) {
	if _, err := s.threads.FindByID(threadID); err != nil {
		return nil, err
	}
	f := repository.PostFilter{ThreadID: threadID}
	return common.Paginate(req,
		func() (int64, error) { return s.posts.Count(f) },
		func(page, perPage int) ([]*domain.Post, error) { return s.posts.FindPage(f, page, perPage) },
	)
}

func (s *postService) Edit(id, actorID uint64, req *domain.UpdatePostRequest) (*domain.Post, error) {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	var updated *domain.Post
	err = s.tx.Do(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)

		post, err := posts.FindByID(id)
		if err != nil {
			return err
		}
		if err := CanModerate(actor, post.AuthorID); err != nil {
			return err
		}

		rev := &domain.Revision{
			EntityType: domain.EntityPost,
			EntityID:   post.ID,
			Version:    post.CurrentVersion,
			Content:    post.Content,
			EditedBy:   actor.ID,
		}
		if err := s.revisions.WithTx(tx).Create(rev); err != nil {
			return classifyDuplicate(err)
		}

		fromVersion := post.CurrentVersion
		post.Content = req.Content
		post.CurrentVersion = fromVersion + 1

		affected, err := posts.UpdateVersioned(post, fromVersion)
		if err != nil {
			return err
		}
		if affected == 0 {
			return common.ErrConflict
		}
		updated = post
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the post together with its revision history
func (s *postService) Delete(id, actorID uint64) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return common.ErrUnauthorized
	}

	return s.tx.Do(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)

		post, err := posts.FindByID(id)
		if err != nil {
			return err
		}
		if err := CanModerate(actor, post.AuthorID); err != nil {
			return err
		}
		if err := s.revisions.WithTx(tx).DeleteByEntity(domain.EntityPost, id); err != nil {
			return err
		}
		return posts.Delete(id)
	})
}

func (s *postService) ListHistory(id uint64) ([]*domain.Revision, error) {
	if _, err := s.posts.FindByID(id); err != nil {
		return nil, err
	}
	return s.revisions.FindByEntity(domain.EntityPost, id)
}

func (s *postService) GetVersion(id uint64, version uint) (*domain.Revision, error) {
	if _, err := s.posts.FindByID(id); err != nil {
		return nil, err
	}
	return s.revisions.FindByEntityAndVersion(domain.EntityPost, id, version)
}
