package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/firmdesk/firmdesk/internal/portal/domain"
	"github.com/firmdesk/firmdesk/internal/portal/store"
	"github.com/firmdesk/firmdesk/pkg/idx"
	"github.com/firmdesk/firmdesk/pkg/slogx"
)

var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrBlankTitle     = errors.New("thread title cannot be blank")
	ErrEmptyMessage   = errors.New("message body cannot be empty")
)

// ThreadService manages discussion threads and their open/resolved
// lifecycle.
type ThreadService struct {
	Store    store.Store
	Notifier Notifier
}

// Create opens a new thread. Its last activity starts at creation time so a
// message-less thread still sorts sensibly.
func (s *ThreadService) Create(ctx context.Context, orgID, title string) (domain.Thread, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(title) == "" {
		return domain.Thread{}, ErrBlankTitle
	}

	if _, err := s.Store.Orgs().GetOrgByID(ctx, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Thread{}, ErrOrgNotFound
		}
		return domain.Thread{}, err
	}

	now := time.Now().UTC()
	t := domain.Thread{
		ID:             idx.New().String(),
		OrgID:          orgID,
		Title:          title,
		Status:         domain.ThreadOpen,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Threads().CreateThread(ctx, t); err != nil {
		log.Error("failed to create thread", slog.Any("error", err))
		return domain.Thread{}, err
	}

	log.Info("thread created",
		slog.String("thread_id", t.ID),
		slog.String("org_id", orgID),
	)
	return t, nil
}

// PostMessage appends a message and bumps the thread's activity. Posting to
// a resolved thread reopens it in the same transaction, so readers never see
// a resolved thread with activity newer than its close.
func (s *ThreadService) PostMessage(ctx context.Context, threadID, authorID, body string) (domain.Message, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(body) == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	thread, err := s.Store.Threads().GetThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Message{}, ErrThreadNotFound
		}
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:        idx.New().String(),
		ThreadID:  thread.ID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	// The activity bump reuses the message's creation time so the two stay
	// equal.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Threads().CreateMessage(ctx, msg); err != nil {
			return err
		}
		return tx.Threads().TouchThreadActivity(ctx, thread.ID, msg.CreatedAt)
	})
	if err != nil {
		log.Error("failed to post message",
			slog.String("thread_id", thread.ID),
			slog.Any("error", err),
		)
		return domain.Message{}, err
	}

	s.notify(ctx, Event{
		Kind:     EventMessagePosted,
		OrgID:    thread.OrgID,
		EntityID: thread.ID,
		ActorID:  authorID,
	})

	log.Info("message posted",
		slog.String("thread_id", thread.ID),
		slog.String("message_id", msg.ID),
	)
	return msg, nil
}

// Resolve closes an open thread, recording who closed it. Resolving an
// already-resolved thread fails with ErrInvalidState.
func (s *ThreadService) Resolve(ctx context.Context, threadID, closerID string) error {
	log := slogx.FromContext(ctx)

	thread, err := s.Store.Threads().GetThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrThreadNotFound
		}
		return err
	}

	if err := s.Store.Threads().ResolveThread(ctx, thread.ID, closerID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidState
		}
		return err
	}

	s.notify(ctx, Event{
		Kind:     EventThreadResolved,
		OrgID:    thread.OrgID,
		EntityID: thread.ID,
		ActorID:  closerID,
	})

	log.Info("thread resolved",
		slog.String("thread_id", thread.ID),
		slog.String("closer_id", closerID),
	)
	return nil
}

// Reopen flips a resolved thread back to open without posting a message.
// Reopening an open thread fails with ErrInvalidState.
func (s *ThreadService) Reopen(ctx context.Context, threadID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Threads().ReopenThread(ctx, threadID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		if _, gerr := s.Store.Threads().GetThreadByID(ctx, threadID); gerr != nil {
			if errors.Is(gerr, store.ErrNotFound) {
				return ErrThreadNotFound
			}
			return gerr
		}
		return ErrInvalidState
	}

	log.Info("thread reopened", slog.String("thread_id", threadID))
	return nil
}

// Get fetches a thread by ID.
func (s *ThreadService) Get(ctx context.Context, threadID string) (domain.Thread, error) {
	t, err := s.Store.Threads().GetThreadByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Thread{}, ErrThreadNotFound
		}
		return domain.Thread{}, err
	}
	return t, nil
}

// ListThreads returns an org's threads, most recent activity first.
func (s *ThreadService) ListThreads(ctx context.Context, orgID string) ([]domain.Thread, error) {
	return s.Store.Threads().ListThreadsByOrg(ctx, orgID)
}

// ListMessages returns a thread's messages, oldest first.
func (s *ThreadService) ListMessages(ctx context.Context, threadID string) ([]domain.Message, error) {
	msgs, err := s.Store.Threads().ListMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *ThreadService) notify(ctx context.Context, e Event) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, e)
	}
}
