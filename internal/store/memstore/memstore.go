// Package memstore keeps the portal's messages in memory, seeded from the
// sample data. Inboxes are created on first access after an optional
// simulated fetch delay and live until the process exits.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/johndosdos/escola/internal/inbox"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/store"
)

// delivery is a message sent while the process runs. to is empty for
// general messages.
type delivery struct {
	msg model.Message
	to  string
}

// Store is an in-memory store.Repository.
type Store struct {
	mu         sync.RWMutex
	inboxes    map[string][]model.Message
	deliveries []delivery
	sent       []model.SentMessage
	stats      model.SchoolStats
	recipients []model.Recipient

	delay time.Duration
	loads singleflight.Group
	now   func() time.Time
}

// New returns a Store seeded with the sample data. delay is waited once
// per inbox before it is first returned.
func New(delay time.Duration) *Store {
	return &Store{
		inboxes:    make(map[string][]model.Message),
		sent:       store.SeedSent(),
		stats:      store.SeedStats(),
		recipients: store.SeedRecipients(),
		delay:      delay,
		now:        time.Now,
	}
}

var _ store.Repository = (*Store)(nil)

func (s *Store) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loadTimeout bounds a shared inbox load once it no longer follows the
// caller that started it.
const loadTimeout = 30 * time.Second

// Inbox returns a copy of the owner's messages, loading them on first use.
// Concurrent first loads for the same owner share one fetch; a caller that
// gives up does not fail the others.
func (s *Store) Inbox(ctx context.Context, owner string) ([]model.Message, error) {
	s.mu.RLock()
	msgs, ok := s.inboxes[owner]
	s.mu.RUnlock()
	if ok {
		return slices.Clone(msgs), nil
	}

	ch := s.loads.DoChan(owner, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return s.load(loadCtx, owner)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]model.Message)), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("memstore: load inbox: %w", ctx.Err())
	}
}

func (s *Store) load(ctx context.Context, owner string) ([]model.Message, error) {
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("memstore: load inbox: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if msgs, ok := s.inboxes[owner]; ok {
		return msgs, nil
	}
	msgs := store.SeedInbox()
	for _, d := range s.deliveries {
		if d.to == "" || d.to == owner {
			msgs = slices.Insert(msgs, 0, d.msg)
		}
	}
	s.inboxes[owner] = msgs
	return msgs, nil
}

// MarkRead flags the message as read. The school's read count for the
// message goes up the first time a parent reads it.
func (s *Store) MarkRead(ctx context.Context, owner, id string) error {
	if _, err := s.Inbox(ctx, owner); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.inboxes[owner]
	i := slices.IndexFunc(msgs, func(m model.Message) bool { return m.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	if msgs[i].Read {
		return nil
	}
	s.inboxes[owner] = inbox.MarkRead(msgs, id)

	for j := range s.sent {
		if s.sent[j].ID == id && s.sent[j].ReadCount < s.sent[j].TotalRecipients {
			s.sent[j].ReadCount++
		}
	}
	return nil
}

// Sent returns a copy of the school history.
func (s *Store) Sent(ctx context.Context) ([]model.SentMessage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, fmt.Errorf("memstore: load history: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sent), nil
}

// Send stores msg at the top of the history and delivers it. sender is the
// name shown to parents.
func (s *Store) Send(ctx context.Context, msg model.SentMessage, sender string) (model.SentMessage, error) {
	if err := ctx.Err(); err != nil {
		return model.SentMessage{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := delivery{}
	switch msg.Type {
	case model.TypeGeneral:
		msg.Recipient = ""
		msg.TotalRecipients = s.stats.Users.TotalParents
	case model.TypeIndividual:
		if !slices.ContainsFunc(s.recipients, func(r model.Recipient) bool { return r.Email == msg.Recipient }) {
			return model.SentMessage{}, fmt.Errorf("memstore: recipient %q: %w", msg.Recipient, store.ErrNotFound)
		}
		d.to = msg.Recipient
		msg.TotalRecipients = 1
	default:
		return model.SentMessage{}, fmt.Errorf("memstore: unknown message type %q", msg.Type)
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Date.IsZero() {
		msg.Date = s.now()
	}
	msg.ReadCount = 0

	d.msg = model.Message{
		ID:            msg.ID,
		Title:         msg.Title,
		Content:       msg.Content,
		Sender:        sender,
		Date:          msg.Date,
		Type:          msg.Type,
		Category:      msg.Category,
		HasAttachment: msg.HasAttachment,
	}
	s.deliveries = append(s.deliveries, d)
	for owner, msgs := range s.inboxes {
		if d.to == "" || d.to == owner {
			s.inboxes[owner] = slices.Insert(slices.Clone(msgs), 0, d.msg)
		}
	}

	s.sent = slices.Insert(s.sent, 0, msg)
	s.stats.Messages.Total++
	if msg.Type == model.TypeGeneral {
		s.stats.Messages.General++
	} else {
		s.stats.Messages.Individual++
	}

	return msg, nil
}

func (s *Store) Recipients(_ context.Context) ([]model.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.recipients), nil
}

func (s *Store) Events(_ context.Context) ([]model.Event, error) {
	return store.SeedEvents(), nil
}

func (s *Store) Activities(_ context.Context) ([]model.Activity, error) {
	return store.SeedActivities(), nil
}

func (s *Store) Stats(_ context.Context) (model.SchoolStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats, nil
}

func (s *Store) Overview(_ context.Context, owner string) (model.ParentOverview, error) {
	return store.SeedOverview(owner), nil
}
