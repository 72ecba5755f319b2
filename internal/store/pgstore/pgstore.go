// Package pgstore is the PostgreSQL implementation of store.Repository.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/johndosdos/escola/internal/database"
	"github.com/johndosdos/escola/internal/model"
	"github.com/johndosdos/escola/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsDir is the goose directory inside the embedded FS.
const MigrationsDir = "migrations"

// Store is a store.Repository backed by a pgx pool and the sqlc queries.
type Store struct {
	pool *pgxpool.Pool
	q    *database.Queries
}

var _ store.Repository = (*Store)(nil)

// New wraps an open pool. The schema must already be migrated.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: database.New(pool)}
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("pgstore: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, MigrationsDir); err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

// Seed inserts the sample data unless it is already there.
func (s *Store) Seed(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgstore: begin seed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	qtx := s.q.WithTx(tx)

	inboxByID := make(map[string]model.Message)
	for _, m := range store.SeedInbox() {
		inboxByID[m.ID] = m
	}

	for _, m := range store.SeedSent() {
		in := inboxByID[m.ID]
		err := qtx.InsertSeedMessage(ctx, database.InsertSeedMessageParams{
			ID:              m.ID,
			Title:           m.Title,
			Content:         m.Content,
			Sender:          in.Sender,
			SentAt:          m.Date,
			Type:            string(m.Type),
			Category:        m.Category,
			ReadByDefault:   in.Read,
			ReadCount:       int32(m.ReadCount),
			TotalRecipients: int32(m.TotalRecipients),
			HasAttachment:   m.HasAttachment,
		})
		if err != nil {
			return fmt.Errorf("pgstore: seed message %s: %w", m.ID, err)
		}
	}

	for _, r := range store.SeedRecipients() {
		err := qtx.InsertRecipient(ctx, database.InsertRecipientParams{Email: r.Email, Label: r.Label})
		if err != nil {
			return fmt.Errorf("pgstore: seed recipient %s: %w", r.Email, err)
		}
	}

	st := store.SeedStats()
	if err := qtx.InsertSchoolStats(ctx, database.InsertSchoolStatsParams{
		Total:         int32(st.Messages.Total),
		Read:          int32(st.Messages.Read),
		General:       int32(st.Messages.General),
		Individual:    int32(st.Messages.Individual),
		TotalParents:  int32(st.Users.TotalParents),
		ActiveParents: int32(st.Users.ActiveParents),
		TotalStudents: int32(st.Users.TotalStudents),
	}); err != nil {
		return fmt.Errorf("pgstore: seed stats: %w", err)
	}

	return tx.Commit(ctx)
}

// Inbox returns the general messages plus those addressed to owner.
func (s *Store) Inbox(ctx context.Context, owner string) ([]model.Message, error) {
	rows, err := s.q.ListInbox(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list inbox: %w", err)
	}

	msgs := make([]model.Message, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, model.Message{
			ID:            r.ID,
			Title:         r.Title,
			Content:       r.Content,
			Sender:        r.Sender,
			Date:          r.SentAt,
			Type:          model.MessageType(r.Type),
			Category:      r.Category,
			HasAttachment: r.HasAttachment,
			Read:          r.Read,
		})
	}
	return msgs, nil
}

// MarkRead records the read and bumps the message's read count once.
func (s *Store) MarkRead(ctx context.Context, owner, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgstore: begin mark read: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	qtx := s.q.WithTx(tx)

	readByDefault, err := qtx.GetReadByDefault(ctx, database.GetReadByDefaultParams{ID: id, Owner: owner})
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("pgstore: get message %s: %w", id, err)
	}
	if readByDefault {
		return nil
	}

	inserted, err := qtx.InsertMessageRead(ctx, database.InsertMessageReadParams{Owner: owner, MessageID: id})
	if err != nil {
		return fmt.Errorf("pgstore: insert read: %w", err)
	}
	if inserted == 1 {
		if err := qtx.BumpReadCount(ctx, id); err != nil {
			return fmt.Errorf("pgstore: bump read count: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Sent returns the school history, newest first.
func (s *Store) Sent(ctx context.Context) ([]model.SentMessage, error) {
	rows, err := s.q.ListSent(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list sent: %w", err)
	}

	msgs := make([]model.SentMessage, 0, len(rows))
	for _, r := range rows {
		msgs = append(msgs, model.SentMessage{
			ID:              r.ID,
			Title:           r.Title,
			Content:         r.Content,
			Date:            r.SentAt,
			Type:            model.MessageType(r.Type),
			Category:        r.Category,
			Recipient:       r.Recipient,
			ReadCount:       int(r.ReadCount),
			TotalRecipients: int(r.TotalRecipients),
			HasAttachment:   r.HasAttachment,
		})
	}
	return msgs, nil
}

// Send inserts msg and updates the school counters.
func (s *Store) Send(ctx context.Context, msg model.SentMessage, sender string) (model.SentMessage, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.SentMessage{}, fmt.Errorf("pgstore: begin send: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck
	qtx := s.q.WithTx(tx)

	var recipient *string
	switch msg.Type {
	case model.TypeGeneral:
		msg.Recipient = ""
		parents, err := qtx.GetTotalParents(ctx)
		if err != nil {
			return model.SentMessage{}, fmt.Errorf("pgstore: count parents: %w", err)
		}
		msg.TotalRecipients = int(parents)
	case model.TypeIndividual:
		exists, err := qtx.RecipientExists(ctx, msg.Recipient)
		if err != nil {
			return model.SentMessage{}, fmt.Errorf("pgstore: check recipient: %w", err)
		}
		if !exists {
			return model.SentMessage{}, fmt.Errorf("pgstore: recipient %q: %w", msg.Recipient, store.ErrNotFound)
		}
		recipient = &msg.Recipient
		msg.TotalRecipients = 1
	default:
		return model.SentMessage{}, fmt.Errorf("pgstore: unknown message type %q", msg.Type)
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Date.IsZero() {
		msg.Date = time.Now()
	}
	msg.ReadCount = 0

	if err := qtx.InsertMessage(ctx, database.InsertMessageParams{
		ID:              msg.ID,
		Title:           msg.Title,
		Content:         msg.Content,
		Sender:          sender,
		SentAt:          msg.Date,
		Type:            string(msg.Type),
		Category:        msg.Category,
		Recipient:       recipient,
		TotalRecipients: int32(msg.TotalRecipients),
		HasAttachment:   msg.HasAttachment,
	}); err != nil {
		return model.SentMessage{}, fmt.Errorf("pgstore: insert message: %w", err)
	}

	if err := qtx.IncrementSentStats(ctx, string(msg.Type)); err != nil {
		return model.SentMessage{}, fmt.Errorf("pgstore: update stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.SentMessage{}, fmt.Errorf("pgstore: commit send: %w", err)
	}
	return msg, nil
}

func (s *Store) Recipients(ctx context.Context) ([]model.Recipient, error) {
	rows, err := s.q.ListRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("pgstore: list recipients: %w", err)
	}
	recipients := make([]model.Recipient, 0, len(rows))
	for _, r := range rows {
		recipients = append(recipients, model.Recipient{Email: r.Email, Label: r.Label})
	}
	return recipients, nil
}

func (s *Store) Stats(ctx context.Context) (model.SchoolStats, error) {
	row, err := s.q.GetSchoolStats(ctx)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Printf("pgstore: school_stats is empty; was Seed run?")
		return model.SchoolStats{}, store.ErrNotFound
	}
	if err != nil {
		return model.SchoolStats{}, fmt.Errorf("pgstore: get stats: %w", err)
	}
	var st model.SchoolStats
	st.Messages.Total = int(row.Total)
	st.Messages.Read = int(row.Read)
	st.Messages.General = int(row.General)
	st.Messages.Individual = int(row.Individual)
	st.Users.TotalParents = int(row.TotalParents)
	st.Users.ActiveParents = int(row.ActiveParents)
	st.Users.TotalStudents = int(row.TotalStudents)
	return st, nil
}

// Events and activities are static content for now.

func (s *Store) Events(_ context.Context) ([]model.Event, error) {
	return store.SeedEvents(), nil
}

func (s *Store) Activities(_ context.Context) ([]model.Activity, error) {
	return store.SeedActivities(), nil
}

func (s *Store) Overview(_ context.Context, owner string) (model.ParentOverview, error) {
	return store.SeedOverview(owner), nil
}
