//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	audit "inu/pkg/platform/audit"
	auditpostgres "inu/pkg/platform/audit/store/postgres"
	"inu/pkg/platform/tx"
	"inu/pkg/testutil/containers"
)

type OutboxSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditpostgres.Store
	runner   *tx.SQL
}

func TestOutboxSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxSuite))
}

func (s *OutboxSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = auditpostgres.New(s.postgres.DB)
	s.runner = tx.NewSQL(s.postgres.DB)
}

func (s *OutboxSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "outbox"))
}

func (s *OutboxSuite) TestAppendKeysByAggregate() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Action:    string(audit.EventDomainCreated),
		Actor:     "alice",
		Subject:   "acme",
		Timestamp: base,
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Action:    string(audit.EventSubdomainCreated),
		Actor:     "alice",
		Subject:   "www",
		Parent:    "acme",
		Timestamp: base.Add(time.Second),
	}))

	entries, err := s.store.FetchUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("acme", entries[0].Key)
	s.Equal("domain_created", entries[0].EventType)
	s.Equal("acme", entries[1].Key, "subdomain events are keyed by their parent")

	var payload auditpostgres.Payload
	s.Require().NoError(json.Unmarshal(entries[1].Payload, &payload))
	s.Equal("www", payload.Subject)
	s.Equal("acme", payload.Parent)
	s.Equal(string(audit.CategoryOwnership), payload.Category)

	s.Require().NoError(s.store.MarkPublished(ctx, []string{entries[0].ID}, time.Now()))
	entries, err = s.store.FetchUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("subdomain_created", entries[0].EventType)
}

func (s *OutboxSuite) TestAppendJoinsCallerTransaction() {
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Append(ctx, audit.Event{
			Action:  string(audit.EventDomainCreated),
			Subject: "rolled-back",
		}))
		return errAbort
	})
	s.Require().ErrorIs(err, errAbort)

	entries, err := s.store.FetchUnpublished(ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}
