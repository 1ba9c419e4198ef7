package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"inu/internal/registry/models"
	id "inu/pkg/domain"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
)

type DomainStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	now   time.Time
}

func TestDomainStoreSuite(t *testing.T) {
	suite.Run(t, new(DomainStoreSuite))
}

func (s *DomainStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *DomainStoreSuite) create(name string, owner id.AccountID) *models.DomainRecord {
	next, err := s.store.NextSequenceID(s.ctx)
	s.Require().NoError(err)
	record := models.NewDomainRecord(name, owner, next, s.now)
	s.Require().NoError(s.store.Create(s.ctx, record))
	return record
}

func (s *DomainStoreSuite) TestCreationAndLookups() {
	s.Run("sequence ids start at zero and grow by one", func() {
		first := s.create("alpha", "acct-1")
		second := s.create("beta", "acct-1")
		s.Equal(uint64(0), first.SequenceID)
		s.Equal(uint64(1), second.SequenceID)
	})

	s.Run("finds by name and sequence id", func() {
		byName, err := s.store.FindByName(s.ctx, "beta")
		s.Require().NoError(err)
		bySeq, err := s.store.FindBySequenceID(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal(byName, bySeq)
	})

	s.Run("unknown name and sequence id", func() {
		_, err := s.store.FindByName(s.ctx, "missing")
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindBySequenceID(s.ctx, 99)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate name is rejected", func() {
		err := s.store.Create(s.ctx, models.NewDomainRecord("alpha", "acct-2", 2, s.now))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("out of order sequence id is rejected", func() {
		err := s.store.Create(s.ctx, models.NewDomainRecord("gamma", "acct-2", 7, s.now))
		s.ErrorIs(err, sentinel.ErrInvalidState)
	})

	s.Run("returned records are copies", func() {
		found, err := s.store.FindByName(s.ctx, "alpha")
		s.Require().NoError(err)
		found.Owner = "tampered"
		again, err := s.store.FindByName(s.ctx, "alpha")
		s.Require().NoError(err)
		s.Equal(id.AccountID("acct-1"), again.Owner)
	})
}

func (s *DomainStoreSuite) TestOwnership() {
	s.create("alpha", "acct-1")
	s.create("beta", "acct-2")
	s.create("gamma", "acct-1")

	s.Run("lists by owner in creation order", func() {
		records, err := s.store.ListByOwner(s.ctx, "acct-1")
		s.Require().NoError(err)
		s.Require().Len(records, 2)
		s.Equal("alpha", records[0].Name)
		s.Equal("gamma", records[1].Name)
	})

	s.Run("update owner moves the record", func() {
		later := s.now.Add(time.Hour)
		s.Require().NoError(s.store.UpdateOwner(s.ctx, 0, "acct-2", later))
		found, err := s.store.FindBySequenceID(s.ctx, 0)
		s.Require().NoError(err)
		s.Equal(id.AccountID("acct-2"), found.Owner)
		s.Equal(later, found.UpdatedAt)
		s.Equal(s.now, found.CreatedAt)
	})

	s.Run("update of unknown record", func() {
		s.ErrorIs(s.store.UpdateOwner(s.ctx, 42, "acct-2", s.now), sentinel.ErrNotFound)
	})
}

func (s *DomainStoreSuite) TestRollback() {
	runner := tx.NewInMemory()
	s.create("alpha", "acct-1")
	errAbort := errors.New("abort")

	err := runner.RunInTx(s.ctx, func(ctx context.Context) error {
		s.Require().NoError(s.store.Create(ctx, models.NewDomainRecord("beta", "acct-1", 1, s.now)))
		s.Require().NoError(s.store.UpdateOwner(ctx, 0, "acct-9", s.now.Add(time.Minute)))
		return errAbort
	})
	s.Require().ErrorIs(err, errAbort)

	_, err = s.store.FindByName(s.ctx, "beta")
	s.ErrorIs(err, sentinel.ErrNotFound)
	next, err := s.store.NextSequenceID(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), next)
	alpha, err := s.store.FindByName(s.ctx, "alpha")
	s.Require().NoError(err)
	s.Equal(id.AccountID("acct-1"), alpha.Owner)
	s.Equal(s.now, alpha.UpdatedAt)
}
