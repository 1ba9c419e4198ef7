package service

//go:generate mockgen -source=directory.go -destination=mocks/mocks.go -package=mocks RegistryReader,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"inu/internal/registrar/metrics"
	"inu/internal/registrar/models"
	"inu/internal/registrar/service/mocks"
	registrarStore "inu/internal/registrar/store/registrar"
	subdomainStore "inu/internal/registrar/store/subdomain"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/audit/publisher"
	auditmemory "inu/pkg/platform/audit/store/memory"
	"inu/pkg/platform/tx"
	"inu/pkg/requestcontext"
)

const (
	admin = id.AccountID("admin")
	alice = id.AccountID("alice")
	bob   = id.AccountID("bob")
)

type RegistrarServiceSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	registry   *mocks.MockRegistryReader
	registrars *registrarStore.InMemory
	subdomains *subdomainStore.InMemory
	auditLog   *auditmemory.InMemoryStore
	metrics    *metrics.Metrics
	runner     *tx.InMemory
	dir        *Directory
	reg        *Registrar
}

func TestRegistrarServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistrarServiceSuite))
}

func (s *RegistrarServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	s.ctrl = gomock.NewController(s.T())
	s.registry = mocks.NewMockRegistryReader(s.ctrl)
	s.registrars = registrarStore.NewInMemory()
	s.subdomains = subdomainStore.NewInMemory()
	s.auditLog = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.runner = tx.NewInMemory()
	s.dir = s.newDirectory()

	s.Require().NoError(s.dir.Provision(s.ctx, "elon", admin))
	var err error
	s.reg, err = s.dir.Open(s.ctx, "elon")
	s.Require().NoError(err)
}

func (s *RegistrarServiceSuite) newDirectory(opts ...Option) *Directory {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditPublisher(publisher.New(s.auditLog)),
	}
	return NewDirectory(s.registrars, s.subdomains, s.registry, s.runner, append(base, opts...)...)
}

func (s *RegistrarServiceSuite) create(names ...string) {
	for _, name := range names {
		s.Require().NoError(s.reg.CreateSubdomain(s.ctx, name, admin))
	}
}

func (s *RegistrarServiceSuite) view(name string) models.SubdomainView {
	view, err := s.reg.Subdomain(s.ctx, name)
	s.Require().NoError(err)
	return view
}

func (s *RegistrarServiceSuite) holds(account id.AccountID) bool {
	holds, err := s.reg.HasSubdomain(s.ctx, account)
	s.Require().NoError(err)
	return holds
}

// =============================================================================
// Directory
// =============================================================================

func (s *RegistrarServiceSuite) TestDirectory() {
	s.Run("open returns the deployed registrar", func() {
		opened, err := s.dir.Open(s.ctx, "elon")
		s.Require().NoError(err)
		s.Equal("elon", opened.ParentDomain())
		s.Equal(admin, opened.Administrator())
	})

	s.Run("open of an unknown parent", func() {
		_, err := s.dir.Open(s.ctx, "vitalik")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("one registrar per parent", func() {
		s.registry.EXPECT().OwnerOf(gomock.Any(), "elon").Return(admin, nil)

		_, err := s.dir.Deploy(s.ctx, "elon", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeNameTaken))
	})

	s.Run("invalid parent name", func() {
		_, err := s.dir.Deploy(s.ctx, "not valid", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNameInvalid))
	})

	s.Run("deploy for the current owner of an issued domain", func() {
		s.registry.EXPECT().OwnerOf(gomock.Any(), "satoshi").Return(bob, nil)

		deployed, err := s.dir.Deploy(s.ctx, "satoshi", bob)
		s.Require().NoError(err)
		s.Equal(bob, deployed.Administrator())
	})

	s.Run("deploy for a domain that was never issued", func() {
		s.registry.EXPECT().OwnerOf(gomock.Any(), "uniswap").Return(id.ZeroAccount, nil)

		_, err := s.dir.Deploy(s.ctx, "uniswap", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = s.dir.Open(s.ctx, "uniswap")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound), "nothing is reserved for the name")
	})

	s.Run("deploy by someone other than the owner", func() {
		s.registry.EXPECT().OwnerOf(gomock.Any(), "uniswap").Return(alice, nil)

		_, err := s.dir.Deploy(s.ctx, "uniswap", bob)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))

		_, err = s.dir.Open(s.ctx, "uniswap")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("registry failure aborts the deploy", func() {
		s.registry.EXPECT().OwnerOf(gomock.Any(), "uniswap").Return(id.ZeroAccount, errors.New("ledger unavailable"))

		_, err := s.dir.Deploy(s.ctx, "uniswap", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("provision joins the caller's transaction", func() {
		err := s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			s.Require().NoError(s.dir.Provision(ctx, "vitalik", bob))
			return errors.New("domain creation failed")
		})
		s.Require().Error(err)
		_, err = s.dir.Open(s.ctx, "vitalik")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// Owner data
// =============================================================================

func (s *RegistrarServiceSuite) TestSetOwnerData() {
	info := models.OwnerInfo{Description: "Mars", Website: "x.com", Email: "e@x.com", Avatar: "ipfs://a"}

	s.Run("only the administrator", func() {
		err := s.reg.SetOwnerData(s.ctx, info, alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
		s.Equal("caller is not the owner", err.Error())
	})

	s.Run("overwrites the profile", func() {
		s.Require().NoError(s.reg.SetOwnerData(s.ctx, info, admin))
		got, err := s.reg.OwnerInfo(s.ctx)
		s.Require().NoError(err)
		s.Equal(info, got)
	})
}

// =============================================================================
// Subdomain creation
// =============================================================================

func (s *RegistrarServiceSuite) TestCreateSubdomain() {
	s.Run("creation order is preserved", func() {
		s.create("elon", "subdomain-a", "subdomain-b")
		names, err := s.reg.AllSubdomains(s.ctx)
		s.Require().NoError(err)
		s.Equal([]string{"elon", "subdomain-a", "subdomain-b"}, names)

		at, err := s.reg.SubdomainAt(s.ctx, 1)
		s.Require().NoError(err)
		s.Equal("subdomain-a", at)

		outOfRange, err := s.reg.SubdomainAt(s.ctx, 3)
		s.Require().NoError(err)
		s.Empty(outOfRange)
	})

	s.Run("fresh subdomain is registered but inactive and blank", func() {
		view := s.view("subdomain-a")
		s.True(view.Registered)
		s.False(view.Active)
		s.Equal(admin, view.Owner)
		s.Equal(models.BlankProfile(), view.Profile)
	})

	s.Run("never created subdomain", func() {
		view := s.view("ghost")
		s.False(view.Registered)
		s.False(view.Active)
		s.True(view.Owner.IsZero())
	})

	s.Run("names are never recycled", func() {
		err := s.reg.CreateSubdomain(s.ctx, "subdomain-a", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeNameTaken))
		s.Equal("This subdomain already exists!", err.Error())
	})

	s.Run("invalid names", func() {
		for _, name := range []string{"", "a b", "a.b"} {
			err := s.reg.CreateSubdomain(s.ctx, name, admin)
			s.True(dErrors.HasCode(err, dErrors.CodeNameInvalid), name)
		}
		names, err := s.reg.AllSubdomains(s.ctx)
		s.Require().NoError(err)
		s.Len(names, 3)
	})

	s.Run("only the administrator", func() {
		err := s.reg.CreateSubdomain(s.ctx, "other", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
	})
}

// =============================================================================
// Transfers
// =============================================================================

func (s *RegistrarServiceSuite) TestTransferRoundTrip() {
	s.create("subdomain-a")

	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "subdomain-a", alice, admin))
	s.True(s.view("subdomain-a").Active)
	s.True(s.holds(alice))

	profile := models.Profile{Description: "X", Website: models.Blank, Email: models.Blank, Avatar: models.Blank}
	s.Require().NoError(s.reg.ChangeSubdomainData(s.ctx, "subdomain-a", profile, alice))
	s.Equal("X", s.view("subdomain-a").Profile.Description)

	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "subdomain-a", admin, alice))
	reclaimed := s.view("subdomain-a")
	s.False(reclaimed.Active)
	s.False(s.holds(alice))
	s.Equal(models.Blank, reclaimed.Profile.Description)

	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "subdomain-a", bob, admin))
	reactivated := s.view("subdomain-a")
	s.True(reactivated.Active)
	s.True(s.holds(bob))
	s.Equal(models.Blank, reactivated.Profile.Description)

	s.Equal(2.0, testutil.ToFloat64(s.metrics.SubdomainTransfers.WithLabelValues("delegated")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.SubdomainTransfers.WithLabelValues("reclaimed")))

	events, err := s.auditLog.ListBySubject(s.ctx, "elon", "subdomain-a")
	s.Require().NoError(err)
	var actions []string
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	s.Equal([]string{
		string(audit.EventSubdomainCreated),
		string(audit.EventSubdomainDelegated),
		string(audit.EventSubdomainDataModified),
		string(audit.EventSubdomainReclaimed),
		string(audit.EventSubdomainDelegated),
	}, actions)
}

func (s *RegistrarServiceSuite) TestRedelegation() {
	s.create("a", "b")
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", alice, admin))

	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", bob, alice))
	s.Equal(bob, s.view("a").Owner)
	s.False(s.holds(alice))
	s.True(s.holds(bob))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.SubdomainTransfers.WithLabelValues("redelegated")))
}

func (s *RegistrarServiceSuite) TestTargetAlreadyHoldsOne() {
	s.create("a", "b")
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", alice, admin))
	before := s.view("b")

	err := s.reg.TransferSubdomain(s.ctx, "b", alice, admin)
	s.True(dErrors.HasCode(err, dErrors.CodeTargetAlreadyHasSubdomain))
	s.Equal("This address already have a subdomain!", err.Error())
	s.Equal(before, s.view("b"))

	s.Run("a holder cannot re-send its own name to itself", func() {
		err := s.reg.TransferSubdomain(s.ctx, "a", alice, alice)
		s.True(dErrors.HasCode(err, dErrors.CodeTargetAlreadyHasSubdomain))
	})
}

func (s *RegistrarServiceSuite) TestNonOwnersAreRejected() {
	s.create("a")
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", alice, admin))
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", bob, alice))
	before := s.view("a")

	cases := []struct {
		name string
		run  func() error
	}{
		{"former owner transfers", func() error { return s.reg.TransferSubdomain(s.ctx, "a", alice, alice) }},
		{"former owner deletes", func() error { return s.reg.DeleteSubdomain(s.ctx, "a", alice) }},
		{"administrator transfers a delegated name", func() error { return s.reg.TransferSubdomain(s.ctx, "a", admin, admin) }},
		{"unknown name", func() error { return s.reg.TransferSubdomain(s.ctx, "ghost", alice, admin) }},
		{"stranger edits data", func() error { return s.reg.ChangeSubdomainData(s.ctx, "a", models.Profile{}, alice) }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			err := tc.run()
			s.True(dErrors.HasCode(err, dErrors.CodeNotOwner))
			s.Equal("You are not the owner of this sub-domain", err.Error())
			s.Equal(before, s.view("a"))
		})
	}
}

func (s *RegistrarServiceSuite) TestDeleteSubdomain() {
	s.create("a", "b")
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", alice, admin))

	s.Run("administrator cannot delete an unclaimed name", func() {
		err := s.reg.DeleteSubdomain(s.ctx, "b", admin)
		s.True(dErrors.HasCode(err, dErrors.CodeNotOwner))
	})

	s.Run("holder gives the name back", func() {
		s.Require().NoError(s.reg.DeleteSubdomain(s.ctx, "a", alice))
		view := s.view("a")
		s.True(view.Registered)
		s.False(view.Active)
		s.Equal(admin, view.Owner)
		s.False(s.holds(alice))
	})

	s.Run("freed holder can receive another name", func() {
		s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "b", alice, admin))
		s.True(s.holds(alice))
	})
}

func (s *RegistrarServiceSuite) TestZeroTargetIsRejected() {
	s.create("a")
	err := s.reg.TransferSubdomain(s.ctx, "a", id.ZeroAccount, admin)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	s.Equal(admin, s.view("a").Owner)
}

func (s *RegistrarServiceSuite) TestAdministratorMayEditUnclaimedData() {
	s.create("a")
	profile := models.Profile{Description: "placeholder", Website: "w", Email: "e", Avatar: "v"}
	s.Require().NoError(s.reg.ChangeSubdomainData(s.ctx, "a", profile, admin))
	s.Equal(profile, s.view("a").Profile)
	s.False(s.view("a").Active)
}

func (s *RegistrarServiceSuite) TestAuditFailureRollsBackTransfer() {
	s.create("a")
	auditPublisher := mocks.NewMockAuditPublisher(s.ctrl)
	dir := s.newDirectory(WithAuditPublisher(auditPublisher))
	reg, err := dir.Open(s.ctx, "elon")
	s.Require().NoError(err)

	auditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))
	err = reg.TransferSubdomain(s.ctx, "a", alice, admin)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	view := s.view("a")
	s.Equal(admin, view.Owner)
	s.False(s.holds(alice))
}

// =============================================================================
// Parent ownership
// =============================================================================

func (s *RegistrarServiceSuite) TestParentOwnerIsTrackedSeparately() {
	s.registry.EXPECT().OwnerOf(gomock.Any(), "elon").Return(bob, nil).Times(2)

	owner, err := s.reg.ParentDomainOwner(s.ctx)
	s.Require().NoError(err)
	s.Equal(bob, owner)
	s.Equal(admin, s.reg.Administrator())

	info, err := s.reg.Info(s.ctx)
	s.Require().NoError(err)
	s.Equal(admin, info.Administrator)
	s.Equal(bob, info.ParentOwner)
}

func (s *RegistrarServiceSuite) TestQueriesAreIdempotent() {
	s.create("a", "b")
	s.Require().NoError(s.reg.TransferSubdomain(s.ctx, "a", alice, admin))

	first := s.view("a")
	second := s.view("a")
	s.Equal(first, second)

	names1, err := s.reg.AllSubdomains(s.ctx)
	s.Require().NoError(err)
	names2, err := s.reg.AllSubdomains(s.ctx)
	s.Require().NoError(err)
	s.Equal(names1, names2)
}
