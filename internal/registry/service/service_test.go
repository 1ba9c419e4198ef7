package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AuditPublisher,Provisioner,OwnerCache

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
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"inu/internal/registry/metrics"
	"inu/internal/registry/service/mocks"
	domainStore "inu/internal/registry/store/domain"
	primaryStore "inu/internal/registry/store/primary"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/audit/publisher"
	auditmemory "inu/pkg/platform/audit/store/memory"
	"inu/pkg/platform/tx"
	"inu/pkg/requestcontext"
)

const (
	alice = id.AccountID("alice")
	bob   = id.AccountID("bob")
	carol = id.AccountID("carol")
)

type RegistryServiceSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	domains   *domainStore.InMemory
	primaries *primaryStore.InMemory
	auditLog  *auditmemory.InMemoryStore
	metrics   *metrics.Metrics
	service   *Service
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	s.ctrl = gomock.NewController(s.T())
	s.domains = domainStore.NewInMemory()
	s.primaries = primaryStore.NewInMemory()
	s.auditLog = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = s.newService()
}

func (s *RegistryServiceSuite) newService(opts ...Option) *Service {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditPublisher(publisher.New(s.auditLog)),
	}
	return New(s.domains, s.primaries, tx.NewInMemory(), append(base, opts...)...)
}

func (s *RegistryServiceSuite) mustCreate(name string, owner id.AccountID) uint64 {
	seq, err := s.service.NewDomain(s.ctx, name, owner)
	s.Require().NoError(err)
	return seq
}

func (s *RegistryServiceSuite) actions() []string {
	events, err := s.auditLog.ListAll(s.ctx)
	s.Require().NoError(err)
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

// =============================================================================
// NewDomain
// =============================================================================

func (s *RegistryServiceSuite) TestNewDomain() {
	s.Run("issues sequence ids from zero", func() {
		s.Equal(uint64(0), s.mustCreate("elon", alice))
		s.Equal(uint64(1), s.mustCreate("vitalik", bob))

		owner, err := s.service.OwnerOf(s.ctx, "elon")
		s.Require().NoError(err)
		s.Equal(alice, owner)
		s.Equal(2.0, testutil.ToFloat64(s.metrics.DomainsCreated))
	})

	s.Run("duplicate name is taken and first record is unaffected", func() {
		_, err := s.service.NewDomain(s.ctx, "elon", bob)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNameTaken))
		s.Equal("This domain is not available", err.Error())

		record, err := s.service.Domain(s.ctx, "elon")
		s.Require().NoError(err)
		s.Equal(alice, record.Owner)
		s.Equal(uint64(0), record.SequenceID)
	})

	s.Run("invalid names create nothing", func() {
		for _, name := range []string{"", "has space", "dot.name", "ünï", "under_score"} {
			_, err := s.service.NewDomain(s.ctx, name, carol)
			s.Require().Error(err, name)
			s.True(dErrors.HasCode(err, dErrors.CodeNameInvalid), name)
			s.Equal("This is not a valid domain name!", err.Error())
		}
		balance, err := s.service.BalanceOf(s.ctx, carol)
		s.Require().NoError(err)
		s.Zero(balance)
		primary, err := s.service.PrimaryDomain(s.ctx, carol)
		s.Require().NoError(err)
		s.Empty(primary)
	})

	s.Run("zero caller is not authorized", func() {
		_, err := s.service.NewDomain(s.ctx, "nobody", id.ZeroAccount)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
		exists, err := s.service.Exists(s.ctx, "nobody")
		s.Require().NoError(err)
		s.False(exists)
	})
}

func (s *RegistryServiceSuite) TestFirstCreatedDomainBecomesPrimary() {
	s.mustCreate("d1", alice)
	s.mustCreate("d2", alice)
	s.mustCreate("d3", alice)

	primary, err := s.service.PrimaryDomain(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal("d1", primary)

	names, err := s.service.DomainsOf(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal([]string{"d1", "d2", "d3"}, names)
	s.Equal([]string{
		string(audit.EventDomainCreated), string(audit.EventPrimaryDomainSet),
		string(audit.EventDomainCreated),
		string(audit.EventDomainCreated),
	}, s.actions())
}

func (s *RegistryServiceSuite) TestNewDomainProvisionsRegistrar() {
	provisioner := mocks.NewMockProvisioner(s.ctrl)
	s.service = s.newService(WithProvisioner(provisioner))

	s.Run("provisioner runs inside the creating transaction", func() {
		provisioner.EXPECT().Provision(gomock.Any(), "elon", alice).
			DoAndReturn(func(ctx context.Context, _ string, _ id.AccountID) error {
				s.True(tx.InTx(ctx))
				return nil
			})
		s.mustCreate("elon", alice)
	})

	s.Run("provisioning failure rolls the domain back", func() {
		provisioner.EXPECT().Provision(gomock.Any(), "vitalik", bob).
			Return(dErrors.New(dErrors.CodeNameTaken, "a registrar already exists for this domain"))

		_, err := s.service.NewDomain(s.ctx, "vitalik", bob)
		s.True(dErrors.HasCode(err, dErrors.CodeNameTaken))

		exists, err := s.service.Exists(s.ctx, "vitalik")
		s.Require().NoError(err)
		s.False(exists)
		primary, err := s.service.PrimaryDomain(s.ctx, bob)
		s.Require().NoError(err)
		s.Empty(primary)

		// The next domain reuses the rolled back sequence id.
		provisioner.EXPECT().Provision(gomock.Any(), "satoshi", bob).Return(nil)
		s.Equal(uint64(1), s.mustCreate("satoshi", bob))
	})
}

func (s *RegistryServiceSuite) TestAuditFailureAbortsCreation() {
	auditPublisher := mocks.NewMockAuditPublisher(s.ctrl)
	s.service = s.newService(WithAuditPublisher(auditPublisher))
	auditPublisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))

	_, err := s.service.NewDomain(s.ctx, "elon", alice)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	exists, err := s.service.Exists(s.ctx, "elon")
	s.Require().NoError(err)
	s.False(exists)
	primary, err := s.service.PrimaryDomain(s.ctx, alice)
	s.Require().NoError(err)
	s.Empty(primary)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues("new_domain", "internal")))
}

// =============================================================================
// TransferOwnership
// =============================================================================

func (s *RegistryServiceSuite) TestTransferOwnership() {
	elon := s.mustCreate("elon", alice)
	tesla := s.mustCreate("tesla", alice)

	s.Run("only the owner acting for itself may transfer", func() {
		cases := []struct {
			name           string
			seq            uint64
			from, to, call id.AccountID
		}{
			{"caller is not from", elon, alice, bob, bob},
			{"from is not the owner", elon, bob, carol, bob},
			{"unknown sequence id", 99, alice, bob, alice},
			{"zero caller", elon, id.ZeroAccount, bob, id.ZeroAccount},
		}
		for _, tc := range cases {
			err := s.service.TransferOwnership(s.ctx, tc.seq, tc.from, tc.to, tc.call)
			s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized), tc.name)
			s.Equal("caller is not token owner or approved", err.Error(), tc.name)
		}
	})

	s.Run("zero recipient is rejected", func() {
		err := s.service.TransferOwnership(s.ctx, elon, alice, id.ZeroAccount, alice)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("transferring the primary clears it without reassignment", func() {
		s.Require().NoError(s.service.TransferOwnership(s.ctx, elon, alice, bob, alice))

		owner, err := s.service.OwnerOf(s.ctx, "elon")
		s.Require().NoError(err)
		s.Equal(bob, owner)

		primary, err := s.service.PrimaryDomain(s.ctx, alice)
		s.Require().NoError(err)
		s.Empty(primary, "alice still owns tesla but gets no primary")

		recipientPrimary, err := s.service.PrimaryDomain(s.ctx, bob)
		s.Require().NoError(err)
		s.Empty(recipientPrimary, "recipient never gets an automatic primary")
	})

	s.Run("transferring a non-primary domain keeps the primary", func() {
		s.Require().NoError(s.service.SetPrimaryDomain(s.ctx, "tesla", alice))
		s.mustCreate("spacex", alice)
		spacex, err := s.service.Domain(s.ctx, "spacex")
		s.Require().NoError(err)

		s.Require().NoError(s.service.TransferOwnership(s.ctx, spacex.SequenceID, alice, carol, alice))
		primary, err := s.service.PrimaryDomain(s.ctx, alice)
		s.Require().NoError(err)
		s.Equal("tesla", primary)
	})

	s.Run("former owner can no longer transfer", func() {
		err := s.service.TransferOwnership(s.ctx, elon, alice, carol, alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
	})

	s.Run("account summary reflects the moves", func() {
		summary, err := s.service.Account(s.ctx, alice)
		s.Require().NoError(err)
		s.Equal("tesla", summary.PrimaryDomain)
		s.Equal([]string{"tesla"}, summary.Domains)
		s.Equal(1, summary.Balance)

		record, err := s.service.DomainBySequence(s.ctx, tesla)
		s.Require().NoError(err)
		s.Equal("tesla", record.Name)
	})
}

func (s *RegistryServiceSuite) TestTransferInvalidatesOwnerCacheAfterCommit() {
	cache := mocks.NewMockOwnerCache(s.ctrl)
	s.service = s.newService(WithOwnerCache(cache))

	seq := s.mustCreate("elon", alice)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "elon").Return(id.ZeroAccount, false, nil),
		cache.EXPECT().Set(gomock.Any(), "elon", alice).Return(nil),
		cache.EXPECT().Invalidate(gomock.Any(), "elon").
			DoAndReturn(func(ctx context.Context, _ string) error {
				s.False(tx.InTx(ctx), "invalidation runs after commit")
				return nil
			}),
		cache.EXPECT().Get(gomock.Any(), "elon").Return(bob, true, nil),
	)

	owner, err := s.service.OwnerOf(s.ctx, "elon")
	s.Require().NoError(err)
	s.Equal(alice, owner)

	s.Require().NoError(s.service.TransferOwnership(s.ctx, seq, alice, bob, alice))

	owner, err = s.service.OwnerOf(s.ctx, "elon")
	s.Require().NoError(err)
	s.Equal(bob, owner)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.OwnerCacheLookups.WithLabelValues("hit")))
}

func (s *RegistryServiceSuite) TestOwnerCacheErrorsFallBackToStore() {
	cache := mocks.NewMockOwnerCache(s.ctrl)
	s.service = s.newService(WithOwnerCache(cache))
	s.mustCreate("elon", alice)

	cache.EXPECT().Get(gomock.Any(), "elon").Return(id.ZeroAccount, false, errors.New("connection refused"))
	cache.EXPECT().Set(gomock.Any(), "elon", alice).Return(errors.New("connection refused"))

	owner, err := s.service.OwnerOf(s.ctx, "elon")
	s.Require().NoError(err)
	s.Equal(alice, owner)
}

// =============================================================================
// SetPrimaryDomain
// =============================================================================

func (s *RegistryServiceSuite) TestSetPrimaryDomain() {
	s.mustCreate("elon", alice)
	s.mustCreate("tesla", alice)
	s.mustCreate("vitalik", bob)

	s.Run("already primary", func() {
		err := s.service.SetPrimaryDomain(s.ctx, "elon", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeAlreadyPrimary))
		s.Equal("This is already your primary domain!", err.Error())
	})

	s.Run("not the owner", func() {
		err := s.service.SetPrimaryDomain(s.ctx, "vitalik", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
		s.Equal("You are not the onwer of this domain!", err.Error())
	})

	s.Run("unknown name", func() {
		err := s.service.SetPrimaryDomain(s.ctx, "missing", alice)
		s.True(dErrors.HasCode(err, dErrors.CodeNotAuthorized))
	})

	s.Run("switches the primary", func() {
		s.Require().NoError(s.service.SetPrimaryDomain(s.ctx, "tesla", alice))
		primary, err := s.service.PrimaryDomain(s.ctx, alice)
		s.Require().NoError(err)
		s.Equal("tesla", primary)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.PrimaryDomainSets.WithLabelValues("explicit")))
	})
}

// =============================================================================
// Queries
// =============================================================================

func (s *RegistryServiceSuite) TestQueries() {
	s.Run("absent names resolve to zero values", func() {
		owner, err := s.service.OwnerOf(s.ctx, "ghost")
		s.Require().NoError(err)
		s.True(owner.IsZero())

		record, err := s.service.Domain(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Empty(record.Name)
		s.True(record.Owner.IsZero())

		_, err = s.service.DomainBySequence(s.ctx, 7)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		names, err := s.service.DomainsOf(s.ctx, id.ZeroAccount)
		s.Require().NoError(err)
		s.Empty(names)
	})

	s.Run("metadata", func() {
		meta := s.service.Metadata()
		s.Equal("Registry", meta.Name)
		s.Equal("INU", meta.Symbol)
	})

	s.Run("repeated queries are identical", func() {
		s.mustCreate("elon", alice)
		first, err := s.service.Account(s.ctx, alice)
		s.Require().NoError(err)
		second, err := s.service.Account(s.ctx, alice)
		s.Require().NoError(err)
		s.Equal(first, second)
	})
}

func (s *RegistryServiceSuite) TestSpansCarryRejectionCodes() {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	s.service = s.newService(WithTracer(provider.Tracer("inu/registry")))

	s.mustCreate("elon", alice)
	_, err := s.service.NewDomain(s.ctx, "elon", bob)
	s.Require().Error(err)

	spans := recorder.Ended()
	s.Require().Len(spans, 2)
	s.Equal("registry.NewDomain", spans[0].Name())
	s.Empty(codeAttr(spans[0]))
	s.Equal("name_taken", codeAttr(spans[1]))
}

func codeAttr(span sdktrace.ReadOnlySpan) string {
	for _, kv := range span.Attributes() {
		if kv.Key == "error.code" {
			return kv.Value.AsString()
		}
	}
	return ""
}
