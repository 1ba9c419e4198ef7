package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"inu/internal/naming"
	"inu/internal/registry/metrics"
	"inu/internal/registry/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
	"inu/pkg/requestcontext"
)

// User-visible rejection messages. Clients match on these.
const (
	msgNameTaken      = "This domain is not available"
	msgNameInvalid    = "This is not a valid domain name!"
	msgNotDomainOwner = "You are not the onwer of this domain!"
	msgAlreadyPrimary = "This is already your primary domain!"
	msgNotTokenOwner  = "caller is not token owner or approved"
	msgCallerRequired = "caller is required"
	msgZeroRecipient  = "cannot transfer to the zero account"
)

type DomainStore interface {
	Create(ctx context.Context, record *models.DomainRecord) error
	FindByName(ctx context.Context, name string) (*models.DomainRecord, error)
	FindBySequenceID(ctx context.Context, sequenceID uint64) (*models.DomainRecord, error)
	UpdateOwner(ctx context.Context, sequenceID uint64, owner id.AccountID, now time.Time) error
	NextSequenceID(ctx context.Context) (uint64, error)
	ListByOwner(ctx context.Context, owner id.AccountID) ([]*models.DomainRecord, error)
}

type PrimaryStore interface {
	Get(ctx context.Context, account id.AccountID) (string, bool, error)
	Set(ctx context.Context, account id.AccountID, name string) error
	Clear(ctx context.Context, account id.AccountID) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Provisioner creates the registrar serving a freshly issued domain. It runs
// inside the creating transaction.
type Provisioner interface {
	Provision(ctx context.Context, parent string, administrator id.AccountID) error
}

// OwnerCache is an optional read-through cache for OwnerOf.
type OwnerCache interface {
	Get(ctx context.Context, name string) (id.AccountID, bool, error)
	Set(ctx context.Context, name string, owner id.AccountID) error
	Invalidate(ctx context.Context, name string) error
}

// Service is the top-level naming ledger: it issues domains, moves them
// between accounts and keeps each account's primary domain.
type Service struct {
	domains        DomainStore
	primaries      PrimaryStore
	tx             tx.Runner
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	provisioner    Provisioner
	ownerCache     OwnerCache
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithProvisioner(p Provisioner) Option {
	return func(s *Service) {
		s.provisioner = p
	}
}

func WithOwnerCache(c OwnerCache) Option {
	return func(s *Service) {
		s.ownerCache = c
	}
}

// WithTracer replaces the global "inu/registry" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs the registry service.
func New(domains DomainStore, primaries PrimaryStore, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		domains:   domains,
		primaries: primaries,
		tx:        runner,
		logger:    slog.Default(),
		tracer:    otel.Tracer("inu/registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDomain issues name to caller and returns its sequence id. The first
// domain an account creates becomes its primary domain.
func (s *Service) NewDomain(ctx context.Context, name string, caller id.AccountID) (uint64, error) {
	ctx, span := s.tracer.Start(ctx, "registry.NewDomain", trace.WithAttributes(
		attribute.String("domain.name", name),
		attribute.String("caller", caller.String()),
	))
	defer span.End()
	start := time.Now()

	var (
		sequenceID  uint64
		autoPrimary bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if caller.IsZero() {
			return dErrors.New(dErrors.CodeNotAuthorized, msgCallerRequired)
		}
		if !naming.IsValidName(name) {
			return dErrors.New(dErrors.CodeNameInvalid, msgNameInvalid)
		}
		if _, err := s.domains.FindByName(ctx, name); err == nil {
			return dErrors.New(dErrors.CodeNameTaken, msgNameTaken)
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up domain")
		}

		next, err := s.domains.NextSequenceID(ctx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate sequence id")
		}
		now := requestcontext.Now(ctx)
		if err := s.domains.Create(ctx, models.NewDomainRecord(name, caller, next, now)); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeNameTaken, msgNameTaken)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create domain")
		}

		_, hasPrimary, err := s.primaries.Get(ctx, caller)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load primary domain")
		}
		if !hasPrimary {
			if err := s.primaries.Set(ctx, caller, name); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set primary domain")
			}
			autoPrimary = true
		}

		if s.provisioner != nil {
			if err := s.provisioner.Provision(ctx, name, caller); err != nil {
				return err
			}
		}

		if err := s.emit(ctx, audit.EventDomainCreated, audit.Event{
			Actor:   caller,
			Subject: name,
			To:      caller,
		}); err != nil {
			return err
		}
		if autoPrimary {
			if err := s.emit(ctx, audit.EventPrimaryDomainSet, audit.Event{
				Actor:   caller,
				Subject: name,
				To:      caller,
				Detail:  "auto",
			}); err != nil {
				return err
			}
		}
		sequenceID = next
		return nil
	})
	s.metrics.ObserveMutation("new_domain", time.Since(start))
	if err != nil {
		s.reject(ctx, span, "new_domain", err, "domain", name)
		return 0, err
	}

	s.logger.InfoContext(ctx, "domain created",
		"request_id", requestcontext.RequestID(ctx),
		"domain", name,
		"owner", caller,
		"sequence_id", sequenceID,
		"primary_assigned", autoPrimary,
	)
	s.metrics.IncrementDomainsCreated()
	if autoPrimary {
		s.metrics.IncrementPrimaryDomainSet(true)
	}
	return sequenceID, nil
}

// TransferOwnership moves the domain identified by sequenceID from one
// account to another. Only the current owner may move it, and only on its
// own behalf. The sender's primary domain is cleared if it named this
// domain; the recipient's primary is never touched.
func (s *Service) TransferOwnership(ctx context.Context, sequenceID uint64, from, to, caller id.AccountID) error {
	ctx, span := s.tracer.Start(ctx, "registry.TransferOwnership", trace.WithAttributes(
		attribute.Int64("domain.sequence_id", int64(sequenceID)),
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
	defer span.End()
	start := time.Now()

	var (
		name           string
		primaryCleared bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.domains.FindBySequenceID(ctx, sequenceID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotAuthorized, msgNotTokenOwner)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domain")
		}
		if caller != from || !record.IsOwnedBy(from) {
			return dErrors.New(dErrors.CodeNotAuthorized, msgNotTokenOwner)
		}
		if to.IsZero() {
			return dErrors.New(dErrors.CodeInvalidInput, msgZeroRecipient)
		}

		if err := s.domains.UpdateOwner(ctx, sequenceID, to, requestcontext.Now(ctx)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer domain")
		}

		primary, hasPrimary, err := s.primaries.Get(ctx, from)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load primary domain")
		}
		if hasPrimary && primary == record.Name {
			if err := s.primaries.Clear(ctx, from); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear primary domain")
			}
			primaryCleared = true
		}

		if err := s.emit(ctx, audit.EventDomainTransferred, audit.Event{
			Actor:   caller,
			Subject: record.Name,
			From:    from,
			To:      to,
		}); err != nil {
			return err
		}
		if primaryCleared {
			if err := s.emit(ctx, audit.EventPrimaryCleared, audit.Event{
				Actor:   caller,
				Subject: record.Name,
				From:    from,
			}); err != nil {
				return err
			}
		}

		name = record.Name
		tx.AfterCommit(ctx, func() { s.invalidateOwner(context.WithoutCancel(ctx), record.Name) })
		return nil
	})
	s.metrics.ObserveMutation("transfer_ownership", time.Since(start))
	if err != nil {
		s.reject(ctx, span, "transfer_ownership", err, "sequence_id", sequenceID)
		return err
	}

	s.logger.InfoContext(ctx, "domain transferred",
		"request_id", requestcontext.RequestID(ctx),
		"domain", name,
		"sequence_id", sequenceID,
		"from", from,
		"to", to,
		"primary_cleared", primaryCleared,
	)
	s.metrics.IncrementDomainTransfers()
	return nil
}

// SetPrimaryDomain makes name the caller's primary domain.
func (s *Service) SetPrimaryDomain(ctx context.Context, name string, caller id.AccountID) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetPrimaryDomain", trace.WithAttributes(
		attribute.String("domain.name", name),
		attribute.String("caller", caller.String()),
	))
	defer span.End()
	start := time.Now()

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		record, err := s.domains.FindByName(ctx, name)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domain")
		}
		if record == nil || !record.IsOwnedBy(caller) {
			return dErrors.New(dErrors.CodeNotAuthorized, msgNotDomainOwner)
		}

		current, hasPrimary, err := s.primaries.Get(ctx, caller)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load primary domain")
		}
		if hasPrimary && current == name {
			return dErrors.New(dErrors.CodeAlreadyPrimary, msgAlreadyPrimary)
		}
		if err := s.primaries.Set(ctx, caller, name); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set primary domain")
		}
		return s.emit(ctx, audit.EventPrimaryDomainSet, audit.Event{
			Actor:   caller,
			Subject: name,
			To:      caller,
			Detail:  current,
		})
	})
	s.metrics.ObserveMutation("set_primary_domain", time.Since(start))
	if err != nil {
		s.reject(ctx, span, "set_primary_domain", err, "domain", name)
		return err
	}

	s.logger.InfoContext(ctx, "primary domain set",
		"request_id", requestcontext.RequestID(ctx),
		"domain", name,
		"account", caller,
	)
	s.metrics.IncrementPrimaryDomainSet(false)
	return nil
}

func (s *Service) emit(ctx context.Context, action audit.AuditEvent, event audit.Event) error {
	if s.auditPublisher == nil {
		return nil
	}
	event.Action = string(action)
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

// reject records a failed mutation. Domain rejections are expected traffic;
// anything else is an infrastructure failure.
func (s *Service) reject(ctx context.Context, span trace.Span, operation string, err error, attrs ...any) {
	code := dErrors.CodeOf(err)
	span.SetAttributes(attribute.String("error.code", string(code)))
	s.metrics.IncrementRejected(operation, string(code))

	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"code", code,
		"error", err,
	}, attrs...)
	if dErrors.IsDomain(err) {
		s.logger.DebugContext(ctx, "registry operation rejected", args...)
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.ErrorContext(ctx, "registry operation failed", args...)
}

func (s *Service) invalidateOwner(ctx context.Context, name string) {
	if s.ownerCache == nil {
		return
	}
	if err := s.ownerCache.Invalidate(ctx, name); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate owner cache",
			"request_id", requestcontext.RequestID(ctx),
			"domain", name,
			"error", err,
		)
	}
}
