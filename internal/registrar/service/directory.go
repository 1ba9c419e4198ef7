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
	"inu/internal/registrar/metrics"
	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/sentinel"
	"inu/pkg/platform/tx"
	"inu/pkg/requestcontext"
)

type RegistrarStore interface {
	Create(ctx context.Context, registrar *models.Registrar) error
	FindByParent(ctx context.Context, parent string) (*models.Registrar, error)
	UpdateOwnerInfo(ctx context.Context, parent string, info models.OwnerInfo, now time.Time) error
}

type SubdomainStore interface {
	Create(ctx context.Context, record *models.SubdomainRecord) error
	Find(ctx context.Context, parent, name string) (*models.SubdomainRecord, error)
	Update(ctx context.Context, record *models.SubdomainRecord) error
	Count(ctx context.Context, parent string) (int, error)
	List(ctx context.Context, parent string) ([]string, error)
	At(ctx context.Context, parent string, index int) (string, error)
	HasHolder(ctx context.Context, parent string, account id.AccountID) (bool, error)
	SetHolder(ctx context.Context, parent string, account id.AccountID, holds bool) error
}

// RegistryReader is the read-only view a registrar has of the top-level ledger.
type RegistryReader interface {
	OwnerOf(ctx context.Context, name string) (id.AccountID, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	originProvisioned = "provisioned"
	originExplicit    = "explicit"
)

type options struct {
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(o *options) {
		o.auditPublisher = publisher
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.Default(),
		tracer: otel.Tracer("inu/registrar"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) emit(ctx context.Context, action audit.AuditEvent, event audit.Event) error {
	if o.auditPublisher == nil {
		return nil
	}
	event.Action = string(action)
	if err := o.auditPublisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

func (o *options) reject(ctx context.Context, span trace.Span, operation string, err error, attrs ...any) {
	code := dErrors.CodeOf(err)
	span.SetAttributes(attribute.String("error.code", string(code)))
	o.metrics.IncrementRejected(operation, string(code))

	args := append([]any{
		"request_id", requestcontext.RequestID(ctx),
		"operation", operation,
		"code", code,
		"error", err,
	}, attrs...)
	if dErrors.IsDomain(err) {
		o.logger.DebugContext(ctx, "registrar operation rejected", args...)
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	o.logger.ErrorContext(ctx, "registrar operation failed", args...)
}

// Provisioner deploys registrars. The registry calls it inside the
// transaction that issues a domain.
type Provisioner struct {
	options
	registrars RegistrarStore
	tx         tx.Runner
}

func NewProvisioner(registrars RegistrarStore, runner tx.Runner, opts ...Option) *Provisioner {
	return &Provisioner{options: newOptions(opts), registrars: registrars, tx: runner}
}

// Provision creates the registrar for parent with administrator in charge.
func (p *Provisioner) Provision(ctx context.Context, parent string, administrator id.AccountID) error {
	_, err := p.deploy(ctx, parent, administrator, originProvisioned)
	return err
}

func (p *Provisioner) deploy(ctx context.Context, parent string, administrator id.AccountID, origin string) (*models.Registrar, error) {
	var registrar *models.Registrar
	err := p.tx.RunInTx(ctx, func(ctx context.Context) error {
		if administrator.IsZero() {
			return dErrors.New(dErrors.CodeNotAuthorized, "administrator is required")
		}
		if !naming.IsValidName(parent) {
			return dErrors.New(dErrors.CodeNameInvalid, msgNameInvalid)
		}
		registrar = models.NewRegistrar(parent, administrator, requestcontext.Now(ctx))
		if err := p.registrars.Create(ctx, registrar); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeNameTaken, "a registrar already exists for this domain")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deploy registrar")
		}
		return p.emit(ctx, audit.EventRegistrarDeployed, audit.Event{
			Actor:   administrator,
			Subject: parent,
			Parent:  parent,
			To:      administrator,
			Detail:  origin,
		})
	})
	if err != nil {
		return nil, err
	}
	// Committed, or joined to an outer transaction that has yet to commit.
	tx.AfterCommit(ctx, func() {
		p.logger.InfoContext(ctx, "registrar deployed",
			"request_id", requestcontext.RequestID(ctx),
			"parent", parent,
			"administrator", administrator,
			"origin", origin,
		)
		p.metrics.IncrementDeployed(origin)
	})
	return registrar, nil
}

// Directory opens registrars by parent domain and deploys new ones.
type Directory struct {
	*Provisioner
	subdomains SubdomainStore
	registry   RegistryReader
}

func NewDirectory(registrars RegistrarStore, subdomains SubdomainStore, registry RegistryReader, runner tx.Runner, opts ...Option) *Directory {
	return &Directory{
		Provisioner: NewProvisioner(registrars, runner, opts...),
		subdomains:  subdomains,
		registry:    registry,
	}
}

// Deploy constructs a registrar for parent outside of domain creation. The
// parent must already be issued and administrator must be its current owner.
func (d *Directory) Deploy(ctx context.Context, parent string, administrator id.AccountID) (*Registrar, error) {
	ctx, span := d.tracer.Start(ctx, "registrar.Deploy", trace.WithAttributes(
		attribute.String("registrar.parent", parent),
	))
	defer span.End()

	var registrar *models.Registrar
	err := d.tx.RunInTx(ctx, func(ctx context.Context) error {
		if !naming.IsValidName(parent) {
			return dErrors.New(dErrors.CodeNameInvalid, msgNameInvalid)
		}
		owner, err := d.registry.OwnerOf(ctx, parent)
		if err != nil {
			if dErrors.IsDomain(err) {
				return err
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve parent owner")
		}
		if owner.IsZero() {
			return dErrors.New(dErrors.CodeNotFound, "domain does not exist")
		}
		if administrator.IsZero() || owner != administrator {
			return dErrors.New(dErrors.CodeNotAuthorized, "caller does not own this domain")
		}
		registrar, err = d.deploy(ctx, parent, administrator, originExplicit)
		return err
	})
	if err != nil {
		d.reject(ctx, span, "deploy", err, "parent", parent)
		return nil, err
	}
	return d.handle(registrar), nil
}

// Open returns the registrar serving parent.
func (d *Directory) Open(ctx context.Context, parent string) (*Registrar, error) {
	var registrar *models.Registrar
	err := d.tx.View(ctx, func(ctx context.Context) error {
		found, err := d.registrars.FindByParent(ctx, parent)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "no registrar for this domain")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registrar")
		}
		registrar = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d.handle(registrar), nil
}

func (d *Directory) handle(registrar *models.Registrar) *Registrar {
	return &Registrar{
		dir:           d,
		parent:        registrar.ParentDomain,
		administrator: registrar.Administrator,
	}
}
