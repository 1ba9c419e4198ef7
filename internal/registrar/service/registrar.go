package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"inu/internal/naming"
	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/audit"
	"inu/pkg/platform/sentinel"
	"inu/pkg/requestcontext"
)

// User-visible rejection messages. Clients match on these.
const (
	msgNameInvalid       = "This is not a valid domain name!"
	msgSubdomainTaken    = "This subdomain already exists!"
	msgNotSubdomainOwner = "You are not the owner of this sub-domain"
	msgTargetHolds       = "This address already have a subdomain!"
	msgNotAdministrator  = "caller is not the owner"
	msgZeroTarget        = "cannot transfer to the zero account"
)

// Registrar is the sub-ledger of one parent domain. Its administrator is
// fixed at deployment.
type Registrar struct {
	dir           *Directory
	parent        string
	administrator id.AccountID
}

func (r *Registrar) ParentDomain() string {
	return r.parent
}

func (r *Registrar) Administrator() id.AccountID {
	return r.administrator
}

// SetOwnerData replaces the administrator's public profile.
func (r *Registrar) SetOwnerData(ctx context.Context, info models.OwnerInfo, caller id.AccountID) error {
	err := r.mutate(ctx, "set_owner_data", nil, func(ctx context.Context) error {
		if caller.IsZero() || caller != r.administrator {
			return dErrors.New(dErrors.CodeNotAuthorized, msgNotAdministrator)
		}
		if err := r.dir.registrars.UpdateOwnerInfo(ctx, r.parent, info, requestcontext.Now(ctx)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update owner info")
		}
		return r.dir.emit(ctx, audit.EventOwnerInfoUpdated, audit.Event{
			Actor:   caller,
			Subject: r.parent,
			Parent:  r.parent,
		})
	})
	if err != nil {
		return err
	}
	r.dir.logger.InfoContext(ctx, "registrar owner info updated",
		"request_id", requestcontext.RequestID(ctx),
		"parent", r.parent,
	)
	r.dir.metrics.IncrementProfileUpdate("owner_info")
	return nil
}

// CreateSubdomain registers name under the parent domain. The new record is
// held by the administrator until it is transferred out.
func (r *Registrar) CreateSubdomain(ctx context.Context, name string, caller id.AccountID) error {
	err := r.mutate(ctx, "create_subdomain", subdomainAttrs(name), func(ctx context.Context) error {
		if caller.IsZero() || caller != r.administrator {
			return dErrors.New(dErrors.CodeNotAuthorized, msgNotAdministrator)
		}
		if !naming.IsValidName(name) {
			return dErrors.New(dErrors.CodeNameInvalid, msgNameInvalid)
		}
		existing, err := r.find(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return dErrors.New(dErrors.CodeNameTaken, msgSubdomainTaken)
		}

		position, err := r.dir.subdomains.Count(ctx, r.parent)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count subdomains")
		}
		record := models.NewSubdomainRecord(r.parent, name, r.administrator, position, requestcontext.Now(ctx))
		if err := r.dir.subdomains.Create(ctx, record); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeNameTaken, msgSubdomainTaken)
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create subdomain")
		}
		return r.dir.emit(ctx, audit.EventSubdomainCreated, audit.Event{
			Actor:   caller,
			Subject: name,
			Parent:  r.parent,
			To:      r.administrator,
		})
	})
	if err != nil {
		return err
	}
	r.dir.logger.InfoContext(ctx, "subdomain created",
		"request_id", requestcontext.RequestID(ctx),
		"parent", r.parent,
		"subdomain", name,
	)
	r.dir.metrics.IncrementSubdomainsCreated()
	return nil
}

// TransferSubdomain hands name to target and wipes its data. Depending on
// target this delegates, re-delegates or reclaims the name.
func (r *Registrar) TransferSubdomain(ctx context.Context, name string, target, caller id.AccountID) error {
	var kind models.TransferKind
	err := r.mutate(ctx, "transfer_subdomain", subdomainAttrs(name), func(ctx context.Context) error {
		record, err := r.ownedBy(ctx, name, caller)
		if err != nil {
			return err
		}
		kind, err = r.transfer(ctx, record, target, caller)
		return err
	})
	if err != nil {
		return err
	}
	r.logTransfer(ctx, name, target, kind)
	return nil
}

// DeleteSubdomain returns name to the administrator. Only the account the
// name is delegated to may give it up.
func (r *Registrar) DeleteSubdomain(ctx context.Context, name string, caller id.AccountID) error {
	var kind models.TransferKind
	err := r.mutate(ctx, "delete_subdomain", subdomainAttrs(name), func(ctx context.Context) error {
		record, err := r.ownedBy(ctx, name, caller)
		if err != nil {
			return err
		}
		if caller == r.administrator {
			return dErrors.New(dErrors.CodeNotOwner, msgNotSubdomainOwner)
		}
		kind, err = r.transfer(ctx, record, r.administrator, caller)
		return err
	})
	if err != nil {
		return err
	}
	r.logTransfer(ctx, name, r.administrator, kind)
	return nil
}

// ChangeSubdomainData overwrites the profile of a subdomain the caller holds.
func (r *Registrar) ChangeSubdomainData(ctx context.Context, name string, profile models.Profile, caller id.AccountID) error {
	err := r.mutate(ctx, "change_subdomain_data", subdomainAttrs(name), func(ctx context.Context) error {
		record, err := r.ownedBy(ctx, name, caller)
		if err != nil {
			return err
		}
		record.Profile = profile
		record.UpdatedAt = requestcontext.Now(ctx)
		if err := r.dir.subdomains.Update(ctx, record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update subdomain")
		}
		return r.dir.emit(ctx, audit.EventSubdomainDataModified, audit.Event{
			Actor:   caller,
			Subject: name,
			Parent:  r.parent,
		})
	})
	if err != nil {
		return err
	}
	r.dir.logger.InfoContext(ctx, "subdomain data changed",
		"request_id", requestcontext.RequestID(ctx),
		"parent", r.parent,
		"subdomain", name,
	)
	r.dir.metrics.IncrementProfileUpdate("subdomain")
	return nil
}

// transfer applies one ownership move and keeps the holder index in step.
func (r *Registrar) transfer(ctx context.Context, record *models.SubdomainRecord, target, caller id.AccountID) (models.TransferKind, error) {
	if target.IsZero() {
		return "", dErrors.New(dErrors.CodeInvalidInput, msgZeroTarget)
	}
	if target != r.administrator {
		holds, err := r.dir.subdomains.HasHolder(ctx, r.parent, target)
		if err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to check subdomain holder")
		}
		if holds {
			return "", dErrors.New(dErrors.CodeTargetAlreadyHasSubdomain, msgTargetHolds)
		}
	}

	previous := record.Owner
	kind := models.ClassifyTransfer(previous, target, r.administrator)
	record.ApplyTransfer(target, requestcontext.Now(ctx))
	if err := r.dir.subdomains.Update(ctx, record); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer subdomain")
	}
	if previous != r.administrator {
		if err := r.dir.subdomains.SetHolder(ctx, r.parent, previous, false); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to release subdomain holder")
		}
	}
	if target != r.administrator {
		if err := r.dir.subdomains.SetHolder(ctx, r.parent, target, true); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to record subdomain holder")
		}
	}

	if err := r.dir.emit(ctx, transferEvents[kind], audit.Event{
		Actor:   caller,
		Subject: record.Name,
		Parent:  r.parent,
		From:    previous,
		To:      target,
	}); err != nil {
		return "", err
	}
	return kind, nil
}

var transferEvents = map[models.TransferKind]audit.AuditEvent{
	models.TransferDelegated:   audit.EventSubdomainDelegated,
	models.TransferRedelegated: audit.EventSubdomainRedelegated,
	models.TransferReclaimed:   audit.EventSubdomainReclaimed,
}

// ownedBy loads name and checks caller holds it.
func (r *Registrar) ownedBy(ctx context.Context, name string, caller id.AccountID) (*models.SubdomainRecord, error) {
	record, err := r.find(ctx, name)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.IsOwnedBy(caller) {
		return nil, dErrors.New(dErrors.CodeNotOwner, msgNotSubdomainOwner)
	}
	return record, nil
}

func (r *Registrar) find(ctx context.Context, name string) (*models.SubdomainRecord, error) {
	record, err := r.dir.subdomains.Find(ctx, r.parent, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subdomain")
	}
	return record, nil
}

func (r *Registrar) mutate(ctx context.Context, operation string, attrs []attribute.KeyValue, fn func(ctx context.Context) error) error {
	attrs = append(attrs, attribute.String("registrar.parent", r.parent))
	ctx, span := r.dir.tracer.Start(ctx, "registrar."+operation, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	err := r.dir.tx.RunInTx(ctx, fn)
	r.dir.metrics.ObserveMutation(operation, time.Since(start))
	if err != nil {
		r.dir.reject(ctx, span, operation, err, "parent", r.parent)
	}
	return err
}

func (r *Registrar) logTransfer(ctx context.Context, name string, target id.AccountID, kind models.TransferKind) {
	r.dir.logger.InfoContext(ctx, "subdomain transferred",
		"request_id", requestcontext.RequestID(ctx),
		"parent", r.parent,
		"subdomain", name,
		"target", target,
		"kind", kind,
	)
	r.dir.metrics.IncrementTransfer(string(kind))
}

func subdomainAttrs(name string) []attribute.KeyValue {
	return []attribute.KeyValue{attribute.String("subdomain.name", name)}
}
