package service

import (
	"context"
	"errors"

	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/sentinel"
)

// SubdomainData returns the record for name, or a zero record (zero owner)
// if it was never created.
func (r *Registrar) SubdomainData(ctx context.Context, name string) (models.SubdomainRecord, error) {
	view, err := r.Subdomain(ctx, name)
	return view.SubdomainRecord, err
}

// Subdomain returns the record for name with its derived flags.
func (r *Registrar) Subdomain(ctx context.Context, name string) (models.SubdomainView, error) {
	var view models.SubdomainView
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		record, err := r.find(ctx, name)
		if err != nil || record == nil {
			return err
		}
		view = models.SubdomainView{
			SubdomainRecord: *record,
			Registered:      true,
			Active:          record.IsActive(r.administrator),
		}
		return nil
	})
	return view, err
}

// IsRegistered reports whether name was ever created, claimed or not.
func (r *Registrar) IsRegistered(ctx context.Context, name string) (bool, error) {
	view, err := r.Subdomain(ctx, name)
	return view.Registered, err
}

func (r *Registrar) IsActive(ctx context.Context, name string) (bool, error) {
	view, err := r.Subdomain(ctx, name)
	return view.Active, err
}

// HasSubdomain reports whether account holds an active subdomain here.
func (r *Registrar) HasSubdomain(ctx context.Context, account id.AccountID) (bool, error) {
	var holds bool
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		var err error
		holds, err = r.dir.subdomains.HasHolder(ctx, r.parent, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check subdomain holder")
		}
		return nil
	})
	return holds, err
}

// AllSubdomains lists every subdomain name in creation order.
func (r *Registrar) AllSubdomains(ctx context.Context) ([]string, error) {
	var names []string
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		var err error
		names, err = r.dir.subdomains.List(ctx, r.parent)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list subdomains")
		}
		return nil
	})
	return names, err
}

// SubdomainAt returns the index-th created subdomain, or "" when index is
// out of range.
func (r *Registrar) SubdomainAt(ctx context.Context, index int) (string, error) {
	var name string
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		found, err := r.dir.subdomains.At(ctx, r.parent, index)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load subdomain")
		}
		name = found
		return nil
	})
	return name, err
}

func (r *Registrar) OwnerInfo(ctx context.Context) (models.OwnerInfo, error) {
	var info models.OwnerInfo
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		registrar, err := r.dir.registrars.FindByParent(ctx, r.parent)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registrar")
		}
		info = registrar.OwnerInfo
		return nil
	})
	return info, err
}

// ParentDomainOwner is who the registry currently lists as owner of the
// parent domain. It can differ from Administrator; nothing reconciles the two.
func (r *Registrar) ParentDomainOwner(ctx context.Context) (id.AccountID, error) {
	if r.dir.registry == nil {
		return id.ZeroAccount, dErrors.New(dErrors.CodeInternal, "registry not configured")
	}
	return r.dir.registry.OwnerOf(ctx, r.parent)
}

// Info is a consistent snapshot of the registrar for display.
type Info struct {
	ParentDomain  string           `json:"parent_domain"`
	Administrator id.AccountID     `json:"administrator"`
	ParentOwner   id.AccountID     `json:"parent_owner"`
	OwnerInfo     models.OwnerInfo `json:"owner_info"`
	Subdomains    int              `json:"subdomains"`
}

func (r *Registrar) Info(ctx context.Context) (Info, error) {
	info := Info{ParentDomain: r.parent, Administrator: r.administrator}
	err := r.dir.tx.View(ctx, func(ctx context.Context) error {
		ownerInfo, err := r.OwnerInfo(ctx)
		if err != nil {
			return err
		}
		count, err := r.dir.subdomains.Count(ctx, r.parent)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count subdomains")
		}
		parentOwner, err := r.ParentDomainOwner(ctx)
		if err != nil {
			return err
		}
		info.OwnerInfo = ownerInfo
		info.Subdomains = count
		info.ParentOwner = parentOwner
		return nil
	})
	return info, err
}
