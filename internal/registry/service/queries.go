package service

import (
	"context"
	"errors"

	"inu/internal/registry/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
	"inu/pkg/platform/sentinel"
	"inu/pkg/requestcontext"
)

// OwnerOf returns the current owner of name, or the zero account when the
// name was never issued.
func (s *Service) OwnerOf(ctx context.Context, name string) (id.AccountID, error) {
	if s.ownerCache != nil {
		owner, ok, err := s.ownerCache.Get(ctx, name)
		switch {
		case err != nil:
			s.metrics.IncrementOwnerCacheLookup("error")
			s.logger.WarnContext(ctx, "owner cache lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"domain", name,
				"error", err,
			)
		case ok:
			s.metrics.IncrementOwnerCacheLookup("hit")
			return owner, nil
		default:
			s.metrics.IncrementOwnerCacheLookup("miss")
		}
	}

	var owner id.AccountID
	err := s.tx.View(ctx, func(ctx context.Context) error {
		record, err := s.findByName(ctx, name)
		if err != nil || record == nil {
			return err
		}
		owner = record.Owner
		// Filled under the ledger lock so a concurrent transfer's
		// invalidation always lands after this write.
		if s.ownerCache != nil {
			if err := s.ownerCache.Set(ctx, name, owner); err != nil {
				s.logger.WarnContext(ctx, "owner cache fill failed",
					"request_id", requestcontext.RequestID(ctx),
					"domain", name,
					"error", err,
				)
			}
		}
		return nil
	})
	if err != nil {
		return id.ZeroAccount, err
	}
	return owner, nil
}

// PrimaryDomain returns the account's primary domain, or "" if none is set.
func (s *Service) PrimaryDomain(ctx context.Context, account id.AccountID) (string, error) {
	var name string
	err := s.tx.View(ctx, func(ctx context.Context) error {
		primary, ok, err := s.primaries.Get(ctx, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load primary domain")
		}
		if ok {
			name = primary
		}
		return nil
	})
	return name, err
}

func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.tx.View(ctx, func(ctx context.Context) error {
		record, err := s.findByName(ctx, name)
		exists = record != nil
		return err
	})
	return exists, err
}

// Domain returns the full record for name, or a zero record if absent.
func (s *Service) Domain(ctx context.Context, name string) (models.DomainRecord, error) {
	var out models.DomainRecord
	err := s.tx.View(ctx, func(ctx context.Context) error {
		record, err := s.findByName(ctx, name)
		if record != nil {
			out = *record
		}
		return err
	})
	return out, err
}

// DomainBySequence resolves a transfer handle to its record.
func (s *Service) DomainBySequence(ctx context.Context, sequenceID uint64) (models.DomainRecord, error) {
	var out models.DomainRecord
	err := s.tx.View(ctx, func(ctx context.Context) error {
		record, err := s.domains.FindBySequenceID(ctx, sequenceID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "domain not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domain")
		}
		out = *record
		return nil
	})
	return out, err
}

// BalanceOf counts the domains account currently owns.
func (s *Service) BalanceOf(ctx context.Context, account id.AccountID) (int, error) {
	names, err := s.DomainsOf(ctx, account)
	return len(names), err
}

// DomainsOf lists the names account owns in creation order.
func (s *Service) DomainsOf(ctx context.Context, account id.AccountID) ([]string, error) {
	names := []string{}
	if account.IsZero() {
		return names, nil
	}
	err := s.tx.View(ctx, func(ctx context.Context) error {
		records, err := s.domains.ListByOwner(ctx, account)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list domains")
		}
		for _, record := range records {
			names = append(names, record.Name)
		}
		return nil
	})
	return names, err
}

// Account summarizes one account in a single consistent read.
func (s *Service) Account(ctx context.Context, account id.AccountID) (models.AccountSummary, error) {
	summary := models.AccountSummary{Account: account, Domains: []string{}}
	err := s.tx.View(ctx, func(ctx context.Context) error {
		primary, err := s.PrimaryDomain(ctx, account)
		if err != nil {
			return err
		}
		names, err := s.DomainsOf(ctx, account)
		if err != nil {
			return err
		}
		summary.PrimaryDomain = primary
		summary.Domains = names
		summary.Balance = len(names)
		return nil
	})
	return summary, err
}

func (s *Service) Metadata() models.Metadata {
	return models.Metadata{Name: models.LedgerName, Symbol: models.LedgerSymbol}
}

func (s *Service) findByName(ctx context.Context, name string) (*models.DomainRecord, error) {
	record, err := s.domains.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load domain")
	}
	return record, nil
}
