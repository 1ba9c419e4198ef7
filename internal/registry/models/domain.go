package models

import (
	"time"

	id "inu/pkg/domain"
)

// Ledger metadata reported by the registry.
const (
	LedgerName   = "Registry"
	LedgerSymbol = "INU"
)

// DomainRecord is one issued top-level name.
//
// Invariants:
//   - Name is unique across every record ever created and never reused
//   - SequenceID is assigned at creation, starts at 0 and grows by one per record
//   - Records are never deleted; only Owner and UpdatedAt change (on transfer)
type DomainRecord struct {
	Name       string       `json:"name"`
	Owner      id.AccountID `json:"owner"`
	SequenceID uint64       `json:"sequence_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// NewDomainRecord builds a record for a freshly issued name.
func NewDomainRecord(name string, owner id.AccountID, sequenceID uint64, now time.Time) *DomainRecord {
	return &DomainRecord{
		Name:       name,
		Owner:      owner,
		SequenceID: sequenceID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsOwnedBy reports whether account currently holds the record.
func (d *DomainRecord) IsOwnedBy(account id.AccountID) bool {
	return !account.IsZero() && d.Owner == account
}

// ApplyTransfer moves the record to a new owner.
func (d *DomainRecord) ApplyTransfer(to id.AccountID, now time.Time) {
	d.Owner = to
	d.UpdatedAt = now
}

// Metadata describes the ledger itself.
type Metadata struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// AccountSummary aggregates what the registry knows about one account.
type AccountSummary struct {
	Account       id.AccountID `json:"account"`
	PrimaryDomain string       `json:"primary_domain"`
	Balance       int          `json:"balance"`
	Domains       []string     `json:"domains"`
}
