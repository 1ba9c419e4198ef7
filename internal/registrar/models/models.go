package models

import (
	"time"

	id "inu/pkg/domain"
)

// Blank fills every text field of a subdomain that has no data yet, both on
// creation and after a transfer wipes it.
const Blank = "_"

// OwnerInfo is the public profile of a registrar's administrator.
type OwnerInfo struct {
	Description string `json:"description"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
}

// Profile is the free-form data attached to one subdomain.
type Profile struct {
	Description string `json:"description"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
}

// BlankProfile returns a profile with every field set to Blank.
func BlankProfile() Profile {
	return Profile{Description: Blank, Website: Blank, Email: Blank, Avatar: Blank}
}

// Registrar is the sub-ledger serving one parent domain.
//
// Administrator is fixed when the registrar is deployed and is tracked
// separately from whoever owns ParentDomain in the registry.
type Registrar struct {
	ParentDomain  string       `json:"parent_domain"`
	Administrator id.AccountID `json:"administrator"`
	OwnerInfo     OwnerInfo    `json:"owner_info"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func NewRegistrar(parent string, administrator id.AccountID, now time.Time) *Registrar {
	return &Registrar{
		ParentDomain:  parent,
		Administrator: administrator,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsAdministrator reports whether account controls the registrar.
func (r *Registrar) IsAdministrator(account id.AccountID) bool {
	return !account.IsZero() && r.Administrator == account
}

// SubdomainRecord is one name under a parent domain.
//
// Invariants:
//   - exactly one record per (Parent, Name); records are never removed
//   - Owner is the administrator while the name is unclaimed
//   - Position is the zero-based creation order within Parent
type SubdomainRecord struct {
	Parent    string       `json:"parent"`
	Name      string       `json:"name"`
	Owner     id.AccountID `json:"owner"`
	Profile   Profile      `json:"profile"`
	Position  int          `json:"position"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSubdomainRecord builds an unclaimed record held by the administrator.
func NewSubdomainRecord(parent, name string, administrator id.AccountID, position int, now time.Time) *SubdomainRecord {
	return &SubdomainRecord{
		Parent:    parent,
		Name:      name,
		Owner:     administrator,
		Profile:   BlankProfile(),
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive reports whether the record is delegated away from administrator.
func (s *SubdomainRecord) IsActive(administrator id.AccountID) bool {
	return !s.Owner.IsZero() && s.Owner != administrator
}

// IsOwnedBy reports whether account currently holds the record.
func (s *SubdomainRecord) IsOwnedBy(account id.AccountID) bool {
	return !account.IsZero() && s.Owner == account
}

// ApplyTransfer hands the record to target and wipes its profile.
func (s *SubdomainRecord) ApplyTransfer(target id.AccountID, now time.Time) {
	s.Profile = BlankProfile()
	s.Owner = target
	s.UpdatedAt = now
}

// TransferKind names what a subdomain transfer did.
type TransferKind string

const (
	TransferDelegated   TransferKind = "delegated"
	TransferRedelegated TransferKind = "redelegated"
	TransferReclaimed   TransferKind = "reclaimed"
)

// ClassifyTransfer derives the kind of a move from previous to target.
func ClassifyTransfer(previous, target, administrator id.AccountID) TransferKind {
	switch {
	case target == administrator:
		return TransferReclaimed
	case previous == administrator:
		return TransferDelegated
	default:
		return TransferRedelegated
	}
}

// SubdomainView is a record together with its derived flags.
type SubdomainView struct {
	SubdomainRecord
	Registered bool `json:"registered"`
	Active     bool `json:"active"`
}
