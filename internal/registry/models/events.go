package models

import id "inu/pkg/domain"

// DomainCreated is emitted when a new name is issued.
type DomainCreated struct {
	Name       string
	Owner      id.AccountID
	SequenceID uint64
}

// DomainTransferred is emitted when a record changes hands.
type DomainTransferred struct {
	Name           string
	SequenceID     uint64
	From           id.AccountID
	To             id.AccountID
	PrimaryCleared bool
}

// PrimaryDomainSet is emitted when an account's primary name changes,
// explicitly or by auto-assignment on first creation.
type PrimaryDomainSet struct {
	Account id.AccountID
	Name    string
	Auto    bool
}
