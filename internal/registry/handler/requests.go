package handler

import (
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
)

// maxNameLength bounds names accepted over HTTP before they reach the validator.
const maxNameLength = 253

// NewDomainRequest is the body of POST /v1/domains.
type NewDomainRequest struct {
	Name string `json:"name"`
}

func (r *NewDomainRequest) Validate() error {
	return validateName(r.Name)
}

// TransferRequest is the body of POST /v1/domains/by-sequence/{sequenceID}/transfer.
// An empty To is passed through as the zero account so the ledger can
// reject it with its own message.
type TransferRequest struct {
	From string `json:"from"`
	To   string `json:"to"`

	from id.AccountID
	to   id.AccountID
}

func (r *TransferRequest) Validate() error {
	var err error
	if r.From != "" {
		if r.from, err = id.ParseAccountID(r.From); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "from is not a valid account id")
		}
	}
	if r.To != "" {
		if r.to, err = id.ParseAccountID(r.To); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidInput, "to is not a valid account id")
		}
	}
	return nil
}

// ParsedFrom returns From as an account, zero when empty.
func (r *TransferRequest) ParsedFrom() id.AccountID { return r.from }

// ParsedTo returns To as an account, zero when empty.
func (r *TransferRequest) ParsedTo() id.AccountID { return r.to }

// SetPrimaryRequest is the body of PUT /v1/accounts/me/primary.
type SetPrimaryRequest struct {
	Name string `json:"name"`
}

func (r *SetPrimaryRequest) Validate() error {
	return validateName(r.Name)
}

func validateName(name string) error {
	if len(name) > maxNameLength {
		return dErrors.New(dErrors.CodeInvalidInput, "name is too long")
	}
	return nil
}
