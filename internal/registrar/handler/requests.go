package handler

import (
	"inu/internal/registrar/models"
	id "inu/pkg/domain"
	dErrors "inu/pkg/domain-errors"
)

const (
	maxNameLength    = 253
	maxProfileLength = 2048
)

// CreateSubdomainRequest is the body of POST /domains/{name}/subdomains.
type CreateSubdomainRequest struct {
	Name string `json:"name"`
}

func (r *CreateSubdomainRequest) Validate() error {
	if len(r.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeInvalidInput, "name is too long")
	}
	return nil
}

// TransferSubdomainRequest is the body of POST /domains/{name}/subdomains/{sub}/transfer.
// An empty Target reaches the registrar as the zero account.
type TransferSubdomainRequest struct {
	Target string `json:"target"`

	target id.AccountID
}

func (r *TransferSubdomainRequest) Validate() error {
	if r.Target == "" {
		return nil
	}
	target, err := id.ParseAccountID(r.Target)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "target is not a valid account id")
	}
	r.target = target
	return nil
}

func (r *TransferSubdomainRequest) ParsedTarget() id.AccountID { return r.target }

// ProfileRequest carries the four free-form text fields shared by owner
// info and subdomain data.
type ProfileRequest struct {
	Description string `json:"description"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
}

func (r *ProfileRequest) Validate() error {
	for _, field := range []string{r.Description, r.Website, r.Email, r.Avatar} {
		if len(field) > maxProfileLength {
			return dErrors.New(dErrors.CodeInvalidInput, "profile field is too long")
		}
	}
	return nil
}

func (r *ProfileRequest) OwnerInfo() models.OwnerInfo {
	return models.OwnerInfo{Description: r.Description, Website: r.Website, Email: r.Email, Avatar: r.Avatar}
}

func (r *ProfileRequest) Profile() models.Profile {
	return models.Profile{Description: r.Description, Website: r.Website, Email: r.Email, Avatar: r.Avatar}
}
