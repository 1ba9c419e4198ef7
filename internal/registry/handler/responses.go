package handler

import (
	"time"

	"inu/internal/registry/models"
	id "inu/pkg/domain"
)

// NewDomainResponse is returned by POST /v1/domains.
type NewDomainResponse struct {
	Name       string `json:"name"`
	SequenceID uint64 `json:"sequence_id"`
}

// DomainResponse describes one name. Exists is false and the other fields
// are zero when nobody registered the name.
type DomainResponse struct {
	Name       string       `json:"name"`
	Exists     bool         `json:"exists"`
	Owner      id.AccountID `json:"owner"`
	SequenceID *uint64      `json:"sequence_id,omitempty"`
	CreatedAt  *time.Time   `json:"created_at,omitempty"`
	UpdatedAt  *time.Time   `json:"updated_at,omitempty"`
}

func FromRecord(name string, record models.DomainRecord, exists bool) *DomainResponse {
	resp := &DomainResponse{Name: name, Exists: exists}
	if !exists {
		return resp
	}
	resp.Owner = record.Owner
	resp.SequenceID = &record.SequenceID
	resp.CreatedAt = &record.CreatedAt
	resp.UpdatedAt = &record.UpdatedAt
	return resp
}
