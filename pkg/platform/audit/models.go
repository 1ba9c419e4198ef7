package audit

import (
	"context"
	"time"

	id "inu/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryOwnership covers every change of who holds a name. These events
	// form the ledger's history and are never sampled.
	CategoryOwnership EventCategory = "ownership"

	// CategoryProfile covers edits to free-form registrar and subdomain data.
	CategoryProfile EventCategory = "profile"
)

// Event is emitted from ledger operations inside their transaction. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// Actor is the authenticated caller of the operation.
	Actor id.AccountID
	// Subject is the name acted on (domain, or subdomain within Parent).
	Subject string
	// Parent is set for registrar events.
	Parent string
	// From and To describe ownership moves.
	From      id.AccountID
	To        id.AccountID
	Detail    string
	RequestID string
}

type AuditEvent string

const (
	// Registry events
	EventDomainCreated     AuditEvent = "domain_created"
	EventDomainTransferred AuditEvent = "domain_transferred"
	EventPrimaryDomainSet  AuditEvent = "primary_domain_set"
	EventPrimaryCleared    AuditEvent = "primary_domain_cleared"

	// Registrar events
	EventRegistrarDeployed     AuditEvent = "registrar_deployed"
	EventOwnerInfoUpdated      AuditEvent = "owner_info_updated"
	EventSubdomainCreated      AuditEvent = "subdomain_created"
	EventSubdomainDelegated    AuditEvent = "subdomain_delegated"
	EventSubdomainRedelegated  AuditEvent = "subdomain_redelegated"
	EventSubdomainReclaimed    AuditEvent = "subdomain_reclaimed"
	EventSubdomainDataModified AuditEvent = "subdomain_data_modified"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventDomainCreated:        CategoryOwnership,
	EventDomainTransferred:    CategoryOwnership,
	EventPrimaryDomainSet:     CategoryOwnership,
	EventPrimaryCleared:       CategoryOwnership,
	EventRegistrarDeployed:    CategoryOwnership,
	EventSubdomainCreated:     CategoryOwnership,
	EventSubdomainDelegated:   CategoryOwnership,
	EventSubdomainRedelegated: CategoryOwnership,
	EventSubdomainReclaimed:   CategoryOwnership,

	EventOwnerInfoUpdated:      CategoryProfile,
	EventSubdomainDataModified: CategoryProfile,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryProfile.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryProfile
}

// Store persists audit events. Implementations must honour the transaction
// carried by ctx so events commit or roll back with the ledger write.
type Store interface {
	Append(ctx context.Context, event Event) error
}
