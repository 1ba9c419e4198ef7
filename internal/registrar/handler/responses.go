package handler

import id "inu/pkg/domain"

// DeployResponse is returned by POST /domains/{name}/registrar.
type DeployResponse struct {
	ParentDomain  string       `json:"parent_domain"`
	Administrator id.AccountID `json:"administrator"`
}

// SubdomainListResponse lists subdomains in creation order.
type SubdomainListResponse struct {
	ParentDomain string   `json:"parent_domain"`
	Subdomains   []string `json:"subdomains"`
}

// SubdomainAtResponse names the subdomain at one position. Name is empty
// when the index is past the end.
type SubdomainAtResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// HolderResponse reports whether an account holds a subdomain.
type HolderResponse struct {
	Account      id.AccountID `json:"account"`
	HasSubdomain bool         `json:"has_subdomain"`
}
