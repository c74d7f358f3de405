package models

import "benefits-server/models/benefit"

// CatalogResponse is one page of GET /benefits on the upstream catalog.
// NextPage is 0 on the last page.
type CatalogResponse struct {
	Status    string            `json:"status"`
	Page      int               `json:"page"`
	NextPage  int               `json:"next_page"`
	BenefitsN int               `json:"benefits_n"`
	Benefits  []benefit.Benefit `json:"benefits"`
}
