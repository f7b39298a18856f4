package comunica

import "encoding/json"

type searchResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Items   json.RawMessage `json:"items"`
}

type Recipient struct {
	Name string `json:"nome"`
	Polo string `json:"polo"`
}

type Attorney struct {
	Name string `json:"nome"`
	OAB  string `json:"numero_oab"`
	UF   string `json:"uf_oab"`
}

type AttorneyRecipient struct {
	Attorney Attorney `json:"advogado"`
}

// Item is one communication as returned by the search endpoint.
type Item struct {
	ID               int64               `json:"id"`
	AvailableAt      string              `json:"data_disponibilizacao"`
	Tribunal         string              `json:"siglaTribunal"`
	Kind             string              `json:"tipoComunicacao"`
	OrgUnit          string              `json:"nomeOrgao"`
	Text             string              `json:"texto"`
	CaseNumber       string              `json:"numero_processo"`
	MaskedCaseNumber string              `json:"numeroprocessocommascara"`
	Channel          string              `json:"meio"`
	Link             string              `json:"link"`
	DocumentType     string              `json:"tipoDocumento"`
	ClassName        string              `json:"nomeClasse"`
	Hash             string              `json:"hash"`
	Recipients       []Recipient         `json:"destinatarios"`
	Attorneys        []AttorneyRecipient `json:"destinatarioadvogados"`
}

type Pagination struct {
	Page         int `json:"page"`
	ItemsPerPage int `json:"items_per_page"`
	Total        int `json:"total"`
}

type SearchResult struct {
	Communications []Item
	Pagination     Pagination
	RateLimit      RateLimitStatus
}

type Tribunal struct {
	Acronym string `json:"sigla"`
	Name    string `json:"nome"`
	UF      string `json:"uf"`
}

// CadernoMetadata describes the daily bulletin of a tribunal.
type CadernoMetadata struct {
	Tribunal string `json:"tribunal"`
	Date     string `json:"data"`
	Channel  string `json:"meio"`
	Total    int    `json:"total_comunicacoes"`
	URL      string `json:"url"`
	Status   string `json:"status"`
}
