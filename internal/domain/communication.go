package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	PoloActive  = "A"
	PoloPassive = "P"
)

type Recipient struct {
	Name string `json:"nome"`
	Polo string `json:"polo"`
}

type Recipients []Recipient

func (r Recipients) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Recipients) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = nil
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	}
	return fmt.Errorf("scan recipients: unsupported type %T", src)
}

// Communication is a public notice from the national communications API.
// Hash is globally unique. ExpedienteID is the optional link to a pending
// CaseRecord set by reconciliation.
type Communication struct {
	ID               int64      `db:"id"`
	ExternalID       int64      `db:"external_id"`
	Hash             string     `db:"hash"`
	Tribunal         string     `db:"tribunal"`
	Channel          string     `db:"channel"`
	OrgUnit          string     `db:"org_unit"`
	Instance         Instance   `db:"instance"`
	Kind             string     `db:"kind"`
	CaseNumber       string     `db:"case_number"`
	CaseNumberDigits string     `db:"case_number_digits"`
	Text             string     `db:"text"`
	Link             string     `db:"link"`
	Recipients       Recipients `db:"recipients"`
	LeadPlaintiff    string     `db:"lead_plaintiff"`
	LeadDefendant    string     `db:"lead_defendant"`
	PlaintiffCount   int        `db:"plaintiff_count"`
	DefendantCount   int        `db:"defendant_count"`
	AvailableAt      *time.Time `db:"available_at"`
	ExpedienteID     *int64     `db:"expediente_id"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (c *Communication) Validate() error {
	switch {
	case c.Hash == "":
		return &ValidationError{Field: "hash"}
	case c.Tribunal == "":
		return &ValidationError{Field: "tribunal"}
	case c.CaseNumber == "":
		return &ValidationError{Field: "case_number"}
	}
	return nil
}

// Link ties a communication to the pending item it was reconciled with.
type Link struct {
	CommunicationID int64  `json:"communication_id"`
	ExpedienteID    int64  `json:"expediente_id"`
	Hash            string `json:"hash"`
}
