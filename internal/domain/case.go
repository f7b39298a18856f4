package domain

import "time"

// Instance is the judicial level (grau) a record belongs to.
type Instance string

const (
	InstanceTrial     Instance = "primeiro_grau"
	InstanceAppellate Instance = "segundo_grau"
	InstanceSuperior  Instance = "tribunal_superior"
)

func (i Instance) Valid() bool {
	return i == InstanceTrial || i == InstanceAppellate || i == InstanceSuperior
}

type CaseOrigin string

const (
	OriginGeneralDocket CaseOrigin = "acervo_geral"
	OriginArchived      CaseOrigin = "arquivado"
	OriginPending       CaseOrigin = "expediente"
)

// CaseRecord is a case (processo) or pending item (expediente) fetched from
// the court API. The natural key is (ExternalID, AttorneyID, Tribunal,
// Instance, CaseNumber) and is enforced by the store.
type CaseRecord struct {
	ID               int64      `db:"id"`
	ExternalID       int64      `db:"external_id"`
	AttorneyID       int64      `db:"attorney_id"`
	Tribunal         string     `db:"tribunal"`
	Instance         Instance   `db:"instance"`
	CaseNumber       string     `db:"case_number"`
	CaseNumberDigits string     `db:"case_number_digits"`
	Origin           CaseOrigin `db:"origin"`
	OrgUnit          string     `db:"org_unit"`
	CaseClass        string     `db:"case_class"`
	PlaintiffName    string     `db:"plaintiff_name"`
	PlaintiffCount   int        `db:"plaintiff_count"`
	DefendantName    string     `db:"defendant_name"`
	DefendantCount   int        `db:"defendant_count"`
	StatusCode       string     `db:"status_code"`
	Confidential     bool       `db:"confidential"`
	FiledAt          *time.Time `db:"filed_at"`
	ArchivedAt       *time.Time `db:"archived_at"`
	NextHearingAt    *time.Time `db:"next_hearing_at"`
	NoticeAt         *time.Time `db:"notice_at"`
	DeadlineAt       *time.Time `db:"deadline_at"`
	CreatedAt        time.Time  `db:"created_at"`
}

func (r *CaseRecord) IsPending() bool {
	return r.Origin == OriginPending
}

// Validate checks the fields that must be present for an insert.
func (r *CaseRecord) Validate() error {
	switch {
	case r.ExternalID == 0:
		return &ValidationError{Field: "external_id"}
	case r.AttorneyID == 0:
		return &ValidationError{Field: "attorney_id"}
	case r.Tribunal == "":
		return &ValidationError{Field: "tribunal"}
	case !r.Instance.Valid():
		return &ValidationError{Field: "instance"}
	case r.CaseNumber == "":
		return &ValidationError{Field: "case_number"}
	case r.Origin == "":
		return &ValidationError{Field: "origin"}
	}
	return nil
}

// Hearing is an entry of the attorney's hearing schedule (pauta).
type Hearing struct {
	ID             int64      `db:"id"`
	ExternalID     int64      `db:"external_id"`
	CaseExternalID int64      `db:"case_external_id"`
	AttorneyID     int64      `db:"attorney_id"`
	Tribunal       string     `db:"tribunal"`
	Instance       Instance   `db:"instance"`
	CaseNumber     string     `db:"case_number"`
	OrgUnit        string     `db:"org_unit"`
	Kind           string     `db:"kind"`
	StatusCode     string     `db:"status_code"`
	Room           string     `db:"room"`
	PlaintiffName  string     `db:"plaintiff_name"`
	DefendantName  string     `db:"defendant_name"`
	VirtualURL     *string    `db:"virtual_url"`
	StartsAt       *time.Time `db:"starts_at"`
	EndsAt         *time.Time `db:"ends_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

func (h *Hearing) Validate() error {
	switch {
	case h.ExternalID == 0:
		return &ValidationError{Field: "external_id"}
	case h.AttorneyID == 0:
		return &ValidationError{Field: "attorney_id"}
	case h.Tribunal == "":
		return &ValidationError{Field: "tribunal"}
	case !h.Instance.Valid():
		return &ValidationError{Field: "instance"}
	case h.CaseNumber == "":
		return &ValidationError{Field: "case_number"}
	}
	return nil
}
