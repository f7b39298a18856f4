package pje

import "encoding/json"

// Page is the pagination envelope shared by the panel and hearing endpoints.
type Page[T any] struct {
	Page         int `json:"pagina"`
	PageSize     int `json:"tamanhoPagina"`
	PageCount    int `json:"qtdPaginas"`
	TotalRecords int `json:"totalRegistros"`
	Results      []T `json:"resultado"`
}

type rawPage struct {
	Page         int             `json:"pagina"`
	PageSize     int             `json:"tamanhoPagina"`
	PageCount    int             `json:"qtdPaginas"`
	TotalRecords int             `json:"totalRegistros"`
	Results      json.RawMessage `json:"resultado"`
}

type TaskTotal struct {
	GroupID  TaskGroup `json:"idAgrupamentoProcessoTarefa"`
	Name     string    `json:"nomeAgrupamentoTarefa"`
	Quantity int       `json:"quantidadeProcessos"`
}

// CaseItem is one entry of the attorney panel: a case of the docket or a
// pending item, depending on the task group queried.
type CaseItem struct {
	ID             int64   `json:"id"`
	OrgUnit        string  `json:"descricaoOrgaoJulgador"`
	CaseClass      string  `json:"classeJudicial"`
	CaseNumber     string  `json:"numeroProcesso"`
	Confidential   bool    `json:"segredoDeJustica"`
	StatusCode     string  `json:"codigoStatusProcesso"`
	Priority       bool    `json:"prioridade"`
	PlaintiffName  string  `json:"nomeParteAutora"`
	PlaintiffCount int     `json:"qtdeParteAutora"`
	DefendantName  string  `json:"nomeParteRe"`
	DefendantCount int     `json:"qtdeParteRe"`
	FiledAt        *string `json:"dataAutuacao"`
	ArchivedAt     *string `json:"dataArquivamento"`
	NextHearingAt  *string `json:"dataProximaAudiencia"`
	NoticeAt       *string `json:"dataCienciaParte"`
	DeadlineAt     *string `json:"dataPrazoLegalParte"`
	CreatedAt      *string `json:"dataCriacaoExpediente"`
}

type Described struct {
	Description string `json:"descricao"`
}

type Named struct {
	Name string `json:"nome"`
}

type HearingCase struct {
	ID      int64     `json:"id"`
	Number  string    `json:"numero"`
	OrgUnit Described `json:"orgaoJulgador"`
}

type HearingItem struct {
	ID           int64       `json:"id"`
	StartsAt     *string     `json:"dataInicio"`
	EndsAt       *string     `json:"dataFim"`
	Status       string      `json:"status"`
	Case         HearingCase `json:"processo"`
	Kind         Described   `json:"tipo"`
	Room         Named       `json:"salaAudiencia"`
	ActiveParty  Named       `json:"poloAtivo"`
	PassiveParty Named       `json:"poloPassivo"`
	VirtualURL   *string     `json:"urlAudienciaVirtual"`
}
