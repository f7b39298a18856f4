package domain

// Credential is the resolved context a capture runs under: whose panel,
// which tribunal and instance, and the session handed over by the browser
// automation layer.
type Credential struct {
	ID         string
	AttorneyID int64
	Tribunal   string
	Instance   Instance
	// Origin is the scheme and host of the court session, e.g.
	// https://pje.trt3.jus.br.
	Origin string
	Cookie string `json:"-"`
	OAB    string
	UF     string
}
