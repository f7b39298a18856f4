package reconcile

import (
	"strings"

	"judicial_capture/internal/domain"
)

// UnspecifiedParty is shown when a side of the case has no named recipient.
const UnspecifiedParty = "Não especificado"

type Parties struct {
	Plaintiffs []string
	Defendants []string
}

// ExtractParties splits recipients by polo: A goes to plaintiffs, P to
// defendants. Recipients with any other polo are ignored.
func ExtractParties(recipients []domain.Recipient) Parties {
	var p Parties
	for _, r := range recipients {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(r.Polo)) {
		case domain.PoloActive:
			p.Plaintiffs = append(p.Plaintiffs, name)
		case domain.PoloPassive:
			p.Defendants = append(p.Defendants, name)
		}
	}
	return p
}

func (p Parties) LeadPlaintiffName() string {
	if len(p.Plaintiffs) == 0 {
		return UnspecifiedParty
	}
	return p.Plaintiffs[0]
}

func (p Parties) LeadDefendantName() string {
	if len(p.Defendants) == 0 {
		return UnspecifiedParty
	}
	return p.Defendants[0]
}

// CountParties returns the size of each side, never less than 1.
func (p Parties) CountParties() (plaintiffs, defendants int) {
	return max(len(p.Plaintiffs), 1), max(len(p.Defendants), 1)
}
