// Package reconcile infers judicial metadata from raw court data and links
// national communications to locally tracked pending items.
package reconcile

import (
	"strings"

	"judicial_capture/internal/domain"
)

var appellateMarkers = []string{"turma", "gabinete", "segundo grau", "seção", "sdc", "sdi"}

// InferInstance derives the judicial level from the org-unit name and the
// tribunal code. It is a pure function of its inputs.
func InferInstance(orgName, tribunalCode string) domain.Instance {
	org := strings.ToLower(orgName)

	if strings.EqualFold(strings.TrimSpace(tribunalCode), "TST") || strings.Contains(org, "ministro") {
		return domain.InstanceSuperior
	}

	for _, marker := range appellateMarkers {
		if strings.Contains(org, marker) {
			return domain.InstanceAppellate
		}
	}

	return domain.InstanceTrial
}
