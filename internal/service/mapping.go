package service

import (
	"log/slog"
	"strings"

	"judicial_capture/internal/domain"
	"judicial_capture/internal/ingest"
	"judicial_capture/internal/reconcile"
	"judicial_capture/internal/source/comunica"
	"judicial_capture/internal/source/pje"
)

func caseRecordFromPanel(logger *slog.Logger, item pje.CaseItem, cred domain.Credential, origin domain.CaseOrigin) domain.CaseRecord {
	number := strings.TrimSpace(item.CaseNumber)
	orgUnit := strings.TrimSpace(item.OrgUnit)

	rec := domain.CaseRecord{
		ExternalID:       item.ID,
		AttorneyID:       cred.AttorneyID,
		Tribunal:         cred.Tribunal,
		Instance:         instanceFor(cred, orgUnit),
		CaseNumber:       number,
		CaseNumberDigits: reconcile.Normalize(number),
		Origin:           origin,
		OrgUnit:          orgUnit,
		CaseClass:        item.CaseClass,
		PlaintiffName:    item.PlaintiffName,
		PlaintiffCount:   item.PlaintiffCount,
		DefendantName:    item.DefendantName,
		DefendantCount:   item.DefendantCount,
		StatusCode:       item.StatusCode,
		Confidential:     item.Confidential,
		FiledAt:          ingest.ParseDate(logger, "dataAutuacao", item.FiledAt),
		ArchivedAt:       ingest.ParseDate(logger, "dataArquivamento", item.ArchivedAt),
		NextHearingAt:    ingest.ParseDate(logger, "dataProximaAudiencia", item.NextHearingAt),
	}

	if origin == domain.OriginPending {
		rec.NoticeAt = ingest.ParseDate(logger, "dataCienciaParte", item.NoticeAt)
		rec.DeadlineAt = ingest.ParseDate(logger, "dataPrazoLegalParte", item.DeadlineAt)
		if created := ingest.ParseDate(logger, "dataCriacaoExpediente", item.CreatedAt); created != nil {
			rec.CreatedAt = *created
		}
	}

	return rec
}

func hearingFromSchedule(logger *slog.Logger, item pje.HearingItem, cred domain.Credential) domain.Hearing {
	orgUnit := strings.TrimSpace(item.Case.OrgUnit.Description)

	h := domain.Hearing{
		ExternalID:     item.ID,
		CaseExternalID: item.Case.ID,
		AttorneyID:     cred.AttorneyID,
		Tribunal:       cred.Tribunal,
		Instance:       instanceFor(cred, orgUnit),
		CaseNumber:     strings.TrimSpace(item.Case.Number),
		OrgUnit:        orgUnit,
		Kind:           item.Kind.Description,
		StatusCode:     item.Status,
		Room:           item.Room.Name,
		PlaintiffName:  item.ActiveParty.Name,
		DefendantName:  item.PassiveParty.Name,
		StartsAt:       ingest.ParseDate(logger, "dataInicio", item.StartsAt),
		EndsAt:         ingest.ParseDate(logger, "dataFim", item.EndsAt),
	}
	if item.VirtualURL != nil && strings.TrimSpace(*item.VirtualURL) != "" {
		h.VirtualURL = item.VirtualURL
	}
	return h
}

func communicationFromItem(logger *slog.Logger, item comunica.Item) domain.Communication {
	number := strings.TrimSpace(item.MaskedCaseNumber)
	if number == "" {
		number = strings.TrimSpace(item.CaseNumber)
	}

	tribunal := strings.TrimSpace(item.Tribunal)
	if tribunal == "" {
		if t, ok := reconcile.ExtractTribunal(number); ok {
			tribunal = t
		}
	}

	recipients := make(domain.Recipients, 0, len(item.Recipients))
	for _, r := range item.Recipients {
		recipients = append(recipients, domain.Recipient{Name: r.Name, Polo: r.Polo})
	}
	parties := reconcile.ExtractParties(recipients)
	plaintiffs, defendants := parties.CountParties()

	return domain.Communication{
		ExternalID:       item.ID,
		Hash:             item.Hash,
		Tribunal:         tribunal,
		Channel:          item.Channel,
		OrgUnit:          item.OrgUnit,
		Instance:         reconcile.InferInstance(item.OrgUnit, tribunal),
		Kind:             item.Kind,
		CaseNumber:       number,
		CaseNumberDigits: reconcile.Normalize(number),
		Text:             item.Text,
		Link:             item.Link,
		Recipients:       recipients,
		LeadPlaintiff:    parties.LeadPlaintiffName(),
		LeadDefendant:    parties.LeadDefendantName(),
		PlaintiffCount:   plaintiffs,
		DefendantCount:   defendants,
		AvailableAt:      ingest.ParseDateString(logger, "data_disponibilizacao", item.AvailableAt),
	}
}

// instanceFor prefers the instance configured on the credential and falls
// back to inferring it from the org unit.
func instanceFor(cred domain.Credential, orgUnit string) domain.Instance {
	if cred.Instance.Valid() {
		return cred.Instance
	}
	return reconcile.InferInstance(orgUnit, cred.Tribunal)
}
