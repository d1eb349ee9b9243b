package mapper

import (
	"github.com/toiture-lv/quote-api/internal/complexity"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/ledger"
	"github.com/toiture-lv/quote-api/internal/redflag"
	"github.com/toiture-lv/quote-api/internal/upsell"
	"github.com/toiture-lv/quote-api/internal/workflow"
)

// ToSubmissionDTO converts Submission to SubmissionDTO
func ToSubmissionDTO(sub *domain.Submission) domain.SubmissionDTO {
	dto := domain.SubmissionDTO{
		ID:                 sub.ID,
		EstimateID:         sub.EstimateID,
		Status:             sub.Status,
		Category:           sub.Category,
		Sqft:               sub.Sqft,
		ClientName:         sub.ClientName,
		ClientEmail:        sub.ClientEmail,
		ClientPhone:        sub.ClientPhone,
		ComplexityTier:     sub.ComplexityTier,
		QuotedTotal:        sub.QuotedTotal,
		GeographicZone:     sub.GeographicZone,
		SupplyChainRisk:    sub.SupplyChainRisk,
		DurationType:       sub.DurationType,
		LineItems:          nonNil(sub.LineItems),
		PricingTiers:       nonNil(sub.PricingTiers),
		SelectedTier:       sub.SelectedTier,
		TotalPrice:         sub.TotalPrice,
		TotalMaterialsCost: sub.TotalMaterialsCost,
		TotalLaborCost:     sub.TotalLaborCost,
		PricingVersion:     sub.PricingVersion,
		Notes:              nonNil(sub.Notes),
		AuditLog:           nonNil(sub.AuditLog),
		CreatedBy:          sub.CreatedBy,
		CreatedAt:          sub.CreatedAt,
		UpdatedAt:          sub.UpdatedAt,
		FinalizedAt:        sub.FinalizedAt,
		ApprovedAt:         sub.ApprovedAt,
		ApprovedBy:         sub.ApprovedBy,
		ParentSubmissionID: sub.ParentSubmissionID,
		UpsellType:         sub.UpsellType,
		SendStatus:         sub.SendStatus,
		RecipientEmail:     sub.RecipientEmail,
		EmailSubject:       sub.EmailSubject,
		EmailBody:          sub.EmailBody,
		ScheduledSendAt:    sub.ScheduledSendAt,
		SentAt:             sub.SentAt,
		SendError:          sub.SendError,
	}

	dto.Children = make([]domain.SubmissionSummaryDTO, 0, len(sub.Children))
	for _, c := range sub.Children {
		dto.Children = append(dto.Children, ToSubmissionSummaryDTO(c))
	}
	return dto
}

// ToSubmissionSummaryDTO converts SubmissionSummary to SubmissionSummaryDTO
func ToSubmissionSummaryDTO(s domain.SubmissionSummary) domain.SubmissionSummaryDTO {
	return domain.SubmissionSummaryDTO{
		ID:                 s.ID,
		Status:             s.Status,
		Category:           s.Category,
		ClientName:         s.ClientName,
		TotalPrice:         s.TotalPrice,
		CreatedBy:          s.CreatedBy,
		CreatedAt:          s.CreatedAt,
		UpsellType:         s.UpsellType,
		ParentSubmissionID: s.ParentSubmissionID,
		HasChildren:        s.HasChildren,
	}
}

func ToTotalsDTO(t ledger.Totals) domain.TotalsDTO {
	return domain.TotalsDTO{Materials: t.Materials, Labor: t.Labor, Grand: t.Grand}
}

// ToProposalDTO converts a workflow proposal
func ToProposalDTO(p *workflow.Proposal) domain.ProposalDTO {
	return domain.ProposalDTO{
		Submission: ToSubmissionDTO(p.Submission),
		Changes:    p.Changes,
		Totals:     ToTotalsDTO(p.Totals),
	}
}

// ToUpsellSuggestionDTO converts a catalog entry
func ToUpsellSuggestionDTO(e upsell.Entry) domain.UpsellSuggestionDTO {
	return domain.UpsellSuggestionDTO{
		Type:          e.Type,
		NameFR:        e.NameFR,
		NameEN:        e.NameEN,
		DescriptionFR: e.DescriptionFR,
		DescriptionEN: e.DescriptionEN,
	}
}

// ToRedFlagDTO renders a flag in the requested languages
func ToRedFlagDTO(f redflag.Flag, dismissed bool, langs ...redflag.Lang) domain.RedFlagDTO {
	msgs := redflag.Messages(f, langs...)
	out := make(map[string]string, len(msgs))
	for lang, msg := range msgs {
		out[string(lang)] = msg
	}
	return domain.RedFlagDTO{
		Category:    string(f.Category),
		Severity:    string(f.Severity),
		Messages:    out,
		Dismissible: f.Dismissible,
		Dismissed:   dismissed,
	}
}

// ToLineItems converts request rows. Missing order values follow list position.
func ToLineItems(reqs []domain.LineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(reqs))
	for i, r := range reqs {
		order := i
		if r.Order != nil {
			order = *r.Order
		}
		items = append(items, domain.LineItem{
			ID:         r.ID,
			Type:       r.Type,
			MaterialID: r.MaterialID,
			Name:       r.Name,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			Order:      order,
		})
	}
	return items
}

func ToPricingTiers(reqs []domain.PricingTierRequest) []domain.PricingTier {
	tiers := make([]domain.PricingTier, 0, len(reqs))
	for _, r := range reqs {
		tiers = append(tiers, domain.PricingTier{
			Tier:          r.Tier,
			TotalPrice:    r.TotalPrice,
			MaterialsCost: r.MaterialsCost,
			LaborCost:     r.LaborCost,
			Description:   r.Description,
		})
	}
	return tiers
}

// ToCreateInput converts a create request to workflow input
func ToCreateInput(req *domain.CreateSubmissionRequest) workflow.CreateInput {
	return workflow.CreateInput{
		EstimateID:      req.EstimateID,
		Category:        req.Category,
		Sqft:            req.Sqft,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		ComplexityTier:  req.ComplexityTier,
		QuotedTotal:     req.QuotedTotal,
		GeographicZone:  req.GeographicZone,
		SupplyChainRisk: req.SupplyChainRisk,
		DurationType:    req.DurationType,
		LineItems:       ToLineItems(req.LineItems),
		PricingTiers:    ToPricingTiers(req.PricingTiers),
		SelectedTier:    req.SelectedTier,
	}
}

// ToChanges converts an update request to a workflow patch
func ToChanges(req *domain.UpdateSubmissionRequest) workflow.Changes {
	ch := workflow.Changes{
		SelectedTier: req.SelectedTier,
		ClientName:   req.ClientName,
	}
	if req.LineItems != nil {
		items := ToLineItems(*req.LineItems)
		ch.LineItems = &items
	}
	return ch
}

// ToSelections converts wire factor selections
func ToSelections(f domain.EstimateFactorSelections) complexity.Selections {
	return complexity.Selections{
		RoofPitch:           f.RoofPitch,
		AccessDifficulty:    f.AccessDifficulty,
		Demolition:          f.Demolition,
		PenetrationsCount:   f.PenetrationsCount,
		Security:            f.Security,
		MaterialRemoval:     f.MaterialRemoval,
		RoofSectionsCount:   f.RoofSectionsCount,
		PreviousLayersCount: f.PreviousLayersCount,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
