package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Response DTOs
// ============================================================================

type SubmissionDTO struct {
	ID                 uuid.UUID              `json:"id"`
	EstimateID         *string                `json:"estimate_id,omitempty"`
	Status             SubmissionStatus       `json:"status"`
	Category           string                 `json:"category"`
	Sqft               *float64               `json:"sqft,omitempty"`
	ClientName         string                 `json:"client_name,omitempty"`
	ClientEmail        string                 `json:"client_email,omitempty"`
	ClientPhone        string                 `json:"client_phone,omitempty"`
	ComplexityTier     *int                   `json:"complexity_tier,omitempty"`
	QuotedTotal        *float64               `json:"quoted_total,omitempty"`
	GeographicZone     GeographicZone         `json:"geographic_zone,omitempty"`
	SupplyChainRisk    SupplyChainRisk        `json:"supply_chain_risk,omitempty"`
	DurationType       DurationType           `json:"duration_type,omitempty"`
	LineItems          []LineItem             `json:"line_items"`
	PricingTiers       []PricingTier          `json:"pricing_tiers"`
	SelectedTier       TierName               `json:"selected_tier"`
	TotalPrice         float64                `json:"total_price"`
	TotalMaterialsCost float64                `json:"total_materials_cost"`
	TotalLaborCost     float64                `json:"total_labor_cost"`
	PricingVersion     string                 `json:"pricing_version"`
	Notes              []Note                 `json:"notes"`
	AuditLog           []AuditEntry           `json:"audit_log"`
	CreatedBy          string                 `json:"created_by"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
	FinalizedAt        *time.Time             `json:"finalized_at,omitempty"`
	ApprovedAt         *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy         string                 `json:"approved_by,omitempty"`
	ParentSubmissionID *uuid.UUID             `json:"parent_submission_id,omitempty"`
	UpsellType         string                 `json:"upsell_type,omitempty"`
	Children           []SubmissionSummaryDTO `json:"children"`
	SendStatus         SendStatus             `json:"send_status,omitempty"`
	RecipientEmail     string                 `json:"recipient_email,omitempty"`
	EmailSubject       string                 `json:"email_subject,omitempty"`
	EmailBody          string                 `json:"email_body,omitempty"`
	ScheduledSendAt    *time.Time             `json:"scheduled_send_at,omitempty"`
	SentAt             *time.Time             `json:"sent_at,omitempty"`
	SendError          string                 `json:"send_error,omitempty"`
}

type SubmissionSummaryDTO struct {
	ID                 uuid.UUID        `json:"id"`
	Status             SubmissionStatus `json:"status"`
	Category           string           `json:"category"`
	ClientName         string           `json:"client_name,omitempty"`
	TotalPrice         float64          `json:"total_price"`
	CreatedBy          string           `json:"created_by"`
	CreatedAt          time.Time        `json:"created_at"`
	UpsellType         string           `json:"upsell_type,omitempty"`
	ParentSubmissionID *uuid.UUID       `json:"parent_submission_id,omitempty"`
	HasChildren        bool             `json:"has_children"`
}

type SubmissionListResponse struct {
	Items  []SubmissionSummaryDTO `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

type TotalsDTO struct {
	Materials float64 `json:"materials"`
	Labor     float64 `json:"labor"`
	Grand     float64 `json:"grand"`
}

// ProposalDTO is the normalized draft returned without persisting
type ProposalDTO struct {
	Submission SubmissionDTO          `json:"submission"`
	Changes    map[string]FieldChange `json:"changes"`
	Totals     TotalsDTO              `json:"totals"`
}

type NoteResponse struct {
	Note       Note          `json:"note"`
	Submission SubmissionDTO `json:"submission"`
}

type UpsellSuggestionDTO struct {
	Type          string `json:"type"`
	NameFR        string `json:"name_fr"`
	NameEN        string `json:"name_en"`
	DescriptionFR string `json:"description_fr,omitempty"`
	DescriptionEN string `json:"description_en,omitempty"`
}

type RedFlagDTO struct {
	Category    string            `json:"category"`
	Severity    string            `json:"severity"`
	Messages    map[string]string `json:"messages"`
	Dismissible bool              `json:"dismissible"`
	Dismissed   bool              `json:"dismissed"`
}

type RedFlagsResponse struct {
	Flags         []RedFlagDTO `json:"flags"`
	RulesVersion  string       `json:"rules_version"`
	HasCritical   bool         `json:"has_critical"`
	BenchmarkUsed bool         `json:"benchmark_used"`
}

type SendResponse struct {
	Status     string     `json:"status"`
	SendStatus SendStatus `json:"send_status"`
}

type TiersResponse struct {
	Tiers          []PricingTier `json:"tiers"`
	PricingVersion string        `json:"pricing_version"`
}

// ============================================================================
// Request DTOs
// ============================================================================

type LineItemRequest struct {
	ID         string       `json:"id,omitempty"`
	Type       LineItemType `json:"type" validate:"required,oneof=material labor"`
	MaterialID *int64       `json:"material_id,omitempty"`
	Name       string       `json:"name" validate:"required,max=500"`
	Quantity   float64      `json:"quantity" validate:"gt=0"`
	UnitPrice  float64      `json:"unit_price" validate:"gte=0"`
	Order      *int         `json:"order,omitempty" validate:"omitempty,gte=0"`
}

type PricingTierRequest struct {
	Tier          TierName `json:"tier" validate:"required,oneof=Basic Standard Premium"`
	TotalPrice    float64  `json:"total_price" validate:"gte=0"`
	MaterialsCost float64  `json:"materials_cost" validate:"gte=0"`
	LaborCost     float64  `json:"labor_cost" validate:"gte=0"`
	Description   string   `json:"description,omitempty" validate:"max=1000"`
}

type CreateSubmissionRequest struct {
	EstimateID      *string              `json:"estimate_id,omitempty" validate:"omitempty,max=100"`
	Category        string               `json:"category" validate:"required,max=100"`
	Sqft            *float64             `json:"sqft,omitempty" validate:"omitempty,gte=0"`
	ClientName      string               `json:"client_name,omitempty" validate:"max=255"`
	ClientEmail     string               `json:"client_email,omitempty" validate:"omitempty,email,max=255"`
	ClientPhone     string               `json:"client_phone,omitempty" validate:"max=50"`
	ComplexityTier  *int                 `json:"complexity_tier,omitempty" validate:"omitempty,min=1,max=6"`
	QuotedTotal     *float64             `json:"quoted_total,omitempty" validate:"omitempty,gte=0"`
	GeographicZone  GeographicZone       `json:"geographic_zone,omitempty" validate:"omitempty,oneof=green yellow red_flag"`
	SupplyChainRisk SupplyChainRisk      `json:"supply_chain_risk,omitempty" validate:"omitempty,oneof=standard extended import"`
	DurationType    DurationType         `json:"duration_type,omitempty" validate:"omitempty,oneof=half_day full_day multi_day"`
	LineItems       []LineItemRequest    `json:"line_items" validate:"dive"`
	PricingTiers    []PricingTierRequest `json:"pricing_tiers,omitempty" validate:"omitempty,len=3,dive"`
	SelectedTier    TierName             `json:"selected_tier,omitempty" validate:"omitempty,oneof=Basic Standard Premium"`
}

// UpdateSubmissionRequest is a partial update. Absent fields are left unchanged.
type UpdateSubmissionRequest struct {
	LineItems    *[]LineItemRequest `json:"line_items,omitempty" validate:"omitempty,dive"`
	SelectedTier *TierName          `json:"selected_tier,omitempty" validate:"omitempty,oneof=Basic Standard Premium"`
	ClientName   *string            `json:"client_name,omitempty" validate:"omitempty,max=255"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=2000"`
}

type AddNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateUpsellRequest struct {
	UpsellType string `json:"upsell_type" validate:"required,max=100"`
}

type DismissFlagsRequest struct {
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
}

type SendRequest struct {
	SendOption     SendOption `json:"send_option" validate:"required,oneof=now schedule draft"`
	RecipientEmail string     `json:"recipient_email,omitempty" validate:"max=255"`
	Subject        string     `json:"subject,omitempty" validate:"max=500"`
	Body           string     `json:"body,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
}

type EstimateHoursRequest struct {
	Tier             int                      `json:"tier" validate:"required"`
	Factors          EstimateFactorSelections `json:"factors"`
	ManualExtraHours float64                  `json:"manual_extra_hours" validate:"gte=0"`
}

// EstimateFactorSelections mirrors the complexity factor inputs on the wire
type EstimateFactorSelections struct {
	RoofPitch           string   `json:"roof_pitch,omitempty"`
	AccessDifficulty    []string `json:"access_difficulty,omitempty"`
	Demolition          string   `json:"demolition,omitempty"`
	PenetrationsCount   int      `json:"penetrations_count,omitempty" validate:"gte=0"`
	Security            []string `json:"security,omitempty"`
	MaterialRemoval     string   `json:"material_removal,omitempty"`
	RoofSectionsCount   int      `json:"roof_sections_count,omitempty" validate:"gte=0"`
	PreviousLayersCount int      `json:"previous_layers_count,omitempty" validate:"gte=0"`
}

type DeriveTiersRequest struct {
	MaterialsCost float64  `json:"materials_cost" validate:"gte=0"`
	LaborCost     *float64 `json:"labor_cost,omitempty" validate:"omitempty,gte=0"`
	LaborHours    *float64 `json:"labor_hours,omitempty" validate:"omitempty,gte=0"`
	HourlyRate    *float64 `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
}
