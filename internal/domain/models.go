package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus represents the workflow status of a submission
type SubmissionStatus string

const (
	StatusDraft           SubmissionStatus = "draft"
	StatusPendingApproval SubmissionStatus = "pending_approval"
	StatusApproved        SubmissionStatus = "approved"
	StatusRejected        SubmissionStatus = "rejected"
)

// IsValid checks if the status is a valid value
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Role is the acting user's role, passed with every operation
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEstimator Role = "estimator"
	// RoleSystem is used by background jobs
	RoleSystem Role = "system"
)

// Actor identifies who performs an operation
type Actor struct {
	User string
	Role Role
}

// IsAdmin reports whether the actor may approve or reject
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// LineItemType separates material costs from labor costs
type LineItemType string

const (
	LineItemMaterial LineItemType = "material"
	LineItemLabor    LineItemType = "labor"
)

// IsValid checks if the line item type is a valid value
func (t LineItemType) IsValid() bool {
	return t == LineItemMaterial || t == LineItemLabor
}

// TierName names one of the three pricing tiers
type TierName string

const (
	TierBasic    TierName = "Basic"
	TierStandard TierName = "Standard"
	TierPremium  TierName = "Premium"
)

// TierOrder is the stable display order of pricing tiers
var TierOrder = []TierName{TierBasic, TierStandard, TierPremium}

// IsValid checks if the tier name is a valid value
func (t TierName) IsValid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	}
	return false
}

// AuditAction is the closed vocabulary of audit log actions
type AuditAction string

const (
	AuditCreated         AuditAction = "created"
	AuditEdited          AuditAction = "edited"
	AuditFinalized       AuditAction = "finalized"
	AuditApproved        AuditAction = "approved"
	AuditRejected        AuditAction = "rejected"
	AuditReturnedToDraft AuditAction = "returned_to_draft"
	AuditNoteAdded       AuditAction = "note_added"
	AuditUpsellCreated   AuditAction = "upsell_created"
	AuditSent            AuditAction = "sent"
)

// SendStatus tracks the delivery of an approved submission to the client
type SendStatus string

const (
	SendStatusDraft     SendStatus = "draft"
	SendStatusScheduled SendStatus = "scheduled"
	SendStatusSent      SendStatus = "sent"
	SendStatusFailed    SendStatus = "failed"
)

// SendOption is the caller's choice when sending
type SendOption string

const (
	SendNow      SendOption = "now"
	SendSchedule SendOption = "schedule"
	SendDraft    SendOption = "draft"
)

// GeographicZone classifies the job site distance from the head office
type GeographicZone string

const (
	ZoneGreen  GeographicZone = "green"
	ZoneYellow GeographicZone = "yellow"
	// ZoneRedFlag is more than 60 km from the head office
	ZoneRedFlag GeographicZone = "red_flag"
)

// SupplyChainRisk describes material lead times
type SupplyChainRisk string

const (
	SupplyStandard SupplyChainRisk = "standard"
	SupplyExtended SupplyChainRisk = "extended"
	// SupplyImport means a lead time of six weeks or more
	SupplyImport SupplyChainRisk = "import"
)

// DurationType is the expected job duration
type DurationType string

const (
	DurationHalfDay  DurationType = "half_day"
	DurationFullDay  DurationType = "full_day"
	DurationMultiDay DurationType = "multi_day"
)

// PricingVersionExternal marks tiers supplied by the quote generator rather
// than derived from the line items
const PricingVersionExternal = "external"

// LineItem is one priced row of a submission. Total is always Quantity * UnitPrice.
type LineItem struct {
	ID         string       `json:"id"`
	Type       LineItemType `json:"type"`
	MaterialID *int64       `json:"material_id,omitempty"`
	Name       string       `json:"name"`
	Quantity   float64      `json:"quantity"`
	UnitPrice  float64      `json:"unit_price"`
	Total      float64      `json:"total"`
	Order      int          `json:"order"`
}

// PricingTier is one of the Basic, Standard and Premium price points
type PricingTier struct {
	Tier          TierName `json:"tier"`
	TotalPrice    float64  `json:"total_price"`
	MaterialsCost float64  `json:"materials_cost"`
	LaborCost     float64  `json:"labor_cost"`
	Description   string   `json:"description"`
}

// Note is an immutable comment on a submission
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// FieldChange records a before/after pair in an audit entry
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// AuditEntry is one append-only record of a successful operation
type AuditEntry struct {
	Action    AuditAction            `json:"action"`
	User      string                 `json:"user"`
	Timestamp time.Time              `json:"timestamp"`
	Changes   map[string]FieldChange `json:"changes,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
}

// Submission is the aggregate root of the quote workflow. It is only
// mutated through the workflow package.
type Submission struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EstimateID *string          `gorm:"type:varchar(100)"`
	Status     SubmissionStatus `gorm:"type:varchar(32);not null;index"`
	Category   string           `gorm:"type:varchar(100);not null"`
	Sqft       *float64

	ClientName  string `gorm:"type:varchar(255)"`
	ClientEmail string `gorm:"type:varchar(255)"`
	ClientPhone string `gorm:"type:varchar(50)"`

	// Job context consumed by the red-flag checks
	ComplexityTier  *int
	QuotedTotal     *float64
	GeographicZone  GeographicZone  `gorm:"type:varchar(32)"`
	SupplyChainRisk SupplyChainRisk `gorm:"type:varchar(32)"`
	DurationType    DurationType    `gorm:"type:varchar(32)"`

	LineItems          []LineItem    `gorm:"serializer:json;type:jsonb"`
	PricingTiers       []PricingTier `gorm:"serializer:json;type:jsonb"`
	SelectedTier       TierName      `gorm:"type:varchar(16);not null"`
	TotalPrice         float64       `gorm:"not null;default:0"`
	TotalMaterialsCost float64       `gorm:"not null;default:0"`
	TotalLaborCost     float64       `gorm:"not null;default:0"`
	PricingVersion     string        `gorm:"type:varchar(32)"`

	Notes    []Note       `gorm:"serializer:json;type:jsonb"`
	AuditLog []AuditEntry `gorm:"serializer:json;type:jsonb"`

	CreatedBy   string `gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	FinalizedAt *time.Time
	ApprovedAt  *time.Time
	ApprovedBy  string `gorm:"type:varchar(255)"`

	ParentSubmissionID *uuid.UUID `gorm:"type:uuid;index"`
	UpsellType         string     `gorm:"type:varchar(100)"`

	SendStatus      SendStatus `gorm:"type:varchar(16);index"`
	RecipientEmail  string     `gorm:"type:varchar(255)"`
	EmailSubject    string     `gorm:"type:varchar(500)"`
	EmailBody       string     `gorm:"type:text"`
	ScheduledSendAt *time.Time `gorm:"index"`
	SentAt          *time.Time
	SendError       string `gorm:"type:text"`

	// Children is filled by the repository on reads
	Children []SubmissionSummary `gorm:"-"`
}

// TableName overrides the table name
func (Submission) TableName() string {
	return "submissions"
}

// Tier returns the pricing tier with the given name
func (s *Submission) Tier(name TierName) (PricingTier, bool) {
	for _, t := range s.PricingTiers {
		if t.Tier == name {
			return t, true
		}
	}
	return PricingTier{}, false
}

// LastAuditAt returns the timestamp of the latest audit entry
func (s *Submission) LastAuditAt() time.Time {
	if len(s.AuditLog) == 0 {
		return time.Time{}
	}
	return s.AuditLog[len(s.AuditLog)-1].Timestamp
}

// SubmissionSummary is the list view of a submission
type SubmissionSummary struct {
	ID                 uuid.UUID
	Status             SubmissionStatus
	Category           string
	ClientName         string
	TotalPrice         float64
	CreatedBy          string
	CreatedAt          time.Time
	UpsellType         string
	ParentSubmissionID *uuid.UUID
	HasChildren        bool
}

// RedFlagDismissal records that a user dismissed flag categories before sending
type RedFlagDismissal struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Categories   []string  `gorm:"serializer:json;type:jsonb;not null"`
	DismissedBy  string    `gorm:"type:varchar(255);not null"`
	DismissedAt  time.Time `gorm:"not null"`
}

// TableName overrides the table name
func (RedFlagDismissal) TableName() string {
	return "red_flag_dismissals"
}

// Summary returns the list view of the submission
func (s *Submission) Summary() SubmissionSummary {
	return SubmissionSummary{
		ID:                 s.ID,
		Status:             s.Status,
		Category:           s.Category,
		ClientName:         s.ClientName,
		TotalPrice:         s.TotalPrice,
		CreatedBy:          s.CreatedBy,
		CreatedAt:          s.CreatedAt,
		UpsellType:         s.UpsellType,
		ParentSubmissionID: s.ParentSubmissionID,
		HasChildren:        len(s.Children) > 0,
	}
}
