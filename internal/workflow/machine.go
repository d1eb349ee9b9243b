// Package workflow is the submission state machine.
//
//	draft            --finalize-->        pending_approval
//	pending_approval --approve (admin)--> approved
//	pending_approval --reject (admin)-->  rejected
//	pending_approval --return_to_draft (non-admin)--> draft
//	rejected         --return_to_draft--> draft
//
// Every operation works on a copy of the submission and returns the new
// state only on success, with exactly one audit entry appended. A failed
// operation returns the input untouched.
package workflow

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/ledger"
	"github.com/toiture-lv/quote-api/internal/pricing"
)

// MaxNoteLength is the longest note text accepted, after trimming
const MaxNoteLength = 2000

// Machine applies workflow operations. It holds no submission state.
type Machine struct {
	now          func() time.Time
	newID        func() uuid.UUID
	markups      pricing.Markups
	mailDefaults EmailDefaults
}

// Option configures a Machine
type Option func(*Machine)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDGenerator overrides the id source for submissions and notes
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(m *Machine) { m.newID = newID }
}

// WithEmailDefaults overrides the subject and body used when a send leaves them blank
func WithEmailDefaults(d EmailDefaults) Option {
	return func(m *Machine) {
		if d.Subject != "" {
			m.mailDefaults.Subject = d.Subject
		}
		if d.Body != "" {
			m.mailDefaults.Body = d.Body
		}
	}
}

// NewMachine creates a state machine that derives tiers with the given markups
func NewMachine(markups pricing.Markups, opts ...Option) *Machine {
	m := &Machine{
		now:          time.Now,
		newID:        uuid.New,
		markups:      markups,
		mailDefaults: DefaultEmail,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateInput is what the quote generator hands over for a new submission
type CreateInput struct {
	EstimateID      *string
	Category        string
	Sqft            *float64
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ComplexityTier  *int
	QuotedTotal     *float64
	GeographicZone  domain.GeographicZone
	SupplyChainRisk domain.SupplyChainRisk
	DurationType    domain.DurationType
	LineItems       []domain.LineItem
	// PricingTiers may be empty, in which case tiers are derived from the line items
	PricingTiers []domain.PricingTier
	SelectedTier domain.TierName
}

// Create builds a new draft submission
func (m *Machine) Create(actor domain.Actor, in CreateInput) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, domain.Validationf("category is required")
	}
	if in.Sqft != nil && *in.Sqft < 0 {
		return nil, domain.Validationf("sqft must not be negative")
	}

	items, err := ledger.FromItems(in.LineItems, m.itemIDs())
	if err != nil {
		return nil, err
	}
	totals := items.Totals()

	tiers := in.PricingTiers
	version := m.markups.Version
	if len(tiers) == 0 {
		if tiers, err = pricing.DeriveTiers(totals.Materials, totals.Labor, m.markups); err != nil {
			return nil, err
		}
	} else {
		if err := pricing.ValidateTiers(tiers); err != nil {
			return nil, err
		}
		tiers = pricing.SortTiers(tiers)
		version = domain.PricingVersionExternal
	}

	selected := in.SelectedTier
	if selected == "" {
		selected = domain.TierStandard
	}
	if !selected.IsValid() {
		return nil, domain.Validationf("unknown selected tier %q", selected)
	}

	now := m.now().UTC()
	sub := &domain.Submission{
		ID:                 m.newID(),
		EstimateID:         in.EstimateID,
		Status:             domain.StatusDraft,
		Category:           category,
		Sqft:               in.Sqft,
		ClientName:         strings.TrimSpace(in.ClientName),
		ClientEmail:        strings.TrimSpace(in.ClientEmail),
		ClientPhone:        strings.TrimSpace(in.ClientPhone),
		ComplexityTier:     in.ComplexityTier,
		QuotedTotal:        in.QuotedTotal,
		GeographicZone:     in.GeographicZone,
		SupplyChainRisk:    in.SupplyChainRisk,
		DurationType:       in.DurationType,
		LineItems:          items.Items(),
		PricingTiers:       tiers,
		SelectedTier:       selected,
		TotalMaterialsCost: totals.Materials,
		TotalLaborCost:     totals.Labor,
		PricingVersion:     version,
		Notes:              []domain.Note{},
		AuditLog:           []domain.AuditEntry{},
		CreatedBy:          actor.User,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	sub.TotalPrice = selectedPrice(sub)
	m.audit(sub, actor, domain.AuditCreated, nil, "")
	return sub, nil
}

// Changes is a partial draft update. Nil fields are left unchanged.
type Changes struct {
	LineItems    *[]domain.LineItem
	SelectedTier *domain.TierName
	ClientName   *string
}

// IsEmpty reports whether no field is set
func (c Changes) IsEmpty() bool {
	return c.LineItems == nil && c.SelectedTier == nil && c.ClientName == nil
}

// Proposal is a validated, normalized draft that has not been committed
type Proposal struct {
	Submission *domain.Submission
	Changes    map[string]domain.FieldChange
	Totals     ledger.Totals
}

// Propose checks an update against the submission and returns the
// normalized result without recording it. Line item orders are made dense,
// totals recomputed and tiers re-derived when items change.
func (m *Machine) Propose(sub *domain.Submission, actor domain.Actor, ch Changes) (*Proposal, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if sub.Status != domain.StatusDraft {
		return nil, domain.Guardf("submission can only be edited in draft, status is %s", sub.Status)
	}
	if ch.IsEmpty() {
		return nil, domain.Validationf("nothing to update")
	}

	next := clone(sub)
	changes := make(map[string]domain.FieldChange)

	if ch.LineItems != nil {
		items, err := ledger.FromItems(*ch.LineItems, m.itemIDs())
		if err != nil {
			return nil, err
		}
		totals := items.Totals()
		tiers, err := pricing.DeriveTiers(totals.Materials, totals.Labor, m.markups)
		if err != nil {
			return nil, err
		}
		changes["line_items"] = domain.FieldChange{
			Old: itemCount(len(sub.LineItems)),
			New: itemCount(items.Len()),
		}
		next.LineItems = items.Items()
		next.TotalMaterialsCost = totals.Materials
		next.TotalLaborCost = totals.Labor
		next.PricingTiers = tiers
		next.PricingVersion = m.markups.Version
	}

	if ch.SelectedTier != nil {
		if !ch.SelectedTier.IsValid() {
			return nil, domain.Validationf("unknown selected tier %q", *ch.SelectedTier)
		}
		if *ch.SelectedTier != sub.SelectedTier {
			changes["selected_tier"] = domain.FieldChange{Old: string(sub.SelectedTier), New: string(*ch.SelectedTier)}
		}
		next.SelectedTier = *ch.SelectedTier
	}

	if ch.ClientName != nil {
		name := strings.TrimSpace(*ch.ClientName)
		if name != sub.ClientName {
			changes["client_name"] = domain.FieldChange{Old: sub.ClientName, New: name}
		}
		next.ClientName = name
	}

	next.TotalPrice = selectedPrice(next)

	return &Proposal{
		Submission: next,
		Changes:    changes,
		Totals:     ledger.Aggregate(next.LineItems),
	}, nil
}

// Commit records a proposal as an edit
func (m *Machine) Commit(p *Proposal, actor domain.Actor) *domain.Submission {
	next := clone(p.Submission)
	m.audit(next, actor, domain.AuditEdited, p.Changes, "")
	return next
}

// Update proposes and commits in one step
func (m *Machine) Update(sub *domain.Submission, actor domain.Actor, ch Changes) (*domain.Submission, error) {
	p, err := m.Propose(sub, actor, ch)
	if err != nil {
		return nil, err
	}
	return m.Commit(p, actor), nil
}

// Finalize submits a draft for approval. It needs at least one line item.
func (m *Machine) Finalize(sub *domain.Submission, actor domain.Actor) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if sub.Status != domain.StatusDraft {
		return nil, domain.Guardf("only draft submissions can be finalized, status is %s", sub.Status)
	}
	if len(sub.LineItems) == 0 {
		return nil, domain.Validationf("at least one line item is required to finalize")
	}

	next := clone(sub)
	next.Status = domain.StatusPendingApproval
	at := m.stamp(next)
	next.FinalizedAt = &at
	m.audit(next, actor, domain.AuditFinalized, statusChange(sub.Status, next.Status), "")
	return next, nil
}

// Approve accepts a pending submission. Admin only.
func (m *Machine) Approve(sub *domain.Submission, actor domain.Actor) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("approve requires the admin role")
	}
	if sub.Status != domain.StatusPendingApproval {
		return nil, domain.Guardf("only pending submissions can be approved, status is %s", sub.Status)
	}

	next := clone(sub)
	next.Status = domain.StatusApproved
	at := m.stamp(next)
	next.ApprovedAt = &at
	next.ApprovedBy = actor.User
	m.audit(next, actor, domain.AuditApproved, statusChange(sub.Status, next.Status), "")
	return next, nil
}

// Reject declines a pending submission with an optional reason. Admin only.
func (m *Machine) Reject(sub *domain.Submission, actor domain.Actor, reason string) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("reject requires the admin role")
	}
	if sub.Status != domain.StatusPendingApproval {
		return nil, domain.Guardf("only pending submissions can be rejected, status is %s", sub.Status)
	}

	next := clone(sub)
	next.Status = domain.StatusRejected
	m.audit(next, actor, domain.AuditRejected, statusChange(sub.Status, next.Status), strings.TrimSpace(reason))
	return next, nil
}

// ReturnToDraft reopens a rejected submission, or a pending one when the
// actor is not an admin (an estimator pulling back their own request).
func (m *Machine) ReturnToDraft(sub *domain.Submission, actor domain.Actor) (*domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, err
	}
	switch sub.Status {
	case domain.StatusRejected:
	case domain.StatusPendingApproval:
		if actor.IsAdmin() {
			return nil, domain.Forbiddenf("admins approve or reject pending submissions instead of returning them")
		}
	default:
		return nil, domain.Guardf("cannot return to draft from %s", sub.Status)
	}

	next := clone(sub)
	next.Status = domain.StatusDraft
	next.FinalizedAt = nil
	next.ApprovedAt = nil
	next.ApprovedBy = ""
	m.audit(next, actor, domain.AuditReturnedToDraft, statusChange(sub.Status, next.Status), "")
	return next, nil
}

// AddNote appends a note in any status
func (m *Machine) AddNote(sub *domain.Submission, actor domain.Actor, text string) (*domain.Submission, *domain.Note, error) {
	if err := checkActor(actor); err != nil {
		return nil, nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil, domain.Validationf("note text is required")
	}
	if len([]rune(text)) > MaxNoteLength {
		return nil, nil, domain.Validationf("note text exceeds %d characters", MaxNoteLength)
	}

	next := clone(sub)
	note := domain.Note{
		ID:        m.newID().String(),
		Text:      text,
		CreatedBy: actor.User,
		CreatedAt: m.stamp(next),
	}
	next.Notes = append(next.Notes, note)
	m.audit(next, actor, domain.AuditNoteAdded, map[string]domain.FieldChange{
		"note_id": {Old: nil, New: note.ID},
	}, "")
	return next, &note, nil
}

// CreateUpsell starts an independent child draft linked to the parent. It
// returns the child and the parent with its upsell_created entry.
func (m *Machine) CreateUpsell(parent *domain.Submission, actor domain.Actor, upsellType string) (*domain.Submission, *domain.Submission, error) {
	if err := checkActor(actor); err != nil {
		return nil, nil, err
	}
	upsellType = strings.TrimSpace(upsellType)
	if upsellType == "" {
		return nil, nil, domain.Validationf("upsell type is required")
	}

	now := m.now().UTC()
	parentID := parent.ID
	child := &domain.Submission{
		ID:                 m.newID(),
		Status:             domain.StatusDraft,
		Category:           parent.Category,
		Sqft:               parent.Sqft,
		ClientName:         parent.ClientName,
		ClientEmail:        parent.ClientEmail,
		ClientPhone:        parent.ClientPhone,
		ComplexityTier:     parent.ComplexityTier,
		GeographicZone:     parent.GeographicZone,
		SupplyChainRisk:    parent.SupplyChainRisk,
		DurationType:       parent.DurationType,
		LineItems:          []domain.LineItem{},
		PricingTiers:       pricing.ZeroTiers(m.markups),
		SelectedTier:       domain.TierStandard,
		PricingVersion:     m.markups.Version,
		Notes:              []domain.Note{},
		AuditLog:           []domain.AuditEntry{},
		CreatedBy:          actor.User,
		CreatedAt:          now,
		UpdatedAt:          now,
		ParentSubmissionID: &parentID,
		UpsellType:         upsellType,
	}
	m.audit(child, actor, domain.AuditCreated, map[string]domain.FieldChange{
		"upsell_type": {Old: nil, New: upsellType},
		"parent_id":   {Old: nil, New: parentID.String()},
	}, "")

	nextParent := clone(parent)
	nextParent.Children = append(nextParent.Children, child.Summary())
	m.audit(nextParent, actor, domain.AuditUpsellCreated, map[string]domain.FieldChange{
		"child_id": {Old: nil, New: child.ID.String()},
	}, "")

	return child, nextParent, nil
}

func (m *Machine) itemIDs() ledger.Option {
	return ledger.WithIDGenerator(func() string { return m.newID().String() })
}

// stamp returns the current time, never earlier than the last audit entry
func (m *Machine) stamp(sub *domain.Submission) time.Time {
	now := m.now().UTC()
	if last := sub.LastAuditAt(); now.Before(last) {
		return last
	}
	return now
}

func (m *Machine) audit(sub *domain.Submission, actor domain.Actor, action domain.AuditAction, changes map[string]domain.FieldChange, reason string) {
	if len(changes) == 0 {
		changes = nil
	}
	at := m.stamp(sub)
	sub.AuditLog = append(sub.AuditLog, domain.AuditEntry{
		Action:    action,
		User:      actor.User,
		Timestamp: at,
		Changes:   changes,
		Reason:    reason,
	})
	sub.UpdatedAt = at
}

func checkActor(actor domain.Actor) error {
	if strings.TrimSpace(actor.User) == "" {
		return domain.Validationf("acting user is required")
	}
	return nil
}

func selectedPrice(sub *domain.Submission) float64 {
	if tier, ok := sub.Tier(sub.SelectedTier); ok {
		return tier.TotalPrice
	}
	return 0
}

func statusChange(from, to domain.SubmissionStatus) map[string]domain.FieldChange {
	return map[string]domain.FieldChange{"status": {Old: string(from), New: string(to)}}
}

func itemCount(n int) string {
	return strconv.Itoa(n) + " items"
}

// clone copies the submission and every slice it owns
func clone(sub *domain.Submission) *domain.Submission {
	next := *sub
	next.LineItems = copySlice(sub.LineItems)
	next.PricingTiers = copySlice(sub.PricingTiers)
	next.Notes = copySlice(sub.Notes)
	next.AuditLog = copySlice(sub.AuditLog)
	next.Children = copySlice(sub.Children)
	return &next
}

func copySlice[T any](s []T) []T {
	return append(make([]T, 0, len(s)), s...)
}
