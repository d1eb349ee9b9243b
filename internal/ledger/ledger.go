// Package ledger maintains the ordered line items of one submission.
//
// Every mutation recomputes item totals and reassigns order as a dense
// 0-based sequence. The ledger does not know about submission status;
// the workflow package decides when mutations are allowed.
package ledger

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/pricing"
)

// Totals is the aggregate of a line item list
type Totals struct {
	Materials float64 `json:"total_materials_cost"`
	Labor     float64 `json:"total_labor_cost"`
	Grand     float64 `json:"grand_total"`
}

// Seed holds the fields of a new line item
type Seed struct {
	ID         string
	MaterialID *int64
	Name       string
	Quantity   float64
	UnitPrice  float64
}

// Patch updates selected fields of a line item. Nil fields are left alone.
type Patch struct {
	Name       *string
	MaterialID *int64
	Quantity   *float64
	UnitPrice  *float64
}

// Ledger owns a copy of a submission's line items
type Ledger struct {
	items []domain.LineItem
	newID func() string
}

// Option configures a Ledger
type Option func(*Ledger)

// WithIDGenerator replaces the uuid generator used for new item ids
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) { l.newID = fn }
}

// New returns an empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{newID: func() string { return uuid.NewString() }}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromItems validates and normalizes an existing list: missing ids are
// generated, totals recomputed, and order rewritten densely following the
// incoming order values (ties keep their list position).
func FromItems(items []domain.LineItem, opts ...Option) (*Ledger, error) {
	l := New(opts...)

	sorted := make([]domain.LineItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	seen := make(map[string]bool, len(sorted))
	for i := range sorted {
		item := &sorted[i]
		if item.ID == "" {
			item.ID = l.newID()
		}
		if seen[item.ID] {
			return nil, domain.Validationf("line item id %q is not unique", item.ID)
		}
		seen[item.ID] = true
		if err := validateItem(item.Type, item.Name, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
		item.Name = strings.TrimSpace(item.Name)
		item.Total = lineTotal(item.Quantity, item.UnitPrice)
	}

	l.items = sorted
	l.renumber()
	return l, nil
}

// Add appends an item at the end of the list
func (l *Ledger) Add(itemType domain.LineItemType, seed Seed) (domain.LineItem, error) {
	if err := validateItem(itemType, seed.Name, seed.Quantity, seed.UnitPrice); err != nil {
		return domain.LineItem{}, err
	}
	id := seed.ID
	if id == "" {
		id = l.newID()
	}
	for _, existing := range l.items {
		if existing.ID == id {
			return domain.LineItem{}, domain.Validationf("line item id %q is not unique", id)
		}
	}

	item := domain.LineItem{
		ID:         id,
		Type:       itemType,
		MaterialID: seed.MaterialID,
		Name:       strings.TrimSpace(seed.Name),
		Quantity:   seed.Quantity,
		UnitPrice:  seed.UnitPrice,
		Total:      lineTotal(seed.Quantity, seed.UnitPrice),
		Order:      len(l.items),
	}
	l.items = append(l.items, item)
	return item, nil
}

// Update applies a patch to the item at index. Total is only recomputed when
// quantity or unit price changes.
func (l *Ledger) Update(index int, patch Patch) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	item := l.items[index]

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return domain.Validationf("line item name is required")
		}
		item.Name = name
	}
	if patch.MaterialID != nil {
		id := *patch.MaterialID
		item.MaterialID = &id
	}

	priced := false
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return domain.Validationf("quantity must be greater than zero")
		}
		item.Quantity = *patch.Quantity
		priced = true
	}
	if patch.UnitPrice != nil {
		if *patch.UnitPrice < 0 {
			return domain.Validationf("unit price must not be negative")
		}
		item.UnitPrice = *patch.UnitPrice
		priced = true
	}
	if priced {
		item.Total = lineTotal(item.Quantity, item.UnitPrice)
	}

	l.items[index] = item
	return nil
}

// Remove deletes the item at index and renumbers the rest
func (l *Ledger) Remove(index int) error {
	if err := l.checkIndex(index); err != nil {
		return err
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	l.renumber()
	return nil
}

// Move relocates one item and renumbers the full list
func (l *Ledger) Move(from, to int) error {
	if err := l.checkIndex(from); err != nil {
		return err
	}
	if err := l.checkIndex(to); err != nil {
		return err
	}
	item := l.items[from]
	l.items = append(l.items[:from], l.items[from+1:]...)
	l.items = append(l.items[:to], append([]domain.LineItem{item}, l.items[to:]...)...)
	l.renumber()
	return nil
}

// Items returns a copy of the items in order
func (l *Ledger) Items() []domain.LineItem {
	out := make([]domain.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items
func (l *Ledger) Len() int {
	return len(l.items)
}

// Totals recomputes the aggregate from the current items
func (l *Ledger) Totals() Totals {
	return Aggregate(l.items)
}

// Aggregate sums item totals by type
func Aggregate(items []domain.LineItem) Totals {
	var t Totals
	for _, item := range items {
		switch item.Type {
		case domain.LineItemMaterial:
			t.Materials += item.Total
		case domain.LineItemLabor:
			t.Labor += item.Total
		}
	}
	t.Materials = pricing.Round(t.Materials)
	t.Labor = pricing.Round(t.Labor)
	t.Grand = pricing.Round(t.Materials + t.Labor)
	return t
}

func (l *Ledger) renumber() {
	for i := range l.items {
		l.items[i].Order = i
	}
}

func (l *Ledger) checkIndex(index int) error {
	if index < 0 || index >= len(l.items) {
		return domain.Validationf("line item index %d out of range", index)
	}
	return nil
}

func validateItem(itemType domain.LineItemType, name string, quantity, unitPrice float64) error {
	if !itemType.IsValid() {
		return domain.Validationf("line item type must be material or labor")
	}
	if strings.TrimSpace(name) == "" {
		return domain.Validationf("line item name is required")
	}
	if quantity <= 0 {
		return domain.Validationf("quantity must be greater than zero")
	}
	if unitPrice < 0 {
		return domain.Validationf("unit price must not be negative")
	}
	return nil
}

func lineTotal(quantity, unitPrice float64) float64 {
	return pricing.Round(quantity * unitPrice)
}
