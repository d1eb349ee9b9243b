package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/mapper"
	"github.com/toiture-lv/quote-api/internal/redflag"
)

func TestToSubmissionDTO(t *testing.T) {
	now := time.Now()
	parentID := uuid.New()
	sub := &domain.Submission{
		ID:                 uuid.New(),
		Status:             domain.StatusDraft,
		Category:           "Bardeaux",
		ClientName:         "Tremblay",
		SelectedTier:       domain.TierStandard,
		TotalPrice:         325,
		PricingVersion:     "2024-01",
		CreatedBy:          "marie",
		CreatedAt:          now,
		UpdatedAt:          now,
		ParentSubmissionID: &parentID,
		UpsellType:         "gutters",
		Children: []domain.SubmissionSummary{
			{ID: uuid.New(), Status: domain.StatusDraft, HasChildren: true},
		},
	}

	dto := mapper.ToSubmissionDTO(sub)

	assert.Equal(t, sub.ID, dto.ID)
	assert.Equal(t, sub.Category, dto.Category)
	assert.Equal(t, sub.TotalPrice, dto.TotalPrice)
	assert.Equal(t, &parentID, dto.ParentSubmissionID)
	assert.Equal(t, "gutters", dto.UpsellType)
	assert.NotNil(t, dto.LineItems)
	assert.NotNil(t, dto.Notes)
	assert.NotNil(t, dto.AuditLog)
	require.Len(t, dto.Children, 1)
	assert.True(t, dto.Children[0].HasChildren)
}

func TestToLineItems(t *testing.T) {
	order := 5
	items := mapper.ToLineItems([]domain.LineItemRequest{
		{Type: domain.LineItemMaterial, Name: "a", Quantity: 1, UnitPrice: 2},
		{Type: domain.LineItemLabor, Name: "b", Quantity: 3, UnitPrice: 4, Order: &order},
	})

	require.Len(t, items, 2)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, 5, items[1].Order)
	assert.Zero(t, items[1].Total)
}

func TestToChanges(t *testing.T) {
	name := "Gagnon"
	ch := mapper.ToChanges(&domain.UpdateSubmissionRequest{ClientName: &name})
	assert.Nil(t, ch.LineItems)
	assert.Equal(t, &name, ch.ClientName)

	ch = mapper.ToChanges(&domain.UpdateSubmissionRequest{LineItems: &[]domain.LineItemRequest{}})
	require.NotNil(t, ch.LineItems)
	assert.Empty(t, *ch.LineItems)
}

func TestToRedFlagDTO(t *testing.T) {
	flag := redflag.Flag{Category: redflag.CategoryGeographic, Severity: redflag.SeverityWarning, Dismissible: true}

	dto := mapper.ToRedFlagDTO(flag, true, redflag.LangEN)
	assert.Equal(t, "geographic", dto.Category)
	assert.Equal(t, "warning", dto.Severity)
	assert.True(t, dto.Dismissed)
	assert.Len(t, dto.Messages, 1)
	assert.Contains(t, dto.Messages["en"], "60 km")

	both := mapper.ToRedFlagDTO(flag, false)
	assert.Len(t, both.Messages, 2)
}
