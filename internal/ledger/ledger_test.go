package ledger_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toiture-lv/quote-api/internal/domain"
	"github.com/toiture-lv/quote-api/internal/ledger"
)

func sequentialIDs() ledger.Option {
	n := 0
	return ledger.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})
}

func ptr[T any](v T) *T { return &v }

func assertDenseOrder(t *testing.T, items []domain.LineItem) {
	t.Helper()
	for i, item := range items {
		assert.Equal(t, i, item.Order)
	}
}

func freshSum(items []domain.LineItem) (materials, labor float64) {
	for _, item := range items {
		total := item.Quantity * item.UnitPrice
		if item.Type == domain.LineItemMaterial {
			materials += total
		} else {
			labor += total
		}
	}
	return materials, labor
}

func TestLedger_ExampleScenario(t *testing.T) {
	l := ledger.New(sequentialIDs())

	_, err := l.Add(domain.LineItemMaterial, ledger.Seed{Name: "Shingles", Quantity: 2, UnitPrice: 50})
	require.NoError(t, err)
	_, err = l.Add(domain.LineItemLabor, ledger.Seed{Name: "Install", Quantity: 3, UnitPrice: 75})
	require.NoError(t, err)

	items := l.Items()
	assert.Equal(t, 100.0, items[0].Total)
	assert.Equal(t, 225.0, items[1].Total)
	assert.Equal(t, ledger.Totals{Materials: 100, Labor: 225, Grand: 325}, l.Totals())

	require.NoError(t, l.Remove(0))
	items = l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Order)
	assert.Equal(t, "item-2", items[0].ID)
	assert.Equal(t, ledger.Totals{Materials: 0, Labor: 225, Grand: 225}, l.Totals())
}

func TestLedger_Update(t *testing.T) {
	l := ledger.New(sequentialIDs())
	_, err := l.Add(domain.LineItemMaterial, ledger.Seed{Name: "Membrane", Quantity: 4, UnitPrice: 10})
	require.NoError(t, err)

	t.Run("quantity recomputes total from existing price", func(t *testing.T) {
		require.NoError(t, l.Update(0, ledger.Patch{Quantity: ptr(5.0)}))
		assert.Equal(t, 50.0, l.Items()[0].Total)
	})

	t.Run("unit price recomputes total from existing quantity", func(t *testing.T) {
		require.NoError(t, l.Update(0, ledger.Patch{UnitPrice: ptr(12.0)}))
		assert.Equal(t, 60.0, l.Items()[0].Total)
	})

	t.Run("rename leaves total", func(t *testing.T) {
		require.NoError(t, l.Update(0, ledger.Patch{Name: ptr("Underlayment"), MaterialID: ptr(int64(42))}))
		item := l.Items()[0]
		assert.Equal(t, "Underlayment", item.Name)
		assert.Equal(t, int64(42), *item.MaterialID)
		assert.Equal(t, 60.0, item.Total)
	})

	t.Run("invalid values are rejected without change", func(t *testing.T) {
		assert.ErrorIs(t, l.Update(0, ledger.Patch{Quantity: ptr(0.0)}), domain.ErrValidation)
		assert.ErrorIs(t, l.Update(0, ledger.Patch{UnitPrice: ptr(-1.0)}), domain.ErrValidation)
		assert.ErrorIs(t, l.Update(0, ledger.Patch{Name: ptr("  ")}), domain.ErrValidation)
		assert.ErrorIs(t, l.Update(3, ledger.Patch{}), domain.ErrValidation)
		assert.Equal(t, 60.0, l.Items()[0].Total)
	})
}

func TestLedger_AddRejectsInvalidItems(t *testing.T) {
	l := ledger.New()

	tests := []struct {
		name     string
		itemType domain.LineItemType
		seed     ledger.Seed
	}{
		{"unknown type", "equipment", ledger.Seed{Name: "Crane", Quantity: 1}},
		{"zero quantity", domain.LineItemLabor, ledger.Seed{Name: "Crew", Quantity: 0}},
		{"negative price", domain.LineItemMaterial, ledger.Seed{Name: "Nails", Quantity: 1, UnitPrice: -2}},
		{"no name", domain.LineItemMaterial, ledger.Seed{Quantity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Add(tt.itemType, tt.seed)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, 0, l.Len())
		})
	}
}

func TestLedger_Move(t *testing.T) {
	l := ledger.New(sequentialIDs())
	for i := 0; i < 4; i++ {
		_, err := l.Add(domain.LineItemMaterial, ledger.Seed{Name: fmt.Sprintf("m%d", i), Quantity: 1, UnitPrice: 1})
		require.NoError(t, err)
	}

	require.NoError(t, l.Move(0, 3))
	ids := []string{}
	for _, item := range l.Items() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"item-2", "item-3", "item-4", "item-1"}, ids)
	assertDenseOrder(t, l.Items())

	require.NoError(t, l.Move(2, 0))
	assert.Equal(t, "item-4", l.Items()[0].ID)
	assertDenseOrder(t, l.Items())

	assert.ErrorIs(t, l.Move(0, 9), domain.ErrValidation)
}

func TestLedger_RandomMutationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := ledger.New()

	for step := 0; step < 500; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || l.Len() == 0:
			itemType := domain.LineItemMaterial
			if rng.Intn(2) == 0 {
				itemType = domain.LineItemLabor
			}
			_, err := l.Add(itemType, ledger.Seed{
				Name:      "item",
				Quantity:  float64(rng.Intn(20) + 1),
				UnitPrice: float64(rng.Intn(10000)) / 100,
			})
			require.NoError(t, err)
		case op == 1:
			require.NoError(t, l.Remove(rng.Intn(l.Len())))
		case op == 2:
			require.NoError(t, l.Move(rng.Intn(l.Len()), rng.Intn(l.Len())))
		default:
			require.NoError(t, l.Update(rng.Intn(l.Len()), ledger.Patch{Quantity: ptr(float64(rng.Intn(9) + 1))}))
		}

		items := l.Items()
		assertDenseOrder(t, items)

		materials, labor := freshSum(items)
		totals := l.Totals()
		assert.InDelta(t, materials, totals.Materials, 0.01)
		assert.InDelta(t, labor, totals.Labor, 0.01)
		assert.InDelta(t, materials+labor, totals.Grand, 0.01)
		assert.Equal(t, ledger.Aggregate(items), totals)
	}
}

func TestFromItems(t *testing.T) {
	items := []domain.LineItem{
		{ID: "b", Type: domain.LineItemLabor, Name: "Crew", Quantity: 2, UnitPrice: 80, Total: 1, Order: 5},
		{Type: domain.LineItemMaterial, Name: " Flashing ", Quantity: 3, UnitPrice: 10, Order: 2},
	}

	l, err := ledger.FromItems(items, sequentialIDs())
	require.NoError(t, err)

	out := l.Items()
	require.Len(t, out, 2)
	assert.Equal(t, "item-1", out[0].ID)
	assert.Equal(t, "Flashing", out[0].Name)
	assert.Equal(t, 30.0, out[0].Total)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, 160.0, out[1].Total)
	assertDenseOrder(t, out)

	// input untouched
	assert.Equal(t, 5, items[0].Order)

	t.Run("duplicate ids", func(t *testing.T) {
		_, err := ledger.FromItems([]domain.LineItem{
			{ID: "x", Type: domain.LineItemLabor, Name: "a", Quantity: 1},
			{ID: "x", Type: domain.LineItemLabor, Name: "b", Quantity: 1},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		_, err := ledger.FromItems([]domain.LineItem{{ID: "x", Type: domain.LineItemLabor, Name: "a", Quantity: -1}})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
