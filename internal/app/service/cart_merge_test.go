package service

import (
	"testing"

	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestMergeLineItems_EmptyDeltas(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 2},
		{VariantID: 2, Quantity: 1},
	}

	result := MergeLineItems(existing, nil)

	assert.Equal(t, existing, result)
}

func TestMergeLineItems_AppendNewVariant(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 2},
	}
	deltas := []model.LineItem{
		{VariantID: 2, Quantity: 3},
	}

	result := MergeLineItems(existing, deltas)

	assert.Len(t, result, 2)
	assert.Equal(t, uint(1), result[0].VariantID)
	assert.Equal(t, 2, result[0].Quantity)
	assert.Equal(t, uint(2), result[1].VariantID)
	assert.Equal(t, 3, result[1].Quantity)
}

func TestMergeLineItems_AccumulateSameVariant(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 2},
	}
	deltas := []model.LineItem{
		{VariantID: 1, Quantity: 3},
	}

	result := MergeLineItems(existing, deltas)

	assert.Len(t, result, 1)
	assert.Equal(t, 5, result[0].Quantity)
}

func TestMergeLineItems_NegativeDeltaDecrements(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 5},
	}
	deltas := []model.LineItem{
		{VariantID: 1, Quantity: -2},
	}

	result := MergeLineItems(existing, deltas)

	assert.Len(t, result, 1)
	assert.Equal(t, 3, result[0].Quantity)
}

func TestMergeLineItems_ClampsToZeroAndRetains(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 2},
	}
	deltas := []model.LineItem{
		{VariantID: 1, Quantity: -10},
	}

	result := MergeLineItems(existing, deltas)

	// The entry stays in the cart at quantity zero, it is not removed
	assert.Len(t, result, 1)
	assert.Equal(t, 0, result[0].Quantity)
}

func TestMergeLineItems_ClampsAppendedNegativeDelta(t *testing.T) {
	deltas := []model.LineItem{
		{VariantID: 7, Quantity: -3},
	}

	result := MergeLineItems(nil, deltas)

	assert.Len(t, result, 1)
	assert.Equal(t, 0, result[0].Quantity)
}

func TestMergeLineItems_PersonalizationDistinguishesEntries(t *testing.T) {
	existing := []model.LineItem{
		{
			VariantID: 1,
			Quantity:  1,
			PersonalizedValues: []model.PersonalizedValue{
				{ID: 10, Value: "A"},
			},
		},
	}
	deltas := []model.LineItem{
		{
			VariantID: 1,
			Quantity:  1,
			PersonalizedValues: []model.PersonalizedValue{
				{ID: 10, Value: "B"},
			},
		},
	}

	result := MergeLineItems(existing, deltas)

	// Same variant, different engraving: two distinct entries
	assert.Len(t, result, 2)
	assert.Equal(t, 1, result[0].Quantity)
	assert.Equal(t, 1, result[1].Quantity)
}

func TestMergeLineItems_MatchingPersonalizationAccumulates(t *testing.T) {
	pv := []model.PersonalizedValue{
		{ID: 10, Value: "Team Summit"},
	}
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 1, PersonalizedValues: pv},
	}
	deltas := []model.LineItem{
		{VariantID: 1, Quantity: 2, PersonalizedValues: pv},
	}

	result := MergeLineItems(existing, deltas)

	assert.Len(t, result, 1)
	assert.Equal(t, 3, result[0].Quantity)
}

func TestMergeLineItems_PersonalizedVsPlainAreDistinct(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 1},
	}
	deltas := []model.LineItem{
		{
			VariantID: 1,
			Quantity:  1,
			PersonalizedValues: []model.PersonalizedValue{
				{ID: 10, Value: "A"},
			},
		},
	}

	result := MergeLineItems(existing, deltas)

	assert.Len(t, result, 2)
}

func TestMergeLineItems_PreservesOrder(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 3, Quantity: 1},
		{VariantID: 1, Quantity: 1},
	}
	deltas := []model.LineItem{
		{VariantID: 5, Quantity: 1},
		{VariantID: 1, Quantity: 1},
		{VariantID: 4, Quantity: 1},
	}

	result := MergeLineItems(existing, deltas)

	ids := make([]uint, len(result))
	for i, item := range result {
		ids[i] = item.VariantID
	}
	assert.Equal(t, []uint{3, 1, 5, 4}, ids)
	assert.Equal(t, 2, result[1].Quantity)
}

func TestMergeLineItems_DoesNotMutateInputs(t *testing.T) {
	existing := []model.LineItem{
		{VariantID: 1, Quantity: 2},
	}
	deltas := []model.LineItem{
		{VariantID: 1, Quantity: 3},
	}

	_ = MergeLineItems(existing, deltas)

	assert.Equal(t, 2, existing[0].Quantity)
	assert.Equal(t, 3, deltas[0].Quantity)
}

func TestPersonalizedValuesEqual(t *testing.T) {
	a := []model.PersonalizedValue{{ID: 1, Value: "x"}}
	b := []model.PersonalizedValue{{ID: 1, Value: "x"}}
	c := []model.PersonalizedValue{{ID: 1, Value: "y"}}

	assert.True(t, personalizedValuesEqual(nil, nil))
	assert.True(t, personalizedValuesEqual(a, b))
	assert.False(t, personalizedValuesEqual(a, c))
	assert.False(t, personalizedValuesEqual(a, nil))
	assert.False(t, personalizedValuesEqual(nil, b))
}

func TestPersonalizedValuesEqual_SubsetMatchesSuperset(t *testing.T) {
	// Documents the one-sided comparison: every element of the first set
	// having a match in the second is enough, extra elements in the
	// second are not checked. See DESIGN.md before tightening this.
	subset := []model.PersonalizedValue{{ID: 1, Value: "x"}}
	superset := []model.PersonalizedValue{{ID: 1, Value: "x"}, {ID: 2, Value: "y"}}

	assert.True(t, personalizedValuesEqual(subset, superset))
	assert.False(t, personalizedValuesEqual(superset, subset))
}
