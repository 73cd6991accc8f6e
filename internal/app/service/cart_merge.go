package service

import (
	"reflect"

	"github.com/rcalhoun/summit-backend/internal/app/model"
)

// MergeLineItems combines a stored cart's line items with a set of
// incoming deltas. A delta matching an existing entry (same variant,
// equivalent personalization) adds its quantity in place; an unmatched
// delta is appended. Existing entries keep their relative order and
// appended deltas follow in delta order. Every resulting quantity is
// clamped to a minimum of zero; zero-quantity entries are retained, not
// removed.
func MergeLineItems(existing, deltas []model.LineItem) []model.LineItem {
	result := make([]model.LineItem, len(existing))
	copy(result, existing)

	for _, delta := range deltas {
		matched := false
		for i := range result {
			if result[i].VariantID == delta.VariantID &&
				personalizedValuesEqual(result[i].PersonalizedValues, delta.PersonalizedValues) {
				result[i].Quantity += delta.Quantity
				matched = true
				break
			}
		}
		if !matched {
			result = append(result, delta)
		}
	}

	for i := range result {
		if result[i].Quantity < 0 {
			result[i].Quantity = 0
		}
	}

	return result
}

// personalizedValuesEqual reports whether two personalization sets are
// equivalent: both absent is equivalent, one absent and one present never
// is, and otherwise every element of the first set must have a deep-equal
// match in the second. List lengths are not compared, so a subset whose
// elements all match compares equal to a superset. Kept that way on
// purpose; see the open questions in DESIGN.md before changing it.
func personalizedValuesEqual(a, b []model.PersonalizedValue) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, av := range a {
		found := false
		for _, bv := range b {
			if reflect.DeepEqual(av, bv) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
