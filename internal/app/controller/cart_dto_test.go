package controller

import (
	"encoding/json"
	"testing"

	"github.com/rcalhoun/summit-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalizedValuePayload_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantID    int
		wantValue string
		wantErr   bool
	}{
		{
			name:      "Numeric id",
			input:     `{"id": 7, "value": "engraved"}`,
			wantID:    7,
			wantValue: "engraved",
		},
		{
			name:      "Numeric string id",
			input:     `{"id": "7", "value": "engraved"}`,
			wantID:    7,
			wantValue: "engraved",
		},
		{
			name:      "Missing id",
			input:     `{"value": "engraved"}`,
			wantID:    0,
			wantValue: "engraved",
		},
		{
			name:    "Non-numeric string id",
			input:   `{"id": "abc", "value": "engraved"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PersonalizedValuePayload
			err := json.Unmarshal([]byte(tt.input), &p)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, p.ID)
				assert.Equal(t, tt.wantValue, p.Value)
			}
		})
	}
}

func TestLineItemPayload_KebabCaseFields(t *testing.T) {
	input := `{
		"variant-id": 3,
		"quantity": 2,
		"catalog-code": "default",
		"role-code": "RETAIL",
		"personalized-values": [{"id": 1, "value": "x"}]
	}`

	var p LineItemPayload
	require.NoError(t, json.Unmarshal([]byte(input), &p))

	assert.Equal(t, uint(3), p.VariantID)
	assert.Equal(t, 2, p.Quantity)
	assert.Equal(t, "default", p.CatalogCode)
	assert.Equal(t, "RETAIL", p.RoleCode)
	require.Len(t, p.PersonalizedValues, 1)
}

func TestToCartPayload_EmptyLineItemsSerializeAsArray(t *testing.T) {
	payload := toCartPayload(&model.Cart{ID: "1", LineItems: []model.LineItem{}})

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"line-items":[]`)
}

func TestLineItemConversion_RoundTrip(t *testing.T) {
	items := []model.LineItem{
		{
			VariantID:   5,
			Quantity:    1,
			CatalogCode: "default",
			RoleCode:    "DISTRIBUTOR",
			PersonalizedValues: []model.PersonalizedValue{
				{ID: 2, Value: "y"},
			},
		},
	}

	assert.Equal(t, items, toModelLineItems(fromModelLineItems(items)))
}
