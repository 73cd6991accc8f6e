package controller

import (
	"encoding/json"
	"strconv"

	"github.com/rcalhoun/summit-backend/internal/app/model"
)

// Wire payloads use kebab-case field names; the internal model uses
// camelCase. The mapping is a pure renaming.

type PersonalizedValuePayload struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// UnmarshalJSON accepts the id as a JSON number or a numeric string.
func (p *PersonalizedValuePayload) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Value string          `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Value = raw.Value

	if len(raw.ID) == 0 {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw.ID, &n); err == nil {
		p.ID = n
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.ID, &s); err != nil {
		return err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	p.ID = n
	return nil
}

type LineItemPayload struct {
	VariantID          uint                       `json:"variant-id" binding:"required"`
	Quantity           int                        `json:"quantity"`
	CatalogCode        string                     `json:"catalog-code,omitempty"`
	RoleCode           string                     `json:"role-code,omitempty"`
	PersonalizedValues []PersonalizedValuePayload `json:"personalized-values,omitempty"`
}

type CartPayload struct {
	ID        string            `json:"id"`
	RoleCode  string            `json:"role-code,omitempty"`
	LineItems []LineItemPayload `json:"line-items"`
}

func toModelLineItems(payloads []LineItemPayload) []model.LineItem {
	items := make([]model.LineItem, 0, len(payloads))
	for _, p := range payloads {
		item := model.LineItem{
			VariantID:   p.VariantID,
			Quantity:    p.Quantity,
			CatalogCode: p.CatalogCode,
			RoleCode:    p.RoleCode,
		}
		for _, pv := range p.PersonalizedValues {
			item.PersonalizedValues = append(item.PersonalizedValues, model.PersonalizedValue{
				ID:    pv.ID,
				Value: pv.Value,
			})
		}
		items = append(items, item)
	}
	return items
}

func fromModelLineItems(items []model.LineItem) []LineItemPayload {
	payloads := make([]LineItemPayload, 0, len(items))
	for _, item := range items {
		p := LineItemPayload{
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			CatalogCode: item.CatalogCode,
			RoleCode:    item.RoleCode,
		}
		for _, pv := range item.PersonalizedValues {
			p.PersonalizedValues = append(p.PersonalizedValues, PersonalizedValuePayload{
				ID:    pv.ID,
				Value: pv.Value,
			})
		}
		payloads = append(payloads, p)
	}
	return payloads
}

func toCartPayload(cart *model.Cart) CartPayload {
	return CartPayload{
		ID:        cart.ID,
		RoleCode:  cart.RoleCode,
		LineItems: fromModelLineItems(cart.LineItems),
	}
}
