package model

// Cart is the cache-resident shopping cart for a user or anonymous
// visitor. It has no relational backing; the cache entry is authoritative
// and expires with its TTL.
type Cart struct {
	ID        string     `json:"id"` // owning user or visitor identifier, echoed back
	RoleCode  string     `json:"roleCode,omitempty"`
	LineItems []LineItem `json:"lineItems"`
}

// LineItem is one requested purchase quantity of a catalog variant under
// one personalization. Two line items with the same variant but different
// personalized values are distinct entries.
type LineItem struct {
	VariantID          uint                `json:"variantId"`
	Quantity           int                 `json:"quantity"`
	CatalogCode        string              `json:"catalogCode,omitempty"`
	RoleCode           string              `json:"roleCode,omitempty"`
	PersonalizedValues []PersonalizedValue `json:"personalizedValues,omitempty"`
}

// PersonalizedValue is a single customization entry, e.g. an engraving.
type PersonalizedValue struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}
