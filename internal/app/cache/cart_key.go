package cache

import "fmt"

// Cart key namespaces. User and visitor carts never share a key even when
// the raw identifiers are textually identical.
const (
	userKeyPrefix    = "cart:user:"
	VisitorKeyPrefix = "cart:visitor:"
)

// KeyForUser returns the cache key for an authenticated user's cart.
func KeyForUser(userID uint) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, userID)
}

// KeyForVisitor returns the cache key for an anonymous visitor's cart.
func KeyForVisitor(visitorID string) string {
	return VisitorKeyPrefix + visitorID
}
