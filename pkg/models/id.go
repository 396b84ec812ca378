package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDLength is the length of a document id: 12 bytes, hex encoded.
const IDLength = 24

// NewID returns a new document id. Ids generated by one process sort in
// creation order.
func NewID() string {
	return bson.NewObjectID().Hex()
}

// ParseID returns the canonical (lowercase) form of s if it is a well-formed
// document id.
func ParseID(s string) (string, bool) {
	if len(s) != IDLength {
		return "", false
	}
	oid, err := bson.ObjectIDFromHex(strings.ToLower(s))
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}
