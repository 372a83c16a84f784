package utils

import (
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Oid parses a hex ObjectID, naming the field in the error.
func Oid(field, hex string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("invalid %s", field)
	}
	return id, nil
}
