package coal

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsMissing returns whether the provided error describes a missing document.
func IsMissing(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
