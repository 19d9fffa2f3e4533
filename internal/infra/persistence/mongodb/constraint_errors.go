package mongodb

import (
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// isDuplicateKeyViolation reports whether err is a unique index violation.
func isDuplicateKeyViolation(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// duplicateKeyOn reports whether the duplicate key violation involves the
// index on the given field. The driver only exposes the offending index
// through the server message, so this is a substring check on the
// conventional "<field>_1" index name.
func duplicateKeyOn(err error, field string) bool {
	if err == nil {
		return false
	}

	return strings.Contains(err.Error(), field+"_1")
}
