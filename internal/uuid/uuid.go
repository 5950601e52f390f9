// Package uuid generates the time-ordered identifiers used as primary keys
// and transfer group tokens.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. Falls back to a random UUIDv4 if the
// time-ordered generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	return googleuuid.Validate(s) == nil
}
