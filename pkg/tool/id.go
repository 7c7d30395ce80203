package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered UUID string. V7 keeps primary keys
// roughly insertion-ordered, which the claim and ticket tables rely on.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
