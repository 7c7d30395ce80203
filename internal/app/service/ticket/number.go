package ticket

import (
	"fmt"
	"math/rand/v2"
)

// NumberFunc produces a candidate ticket number. The allocator calls it again
// whenever a candidate collides.
type NumberFunc func() string

// NewNumberFunc returns the production generator: PREFIX-XXXXXX-YY with a
// six-digit part in [100000, 999999] and a two-digit part in [10, 99]. The
// format is a display convention, not a security mechanism; collisions are
// expected at scale and handled by the allocator's retry loop.
func NewNumberFunc(prefix string) NumberFunc {
	return func() string {
		six := rand.IntN(900000) + 100000
		two := rand.IntN(90) + 10
		return fmt.Sprintf("%s-%06d-%02d", prefix, six, two)
	}
}
