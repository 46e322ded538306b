package diff

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak from any test in the diff package.
// Compare spawns hashing goroutines per comparison; they must all be
// joined before a result or error is returned.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
