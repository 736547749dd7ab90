package memory

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates round IDs. ulid.Make is monotonic within the
// process, so IDs also sort in creation order.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
