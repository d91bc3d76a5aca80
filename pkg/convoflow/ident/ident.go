// Package ident generates collision-resistant short identifiers for
// nodes, edges, and flow documents.
package ident

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// New returns a 12-character URL-safe identifier derived from a random
// UUID. Identifiers are unique within a process lifetime with
// overwhelming probability; callers must not assume any ordering.
func New() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:9])
}
