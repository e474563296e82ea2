package tableobject

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// ComputeObjectEtag returns the content fingerprint of a table object: the
// hex SHA-256 digest of the uuid concatenated with every "name:value" pair in
// property insertion order. The value is exposed to API consumers as a cache
// validator, so it must be reproducible for identical content.
func ComputeObjectEtag(uuid string, props []Property) string {
	var b strings.Builder
	b.WriteString(uuid)
	for _, p := range props {
		b.WriteString(",")
		b.WriteString(p.Name)
		b.WriteString(":")
		b.WriteString(p.Value)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// TableEtag is the opaque version tag scoped to (userId, tableId). It is
// replaced with a fresh random value on every visible change; consumers only
// compare for equality.
type TableEtag struct {
	ID        uint
	UserID    uint
	TableID   uint
	Etag      string
	UpdatedAt time.Time
}

type TableEtagRepository interface {
	// GetByUserAndTable returns (nil, nil) when no row exists yet.
	GetByUserAndTable(ctx context.Context, userID, tableID uint) (*TableEtag, error)
	Create(ctx context.Context, etag *TableEtag) error
	Update(ctx context.Context, etag *TableEtag) error
}
