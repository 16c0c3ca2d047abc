// Package objecturl mints display URLs for stored images.
//
// A minted URL is a handle: it stays valid until revoked (Registry) or until
// it expires (Presigner). The image service is the only owner of handles.
package objecturl

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/models"
)

// Minter creates and releases display URLs for (keyspace, id) pairs.
type Minter interface {
	Mint(ctx context.Context, keyspace models.Keyspace, id string) (string, error)
	Revoke(url string)
}
