package ledger

import (
	"strings"

	"github.com/prover-network/proverstats/pkg/db"
)

// addressPrefixLen is the degraded-matching fallback width. Some metadata
// feeds only carry truncated addresses; a 5-character case-insensitive
// prefix match recovers those rows. Exact-address matches always win.
const addressPrefixLen = 5

type metadataIndex struct {
	exact    map[string]*db.ProverMetadata
	byPrefix map[string]*db.ProverMetadata
}

func newMetadataIndex(metadata []db.ProverMetadata) *metadataIndex {
	idx := &metadataIndex{
		exact:    make(map[string]*db.ProverMetadata, len(metadata)),
		byPrefix: make(map[string]*db.ProverMetadata, len(metadata)),
	}
	for i := range metadata {
		meta := &metadata[i]
		addr := strings.ToLower(meta.Address)
		if addr == "" {
			continue
		}
		if _, ok := idx.exact[addr]; !ok {
			idx.exact[addr] = meta
		}
		if len(addr) >= addressPrefixLen {
			prefix := addr[:addressPrefixLen]
			if _, ok := idx.byPrefix[prefix]; !ok {
				idx.byPrefix[prefix] = meta
			}
		}
	}
	return idx
}

// lookup resolves metadata for a prover address, exact match first, prefix
// fallback second. Returns nil when neither matches.
func (idx *metadataIndex) lookup(address string) *db.ProverMetadata {
	addr := strings.ToLower(address)
	if meta, ok := idx.exact[addr]; ok {
		return meta
	}
	if len(addr) >= addressPrefixLen {
		if meta, ok := idx.byPrefix[addr[:addressPrefixLen]]; ok {
			return meta
		}
	}
	return nil
}
