package sqlite

import (
	"encoding/json"

	"github.com/tiagofoil/valuerank/internal/domain"
)

// The free-tier descriptor is stored as a single JSON column next to a
// plain type column so the ranking queries can stay flat.

func encodeFreeTierInfo(ft *domain.FreeTier) string {
	b, err := json.Marshal(ft)
	if err != nil {
		return ""
	}
	return string(b)
}

// FreeTier decodes the row's free-tier descriptor, or nil when absent.
func (r ModelRow) FreeTier() *domain.FreeTier {
	if !r.FreeTierType.Valid || r.FreeTierType.String == "" {
		return nil
	}

	ft := &domain.FreeTier{Type: r.FreeTierType.String}
	if r.FreeTierInfo.Valid && r.FreeTierInfo.String != "" {
		// Best effort: a corrupt descriptor degrades to type-only.
		_ = json.Unmarshal([]byte(r.FreeTierInfo.String), ft)
		ft.Type = r.FreeTierType.String
	}
	return ft
}
