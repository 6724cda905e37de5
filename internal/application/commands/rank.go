package commands

import (
	"fmt"

	"locus/internal/domain"
	"locus/internal/ports"
)

// siblingRank picks a rank for a new child of at: after the last sibling,
// or before the first when first is set
func siblingRank(index ports.GraphIndex, at domain.Placement, first bool) (domain.Rank, error) {
	refs, err := index.Query(domain.Single(at))
	if err != nil {
		return "", fmt.Errorf("failed to read siblings: %w", err)
	}
	if len(refs) == 0 {
		return domain.InitialRank(), nil
	}

	lo, hi := refs[0].Rank, refs[0].Rank
	for _, ref := range refs[1:] {
		if ref.Rank < lo {
			lo = ref.Rank
		}
		if ref.Rank > hi {
			hi = ref.Rank
		}
	}
	if first {
		return domain.RankBefore(lo)
	}
	return domain.RankAfter(hi)
}
