package source

import "fmt"

// Mask is the per-cell activation word: bit i is set when term i acts on
// the cell.
type Mask uint8

// MaxTerms is the largest number of simultaneous source terms per
// equation, bounded by the width of Mask.
const MaxTerms = 8

// BuildMask returns the per-cell activation masks for the given terms, or
// nil when every term covers the whole domain (the cellwise evaluator
// then takes the unmasked fast path). When any term is restricted, the
// mask is allocated and every term marks its cells, full-domain terms
// included, so that the masked path sees all of them.
//
// A restricted term whose subset resolves to nothing is an inconsistent
// descriptor and yields ErrEmptySubset.
func BuildMask(terms []*Term, nCells int) ([]Mask, error) {
	if len(terms) > MaxTerms {
		return nil, fmt.Errorf("%w: %d declared, limit is %d",
			ErrTooManyTerms, len(terms), MaxTerms)
	}

	needMask := false
	for _, t := range terms {
		if t != nil && !t.fullDomain {
			needMask = true
			break
		}
	}
	if !needMask {
		return nil, nil
	}

	masks := make([]Mask, nCells)
	for i, t := range terms {
		if t == nil {
			continue
		}
		bit := Mask(1) << uint(i)

		if t.fullDomain {
			for c := range masks {
				masks[c] |= bit
			}
			continue
		}

		cells := t.loc.Cells()
		if len(cells) == 0 {
			return nil, fmt.Errorf("%w: term %q", ErrEmptySubset, t.name)
		}
		for _, c := range cells {
			if c < 0 || c >= nCells {
				return nil, fmt.Errorf("source: term %q: cell id %d out of range [0,%d)",
					t.name, c, nCells)
			}
			masks[c] |= bit
		}
	}

	return masks, nil
}
