package inventory

import (
	"sort"
	"strings"

	"atelier/internal/pkg/errs"
)

// ResolutionKind tags the outcome of resolving a code-or-name reference.
type ResolutionKind int

const (
	NotFound ResolutionKind = iota
	Resolved
	Ambiguous
)

func (k ResolutionKind) String() string {
	switch k {
	case Resolved:
		return "Resolved"
	case Ambiguous:
		return "Ambiguous"
	default:
		return "NotFound"
	}
}

// Resolution is the result of Resolve. SKU is set only when Kind is Resolved;
// Candidates lists the matching codes when Kind is Ambiguous.
type Resolution struct {
	Kind       ResolutionKind
	Reference  string
	SKU        *SKU
	Candidates []string
}

// NameKey is the form names are compared in: trimmed and case-folded.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve picks the SKU a reference points to. An exact code match always
// wins. Otherwise the reference resolves by name only when exactly one SKU
// carries that name; several matches are Ambiguous and never narrowed down.
//
// byCode is the SKU whose code equals the reference (nil when none), byName
// the SKUs whose NameKey equals the reference's.
func Resolve(reference string, byCode *SKU, byName []*SKU) Resolution {
	if byCode != nil {
		return Resolution{Kind: Resolved, Reference: reference, SKU: byCode}
	}

	switch len(byName) {
	case 0:
		return Resolution{Kind: NotFound, Reference: reference}
	case 1:
		return Resolution{Kind: Resolved, Reference: reference, SKU: byName[0]}
	}

	candidates := make([]string, 0, len(byName))
	for _, s := range byName {
		candidates = append(candidates, s.Code())
	}
	sort.Strings(candidates)

	return Resolution{Kind: Ambiguous, Reference: reference, Candidates: candidates}
}

// Err converts a failed resolution into NotFound or AmbiguousReference.
func (r Resolution) Err() error {
	switch r.Kind {
	case Resolved:
		return nil
	case Ambiguous:
		return errs.NewAmbiguousReferenceError(r.Reference, r.Candidates)
	default:
		return errs.NewObjectNotFoundError("sku", r.Reference)
	}
}
