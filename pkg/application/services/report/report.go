// Package report derives the reviewable problem list of a pass: every row
// flag and skipped store worth a human look, in export order.
package report

import (
	"stockalloc/pkg/domain/entities"
)

// ProblemKind classifies one remark of the problem report.
type ProblemKind int

const (
	// ProblemFallbackPriority - product missing from the sales report.
	ProblemFallbackPriority ProblemKind = iota
	// ProblemSmallFamily - fewer sizes than the completeness rule needs.
	ProblemSmallFamily
	// ProblemInsufficientSizes - a store was vetoed by the completeness rule.
	ProblemInsufficientSizes
	// ProblemExcludedStore - a store was skipped as excluded.
	ProblemExcludedStore
)

// String method for ProblemKind enum
func (k ProblemKind) String() string {
	switch k {
	case ProblemFallbackPriority:
		return "FallbackPriority"
	case ProblemSmallFamily:
		return "SmallFamily"
	case ProblemInsufficientSizes:
		return "InsufficientSizes"
	case ProblemExcludedStore:
		return "ExcludedStore"
	default:
		return "Unknown"
	}
}

// Problem is one remark row of the report.
type Problem struct {
	Row     int
	Product string
	Variant string
	Kind    ProblemKind
	Store   string
	Detail  string
}

// Collect derives the problem list from a preview sequence. Only rows that
// actually move units are reported; rows with nothing to do are noise.
func Collect(previews []entities.RowPreview) []Problem {
	var problems []Problem

	for i := range previews {
		p := &previews[i]
		if !p.HasTransfers() {
			continue
		}

		if p.UsesFallbackPriority {
			problems = append(problems, Problem{
				Row:     p.Row,
				Product: p.Product,
				Variant: p.Variant,
				Kind:    ProblemFallbackPriority,
				Detail:  "product not found in sales report, static priority used",
			})
		}
		if p.StandardFallback {
			problems = append(problems, Problem{
				Row:     p.Row,
				Product: p.Product,
				Variant: p.Variant,
				Kind:    ProblemSmallFamily,
				Detail:  "family below minimum sizes, standard distribution applied",
			})
		}

		for _, s := range p.Skipped {
			switch s.Reason.Kind {
			case entities.SkipInsufficientSizes, entities.SkipPartnerBlocked:
				problems = append(problems, Problem{
					Row:     p.Row,
					Product: p.Product,
					Variant: p.Variant,
					Kind:    ProblemInsufficientSizes,
					Store:   entities.StoreCodeString(s.Store),
					Detail:  s.Reason.Render(),
				})
			case entities.SkipExcluded:
				problems = append(problems, Problem{
					Row:     p.Row,
					Product: p.Product,
					Variant: p.Variant,
					Kind:    ProblemExcludedStore,
					Store:   entities.StoreCodeString(s.Store),
					Detail:  s.Reason.Render(),
				})
			}
		}
	}
	return problems
}
