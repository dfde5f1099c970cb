// Package output renders the result of an allocation pass for the terminal
// and for machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"stockalloc/pkg/application/services/report"
	"stockalloc/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// PassResult is everything one allocation pass produced.
type PassResult struct {
	RunID    uuid.UUID                `json:"run_id"`
	Pass     string                   `json:"pass"`
	Source   string                   `json:"source,omitempty"`
	Previews []entities.RowPreview    `json:"previews"`
	Batches  []entities.TransferBatch `json:"batches"`
	Problems []report.Problem         `json:"problems,omitempty"`
	Files    []string                 `json:"files,omitempty"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// Render writes a pass result in the configured format.
func Render(w io.Writer, result *PassResult, config Config) error {
	switch config.Format {
	case "text":
		return renderText(w, result, config)
	case "json":
		return renderJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func renderText(w io.Writer, result *PassResult, config Config) error {
	title := "Distribution"
	if result.Pass == "balancing" {
		title = "Rebalancing"
	}

	fmt.Fprintf(w, "📊 %s Summary\n", title)
	fmt.Fprintf(w, "======================\n\n")

	moving := 0
	units := entities.Quantity(0)
	transfers := 0
	for i := range result.Previews {
		p := &result.Previews[i]
		if p.HasTransfers() {
			moving++
		}
		transfers += len(p.Transfers)
		units += p.TotalQuantity()
	}

	fmt.Fprintf(w, "Rows: %d\n", len(result.Previews))
	fmt.Fprintf(w, "Rows with transfers: %d\n", moving)
	fmt.Fprintf(w, "Transfers: %d\n", transfers)
	fmt.Fprintf(w, "Units: %d\n", units)
	fmt.Fprintf(w, "Documents: %d\n\n", len(result.Batches))

	if moving > 0 {
		fmt.Fprintf(w, "📋 Transfers:\n")
		for i := range result.Previews {
			p := &result.Previews[i]
			if !p.HasTransfers() {
				continue
			}
			fmt.Fprintf(w, "Row %d: %s / %s\n", p.Row, p.Product, p.Variant)
			for _, flag := range rowFlags(p) {
				fmt.Fprintf(w, "  ⚠️  %s\n", flag)
			}
			for _, t := range p.Transfers {
				fmt.Fprintf(w, "  %s -> %s: %d\n", t.Sender, entities.StoreCodeString(t.Receiver), t.Quantity)
			}
			if config.Verbose {
				for _, s := range p.Skipped {
					fmt.Fprintf(w, "  skipped %s: %s\n", entities.StoreCodeString(s.Store), s.Reason.Render())
				}
			}
		}
		fmt.Fprintln(w)
	}

	if config.Verbose {
		skipped := 0
		for i := range result.Previews {
			p := &result.Previews[i]
			if p.SkipReason == nil {
				continue
			}
			if skipped == 0 {
				fmt.Fprintf(w, "⏭️  Skipped rows:\n")
			}
			skipped++
			fmt.Fprintf(w, "Row %d: %s / %s: %s\n", p.Row, p.Product, p.Variant, p.SkipReason.Render())
		}
		if skipped > 0 {
			fmt.Fprintln(w)
		}
	}

	if len(result.Batches) > 0 {
		fmt.Fprintf(w, "📦 Documents:\n")
		for i := range result.Batches {
			b := &result.Batches[i]
			fmt.Fprintf(w, "  %s -> %s: %d lines, %d units\n",
				b.Sender, b.Receiver, len(b.Lines), b.TotalQuantity())
		}
		fmt.Fprintln(w)
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
	for _, file := range result.Files {
		fmt.Fprintf(w, "💾 %s\n", file)
	}
	return nil
}

func renderJSON(w io.Writer, result *PassResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// rowFlags lists the remark flags of one row in rendering order.
func rowFlags(p *entities.RowPreview) []string {
	var flags []string
	if p.UsesFallbackPriority {
		flags = append(flags, "static priority fallback (product not in sales report)")
	}
	if p.StandardFallback {
		flags = append(flags, "standard distribution (family below minimum sizes)")
	}
	if p.MinSizesSkipped {
		flags = append(flags, "one or more stores skipped by the completeness rule")
	}
	return flags
}
