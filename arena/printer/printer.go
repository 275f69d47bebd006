// Package printer renders arena block chains and statistics for humans
// (text) and tools (JSON).
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/firstfit/arena"
)

const (
	DefaultMapWidth = 64
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs a human-readable block table.
	FormatText Format = "text"

	// FormatJSON outputs one JSON document per Print call.
	FormatJSON Format = "json"
)

// Source is anything that can report its block chain and statistics.
// Both *arena.Arena and *arena.Safe satisfy it.
type Source interface {
	Blocks() []arena.Block
	Stats() arena.Stats
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowFree includes free blocks in the block table.
	// Default: true
	ShowFree bool

	// ShowStats appends the allocator counters and chain summary.
	// Default: false
	ShowStats bool

	// ShowMap draws a one-line occupancy map (text format only).
	// Default: false
	ShowMap bool

	// MapWidth is the number of cells in the occupancy map.
	// Default: 64
	MapWidth int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		ShowFree:  true,
		ShowStats: false,
		ShowMap:   false,
		MapWidth:  DefaultMapWidth,
	}
}

// Printer handles formatted output of arena state.
type Printer struct {
	opts   Options
	writer io.Writer
	src    Source
}

// New creates a new Printer.
//
// Example:
//
//	a, _ := arena.New(nil)
//	p := printer.New(a, os.Stdout, printer.DefaultOptions())
//	p.Print()
func New(src Source, w io.Writer, opts Options) *Printer {
	if opts.MapWidth <= 0 {
		opts.MapWidth = DefaultMapWidth
	}
	return &Printer{
		src:    src,
		writer: w,
		opts:   opts,
	}
}

// Print writes the block table, plus the map and stats when enabled.
func (p *Printer) Print() error {
	return p.PrintLabeled("")
}

// PrintLabeled is Print with a caption, used to annotate trace steps.
// An empty label prints no caption.
func (p *Printer) PrintLabeled(label string) error {
	blocks := p.src.Blocks()
	stats := p.src.Stats()

	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(label, blocks, stats)
	case FormatText:
		return p.printText(label, blocks, stats)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}

// PrintStats writes only the statistics summary.
func (p *Printer) PrintStats() error {
	stats := p.src.Stats()

	switch p.opts.Format {
	case FormatJSON:
		return p.printStatsJSON(stats)
	case FormatText:
		return p.printStatsText(stats)
	default:
		return fmt.Errorf("printer: unknown format %q", p.opts.Format)
	}
}
