package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/firstfit/arena"
)

// printText prints the block table in human-readable text format.
func (p *Printer) printText(label string, blocks []arena.Block, stats arena.Stats) error {
	w := p.writer

	if label != "" {
		if _, err := fmt.Fprintf(w, "== %s ==\n", label); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "%4s  %-6s  %-6s  %-5s  %5s  %s\n", "#", "OFFSET", "REF", "STATE", "SIZE", "HANGING")
	for i, b := range blocks {
		if !b.Used && !p.opts.ShowFree {
			continue
		}
		state := "free"
		if b.Used {
			state = "used"
		}
		fmt.Fprintf(w, "%4d  0x%04X  %-6s  %-5s  %5d  %d\n", i, b.Offset, b.Ref(), state, b.Size, b.Hanging)
	}

	if p.opts.ShowMap {
		fmt.Fprintf(w, "[%s]\n", occupancyMap(blocks, stats.Capacity, p.opts.MapWidth))
	}

	if p.opts.ShowStats {
		return p.printStatsText(stats)
	}
	return nil
}

// printStatsText prints the statistics summary in text format.
func (p *Printer) printStatsText(s arena.Stats) error {
	_, err := fmt.Fprintf(p.writer,
		"capacity=%d blocks=%d used=%d free=%d largest_free=%d hanging=%d utilization=%.1f%%\n"+
			"alloc=%d free_calls=%d splits=%d absorbs=%d coalesce_back=%d coalesce_fwd=%d reclaims=%d oom=%d failed_frees=%d\n",
		s.Capacity, s.Blocks, s.UsedBytes, s.FreeBytes, s.LargestFree, s.HangingBytes, s.Utilization()*100,
		s.AllocCalls, s.FreeCalls, s.Splits, s.Absorbs, s.CoalesceBackward, s.CoalesceForward,
		s.HangingReclaims, s.OutOfMemory, s.FailedFrees)
	return err
}

// occupancyMap renders the arena as width cells: '#' used, '.' free.
// A cell shows the state of the block owning its first byte; headers
// count toward their block.
func occupancyMap(blocks []arena.Block, capacity, width int) string {
	if capacity <= 0 || len(blocks) == 0 {
		return strings.Repeat(" ", width)
	}

	var sb strings.Builder
	sb.Grow(width)
	bi := 0
	for cell := range width {
		at := cell * capacity / width
		for bi < len(blocks)-1 && blocks[bi].End() <= at {
			bi++
		}
		if blocks[bi].Used {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
