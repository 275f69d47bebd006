package printer

import (
	"encoding/json"

	"github.com/joshuapare/firstfit/arena"
)

// jsonBlock represents one block in JSON format.
type jsonBlock struct {
	Offset  int    `json:"offset"`
	Ref     string `json:"ref"`
	Used    bool   `json:"used"`
	Size    int    `json:"size"`
	Hanging int    `json:"hanging"`
}

// jsonStats represents the statistics summary in JSON format.
type jsonStats struct {
	Capacity         int     `json:"capacity"`
	Blocks           int     `json:"blocks"`
	UsedBlocks       int     `json:"used_blocks"`
	FreeBlocks       int     `json:"free_blocks"`
	UsedBytes        int     `json:"used_bytes"`
	HangingBytes     int     `json:"hanging_bytes"`
	FreeBytes        int     `json:"free_bytes"`
	MetaBytes        int     `json:"meta_bytes"`
	LargestFree      int     `json:"largest_free"`
	Utilization      float64 `json:"utilization"`
	AllocCalls       int     `json:"alloc_calls"`
	FreeCalls        int     `json:"free_calls"`
	Splits           int     `json:"splits"`
	Absorbs          int     `json:"absorbs"`
	CoalesceBackward int     `json:"coalesce_backward"`
	CoalesceForward  int     `json:"coalesce_forward"`
	HangingReclaims  int     `json:"hanging_reclaims"`
	ReclaimedBytes   int     `json:"reclaimed_bytes"`
	OutOfMemory      int     `json:"out_of_memory"`
	FailedFrees      int     `json:"failed_frees"`
}

// jsonDump is the top-level JSON document.
type jsonDump struct {
	Label  string      `json:"label,omitempty"`
	Blocks []jsonBlock `json:"blocks"`
	Stats  *jsonStats  `json:"stats,omitempty"`
}

// printJSON prints the block chain in JSON format.
func (p *Printer) printJSON(label string, blocks []arena.Block, stats arena.Stats) error {
	dump := jsonDump{
		Label:  label,
		Blocks: make([]jsonBlock, 0, len(blocks)),
	}
	for _, b := range blocks {
		if !b.Used && !p.opts.ShowFree {
			continue
		}
		dump.Blocks = append(dump.Blocks, jsonBlock{
			Offset:  b.Offset,
			Ref:     b.Ref().String(),
			Used:    b.Used,
			Size:    b.Size,
			Hanging: b.Hanging,
		})
	}
	if p.opts.ShowStats {
		s := toJSONStats(stats)
		dump.Stats = &s
	}
	return p.encode(dump)
}

// printStatsJSON prints only the statistics in JSON format.
func (p *Printer) printStatsJSON(stats arena.Stats) error {
	return p.encode(toJSONStats(stats))
}

func (p *Printer) encode(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toJSONStats(s arena.Stats) jsonStats {
	return jsonStats{
		Capacity:         s.Capacity,
		Blocks:           s.Blocks,
		UsedBlocks:       s.UsedBlocks,
		FreeBlocks:       s.FreeBlocks,
		UsedBytes:        s.UsedBytes,
		HangingBytes:     s.HangingBytes,
		FreeBytes:        s.FreeBytes,
		MetaBytes:        s.MetaBytes,
		LargestFree:      s.LargestFree,
		Utilization:      s.Utilization(),
		AllocCalls:       s.AllocCalls,
		FreeCalls:        s.FreeCalls,
		Splits:           s.Splits,
		Absorbs:          s.Absorbs,
		CoalesceBackward: s.CoalesceBackward,
		CoalesceForward:  s.CoalesceForward,
		HangingReclaims:  s.HangingReclaims,
		ReclaimedBytes:   s.ReclaimedBytes,
		OutOfMemory:      s.OutOfMemory,
		FailedFrees:      s.FailedFrees,
	}
}
