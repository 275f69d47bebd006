package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/joshuapare/firstfit/arena"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps([]string{"a100", "a20", "f1", "f0", "a0"})
	require.NoError(t, err)
	require.Equal(t, []step{
		{raw: "a100", op: opAlloc, n: 100},
		{raw: "a20", op: opAlloc, n: 20},
		{raw: "f1", op: opFree, n: 1},
		{raw: "f0", op: opFree, n: 0},
		{raw: "a0", op: opAlloc, n: 0},
	}, steps)
}

func TestParseSteps_Errors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a"}, "want aN or fI"},
		{[]string{"x10"}, "unknown op"},
		{[]string{"a1x"}, "not a non-negative number"},
		{[]string{"a-5"}, "not a non-negative number"},
		{[]string{"f0"}, "only 0 allocation(s) precede it"},
		{[]string{"a1", "f1"}, "only 1 allocation(s) precede it"},
	}
	for _, tt := range tests {
		_, err := parseSteps(tt.args)
		require.ErrorContains(t, err, tt.want, "%v", tt.args)
	}
}

func TestTraceCommand_Text(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a100", "a100", "f0", "a99", "f1", "a100"})
	})
	require.NoError(t, err)

	require.Equal(t, 6, strings.Count(output, "== "))
	require.Contains(t, output, "== a100 -> 0x0002 ==")
	require.Contains(t, output, "== a99 -> 0x0002 ==")
	require.Contains(t, output, "== a100 -> 0x0067 ==", "hanging byte should pull the block one byte closer")
}

func TestTraceCommand_FailuresContinue(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a4092", "a1", "f0", "f0"})
	})
	require.NoError(t, err)
	require.Contains(t, output, "a1 -> alloc(1): arena: no free block large enough")
	require.Contains(t, output, "f0 -> free(0x0002): arena: double free")
	require.Contains(t, output, "2 of 4 step(s) failed")
}

func TestTraceCommand_Strict(t *testing.T) {
	resetFlags()
	traceStrict = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a10", "f0", "f0", "a20"})
	})
	require.ErrorIs(t, err, arena.ErrDoubleFree)
	require.NotContains(t, output, "== a20", "strict mode stops at the failing step")
}

func TestTraceCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	traceStats = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a10", "a0", "f0"})
	})
	require.NoError(t, err)
	assertJSON(t, output)

	var steps []struct {
		Step  string `json:"step"`
		Ref   string `json:"ref"`
		Error string `json:"error"`
		State struct {
			Blocks []struct {
				Offset int  `json:"offset"`
				Used   bool `json:"used"`
				Size   int  `json:"size"`
			} `json:"blocks"`
			Stats struct {
				AllocCalls int `json:"alloc_calls"`
			} `json:"stats"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &steps))
	require.Len(t, steps, 3)

	require.Equal(t, "0x0002", steps[0].Ref)
	require.Len(t, steps[0].State.Blocks, 2)
	require.Contains(t, steps[1].Error, "invalid allocation size")
	require.Empty(t, steps[1].Ref)
	require.Equal(t, 2, steps[1].State.Stats.AllocCalls)
	require.Len(t, steps[2].State.Blocks, 1)
	require.False(t, steps[2].State.Blocks[0].Used)
	require.Equal(t, 4094, steps[2].State.Blocks[0].Size)
}

func TestTraceCommand_MapAndCapacity(t *testing.T) {
	resetFlags()
	traceCapacity = 64
	traceMap = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a30"})
	})
	require.NoError(t, err)
	require.Contains(t, output, "[#")
	require.Contains(t, output, ".]")
}

func TestTraceCommand_InvalidCapacity(t *testing.T) {
	resetFlags()
	traceCapacity = 1

	_, err := captureOutput(t, func() error {
		return runTrace([]string{"a1"})
	})
	require.ErrorIs(t, err, arena.ErrInvalidConfig)
}

func TestTraceCommand_Quiet(t *testing.T) {
	resetFlags()
	quiet = true

	output, err := captureOutput(t, func() error {
		return runTrace([]string{"a1", "f0"})
	})
	require.NoError(t, err)
	require.Empty(t, output)
}
