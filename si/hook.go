package si

import (
	"sort"
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

var (
	// HookPosConvert is triggered after an instruction is converted.
	HookPosConvert = &sim.HookPos{Name: "Convert"}

	// HookPosCopy is triggered after a register copy is inserted.
	HookPosCopy = &sim.HookPos{Name: "CopyPhysReg"}
)

// ConvertDetail is the hook detail at HookPosConvert.
type ConvertDetail struct {
	From      isa.Opcode
	Legalizer isa.Legalizer
	Chain     []*instr.Inst
	Loc       instr.DebugLoc
}

// CopyDetail is the hook detail at HookPosCopy.
type CopyDetail struct {
	Dst, Src regs.Reg
	Kill     bool
	Loc      instr.DebugLoc
}

// TraceStat accumulates the conversions of one opcode.
type TraceStat struct {
	Opcode  isa.Opcode
	Count   int
	Emitted int
}

// TraceHook logs conversions and copies and keeps per-opcode counts.
type TraceHook struct {
	mu     sync.Mutex
	stats  map[isa.Opcode]*TraceStat
	copies int
}

// NewTraceHook creates a trace hook.
func NewTraceHook() *TraceHook {
	return &TraceHook{stats: make(map[isa.Opcode]*TraceStat)}
}

// Func implements sim.Hook.
func (h *TraceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case HookPosConvert:
		d := ctx.Detail.(ConvertDetail)
		Trace("Convert",
			"from", d.From.String(),
			"legalizer", d.Legalizer.String(),
			"emitted", len(d.Chain),
			"loc", d.Loc.String(),
		)
		h.countConvert(d)
	case HookPosCopy:
		d := ctx.Detail.(CopyDetail)
		Trace("CopyPhysReg",
			"dst", uint16(d.Dst),
			"src", uint16(d.Src),
			"kill", d.Kill,
			"loc", d.Loc.String(),
		)
		h.mu.Lock()
		h.copies++
		h.mu.Unlock()
	}
}

func (h *TraceHook) countConvert(d ConvertDetail) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.stats[d.From]
	if !ok {
		s = &TraceStat{Opcode: d.From}
		h.stats[d.From] = s
	}
	s.Count++
	s.Emitted += len(d.Chain)
}

// Stats returns a snapshot of the per-opcode counts ordered by opcode.
func (h *TraceHook) Stats() []TraceStat {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]TraceStat, 0, len(h.stats))
	for _, s := range h.stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Opcode < out[j].Opcode
	})
	return out
}

// Copies returns the number of register copies observed.
func (h *TraceHook) Copies() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.copies
}

// Table renders the per-opcode counts.
func (h *TraceHook) Table() string {
	t := table.NewWriter()
	t.SetTitle("Conversions")
	t.AppendHeader(table.Row{"Opcode", "Count", "Emitted"})

	total, emitted := 0, 0
	for _, s := range h.Stats() {
		t.AppendRow(table.Row{s.Opcode.String(), s.Count, s.Emitted})
		total += s.Count
		emitted += s.Emitted
	}
	t.AppendFooter(table.Row{"Total", total, emitted})

	return t.Render()
}
