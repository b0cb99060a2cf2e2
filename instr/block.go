package instr

import (
	"fmt"
	"strings"

	"github.com/sarchlab/sigen/regs"
)

// Block is an ordered list of instructions.
type Block struct {
	Name  string
	Insts []*Inst
}

// NewBlock creates a block holding insts.
func NewBlock(name string, insts ...*Inst) *Block {
	return &Block{Name: name, Insts: insts}
}

// Len returns the number of instructions.
func (b *Block) Len() int {
	return len(b.Insts)
}

// Insert places insts before position at. at == Len() appends.
func (b *Block) Insert(at int, insts ...*Inst) {
	if at < 0 || at > len(b.Insts) {
		panic(fmt.Sprintf("block %s: insert position %d out of range [0, %d]",
			b.Name, at, len(b.Insts)))
	}

	out := make([]*Inst, 0, len(b.Insts)+len(insts))
	out = append(out, b.Insts[:at]...)
	out = append(out, insts...)
	out = append(out, b.Insts[at:]...)
	b.Insts = out
}

// Replace swaps the instruction at position at for chain, which may be empty.
// The rest of the block keeps its order.
func (b *Block) Replace(at int, chain []*Inst) {
	if at < 0 || at >= len(b.Insts) {
		panic(fmt.Sprintf("block %s: replace position %d out of range [0, %d)",
			b.Name, at, len(b.Insts)))
	}

	out := make([]*Inst, 0, len(b.Insts)-1+len(chain))
	out = append(out, b.Insts[:at]...)
	out = append(out, chain...)
	out = append(out, b.Insts[at+1:]...)
	b.Insts = out
}

// IndexOf returns the position of inst, or -1.
func (b *Block) IndexOf(inst *Inst) int {
	for i, in := range b.Insts {
		if in == inst {
			return i
		}
	}
	return -1
}

// Format renders the block one instruction per line.
func (b *Block) Format(ri regs.Info) string {
	var sb strings.Builder
	sb.WriteString(b.Name)
	sb.WriteString(":\n")
	for _, in := range b.Insts {
		sb.WriteString("  ")
		sb.WriteString(in.Format(ri))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Function is the unit a lowering pass works on.
type Function struct {
	Name   string
	Blocks []*Block
	Regs   regs.Info
}

// NewFunction creates a function.
func NewFunction(name string, ri regs.Info, blocks ...*Block) *Function {
	return &Function{Name: name, Blocks: blocks, Regs: ri}
}

// Locate finds the block and position holding inst.
func (f *Function) Locate(inst *Inst) (*Block, int, bool) {
	for _, b := range f.Blocks {
		if i := b.IndexOf(inst); i >= 0 {
			return b, i, true
		}
	}
	return nil, -1, false
}

// NumInsts counts the instructions of every block.
func (f *Function) NumInsts() int {
	n := 0
	for _, b := range f.Blocks {
		n += b.Len()
	}
	return n
}

func (f *Function) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "function %s\n", f.Name)
	for _, b := range f.Blocks {
		sb.WriteString(b.Format(f.Regs))
	}
	return sb.String()
}
