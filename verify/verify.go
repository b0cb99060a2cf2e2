// Package verify provides debugging tools for lowered shader functions.
//
// This package implements three complementary checks:
//
// 1. Static Lint (lint.go): structural and register class checks
//   - STRUCT checks: generic opcodes left behind, unknown opcodes, literal
//     placement, modifiers on instructions without a VOP3 form
//   - CLASS checks: vector ALU results written outside the vector file
//
// 2. Functional Simulator (funcsim.go): a single-lane interpreter for the
// native subset the backend emits. It runs a lowered function against a
// preloaded register file, so a rewrite can be checked by comparing register
// values before and after lowering.
//
// 3. Layout Report (report.go): the encoding family, size, wait requirement,
// and byte offset of every instruction, rendered as a table.
//
// # Usage Example
//
//	issues := verify.RunLint(fn, ri)
//	for _, issue := range issues {
//	    log.Printf("[%s] %s:%d %s", issue.Type, issue.Block, issue.Index, issue.Message)
//	}
//
//	fs := verify.NewFunctionalSimulator(ri)
//	fs.SetF32(regs.VGPR(1), -3.5)
//	if err := fs.Run(fn); err != nil {
//	    panic(err)
//	}
//	fmt.Println(fs.F32(regs.VGPR(2)))
//
// # Limitations
//
// - One lane only; EXEC is not consulted
// - Memory, export, and interpolation instructions are not simulated
// - Branches are not followed; blocks run in order
package verify

import (
	"fmt"

	"github.com/sarchlab/sigen/isa"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Encoding or opcode problem
	IssueClass  IssueType = "CLASS"  // Result written to the wrong register file
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Block   string     // Block name
	Index   int        // Position in the block
	Opcode  isa.Opcode // Offending opcode
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s:%d %s: %s",
		i.Type, i.Block, i.Index, i.Opcode, i.Message)
}
