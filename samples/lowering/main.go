package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sarchlab/sigen/api"
	"github.com/sarchlab/sigen/config"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
	"github.com/sarchlab/sigen/si"
	"github.com/sarchlab/sigen/verify"
	"github.com/tebeka/atexit"
)

func at(line int) instr.DebugLoc {
	return instr.DebugLoc{File: "demo.il", Line: line}
}

// pixelShader scales an interpolated attribute by a constant, saturates it,
// and exports it.
func pixelShader(ri regs.Info) *instr.Function {
	return instr.NewFunction("ps_main", ri,
		instr.NewBlock("entry",
			instr.New(isa.ILLoadConst, at(1), instr.Dst(regs.SGPR(0)),
				instr.RegOp(regs.SGPRPair(4)), instr.FieldOp(0)),
			instr.New(isa.ILInterpP1, at(2), instr.Dst(regs.VGPR(2)),
				instr.RegOp(regs.VGPR(0)), instr.FieldOp(0)),
			instr.New(isa.ILInterpP2, at(2), instr.Dst(regs.VGPR(2)),
				instr.RegOp(regs.VGPR(1)), instr.FieldOp(0)),
			instr.New(isa.ILMulF32, at(3), instr.Dst(regs.VGPR(3)),
				instr.RegOp(regs.SGPR(0)), instr.KillOp(regs.VGPR(2))),
			instr.New(isa.ILClampF32, at(3), instr.Dst(regs.VGPR(4)),
				instr.KillOp(regs.VGPR(3))),
			instr.New(isa.ILAbsF32, at(4), instr.Dst(regs.VGPR(5)),
				instr.RegOp(regs.SGPR(0))),
		),
		instr.NewBlock("exit",
			instr.New(isa.ILExport, at(5), nil,
				instr.FieldOp(0), instr.RegOp(regs.VGPR(4)), instr.RegOp(regs.VGPR(5))),
			instr.New(isa.ILReturn, at(6), nil),
		),
	)
}

// computeShader loads from a buffer and offsets the value by a literal.
func computeShader(ri regs.Info) *instr.Function {
	return instr.NewFunction("cs_main", ri,
		instr.NewBlock("entry",
			instr.New(isa.ILLoadPtr, at(10), instr.Dst(regs.SGPRPair(8)),
				instr.RegOp(regs.SGPRPair(2)), instr.FieldOp(0)),
			instr.New(isa.ILBufferLoad, at(11), instr.Dst(regs.VGPR(1)),
				instr.RegOp(regs.VGPR(0)), instr.RegOp(regs.SGPRPair(8)), instr.FieldOp(0)),
			instr.New(isa.ILAddF32, at(12), instr.Dst(regs.VGPR(2)),
				instr.FloatOp(1.5), instr.KillOp(regs.VGPR(1))),
			instr.New(isa.ILNegF32, at(13), instr.Dst(regs.VGPR(3)),
				instr.FloatOp(3.25)),
			instr.New(isa.ILBufferStore, at(14), nil,
				instr.RegOp(regs.VGPR(2)), instr.RegOp(regs.VGPR(0)),
				instr.RegOp(regs.SGPRPair(8)), instr.FieldOp(4)),
			instr.New(isa.ILReturn, at(15), nil),
		),
	)
}

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: si.LevelTrace,
	})
	slog.SetDefault(slog.New(handler))

	cfg := config.FromEnv(config.Default())
	hook := si.NewTraceHook()

	target := si.NewBuilder().
		WithConfig(cfg).
		WithHook(hook).
		Build("SI")

	driver := api.DriverBuilder{}.
		WithTarget(target).
		WithWorkers(cfg.Workers).
		Build()

	ri := target.RegisterInfo()
	fns := []*instr.Function{pixelShader(ri), computeShader(ri)}

	if err := driver.Lower(context.Background(), fns); err != nil {
		atexit.Fatalf("lowering failed: %v", err)
	}

	// The pixel shader hands its color to the export unit through v6.
	exit := fns[0].Blocks[1]
	if err := target.CopyPhysReg(exit, 0, at(5), regs.VGPR(6), regs.VGPR(4), true); err != nil {
		atexit.Fatalf("copy failed: %v", err)
	}
	exit.Insts[1].SrcOperands[1] = instr.KillOp(regs.VGPR(6))

	failed := false
	for _, fn := range fns {
		report := verify.GenerateReport(fn, ri)
		report.WriteReport(os.Stdout)
		failed = failed || !report.OK()

		if cfg.ReportDir != "" {
			path := filepath.Join(cfg.ReportDir, fn.Name+".txt")
			if err := report.SaveReportToFile(path); err != nil {
				atexit.Fatalf("saving report: %v", err)
			}
		}
	}

	fmt.Println(hook.Table())
	fmt.Printf("register copies: %d\n", hook.Copies())

	if failed {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
