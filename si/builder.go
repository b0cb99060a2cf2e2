package si

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sigen/config"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// Builder can create SI instruction infos.
type Builder struct {
	ri    regs.Info
	cfg   config.Config
	hooks []sim.Hook
}

// NewBuilder creates a builder with the default configuration and the SI
// register file.
func NewBuilder() Builder {
	return Builder{
		cfg: config.Default(),
	}
}

// WithRegisterInfo sets the register description.
func (b Builder) WithRegisterInfo(ri regs.Info) Builder {
	b.ri = ri
	return b
}

// WithConfig sets the backend configuration.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.cfg = cfg
	return b
}

// WithHook attaches a hook that observes conversions and copies.
func (b Builder) WithHook(hook sim.Hook) Builder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hook)
	return b
}

// Build creates the instruction info.
func (b Builder) Build(name string) *InstrInfo {
	ii := &InstrInfo{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		ri:           b.ri,
		cfg:          b.cfg,
	}

	if ii.ri == nil {
		ii.ri = regs.NewSIRegisterInfo()
	}

	ii.legalizers = map[isa.Legalizer]legalizeFunc{
		isa.LegalizeAbs:   legalizeAbs,
		isa.LegalizeNeg:   legalizeNeg,
		isa.LegalizeClamp: legalizeClamp,
	}

	for _, h := range b.hooks {
		ii.AcceptHook(h)
	}
	if b.cfg.Trace {
		ii.AcceptHook(NewTraceHook())
	}

	return ii
}
