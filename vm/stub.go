package vm

import "fmt"

// Opcode is one instruction of Stub's tiny bytecode language: a stack
// machine over uint64/bool values, just expressive enough to encode the
// script checks spec.md §8 property 6 calls out as optionally testable
// (fungible conservation), without pulling in a real VM from the pack.
type Opcode uint8

const (
	// OpPushConst pushes Arg verbatim.
	OpPushConst Opcode = iota
	// OpCtxLoad pushes a value named by Arg out of the running Context
	// (see CtxInputSum/CtxOutputSum).
	OpCtxLoad
	// OpEq pops two values, pushes 1 if equal else 0.
	OpEq
	// OpAnd pops two values, pushes 1 if both are non-zero else 0.
	OpAnd
	// OpOr pops two values, pushes 1 if either is non-zero else 0.
	OpOr
	// OpHalt pops one value; non-zero accepts, zero rejects.
	OpHalt
)

// Context field selectors for OpCtxLoad.
const (
	CtxInputSum  uint64 = 0
	CtxOutputSum uint64 = 1
)

// Instruction is one Stub program step.
type Instruction struct {
	Op  Opcode
	Arg uint64
}

// Program is a Stub script: a flat instruction list addressed by entry
// offset, satisfying vm.Lib.
type Program []Instruction

// Stub is a deterministic reference Engine: libraries are Go-constructed
// Programs registered ahead of time, not parsed from bytes. It exists so
// package validate has something real to invoke in tests and examples;
// production deployments would swap in an AluVM-backed Engine behind the
// same interface.
type Stub struct {
	libs map[LibId]Program
}

// NewStub returns an empty Stub with no registered libraries.
func NewStub() *Stub {
	return &Stub{libs: make(map[LibId]Program)}
}

// Register makes p loadable under id.
func (s *Stub) Register(id LibId, p Program) {
	s.libs[id] = p
}

func (s *Stub) Load(id LibId) (Lib, error) {
	p, ok := s.libs[id]
	if !ok {
		return nil, fmt.Errorf("vm: no library registered for %x", id)
	}
	return p, nil
}

func (s *Stub) Run(lib Lib, entry uint16, ctx Context) (Verdict, error) {
	p, ok := lib.(Program)
	if !ok {
		return VerdictReject, fmt.Errorf("vm: lib is not a Stub Program (%T)", lib)
	}
	if int(entry) >= len(p) {
		return VerdictReject, fmt.Errorf("vm: entry offset %d out of range (program has %d instructions)", entry, len(p))
	}

	var stack []uint64
	push := func(v uint64) { stack = append(stack, v) }
	pop := func() (uint64, error) {
		if len(stack) == 0 {
			return 0, fmt.Errorf("vm: stack underflow")
		}
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v, nil
	}

	for pc := int(entry); pc < len(p); pc++ {
		instr := p[pc]
		switch instr.Op {
		case OpPushConst:
			push(instr.Arg)
		case OpCtxLoad:
			switch instr.Arg {
			case CtxInputSum:
				push(ctx.InputSum)
			case CtxOutputSum:
				push(ctx.OutputSum)
			default:
				return VerdictReject, fmt.Errorf("vm: unknown ctx selector %d", instr.Arg)
			}
		case OpEq:
			a, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			b, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			if a == b {
				push(1)
			} else {
				push(0)
			}
		case OpAnd:
			a, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			b, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			push(boolToU64(a != 0 && b != 0))
		case OpOr:
			a, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			b, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			push(boolToU64(a != 0 || b != 0))
		case OpHalt:
			v, err := pop()
			if err != nil {
				return VerdictReject, err
			}
			if v != 0 {
				return VerdictAccept, nil
			}
			return VerdictReject, nil
		default:
			return VerdictReject, fmt.Errorf("vm: unknown opcode %d", instr.Op)
		}
	}
	return VerdictReject, fmt.Errorf("vm: program fell off the end without OpHalt")
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// FungibleConservationProgram is the example script named in spec.md §8
// property 6: accept iff sum(inputs) == sum(outputs). It is never invoked
// by package validate on its own initiative — a schema must name it via
// LibSite for it to run.
func FungibleConservationProgram() Program {
	return Program{
		{Op: OpCtxLoad, Arg: CtxInputSum},
		{Op: OpCtxLoad, Arg: CtxOutputSum},
		{Op: OpEq},
		{Op: OpHalt},
	}
}
