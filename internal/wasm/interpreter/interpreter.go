// Package interpreter executes function bodies on an operand stack with an
// explicit call-frame stack. It is a plain fetch-execute loop over decoded
// instructions; there is no compilation step.
package interpreter

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/minwasm/minwasm/api"
	"github.com/minwasm/minwasm/internal/wasm"
)

type (
	// Interpreter drives one Store. It owns the operand stack and the
	// call-frame stack exclusively; callers must serialize calls. A failed
	// call wipes both stacks and makes the instance unusable.
	Interpreter struct {
		store     *wasm.Store
		stack     []api.Value
		callStack []*frame
		logger    *zap.Logger
		failed    bool
	}

	// frame is one activation record. pc starts at -1 so the first fetch
	// advances it to the first instruction. sp marks the operand-stack depth
	// at call entry, where results are written back on unwind.
	frame struct {
		pc     int
		sp     int
		body   []wasm.Instruction
		arity  int
		locals []api.Value
	}
)

// New returns an Interpreter over store. Pass zap.NewNop() to disable
// tracing.
func New(store *wasm.Store, logger *zap.Logger) *Interpreter {
	return &Interpreter{store: store, logger: logger}
}

// Call resolves the named export, invokes it with args, and returns at most
// one result value. Any execution fault discards all stack state and leaves
// the interpreter unusable; later calls return ErrRuntimeUnusable.
//
// ctx is accepted for API symmetry; the loop has no suspension points.
func (it *Interpreter) Call(_ context.Context, name string, args []api.Value) ([]api.Value, error) {
	if it.failed {
		return nil, wasm.ErrRuntimeUnusable
	}

	exp, ok := it.store.Module.Exports[name]
	if !ok {
		it.cleanup()
		return nil, fmt.Errorf("%w: %q", wasm.ErrExportNotFound, name)
	}
	if int(exp.Index) >= len(it.store.Funcs) {
		it.cleanup()
		return nil, fmt.Errorf("%w: index %d", wasm.ErrFuncNotFound, exp.Index)
	}
	f := &it.store.Funcs[exp.Index]

	it.logger.Debug("invoking function",
		zap.String("export", name), zap.Uint32("index", exp.Index))

	for _, arg := range args {
		it.stack = append(it.stack, arg)
	}
	ret, err := it.invoke(f)
	if err != nil {
		it.cleanup()
		return nil, fmt.Errorf("failed to execute %q: %w", name, err)
	}
	return ret, nil
}

// invoke splits the callee's arguments off the operand stack, zero-fills its
// declared locals, pushes a frame, and runs the dispatch loop to completion.
func (it *Interpreter) invoke(f *wasm.FunctionInstance) ([]api.Value, error) {
	paramCount := len(f.Type.Params)
	if len(it.stack) < paramCount {
		return nil, fmt.Errorf("%w: %d arguments for %d parameters", wasm.ErrStackUnderflow, len(it.stack), paramCount)
	}
	bottom := len(it.stack) - paramCount
	locals := make([]api.Value, 0, paramCount+len(f.Locals))
	locals = append(locals, it.stack[bottom:]...)
	it.stack = it.stack[:bottom]
	for _, t := range f.Locals {
		locals = append(locals, api.Zero(t))
	}

	arity := len(f.Type.Results)
	it.callStack = append(it.callStack, &frame{
		pc:     -1,
		sp:     len(it.stack),
		body:   f.Body,
		arity:  arity,
		locals: locals,
	})

	if err := it.execute(); err != nil {
		return nil, err
	}

	if arity > 0 {
		if len(it.stack) == 0 {
			return nil, wasm.ErrNoReturnValue
		}
		v := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		return []api.Value{v}, nil
	}
	return nil, nil
}

// execute is the dispatch loop: advance the top frame's program counter and
// execute the fetched instruction, until the frame stack empties or the
// outermost body falls off its end.
func (it *Interpreter) execute() error {
	for len(it.callStack) > 0 {
		f := it.callStack[len(it.callStack)-1]

		f.pc++
		if f.pc >= len(f.body) {
			// Fall-through without an explicit end. Well-formed bodies never
			// take this path.
			return nil
		}

		inst := f.body[f.pc]
		switch inst.Opcode {
		case wasm.OpcodeEnd:
			it.callStack = it.callStack[:len(it.callStack)-1]
			if err := it.unwind(f.sp, f.arity); err != nil {
				return err
			}
		case wasm.OpcodeLocalGet:
			if int(inst.Index) >= len(f.locals) {
				return fmt.Errorf("%w: index %d", wasm.ErrLocalNotFound, inst.Index)
			}
			it.stack = append(it.stack, f.locals[inst.Index])
		case wasm.OpcodeI64Const:
			it.stack = append(it.stack, api.I64(inst.Const))
		case wasm.OpcodeI32Add:
			if err := it.add(api.ValueTypeI32); err != nil {
				return err
			}
		case wasm.OpcodeI64Add:
			if err := it.add(api.ValueTypeI64); err != nil {
				return err
			}
		default:
			// Unreachable: the decoder rejects unknown opcodes.
			return fmt.Errorf("%w: unknown opcode %#x", wasm.ErrInvalidByte, byte(inst.Opcode))
		}
	}
	return nil
}

// add pops the right then the left operand and pushes their sum. Both must
// carry the type the opcode expects.
func (it *Interpreter) add(expected api.ValueType) error {
	if len(it.stack) < 2 {
		return fmt.Errorf("%w: %s.add needs two operands", wasm.ErrStackUnderflow, api.ValueTypeName(expected))
	}
	rhs := it.stack[len(it.stack)-1]
	lhs := it.stack[len(it.stack)-2]
	it.stack = it.stack[:len(it.stack)-2]

	if lhs.Type() != expected {
		return fmt.Errorf("%w: %s.add on %s operand", api.ErrTypeMismatch, api.ValueTypeName(expected), api.ValueTypeName(lhs.Type()))
	}
	v, err := lhs.Add(rhs)
	if err != nil {
		return err
	}
	it.stack = append(it.stack, v)
	return nil
}

// unwind truncates the operand stack to the frame's entry depth, preserving
// one trailing result when the frame declared any. The closed instruction
// set never produces more than one result, so nothing else can survive.
func (it *Interpreter) unwind(sp, arity int) error {
	if arity > 0 {
		if len(it.stack) == 0 {
			return wasm.ErrNoReturnValue
		}
		v := it.stack[len(it.stack)-1]
		it.stack = append(it.stack[:sp], v)
	} else {
		it.stack = it.stack[:sp]
	}
	return nil
}

// cleanup discards all accumulated state after a fault. The interpreter is
// not reusable afterward.
func (it *Interpreter) cleanup() {
	it.stack = nil
	it.callStack = nil
	it.failed = true
}
