// Package minwasm embeds a compact, pre-compiled module format: it decodes a
// binary module and invokes its exported functions on an interpreter.
//
// Ex.
//
//	r := minwasm.NewRuntime()
//	if err := r.Instantiate(bin); err != nil { ... }
//	results, err := r.Call(ctx, "add", api.I64(2), api.I64(3))
package minwasm

import (
	"context"
	"errors"

	"github.com/minwasm/minwasm/api"
	internalwasm "github.com/minwasm/minwasm/internal/wasm"
	"github.com/minwasm/minwasm/internal/wasm/binary"
	"github.com/minwasm/minwasm/internal/wasm/interpreter"
)

// Module is a decoded module, ready to instantiate. Decode one with
// Runtime.DecodeModule.
type Module struct {
	module *internalwasm.Module
}

// Runtime decodes modules and executes their exports. One Runtime holds at
// most one instantiated module, and its lifetime spans that module: after a
// failed call it must be replaced, not reused. Callers must serialize use of
// a single Runtime.
type Runtime struct {
	config *RuntimeConfig
	engine *interpreter.Interpreter
}

// NewRuntime returns a Runtime with default configuration.
func NewRuntime() *Runtime {
	return NewRuntimeWithConfig(NewRuntimeConfig())
}

// NewRuntimeWithConfig returns a Runtime using the given configuration.
func NewRuntimeWithConfig(config *RuntimeConfig) *Runtime {
	return &Runtime{config: config}
}

// DecodeModule decodes the binary format or errs if invalid. The input is
// consumed entirely; any malformed remainder rejects the whole of it.
func (r *Runtime) DecodeModule(bin []byte) (*Module, error) {
	m, err := binary.DecodeModule(bin, r.config.logger)
	if err != nil {
		return nil, err
	}
	return &Module{module: m}, nil
}

// InstantiateModule builds the runtime store from a decoded module, replacing
// any previously instantiated one.
func (r *Runtime) InstantiateModule(module *Module) error {
	if module == nil || module.module == nil {
		return errors.New("nil module")
	}
	store, err := internalwasm.NewStore(module.module)
	if err != nil {
		return err
	}
	r.engine = interpreter.New(store, r.config.logger)
	return nil
}

// Instantiate decodes bin and instantiates it, leaving the Runtime ready to
// Call.
func (r *Runtime) Instantiate(bin []byte) error {
	module, err := r.DecodeModule(bin)
	if err != nil {
		return err
	}
	return r.InstantiateModule(module)
}

// Call invokes the named exported function with args and returns its results:
// one value, or none for a void signature. Execution faults are terminal for
// the Runtime; see ErrRuntimeUnusable.
func (r *Runtime) Call(ctx context.Context, name string, args ...api.Value) ([]api.Value, error) {
	if r.engine == nil {
		return nil, errors.New("no module instantiated")
	}
	return r.engine.Call(ctx, name, args)
}
