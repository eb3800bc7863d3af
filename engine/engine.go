package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/csgtools/csd-inspect/errors"
)

// Config holds configuration for target creation.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// Name names the instantiated module. Empty instantiates anonymously.
	Name string
}

// Target is a running WebAssembly image. It exposes the guest's linear
// memory for value decoding and its exported functions for accessor calls.
type Target struct {
	runtime wazero.Runtime
	module  api.Module
	memory  api.Memory
	ctx     context.Context
}

// New instantiates a core module from raw wasm bytes and wraps it as an
// inspection target. The module must export its linear memory.
func New(ctx context.Context, wasmBytes []byte) (*Target, error) {
	return NewWithConfig(ctx, wasmBytes, nil)
}

// NewWithConfig creates a target with custom configuration.
func NewWithConfig(ctx context.Context, wasmBytes []byte, cfg *Config) (*Target, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, errors.InvalidTarget("compile module", err)
	}

	// Checked on the compiled module: an instance without memory reports a
	// typed-nil api.Memory, which a plain nil check would let through.
	if len(compiled.ExportedMemories()) == 0 {
		_ = runtime.Close(ctx)
		return nil, errors.InvalidTarget("module exports no memory", nil)
	}

	modConfig := wazero.NewModuleConfig()
	if cfg != nil && cfg.Name != "" {
		modConfig = modConfig.WithName(cfg.Name)
	} else {
		modConfig = modConfig.WithName("")
	}

	instance, err := runtime.InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, errors.InvalidTarget("instantiate module", err)
	}

	mem := instance.Memory()

	Logger().Info("target instantiated",
		zap.Int("wasm_bytes", len(wasmBytes)),
		zap.Uint32("memory_bytes", mem.Size()))

	return &Target{runtime: runtime, module: instance, memory: mem, ctx: ctx}, nil
}

// Close releases the runtime and the instantiated module.
func (t *Target) Close(ctx context.Context) error {
	return t.runtime.Close(ctx)
}

// ReadBytes copies n bytes of guest memory starting at addr. It implements
// memview.Space; addresses are guest linear-memory offsets.
func (t *Target) ReadBytes(addr uint64, n int) ([]byte, error) {
	if n < 0 || addr > math.MaxUint32 || uint64(n) > math.MaxUint32 {
		return nil, fmt.Errorf("read out of range: offset=%#x, length=%d", addr, n)
	}
	data, ok := t.memory.Read(uint32(addr), uint32(n))
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%#x, length=%d", addr, n)
	}
	// Read returns a view of guest memory; callers keep decoded bytes
	// across guest calls, so detach.
	return append([]byte(nil), data...), nil
}

// MemorySize returns the current guest memory size in bytes.
func (t *Target) MemorySize() uint32 {
	return t.memory.Size()
}
