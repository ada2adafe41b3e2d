package memory

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/bitparse"
	"github.com/wippyai/bitparse/errors"
)

// WrapMemory wraps a wazero api.Memory to implement bitparse.Memory.
func WrapMemory(mem api.Memory) bitparse.Memory {
	if mem == nil {
		return nil
	}
	return &Wrapper{Mem: mem}
}

// WrapAllocator wraps a wazero api.Function to implement bitparse.Allocator.
func WrapAllocator(ctx context.Context, fn api.Function) bitparse.Allocator {
	if fn == nil {
		return nil
	}
	return &AllocatorWrapper{Ctx: ctx, Fn: fn}
}

// Wrapper adapts wazero api.Memory to the bitparse.Memory interface.
type Wrapper struct {
	Mem api.Memory
}

// Read returns a view of length bytes at offset. The slice aliases guest memory.
func (m *Wrapper) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, outOfBounds("read", offset, length)
	}
	return data, nil
}

// Write copies data into memory at offset.
func (m *Wrapper) Write(offset uint32, data []byte) error {
	if !m.Mem.Write(offset, data) {
		return outOfBounds("write", offset, uint32(len(data)))
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *Wrapper) Size() uint32 {
	return m.Mem.Size()
}

func outOfBounds(op string, offset, length uint32) error {
	return errors.New(errors.PhaseMemory, errors.KindOutOfRange).
		Value(offset).
		Detail("%s out of bounds: offset=%d, length=%d", op, offset, length).
		Build()
}

// AllocatorWrapper adapts wazero api.Function (cabi_realloc) to bitparse.Allocator.
type AllocatorWrapper struct {
	Ctx context.Context
	Fn  api.Function
}

// Alloc allocates memory using cabi_realloc.
func (a *AllocatorWrapper) Alloc(size, align uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseMemory, errors.KindOutOfRange, err, "allocation failed")
	}
	if len(results) == 0 {
		return 0, errors.New(errors.PhaseMemory, errors.KindOutOfRange).
			Detail("allocation returned no result").
			Build()
	}
	return uint32(results[0]), nil
}

// Free deallocates memory using cabi_realloc.
func (a *AllocatorWrapper) Free(ptr, size, align uint32) {
	_, _ = a.Fn.Call(a.Ctx, uint64(ptr), uint64(size), uint64(align), 0)
}
