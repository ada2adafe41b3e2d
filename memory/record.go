package memory

import (
	"fmt"
	"math"

	"github.com/wippyai/bitparse"
	"github.com/wippyai/bitparse/bitview"
	"github.com/wippyai/bitparse/errors"
	"github.com/wippyai/bitparse/schema"
)

// Load parses one record of s from the ByteLen bytes at offset.
func Load(mem bitparse.Memory, s *schema.Schema, offset uint32) (*schema.Record, error) {
	data, err := mem.Read(offset, uint32(s.ByteLen()))
	if err != nil {
		return nil, err
	}
	return s.Parse(data)
}

// LoadPacked parses count records stored back to back without byte
// padding between them, starting at offset.
func LoadPacked(mem bitparse.Memory, s *schema.Schema, offset uint32, count int) ([]*schema.Record, error) {
	if count < 0 {
		return nil, errors.InvalidArgument(errors.PhaseMemory, []string{s.Name()}, "negative record count")
	}
	if s.Bits() > 0 && uint64(count) > (math.MaxUint32*8)/uint64(s.Bits()) {
		return nil, errors.InvalidArgument(errors.PhaseMemory, []string{s.Name()},
			fmt.Sprintf("%d records of %d bits exceed the 32-bit address space", count, s.Bits()))
	}
	length := (uint64(count)*uint64(s.Bits()) + 7) / 8
	data, err := mem.Read(offset, uint32(length))
	if err != nil {
		return nil, err
	}

	out := make([]*schema.Record, 0, count)
	v := bitview.New(data)
	for i := 0; i < count; i++ {
		rec, rest, err := s.ParseView(v)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
		v = rest
	}
	return out, nil
}

// Store serializes r at offset and returns the number of bytes written.
func Store(mem bitparse.Memory, r *schema.Record, offset uint32) (uint32, error) {
	data, err := r.Bytes()
	if err != nil {
		return 0, err
	}
	if err := mem.Write(offset, data); err != nil {
		return 0, err
	}
	return uint32(len(data)), nil
}

// Alloc allocates room for r with alloc, stores it there and returns the
// guest pointer. The allocation is freed if the store fails.
func Alloc(mem bitparse.Memory, alloc bitparse.Allocator, r *schema.Record) (uint32, error) {
	size := uint32(r.Schema().ByteLen())
	ptr, err := alloc.Alloc(size, 1)
	if err != nil {
		return 0, err
	}
	if _, err := Store(mem, r, ptr); err != nil {
		alloc.Free(ptr, size, 1)
		return 0, err
	}
	return ptr, nil
}
