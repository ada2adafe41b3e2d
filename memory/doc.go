// Package memory loads and stores bit records in WebAssembly linear memory.
//
// WrapMemory and WrapAllocator adapt wazero's api.Memory and an exported
// cabi_realloc function to the bitparse interfaces. Load, Store and Alloc
// then move serialized records across the guest boundary without an
// intermediate copy on the read side.
package memory
