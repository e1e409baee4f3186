package codegen

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// execMem is one anonymous RX mapping holding a compiled function's
// machine code (spec §9's "owned executable memory"), allocated
// write-then-remap-execute rather than RWX, following the common W^X
// discipline: golang.org/x/sys/unix replaces the teacher's os.WriteFile
// + OS loader, since here the "file" never touches disk.
type execMem struct {
	data []byte
}

func allocExec(code []byte) (*execMem, error) {
	if len(code) == 0 {
		return nil, errInternal("compiled function has no code")
	}
	data, err := unix.Mmap(-1, 0, len(code), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("molang: mmap executable memory: %w", err)
	}
	copy(data, code)
	if err := unix.Mprotect(data, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("molang: mprotect executable memory: %w", err)
	}
	return &execMem{data: data}, nil
}

func (m *execMem) addr() uintptr { return uintptr(unsafe.Pointer(&m.data[0])) }

func (m *execMem) free() error { return unix.Munmap(m.data) }
