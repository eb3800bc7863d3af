// Package simtarget provides a canned in-process target: a little-endian
// memory image, CSG type descriptors matching what a debugger would
// report, and a symbol table whose codec accessors are implemented in Go.
//
// It exists so the name-reconstruction and traversal logic can be
// exercised against a fully controlled symbol table and address space
// instead of a live process. The cmd/inspect demo mode browses the same
// world the tests use.
package simtarget

import (
	"encoding/binary"
	"fmt"
)

// Image is a flat little-endian memory image mapped at a base address.
// Reads outside the mapped range fail, which is how tests provoke memory
// read faults mid-traversal.
type Image struct {
	base uint64
	buf  []byte
}

// NewImage maps size bytes of zeroed memory at base.
func NewImage(base uint64, size int) *Image {
	return &Image{base: base, buf: make([]byte, size)}
}

// ReadBytes implements memview.Space. The arithmetic must not overflow: a
// corrupt reference word can put addr anywhere in the 64-bit space.
func (im *Image) ReadBytes(addr uint64, n int) ([]byte, error) {
	off := addr - im.base
	if n < 0 || addr < im.base || off > uint64(len(im.buf)) || uint64(n) > uint64(len(im.buf))-off {
		return nil, fmt.Errorf("unmapped read of %d bytes at 0x%x", n, addr)
	}
	return im.buf[off : off+uint64(n)], nil
}

// PutU64 stores a word during image construction. Out-of-range stores
// panic: they are builder bugs, not target conditions.
func (im *Image) PutU64(addr, v uint64) {
	binary.LittleEndian.PutUint64(im.buf[addr-im.base:], v)
}

// Truncate shrinks the mapped range to n bytes, unmapping everything
// beyond it. Used to make previously valid addresses fault.
func (im *Image) Truncate(n int) {
	im.buf = im.buf[:n]
}

// Base returns the image's base address.
func (im *Image) Base() uint64 { return im.base }
