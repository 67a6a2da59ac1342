package hci

import "encoding/binary"

// order wraps the little-endian byte order the Bluetooth Core Specification
// mandates for every multi-byte field on the wire, plus the odd-sized and
// address helpers the command/event tables need that encoding/binary does
// not provide directly.
type order struct{ binary.ByteOrder }

var le = order{binary.LittleEndian}

func (order) putUint8(b []byte, v uint8) { b[0] = v }
func (order) uint8(b []byte) uint8       { return b[0] }
func (order) int8(b []byte) int8         { return int8(b[0]) }

// putUint24 writes the low 24 bits of v as 3 little-endian bytes. Several
// LE commands (class of device, some timing fields) use 3-byte fields.
func (order) putUint24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}

func (order) uint24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// addr is a 48-bit Bluetooth device address, transmitted least-significant
// byte first (spec.md §3 "Address").
type addr [6]byte

func (order) putAddr(b []byte, a addr) {
	b[0], b[1], b[2], b[3], b[4], b[5] = a[0], a[1], a[2], a[3], a[4], a[5]
}

func (order) addr(b []byte) addr {
	var a addr
	copy(a[:], b[:6])
	return a
}

// String renders the address in the conventional colon-separated,
// most-significant-byte-first form used by hcitool/bluetoothctl.
func (a addr) String() string {
	return string([]byte{
		hexDigit(a[5] >> 4), hexDigit(a[5] & 0xf), ':',
		hexDigit(a[4] >> 4), hexDigit(a[4] & 0xf), ':',
		hexDigit(a[3] >> 4), hexDigit(a[3] & 0xf), ':',
		hexDigit(a[2] >> 4), hexDigit(a[2] & 0xf), ':',
		hexDigit(a[1] >> 4), hexDigit(a[1] & 0xf), ':',
		hexDigit(a[0] >> 4), hexDigit(a[0] & 0xf),
	})
}

func hexDigit(n byte) byte {
	n &= 0xf
	if n < 10 {
		return '0' + n
	}
	return 'a' + n - 10
}
