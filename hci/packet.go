package hci

import (
	"bufio"
	"fmt"
	"io"
)

// packetType is the single leading byte on the transport stream that tells
// the framer which header shape follows (spec.md §3 "Packet type tag").
// It is not part of the HCI packet itself.
type packetType uint8

const (
	packetCommand packetType = 0x01
	packetACL     packetType = 0x02
	packetSCO     packetType = 0x03
	packetEvent   packetType = 0x04
	packetVendor  packetType = 0xff
)

// ACL boundary/broadcast flags packed into the upper 4 bits of the 16-bit
// ACL header word (spec.md §6 "ACL header layout").
const (
	boundaryFirstNoFlush   uint8 = 0
	boundaryNextFragment   uint8 = 1
	boundaryFirstAutoFlush uint8 = 2
	boundaryComplete       uint8 = 3

	broadcastPointToPoint uint8 = 0
	broadcastBroadcast    uint8 = 1
)

// frame is one fully-reassembled HCI packet read from the transport, with
// the leading type tag stripped and interpreted.
type frame struct {
	typ     packetType
	payload []byte // header-stripped: command payload, ACL data, or event payload
	// header fields, populated per typ
	opcode        opcode // packetCommand
	handle        uint16 // packetACL: connection handle
	boundary      uint8  // packetACL
	broadcast     uint8  // packetACL
	eventCode     eventCode // packetEvent
}

// frameReader reassembles HCI packets from a byte stream that may deliver
// partial writes (spec.md §4.2 "Packet framer"). It never returns a frame
// whose payload is shorter than its declared length; a declared length
// that the stream cannot satisfy surfaces as an error, at which point the
// conservative policy (spec.md §4.2) is for the caller to close the
// transport, since HCI carries no resynchronization mark.
type frameReader struct {
	r *bufio.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{r: bufio.NewReaderSize(r, 4096)}
}

func (fr *frameReader) readFrame() (*frame, error) {
	tagBuf := make([]byte, 1)
	if _, err := io.ReadFull(fr.r, tagBuf); err != nil {
		return nil, err
	}
	typ := packetType(tagBuf[0])

	switch typ {
	case packetEvent:
		hdr := make([]byte, 2)
		if _, err := io.ReadFull(fr.r, hdr); err != nil {
			return nil, fmt.Errorf("hci: reading event header: %w", err)
		}
		code, plen := hdr[0], hdr[1]
		payload := make([]byte, plen)
		if _, err := io.ReadFull(fr.r, payload); err != nil {
			return nil, fmt.Errorf("hci: reading event payload (code 0x%02x, declared %d bytes): %w", code, plen, err)
		}
		return &frame{typ: typ, eventCode: eventCode(code), payload: payload}, nil

	case packetACL:
		hdr := make([]byte, 4)
		if _, err := io.ReadFull(fr.r, hdr); err != nil {
			return nil, fmt.Errorf("hci: reading ACL header: %w", err)
		}
		handleAndFlags := uint16(hdr[0]) | uint16(hdr[1])<<8
		dlen := uint16(hdr[2]) | uint16(hdr[3])<<8
		payload := make([]byte, dlen)
		if _, err := io.ReadFull(fr.r, payload); err != nil {
			return nil, fmt.Errorf("hci: reading ACL payload (declared %d bytes): %w", dlen, err)
		}
		return &frame{
			typ:       typ,
			handle:    handleAndFlags & 0x0fff,
			boundary:  uint8((handleAndFlags >> 12) & 0x3),
			broadcast: uint8((handleAndFlags >> 14) & 0x3),
			payload:   payload,
		}, nil

	case packetCommand:
		hdr := make([]byte, 3)
		if _, err := io.ReadFull(fr.r, hdr); err != nil {
			return nil, fmt.Errorf("hci: reading command header: %w", err)
		}
		op := opcode(uint16(hdr[0]) | uint16(hdr[1])<<8)
		plen := hdr[2]
		payload := make([]byte, plen)
		if _, err := io.ReadFull(fr.r, payload); err != nil {
			return nil, fmt.Errorf("hci: reading command payload (declared %d bytes): %w", plen, err)
		}
		return &frame{typ: typ, opcode: op, payload: payload}, nil

	default:
		return nil, fmt.Errorf("hci: unframeable packet type 0x%02x", byte(typ))
	}
}

// marshalCommand builds a complete outbound command packet: the 0x01 type
// tag, the 2-byte little-endian opcode, the 1-byte length, and the
// payload (spec.md §6 "Outbound packet layout"). len(payload) must be
// <= 255 (spec.md §3 "Invariants").
func marshalCommand(op opcode, payload []byte) ([]byte, error) {
	if len(payload) > 255 {
		return nil, fmt.Errorf("hci: command payload of %d bytes exceeds the 255-byte length field", len(payload))
	}
	b := make([]byte, 4+len(payload))
	b[0] = byte(packetCommand)
	b[1] = byte(op)
	b[2] = byte(op >> 8)
	b[3] = byte(len(payload))
	copy(b[4:], payload)
	return b, nil
}

// marshalACL builds a complete outbound ACL data packet (spec.md §6
// "Outbound packet layout", ACL row).
func marshalACL(handle uint16, boundary, broadcast uint8, data []byte) ([]byte, error) {
	if handle > 0x0fff {
		return nil, fmt.Errorf("hci: connection handle 0x%04x exceeds 12 bits", handle)
	}
	if len(data) > 0xffff {
		return nil, fmt.Errorf("hci: ACL payload of %d bytes exceeds the 16-bit length field", len(data))
	}
	headerWord := handle&0x0fff | uint16(boundary&0x3)<<12 | uint16(broadcast&0x3)<<14
	b := make([]byte, 5+len(data))
	b[0] = byte(packetACL)
	b[1] = byte(headerWord)
	b[2] = byte(headerWord >> 8)
	b[3] = byte(len(data))
	b[4] = byte(len(data) >> 8)
	copy(b[5:], data)
	return b, nil
}
