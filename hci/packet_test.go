package hci

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalCommandRoundTrip(t *testing.T) {
	pkt, err := marshalCommand(opReset, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x03, 0x0c, 0x00}, pkt)

	fr := newFrameReader(bytes.NewReader(pkt))
	f, err := fr.readFrame()
	require.NoError(t, err)
	require.Equal(t, packetCommand, f.typ)
	require.Equal(t, opReset, f.opcode)
	require.Empty(t, f.payload)
}

func TestMarshalCommandRejectsOversizedPayload(t *testing.T) {
	_, err := marshalCommand(opReset, make([]byte, 256))
	require.Error(t, err)
}

func TestMarshalACLRoundTrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	pkt, err := marshalACL(0x0040, boundaryFirstNoFlush, broadcastPointToPoint, data)
	require.NoError(t, err)

	fr := newFrameReader(bytes.NewReader(pkt))
	f, err := fr.readFrame()
	require.NoError(t, err)
	require.Equal(t, packetACL, f.typ)
	require.Equal(t, uint16(0x0040), f.handle)
	require.Equal(t, boundaryFirstNoFlush, f.boundary)
	require.Equal(t, data, f.payload)
}

func TestMarshalACLRejectsHandleOverflow(t *testing.T) {
	_, err := marshalACL(0x1000, boundaryComplete, broadcastPointToPoint, nil)
	require.Error(t, err)
}

// TestReadFrameEventRoundTrip exercises the Reset CommandComplete wire
// encoding spec.md §8 names directly: 04 0E 04 01 03 0C 00.
func TestReadFrameEventRoundTrip(t *testing.T) {
	wire := []byte{0x04, 0x0e, 0x04, 0x01, byte(opReset), byte(opReset >> 8), 0x00}
	fr := newFrameReader(bytes.NewReader(wire))
	f, err := fr.readFrame()
	require.NoError(t, err)
	require.Equal(t, packetEvent, f.typ)
	require.Equal(t, evtCommandComplete, f.eventCode)
	require.Equal(t, []byte{0x01, byte(opReset), byte(opReset >> 8), 0x00}, f.payload)
}

// TestReadFrameSurvivesPartialWrites feeds the stream one byte at a time
// through an io.Reader that only ever returns what's been written so far,
// proving the framer buffers across short reads instead of assuming a
// frame arrives in one Read call (spec.md §4.2 "partial-stream buffering").
func TestReadFrameSurvivesPartialWrites(t *testing.T) {
	wire := []byte{0x04, 0x0e, 0x04, 0x01, byte(opReset), byte(opReset >> 8), 0x00}
	r, w := io.Pipe()
	go func() {
		for _, b := range wire {
			w.Write([]byte{b})
		}
		w.Close()
	}()
	fr := newFrameReader(r)
	f, err := fr.readFrame()
	require.NoError(t, err)
	require.Equal(t, evtCommandComplete, f.eventCode)
}

// TestReadFrameErrorsOnTruncatedStream checks the "malformed frame" policy:
// a declared length the stream cannot satisfy surfaces as an error rather
// than blocking forever or returning a short frame (spec.md §4.2).
func TestReadFrameErrorsOnTruncatedStream(t *testing.T) {
	wire := []byte{0x04, 0x0e, 0x04, 0x01} // declares 4 bytes, only 1 follows
	fr := newFrameReader(bytes.NewReader(wire))
	_, err := fr.readFrame()
	require.Error(t, err)
}

func TestReadFrameRejectsUnknownPacketType(t *testing.T) {
	fr := newFrameReader(bytes.NewReader([]byte{0x09}))
	_, err := fr.readFrame()
	require.Error(t, err)
}
