package hci

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHostSendAfterCloseReturnsErrClosed(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	require.NoError(t, h.Close())
	controllerSide.Close()

	err := h.Send(context.Background(), Reset{}, nil)
	require.ErrorIs(t, err, ErrClosed)
}

func TestHostACLInSurfacesInboundData(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	go func() {
		pkt, err := marshalACL(0x0005, boundaryComplete, broadcastPointToPoint, []byte{0x01, 0x02})
		require.NoError(t, err)
		controllerSide.Write(pkt)
	}()

	select {
	case f := <-h.ACLIn():
		require.Equal(t, uint16(0x0005), f.ConnectionHandle)
		require.Equal(t, []byte{0x01, 0x02}, f.Data)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ACL frame")
	}
}

func TestHostResetIssuesExpectedSequence(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	expected := []opcode{opReset, opSetEventMask, opLESetEventMask, opWriteLEHostSupported, opLEReadBufferSize}
	go func() {
		for _, op := range expected {
			hdr := make([]byte, 4)
			readFull(controllerSide, hdr)
			plen := hdr[3]
			readFull(controllerSide, make([]byte, plen))
			switch op {
			case opLEReadBufferSize:
				writeCommandComplete(t, controllerSide, op, StatusSuccess, 0xfb, 0x00, 0x08)
			default:
				writeCommandComplete(t, controllerSide, op, StatusSuccess)
			}
		}
	}()

	require.NoError(t, h.Reset(context.Background()))
}

func readFull(conn interface{ Read([]byte) (int, error) }, b []byte) {
	for n := 0; n < len(b); {
		m, err := conn.Read(b[n:])
		if err != nil {
			return
		}
		n += m
	}
}
