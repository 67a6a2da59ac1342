package hci

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// pipeTransport returns a connected in-memory net.Conn pair so Host can
// drive its real read loop and write path against a fake controller.
func pipeTransport(t *testing.T) (hostSide, controllerSide net.Conn) {
	t.Helper()
	hostSide, controllerSide = net.Pipe()
	t.Cleanup(func() {
		hostSide.Close()
		controllerSide.Close()
	})
	return hostSide, controllerSide
}

func writeCommandComplete(t *testing.T, conn net.Conn, op opcode, status uint8, extra ...byte) {
	t.Helper()
	rp := append([]byte{status}, extra...)
	payload := append([]byte{0x01, byte(op), byte(op >> 8)}, rp...)
	pkt := append([]byte{byte(packetEvent), byte(evtCommandComplete), byte(len(payload))}, payload...)
	_, err := conn.Write(pkt)
	require.NoError(t, err)
}

func TestSendBusyRejectsSecondCommandWithoutWriting(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	done := make(chan error, 1)
	go func() {
		_, err := controllerSide.Read(make([]byte, 4)) // consume the Reset command bytes
		done <- err
	}()

	first := make(chan error, 1)
	go func() {
		first <- h.Send(context.Background(), Reset{}, nil)
	}()

	<-done // Reset's bytes have hit the wire; dispatcher is now Pending
	time.Sleep(10 * time.Millisecond)

	err := h.Send(context.Background(), Reset{}, nil)
	require.ErrorIs(t, err, ErrBusy)

	writeCommandComplete(t, controllerSide, opReset, StatusSuccess)
	require.NoError(t, <-first)
}

func TestSendTimesOutAndRecovers(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide, WithTimeout(20*time.Millisecond))
	defer h.Close()

	go func() { controllerSide.Read(make([]byte, 4)) }() // swallow the command, never reply

	err := h.Send(context.Background(), Reset{}, nil)
	require.ErrorIs(t, err, ErrTimeout)

	// The slot must be free again: a second command can proceed.
	go func() {
		controllerSide.Read(make([]byte, 4))
		writeCommandComplete(t, controllerSide, opReset, StatusSuccess)
	}()
	require.NoError(t, h.Send(context.Background(), Reset{}, nil))
}

func TestSendSurfacesControllerError(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	go func() {
		controllerSide.Read(make([]byte, 4))
		writeCommandComplete(t, controllerSide, opReset, StatusCommandDisallowed)
	}()

	err := h.Send(context.Background(), Reset{}, nil)
	var cerr *ControllerError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, uint8(StatusCommandDisallowed), cerr.Status)
}

// TestSendDemultiplexesByConnectionHandle sends two LeReadChannelMap calls
// concurrently is not possible under the single-slot discipline, so this
// instead proves that a CommandComplete whose handle doesn't match the
// pending command is ignored rather than mis-delivered (spec.md §8 "handle
// demultiplexing").
func TestSendDemultiplexesByConnectionHandle(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	go func() {
		readFull(controllerSide, make([]byte, 6)) // LeReadChannelMap command bytes
		// A stale reply for a different handle must not satisfy this wait.
		writeCommandComplete(t, controllerSide, opLEReadChannelMap, StatusSuccess,
			0x0b, 0x00, 0x1f, 0xff, 0xff, 0xff, 0xff)
		time.Sleep(10 * time.Millisecond)
		writeCommandComplete(t, controllerSide, opLEReadChannelMap, StatusSuccess,
			0x0a, 0x00, 0x1f, 0xff, 0xff, 0xff, 0xff)
	}()

	var rp LeReadChannelMapRP
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := h.Send(ctx, LeReadChannelMap{ConnectionHandle: 0x000a}, &rp)
	require.NoError(t, err)
	require.Equal(t, uint16(0x000a), rp.ConnectionHandle)
}

// TestSendLeSetDataLengthDemultiplexesByConnectionHandle proves the same
// stale-reply hazard fixed for LeReadChannelMap above also holds for
// LeSetDataLength, another handle-carrying completion this client issues
// (spec.md §4.3).
func TestSendLeSetDataLengthDemultiplexesByConnectionHandle(t *testing.T) {
	hostSide, controllerSide := pipeTransport(t)
	h := NewHost(hostSide)
	defer h.Close()

	go func() {
		readFull(controllerSide, make([]byte, 10)) // LeSetDataLength command bytes
		// A stale reply for a different handle must not satisfy this wait.
		writeCommandComplete(t, controllerSide, opLESetDataLength, StatusSuccess, 0x0b, 0x00)
		time.Sleep(10 * time.Millisecond)
		writeCommandComplete(t, controllerSide, opLESetDataLength, StatusSuccess, 0x0a, 0x00)
	}()

	var rp LeSetDataLengthRP
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := h.Send(ctx, LeSetDataLength{ConnectionHandle: 0x000a, TxOctets: 27, TxTime: 328}, &rp)
	require.NoError(t, err)
	require.Equal(t, uint16(0x000a), rp.ConnectionHandle)
}
