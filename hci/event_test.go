package hci

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatchDisconnectionComplete(t *testing.T) {
	r := NewEventRouter(NewDispatcher(), 4)
	f := &frame{
		typ:       packetEvent,
		eventCode: evtDisconnectionComplete,
		payload:   []byte{StatusSuccess, 0x0a, 0x00, StatusRemoteUserTerminatedConnection},
	}
	require.NoError(t, r.dispatch(f))

	ev := <-r.Disconnections()
	require.Equal(t, uint8(StatusSuccess), ev.Status)
	require.Equal(t, uint16(0x000a), ev.ConnectionHandle)
	require.Equal(t, uint8(StatusRemoteUserTerminatedConnection), ev.Reason)
	require.Equal(t, "Remote User Terminated Connection", ev.ReasonName())
}

// TestAdvertisingReportFanOut proves a single LE Advertising Report event
// carrying three device reports is delivered to the subscriber as three
// separate notifications, not one slice (spec.md §8 "advertising report
// fan-out").
func TestAdvertisingReportFanOut(t *testing.T) {
	r := NewEventRouter(NewDispatcher(), 8)

	num := 3
	payload := []byte{byte(leAdvertisingReport), byte(num)}
	// event types
	payload = append(payload, 0x00, 0x02, 0x04)
	// address types
	payload = append(payload, 0x00, 0x01, 0x00)
	// addresses (6 bytes each)
	for i := 0; i < num; i++ {
		addrBytes := []byte{byte(i), 0, 0, 0, 0, 0}
		payload = append(payload, addrBytes...)
	}
	// lengths
	payload = append(payload, 0x02, 0x00, 0x01)
	// data
	payload = append(payload, 0x01, 0x02) // report 0: 2 bytes
	// report 1: 0 bytes
	payload = append(payload, 0xaa) // report 2: 1 byte
	// rssi
	payload = append(payload, 0xc8, 0xc7, 0xc6) // -56, -57, -58

	f := &frame{typ: packetEvent, eventCode: evtLEMeta, payload: payload}
	require.NoError(t, r.dispatch(f))

	reports := make([]AdvertisingReport, 0, num)
	for i := 0; i < num; i++ {
		reports = append(reports, <-r.AdvertisingReports())
	}
	require.Len(t, reports, 3)
	require.Equal(t, uint8(0x00), reports[0].EventType)
	require.Equal(t, []byte{0x01, 0x02}, reports[0].Data)
	require.Equal(t, uint8(0x02), reports[1].EventType)
	require.Empty(t, reports[1].Data)
	require.Equal(t, uint8(0x04), reports[2].EventType)
	require.Equal(t, []byte{0xaa}, reports[2].Data)
	require.Equal(t, int8(-56), reports[0].RSSI)
}

func TestDispatchCommandCompleteWithoutPendingCommandIsIgnored(t *testing.T) {
	r := NewEventRouter(NewDispatcher(), 4)
	f := &frame{
		typ:       packetEvent,
		eventCode: evtCommandComplete,
		payload:   []byte{0x01, byte(opReset), byte(opReset >> 8), StatusSuccess},
	}
	require.NoError(t, r.dispatch(f))
}

func TestDispatchUnrecognizedEventIsNotAnError(t *testing.T) {
	r := NewEventRouter(NewDispatcher(), 4)
	f := &frame{typ: packetEvent, eventCode: evtHardwareError, payload: []byte{0x01}}
	require.NoError(t, r.dispatch(f))
}
