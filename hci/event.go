package hci

import "fmt"

// eventCode identifies an HCI event packet's type, the second byte of the
// event header. Grounded on the teacher's eventCode table (_examples/
// paypal-gatt/linux/event.go), narrowed to the events an LE-only host
// actually receives.
type eventCode uint8

const (
	evtDisconnectionComplete               eventCode = 0x05
	evtEncryptionChange                    eventCode = 0x08
	evtReadRemoteVersionInformationComplete eventCode = 0x0c
	evtCommandComplete                     eventCode = 0x0e
	evtCommandStatus                       eventCode = 0x0f
	evtHardwareError                       eventCode = 0x10
	evtNumberOfCompletedPackets            eventCode = 0x13
	evtDataBufferOverflow                  eventCode = 0x1a
	evtEncryptionKeyRefreshComplete         eventCode = 0x30
	evtLEMeta                              eventCode = 0x3e
	evtAuthenticatedPayloadTimeoutExpired   eventCode = 0x57
)

var eventName = map[eventCode]string{
	evtDisconnectionComplete:               "Disconnection Complete",
	evtEncryptionChange:                    "Encryption Change",
	evtReadRemoteVersionInformationComplete: "Read Remote Version Information Complete",
	evtCommandComplete:                     "Command Complete",
	evtCommandStatus:                       "Command Status",
	evtHardwareError:                       "Hardware Error",
	evtNumberOfCompletedPackets:            "Number Of Completed Packets",
	evtDataBufferOverflow:                  "Data Buffer Overflow",
	evtEncryptionKeyRefreshComplete:         "Encryption Key Refresh Complete",
	evtLEMeta:                              "LE Meta Event",
	evtAuthenticatedPayloadTimeoutExpired:   "Authenticated Payload Timeout Expired",
}

func (c eventCode) String() string {
	if name, ok := eventName[c]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Event (0x%02x)", uint8(c))
}

// DisconnectionCompleteEvent is the decoded parameters of a Disconnection
// Complete event. Reason is delivered alongside its canonical name, per
// spec.md §4.4's requirement that subscribers receive the reason decoded
// through the same status table §4.3 uses for controller errors.
type DisconnectionCompleteEvent struct {
	Status           uint8
	ConnectionHandle uint16
	Reason           uint8
}

// ReasonName returns the canonical Bluetooth Core Specification name for
// Reason, e.g. "Remote User Terminated Connection".
func (e DisconnectionCompleteEvent) ReasonName() string { return StatusName(e.Reason) }

func (e *DisconnectionCompleteEvent) unmarshal(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: DisconnectionComplete event", ErrInvalidPayloadSize)
	}
	e.Status = le.uint8(b[0:])
	e.ConnectionHandle = le.Uint16(b[1:]) & 0x0fff
	e.Reason = le.uint8(b[3:])
	return nil
}

// EncryptionChangeEvent is the decoded parameters of an Encryption Change
// event.
type EncryptionChangeEvent struct {
	Status           uint8
	ConnectionHandle uint16
	EncryptionEnabled uint8
}

func (e *EncryptionChangeEvent) unmarshal(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: EncryptionChange event", ErrInvalidPayloadSize)
	}
	e.Status = le.uint8(b[0:])
	e.ConnectionHandle = le.Uint16(b[1:]) & 0x0fff
	e.EncryptionEnabled = le.uint8(b[3:])
	return nil
}

// NumberOfCompletedPacketsEvent reports, per connection handle, how many
// ACL/SCO packets the controller has freed from its buffer. This client
// decodes and forwards it but implements no consuming flow-control layer
// (spec.md §9 Open Questions; SPEC_FULL.md §11).
type NumberOfCompletedPacketsEvent struct {
	Handles  []uint16
	NumCompleted []uint16
}

func (e *NumberOfCompletedPacketsEvent) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: NumberOfCompletedPackets event", ErrInvalidPayloadSize)
	}
	n := int(b[0])
	if len(b) < 1+4*n {
		return fmt.Errorf("%w: NumberOfCompletedPackets event", ErrInvalidPayloadSize)
	}
	e.Handles = make([]uint16, n)
	e.NumCompleted = make([]uint16, n)
	off := 1
	for i := 0; i < n; i++ {
		e.Handles[i] = le.Uint16(b[off:]) & 0x0fff
		off += 2
	}
	for i := 0; i < n; i++ {
		e.NumCompleted[i] = le.Uint16(b[off:])
		off += 2
	}
	return nil
}

// EventRouter is the C4 component: it classifies inbound event packets,
// forwards CommandComplete/CommandStatus to the C3 dispatcher, and fans
// everything else out to per-family typed subscriptions (spec.md §6
// "strongly-typed subscriptions instead of a string-keyed emitter").
// Grounded on the teacher's event dispatch table shape (_examples/
// paypal-gatt/linux/event.go's evtHandlers map), replacing its
// interface{}-handler registry with fixed buffered channels per event
// family.
type EventRouter struct {
	dispatcher *Dispatcher

	disconnection chan DisconnectionCompleteEvent
	encryption    chan EncryptionChangeEvent
	numCompleted  chan NumberOfCompletedPacketsEvent

	le *leEventRouter
}

// NewEventRouter wires a C4 router to the C3 dispatcher it forwards command
// completions to. bufSize sizes every subscription channel; a slow
// subscriber drops events rather than blocking the read loop once its
// buffer fills (spec.md §5 "the router never blocks on a subscriber").
func NewEventRouter(d *Dispatcher, bufSize int) *EventRouter {
	if bufSize <= 0 {
		bufSize = 16
	}
	return &EventRouter{
		dispatcher:    d,
		disconnection: make(chan DisconnectionCompleteEvent, bufSize),
		encryption:    make(chan EncryptionChangeEvent, bufSize),
		numCompleted:  make(chan NumberOfCompletedPacketsEvent, bufSize),
		le:            newLEEventRouter(bufSize),
	}
}

// Disconnections returns the subscription for Disconnection Complete events.
func (r *EventRouter) Disconnections() <-chan DisconnectionCompleteEvent { return r.disconnection }

// EncryptionChanges returns the subscription for Encryption Change events.
func (r *EventRouter) EncryptionChanges() <-chan EncryptionChangeEvent { return r.encryption }

// CompletedPackets returns the subscription for Number Of Completed
// Packets events.
func (r *EventRouter) CompletedPackets() <-chan NumberOfCompletedPacketsEvent { return r.numCompleted }

// dispatch classifies one event frame and routes it. It never blocks on a
// full subscription channel; a non-blocking send drops the event rather
// than stall the single reader goroutine that drives both C3 completion
// and C4 fan-out (spec.md §5 "single-threaded cooperative" concurrency
// model -- there is no second goroutine to pick up a blocked send).
func (r *EventRouter) dispatch(f *frame) error {
	switch f.eventCode {
	case evtCommandComplete:
		return r.dispatchCommandComplete(f.payload)
	case evtCommandStatus:
		return r.dispatchCommandStatus(f.payload)
	case evtDisconnectionComplete:
		var ev DisconnectionCompleteEvent
		if err := ev.unmarshal(f.payload); err != nil {
			return err
		}
		trySend(r.disconnection, ev)
		return nil
	case evtEncryptionChange:
		var ev EncryptionChangeEvent
		if err := ev.unmarshal(f.payload); err != nil {
			return err
		}
		trySend(r.encryption, ev)
		return nil
	case evtNumberOfCompletedPackets:
		var ev NumberOfCompletedPacketsEvent
		if err := ev.unmarshal(f.payload); err != nil {
			return err
		}
		trySend(r.numCompleted, ev)
		return nil
	case evtLEMeta:
		return r.le.dispatch(f.payload)
	default:
		// Hardware errors, buffer overflow, and the rest of the BR/EDR
		// event set this LE-only client doesn't act on: classified but
		// silently ignored (spec.md §6 "unrecognized events are not an
		// error").
		return nil
	}
}

// dispatchCommandComplete parses the fixed 3-byte CommandComplete prefix
// (Num_HCI_Command_Packets, opcode) and the status byte every
// CommandComplete's return parameters begin with, then hands the rest to
// the matching pending command (spec.md §4.1).
func (r *EventRouter) dispatchCommandComplete(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: CommandComplete event", ErrInvalidPayloadSize)
	}
	op := opcode(le.Uint16(b[1:]))
	status := b[3]
	returnParams := b[4:]
	handle := handleFromReturnParams(op, returnParams)
	r.dispatcher.completeCommandComplete(op, handle, status, returnParams)
	return nil
}

// dispatchCommandStatus parses the fixed 4-byte CommandStatus event
// (status, Num_HCI_Command_Packets, opcode).
func (r *EventRouter) dispatchCommandStatus(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: CommandStatus event", ErrInvalidPayloadSize)
	}
	status := b[0]
	op := opcode(le.Uint16(b[2:]))
	r.dispatcher.completeCommandStatus(op, status)
	return nil
}

// handleFromReturnParams extracts the connection handle a CommandComplete's
// return parameters lead with, for the handful of commands the dispatcher
// demultiplexes by handle (spec.md §8). Every other opcode returns nil and
// matches on opcode alone.
func handleFromReturnParams(op opcode, b []byte) *uint16 {
	switch op {
	case opLEReadChannelMap, opReadRSSI, opLEReadPHY, opLESetDataLength:
		if len(b) < 2 {
			return nil
		}
		h := le.Uint16(b) & 0x0fff
		return &h
	default:
		return nil
	}
}

// trySend delivers v without blocking, dropping it if ch's buffer is full.
func trySend[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}
