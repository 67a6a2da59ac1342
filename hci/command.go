package hci

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultCommandTimeout is the deadline applied to a command when the
// caller doesn't supply a context deadline of its own (spec.md §4.3).
const DefaultCommandTimeout = 2000 * time.Millisecond

// cmdParam is satisfied by every command parameter type in commands_*.go.
// Grounded on the teacher's cmdParam interface (_examples/paypal-gatt/
// linux/cmd.go) with the same three-method shape: the opcode to send, the
// payload length to pre-size the buffer, and a marshal that fills it.
type cmdParam interface {
	opcode() opcode
	len() int
	marshal(b []byte)
}

// decoder is satisfied by every *RP (return parameter) type in
// commands_*.go. A command with no meaningful return value has no decoder;
// Send's caller passes nil.
type decoder interface {
	unmarshal(b []byte) error
}

// pendingState is the C3 state machine named in spec.md §5
// ("single pending-command-slot discipline").
type pendingState uint8

const (
	stateIdle pendingState = iota
	statePending
)

// pending describes the one command the dispatcher is waiting on. Matching
// a CommandComplete or CommandStatus event against it is opcode equality
// plus, for commands whose completion event carries a connection handle
// (e.g. LeReadChannelMap), handle equality (spec.md §5 "Correlation").
type pending struct {
	opcode   opcode
	handle   *uint16
	rp       decoder
	deadline time.Time
	done     chan error
}

// Dispatcher is the C3 component: it holds the single outstanding-command
// slot and turns events aimed at it into completions. It never touches the
// transport directly -- Host.Send writes the marshaled packet and hands the
// Dispatcher the pending record to wait on.
type Dispatcher struct {
	mu      sync.Mutex
	state   pendingState
	current *pending
}

// NewDispatcher returns an idle C3 dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{state: stateIdle}
}

// begin transitions Idle -> Pending and returns the pending record the
// caller must wait on. It returns ErrBusy without blocking if a command is
// already outstanding (spec.md §3 "Invariants": never silently queue or
// reorder).
func (d *Dispatcher) begin(op opcode, handle *uint16, rp decoder, deadline time.Time) (*pending, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == statePending {
		return nil, ErrBusy
	}
	p := &pending{opcode: op, handle: handle, rp: rp, deadline: deadline, done: make(chan error, 1)}
	d.state = statePending
	d.current = p
	return p, nil
}

// finish transitions Pending -> Idle. Called exactly once per begin, either
// by a matching completion, a timeout, or transport closure.
func (d *Dispatcher) finish(p *pending) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == p {
		d.current = nil
		d.state = stateIdle
	}
}

// matches reports whether a CommandComplete/CommandStatus event with the
// given opcode and (for handle-carrying completions) connection handle
// corresponds to the pending command. Called from the event-router
// goroutine, so it takes the lock itself.
func (d *Dispatcher) matches(op opcode, handle *uint16) *pending {
	d.mu.Lock()
	defer d.mu.Unlock()
	p := d.current
	if p == nil || p.opcode != op {
		return nil
	}
	if p.handle != nil {
		if handle == nil || *handle != *p.handle {
			return nil
		}
	}
	return p
}

// completeCommandComplete delivers a CommandComplete event's return
// parameters to the pending command, if it matches, and releases the slot.
// status is the embedded status byte CommandComplete always carries
// (spec.md §4.1 "every CommandComplete begins with a status byte").
func (d *Dispatcher) completeCommandComplete(op opcode, handle *uint16, status uint8, returnParams []byte) bool {
	p := d.matches(op, handle)
	if p == nil {
		return false
	}
	defer d.finish(p)
	if status != StatusSuccess {
		p.done <- &ControllerError{Opcode: op, Status: status}
		return true
	}
	if p.rp != nil {
		if err := p.rp.unmarshal(returnParams); err != nil {
			p.done <- err
			return true
		}
	}
	p.done <- nil
	return true
}

// completeCommandStatus delivers a CommandStatus event to the pending
// command. CommandStatus never carries return parameters: success here
// only means the controller accepted the command and a later event (an LE
// meta sub-event, DisconnectionComplete, etc.) will report the outcome
// (spec.md §4.1 "CommandStatus vs CommandComplete").
func (d *Dispatcher) completeCommandStatus(op opcode, status uint8) bool {
	p := d.matches(op, nil)
	if p == nil {
		return false
	}
	defer d.finish(p)
	if status != StatusSuccess {
		p.done <- &ControllerError{Opcode: op, Status: status}
		return true
	}
	p.done <- nil
	return true
}

// closeWith fails the pending command, if any, with err. Called when the
// transport closes out from under an outstanding command.
func (d *Dispatcher) closeWith(err error) {
	d.mu.Lock()
	p := d.current
	d.current = nil
	d.state = stateIdle
	d.mu.Unlock()
	if p != nil {
		p.done <- err
	}
}

// wait blocks until p.done fires or ctx is done, releasing the slot either
// way. On context deadline exceeded it reports ErrTimeout, matching
// spec.md §4.3's distinction between a caller-cancelled wait and the
// default 2000ms protocol timeout (both release the slot identically).
func (d *Dispatcher) wait(ctx context.Context, p *pending) error {
	select {
	case err := <-p.done:
		return err
	case <-ctx.Done():
		d.finish(p)
		if ctx.Err() == context.DeadlineExceeded {
			return ErrTimeout
		}
		return ctx.Err()
	}
}

// handleOf extracts the connection handle from command parameter types
// whose CommandComplete return carries one, so the dispatcher can demux by
// handle in addition to opcode (spec.md §8 "handle demultiplexing"). Only
// commands with a meaningful handle correlation need an entry; everything
// else matches on opcode alone.
func handleOf(c cmdParam) *uint16 {
	switch v := c.(type) {
	case LeReadChannelMap:
		return &v.ConnectionHandle
	case ReadRSSI:
		return &v.ConnectionHandle
	case LeReadPHY:
		return &v.ConnectionHandle
	case LeSetDataLength:
		return &v.ConnectionHandle
	default:
		return nil
	}
}

// validateLen enforces spec.md §3's payload size invariant before a command
// is ever written to the transport: a cmdParam's declared len() must match
// the bytes its marshal actually needs, and must fit the 1-byte HCI length
// field.
func validateLen(c cmdParam) error {
	n := c.len()
	if n < 0 || n > 255 {
		return fmt.Errorf("hci: %s declares invalid payload length %d", c.opcode(), n)
	}
	return nil
}
