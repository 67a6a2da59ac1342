package hci

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// ACLFrame is one inbound ACL data packet, header-parsed but payload
// opaque: L2CAP/ATT/GATT interpretation is out of this client's scope
// (spec.md §9 Non-goals). Exposed so a caller building that layer on top
// doesn't have to reimplement C2's framing.
type ACLFrame struct {
	ConnectionHandle uint16
	Boundary         uint8
	Broadcast        uint8
	Data             []byte
}

// Host wires the C1 codec, C2 framer, C3 dispatcher, and C4 router
// together over a transport, the role the teacher's HCI struct plays
// (_examples/paypal-gatt/linux/hci.go), generalized from a BlueZ raw
// socket to any io.ReadWriteCloser byte stream (spec.md §6 "Transport is
// a byte stream consumer").
type Host struct {
	transport io.ReadWriteCloser

	dispatcher *Dispatcher
	events     *EventRouter

	timeout     time.Duration
	log         Logger
	eventBuffer int

	writeMu sync.Mutex

	aclIn chan ACLFrame

	closeOnce sync.Once
	closed    chan struct{}
	readErr   error
	readErrMu sync.Mutex
}

// NewHost starts the read loop over transport and returns a ready Host.
// Callers must call Close to stop the read loop and release the
// transport.
func NewHost(transport io.ReadWriteCloser, opts ...Option) *Host {
	h := &Host{
		transport:   transport,
		dispatcher:  NewDispatcher(),
		timeout:     DefaultCommandTimeout,
		log:         noopLogger{},
		eventBuffer: 16,
		closed:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.events = NewEventRouter(h.dispatcher, h.eventBuffer)
	h.aclIn = make(chan ACLFrame, h.eventBuffer)
	go h.readLoop()
	return h
}

// Events returns the C4 router's typed subscriptions.
func (h *Host) Events() *EventRouter { return h.events }

// ACLIn returns the channel of inbound ACL frames (see ACLFrame).
func (h *Host) ACLIn() <-chan ACLFrame { return h.aclIn }

// Send marshals c, writes it as a single command packet, and blocks until
// the matching CommandComplete/CommandStatus arrives, ctx is done, or the
// transport closes. If rp is non-nil and the command completes
// successfully, rp is populated from the return parameters. A command
// issued while another is outstanding fails immediately with ErrBusy
// without writing anything to the transport (spec.md §3 "Invariants").
func (h *Host) Send(ctx context.Context, c cmdParam, rp decoder) error {
	if err := validateLen(c); err != nil {
		return err
	}
	select {
	case <-h.closed:
		return ErrClosed
	default:
	}

	var deadline time.Time
	if dl, ok := ctx.Deadline(); ok {
		deadline = dl
	} else {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
		deadline, _ = ctx.Deadline()
	}

	p, err := h.dispatcher.begin(c.opcode(), handleOf(c), rp, deadline)
	if err != nil {
		return err
	}

	payload := make([]byte, c.len())
	c.marshal(payload)
	pkt, err := marshalCommand(c.opcode(), payload)
	if err != nil {
		h.dispatcher.finish(p)
		return err
	}

	h.writeMu.Lock()
	_, werr := h.transport.Write(pkt)
	h.writeMu.Unlock()
	if werr != nil {
		h.dispatcher.finish(p)
		return fmt.Errorf("hci: writing %s: %w", c.opcode(), werr)
	}

	h.log.Debugf("hci: sent %s", c.opcode())
	return h.dispatcher.wait(ctx, p)
}

// Reset issues the Reset command followed by the re-initialisation
// sequence of spec.md §3 "Lifecycle": SetEventMask, LeSetEventMask,
// WriteLEHostSupported, and LeReadBufferSize. The LeReadBufferSize result
// is decoded but not stored on the Host. Grounded on the teacher's
// resetDevice (_examples/paypal-gatt/linux/hci.go:198-223), narrowed to
// the LE-only command subset.
func (h *Host) Reset(ctx context.Context) error {
	if err := h.Send(ctx, Reset{}, nil); err != nil {
		return fmt.Errorf("hci: Reset: %w", err)
	}
	if err := h.Send(ctx, SetEventMask{Mask: DefaultEventMask}, nil); err != nil {
		return fmt.Errorf("hci: SetEventMask: %w", err)
	}
	if err := h.Send(ctx, LeSetEventMask{Mask: DefaultLEEventMask}, nil); err != nil {
		return fmt.Errorf("hci: LeSetEventMask: %w", err)
	}
	if err := h.Send(ctx, WriteLEHostSupported{LESupportedHost: true, SimultaneousLEHost: false}, nil); err != nil {
		return fmt.Errorf("hci: WriteLEHostSupported: %w", err)
	}
	var bufRP LeReadBufferSizeRP
	if err := h.Send(ctx, LeReadBufferSize{}, &bufRP); err != nil {
		return fmt.Errorf("hci: LeReadBufferSize: %w", err)
	}
	return nil
}

// Close stops the read loop and closes the underlying transport. Any
// command waiting on a completion fails with ErrClosed.
func (h *Host) Close() error {
	var err error
	h.closeOnce.Do(func() {
		close(h.closed)
		err = h.transport.Close()
		h.dispatcher.closeWith(ErrClosed)
	})
	return err
}

// Err returns the error that stopped the read loop, if any. nil until the
// loop exits, and nil forever if it exited only because Close was called.
func (h *Host) Err() error {
	h.readErrMu.Lock()
	defer h.readErrMu.Unlock()
	return h.readErr
}

// readLoop is the single goroutine that owns the transport's read side: it
// reassembles frames via C2, forwards Command-typed frames nowhere (a host
// never receives its own command packets), routes Event frames through C4,
// and surfaces ACL frames on aclIn (spec.md §5 "single-threaded
// cooperative" -- one reader, one in-flight command, total ordering).
func (h *Host) readLoop() {
	fr := newFrameReader(h.transport)
	for {
		f, err := fr.readFrame()
		if err != nil {
			select {
			case <-h.closed:
				return
			default:
			}
			h.readErrMu.Lock()
			h.readErr = fmt.Errorf("hci: %w", err)
			h.readErrMu.Unlock()
			h.log.Errorf("hci: frame read failed, closing: %v", err)
			h.dispatcher.closeWith(ErrClosed)
			h.Close()
			return
		}

		switch f.typ {
		case packetEvent:
			if derr := h.events.dispatch(f); derr != nil {
				h.log.Warnf("hci: dropping malformed %s event: %v", f.eventCode, derr)
			}
		case packetACL:
			trySend(h.aclIn, ACLFrame{
				ConnectionHandle: f.handle,
				Boundary:         f.boundary,
				Broadcast:        f.broadcast,
				Data:             f.payload,
			})
		default:
			h.log.Warnf("hci: unexpected inbound packet type 0x%02x", byte(f.typ))
		}
	}
}
