package hci

// bitset8 is a set of enumerator ordinals packed into a single byte, used
// for advertising channel maps, scanning PHYs, and similar set-of-flags
// command fields (spec.md §9 "Bitfield enums"). Ordinals are OR'd in as
// 1<<ordinal, matching the encoding rule in spec.md §4.1.
type bitset8 uint8

func newBitset8(ordinals ...uint) bitset8 {
	var s bitset8
	for _, o := range ordinals {
		s |= 1 << o
	}
	return s
}

func (s bitset8) has(ordinal uint) bool { return s&(1<<ordinal) != 0 }

// ChannelMap is the set of the three LE advertising channels (37, 38, 39)
// the controller will use, per spec.md §6 "LeAdvertisingChannelMap bits".
type ChannelMap struct {
	Ch37, Ch38, Ch39 bool
}

// AllChannels is the usual default: advertise on all three channels.
var AllChannels = ChannelMap{Ch37: true, Ch38: true, Ch39: true}

func (m ChannelMap) encode() uint8 {
	var s bitset8
	if m.Ch37 {
		s |= 1 << 0
	}
	if m.Ch38 {
		s |= 1 << 1
	}
	if m.Ch39 {
		s |= 1 << 2
	}
	return uint8(s)
}

func decodeChannelMap(b uint8) ChannelMap {
	s := bitset8(b)
	return ChannelMap{Ch37: s.has(0), Ch38: s.has(1), Ch39: s.has(2)}
}

// PHYSet is a set-of-flags selection over the LE PHYs, used by extended
// scan parameters (spec.md §4.1 "LeSetExtendedScanParameters") to select
// which per-PHY parameter blocks are present, and by scanning-PHY bitfield
// fields (spec.md §6 "LeScanningPhy bits").
type PHYSet struct {
	OneM, Coded bool
}

func (p PHYSet) encode() uint8 {
	var s bitset8
	if p.OneM {
		s |= 1 << 0
	}
	if p.Coded {
		s |= 1 << 2
	}
	return uint8(s)
}

func (p PHYSet) count() int {
	n := 0
	if p.OneM {
		n++
	}
	if p.Coded {
		n++
	}
	return n
}

// EventMask is the 64-bit set of HCI events the controller is permitted to
// generate (Set Event Mask / Set Event Mask Page 2 commands). Individual
// bit positions are defined by the Bluetooth Core Specification Vol 4,
// Part E §7.3.1; callers needing fine control build the mask with OR, but
// DefaultEventMask covers what every LE-capable host needs unmasked.
type EventMask uint64

// DefaultEventMask is a broad mask, not limited to the events this client
// acts on: it unmasks Disconnection Complete, Encryption Change, Hardware
// Error, Data Buffer Overflow, Encryption Key Refresh Complete, and the
// catch-all LE Meta bit, together with most of the BR/EDR event bits.
const DefaultEventMask EventMask = 0x3dbff807fffbffff

// DefaultLEEventMask unmasks every LE meta sub-event this client decodes:
// Connection Complete, Advertising Report, Connection Update Complete,
// Read Remote Features Complete, Enhanced Connection Complete, Extended
// Advertising Report, and Channel Selection Algorithm (spec.md §4.4).
const DefaultLEEventMask EventMask = 0x000000000008120f
