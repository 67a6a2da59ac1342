package hci

import "fmt"

// Information Parameters (OGF 0x04) and Status Parameters (OGF 0x05)
// commands. Grounded on spec.md §4.1's representative list
// (ReadLocalSupportedFeatures, ReadBdAddr) and the teacher's equivalent
// host-control read commands for shape (_examples/paypal-gatt/linux/cmd.go).

// ReadLocalVersionInformation (IP, 0x0001): no parameters.
type ReadLocalVersionInformation struct{}

func (c ReadLocalVersionInformation) opcode() opcode   { return opReadLocalVersionInformation }
func (c ReadLocalVersionInformation) len() int         { return 0 }
func (c ReadLocalVersionInformation) marshal(b []byte) {}

// ReadLocalVersionInformationRP is the decoded return of
// ReadLocalVersionInformation.
type ReadLocalVersionInformationRP struct {
	HCIVersion    uint8
	HCIRevision   uint16
	LMPVersion    uint8
	ManufacturerName uint16
	LMPSubversion uint16
}

func (rp *ReadLocalVersionInformationRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: ReadLocalVersionInformation return parameters", ErrInvalidPayloadSize)
	}
	rp.HCIVersion = le.uint8(b[0:])
	rp.HCIRevision = le.Uint16(b[1:])
	rp.LMPVersion = le.uint8(b[3:])
	rp.ManufacturerName = le.Uint16(b[4:])
	rp.LMPSubversion = le.Uint16(b[6:])
	return nil
}

// ReadLocalSupportedCommands (IP, 0x0002): no parameters.
type ReadLocalSupportedCommands struct{}

func (c ReadLocalSupportedCommands) opcode() opcode   { return opReadLocalSupportedCommands }
func (c ReadLocalSupportedCommands) len() int         { return 0 }
func (c ReadLocalSupportedCommands) marshal(b []byte) {}

// ReadLocalSupportedCommandsRP carries the 64-byte supported-commands
// bitmask verbatim; interpreting individual bits is left to the caller.
type ReadLocalSupportedCommandsRP struct {
	SupportedCommands [64]byte
}

func (rp *ReadLocalSupportedCommandsRP) unmarshal(b []byte) error {
	if len(b) < 64 {
		return fmt.Errorf("%w: ReadLocalSupportedCommands return parameters", ErrInvalidPayloadSize)
	}
	copy(rp.SupportedCommands[:], b[:64])
	return nil
}

// ReadLocalSupportedFeatures (IP, 0x0003): returns an 8-byte LMP-feature
// bitmask (spec.md §4.1).
type ReadLocalSupportedFeatures struct{}

func (c ReadLocalSupportedFeatures) opcode() opcode   { return opReadLocalSupportedFeatures }
func (c ReadLocalSupportedFeatures) len() int         { return 0 }
func (c ReadLocalSupportedFeatures) marshal(b []byte) {}

type ReadLocalSupportedFeaturesRP struct {
	LMPFeatures uint64
}

func (rp *ReadLocalSupportedFeaturesRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: ReadLocalSupportedFeatures return parameters", ErrInvalidPayloadSize)
	}
	rp.LMPFeatures = le.Uint64(b)
	return nil
}

// ReadBufferSize (IP, 0x0005): BR/EDR ACL/SCO buffer sizing. Host.Reset
// does not issue it; its only buffer-size query is LeReadBufferSize.
type ReadBufferSize struct{}

func (c ReadBufferSize) opcode() opcode   { return opReadBufferSize }
func (c ReadBufferSize) len() int         { return 0 }
func (c ReadBufferSize) marshal(b []byte) {}

type ReadBufferSizeRP struct {
	ACLDataPacketLength    uint16
	SyncDataPacketLength   uint8
	TotalNumACLDataPackets uint16
	TotalNumSyncDataPackets uint16
}

func (rp *ReadBufferSizeRP) unmarshal(b []byte) error {
	if len(b) < 7 {
		return fmt.Errorf("%w: ReadBufferSize return parameters", ErrInvalidPayloadSize)
	}
	rp.ACLDataPacketLength = le.Uint16(b[0:])
	rp.SyncDataPacketLength = le.uint8(b[2:])
	rp.TotalNumACLDataPackets = le.Uint16(b[3:])
	rp.TotalNumSyncDataPackets = le.Uint16(b[5:])
	return nil
}

// ReadBdAddr (IP, 0x0009): returns the controller's public address
// (spec.md §4.1).
type ReadBdAddr struct{}

func (c ReadBdAddr) opcode() opcode   { return opReadBdAddr }
func (c ReadBdAddr) len() int         { return 0 }
func (c ReadBdAddr) marshal(b []byte) {}

type ReadBdAddrRP struct {
	Address addr
}

func (rp *ReadBdAddrRP) unmarshal(b []byte) error {
	if len(b) < 6 {
		return fmt.Errorf("%w: ReadBdAddr return parameters", ErrInvalidPayloadSize)
	}
	rp.Address = le.addr(b)
	return nil
}

// ReadRSSI (SP, 0x0005): per-connection received signal strength.
type ReadRSSI struct{ ConnectionHandle uint16 }

func (c ReadRSSI) opcode() opcode   { return opReadRSSI }
func (c ReadRSSI) len() int         { return 2 }
func (c ReadRSSI) marshal(b []byte) { le.PutUint16(b, c.ConnectionHandle) }

type ReadRSSIRP struct {
	ConnectionHandle uint16
	RSSI             int8
}

func (rp *ReadRSSIRP) unmarshal(b []byte) error {
	if len(b) < 3 {
		return fmt.Errorf("%w: ReadRSSI return parameters", ErrInvalidPayloadSize)
	}
	rp.ConnectionHandle = le.Uint16(b[0:]) & 0x0fff
	rp.RSSI = le.int8(b[2:])
	return nil
}
