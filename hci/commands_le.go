package hci

import (
	"fmt"
	"time"
)

// LE Controller commands (OGF 0x08). Grounded on the teacher's LE command
// set (_examples/paypal-gatt/linux/cmd.go:301-679) for the legacy subset
// (LeSetAdvertisingParameters, LeSetScanParameters, LeCreateConn, ...),
// supplemented per SPEC_FULL.md §11 with the extended advertising/scanning
// commands spec.md describes in prose but the teacher predates.

// LeSetEventMask selects which LE meta sub-events the controller may
// generate (spec.md §4.4).
type LeSetEventMask struct{ Mask EventMask }

func (c LeSetEventMask) opcode() opcode   { return opLESetEventMask }
func (c LeSetEventMask) len() int         { return 8 }
func (c LeSetEventMask) marshal(b []byte) { le.PutUint64(b, uint64(c.Mask)) }

// LeReadBufferSize (0x0002): no parameters.
type LeReadBufferSize struct{}

func (c LeReadBufferSize) opcode() opcode   { return opLEReadBufferSize }
func (c LeReadBufferSize) len() int         { return 0 }
func (c LeReadBufferSize) marshal(b []byte) {}

type LeReadBufferSizeRP struct {
	LEACLDataPacketLength    uint16
	TotalNumLEACLDataPackets uint8
}

func (rp *LeReadBufferSizeRP) unmarshal(b []byte) error {
	if len(b) < 3 {
		return fmt.Errorf("%w: LeReadBufferSize return parameters", ErrInvalidPayloadSize)
	}
	rp.LEACLDataPacketLength = le.Uint16(b[0:])
	rp.TotalNumLEACLDataPackets = le.uint8(b[2:])
	return nil
}

// LeReadLocalSupportedFeatures (0x0003): returns an 8-byte LE feature
// bitmask.
type LeReadLocalSupportedFeatures struct{}

func (c LeReadLocalSupportedFeatures) opcode() opcode   { return opLEReadLocalSupportedFeatures }
func (c LeReadLocalSupportedFeatures) len() int         { return 0 }
func (c LeReadLocalSupportedFeatures) marshal(b []byte) {}

type LeReadLocalSupportedFeaturesRP struct{ LEFeatures uint64 }

func (rp *LeReadLocalSupportedFeaturesRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: LeReadLocalSupportedFeatures return parameters", ErrInvalidPayloadSize)
	}
	rp.LEFeatures = le.Uint64(b)
	return nil
}

// LeSetRandomAddress (0x0005): a static or resolvable private address.
type LeSetRandomAddress struct{ RandomAddress addr }

func (c LeSetRandomAddress) opcode() opcode   { return opLESetRandomAddress }
func (c LeSetRandomAddress) len() int         { return 6 }
func (c LeSetRandomAddress) marshal(b []byte) { le.putAddr(b, c.RandomAddress) }

// Advertising types for legacy LeSetAdvertisingParameters.AdvertisingType
// (spec.md §4.1 enumerations).
const (
	AdvIND        uint8 = 0x00
	AdvDirectIndHD uint8 = 0x01
	AdvScanInd    uint8 = 0x02
	AdvNonconnInd uint8 = 0x03
	AdvDirectIndLD uint8 = 0x04
)

// Address types shared by every command that names a peer or local address
// kind (spec.md §4.1 enumerations).
const (
	AddressTypePublic       uint8 = 0x00
	AddressTypeRandom       uint8 = 0x01
	AddressTypePublicIdentity uint8 = 0x02
	AddressTypeRandomIdentity uint8 = 0x03
)

// LeSetAdvertisingParameters (0x0006): the legacy 15-byte advertising
// parameter set (spec.md §4.1, field order fixed by the Core Spec).
type LeSetAdvertisingParameters struct {
	AdvertisingIntervalMin time.Duration
	AdvertisingIntervalMax time.Duration
	AdvertisingType        uint8
	OwnAddressType         uint8
	PeerAddressType        uint8
	PeerAddress            addr
	AdvertisingChannelMap  ChannelMap
	AdvertisingFilterPolicy uint8
}

func (c LeSetAdvertisingParameters) opcode() opcode { return opLESetAdvertisingParameters }
func (c LeSetAdvertisingParameters) len() int       { return 15 }
func (c LeSetAdvertisingParameters) marshal(b []byte) {
	le.PutUint16(b[0:], advTicks(c.AdvertisingIntervalMin))
	le.PutUint16(b[2:], advTicks(c.AdvertisingIntervalMax))
	b[4] = c.AdvertisingType
	b[5] = c.OwnAddressType
	b[6] = c.PeerAddressType
	le.putAddr(b[7:], c.PeerAddress)
	b[13] = c.AdvertisingChannelMap.encode()
	b[14] = c.AdvertisingFilterPolicy
}

// LeReadAdvertisingChannelTxPower (0x0007): no parameters.
type LeReadAdvertisingChannelTxPower struct{}

func (c LeReadAdvertisingChannelTxPower) opcode() opcode   { return opLEReadAdvertisingChannelTxPower }
func (c LeReadAdvertisingChannelTxPower) len() int         { return 0 }
func (c LeReadAdvertisingChannelTxPower) marshal(b []byte) {}

type LeReadAdvertisingChannelTxPowerRP struct{ TransmitPowerLevel int8 }

func (rp *LeReadAdvertisingChannelTxPowerRP) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: LeReadAdvertisingChannelTxPower return parameters", ErrInvalidPayloadSize)
	}
	rp.TransmitPowerLevel = le.int8(b)
	return nil
}

// LeSetAdvertisingData (0x0008): up to 31 bytes of legacy advertising data.
type LeSetAdvertisingData struct{ AdvertisingData []byte }

func (c LeSetAdvertisingData) opcode() opcode { return opLESetAdvertisingData }
func (c LeSetAdvertisingData) len() int       { return 32 }
func (c LeSetAdvertisingData) marshal(b []byte) {
	b[0] = byte(len(c.AdvertisingData))
	copy(b[1:], c.AdvertisingData)
}

// LeSetScanResponseData (0x0009): up to 31 bytes of legacy scan response
// data, same shape as LeSetAdvertisingData.
type LeSetScanResponseData struct{ ScanResponseData []byte }

func (c LeSetScanResponseData) opcode() opcode { return opLESetScanResponseData }
func (c LeSetScanResponseData) len() int       { return 32 }
func (c LeSetScanResponseData) marshal(b []byte) {
	b[0] = byte(len(c.ScanResponseData))
	copy(b[1:], c.ScanResponseData)
}

// LeSetAdvertisingEnable (0x000a).
type LeSetAdvertisingEnable struct{ AdvertisingEnable bool }

func (c LeSetAdvertisingEnable) opcode() opcode   { return opLESetAdvertisingEnable }
func (c LeSetAdvertisingEnable) len() int         { return 1 }
func (c LeSetAdvertisingEnable) marshal(b []byte) { b[0] = boolToUint8(c.AdvertisingEnable) }

// Scan types for LeSetScanParameters/LeSetExtendedScanParameters.
const (
	ScanTypePassive uint8 = 0x00
	ScanTypeActive  uint8 = 0x01
)

// LeSetScanParameters (0x000b): the legacy 7-byte scan parameter set.
type LeSetScanParameters struct {
	LEScanType          uint8
	LEScanInterval      time.Duration
	LEScanWindow        time.Duration
	OwnAddressType      uint8
	ScanningFilterPolicy uint8
}

func (c LeSetScanParameters) opcode() opcode { return opLESetScanParameters }
func (c LeSetScanParameters) len() int       { return 7 }
func (c LeSetScanParameters) marshal(b []byte) {
	b[0] = c.LEScanType
	le.PutUint16(b[1:], advTicks(c.LEScanInterval))
	le.PutUint16(b[3:], advTicks(c.LEScanWindow))
	b[5] = c.OwnAddressType
	b[6] = c.ScanningFilterPolicy
}

// LeSetScanEnable (0x000c).
type LeSetScanEnable struct {
	LEScanEnable     bool
	FilterDuplicates bool
}

func (c LeSetScanEnable) opcode() opcode { return opLESetScanEnable }
func (c LeSetScanEnable) len() int       { return 2 }
func (c LeSetScanEnable) marshal(b []byte) {
	b[0] = boolToUint8(c.LEScanEnable)
	b[1] = boolToUint8(c.FilterDuplicates)
}

// Initiator filter policy for LeCreateConnection/LeExtendedCreateConnection.
const (
	InitiatorFilterPolicyPeerAddress      uint8 = 0x00
	InitiatorFilterPolicyFilterAcceptList uint8 = 0x01
)

// LeCreateConnection (0x000d): the legacy 25-byte connection-initiation
// command (spec.md §4.1).
type LeCreateConnection struct {
	LEScanInterval        time.Duration
	LEScanWindow          time.Duration
	InitiatorFilterPolicy uint8
	PeerAddressType       uint8
	PeerAddress           addr
	OwnAddressType        uint8
	ConnIntervalMin       time.Duration
	ConnIntervalMax       time.Duration
	ConnLatency           uint16
	SupervisionTimeout    time.Duration
	MinCELength           time.Duration
	MaxCELength           time.Duration
}

func (c LeCreateConnection) opcode() opcode { return opLECreateConnection }
func (c LeCreateConnection) len() int       { return 25 }
func (c LeCreateConnection) marshal(b []byte) {
	le.PutUint16(b[0:], advTicks(c.LEScanInterval))
	le.PutUint16(b[2:], advTicks(c.LEScanWindow))
	b[4] = c.InitiatorFilterPolicy
	b[5] = c.PeerAddressType
	le.putAddr(b[6:], c.PeerAddress)
	b[12] = c.OwnAddressType
	le.PutUint16(b[13:], connIntervalTicks(c.ConnIntervalMin))
	le.PutUint16(b[15:], connIntervalTicks(c.ConnIntervalMax))
	le.PutUint16(b[17:], c.ConnLatency)
	le.PutUint16(b[19:], supervisionTimeoutTicks(c.SupervisionTimeout))
	le.PutUint16(b[21:], uint16(msToTicks(c.MinCELength, advIntervalUnit)))
	le.PutUint16(b[23:], uint16(msToTicks(c.MaxCELength, advIntervalUnit)))
}

// LeCreateConnectionCancel (0x000e): no parameters.
type LeCreateConnectionCancel struct{}

func (c LeCreateConnectionCancel) opcode() opcode   { return opLECreateConnectionCancel }
func (c LeCreateConnectionCancel) len() int         { return 0 }
func (c LeCreateConnectionCancel) marshal(b []byte) {}

// LeReadFilterAcceptListSize (0x000f): no parameters.
type LeReadFilterAcceptListSize struct{}

func (c LeReadFilterAcceptListSize) opcode() opcode   { return opLEReadFilterAcceptListSize }
func (c LeReadFilterAcceptListSize) len() int         { return 0 }
func (c LeReadFilterAcceptListSize) marshal(b []byte) {}

type LeReadFilterAcceptListSizeRP struct{ FilterAcceptListSize uint8 }

func (rp *LeReadFilterAcceptListSizeRP) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: LeReadFilterAcceptListSize return parameters", ErrInvalidPayloadSize)
	}
	rp.FilterAcceptListSize = le.uint8(b)
	return nil
}

// LeClearFilterAcceptList (0x0010): no parameters.
type LeClearFilterAcceptList struct{}

func (c LeClearFilterAcceptList) opcode() opcode   { return opLEClearFilterAcceptList }
func (c LeClearFilterAcceptList) len() int         { return 0 }
func (c LeClearFilterAcceptList) marshal(b []byte) {}

// LeAddDeviceToFilterAcceptList (0x0011).
type LeAddDeviceToFilterAcceptList struct {
	AddressType uint8
	Address     addr
}

func (c LeAddDeviceToFilterAcceptList) opcode() opcode { return opLEAddDeviceToFilterAcceptList }
func (c LeAddDeviceToFilterAcceptList) len() int       { return 7 }
func (c LeAddDeviceToFilterAcceptList) marshal(b []byte) {
	b[0] = c.AddressType
	le.putAddr(b[1:], c.Address)
}

// LeRemoveDeviceFromFilterAcceptList (0x0012): same shape as Add.
type LeRemoveDeviceFromFilterAcceptList struct {
	AddressType uint8
	Address     addr
}

func (c LeRemoveDeviceFromFilterAcceptList) opcode() opcode {
	return opLERemoveDeviceFromFilterAcceptList
}
func (c LeRemoveDeviceFromFilterAcceptList) len() int { return 7 }
func (c LeRemoveDeviceFromFilterAcceptList) marshal(b []byte) {
	b[0] = c.AddressType
	le.putAddr(b[1:], c.Address)
}

// LeConnectionUpdate (0x0013).
type LeConnectionUpdate struct {
	ConnectionHandle   uint16
	ConnIntervalMin    time.Duration
	ConnIntervalMax    time.Duration
	ConnLatency        uint16
	SupervisionTimeout time.Duration
	MinCELength        time.Duration
	MaxCELength        time.Duration
}

func (c LeConnectionUpdate) opcode() opcode { return opLEConnectionUpdate }
func (c LeConnectionUpdate) len() int       { return 14 }
func (c LeConnectionUpdate) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	le.PutUint16(b[2:], connIntervalTicks(c.ConnIntervalMin))
	le.PutUint16(b[4:], connIntervalTicks(c.ConnIntervalMax))
	le.PutUint16(b[6:], c.ConnLatency)
	le.PutUint16(b[8:], supervisionTimeoutTicks(c.SupervisionTimeout))
	le.PutUint16(b[10:], uint16(msToTicks(c.MinCELength, advIntervalUnit)))
	le.PutUint16(b[12:], uint16(msToTicks(c.MaxCELength, advIntervalUnit)))
}

// LeSetHostChannelClassification (0x0014): a 37-bit channel map packed into
// 5 bytes, copied to the wire as given.
type LeSetHostChannelClassification struct{ ChannelMap [5]byte }

func (c LeSetHostChannelClassification) opcode() opcode {
	return opLESetHostChannelClassification
}
func (c LeSetHostChannelClassification) len() int { return 5 }
func (c LeSetHostChannelClassification) marshal(b []byte) {
	copy(b, c.ChannelMap[:])
}

// LeReadChannelMap (0x0015): per-connection channel map read (spec.md §8
// "handle demultiplexing").
type LeReadChannelMap struct{ ConnectionHandle uint16 }

func (c LeReadChannelMap) opcode() opcode   { return opLEReadChannelMap }
func (c LeReadChannelMap) len() int         { return 2 }
func (c LeReadChannelMap) marshal(b []byte) { le.PutUint16(b, c.ConnectionHandle) }

type LeReadChannelMapRP struct {
	ConnectionHandle uint16
	ChannelMap       [5]byte
}

func (rp *LeReadChannelMapRP) unmarshal(b []byte) error {
	if len(b) < 7 {
		return fmt.Errorf("%w: LeReadChannelMap return parameters", ErrInvalidPayloadSize)
	}
	rp.ConnectionHandle = le.Uint16(b[0:]) & 0x0fff
	copy(rp.ChannelMap[:], b[2:7])
	return nil
}

// LeReadRemoteFeatures (0x0016): initiates an asynchronous feature read;
// completion arrives as a LeReadRemoteFeaturesComplete LE meta event, not a
// CommandComplete return value.
type LeReadRemoteFeatures struct{ ConnectionHandle uint16 }

func (c LeReadRemoteFeatures) opcode() opcode   { return opLEReadRemoteFeatures }
func (c LeReadRemoteFeatures) len() int         { return 2 }
func (c LeReadRemoteFeatures) marshal(b []byte) { le.PutUint16(b, c.ConnectionHandle) }

// LeEncrypt (0x0017): AES-128 single-block encrypt.
type LeEncrypt struct {
	Key       [16]byte
	Plaintext [16]byte
}

func (c LeEncrypt) opcode() opcode { return opLEEncrypt }
func (c LeEncrypt) len() int       { return 32 }
func (c LeEncrypt) marshal(b []byte) {
	copy(b[0:16], c.Key[:])
	copy(b[16:32], c.Plaintext[:])
}

type LeEncryptRP struct{ EncryptedData [16]byte }

func (rp *LeEncryptRP) unmarshal(b []byte) error {
	if len(b) < 16 {
		return fmt.Errorf("%w: LeEncrypt return parameters", ErrInvalidPayloadSize)
	}
	copy(rp.EncryptedData[:], b[:16])
	return nil
}

// LeRand (0x0018): no parameters.
type LeRand struct{}

func (c LeRand) opcode() opcode   { return opLERand }
func (c LeRand) len() int         { return 0 }
func (c LeRand) marshal(b []byte) {}

type LeRandRP struct{ RandomNumber [8]byte }

func (rp *LeRandRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: LeRand return parameters", ErrInvalidPayloadSize)
	}
	copy(rp.RandomNumber[:], b[:8])
	return nil
}

// LeStartEncryption (0x0019): begins link-layer encryption on an existing
// connection. Completion is an EncryptionChange event, not CommandComplete.
type LeStartEncryption struct {
	ConnectionHandle    uint16
	RandomNumber        [8]byte
	EncryptedDiversifier uint16
	LongTermKey         [16]byte
}

func (c LeStartEncryption) opcode() opcode { return opLEStartEncryption }
func (c LeStartEncryption) len() int       { return 28 }
func (c LeStartEncryption) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	copy(b[2:10], c.RandomNumber[:])
	le.PutUint16(b[10:], c.EncryptedDiversifier)
	copy(b[12:28], c.LongTermKey[:])
}

// LeLongTermKeyRequestReply (0x001a).
type LeLongTermKeyRequestReply struct {
	ConnectionHandle uint16
	LongTermKey      [16]byte
}

func (c LeLongTermKeyRequestReply) opcode() opcode { return opLELongTermKeyRequestReply }
func (c LeLongTermKeyRequestReply) len() int       { return 18 }
func (c LeLongTermKeyRequestReply) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	copy(b[2:18], c.LongTermKey[:])
}

// LeLongTermKeyRequestNegativeReply (0x001b).
type LeLongTermKeyRequestNegativeReply struct{ ConnectionHandle uint16 }

func (c LeLongTermKeyRequestNegativeReply) opcode() opcode {
	return opLELongTermKeyRequestNegativeReply
}
func (c LeLongTermKeyRequestNegativeReply) len() int { return 2 }
func (c LeLongTermKeyRequestNegativeReply) marshal(b []byte) {
	le.PutUint16(b, c.ConnectionHandle)
}

// LeReadSupportedStates (0x001c): no parameters.
type LeReadSupportedStates struct{}

func (c LeReadSupportedStates) opcode() opcode   { return opLEReadSupportedStates }
func (c LeReadSupportedStates) len() int         { return 0 }
func (c LeReadSupportedStates) marshal(b []byte) {}

type LeReadSupportedStatesRP struct{ LEStates uint64 }

func (rp *LeReadSupportedStatesRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: LeReadSupportedStates return parameters", ErrInvalidPayloadSize)
	}
	rp.LEStates = le.Uint64(b)
	return nil
}

// LeReceiverTest (0x001d): single-channel RX test mode.
type LeReceiverTest struct{ RxChannel uint8 }

func (c LeReceiverTest) opcode() opcode   { return opLEReceiverTest }
func (c LeReceiverTest) len() int         { return 1 }
func (c LeReceiverTest) marshal(b []byte) { b[0] = c.RxChannel }

// LeTransmitterTest (0x001e): single-channel TX test mode.
type LeTransmitterTest struct {
	TxChannel       uint8
	TestDataLength  uint8
	PacketPayload   uint8
}

func (c LeTransmitterTest) opcode() opcode { return opLETransmitterTest }
func (c LeTransmitterTest) len() int       { return 3 }
func (c LeTransmitterTest) marshal(b []byte) {
	b[0] = c.TxChannel
	b[1] = c.TestDataLength
	b[2] = c.PacketPayload
}

// LeTestEnd (0x001f): no parameters. Returns the number of packets received
// during a preceding LeReceiverTest.
type LeTestEnd struct{}

func (c LeTestEnd) opcode() opcode   { return opLETestEnd }
func (c LeTestEnd) len() int         { return 0 }
func (c LeTestEnd) marshal(b []byte) {}

type LeTestEndRP struct{ NumberOfPackets uint16 }

func (rp *LeTestEndRP) unmarshal(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: LeTestEnd return parameters", ErrInvalidPayloadSize)
	}
	rp.NumberOfPackets = le.Uint16(b)
	return nil
}

// LeRemoteConnectionParameterRequestReply (0x0020).
type LeRemoteConnectionParameterRequestReply struct {
	ConnectionHandle   uint16
	IntervalMin        time.Duration
	IntervalMax        time.Duration
	Latency            uint16
	Timeout            time.Duration
	MinCELength        time.Duration
	MaxCELength        time.Duration
}

func (c LeRemoteConnectionParameterRequestReply) opcode() opcode {
	return opLERemoteConnectionParameterReply
}
func (c LeRemoteConnectionParameterRequestReply) len() int { return 14 }
func (c LeRemoteConnectionParameterRequestReply) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	le.PutUint16(b[2:], connIntervalTicks(c.IntervalMin))
	le.PutUint16(b[4:], connIntervalTicks(c.IntervalMax))
	le.PutUint16(b[6:], c.Latency)
	le.PutUint16(b[8:], supervisionTimeoutTicks(c.Timeout))
	le.PutUint16(b[10:], uint16(msToTicks(c.MinCELength, advIntervalUnit)))
	le.PutUint16(b[12:], uint16(msToTicks(c.MaxCELength, advIntervalUnit)))
}

// LeRemoteConnectionParameterRequestNegativeReply (0x0021).
type LeRemoteConnectionParameterRequestNegativeReply struct {
	ConnectionHandle uint16
	Reason           uint8
}

func (c LeRemoteConnectionParameterRequestNegativeReply) opcode() opcode {
	return opLERemoteConnectionParameterNegativeReply
}
func (c LeRemoteConnectionParameterRequestNegativeReply) len() int { return 3 }
func (c LeRemoteConnectionParameterRequestNegativeReply) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	b[2] = c.Reason
}

// LeSetDataLength (0x0022).
type LeSetDataLength struct {
	ConnectionHandle uint16
	TxOctets         uint16
	TxTime           uint16
}

func (c LeSetDataLength) opcode() opcode { return opLESetDataLength }
func (c LeSetDataLength) len() int       { return 6 }
func (c LeSetDataLength) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	le.PutUint16(b[2:], c.TxOctets)
	le.PutUint16(b[4:], c.TxTime)
}

// LeSetDataLengthRP is the decoded return of LeSetDataLength: the first
// two bytes of its return parameters carry the connection handle the
// dispatcher correlates on (spec.md §4.3), same as LeReadChannelMap.
type LeSetDataLengthRP struct {
	ConnectionHandle uint16
}

func (rp *LeSetDataLengthRP) unmarshal(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: LeSetDataLength return parameters", ErrInvalidPayloadSize)
	}
	rp.ConnectionHandle = le.Uint16(b[0:]) & 0x0fff
	return nil
}

// LeReadSuggestedDefaultDataLength (0x0023): no parameters.
type LeReadSuggestedDefaultDataLength struct{}

func (c LeReadSuggestedDefaultDataLength) opcode() opcode {
	return opLEReadSuggestedDefaultDataLength
}
func (c LeReadSuggestedDefaultDataLength) len() int         { return 0 }
func (c LeReadSuggestedDefaultDataLength) marshal(b []byte) {}

type LeReadSuggestedDefaultDataLengthRP struct {
	SuggestedMaxTxOctets uint16
	SuggestedMaxTxTime   uint16
}

func (rp *LeReadSuggestedDefaultDataLengthRP) unmarshal(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: LeReadSuggestedDefaultDataLength return parameters", ErrInvalidPayloadSize)
	}
	rp.SuggestedMaxTxOctets = le.Uint16(b[0:])
	rp.SuggestedMaxTxTime = le.Uint16(b[2:])
	return nil
}

// LeWriteSuggestedDefaultDataLength (0x0024).
type LeWriteSuggestedDefaultDataLength struct {
	SuggestedMaxTxOctets uint16
	SuggestedMaxTxTime   uint16
}

func (c LeWriteSuggestedDefaultDataLength) opcode() opcode {
	return opLEWriteSuggestedDefaultDataLength
}
func (c LeWriteSuggestedDefaultDataLength) len() int { return 4 }
func (c LeWriteSuggestedDefaultDataLength) marshal(b []byte) {
	le.PutUint16(b[0:], c.SuggestedMaxTxOctets)
	le.PutUint16(b[2:], c.SuggestedMaxTxTime)
}

// LeAddDeviceToResolvingList (0x0027).
type LeAddDeviceToResolvingList struct {
	PeerIdentityAddressType uint8
	PeerIdentityAddress     addr
	PeerIRK                 [16]byte
	LocalIRK                [16]byte
}

func (c LeAddDeviceToResolvingList) opcode() opcode { return opLEAddDeviceToResolvingList }
func (c LeAddDeviceToResolvingList) len() int       { return 39 }
func (c LeAddDeviceToResolvingList) marshal(b []byte) {
	b[0] = c.PeerIdentityAddressType
	le.putAddr(b[1:], c.PeerIdentityAddress)
	copy(b[7:23], c.PeerIRK[:])
	copy(b[23:39], c.LocalIRK[:])
}

// LeRemoveDeviceFromResolvingList (0x0028).
type LeRemoveDeviceFromResolvingList struct {
	PeerIdentityAddressType uint8
	PeerIdentityAddress     addr
}

func (c LeRemoveDeviceFromResolvingList) opcode() opcode {
	return opLERemoveDeviceFromResolvingList
}
func (c LeRemoveDeviceFromResolvingList) len() int { return 7 }
func (c LeRemoveDeviceFromResolvingList) marshal(b []byte) {
	b[0] = c.PeerIdentityAddressType
	le.putAddr(b[1:], c.PeerIdentityAddress)
}

// LeClearResolvingList (0x0029): no parameters.
type LeClearResolvingList struct{}

func (c LeClearResolvingList) opcode() opcode   { return opLEClearResolvingList }
func (c LeClearResolvingList) len() int         { return 0 }
func (c LeClearResolvingList) marshal(b []byte) {}

// LeReadResolvingListSize (0x002a): no parameters.
type LeReadResolvingListSize struct{}

func (c LeReadResolvingListSize) opcode() opcode   { return opLEReadResolvingListSize }
func (c LeReadResolvingListSize) len() int         { return 0 }
func (c LeReadResolvingListSize) marshal(b []byte) {}

type LeReadResolvingListSizeRP struct{ ResolvingListSize uint8 }

func (rp *LeReadResolvingListSizeRP) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: LeReadResolvingListSize return parameters", ErrInvalidPayloadSize)
	}
	rp.ResolvingListSize = le.uint8(b)
	return nil
}

// LeSetAddressResolutionEnable (0x002d).
type LeSetAddressResolutionEnable struct{ AddressResolutionEnable bool }

func (c LeSetAddressResolutionEnable) opcode() opcode { return opLESetAddressResolutionEnable }
func (c LeSetAddressResolutionEnable) len() int       { return 1 }
func (c LeSetAddressResolutionEnable) marshal(b []byte) {
	b[0] = boolToUint8(c.AddressResolutionEnable)
}

// LeSetResolvablePrivateAddressTimeout (0x002e): seconds, not a tick unit.
type LeSetResolvablePrivateAddressTimeout struct{ RPATimeout time.Duration }

func (c LeSetResolvablePrivateAddressTimeout) opcode() opcode {
	return opLESetResolvablePrivateAddressTimeout
}
func (c LeSetResolvablePrivateAddressTimeout) len() int { return 2 }
func (c LeSetResolvablePrivateAddressTimeout) marshal(b []byte) {
	le.PutUint16(b, uint16(c.RPATimeout/time.Second))
}

// LeReadMaximumDataLength (0x002f): no parameters.
type LeReadMaximumDataLength struct{}

func (c LeReadMaximumDataLength) opcode() opcode   { return opLEReadMaximumDataLength }
func (c LeReadMaximumDataLength) len() int         { return 0 }
func (c LeReadMaximumDataLength) marshal(b []byte) {}

type LeReadMaximumDataLengthRP struct {
	SupportedMaxTxOctets uint16
	SupportedMaxTxTime   uint16
	SupportedMaxRxOctets uint16
	SupportedMaxRxTime   uint16
}

func (rp *LeReadMaximumDataLengthRP) unmarshal(b []byte) error {
	if len(b) < 8 {
		return fmt.Errorf("%w: LeReadMaximumDataLength return parameters", ErrInvalidPayloadSize)
	}
	rp.SupportedMaxTxOctets = le.Uint16(b[0:])
	rp.SupportedMaxTxTime = le.Uint16(b[2:])
	rp.SupportedMaxRxOctets = le.Uint16(b[4:])
	rp.SupportedMaxRxTime = le.Uint16(b[6:])
	return nil
}

// PHY identifiers shared by LeReadPHY/LeSetDefaultPHY/LeSetPHY
// (spec.md §4.1 enumerations).
const (
	PHY1M    uint8 = 0x01
	PHY2M    uint8 = 0x02
	PHYCoded uint8 = 0x03
)

// LeReadPHY (0x0030): per-connection PHY read.
type LeReadPHY struct{ ConnectionHandle uint16 }

func (c LeReadPHY) opcode() opcode   { return opLEReadPHY }
func (c LeReadPHY) len() int         { return 2 }
func (c LeReadPHY) marshal(b []byte) { le.PutUint16(b, c.ConnectionHandle) }

type LeReadPHYRP struct {
	ConnectionHandle uint16
	TxPHY            uint8
	RxPHY            uint8
}

func (rp *LeReadPHYRP) unmarshal(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: LeReadPHY return parameters", ErrInvalidPayloadSize)
	}
	rp.ConnectionHandle = le.Uint16(b[0:]) & 0x0fff
	rp.TxPHY = le.uint8(b[2:])
	rp.RxPHY = le.uint8(b[3:])
	return nil
}

// LeSetDefaultPHY (0x0031).
type LeSetDefaultPHY struct {
	AllPHYs uint8
	TxPHYs  PHYSet
	RxPHYs  PHYSet
}

func (c LeSetDefaultPHY) opcode() opcode { return opLESetDefaultPHY }
func (c LeSetDefaultPHY) len() int       { return 3 }
func (c LeSetDefaultPHY) marshal(b []byte) {
	b[0] = c.AllPHYs
	b[1] = c.TxPHYs.encode()
	b[2] = c.RxPHYs.encode()
}

// LeSetPHY (0x0032): per-connection PHY preference.
type LeSetPHY struct {
	ConnectionHandle uint16
	AllPHYs          uint8
	TxPHYs           PHYSet
	RxPHYs           PHYSet
	PHYOptions       uint16
}

func (c LeSetPHY) opcode() opcode { return opLESetPHY }
func (c LeSetPHY) len() int       { return 7 }
func (c LeSetPHY) marshal(b []byte) {
	le.PutUint16(b[0:], c.ConnectionHandle)
	b[2] = c.AllPHYs
	b[3] = c.TxPHYs.encode()
	b[4] = c.RxPHYs.encode()
	le.PutUint16(b[5:], c.PHYOptions)
}

// LeSetAdvertisingSetRandomAddress (0x0035): per-advertising-set random
// address, keyed by AdvertisingHandle (spec.md §4.1, extended advertising).
type LeSetAdvertisingSetRandomAddress struct {
	AdvertisingHandle uint8
	RandomAddress     addr
}

func (c LeSetAdvertisingSetRandomAddress) opcode() opcode {
	return opLESetAdvertisingSetRandomAddress
}
func (c LeSetAdvertisingSetRandomAddress) len() int { return 7 }
func (c LeSetAdvertisingSetRandomAddress) marshal(b []byte) {
	b[0] = c.AdvertisingHandle
	le.putAddr(b[1:], c.RandomAddress)
}

// LeSetExtendedAdvertisingParameters (0x0036): 25-byte extended advertising
// parameter set. TX power is a signed dBm value; 0x7F (TxPowerNoPreference)
// lets the controller choose, in which case the CommandComplete return
// parameter reports the value actually selected (spec.md §4.1).
const TxPowerNoPreference int8 = 0x7f

type LeSetExtendedAdvertisingParameters struct {
	AdvertisingHandle     uint8
	AdvertisingEventProperties uint16
	PrimaryIntervalMin    time.Duration
	PrimaryIntervalMax    time.Duration
	PrimaryChannelMap     ChannelMap
	OwnAddressType        uint8
	PeerAddressType       uint8
	PeerAddress           addr
	AdvertisingFilterPolicy uint8
	AdvertisingTxPower    int8
	PrimaryAdvertisingPHY uint8
	SecondaryMaxSkip      uint8
	SecondaryAdvertisingPHY uint8
	AdvertisingSID        uint8
	ScanRequestNotificationEnable bool
}

func (c LeSetExtendedAdvertisingParameters) opcode() opcode {
	return opLESetExtendedAdvertisingParameters
}
func (c LeSetExtendedAdvertisingParameters) len() int { return 25 }
func (c LeSetExtendedAdvertisingParameters) marshal(b []byte) {
	b[0] = c.AdvertisingHandle
	le.PutUint16(b[1:], c.AdvertisingEventProperties)
	le.putUint24(b[3:], msToTicks(c.PrimaryIntervalMin, advIntervalUnit))
	le.putUint24(b[6:], msToTicks(c.PrimaryIntervalMax, advIntervalUnit))
	b[9] = c.PrimaryChannelMap.encode()
	b[10] = c.OwnAddressType
	b[11] = c.PeerAddressType
	le.putAddr(b[12:], c.PeerAddress)
	b[18] = c.AdvertisingFilterPolicy
	b[19] = byte(c.AdvertisingTxPower)
	b[20] = c.PrimaryAdvertisingPHY
	b[21] = c.SecondaryMaxSkip
	b[22] = c.SecondaryAdvertisingPHY
	b[23] = c.AdvertisingSID
	b[24] = boolToUint8(c.ScanRequestNotificationEnable)
}

type LeSetExtendedAdvertisingParametersRP struct{ SelectedTxPower int8 }

func (rp *LeSetExtendedAdvertisingParametersRP) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: LeSetExtendedAdvertisingParameters return parameters", ErrInvalidPayloadSize)
	}
	rp.SelectedTxPower = le.int8(b)
	return nil
}

// Fragment-operation values for LeSetExtendedAdvertisingData and
// LeSetExtendedScanResponseData. The wire value of the Operation field is
// this enum's ordinal, produced by fragmentOperationByte below.
type FragmentOperation uint8

const (
	FragmentIntermediate FragmentOperation = iota
	FragmentFirst
	FragmentLast
	FragmentComplete
	FragmentUnchanged
)

// fragmentOperationByte maps FragmentOperation to the wire's Operation
// field. The controller only ever sees whether this is the first fragment,
// the last fragment, both (Complete), neither (Intermediate), or a
// same-data replay (Unchanged); the wire uses 0=Intermediate,1=First,
// 2=Last,3=Complete,4=Unchanged -- which is exactly FragmentOperation's
// iota order. Kept as an explicit function rather than a bare cast so the
// mapping is visible at the call site if the Core Spec revises this table.
func fragmentOperationByte(op FragmentOperation) uint8 { return uint8(op) }

// LeSetExtendedAdvertisingData (0x0037): variable-length fragment of
// extended advertising data, up to 251 bytes per fragment.
type LeSetExtendedAdvertisingData struct {
	AdvertisingHandle uint8
	Operation         FragmentOperation
	FragmentPreference uint8
	AdvertisingData   []byte
}

func (c LeSetExtendedAdvertisingData) opcode() opcode { return opLESetExtendedAdvertisingData }
func (c LeSetExtendedAdvertisingData) len() int       { return 4 + len(c.AdvertisingData) }
func (c LeSetExtendedAdvertisingData) marshal(b []byte) {
	b[0] = c.AdvertisingHandle
	b[1] = fragmentOperationByte(c.Operation)
	b[2] = c.FragmentPreference
	b[3] = byte(len(c.AdvertisingData))
	copy(b[4:], c.AdvertisingData)
}

// LeSetExtendedScanResponseData (0x0038): same shape as
// LeSetExtendedAdvertisingData.
type LeSetExtendedScanResponseData struct {
	AdvertisingHandle  uint8
	Operation          FragmentOperation
	FragmentPreference uint8
	ScanResponseData   []byte
}

func (c LeSetExtendedScanResponseData) opcode() opcode {
	return opLESetExtendedScanResponseData
}
func (c LeSetExtendedScanResponseData) len() int { return 4 + len(c.ScanResponseData) }
func (c LeSetExtendedScanResponseData) marshal(b []byte) {
	b[0] = c.AdvertisingHandle
	b[1] = fragmentOperationByte(c.Operation)
	b[2] = c.FragmentPreference
	b[3] = byte(len(c.ScanResponseData))
	copy(b[4:], c.ScanResponseData)
}

// ExtendedAdvertisingSet names one advertising set and its enable duration
// in LeSetExtendedAdvertisingEnable's variable-length set list.
type ExtendedAdvertisingSet struct {
	AdvertisingHandle uint8
	Duration          time.Duration // 10ms units, 0 = no timeout
	MaxExtendedAdvertisingEvents uint8
}

// LeSetExtendedAdvertisingEnable (0x0039): enables/disables one or more
// advertising sets in a single command.
type LeSetExtendedAdvertisingEnable struct {
	Enable         bool
	AdvertisingSets []ExtendedAdvertisingSet
}

func (c LeSetExtendedAdvertisingEnable) opcode() opcode {
	return opLESetExtendedAdvertisingEnable
}
func (c LeSetExtendedAdvertisingEnable) len() int {
	return 2 + 4*len(c.AdvertisingSets)
}
func (c LeSetExtendedAdvertisingEnable) marshal(b []byte) {
	b[0] = boolToUint8(c.Enable)
	b[1] = byte(len(c.AdvertisingSets))
	off := 2
	for _, s := range c.AdvertisingSets {
		b[off] = s.AdvertisingHandle
		le.PutUint16(b[off+1:], scanDurationTicks(s.Duration))
		b[off+3] = s.MaxExtendedAdvertisingEvents
		off += 4
	}
}

// LeReadMaximumAdvertisingDataLength (0x003a): no parameters.
type LeReadMaximumAdvertisingDataLength struct{}

func (c LeReadMaximumAdvertisingDataLength) opcode() opcode {
	return opLEReadMaximumAdvertisingDataLength
}
func (c LeReadMaximumAdvertisingDataLength) len() int         { return 0 }
func (c LeReadMaximumAdvertisingDataLength) marshal(b []byte) {}

type LeReadMaximumAdvertisingDataLengthRP struct{ MaxAdvertisingDataLength uint16 }

func (rp *LeReadMaximumAdvertisingDataLengthRP) unmarshal(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: LeReadMaximumAdvertisingDataLength return parameters", ErrInvalidPayloadSize)
	}
	rp.MaxAdvertisingDataLength = le.Uint16(b)
	return nil
}

// LeReadNumberOfSupportedAdvertisingSets (0x003b): no parameters.
type LeReadNumberOfSupportedAdvertisingSets struct{}

func (c LeReadNumberOfSupportedAdvertisingSets) opcode() opcode {
	return opLEReadNumberOfSupportedAdvertisingSets
}
func (c LeReadNumberOfSupportedAdvertisingSets) len() int         { return 0 }
func (c LeReadNumberOfSupportedAdvertisingSets) marshal(b []byte) {}

type LeReadNumberOfSupportedAdvertisingSetsRP struct{ NumSupportedAdvertisingSets uint8 }

func (rp *LeReadNumberOfSupportedAdvertisingSetsRP) unmarshal(b []byte) error {
	if len(b) < 1 {
		return fmt.Errorf("%w: LeReadNumberOfSupportedAdvertisingSets return parameters", ErrInvalidPayloadSize)
	}
	rp.NumSupportedAdvertisingSets = le.uint8(b)
	return nil
}

// LeRemoveAdvertisingSet (0x003c).
type LeRemoveAdvertisingSet struct{ AdvertisingHandle uint8 }

func (c LeRemoveAdvertisingSet) opcode() opcode   { return opLERemoveAdvertisingSet }
func (c LeRemoveAdvertisingSet) len() int         { return 1 }
func (c LeRemoveAdvertisingSet) marshal(b []byte) { b[0] = c.AdvertisingHandle }

// LeClearAdvertisingSets (0x003d): no parameters.
type LeClearAdvertisingSets struct{}

func (c LeClearAdvertisingSets) opcode() opcode   { return opLEClearAdvertisingSets }
func (c LeClearAdvertisingSets) len() int         { return 0 }
func (c LeClearAdvertisingSets) marshal(b []byte) {}

// ExtendedScanPHY carries the per-PHY scan parameters for
// LeSetExtendedScanParameters. The wire does not repeat one {type,
// interval, window} triple per PHY: spec.md §4.1 requires all enabled
// PHYs' Scan_Type bytes first, then all Scan_Interval fields, then all
// Scan_Window fields, in ascending PHY ordinal order -- not grouped by PHY.
type ExtendedScanPHY struct {
	ScanType     uint8
	ScanInterval time.Duration
	ScanWindow   time.Duration
}

// LeSetExtendedScanParameters (0x0041): variable-length, 3 + 5*N bytes for
// N enabled PHYs (one for 1M, one for Coded, per spec.md §4.1).
type LeSetExtendedScanParameters struct {
	OwnAddressType       uint8
	ScanningFilterPolicy uint8
	PHYs                 PHYSet
	OneM                 ExtendedScanPHY
	Coded                ExtendedScanPHY
}

func (c LeSetExtendedScanParameters) opcode() opcode { return opLESetExtendedScanParameters }
func (c LeSetExtendedScanParameters) len() int       { return 2 + 1 + 5*c.PHYs.count() }
func (c LeSetExtendedScanParameters) marshal(b []byte) {
	b[0] = c.OwnAddressType
	b[1] = c.ScanningFilterPolicy
	b[2] = c.PHYs.encode()
	phys := c.enabledPHYs()
	off := 3
	for _, p := range phys {
		b[off] = p.ScanType
		off++
	}
	for _, p := range phys {
		le.PutUint16(b[off:], advTicks(p.ScanInterval))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], advTicks(p.ScanWindow))
		off += 2
	}
}

func (c LeSetExtendedScanParameters) enabledPHYs() []ExtendedScanPHY {
	var phys []ExtendedScanPHY
	if c.PHYs.OneM {
		phys = append(phys, c.OneM)
	}
	if c.PHYs.Coded {
		phys = append(phys, c.Coded)
	}
	return phys
}

// LeSetExtendedScanEnable (0x0042).
type LeSetExtendedScanEnable struct {
	Enable           bool
	FilterDuplicates uint8
	Duration         time.Duration // 10ms units
	Period           time.Duration // 1.28s units
}

func (c LeSetExtendedScanEnable) opcode() opcode { return opLESetExtendedScanEnable }
func (c LeSetExtendedScanEnable) len() int       { return 6 }
func (c LeSetExtendedScanEnable) marshal(b []byte) {
	b[0] = boolToUint8(c.Enable)
	b[1] = c.FilterDuplicates
	le.PutUint16(b[2:], scanDurationTicks(c.Duration))
	le.PutUint16(b[4:], scanPeriodTicks(c.Period))
}

// ExtendedConnectionPHY carries the per-PHY initiating parameters for
// LeExtendedCreateConnection, subject to the same "all fields of one kind
// before the next kind, ascending PHY order" layout as ExtendedScanPHY.
type ExtendedConnectionPHY struct {
	ScanInterval    time.Duration
	ScanWindow      time.Duration
	ConnIntervalMin time.Duration
	ConnIntervalMax time.Duration
	ConnLatency     uint16
	SupervisionTimeout time.Duration
	MinCELength     time.Duration
	MaxCELength     time.Duration
}

// LeExtendedCreateConnection (0x0043): variable-length, 10 + 16*N bytes for
// N initiating PHYs (1M, 2M, Coded, per spec.md §4.1).
type LeExtendedCreateConnection struct {
	InitiatorFilterPolicy uint8
	OwnAddressType        uint8
	PeerAddressType       uint8
	PeerAddress           addr
	InitiatingPHYs        PHYSetExtended
	OneM                  ExtendedConnectionPHY
	TwoM                  ExtendedConnectionPHY
	Coded                 ExtendedConnectionPHY
}

// PHYSetExtended adds the 2M PHY to PHYSet for initiating-PHY bitmasks,
// which (unlike scanning) may request LE 2M directly (spec.md §4.1).
type PHYSetExtended struct{ OneM, TwoM, Coded bool }

func (p PHYSetExtended) encode() uint8 {
	var v uint8
	if p.OneM {
		v |= 1 << 0
	}
	if p.TwoM {
		v |= 1 << 1
	}
	if p.Coded {
		v |= 1 << 2
	}
	return v
}

func (p PHYSetExtended) count() int {
	n := 0
	if p.OneM {
		n++
	}
	if p.TwoM {
		n++
	}
	if p.Coded {
		n++
	}
	return n
}

func (c LeExtendedCreateConnection) opcode() opcode { return opLEExtendedCreateConnection }
func (c LeExtendedCreateConnection) len() int       { return 10 + 16*c.InitiatingPHYs.count() }
func (c LeExtendedCreateConnection) marshal(b []byte) {
	b[0] = c.InitiatorFilterPolicy
	b[1] = c.OwnAddressType
	b[2] = c.PeerAddressType
	le.putAddr(b[3:], c.PeerAddress)
	b[9] = c.InitiatingPHYs.encode()
	phys := c.enabledPHYs()
	off := 10
	for _, p := range phys {
		le.PutUint16(b[off:], advTicks(p.ScanInterval))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], advTicks(p.ScanWindow))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], connIntervalTicks(p.ConnIntervalMin))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], connIntervalTicks(p.ConnIntervalMax))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], p.ConnLatency)
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], supervisionTimeoutTicks(p.SupervisionTimeout))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], uint16(msToTicks(p.MinCELength, advIntervalUnit)))
		off += 2
	}
	for _, p := range phys {
		le.PutUint16(b[off:], uint16(msToTicks(p.MaxCELength, advIntervalUnit)))
		off += 2
	}
}

func (c LeExtendedCreateConnection) enabledPHYs() []ExtendedConnectionPHY {
	var phys []ExtendedConnectionPHY
	if c.InitiatingPHYs.OneM {
		phys = append(phys, c.OneM)
	}
	if c.InitiatingPHYs.TwoM {
		phys = append(phys, c.TwoM)
	}
	if c.InitiatingPHYs.Coded {
		phys = append(phys, c.Coded)
	}
	return phys
}

// LeReadTransmitPower (0x004b): no parameters.
type LeReadTransmitPower struct{}

func (c LeReadTransmitPower) opcode() opcode   { return opLEReadTransmitPower }
func (c LeReadTransmitPower) len() int         { return 0 }
func (c LeReadTransmitPower) marshal(b []byte) {}

type LeReadTransmitPowerRP struct {
	MinTxPower int8
	MaxTxPower int8
}

func (rp *LeReadTransmitPowerRP) unmarshal(b []byte) error {
	if len(b) < 2 {
		return fmt.Errorf("%w: LeReadTransmitPower return parameters", ErrInvalidPayloadSize)
	}
	rp.MinTxPower = le.int8(b[0:])
	rp.MaxTxPower = le.int8(b[1:])
	return nil
}

// LeSetPrivacyMode (0x004e).
type LeSetPrivacyMode struct {
	PeerIdentityAddressType uint8
	PeerIdentityAddress     addr
	PrivacyMode             uint8
}

func (c LeSetPrivacyMode) opcode() opcode { return opLESetPrivacyMode }
func (c LeSetPrivacyMode) len() int       { return 8 }
func (c LeSetPrivacyMode) marshal(b []byte) {
	b[0] = c.PeerIdentityAddressType
	le.putAddr(b[1:], c.PeerIdentityAddress)
	b[7] = c.PrivacyMode
}

// connIntervalTicks and supervisionTimeoutTicks convert connection-timing
// durations to their controller-native units: connection intervals use the
// same 1.25ms unit family but the Core Spec encodes it as 0.625ms*2 per the
// Create Connection fields, so reuse advIntervalUnit*2; supervision timeout
// uses a 10ms unit distinct from the extended scan duration unit's 10ms by
// name only (kept separate so a future divergence doesn't silently couple
// them).
func connIntervalTicks(d time.Duration) uint16 {
	if d <= 0 {
		return 0
	}
	t := msToTicks(d, 2*advIntervalUnit)
	if t > 0xffff {
		t = 0xffff
	}
	return uint16(t)
}

const supervisionTimeoutUnit = 10 * time.Millisecond

func supervisionTimeoutTicks(d time.Duration) uint16 {
	if d <= 0 {
		return 0
	}
	t := msToTicks(d, supervisionTimeoutUnit)
	if t > 0xffff {
		t = 0xffff
	}
	return uint16(t)
}
