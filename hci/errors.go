package hci

import "fmt"

// ParserError is a host-side protocol-sync problem (spec.md §7, kind 1):
// it never reached the controller, or the controller's reply could not be
// trusted. Grounded on the att.go attEcode* table pattern (_examples/
// paypal-gatt/att.go) for "small closed set of named codes with a String
// method", adapted from an ATT response code to a purely local error kind.
type ParserError uint8

const (
	// ErrBusy is returned synchronously, without touching the transport,
	// when a command is submitted while another is still pending
	// (spec.md §3 "Invariants").
	ErrBusy ParserError = iota + 1
	// ErrTimeout is returned when a command's per-call deadline (default
	// 2000ms, spec.md §4.3) elapses before a matching completion arrives.
	ErrTimeout
	// ErrInvalidPayloadSize is returned when a decoder's minimum
	// return-parameter length check fails (spec.md §4.1 "Length
	// validation on decode").
	ErrInvalidPayloadSize
	// ErrClosed is returned when a command is submitted after the
	// transport has been closed.
	ErrClosed
)

func (e ParserError) Error() string {
	switch e {
	case ErrBusy:
		return "hci: a command is already pending"
	case ErrTimeout:
		return "hci: command timed out waiting for completion"
	case ErrInvalidPayloadSize:
		return "hci: return parameters shorter than the decoder requires"
	case ErrClosed:
		return "hci: transport closed"
	default:
		return "hci: parser error"
	}
}

// ControllerError is the status byte a controller returned in a
// CommandComplete or CommandStatus event for a command that did not
// succeed (spec.md §7, kind 2). Status 0x00 (Success) never produces a
// ControllerError; every other value does.
type ControllerError struct {
	Opcode opcode
	Status uint8
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("hci: %s failed: %s (0x%02x)", e.Opcode, StatusName(e.Status), e.Status)
}

// Named controller status codes from the Bluetooth Core Specification
// Vol 2, Part D, restricted to the subset spec.md §7 calls out by name
// plus the handful this client's command set can realistically provoke.
const (
	StatusSuccess                          = 0x00
	StatusUnknownHCICommand                = 0x01
	StatusUnknownConnectionIdentifier      = 0x02
	StatusHardwareFailure                  = 0x03
	StatusPageTimeout                      = 0x04
	StatusAuthenticationFailure            = 0x05
	StatusPINOrKeyMissing                  = 0x06
	StatusMemoryCapacityExceeded           = 0x07
	StatusConnectionTimeout                = 0x08
	StatusConnectionLimitExceeded          = 0x09
	StatusCommandDisallowed                = 0x0c
	StatusConnectionRejectedLimitedResources = 0x0d
	StatusConnectionRejectedSecurity       = 0x0e
	StatusUnsupportedFeatureOrParameter    = 0x11
	StatusInvalidHCICommandParameters      = 0x12
	StatusRemoteUserTerminatedConnection   = 0x13
	StatusRemoteDeviceTerminatedLowResources = 0x14
	StatusRemoteDeviceTerminatedPowerOff   = 0x15
	StatusConnectionTerminatedByLocalHost  = 0x16
	StatusUnsupportedRemoteFeature         = 0x1a
	StatusInvalidLMPOrLLParameters         = 0x1e
	StatusUnspecifiedError                 = 0x1f
	StatusLMPResponseTimeout               = 0x22
	StatusInstantPassed                    = 0x28
	StatusParameterOutOfMandatoryRange     = 0x30
	StatusControllerBusy                   = 0x3a
	StatusConnectionFailedToBeEstablished  = 0x3e
)

var statusNames = map[uint8]string{
	StatusSuccess:                          "Success",
	StatusUnknownHCICommand:                "Unknown HCI Command",
	StatusUnknownConnectionIdentifier:      "Unknown Connection Identifier",
	StatusHardwareFailure:                  "Hardware Failure",
	StatusPageTimeout:                      "Page Timeout",
	StatusAuthenticationFailure:            "Authentication Failure",
	StatusPINOrKeyMissing:                  "PIN or Key Missing",
	StatusMemoryCapacityExceeded:           "Memory Capacity Exceeded",
	StatusConnectionTimeout:                "Connection Timeout",
	StatusConnectionLimitExceeded:          "Connection Limit Exceeded",
	StatusCommandDisallowed:                "Command Disallowed",
	StatusConnectionRejectedLimitedResources: "Connection Rejected due to Limited Resources",
	StatusConnectionRejectedSecurity:       "Connection Rejected due to Security Reasons",
	StatusUnsupportedFeatureOrParameter:    "Unsupported Feature or Parameter Value",
	StatusInvalidHCICommandParameters:      "Invalid HCI Command Parameters",
	StatusRemoteUserTerminatedConnection:   "Remote User Terminated Connection",
	StatusRemoteDeviceTerminatedLowResources: "Remote Device Terminated Connection due to Low Resources",
	StatusRemoteDeviceTerminatedPowerOff:   "Remote Device Terminated Connection due to Power Off",
	StatusConnectionTerminatedByLocalHost:  "Connection Terminated By Local Host",
	StatusUnsupportedRemoteFeature:         "Unsupported Remote Feature",
	StatusInvalidLMPOrLLParameters:         "Invalid LMP Parameters / Invalid LL Parameters",
	StatusUnspecifiedError:                 "Unspecified Error",
	StatusLMPResponseTimeout:               "LMP Response Timeout / LL Response Timeout",
	StatusInstantPassed:                    "Instant Passed",
	StatusParameterOutOfMandatoryRange:     "Parameter Out of Mandatory Range",
	StatusControllerBusy:                   "Controller Busy",
	StatusConnectionFailedToBeEstablished:  "Connection Failed to be Established",
}

// StatusName decodes a raw HCI status/reason byte into its canonical
// Bluetooth Core Specification name, the same table ControllerError uses
// for status classification (spec.md §4.3). Exported so event types that
// carry a status/reason byte of their own -- DisconnectionCompleteEvent's
// Reason, EncryptionChangeEvent's Status -- can be decoded by subscribers
// the same way (spec.md §4.4).
func StatusName(status uint8) string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "Unknown Controller Error"
}
