package hci

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeOpcodeRoundTrip(t *testing.T) {
	cases := []struct {
		ogf uint8
		ocf uint16
	}{
		{ogfCB, 0x0003},
		{ogfLE, 0x000d},
		{ogfLE, 0x0043},
	}
	for _, tt := range cases {
		op := makeOpcode(tt.ogf, tt.ocf)
		require.Equal(t, tt.ogf, op.ogf())
		require.Equal(t, tt.ocf, op.ocf())
	}
}

func TestKnownOpcodesMatchConstruction(t *testing.T) {
	require.Equal(t, opReset, makeOpcode(ogfCB, 0x0003))
	require.Equal(t, opLECreateConnection, makeOpcode(ogfLE, 0x000d))
	require.Equal(t, opLESetExtendedAdvertisingParameters, makeOpcode(ogfLE, 0x0036))
}

func TestOpcodeStringFallsBackForUnknown(t *testing.T) {
	require.Equal(t, "Unknown HCI Command", opcode(0x7fff).String())
	require.Equal(t, "Reset", opReset.String())
}
