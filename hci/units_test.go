package hci

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdvTicksRounding(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want uint16
	}{
		{0, 0},
		{625 * time.Microsecond, 1},
		{20 * time.Millisecond, 32},    // 20ms / 0.625ms = 32 exactly
		{100 * time.Millisecond, 160},
		{312 * time.Microsecond, 0},    // rounds down (<0.5 tick)
		{313 * time.Microsecond, 1},    // rounds up (>=0.5 tick)
	}
	for _, tt := range cases {
		require.Equal(t, tt.want, advTicks(tt.d), "advTicks(%s)", tt.d)
	}
}

func TestAdvTicksClampsToUint16Max(t *testing.T) {
	require.Equal(t, uint16(0xffff), advTicks(1*time.Hour))
}

func TestScanDurationAndPeriodTicks(t *testing.T) {
	require.Equal(t, uint16(100), scanDurationTicks(1*time.Second))
	require.Equal(t, uint16(1), scanPeriodTicks(1280*time.Millisecond))
}
