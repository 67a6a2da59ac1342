// Command hci-shell is a small diagnostic CLI for driving an HCI
// transport by hand: reset a controller, read its identity, and watch
// advertising reports scroll by. Grounded on the teacher's functional
// options for device construction (_examples/paypal-gatt/option_linux.go)
// and the pack's cobra-based command layout (malbeclabs-doublezero).
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fenwick-ble/hci/hci"
)

var (
	transportAddr string
	timeout       time.Duration
	verbose       bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hci-shell",
		Short: "Talk to an HCI controller over a TCP transport",
	}
	root.PersistentFlags().StringVar(&transportAddr, "addr", "127.0.0.1:9999",
		"TCP address of the controller's HCI transport")
	root.PersistentFlags().DurationVar(&timeout, "timeout", hci.DefaultCommandTimeout,
		"per-command timeout")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(resetCmd())
	root.AddCommand(identityCmd())
	root.AddCommand(scanCmd())
	return root
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func dial() (net.Conn, error) {
	return net.DialTimeout("tcp", transportAddr, 5*time.Second)
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the controller and re-establish the default event masks",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dial()
			if err != nil {
				return err
			}
			h := hci.NewHost(conn, hci.WithTimeout(timeout), hci.WithLogger(newLogger()))
			defer h.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout*5)
			defer cancel()
			if err := h.Reset(ctx); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Println("controller reset")
			return nil
		},
	}
}

func identityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Read the controller's address and supported features",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dial()
			if err != nil {
				return err
			}
			h := hci.NewHost(conn, hci.WithTimeout(timeout), hci.WithLogger(newLogger()))
			defer h.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var addrRP hci.ReadBdAddrRP
			if err := h.Send(ctx, hci.ReadBdAddr{}, &addrRP); err != nil {
				return fmt.Errorf("ReadBdAddr: %w", err)
			}
			fmt.Printf("address: %s\n", addrRP.Address)

			var featRP hci.LeReadLocalSupportedFeaturesRP
			if err := h.Send(ctx, hci.LeReadLocalSupportedFeatures{}, &featRP); err != nil {
				return fmt.Errorf("LeReadLocalSupportedFeatures: %w", err)
			}
			fmt.Printf("LE features: %#016x\n", featRP.LEFeatures)
			return nil
		},
	}
}

func scanCmd() *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Enable LE scanning and print advertising reports until --duration elapses",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := dial()
			if err != nil {
				return err
			}
			h := hci.NewHost(conn, hci.WithTimeout(timeout), hci.WithLogger(newLogger()))
			defer h.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			if err := h.Send(ctx, hci.LeSetScanParameters{
				LEScanType:     hci.ScanTypeActive,
				LEScanInterval: 100 * time.Millisecond,
				LEScanWindow:   50 * time.Millisecond,
			}, nil); err != nil {
				return fmt.Errorf("LeSetScanParameters: %w", err)
			}
			if err := h.Send(ctx, hci.LeSetScanEnable{LEScanEnable: true, FilterDuplicates: true}, nil); err != nil {
				return fmt.Errorf("LeSetScanEnable: %w", err)
			}
			fmt.Println("scanning, press ctrl-c to stop")

			deadline := time.After(duration)
			for {
				select {
				case rep := <-h.Events().AdvertisingReports():
					fmt.Printf("%s  rssi=%d  event=0x%02x  data=% x\n", rep.Address, rep.RSSI, rep.EventType, rep.Data)
				case <-deadline:
					stopCtx, stopCancel := context.WithTimeout(context.Background(), timeout)
					defer stopCancel()
					return h.Send(stopCtx, hci.LeSetScanEnable{LEScanEnable: false}, nil)
				}
			}
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 30*time.Second, "how long to scan")
	return cmd
}
