package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

const (
	networkDialTimeout  = 5 * time.Second
	networkWriteTimeout = 10 * time.Second
	networkProbeTimeout = 2 * time.Second
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// jobPrinter opens the device for every job. Jobs are serialized so two
// bills printed at once never interleave on paper.
type jobPrinter struct {
	mu    sync.Mutex
	name  string
	open  func() (io.WriteCloser, error)
	probe func() bool
}

func (p *jobPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, err := p.open()
	if err != nil {
		return fmt.Errorf("printer: failed to open %s: %w", p.name, err)
	}
	defer w.Close()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.name, err)
	}
	return nil
}

func (p *jobPrinter) Close() error {
	return nil
}

func (p *jobPrinter) IsConnected() bool {
	return p.probe()
}

// NewUSBPrinter creates a printer that writes to a USB device file, e.g. /dev/usb/lp0.
func NewUSBPrinter(devicePath string) Printer {
	return &jobPrinter{
		name: "USB device " + devicePath,
		open: func() (io.WriteCloser, error) {
			return os.OpenFile(devicePath, os.O_WRONLY, 0)
		},
		probe: func() bool {
			_, err := os.Stat(devicePath)
			return err == nil
		},
	}
}

// NewNetworkPrinter creates a printer that connects via TCP.
// Address should include port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &jobPrinter{
		name: address,
		open: func() (io.WriteCloser, error) {
			conn, err := net.DialTimeout("tcp", address, networkDialTimeout)
			if err != nil {
				return nil, err
			}
			_ = conn.SetWriteDeadline(time.Now().Add(networkWriteTimeout))
			return conn, nil
		},
		probe: func() bool {
			conn, err := net.DialTimeout("tcp", address, networkProbeTimeout)
			if err != nil {
				return false
			}
			conn.Close()
			return true
		},
	}
}

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Close() error { return nil }
func (nullPrinter) IsConnected() bool { return false }

// NewPrinterFromConfig creates the printer selected by printerType:
// "usb" needs usbPath, "network" needs address, "none" prints nothing.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", printerType)
	}
}
