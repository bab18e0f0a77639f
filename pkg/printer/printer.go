// Package printer sends ESC/POS receipts to a thermal printer attached over
// USB or the network.
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// ErrNotConfigured is returned by the null printer
var ErrNotConfigured = errors.New("printer: no printer configured")

// Printer sends raw ESC/POS bytes to a device
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Ready reports whether the device can be reached right now
	Ready(ctx context.Context) bool
}

// Config selects and addresses a printer
type Config struct {
	// Type is usb, network or none
	Type       string
	DevicePath string
	Address    string
	Timeout    time.Duration
}

// New builds the printer described by cfg
func New(cfg Config) (Printer, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	switch cfg.Type {
	case "usb":
		if cfg.DevicePath == "" {
			return nil, errors.New("printer: device path is required for usb printers")
		}
		return &devicePrinter{path: cfg.DevicePath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, errors.New("printer: address is required for network printers")
		}
		return &networkPrinter{address: cfg.Address, timeout: cfg.Timeout}, nil
	case "none", "":
		return nullPrinter{}, nil
	}
	return nil, fmt.Errorf("printer: unknown type %q (use usb, network or none)", cfg.Type)
}

// devicePrinter writes to a character device such as /dev/usb/lp0
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Ready(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP port, usually 9100
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	d := net.Dialer{Timeout: p.timeout}
	return d.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready(ctx context.Context) bool {
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

func (nullPrinter) Print(context.Context, []byte) error { return ErrNotConfigured }

func (nullPrinter) Ready(context.Context) bool { return false }
