package printer

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/open-cli-collective/statblock-cli/pkg/escpos"
)

const (
	// DefaultPort is the raw TCP printing port used by network receipt printers.
	DefaultPort = "9100"

	defaultTimeout = 10 * time.Second
)

// Transport delivers encoded ESC/POS bytes.
type Transport interface {
	Send(ctx context.Context, data []byte) error
}

// Dump writes a hex dump of the bytes instead of printing them.
type Dump struct {
	w io.Writer
}

// NewDump creates a dry-run transport writing to w.
func NewDump(w io.Writer) *Dump {
	return &Dump{w: w}
}

// Send writes the dump.
func (d *Dump) Send(_ context.Context, data []byte) error {
	dumper := hex.Dumper(d.w)
	if _, err := dumper.Write(data); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	if err := dumper.Close(); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}

// Network sends bytes to a printer over raw TCP and cuts the paper.
type Network struct {
	addr    string
	timeout time.Duration
}

// NewNetwork creates a network transport. addr is host or host:port; the
// port defaults to 9100.
func NewNetwork(addr string) *Network {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, DefaultPort)
	}
	return &Network{
		addr:    addr,
		timeout: defaultTimeout,
	}
}

// Addr returns the resolved host:port.
func (n *Network) Addr() string {
	return n.addr
}

// SetTimeout sets the dial and write timeout.
func (n *Network) SetTimeout(d time.Duration) {
	n.timeout = d
}

// Send dials the printer, writes data followed by a cut command and closes
// the connection.
func (n *Network) Send(ctx context.Context, data []byte) error {
	dialer := &net.Dialer{Timeout: n.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to printer %s: %w", n.addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(n.timeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send to printer %s: %w", n.addr, err)
	}
	if _, err := conn.Write(escpos.Cut()); err != nil {
		return fmt.Errorf("failed to send cut to printer %s: %w", n.addr, err)
	}
	return nil
}

// Ping checks that the printer accepts connections without sending anything.
func (n *Network) Ping(ctx context.Context) error {
	dialer := &net.Dialer{Timeout: n.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", n.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to printer %s: %w", n.addr, err)
	}
	return conn.Close()
}
