package printing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/escpos"
)

type fakePrinter struct {
	connected bool
	printErr  error
	printed   [][]byte
	closed    bool
}

func (p *fakePrinter) Print(data []byte) error {
	if p.printErr != nil {
		return p.printErr
	}
	p.printed = append(p.printed, data)
	return nil
}

func (p *fakePrinter) Close() error {
	p.closed = true
	return nil
}

func (p *fakePrinter) IsConnected() bool { return p.connected }

func newTestBridge(printer escpos.Printer, factoryErr error) *Bridge {
	b := NewBridge(nil)
	b.newPrinter = func(kind, usbPath, address string) (escpos.Printer, error) {
		if factoryErr != nil {
			return nil, factoryErr
		}
		return printer, nil
	}
	return b
}

func TestConnectAndWrite(t *testing.T) {
	printer := &fakePrinter{connected: true}
	bridge := newTestBridge(printer, nil)
	outletID := uuid.New()

	status, err := bridge.Connect(context.Background(), outletID, ConnectInput{Kind: "network", Address: "10.0.0.9:9100"})
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !status.Connected || status.Kind != "network" {
		t.Fatalf("unexpected status %+v", status)
	}

	if err := bridge.Write(context.Background(), outletID, []byte("receipt")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if len(printer.printed) != 1 || string(printer.printed[0]) != "receipt" {
		t.Fatalf("unexpected printed data %v", printer.printed)
	}
}

func TestConnectRejectsUnreachablePrinter(t *testing.T) {
	bridge := newTestBridge(&fakePrinter{connected: false}, nil)

	_, err := bridge.Connect(context.Background(), uuid.New(), ConnectInput{Kind: "network", Address: "10.0.0.9:9100"})
	if err == nil {
		t.Fatal("expected dependency error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestConnectRejectsInvalidConfiguration(t *testing.T) {
	bridge := newTestBridge(nil, errors.New("usb path required"))

	_, err := bridge.Connect(context.Background(), uuid.New(), ConnectInput{Kind: "usb"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestWriteWithoutPrinterIsStateConflict(t *testing.T) {
	bridge := NewBridge(nil)
	err := bridge.Write(context.Background(), uuid.New(), []byte("x"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestWriteFailureIsDependencyError(t *testing.T) {
	printer := &fakePrinter{connected: true, printErr: errors.New("paper jam")}
	bridge := newTestBridge(printer, nil)
	outletID := uuid.New()
	if _, err := bridge.Connect(context.Background(), outletID, ConnectInput{Kind: "network", Address: "10.0.0.9:9100"}); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	err := bridge.Write(context.Background(), outletID, []byte("x"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestConnectReplacesPreviousPrinter(t *testing.T) {
	first := &fakePrinter{connected: true}
	bridge := newTestBridge(first, nil)
	outletID := uuid.New()
	if _, err := bridge.Connect(context.Background(), outletID, ConnectInput{Kind: "network", Address: "a:9100"}); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	second := &fakePrinter{connected: true}
	bridge.newPrinter = func(kind, usbPath, address string) (escpos.Printer, error) {
		return second, nil
	}
	if _, err := bridge.Connect(context.Background(), outletID, ConnectInput{Kind: "network", Address: "b:9100"}); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if !first.closed {
		t.Fatal("previous printer must be closed on replace")
	}
	if status := bridge.StatusFor(outletID); status.Address != "b:9100" {
		t.Fatalf("expected replacement printer status, got %+v", status)
	}
}

func TestDisconnect(t *testing.T) {
	printer := &fakePrinter{connected: true}
	bridge := newTestBridge(printer, nil)
	outletID := uuid.New()
	if _, err := bridge.Connect(context.Background(), outletID, ConnectInput{Kind: "none"}); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	if err := bridge.Disconnect(context.Background(), outletID); err != nil {
		t.Fatalf("disconnect failed: %v", err)
	}
	if !printer.closed {
		t.Fatal("printer must be closed on disconnect")
	}
	if status := bridge.StatusFor(outletID); status.Connected {
		t.Fatalf("expected disconnected status, got %+v", status)
	}

	// Disconnecting an outlet with no printer is a no-op.
	if err := bridge.Disconnect(context.Background(), uuid.New()); err != nil {
		t.Fatalf("idle disconnect failed: %v", err)
	}
}
