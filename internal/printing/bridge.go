package printing

import (
	"context"
	"sync"

	"github.com/google/uuid"

	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
	"github.com/mfadlih/cukurid-backend/pkg/escpos"
	"github.com/mfadlih/cukurid-backend/pkg/logger"
)

// ConnectInput describes the printer an outlet wants to attach.
type ConnectInput struct {
	Kind    string // usb | network | none
	USBPath string
	Address string
}

// Status reports the printer state for one outlet.
type Status struct {
	Connected bool   `json:"connected"`
	Kind      string `json:"kind,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Bridge keeps one printer connection per outlet. Connection loss is observed
// on write and reflected in Status; writes are never retried. A failed print
// never reverses the sale it was printing.
type Bridge struct {
	mu       sync.Mutex
	printers map[uuid.UUID]*entry
	logg     *logger.Logger

	// newPrinter is swapped in tests.
	newPrinter func(kind, usbPath, address string) (escpos.Printer, error)
}

type entry struct {
	printer escpos.Printer
	kind    string
	address string
}

// NewBridge builds an empty printer bridge.
func NewBridge(logg *logger.Logger) *Bridge {
	return &Bridge{
		printers:   make(map[uuid.UUID]*entry),
		logg:       logg,
		newPrinter: escpos.NewPrinter,
	}
}

// Connect attaches a printer for the outlet, replacing any previous one.
// A printer that cannot be reached is a dependency failure, not a state
// conflict: the caller supplied a config the hardware rejected.
func (b *Bridge) Connect(ctx context.Context, outletID uuid.UUID, input ConnectInput) (*Status, error) {
	printer, err := b.newPrinter(input.Kind, input.USBPath, input.Address)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid printer configuration")
	}
	if !printer.IsConnected() {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "printer is unreachable")
	}

	b.mu.Lock()
	if previous, ok := b.printers[outletID]; ok {
		_ = previous.printer.Close()
	}
	b.printers[outletID] = &entry{
		printer: printer,
		kind:    input.Kind,
		address: input.Address,
	}
	b.mu.Unlock()

	if b.logg != nil {
		b.logg.Info(b.logg.WithOutletID(ctx, outletID.String()), "printer connected")
	}
	return b.StatusFor(outletID), nil
}

// Write sends raw ESC/POS bytes to the outlet's printer. Writing without a
// connected printer is a state conflict.
func (b *Bridge) Write(ctx context.Context, outletID uuid.UUID, data []byte) error {
	b.mu.Lock()
	current, ok := b.printers[outletID]
	b.mu.Unlock()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no printer connected for outlet")
	}

	if err := current.printer.Print(data); err != nil {
		if b.logg != nil {
			b.logg.Error(b.logg.WithOutletID(ctx, outletID.String()), "printer write failed", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing to printer")
	}
	return nil
}

// Disconnect detaches the outlet's printer, if any.
func (b *Bridge) Disconnect(ctx context.Context, outletID uuid.UUID) error {
	b.mu.Lock()
	current, ok := b.printers[outletID]
	if ok {
		delete(b.printers, outletID)
	}
	b.mu.Unlock()

	if !ok {
		return nil
	}
	if err := current.printer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "closing printer")
	}
	if b.logg != nil {
		b.logg.Info(b.logg.WithOutletID(ctx, outletID.String()), "printer disconnected")
	}
	return nil
}

// StatusFor reports the current printer state for the outlet.
func (b *Bridge) StatusFor(outletID uuid.UUID) *Status {
	b.mu.Lock()
	current, ok := b.printers[outletID]
	b.mu.Unlock()

	if !ok {
		return &Status{Connected: false}
	}
	return &Status{
		Connected: current.printer.IsConnected(),
		Kind:      current.kind,
		Address:   current.address,
	}
}
