package receipts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadlih/cukurid-backend/pkg/config"
	"github.com/mfadlih/cukurid-backend/pkg/db/models"
	pkgerrors "github.com/mfadlih/cukurid-backend/pkg/errors"
)

// TemplateDTO is the per-outlet receipt template projection.
type TemplateDTO struct {
	OutletID     uuid.UUID `json:"outlet_id"`
	PaperWidthMM int       `json:"paper_width_mm"`
	HeaderText   string    `json:"header_text"`
	FooterText   string    `json:"footer_text"`
	ShowAddress  bool      `json:"show_address"`
	ShowPhone    bool      `json:"show_phone"`
	ShowDate     bool      `json:"show_date"`
	ShowCashier  bool      `json:"show_cashier"`
	ShowCustomer bool      `json:"show_customer"`
}

// UpdateTemplateInput holds the validated payload to replace a template.
type UpdateTemplateInput struct {
	PaperWidthMM int
	HeaderText   string
	FooterText   string
	ShowAddress  bool
	ShowPhone    bool
	ShowDate     bool
	ShowCashier  bool
	ShowCustomer bool
}

// RenderedReceipt carries both render outputs for one transaction.
type RenderedReceipt struct {
	HTML   string `json:"html"`
	ESCPOS []byte `json:"escpos"`
}

type transactionLoader interface {
	FindWithItems(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
}

type outletLoader interface {
	FindOutletByID(ctx context.Context, id uuid.UUID) (*models.Outlet, error)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*models.Employee, error)
}

// Service exposes receipt template management and render operations.
type Service interface {
	GetTemplate(ctx context.Context, outletID uuid.UUID) (*TemplateDTO, error)
	UpdateTemplate(ctx context.Context, outletID uuid.UUID, input UpdateTemplateInput) (*TemplateDTO, error)
	RenderTransaction(ctx context.Context, transactionID uuid.UUID, cash *CashInfo) (*RenderedReceipt, error)
	BuildForTransaction(ctx context.Context, transactionID uuid.UUID, cash *CashInfo) (*Receipt, error)
}

type service struct {
	repo    *Repository
	txRepo  transactionLoader
	orgRepo outletLoader
	cfg     config.ReceiptConfig
}

// NewService builds the receipts service.
func NewService(repo *Repository, txRepo transactionLoader, orgRepo outletLoader, cfg config.ReceiptConfig) Service {
	return &service{repo: repo, txRepo: txRepo, orgRepo: orgRepo, cfg: cfg}
}

func (s *service) GetTemplate(ctx context.Context, outletID uuid.UUID) (*TemplateDTO, error) {
	tpl, err := s.repo.FindTemplate(ctx, outletID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No stored template: serve the defaults.
			defaults := models.ReceiptTemplate{
				OutletID:     outletID,
				PaperWidthMM: 58,
				ShowAddress:  true,
				ShowPhone:    true,
				ShowDate:     true,
				ShowCashier:  true,
				ShowCustomer: true,
			}
			dto := toTemplateDTO(defaults)
			return &dto, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading receipt template")
	}
	dto := toTemplateDTO(*tpl)
	return &dto, nil
}

func (s *service) UpdateTemplate(ctx context.Context, outletID uuid.UUID, input UpdateTemplateInput) (*TemplateDTO, error) {
	if input.PaperWidthMM != 58 && input.PaperWidthMM != 80 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paper width must be 58 or 80 mm")
	}

	tpl := &models.ReceiptTemplate{
		OutletID:     outletID,
		PaperWidthMM: input.PaperWidthMM,
		HeaderText:   input.HeaderText,
		FooterText:   input.FooterText,
		ShowAddress:  input.ShowAddress,
		ShowPhone:    input.ShowPhone,
		ShowDate:     input.ShowDate,
		ShowCashier:  input.ShowCashier,
		ShowCustomer: input.ShowCustomer,
	}
	if err := s.repo.UpsertTemplate(ctx, tpl); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving receipt template")
	}
	dto := toTemplateDTO(*tpl)
	return &dto, nil
}

func (s *service) BuildForTransaction(ctx context.Context, transactionID uuid.UUID, cash *CashInfo) (*Receipt, error) {
	tx, err := s.txRepo.FindWithItems(ctx, transactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading transaction")
	}

	outlet, err := s.orgRepo.FindOutletByID(ctx, tx.OutletID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading outlet")
	}

	cashierName := ""
	if cashier, cErr := s.orgRepo.FindEmployeeByID(ctx, tx.CashierID); cErr == nil {
		cashierName = cashier.FullName
	}
	barberName := ""
	if barber, bErr := s.orgRepo.FindEmployeeByID(ctx, tx.ServingEmployeeID); bErr == nil {
		barberName = barber.FullName
	}

	var tpl *models.ReceiptTemplate
	if found, tErr := s.repo.FindTemplate(ctx, tx.OutletID); tErr == nil {
		tpl = found
	}

	return Build(tx, outlet, cashierName, barberName, tpl, s.cfg, cash), nil
}

func (s *service) RenderTransaction(ctx context.Context, transactionID uuid.UUID, cash *CashInfo) (*RenderedReceipt, error) {
	receipt, err := s.BuildForTransaction(ctx, transactionID, cash)
	if err != nil {
		return nil, err
	}
	html, err := RenderHTML(receipt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rendering receipt")
	}
	return &RenderedReceipt{
		HTML:   html,
		ESCPOS: RenderESCPOS(receipt),
	}, nil
}

func toTemplateDTO(tpl models.ReceiptTemplate) TemplateDTO {
	return TemplateDTO{
		OutletID:     tpl.OutletID,
		PaperWidthMM: tpl.PaperWidthMM,
		HeaderText:   tpl.HeaderText,
		FooterText:   tpl.FooterText,
		ShowAddress:  tpl.ShowAddress,
		ShowPhone:    tpl.ShowPhone,
		ShowDate:     tpl.ShowDate,
		ShowCashier:  tpl.ShowCashier,
		ShowCustomer: tpl.ShowCustomer,
	}
}
