// Package marketing registra los insumos de los reportes: líneas de venta al
// cliente final y gastos publicitarios por marketer.
package marketing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
)

// MarketingUseCase casos de uso de captura de datos de mercadeo.
type MarketingUseCase struct {
	purchaseRepo repository.PurchaseRepository
	spendRepo    repository.AdSpendRepository
	actorRepo    repository.ActorRepository
}

// NewMarketingUseCase construye el caso de uso.
func NewMarketingUseCase(
	purchaseRepo repository.PurchaseRepository,
	spendRepo repository.AdSpendRepository,
	actorRepo repository.ActorRepository,
) *MarketingUseCase {
	return &MarketingUseCase{purchaseRepo: purchaseRepo, spendRepo: spendRepo, actorRepo: actorRepo}
}

// RecordPurchase registra una línea de venta al cliente final. Sin product_id el
// nombre debe contener el delimitador de combo; de lo contrario la línea jamás
// entraría a ningún bucket de reporte.
func (uc *MarketingUseCase) RecordPurchase(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.CustomerPurchase, error) {
	if !in.Quantity.IsPositive() || in.TotalPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" && !strings.Contains(in.ProductName, entity.ComboDelimiter) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkMarketer(in.MarketerID); err != nil {
		return nil, err
	}

	orderDate, err := parseOptionalDate(in.OrderDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	processedDate, err := parseOptionalDate(in.ProcessedDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	returnDate, err := parseOptionalDate(in.ReturnDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	var productID *string
	if in.ProductID != "" {
		productID = &in.ProductID
	}
	p := &entity.CustomerPurchase{
		ID:             uuid.New().String(),
		MarketerID:     in.MarketerID,
		ProductID:      productID,
		ProductName:    in.ProductName,
		Platform:       in.Platform,
		CustomerType:   in.CustomerType,
		DeliveryStatus: in.DeliveryStatus,
		Quantity:       in.Quantity,
		TotalPrice:     in.TotalPrice,
		OrderDate:      orderDate,
		ProcessedDate:  processedDate,
		ReturnDate:     returnDate,
	}
	if err := uc.purchaseRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// RecordAdSpend registra un gasto publicitario.
func (uc *MarketingUseCase) RecordAdSpend(ctx context.Context, in dto.CreateAdSpendRequest) (*entity.AdSpend, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkMarketer(in.MarketerID); err != nil {
		return nil, err
	}
	spendDate, err := time.ParseInLocation("2006-01-02", in.SpendDate, time.Local)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.AdSpend{
		ID:         uuid.New().String(),
		MarketerID: in.MarketerID,
		Platform:   in.Platform,
		Amount:     in.Amount,
		SpendDate:  spendDate,
		CreatedAt:  time.Now(),
	}
	if err := uc.spendRepo.Create(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *MarketingUseCase) checkMarketer(marketerID string) error {
	actor, err := uc.actorRepo.GetByID(marketerID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrNotFound
	}
	if actor.Role != entity.RoleMarketer {
		return domain.ErrInvalidInput
	}
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
