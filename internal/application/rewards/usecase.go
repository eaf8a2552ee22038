package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distriops-api/internal/application/dto"
	"github.com/jhoicas/Distriops-api/internal/application/reporting"
	"github.com/jhoicas/Distriops-api/internal/domain"
	"github.com/jhoicas/Distriops-api/internal/domain/repository"
	"github.com/jhoicas/Distriops-api/pkg/logger"
)

// RewardsUseCase resuelve el estado de premios y comisiones de un actor a partir
// de sus totales liquidados del período y la configuración de tiers vigente.
type RewardsUseCase struct {
	actorRepo    repository.ActorRepository
	txnRepo      repository.TransactionRepository
	tierRepo     repository.TierRepository
	purchaseRepo repository.PurchaseRepository
	spendRepo    repository.AdSpendRepository
	log          *logger.Logger
}

// NewRewardsUseCase construye el caso de uso.
func NewRewardsUseCase(
	actorRepo repository.ActorRepository,
	txnRepo repository.TransactionRepository,
	tierRepo repository.TierRepository,
	purchaseRepo repository.PurchaseRepository,
	spendRepo repository.AdSpendRepository,
	log *logger.Logger,
) *RewardsUseCase {
	return &RewardsUseCase{
		actorRepo:    actorRepo,
		txnRepo:      txnRepo,
		tierRepo:     tierRepo,
		purchaseRepo: purchaseRepo,
		spendRepo:    spendRepo,
		log:          log,
	}
}

// GetRewardProgress progreso del actor frente a las metas de premiación del período.
// La cantidad vendida sale de las transacciones liquidadas (compras del actor a su
// nivel superior), que es la métrica de volumen de la red.
func (uc *RewardsUseCase) GetRewardProgress(ctx context.Context, actorID string, month, year int) (*dto.RewardProgressDTO, error) {
	if month < 1 || month > 12 || year < 2000 {
		return nil, fmt.Errorf("%w: período inválido", domain.ErrInvalidInput)
	}
	actor, err := uc.actorRepo.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrNotFound
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	amount, quantity, err := uc.txnRepo.SumByBuyer(actorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("premios: totales del período: %w", err)
	}

	tiers, err := uc.tierRepo.ListRewardTiers(actor.Role, month, year)
	if err != nil {
		return nil, fmt.Errorf("premios: tiers del período: %w", err)
	}

	statuses := ResolveReward(tiers, quantity)
	out := &dto.RewardProgressDTO{
		ActorID:     actorID,
		Role:        actor.Role,
		PeriodMonth: month,
		PeriodYear:  year,
		Quantity:    quantity,
		Amount:      amount.Round(2),
		Tiers:       make([]dto.RewardTierStatusDTO, 0, len(statuses)),
	}
	for _, s := range statuses {
		out.Tiers = append(out.Tiers, dto.RewardTierStatusDTO{
			TierID:      s.Tier.ID,
			Description: s.Tier.Description,
			MinQuantity: s.Tier.MinQuantity,
			Achieved:    s.Achieved,
			ProgressPct: s.ProgressPct,
			Remaining:   s.Remaining,
		})
	}
	return out, nil
}

// GetCommission resuelve la banda de comisión de un marketer para el rango dado,
// usando sus ventas al cliente final y su gasto publicitario (ROAS).
func (uc *RewardsUseCase) GetCommission(ctx context.Context, marketerID string, from, to time.Time) (*dto.CommissionDTO, error) {
	actor, err := uc.actorRepo.GetByID(marketerID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrNotFound
	}

	purchases, err := uc.purchaseRepo.ListByMarketer(marketerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("comisión: ventas del período: %w", err)
	}
	spends, err := uc.spendRepo.ListByMarketer(marketerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("comisión: gastos del período: %w", err)
	}

	r := reporting.DateRange{Start: from, End: to}
	sales := reporting.SalesTotal(purchases, r, reporting.PurchaseFilter{})
	spend := reporting.SpendTotal(spends, r)
	roas := reporting.ROAS(sales, spend)

	tiers, err := uc.tierRepo.ListCommissionTiers(actor.Role)
	if err != nil {
		return nil, fmt.Errorf("comisión: bandas del rol: %w", err)
	}
	for _, w := range ValidateCommissionTiers(tiers) {
		uc.log.Warn().Str("role", actor.Role).Msg(w)
	}

	result := ResolveCommission(tiers, sales, roas)
	out := &dto.CommissionDTO{
		ActorID: marketerID,
		Role:    actor.Role,
		Period: dto.PeriodDTO{
			StartDate: from.Format("2006-01-02"),
			EndDate:   to.Format("2006-01-02"),
		},
		Sales:      sales.Round(2),
		Spend:      spend.Round(2),
		ROAS:       roas.Round(2),
		Commission: result.Commission,
		Bonus:      result.Bonus,
		Earnings:   result.Earnings,
	}
	if result.Tier != nil {
		out.TierID = result.Tier.ID
		out.CommissionPct = result.Tier.CommissionPct
	}
	return out, nil
}
