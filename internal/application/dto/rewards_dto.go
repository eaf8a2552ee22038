package dto

import "github.com/shopspring/decimal"

// RewardTierStatusDTO progreso frente a una meta de premiación.
type RewardTierStatusDTO struct {
	TierID      string          `json:"tier_id"`
	Description string          `json:"description"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Achieved    bool            `json:"achieved"`
	ProgressPct decimal.Decimal `json:"progress_pct"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// RewardProgressDTO estado de premiación de un actor en un período mensual.
type RewardProgressDTO struct {
	ActorID     string                `json:"actor_id"`
	Role        string                `json:"role"`
	PeriodMonth int                   `json:"period_month"`
	PeriodYear  int                   `json:"period_year"`
	Quantity    decimal.Decimal       `json:"quantity"`
	Amount      decimal.Decimal       `json:"amount"`
	Tiers       []RewardTierStatusDTO `json:"tiers"`
}

// CommissionDTO comisión resuelta de un marketer para el período.
type CommissionDTO struct {
	ActorID       string          `json:"actor_id"`
	Role          string          `json:"role"`
	Period        PeriodDTO       `json:"period"`
	Sales         decimal.Decimal `json:"sales"`
	Spend         decimal.Decimal `json:"spend"`
	ROAS          decimal.Decimal `json:"roas"`
	TierID        string          `json:"tier_id,omitempty"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Commission    decimal.Decimal `json:"commission"`
	Bonus         decimal.Decimal `json:"bonus"`
	Earnings      decimal.Decimal `json:"earnings"`
}
