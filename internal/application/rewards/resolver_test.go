package rewards_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distriops-api/internal/application/rewards"
	"github.com/jhoicas/Distriops-api/internal/domain/entity"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// ──────────────────────────────────────────────────────────────────────────────
// ResolveReward — progreso de metas de premiación
// ──────────────────────────────────────────────────────────────────────────────

func rewardTiers() []*entity.RewardTier {
	return []*entity.RewardTier{
		// Deliberadamente desordenados: la resolución debe ordenar por MinQuantity.
		{ID: "meta-200", Role: entity.RoleAgent, MinQuantity: d(200), Description: "Viaje", Active: true},
		{ID: "meta-50", Role: entity.RoleAgent, MinQuantity: d(50), Description: "Bono", Active: true},
		{ID: "meta-inactiva", Role: entity.RoleAgent, MinQuantity: d(10), Active: false},
		{ID: "meta-cero", Role: entity.RoleAgent, MinQuantity: decimal.Zero, Active: true},
	}
}

func TestResolveReward_ProgresoYOrden(t *testing.T) {
	statuses := rewards.ResolveReward(rewardTiers(), d(75))

	// Metas inactivas o con MinQuantity no positiva se descartan.
	require.Len(t, statuses, 2)
	assert.Equal(t, "meta-50", statuses[0].Tier.ID, "orden ascendente por MinQuantity")
	assert.Equal(t, "meta-200", statuses[1].Tier.ID)

	// Meta de 50 alcanzada: progreso al tope de 100, nada faltante.
	assert.True(t, statuses[0].Achieved)
	assert.True(t, statuses[0].ProgressPct.Equal(d(100)), "el progreso se topa en 100")
	assert.True(t, statuses[0].Remaining.IsZero())

	// Meta de 200: 75/200 = 37.5%, redondeado al entero más cercano = 38; faltan 125.
	assert.False(t, statuses[1].Achieved)
	assert.True(t, statuses[1].ProgressPct.Equal(d(38)), "el progreso se redondea a entero")
	assert.True(t, statuses[1].Remaining.Equal(d(125)))
}

func TestResolveReward_ProgresoRedondeaAEntero(t *testing.T) {
	tiers := []*entity.RewardTier{
		{ID: "meta-3", Role: entity.RoleAgent, MinQuantity: d(3), Active: true},
	}

	// 1/3 = 33.33...% -> 33
	statuses := rewards.ResolveReward(tiers, d(1))
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].ProgressPct.Equal(d(33)))

	// 2/3 = 66.66...% -> 67
	statuses = rewards.ResolveReward(tiers, d(2))
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].ProgressPct.Equal(d(67)))
}

func TestResolveReward_SinVentas(t *testing.T) {
	statuses := rewards.ResolveReward(rewardTiers(), decimal.Zero)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.False(t, s.Achieved)
		assert.True(t, s.ProgressPct.IsZero())
		assert.True(t, s.Remaining.Equal(s.Tier.MinQuantity))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolveCommission — bandas de comisión
// ──────────────────────────────────────────────────────────────────────────────

func commissionTiers() []*entity.CommissionTier {
	return []*entity.CommissionTier{
		{
			ID: "banda-alta", Role: entity.RoleMarketer,
			MinSales: d(10000), MaxSales: decimal.Zero, // sin cota superior
			RoasMin: d(3), RoasMax: decimal.Zero,
			CommissionPct: d(10), BonusAmount: d(500), Active: true,
		},
		{
			ID: "banda-media", Role: entity.RoleMarketer,
			MinSales: d(3000), MaxSales: d(9999.99),
			RoasMin: d(2), RoasMax: d(5),
			CommissionPct: d(7), BonusAmount: d(100), Active: true,
		},
		{
			ID: "banda-baja", Role: entity.RoleMarketer,
			MinSales: d(0), MaxSales: d(2999.99),
			RoasMin: d(0), RoasMax: d(5),
			CommissionPct: d(5), BonusAmount: decimal.Zero, Active: true,
		},
	}
}

func TestResolveCommission_BandaMedia(t *testing.T) {
	// Ventas 5000 con ROAS 2.5 caen en la banda media: 7% + bono 100.
	res := rewards.ResolveCommission(commissionTiers(), d(5000), d(2.5))

	require.NotNil(t, res.Tier)
	assert.Equal(t, "banda-media", res.Tier.ID)
	assert.True(t, res.Commission.Equal(d(350)), "7 por ciento de 5000")
	assert.True(t, res.Bonus.Equal(d(100)))
	assert.True(t, res.Earnings.Equal(d(450)))
}

func TestResolveCommission_CotaSuperiorAbierta(t *testing.T) {
	// MaxSales y RoasMax en cero son cotas abiertas: ventas y ROAS enormes aplican.
	res := rewards.ResolveCommission(commissionTiers(), d(1000000), d(50))

	require.NotNil(t, res.Tier)
	assert.Equal(t, "banda-alta", res.Tier.ID)
	assert.True(t, res.Commission.Equal(d(100000)))
	assert.True(t, res.Earnings.Equal(d(100500)))
}

func TestResolveCommission_NingunaBandaAplica(t *testing.T) {
	// Ventas en banda media pero ROAS fuera del rango [2, 5].
	res := rewards.ResolveCommission(commissionTiers(), d(5000), d(1))

	assert.Nil(t, res.Tier)
	assert.True(t, res.Commission.IsZero())
	assert.True(t, res.Bonus.IsZero())
	assert.True(t, res.Earnings.IsZero())
}

func TestResolveCommission_GanaLaPrimeraPorMinSales(t *testing.T) {
	solapadas := []*entity.CommissionTier{
		{
			ID: "b", Role: entity.RoleMarketer,
			MinSales: d(1000), MaxSales: d(5000),
			RoasMin: d(0), RoasMax: decimal.Zero,
			CommissionPct: d(8), Active: true,
		},
		{
			ID: "a", Role: entity.RoleMarketer,
			MinSales: d(0), MaxSales: d(5000),
			RoasMin: d(0), RoasMax: decimal.Zero,
			CommissionPct: d(5), Active: true,
		},
	}

	res := rewards.ResolveCommission(solapadas, d(2000), d(1))
	require.NotNil(t, res.Tier)
	assert.Equal(t, "a", res.Tier.ID, "con solape gana la banda de menor MinSales")
}

func TestResolveCommission_BordesInclusivos(t *testing.T) {
	res := rewards.ResolveCommission(commissionTiers(), d(3000), d(2))
	require.NotNil(t, res.Tier)
	assert.Equal(t, "banda-media", res.Tier.ID, "los extremos de la banda están incluidos")

	res = rewards.ResolveCommission(commissionTiers(), d(2999.99), d(5))
	require.NotNil(t, res.Tier)
	assert.Equal(t, "banda-baja", res.Tier.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateCommissionTiers — detección de solapes
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateCommissionTiers_SinSolape(t *testing.T) {
	warnings := rewards.ValidateCommissionTiers(commissionTiers())
	// banda-media y banda-baja comparten ventas disjuntas; los ROAS se cruzan
	// pero las ventas no, así que no hay solape real... salvo banda-alta con
	// cotas abiertas que nunca cruza las otras por MinSales=10000 > MaxSales.
	assert.Empty(t, warnings)
}

func TestValidateCommissionTiers_DetectaSolape(t *testing.T) {
	tiers := []*entity.CommissionTier{
		{
			ID: "x", Role: entity.RoleMarketer,
			MinSales: d(0), MaxSales: d(5000),
			RoasMin: d(0), RoasMax: d(3),
			CommissionPct: d(5), Active: true,
		},
		{
			ID: "y", Role: entity.RoleMarketer,
			MinSales: d(4000), MaxSales: d(8000),
			RoasMin: d(2), RoasMax: d(6),
			CommissionPct: d(7), Active: true,
		},
	}

	warnings := rewards.ValidateCommissionTiers(tiers)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "solapadas")
	assert.Contains(t, warnings[0], entity.RoleMarketer)
}

func TestValidateCommissionTiers_RolesDistintosNoSolapan(t *testing.T) {
	tiers := []*entity.CommissionTier{
		{ID: "m", Role: entity.RoleMarketer, MinSales: d(0), MaxSales: d(5000), CommissionPct: d(5), Active: true},
		{ID: "a", Role: entity.RoleAgent, MinSales: d(0), MaxSales: d(5000), CommissionPct: d(5), Active: true},
	}
	assert.Empty(t, rewards.ValidateCommissionTiers(tiers))
}
