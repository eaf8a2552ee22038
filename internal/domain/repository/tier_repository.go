package repository

import "github.com/jhoicas/Distriops-api/internal/domain/entity"

// TierRepository puerto de configuración de premios y comisiones (solo lectura
// para el resolutor; la administración de tiers es un flujo aparte).
type TierRepository interface {
	// ListRewardTiers tiers de premio activos para rol y período, ordenados por min_quantity ASC.
	ListRewardTiers(role string, month, year int) ([]*entity.RewardTier, error)
	// ListCommissionTiers bandas de comisión activas para el rol, ordenadas por min_sales ASC.
	ListCommissionTiers(role string) ([]*entity.CommissionTier, error)
}
