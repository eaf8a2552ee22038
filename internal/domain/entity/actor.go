package entity

import "time"

// Roles de la red de distribución. El flujo de stock baja por niveles:
// HQ → MASTER_AGENT → AGENT / BRANCH → cliente final (vía MARKETER).
const (
	RoleHQ          = "HQ"
	RoleMasterAgent = "MASTER_AGENT"
	RoleAgent       = "AGENT"
	RoleBranch      = "BRANCH"
	RoleMarketer    = "MARKETER"
)

// Actor es cualquier identidad de la red que posee saldo de inventario o
// coloca/recibe órdenes: la sede central, un agente maestro, un agente, una sucursal
// o un marketer. ParentID apunta al nivel superior (su vendedor por defecto).
type Actor struct {
	ID        string
	Name      string
	Role      string
	ParentID  *string
	Active    bool
	CreatedAt time.Time
}

// SellerRole indica si el actor puede actuar como vendedor en una liquidación.
func (a *Actor) SellerRole() bool {
	return a.Role == RoleHQ || a.Role == RoleMasterAgent || a.Role == RoleAgent
}
