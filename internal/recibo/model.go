package recibo

import (
	"time"

	"gorm.io/gorm"
)

// Recibo é o agregado diário de ganhos de um instalador: quantidade de
// serviços liquidados, soma de mão de obra, soma de reembolsos e total.
// A chave (tenant, instalador, data) é única; reliquidar o mesmo dia
// atualiza o registro existente em vez de duplicá-lo.
type Recibo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Numero string `gorm:"size:64;uniqueIndex" json:"numero"`

	TenantID     uint      `gorm:"not null;uniqueIndex:idx_recibo_dia" json:"tenantId"`
	InstaladorID uint      `gorm:"not null;uniqueIndex:idx_recibo_dia" json:"instaladorId"`
	Data         time.Time `gorm:"not null;uniqueIndex:idx_recibo_dia" json:"data"`

	QtdServicos    int     `gorm:"not null;default:0" json:"qtdServicos"`
	TotalMaoObra   float64 `gorm:"not null;default:0" json:"totalMaoObra"`
	TotalReembolso float64 `gorm:"not null;default:0" json:"totalReembolso"`
	Total          float64 `gorm:"not null;default:0" json:"total"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Recibo{})
}
