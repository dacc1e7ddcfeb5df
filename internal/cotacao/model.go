package cotacao

import (
	"time"

	"gorm.io/gorm"
)

// Estados da cotação. Estados terminais são imutáveis.
const (
	StatusPendente  = "pendente"
	StatusAprovada  = "aprovada"
	StatusPerdida   = "perdida"
	StatusNaoGerada = "nao_gerada"
)

// Cotacao representa o pedido de um cliente antes de virar serviço faturável.
type Cotacao struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TenantID  uint `gorm:"not null;index" json:"tenantId"`
	ClienteID uint `gorm:"not null;index" json:"clienteId"`

	TiposServico []string `gorm:"type:jsonb;serializer:json" json:"tiposServico"`

	DataDesejada  time.Time `json:"dataDesejada"`
	JanelaInicio  string    `gorm:"size:10" json:"janelaInicio"` // "08:00"
	JanelaFim     string    `gorm:"size:10" json:"janelaFim"`
	ValorEstimado float64   `gorm:"not null;default:0" json:"valorEstimado"`
	Descricao     string    `json:"descricao"`
	Observacoes   string    `json:"observacoes"`

	Status string `gorm:"size:30;not null;default:'pendente';index" json:"status"`
}

// Terminal informa se a cotação já chegou a um estado imutável.
func (c *Cotacao) Terminal() bool {
	return c.Status == StatusAprovada || c.Status == StatusPerdida || c.Status == StatusNaoGerada
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cotacao{})
}
