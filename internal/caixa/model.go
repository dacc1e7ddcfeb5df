// internal/caixa/model.go
package caixa

import (
	"time"

	"gorm.io/gorm"
)

// Tipos de lançamento aceitos no caixa.
const (
	TipoReceita = "receita"
	TipoDespesa = "despesa"
)

// Lancamento é um registro imutável do caixa, opcionalmente vinculado a um
// serviço. Não existe rota de atualização; correções entram como novos
// lançamentos.
type Lancamento struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	TenantID  uint       `gorm:"not null;index" json:"tenantId"`
	Tipo      string     `gorm:"size:20;not null;index" json:"tipo"`
	Valor     float64    `gorm:"not null" json:"valor"`
	Data      time.Time  `gorm:"not null;index" json:"data"`
	Descricao string     `gorm:"size:500" json:"descricao"`
	ServicoID *uint      `gorm:"index" json:"servicoId,omitempty"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Lancamento{})
}
