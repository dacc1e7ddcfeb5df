package certificacao

import (
	"time"

	"gorm.io/gorm"
)

// Certificacao habilita um instalador a atender serviços dos tipos liberados.
// Nasce de uma tentativa aprovada em um questionário, ou de concessão manual
// por um administrador.
type Certificacao struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TenantID     uint `gorm:"not null;index" json:"tenantId"`
	InstaladorID uint `gorm:"not null;index" json:"instaladorId"`

	TiposServicoLiberados []string `gorm:"type:jsonb;serializer:json" json:"tiposServicoLiberados"`

	// ValidadeAte nulo significa certificação sem prazo de expiração.
	ValidadeAte *time.Time `json:"validadeAte,omitempty"`
	Ativa       bool       `gorm:"not null;default:true;index" json:"ativa"`

	// Origem (nulos quando a concessão foi manual).
	QuestionarioID *uint `json:"questionarioId,omitempty"`
	TentativaID    *uint `json:"tentativaId,omitempty"`
}

// Vigente informa se a certificação vale no instante dado: ativa e não expirada.
func (c *Certificacao) Vigente(agora time.Time) bool {
	if !c.Ativa {
		return false
	}
	if c.ValidadeAte != nil && c.ValidadeAte.Before(agora) {
		return false
	}
	return true
}

// Libera informa se a certificação cobre ao menos um dos tipos pedidos.
func (c *Certificacao) Libera(tipos []string) bool {
	for _, t := range tipos {
		for _, l := range c.TiposServicoLiberados {
			if t == l {
				return true
			}
		}
	}
	return false
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Certificacao{})
}
