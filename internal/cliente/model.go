package cliente

import (
	"time"

	"gorm.io/gorm"
)

// Cliente é o contratante dos serviços de campo.
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TenantID uint   `gorm:"not null;index" json:"tenantId"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Telefone string `gorm:"size:50" json:"telefone"`
	Email    string `gorm:"size:255" json:"email"`
	Endereco string `gorm:"size:500" json:"endereco"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Cliente{})
}
