package indisponibilidade

import (
	"time"

	"gorm.io/gorm"
)

// Indisponibilidade é um intervalo em que o instalador não aceita novas
// atribuições. Puramente consultiva para a agenda: não cancela serviços já
// atribuídos.
type Indisponibilidade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TenantID     uint `gorm:"not null;index" json:"tenantId"`
	InstaladorID uint `gorm:"not null;index" json:"instaladorId"`

	DataInicio time.Time `gorm:"not null" json:"dataInicio"`
	DataFim    time.Time `gorm:"not null" json:"dataFim"`

	// Janela de horas opcional dentro do intervalo; vazias = dia inteiro.
	HoraInicio string `gorm:"size:10" json:"horaInicio"`
	HoraFim    string `gorm:"size:10" json:"horaFim"`

	Motivo string `gorm:"size:255" json:"motivo"`
}

// Cobre informa se o intervalo abrange a data dada.
func (i *Indisponibilidade) Cobre(data time.Time) bool {
	return !data.Before(i.DataInicio) && !data.After(i.DataFim)
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Indisponibilidade{})
}
