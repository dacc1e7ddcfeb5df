package servico

import (
	"time"

	"gorm.io/gorm"
)

// Servico representa uma unidade de trabalho de campo agendada e faturável.
// Nunca é removido fisicamente; cancelamento é uma transição de status.
type Servico struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TenantID  uint `gorm:"not null;index" json:"tenantId"`
	ClienteID uint `gorm:"not null;index" json:"clienteId"`

	// Origem opcional: serviço gerado pela aprovação de uma cotação.
	CotacaoID *uint `gorm:"index" json:"cotacaoId,omitempty"`

	// Instalador responsável; nulo enquanto o serviço não foi solicitado/atribuído.
	InstaladorID *uint `gorm:"index" json:"instaladorId,omitempty"`

	// Tags de tipo de serviço, ex.: ["ar-condicionado", "eletrica"].
	TiposServico []string `gorm:"type:jsonb;serializer:json" json:"tiposServico"`

	DataAgendada time.Time `json:"dataAgendada"`
	Endereco     string    `gorm:"size:500" json:"endereco"`

	ValorTotal     float64 `gorm:"not null;default:0" json:"valorTotal"`
	ValorMaoObra   float64 `gorm:"not null;default:0" json:"valorMaoObra"`
	ValorReembolso float64 `gorm:"not null;default:0" json:"valorReembolso"`

	Descricao string `json:"descricao"`

	// Dados de conclusão preenchidos pelo instalador.
	ObservacoesConclusao string   `json:"observacoesConclusao"`
	FotosConclusao       []string `gorm:"type:jsonb;serializer:json" json:"fotosConclusao"`
	NotaFiscal           string   `gorm:"size:255" json:"notaFiscal"`

	MotivoCancelamento string `json:"motivoCancelamento,omitempty"`
	MotivoRejeicao     string `json:"motivoRejeicao,omitempty"`

	Status Status `gorm:"size:50;not null;default:'aguardando_distribuicao';index" json:"status"`
}

// Conclusao agrupa os dados enviados pelo instalador ao concluir um serviço.
type Conclusao struct {
	Observacoes string   `json:"observacoes"`
	Fotos       []string `json:"fotos"`
	NotaFiscal  string   `json:"notaFiscal"`
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Servico{})
}
