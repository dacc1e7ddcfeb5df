package questionario

import (
	"time"

	"gorm.io/gorm"
)

// Pergunta de múltipla escolha de um questionário de certificação.
type Pergunta struct {
	Enunciado    string   `json:"enunciado"`
	Alternativas []string `json:"alternativas"`
	Correta      int      `json:"correta"`
}

// Questionario é a prova que libera tipos de serviço para o instalador.
type Questionario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TenantID uint   `gorm:"not null;index" json:"tenantId"`
	Titulo   string `gorm:"size:255;not null" json:"titulo"`

	Perguntas []Pergunta `gorm:"type:jsonb;serializer:json" json:"perguntas"`

	// Percentual mínimo de acertos para aprovação (0-100).
	NotaMinima int `gorm:"not null;default:70" json:"notaMinima"`

	// Tipos de serviço liberados pela certificação resultante.
	TiposServicoLiberados []string `gorm:"type:jsonb;serializer:json" json:"tiposServicoLiberados"`

	// Validade em meses da certificação concedida; 0 = sem expiração.
	ValidadeMeses int  `gorm:"not null;default:12" json:"validadeMeses"`
	Ativo         bool `gorm:"not null;default:true" json:"ativo"`
}

// Tentativa é uma submissão de respostas de um instalador.
type Tentativa struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	TenantID       uint `gorm:"not null;index" json:"tenantId"`
	QuestionarioID uint `gorm:"not null;index" json:"questionarioId"`
	InstaladorID   uint `gorm:"not null;index" json:"instaladorId"`

	Respostas []int `gorm:"type:jsonb;serializer:json" json:"respostas"`
	Nota      int   `gorm:"not null" json:"nota"` // percentual de acertos
	Aprovado  bool  `gorm:"not null" json:"aprovado"`
}

// Corrigir calcula a nota percentual de uma lista de respostas.
func (q *Questionario) Corrigir(respostas []int) int {
	if len(q.Perguntas) == 0 {
		return 0
	}
	acertos := 0
	for i, p := range q.Perguntas {
		if i < len(respostas) && respostas[i] == p.Correta {
			acertos++
		}
	}
	return acertos * 100 / len(q.Perguntas)
}

// Migrate cria as tabelas no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Questionario{}, &Tentativa{})
}
