package usuario

import (
	"time"

	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"gorm.io/gorm"
)

// Perfis de acesso suportados.
const (
	PerfilAdmin      = "admin"
	PerfilInstalador = "instalador"
)

// Usuario representa um usuário do tenant: administrador ou instalador de campo.
// Instaladores carregam os campos de gamificação e o saldo devedor.
type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	TenantID uint   `gorm:"not null;index" json:"tenantId"`
	Nome     string `gorm:"size:255;not null" json:"nome"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Telefone string `gorm:"size:50" json:"telefone"`
	Foto     string `json:"foto"`
	Senha    string `json:"-"`

	Perfil string `gorm:"size:20;not null;default:'instalador';index" json:"perfil"`
	Ativo  bool   `gorm:"not null;default:true" json:"ativo"`

	// Gamificação e saldo (só fazem sentido para instaladores).
	Pontos       int     `gorm:"not null;default:0" json:"pontos"`
	Nivel        int     `gorm:"not null;default:1" json:"nivel"`
	SaldoDevedor float64 `gorm:"not null;default:0" json:"saldoDevedor"`

	Certificacoes []certificacao.Certificacao `gorm:"foreignKey:InstaladorID" json:"certificacoes,omitempty"`
}

// Admin informa se o usuário tem perfil de administrador.
func (u *Usuario) Admin() bool {
	return u.Perfil == PerfilAdmin
}

// NivelPorPontos deriva o nível a partir do acumulado de pontos (100 por nível).
func NivelPorPontos(pontos int) int {
	return pontos/100 + 1
}

// Migrate cria a tabela no banco de dados.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{})
}
