// internal/certificacao/repository.go
package certificacao

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Certificacao.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create insere uma nova certificação.
func (r *Repository) Create(c *Certificacao) error {
	return r.DB.Create(c).Error
}

// FindByID retorna uma certificação pelo ID dentro do tenant.
func (r *Repository) FindByID(tenantID, id uint) (*Certificacao, error) {
	var c Certificacao
	if err := r.DB.Where("tenant_id = ?", tenantID).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByInstalador retorna todas as certificações de um instalador.
func (r *Repository) ListByInstalador(tenantID, instaladorID uint) ([]Certificacao, error) {
	var list []Certificacao
	err := r.DB.Where("tenant_id = ? AND instalador_id = ?", tenantID, instaladorID).Find(&list).Error
	return list, err
}

// ListAtivasByInstalador retorna apenas as certificações com a flag ativa.
func (r *Repository) ListAtivasByInstalador(tenantID, instaladorID uint) ([]Certificacao, error) {
	var list []Certificacao
	err := r.DB.Where("tenant_id = ? AND instalador_id = ? AND ativa = ?", tenantID, instaladorID, true).Find(&list).Error
	return list, err
}

// Update salva alterações em uma certificação existente.
func (r *Repository) Update(c *Certificacao) error {
	return r.DB.Save(c).Error
}

// Revogar desativa a certificação sem removê-la do histórico.
func (r *Repository) Revogar(tenantID, id uint) error {
	return r.DB.Model(&Certificacao{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("ativa", false).Error
}
