// internal/questionario/repository.go
package questionario

import (
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Questionario e Tentativa.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(q *Questionario) error {
	return r.DB.Create(q).Error
}

func (r *Repository) FindByID(tenantID, id uint) (*Questionario, error) {
	var q Questionario
	if err := r.DB.Where("tenant_id = ?", tenantID).First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *Repository) ListAtivos(tenantID uint) ([]Questionario, error) {
	var list []Questionario
	err := r.DB.Where("tenant_id = ? AND ativo = ?", tenantID, true).Find(&list).Error
	return list, err
}

func (r *Repository) Update(q *Questionario) error {
	return r.DB.Save(q).Error
}

func (r *Repository) CreateTentativa(t *Tentativa) error {
	return r.DB.Create(t).Error
}

func (r *Repository) ListTentativasByInstalador(tenantID, instaladorID uint) ([]Tentativa, error) {
	var list []Tentativa
	err := r.DB.
		Where("tenant_id = ? AND instalador_id = ?", tenantID, instaladorID).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
