// internal/indisponibilidade/repository.go
package indisponibilidade

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Indisponibilidade.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(i *Indisponibilidade) error {
	return r.DB.Create(i).Error
}

func (r *Repository) FindByID(tenantID, id uint) (*Indisponibilidade, error) {
	var i Indisponibilidade
	if err := r.DB.Where("tenant_id = ?", tenantID).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *Repository) ListByInstalador(tenantID, instaladorID uint) ([]Indisponibilidade, error) {
	var list []Indisponibilidade
	err := r.DB.
		Where("tenant_id = ? AND instalador_id = ?", tenantID, instaladorID).
		Order("data_inicio").Find(&list).Error
	return list, err
}

func (r *Repository) ListByTenant(tenantID uint) ([]Indisponibilidade, error) {
	var list []Indisponibilidade
	err := r.DB.Where("tenant_id = ?", tenantID).Order("data_inicio").Find(&list).Error
	return list, err
}

// ListNoDia retorna os bloqueios que cobrem o dia informado.
func (r *Repository) ListNoDia(tenantID uint, dia time.Time) ([]Indisponibilidade, error) {
	var list []Indisponibilidade
	err := r.DB.
		Where("tenant_id = ? AND data_inicio <= ? AND data_fim >= ?", tenantID, dia, dia).
		Find(&list).Error
	return list, err
}

func (r *Repository) Delete(tenantID, id uint) error {
	return r.DB.Where("tenant_id = ?", tenantID).Delete(&Indisponibilidade{}, id).Error
}
