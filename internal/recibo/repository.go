// internal/recibo/repository.go
package recibo

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula operações de banco para Recibo.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// UpsertDiario insere o recibo do dia ou, se já existir um para
// (tenant, instalador, data), atualiza apenas os agregados. O número do
// recibo original é preservado.
func (r *Repository) UpsertDiario(rec *Recibo) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tenant_id"}, {Name: "instalador_id"}, {Name: "data"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qtd_servicos":    rec.QtdServicos,
			"total_mao_obra":  rec.TotalMaoObra,
			"total_reembolso": rec.TotalReembolso,
			"total":           rec.Total,
			"updated_at":      time.Now(),
		}),
	}).Create(rec).Error
}

// FindByInstaladorEData retorna o recibo de um instalador em uma data.
func (r *Repository) FindByInstaladorEData(tenantID, instaladorID uint, data time.Time) (*Recibo, error) {
	var rec Recibo
	err := r.DB.
		Where("tenant_id = ? AND instalador_id = ? AND data = ?", tenantID, instaladorID, data).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByInstalador retorna o histórico de recibos de um instalador,
// mais recentes primeiro.
func (r *Repository) ListByInstalador(tenantID, instaladorID uint) ([]Recibo, error) {
	var list []Recibo
	err := r.DB.
		Where("tenant_id = ? AND instalador_id = ?", tenantID, instaladorID).
		Order("data DESC").Find(&list).Error
	return list, err
}

// ListByTenant retorna todos os recibos do tenant.
func (r *Repository) ListByTenant(tenantID uint) ([]Recibo, error) {
	var list []Recibo
	err := r.DB.Where("tenant_id = ?", tenantID).Order("data DESC").Find(&list).Error
	return list, err
}
