// internal/caixa/repository.go
package caixa

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Lancamento.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Criar insere um novo lançamento.
func (r *Repository) Criar(l *Lancamento) error {
	return r.DB.Create(l).Error
}

// FindByID retorna um lançamento pelo ID dentro do tenant.
func (r *Repository) FindByID(tenantID, id uint) (*Lancamento, error) {
	var l Lancamento
	if err := r.DB.Where("tenant_id = ?", tenantID).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByTenant retorna os lançamentos do tenant, mais recentes primeiro.
func (r *Repository) ListByTenant(tenantID uint) ([]Lancamento, error) {
	var list []Lancamento
	err := r.DB.Where("tenant_id = ?", tenantID).Order("data DESC").Find(&list).Error
	return list, err
}

// ListByPeriodo retorna lançamentos do tenant dentro do intervalo [inicio, fim).
func (r *Repository) ListByPeriodo(tenantID uint, inicio, fim time.Time) ([]Lancamento, error) {
	var list []Lancamento
	err := r.DB.
		Where("tenant_id = ? AND data >= ? AND data < ?", tenantID, inicio, fim).
		Order("data").Find(&list).Error
	return list, err
}

// ExisteReceitaParaServico informa se já há receita lançada para o serviço.
// Evita lançamento duplicado quando a aprovação é reprocessada.
func (r *Repository) ExisteReceitaParaServico(tenantID, servicoID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&Lancamento{}).
		Where("tenant_id = ? AND servico_id = ? AND tipo = ?", tenantID, servicoID, TipoReceita).
		Count(&count).Error
	return count > 0, err
}

// Deletar remove um lançamento (uso restrito a administradores).
func (r *Repository) Deletar(tenantID, id uint) error {
	return r.DB.Where("tenant_id = ?", tenantID).Delete(&Lancamento{}, id).Error
}
