package cotacao

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Cotacao) error
	BuscarPorID(db *gorm.DB, tenantID, id uint) (*Cotacao, error)
	ListarPorTenant(db *gorm.DB, tenantID uint) ([]Cotacao, error)
	ListarPorStatus(db *gorm.DB, tenantID uint, status string) ([]Cotacao, error)
	Atualizar(db *gorm.DB, c *Cotacao) error
	AtualizarStatusSe(db *gorm.DB, tenantID, id uint, esperado, novo string) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cotacao) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Cotacao, error) {
	var c Cotacao
	if err := db.Where("tenant_id = ?", tenantID).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Cotacao, error) {
	var list []Cotacao
	err := db.Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorStatus(db *gorm.DB, tenantID uint, status string) ([]Cotacao, error) {
	var list []Cotacao
	err := db.Where("tenant_id = ? AND status = ?", tenantID, status).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cotacao) error {
	return db.Save(c).Error
}

// AtualizarStatusSe muda o status somente se o atual ainda for o esperado.
// Impede dupla aprovação da mesma cotação por dois administradores.
func (r *repositoryImpl) AtualizarStatusSe(db *gorm.DB, tenantID, id uint, esperado, novo string) (int64, error) {
	res := db.Model(&Cotacao{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, esperado).
		Update("status", novo)
	return res.RowsAffected, res.Error
}
