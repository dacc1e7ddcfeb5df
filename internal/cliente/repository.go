package cliente

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Cliente) error
	BuscarPorID(db *gorm.DB, tenantID, id uint) (*Cliente, error)
	ListarPorTenant(db *gorm.DB, tenantID uint) ([]Cliente, error)
	Atualizar(db *gorm.DB, c *Cliente) error
	Deletar(db *gorm.DB, tenantID, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.Where("tenant_id = ?", tenantID).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Cliente, error) {
	var list []Cliente
	err := db.Where("tenant_id = ?", tenantID).Order("nome").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, tenantID, id uint) error {
	return db.Where("tenant_id = ?", tenantID).Delete(&Cliente{}, id).Error
}
