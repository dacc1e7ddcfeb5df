package usuario

import (
	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, u *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, tenantID, id uint) (*Usuario, error)
	ListarPorTenant(db *gorm.DB, tenantID uint) ([]Usuario, error)
	ListarInstaladores(db *gorm.DB, tenantID uint) ([]Usuario, error)
	Atualizar(db *gorm.DB, tenantID, id uint, novosDados *Usuario) error
	AdicionarPontos(db *gorm.DB, tenantID, id uint, pontos int) error
	Deletar(db *gorm.DB, tenantID, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, u *Usuario) error {
	return db.Save(u).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Certificacoes").
		Where("tenant_id = ?", tenantID).
		First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Usuario, error) {
	var list []Usuario
	err := db.Where("tenant_id = ?", tenantID).Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarInstaladores(db *gorm.DB, tenantID uint) ([]Usuario, error) {
	var list []Usuario
	err := db.Preload("Certificacoes").
		Where("tenant_id = ? AND perfil = ?", tenantID, PerfilInstalador).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, tenantID, id uint, novosDados *Usuario) error {
	var existente Usuario
	if err := db.Where("tenant_id = ?", tenantID).First(&existente, id).Error; err != nil {
		return err
	}

	existente.Nome = novosDados.Nome
	existente.Email = novosDados.Email
	existente.Telefone = novosDados.Telefone
	existente.Foto = novosDados.Foto
	existente.Ativo = novosDados.Ativo

	return db.Save(&existente).Error
}

// AdicionarPontos soma pontos de gamificação e recalcula o nível.
func (r *repositoryImpl) AdicionarPontos(db *gorm.DB, tenantID, id uint, pontos int) error {
	var u Usuario
	if err := db.Where("tenant_id = ?", tenantID).First(&u, id).Error; err != nil {
		return err
	}
	u.Pontos += pontos
	u.Nivel = NivelPorPontos(u.Pontos)
	return db.Model(&u).Updates(map[string]interface{}{
		"pontos": u.Pontos,
		"nivel":  u.Nivel,
	}).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, tenantID, id uint) error {
	return db.Where("tenant_id = ?", tenantID).Delete(&Usuario{}, id).Error
}
