package servico

import (
	"time"

	"gorm.io/gorm"
)

// Repository encapsula o acesso a banco para Servico.
type Repository interface {
	Salvar(db *gorm.DB, s *Servico) error
	BuscarPorID(db *gorm.DB, tenantID, id uint) (*Servico, error)
	ListarPorTenant(db *gorm.DB, tenantID uint) ([]Servico, error)
	ListarPorStatus(db *gorm.DB, tenantID uint, status Status) ([]Servico, error)
	ListarPorInstalador(db *gorm.DB, tenantID, instaladorID uint) ([]Servico, error)
	ListarConcluidosNoDia(db *gorm.DB, tenantID, instaladorID uint, dia time.Time) ([]Servico, error)
	Atualizar(db *gorm.DB, s *Servico) error
	AtualizarSeStatus(db *gorm.DB, tenantID, id uint, esperado Status, campos map[string]interface{}) (int64, error)
	ConcluirSe(db *gorm.DB, tenantID, id uint, esperado Status, dados Conclusao) (int64, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, s *Servico) error {
	return db.Create(s).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Servico, error) {
	var s Servico
	err := db.Where("tenant_id = ?", tenantID).First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repositoryImpl) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Servico, error) {
	var list []Servico
	err := db.Where("tenant_id = ?", tenantID).Order("data_agendada").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorStatus(db *gorm.DB, tenantID uint, status Status) ([]Servico, error) {
	var list []Servico
	err := db.Where("tenant_id = ? AND status = ?", tenantID, status).Order("data_agendada").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListarPorInstalador(db *gorm.DB, tenantID, instaladorID uint) ([]Servico, error) {
	var list []Servico
	err := db.Where("tenant_id = ? AND instalador_id = ?", tenantID, instaladorID).Order("data_agendada").Find(&list).Error
	return list, err
}

// ListarConcluidosNoDia retorna os serviços concluídos de um instalador em um dia,
// base do recibo diário de liquidação.
func (r *repositoryImpl) ListarConcluidosNoDia(db *gorm.DB, tenantID, instaladorID uint, dia time.Time) ([]Servico, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, dia.Location())
	fim := inicio.AddDate(0, 0, 1)
	var list []Servico
	err := db.
		Where("tenant_id = ? AND instalador_id = ? AND status = ?", tenantID, instaladorID, StatusConcluido).
		Where("updated_at >= ? AND updated_at < ?", inicio, fim).
		Find(&list).Error
	return list, err
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, s *Servico) error {
	return db.Save(s).Error
}

// ConcluirSe grava os dados de conclusão e move o serviço para
// aguardando_aprovacao, condicionado ao status esperado. Atualização por
// struct para que o serializer jsonb das fotos seja aplicado.
func (r *repositoryImpl) ConcluirSe(db *gorm.DB, tenantID, id uint, esperado Status, dados Conclusao) (int64, error) {
	res := db.Model(&Servico{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, esperado).
		Updates(Servico{
			Status:               StatusAguardandoAprovacao,
			ObservacoesConclusao: dados.Observacoes,
			FotosConclusao:       dados.Fotos,
			NotaFiscal:           dados.NotaFiscal,
		})
	return res.RowsAffected, res.Error
}

// AtualizarSeStatus aplica os campos somente se o status atual ainda for o
// esperado ("update ... where status = ?"). Retorna o número de linhas
// afetadas: zero sinaliza que outro ator mudou o status primeiro.
func (r *repositoryImpl) AtualizarSeStatus(db *gorm.DB, tenantID, id uint, esperado Status, campos map[string]interface{}) (int64, error) {
	res := db.Model(&Servico{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, esperado).
		Updates(campos)
	return res.RowsAffected, res.Error
}
