package lifecycle

import (
	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/chamaoralph/api-servicos/internal/usuario"
	"gorm.io/gorm"
)

// Adaptadores gorm das fatias de persistência do gerenciador.

type gormServicoStore struct {
	db   *gorm.DB
	repo servico.Repository
}

func (g *gormServicoStore) BuscarPorID(tenantID, id uint) (*servico.Servico, error) {
	return g.repo.BuscarPorID(g.db, tenantID, id)
}

func (g *gormServicoStore) AtualizarSeStatus(tenantID, id uint, esperado servico.Status, campos map[string]interface{}) (int64, error) {
	return g.repo.AtualizarSeStatus(g.db, tenantID, id, esperado, campos)
}

func (g *gormServicoStore) ConcluirSe(tenantID, id uint, esperado servico.Status, dados servico.Conclusao) (int64, error) {
	return g.repo.ConcluirSe(g.db, tenantID, id, esperado, dados)
}

type gormInstaladorStore struct {
	db    *gorm.DB
	repo  usuario.Repository
	certs *certificacao.Repository
}

func (g *gormInstaladorStore) BuscarComCertificacoes(tenantID, id uint) (*usuario.Usuario, []certificacao.Certificacao, error) {
	u, err := g.repo.BuscarPorID(g.db, tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	certs, err := g.certs.ListAtivasByInstalador(tenantID, id)
	if err != nil {
		return nil, nil, err
	}
	return u, certs, nil
}

func (g *gormInstaladorStore) AdicionarPontos(tenantID, id uint, pontos int) error {
	return g.repo.AdicionarPontos(g.db, tenantID, id, pontos)
}

// NewGormManager monta um Manager ligado ao banco, com o liquidador dado.
func NewGormManager(db *gorm.DB, liquidacao Liquidador) *Manager {
	return &Manager{
		Servicos: &gormServicoStore{db: db, repo: servico.NewRepository()},
		Instaladores: &gormInstaladorStore{
			db:    db,
			repo:  usuario.NewRepository(),
			certs: certificacao.NewRepository(db),
		},
		Liquidacao: liquidacao,
	}
}
