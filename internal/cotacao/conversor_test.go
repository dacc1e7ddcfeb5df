package cotacao

import (
	"testing"
	"time"

	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCotacoes guarda uma única cotação e emula a virada condicional de
// status: a escrita só acontece se o status atual ainda for o esperado.
type fakeCotacoes struct {
	cot *Cotacao
}

func (f *fakeCotacoes) Salvar(db *gorm.DB, c *Cotacao) error { return nil }

func (f *fakeCotacoes) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Cotacao, error) {
	if f.cot == nil || f.cot.TenantID != tenantID || f.cot.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *f.cot
	return &copia, nil
}

func (f *fakeCotacoes) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Cotacao, error) {
	return nil, nil
}

func (f *fakeCotacoes) ListarPorStatus(db *gorm.DB, tenantID uint, status string) ([]Cotacao, error) {
	return nil, nil
}

func (f *fakeCotacoes) Atualizar(db *gorm.DB, c *Cotacao) error { return nil }

func (f *fakeCotacoes) AtualizarStatusSe(db *gorm.DB, tenantID, id uint, esperado, novo string) (int64, error) {
	if f.cot == nil || f.cot.TenantID != tenantID || f.cot.ID != id || f.cot.Status != esperado {
		return 0, nil
	}
	f.cot.Status = novo
	return 1, nil
}

type fakeServicos struct {
	salvos []*servico.Servico
}

func (f *fakeServicos) Salvar(db *gorm.DB, s *servico.Servico) error {
	if s.ID == 0 {
		s.ID = uint(len(f.salvos) + 1)
	}
	f.salvos = append(f.salvos, s)
	return nil
}

func (f *fakeServicos) BuscarPorID(db *gorm.DB, tenantID, id uint) (*servico.Servico, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeServicos) ListarPorTenant(db *gorm.DB, tenantID uint) ([]servico.Servico, error) {
	return nil, nil
}

func (f *fakeServicos) ListarPorStatus(db *gorm.DB, tenantID uint, status servico.Status) ([]servico.Servico, error) {
	return nil, nil
}

func (f *fakeServicos) ListarPorInstalador(db *gorm.DB, tenantID, instaladorID uint) ([]servico.Servico, error) {
	return nil, nil
}

func (f *fakeServicos) ListarConcluidosNoDia(db *gorm.DB, tenantID, instaladorID uint, dia time.Time) ([]servico.Servico, error) {
	return nil, nil
}

func (f *fakeServicos) Atualizar(db *gorm.DB, s *servico.Servico) error { return nil }

func (f *fakeServicos) AtualizarSeStatus(db *gorm.DB, tenantID, id uint, esperado servico.Status, campos map[string]interface{}) (int64, error) {
	return 0, nil
}

func (f *fakeServicos) ConcluirSe(db *gorm.DB, tenantID, id uint, esperado servico.Status, dados servico.Conclusao) (int64, error) {
	return 0, nil
}

func cotacaoPendente() *Cotacao {
	return &Cotacao{
		ID:            5,
		TenantID:      1,
		ClienteID:     7,
		TiposServico:  []string{"ar-condicionado", "eletrica"},
		DataDesejada:  time.Date(2026, 7, 20, 9, 0, 0, 0, time.UTC),
		ValorEstimado: 1200,
		Descricao:     "instalação de split 12k",
		Status:        StatusPendente,
	}
}

func TestConverte(t *testing.T) {
	cotacoes := &fakeCotacoes{cot: cotacaoPendente()}
	servicos := &fakeServicos{}
	cv := &Conversor{Cotacoes: cotacoes, Servicos: servicos}

	cot, err := cotacoes.BuscarPorID(nil, 1, 5)
	require.NoError(t, err)

	s, err := cv.converte(nil, cot)
	require.NoError(t, err)

	assert.Equal(t, StatusAprovada, cotacoes.cot.Status)

	require.Len(t, servicos.salvos, 1)
	assert.Equal(t, servico.StatusAguardandoDistribuicao, s.Status)
	assert.Equal(t, uint(1), s.TenantID)
	assert.Equal(t, uint(7), s.ClienteID)
	require.NotNil(t, s.CotacaoID)
	assert.Equal(t, uint(5), *s.CotacaoID)
	assert.Equal(t, []string{"ar-condicionado", "eletrica"}, s.TiposServico)
	assert.Equal(t, cot.DataDesejada, s.DataAgendada)
	assert.Equal(t, 1200.0, s.ValorTotal)
	assert.Equal(t, "instalação de split 12k", s.Descricao)
	assert.Nil(t, s.InstaladorID)
}

// Duas aprovações da mesma cotação: a segunda perde a virada condicional e
// não gera serviço duplicado.
func TestConverteCotacaoJaAprovada(t *testing.T) {
	cotacoes := &fakeCotacoes{cot: cotacaoPendente()}
	servicos := &fakeServicos{}
	cv := &Conversor{Cotacoes: cotacoes, Servicos: servicos}

	cot, err := cotacoes.BuscarPorID(nil, 1, 5)
	require.NoError(t, err)

	_, err = cv.converte(nil, cot)
	require.NoError(t, err)

	_, err = cv.converte(nil, cot)
	assert.ErrorIs(t, err, ErrCotacaoEncerrada)
	assert.Len(t, servicos.salvos, 1, "um único serviço por cotação")
}

// Cotação já terminal é barrada na leitura, antes de abrir transação.
func TestAprovarCotacaoTerminal(t *testing.T) {
	for _, status := range []string{StatusAprovada, StatusPerdida, StatusNaoGerada} {
		cot := cotacaoPendente()
		cot.Status = status
		cv := &Conversor{Cotacoes: &fakeCotacoes{cot: cot}, Servicos: &fakeServicos{}}

		_, err := cv.Aprovar(nil, 1, 5)
		assert.ErrorIs(t, err, ErrCotacaoEncerrada, "status %s", status)
	}
}

func TestEncerrar(t *testing.T) {
	t.Run("marca como perdida", func(t *testing.T) {
		cotacoes := &fakeCotacoes{cot: cotacaoPendente()}
		cv := &Conversor{Cotacoes: cotacoes, Servicos: &fakeServicos{}}

		require.NoError(t, cv.Encerrar(nil, 1, 5, StatusPerdida))
		assert.Equal(t, StatusPerdida, cotacoes.cot.Status)
	})

	t.Run("status final inválido", func(t *testing.T) {
		cotacoes := &fakeCotacoes{cot: cotacaoPendente()}
		cv := &Conversor{Cotacoes: cotacoes, Servicos: &fakeServicos{}}

		err := cv.Encerrar(nil, 1, 5, StatusAprovada)
		require.Error(t, err)
		assert.Equal(t, StatusPendente, cotacoes.cot.Status, "status não deve mudar")
	})

	t.Run("já encerrada", func(t *testing.T) {
		cotacoes := &fakeCotacoes{cot: cotacaoPendente()}
		cv := &Conversor{Cotacoes: cotacoes, Servicos: &fakeServicos{}}

		require.NoError(t, cv.Encerrar(nil, 1, 5, StatusNaoGerada))
		err := cv.Encerrar(nil, 1, 5, StatusPerdida)
		assert.ErrorIs(t, err, ErrCotacaoEncerrada)
	})
}
