package cotacao

import (
	"errors"
	"fmt"

	"github.com/chamaoralph/api-servicos/internal/servico"
	"gorm.io/gorm"
)

// ErrCotacaoEncerrada indica tentativa de mutação em cotação já terminal
// (aprovada, perdida ou não gerada).
var ErrCotacaoEncerrada = errors.New("cotação já encerrada")

// Conversor transforma uma cotação aprovada em serviço.
type Conversor struct {
	Cotacoes Repository
	Servicos servico.Repository
}

func NewConversor() *Conversor {
	return &Conversor{
		Cotacoes: NewRepository(),
		Servicos: servico.NewRepository(),
	}
}

// Aprovar marca a cotação como aprovada e cria o serviço correspondente em
// aguardando_distribuicao, tudo na mesma transação. A mudança de status é
// condicional ao estado pendente, então duas aprovações concorrentes geram
// um único serviço.
func (cv *Conversor) Aprovar(db *gorm.DB, tenantID, id uint) (*servico.Servico, error) {
	cot, err := cv.Cotacoes.BuscarPorID(db, tenantID, id)
	if err != nil {
		return nil, err
	}
	if cot.Terminal() {
		return nil, ErrCotacaoEncerrada
	}

	var criado *servico.Servico
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		criado, err = cv.converte(tx, cot)
		return err
	})
	if err != nil {
		return nil, err
	}
	return criado, nil
}

// converte vira o status pendente->aprovada e cria o serviço correspondente.
// Roda dentro da transação de Aprovar; a virada condicional garante que duas
// aprovações concorrentes geram um único serviço.
func (cv *Conversor) converte(tx *gorm.DB, cot *Cotacao) (*servico.Servico, error) {
	n, err := cv.Cotacoes.AtualizarStatusSe(tx, cot.TenantID, cot.ID, StatusPendente, StatusAprovada)
	if err != nil {
		return nil, fmt.Errorf("aprovar cotação %d: %w", cot.ID, err)
	}
	if n == 0 {
		return nil, ErrCotacaoEncerrada
	}

	cotacaoID := cot.ID
	s := &servico.Servico{
		TenantID:     cot.TenantID,
		ClienteID:    cot.ClienteID,
		CotacaoID:    &cotacaoID,
		TiposServico: cot.TiposServico,
		DataAgendada: cot.DataDesejada,
		ValorTotal:   cot.ValorEstimado,
		Descricao:    cot.Descricao,
		Status:       servico.StatusAguardandoDistribuicao,
	}
	if err := cv.Servicos.Salvar(tx, s); err != nil {
		return nil, fmt.Errorf("criar serviço da cotação %d: %w", cot.ID, err)
	}
	return s, nil
}

// Encerrar marca a cotação como perdida ou não gerada, sem criar serviço.
func (cv *Conversor) Encerrar(db *gorm.DB, tenantID, id uint, statusFinal string) error {
	if statusFinal != StatusPerdida && statusFinal != StatusNaoGerada {
		return fmt.Errorf("status final inválido: %q", statusFinal)
	}
	n, err := cv.Cotacoes.AtualizarStatusSe(db, tenantID, id, StatusPendente, statusFinal)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCotacaoEncerrada
	}
	return nil
}
