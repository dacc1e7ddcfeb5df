package recibo

import (
	"fmt"
	"time"

	"github.com/chamaoralph/api-servicos/internal/caixa"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicosConcluidos lista os serviços já concluídos de um instalador em um dia.
type ServicosConcluidos interface {
	ListarConcluidosNoDia(tenantID, instaladorID uint, dia time.Time) ([]servico.Servico, error)
}

// Lancamentos é a fatia do caixa usada pelo recorder.
type Lancamentos interface {
	Criar(l *caixa.Lancamento) error
	ExisteReceitaParaServico(tenantID, servicoID uint) (bool, error)
}

// Recibos é a fatia de persistência de recibos usada pelo recorder.
type Recibos interface {
	UpsertDiario(rec *Recibo) error
}

// Recorder deriva os registros financeiros da aprovação de um serviço:
// uma receita no caixa pelo valor total e o agregado diário do instalador.
type Recorder struct {
	Servicos ServicosConcluidos
	Caixa    Lancamentos
	Recibos  Recibos

	// Agora permite fixar o relógio em testes; nulo usa time.Now.
	Agora func() time.Time
}

func (rc *Recorder) agora() time.Time {
	if rc.Agora != nil {
		return rc.Agora()
	}
	return time.Now()
}

// diaDe trunca o instante para a meia-noite UTC do dia correspondente. Todo o
// agrupamento de recibos usa dias UTC, inclusive a janela da listagem de
// serviços concluídos.
func diaDe(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AprovacaoRegistrada informa se a receita do serviço já foi lançada no
// caixa, ou seja, se a liquidação daquela aprovação chegou a efetivar.
func (rc *Recorder) AprovacaoRegistrada(s *servico.Servico) (bool, error) {
	return rc.Caixa.ExisteReceitaParaServico(s.TenantID, s.ID)
}

// RegistrarAprovacao lança a receita do serviço e recalcula o recibo diário
// do instalador. Reprocessar a mesma aprovação não duplica nada: a receita é
// lançada uma vez por serviço e o recibo é recomputado a partir do conjunto
// de serviços concluídos do dia.
func (rc *Recorder) RegistrarAprovacao(s *servico.Servico) error {
	agora := rc.agora()

	jaLancada, err := rc.Caixa.ExisteReceitaParaServico(s.TenantID, s.ID)
	if err != nil {
		return fmt.Errorf("consultar receita do serviço %d: %w", s.ID, err)
	}
	if !jaLancada {
		servicoID := s.ID
		l := &caixa.Lancamento{
			TenantID:  s.TenantID,
			Tipo:      caixa.TipoReceita,
			Valor:     s.ValorTotal,
			Data:      agora,
			Descricao: fmt.Sprintf("Serviço #%d concluído", s.ID),
			ServicoID: &servicoID,
		}
		if err := rc.Caixa.Criar(l); err != nil {
			return fmt.Errorf("lançar receita do serviço %d: %w", s.ID, err)
		}
	}

	// Serviço finalizado pelo administrador sem instalador: não há recibo diário.
	if s.InstaladorID == nil {
		return nil
	}

	dia := diaDe(agora)
	concluidos, err := rc.Servicos.ListarConcluidosNoDia(s.TenantID, *s.InstaladorID, dia)
	if err != nil {
		return fmt.Errorf("listar serviços concluídos do dia: %w", err)
	}

	rec := &Recibo{
		Numero:       uuid.NewString(),
		TenantID:     s.TenantID,
		InstaladorID: *s.InstaladorID,
		Data:         dia,
	}
	visto := false
	for i := range concluidos {
		c := &concluidos[i]
		if c.ID == s.ID {
			visto = true
		}
		rec.QtdServicos++
		rec.TotalMaoObra += c.ValorMaoObra
		rec.TotalReembolso += c.ValorReembolso
	}
	if !visto {
		// A transição de status pode ainda não estar refletida na listagem.
		rec.QtdServicos++
		rec.TotalMaoObra += s.ValorMaoObra
		rec.TotalReembolso += s.ValorReembolso
	}
	rec.Total = rec.TotalMaoObra + rec.TotalReembolso

	if err := rc.Recibos.UpsertDiario(rec); err != nil {
		return fmt.Errorf("gravar recibo diário: %w", err)
	}
	return nil
}

// gormServicos adapta o repositório de serviços à fatia do recorder.
type gormServicos struct {
	db   *gorm.DB
	repo servico.Repository
}

func (g *gormServicos) ListarConcluidosNoDia(tenantID, instaladorID uint, dia time.Time) ([]servico.Servico, error) {
	return g.repo.ListarConcluidosNoDia(g.db, tenantID, instaladorID, dia)
}

// NewGormRecorder monta um Recorder ligado ao banco.
func NewGormRecorder(db *gorm.DB) *Recorder {
	return &Recorder{
		Servicos: &gormServicos{db: db, repo: servico.NewRepository()},
		Caixa:    caixa.NewRepository(db),
		Recibos:  NewRepository(db),
	}
}
