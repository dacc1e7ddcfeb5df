// Package lifecycle concentra todas as transições legais de status de um
// serviço. Handlers nunca gravam Servico.Status diretamente: toda mutação
// passa por um Manager, que relê o estado atual, valida a precondição e
// aplica uma escrita condicional ("update ... where status = ?"). Escrita
// que afeta zero linhas significa corrida perdida, nunca sobrescrita cega.
package lifecycle

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chamaoralph/api-servicos/internal/atribuicao"
	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/chamaoralph/api-servicos/internal/usuario"
)

// AnotacaoFinalizadoAdmin marca conclusões forçadas por administrador,
// distinguindo-as do autorrelato do instalador nos registros.
const AnotacaoFinalizadoAdmin = "Finalizado pelo administrador"

// PontosPorServico é o ganho de gamificação por serviço liquidado.
const PontosPorServico = 10

// Ator identifica quem pede a transição. Sempre explícito: o gerenciador não
// lê sessão nem qualquer estado ambiente.
type Ator struct {
	ID       uint
	TenantID uint
	Admin    bool
}

// ServicoStore é a fatia de persistência de serviços usada pelo gerenciador.
type ServicoStore interface {
	BuscarPorID(tenantID, id uint) (*servico.Servico, error)
	AtualizarSeStatus(tenantID, id uint, esperado servico.Status, campos map[string]interface{}) (int64, error)
	ConcluirSe(tenantID, id uint, esperado servico.Status, dados servico.Conclusao) (int64, error)
}

// InstaladorStore resolve instaladores e suas certificações.
type InstaladorStore interface {
	BuscarComCertificacoes(tenantID, id uint) (*usuario.Usuario, []certificacao.Certificacao, error)
	AdicionarPontos(tenantID, id uint, pontos int) error
}

// Liquidador recebe o serviço recém-aprovado para derivar os registros
// financeiros (receita de caixa e recibo diário). AprovacaoRegistrada informa
// se essa liquidação já foi efetivada, permitindo reprocessar aprovações cuja
// escrita financeira falhou depois do status já gravado.
type Liquidador interface {
	RegistrarAprovacao(s *servico.Servico) error
	AprovacaoRegistrada(s *servico.Servico) (bool, error)
}

// Manager orquestra o ciclo de vida do serviço.
type Manager struct {
	Servicos     ServicoStore
	Instaladores InstaladorStore
	Liquidacao   Liquidador

	// Agora permite fixar o relógio em testes; nulo usa time.Now.
	Agora func() time.Time
}

// Tabela de transições normais. Cancelamento e finalização forçada partem de
// qualquer estado não-terminal e são tratados à parte.
var transicoes = map[servico.Status][]servico.Status{
	servico.StatusAguardandoDistribuicao: {servico.StatusDisponivel, servico.StatusAtribuido},
	servico.StatusDisponivel:             {servico.StatusSolicitado, servico.StatusAtribuido},
	servico.StatusSolicitado:             {servico.StatusEmAndamento},
	servico.StatusAtribuido:              {servico.StatusEmAndamento},
	servico.StatusEmAndamento:            {servico.StatusAguardandoAprovacao},
	servico.StatusAguardandoAprovacao:    {servico.StatusConcluido, servico.StatusEmAndamento},
}

// TransicaoLegal informa se a tabela admite ir de um estado a outro.
func TransicaoLegal(de, para servico.Status) bool {
	for _, p := range transicoes[de] {
		if p == para {
			return true
		}
	}
	return false
}

func (m *Manager) agora() time.Time {
	if m.Agora != nil {
		return m.Agora()
	}
	return time.Now()
}

// casAtualiza aplica a escrita condicional e traduz "zero linhas" em
// ErrEstadoDesatualizado. Devolve o serviço relido após a escrita.
func (m *Manager) casAtualiza(tenantID, id uint, esperado servico.Status, campos map[string]interface{}) (*servico.Servico, error) {
	n, err := m.Servicos.AtualizarSeStatus(tenantID, id, esperado, campos)
	if err != nil {
		return nil, fmt.Errorf("atualizar serviço %d: %w", id, err)
	}
	if n == 0 {
		return nil, ErrEstadoDesatualizado
	}
	return m.Servicos.BuscarPorID(tenantID, id)
}

// Publicar move um serviço recém-criado para o pool aberto de instaladores.
// Restrito a administradores; exige que nenhum instalador esteja designado.
func (m *Manager) Publicar(ator Ator, servicoID uint) (*servico.Servico, error) {
	if !ator.Admin {
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status != servico.StatusAguardandoDistribuicao || s.InstaladorID != nil {
		return nil, ErrTransicaoIlegal
	}
	return m.casAtualiza(ator.TenantID, servicoID, servico.StatusAguardandoDistribuicao, map[string]interface{}{
		"status": servico.StatusDisponivel,
	})
}

// Solicitar é o caminho do instalador para reivindicar um serviço do pool.
// A política de atribuição é obrigatória aqui: instalador ativo com
// certificação vigente cobrindo ao menos um tipo do serviço. A escrita é
// condicionada a status=disponivel; se outro instalador chegou primeiro, a
// atualização afeta zero linhas e o chamador recebe ErrEstadoDesatualizado.
func (m *Manager) Solicitar(ator Ator, servicoID uint) (*servico.Servico, error) {
	if ator.Admin {
		// Administrador designa via Atribuir, não concorre no pool.
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	switch s.Status {
	case servico.StatusDisponivel:
		// segue
	case servico.StatusAguardandoDistribuicao:
		// Nunca publicado: a UI não deveria ter oferecido este serviço.
		return nil, ErrTransicaoIlegal
	default:
		// Já reivindicado ou adiante no ciclo: não está mais disponível.
		return nil, ErrEstadoDesatualizado
	}

	inst, certs, err := m.Instaladores.BuscarComCertificacoes(ator.TenantID, ator.ID)
	if err != nil {
		return nil, err
	}
	if err := atribuicao.PodeAtender(inst, certs, s, m.agora()); err != nil {
		return nil, err
	}

	return m.casAtualiza(ator.TenantID, servicoID, servico.StatusDisponivel, map[string]interface{}{
		"status":        servico.StatusSolicitado,
		"instalador_id": ator.ID,
	})
}

// Atribuir é a designação direta feita por administrador, pulando o pool.
// A política de certificação é apenas consultiva neste caminho: a falta de
// certificação gera aviso em log, não bloqueio.
func (m *Manager) Atribuir(ator Ator, servicoID, instaladorID uint) (*servico.Servico, error) {
	if !ator.Admin {
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status != servico.StatusAguardandoDistribuicao && s.Status != servico.StatusDisponivel {
		return nil, ErrTransicaoIlegal
	}

	inst, certs, err := m.Instaladores.BuscarComCertificacoes(ator.TenantID, instaladorID)
	if err != nil {
		return nil, err
	}
	if err := atribuicao.PodeAtender(inst, certs, s, m.agora()); err != nil {
		log.Printf("atribuição direta ignorando política: serviço=%d instalador=%d motivo=%v", servicoID, instaladorID, err)
	}

	return m.casAtualiza(ator.TenantID, servicoID, s.Status, map[string]interface{}{
		"status":        servico.StatusAtribuido,
		"instalador_id": instaladorID,
	})
}

// Iniciar marca o começo da execução pelo instalador responsável.
func (m *Manager) Iniciar(ator Ator, servicoID uint) (*servico.Servico, error) {
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status != servico.StatusSolicitado && s.Status != servico.StatusAtribuido {
		return nil, ErrTransicaoIlegal
	}
	if s.InstaladorID == nil || *s.InstaladorID != ator.ID {
		return nil, ErrNaoAutorizado
	}
	return m.casAtualiza(ator.TenantID, servicoID, s.Status, map[string]interface{}{
		"status": servico.StatusEmAndamento,
	})
}

// Concluir registra fotos, observações e nota fiscal e envia o serviço para
// aprovação do administrador. Nada financeiro acontece ainda.
func (m *Manager) Concluir(ator Ator, servicoID uint, dados servico.Conclusao) (*servico.Servico, error) {
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status != servico.StatusEmAndamento {
		return nil, ErrTransicaoIlegal
	}
	if s.InstaladorID == nil || *s.InstaladorID != ator.ID {
		return nil, ErrNaoAutorizado
	}
	n, err := m.Servicos.ConcluirSe(ator.TenantID, servicoID, servico.StatusEmAndamento, dados)
	if err != nil {
		return nil, fmt.Errorf("concluir serviço %d: %w", servicoID, err)
	}
	if n == 0 {
		return nil, ErrEstadoDesatualizado
	}
	return m.Servicos.BuscarPorID(ator.TenantID, servicoID)
}

// Aprovar valida o autorrelato do instalador, conclui o serviço e dispara a
// liquidação financeira e os pontos de gamificação.
func (m *Manager) Aprovar(ator Ator, servicoID uint) (*servico.Servico, error) {
	if !ator.Admin {
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status == servico.StatusConcluido {
		// Concluído com liquidação pendente: o status venceu a corrida mas o
		// liquidador falhou. A reaprovação só reprocessa a parte financeira.
		return m.reliquida(s)
	}
	if s.Status != servico.StatusAguardandoAprovacao {
		return nil, ErrTransicaoIlegal
	}
	atualizado, err := m.casAtualiza(ator.TenantID, servicoID, servico.StatusAguardandoAprovacao, map[string]interface{}{
		"status": servico.StatusConcluido,
	})
	if err != nil {
		return nil, err
	}
	return atualizado, m.liquidar(atualizado)
}

// Rejeitar devolve o serviço ao instalador para retrabalho, com o motivo
// registrado.
func (m *Manager) Rejeitar(ator Ator, servicoID uint, motivo string) (*servico.Servico, error) {
	if !ator.Admin {
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status != servico.StatusAguardandoAprovacao {
		return nil, ErrTransicaoIlegal
	}
	return m.casAtualiza(ator.TenantID, servicoID, servico.StatusAguardandoAprovacao, map[string]interface{}{
		"status":          servico.StatusEmAndamento,
		"motivo_rejeicao": motivo,
	})
}

// Cancelar encerra o serviço a partir de qualquer estado não-terminal.
// Permitido ao administrador ou ao instalador responsável.
func (m *Manager) Cancelar(ator Ator, servicoID uint, motivo string) (*servico.Servico, error) {
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status.Terminal() {
		return nil, ErrTransicaoIlegal
	}
	if !ator.Admin && (s.InstaladorID == nil || *s.InstaladorID != ator.ID) {
		return nil, ErrNaoAutorizado
	}
	return m.casAtualiza(ator.TenantID, servicoID, s.Status, map[string]interface{}{
		"status":              servico.StatusCancelado,
		"motivo_cancelamento": motivo,
	})
}

// Finalizar é a válvula de escape do administrador: conclui o serviço de
// qualquer estado não-terminal, sem passar pelo autorrelato do instalador.
// A anotação fixa permite distinguir o caminho nos registros.
func (m *Manager) Finalizar(ator Ator, servicoID uint, observacao string) (*servico.Servico, error) {
	if !ator.Admin {
		return nil, ErrNaoAutorizado
	}
	s, err := m.Servicos.BuscarPorID(ator.TenantID, servicoID)
	if err != nil {
		return nil, err
	}
	if s.Status == servico.StatusConcluido {
		return m.reliquida(s)
	}
	if s.Status.Terminal() {
		return nil, ErrTransicaoIlegal
	}
	anotacao := AnotacaoFinalizadoAdmin
	if strings.TrimSpace(observacao) != "" {
		anotacao = anotacao + ": " + strings.TrimSpace(observacao)
	}
	atualizado, err := m.casAtualiza(ator.TenantID, servicoID, s.Status, map[string]interface{}{
		"status":                servico.StatusConcluido,
		"observacoes_conclusao": anotacao,
	})
	if err != nil {
		return nil, err
	}
	return atualizado, m.liquidar(atualizado)
}

// reliquida reprocessa a liquidação de um serviço já concluído cuja escrita
// financeira não chegou a efetivar. Com a liquidação já registrada, reaprovar
// um serviço concluído segue sendo transição ilegal.
func (m *Manager) reliquida(s *servico.Servico) (*servico.Servico, error) {
	if m.Liquidacao == nil {
		return nil, ErrTransicaoIlegal
	}
	registrada, err := m.Liquidacao.AprovacaoRegistrada(s)
	if err != nil {
		return nil, fmt.Errorf("consultar liquidação do serviço %d: %w", s.ID, err)
	}
	if registrada {
		return nil, ErrTransicaoIlegal
	}
	return s, m.liquidar(s)
}

// liquidar dispara o recorder e credita pontos. O status já está gravado
// quando chegamos aqui; falha na liquidação é devolvida ao chamador, que
// reprocessa reaprovando o serviço (o recorder é idempotente). Pontos são
// melhor esforço.
func (m *Manager) liquidar(s *servico.Servico) error {
	if m.Liquidacao != nil {
		if err := m.Liquidacao.RegistrarAprovacao(s); err != nil {
			return fmt.Errorf("liquidar serviço %d: %w", s.ID, err)
		}
	}
	if s.InstaladorID != nil && m.Instaladores != nil {
		if err := m.Instaladores.AdicionarPontos(s.TenantID, *s.InstaladorID, PontosPorServico); err != nil {
			log.Printf("falha ao creditar pontos do instalador %d: %v", *s.InstaladorID, err)
		}
	}
	return nil
}
