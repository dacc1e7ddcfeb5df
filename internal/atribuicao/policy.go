package atribuicao

import (
	"errors"
	"time"

	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/chamaoralph/api-servicos/internal/usuario"
)

var (
	// ErrInstaladorInativo indica instalador com a flag de atividade desligada.
	ErrInstaladorInativo = errors.New("instalador inativo")
	// ErrSemCertificacao indica que nenhuma certificação vigente cobre os tipos do serviço.
	ErrSemCertificacao = errors.New("instalador sem certificação vigente para o tipo de serviço")
)

// PodeAtender decide se um instalador está apto a solicitar/atender um serviço:
// precisa estar ativo e ter ao menos uma certificação vigente cujos tipos
// liberados intersectem os tipos do serviço. Função pura; para administradores
// a política é apenas consultiva (a atribuição direta pode ignorá-la).
func PodeAtender(inst *usuario.Usuario, certs []certificacao.Certificacao, s *servico.Servico, agora time.Time) error {
	if !inst.Ativo {
		return ErrInstaladorInativo
	}
	for i := range certs {
		c := &certs[i]
		if c.Vigente(agora) && c.Libera(s.TiposServico) {
			return nil
		}
	}
	return ErrSemCertificacao
}
