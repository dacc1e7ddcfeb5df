package atribuicao

import (
	"testing"
	"time"

	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/chamaoralph/api-servicos/internal/usuario"
	"github.com/stretchr/testify/assert"
)

func TestPodeAtender(t *testing.T) {
	agora := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	futuro := agora.AddDate(0, 6, 0)
	passado := agora.AddDate(0, -1, 0)

	ativo := &usuario.Usuario{ID: 1, Ativo: true, Perfil: usuario.PerfilInstalador}
	inativo := &usuario.Usuario{ID: 2, Ativo: false, Perfil: usuario.PerfilInstalador}
	s := &servico.Servico{ID: 1, TiposServico: []string{"ar-condicionado"}}

	cert := func(validade *time.Time, ativa bool, tipos ...string) certificacao.Certificacao {
		return certificacao.Certificacao{
			TiposServicoLiberados: tipos,
			ValidadeAte:           validade,
			Ativa:                 ativa,
		}
	}

	testes := []struct {
		nome     string
		inst     *usuario.Usuario
		certs    []certificacao.Certificacao
		esperado error
	}{
		{
			nome:  "certificação vigente cobrindo o tipo",
			inst:  ativo,
			certs: []certificacao.Certificacao{cert(&futuro, true, "ar-condicionado")},
		},
		{
			nome:  "certificação sem prazo de expiração",
			inst:  ativo,
			certs: []certificacao.Certificacao{cert(nil, true, "ar-condicionado", "eletrica")},
		},
		{
			nome:     "instalador inativo mesmo com certificação válida",
			inst:     inativo,
			certs:    []certificacao.Certificacao{cert(&futuro, true, "ar-condicionado")},
			esperado: ErrInstaladorInativo,
		},
		{
			nome:     "certificação expirada",
			inst:     ativo,
			certs:    []certificacao.Certificacao{cert(&passado, true, "ar-condicionado")},
			esperado: ErrSemCertificacao,
		},
		{
			nome:     "certificação revogada",
			inst:     ativo,
			certs:    []certificacao.Certificacao{cert(&futuro, false, "ar-condicionado")},
			esperado: ErrSemCertificacao,
		},
		{
			nome:     "tipos sem interseção",
			inst:     ativo,
			certs:    []certificacao.Certificacao{cert(&futuro, true, "eletrica", "hidraulica")},
			esperado: ErrSemCertificacao,
		},
		{
			nome:     "sem certificação alguma",
			inst:     ativo,
			esperado: ErrSemCertificacao,
		},
		{
			nome: "uma expirada e outra vigente",
			inst: ativo,
			certs: []certificacao.Certificacao{
				cert(&passado, true, "ar-condicionado"),
				cert(&futuro, true, "ar-condicionado"),
			},
		},
	}

	for _, tc := range testes {
		t.Run(tc.nome, func(t *testing.T) {
			err := PodeAtender(tc.inst, tc.certs, s, agora)
			if tc.esperado == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.esperado)
			}
		})
	}
}
