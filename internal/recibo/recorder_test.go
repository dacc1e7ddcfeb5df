package recibo

import (
	"fmt"
	"testing"
	"time"

	"github.com/chamaoralph/api-servicos/internal/caixa"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServicosConcluidos struct {
	concluidos []servico.Servico
}

func (f *fakeServicosConcluidos) ListarConcluidosNoDia(tenantID, instaladorID uint, dia time.Time) ([]servico.Servico, error) {
	var out []servico.Servico
	for _, s := range f.concluidos {
		if s.TenantID == tenantID && s.InstaladorID != nil && *s.InstaladorID == instaladorID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeLancamentos struct {
	lancamentos []caixa.Lancamento
}

func (f *fakeLancamentos) Criar(l *caixa.Lancamento) error {
	f.lancamentos = append(f.lancamentos, *l)
	return nil
}

func (f *fakeLancamentos) ExisteReceitaParaServico(tenantID, servicoID uint) (bool, error) {
	for _, l := range f.lancamentos {
		if l.TenantID == tenantID && l.Tipo == caixa.TipoReceita && l.ServicoID != nil && *l.ServicoID == servicoID {
			return true, nil
		}
	}
	return false, nil
}

// fakeRecibos emula o upsert pela chave (tenant, instalador, data):
// o primeiro grava, os seguintes só atualizam os agregados e preservam
// o número original.
type fakeRecibos struct {
	porChave map[string]*Recibo
}

func newFakeRecibos() *fakeRecibos {
	return &fakeRecibos{porChave: make(map[string]*Recibo)}
}

func (f *fakeRecibos) chave(r *Recibo) string {
	return fmt.Sprintf("%d/%d/%s", r.TenantID, r.InstaladorID, r.Data.Format("2006-01-02"))
}

func (f *fakeRecibos) UpsertDiario(rec *Recibo) error {
	k := f.chave(rec)
	if existente, ok := f.porChave[k]; ok {
		existente.QtdServicos = rec.QtdServicos
		existente.TotalMaoObra = rec.TotalMaoObra
		existente.TotalReembolso = rec.TotalReembolso
		existente.Total = rec.Total
		return nil
	}
	copia := *rec
	f.porChave[k] = &copia
	return nil
}

func servicoConcluido(id, instaladorID uint, maoObra, reembolso float64) servico.Servico {
	inst := instaladorID
	return servico.Servico{
		ID:             id,
		TenantID:       1,
		ClienteID:      7,
		InstaladorID:   &inst,
		ValorTotal:     maoObra + reembolso + 100,
		ValorMaoObra:   maoObra,
		ValorReembolso: reembolso,
		Status:         servico.StatusConcluido,
	}
}

func novoRecorder(sc *fakeServicosConcluidos, lc *fakeLancamentos, rb *fakeRecibos) *Recorder {
	fixo := time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)
	return &Recorder{
		Servicos: sc,
		Caixa:    lc,
		Recibos:  rb,
		Agora:    func() time.Time { return fixo },
	}
}

func TestRegistrarAprovacao(t *testing.T) {
	s := servicoConcluido(1, 10, 200, 50)

	sc := &fakeServicosConcluidos{concluidos: []servico.Servico{s}}
	lc := &fakeLancamentos{}
	rb := newFakeRecibos()
	rc := novoRecorder(sc, lc, rb)

	require.NoError(t, rc.RegistrarAprovacao(&s))

	require.Len(t, lc.lancamentos, 1)
	receita := lc.lancamentos[0]
	assert.Equal(t, caixa.TipoReceita, receita.Tipo)
	assert.Equal(t, s.ValorTotal, receita.Valor)
	require.NotNil(t, receita.ServicoID)
	assert.Equal(t, uint(1), *receita.ServicoID)

	require.Len(t, rb.porChave, 1)
	for _, rec := range rb.porChave {
		assert.Equal(t, 1, rec.QtdServicos)
		assert.Equal(t, 200.0, rec.TotalMaoObra)
		assert.Equal(t, 50.0, rec.TotalReembolso)
		assert.Equal(t, 250.0, rec.Total)
		assert.NotEmpty(t, rec.Numero)
		assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), rec.Data)
	}
}

// Reprocessar a mesma aprovação não duplica receita nem recibo.
func TestRegistrarAprovacaoIdempotente(t *testing.T) {
	s := servicoConcluido(1, 10, 200, 50)

	sc := &fakeServicosConcluidos{concluidos: []servico.Servico{s}}
	lc := &fakeLancamentos{}
	rb := newFakeRecibos()
	rc := novoRecorder(sc, lc, rb)

	registrada, err := rc.AprovacaoRegistrada(&s)
	require.NoError(t, err)
	assert.False(t, registrada)

	require.NoError(t, rc.RegistrarAprovacao(&s))

	registrada, err = rc.AprovacaoRegistrada(&s)
	require.NoError(t, err)
	assert.True(t, registrada)

	var numeroOriginal string
	for _, rec := range rb.porChave {
		numeroOriginal = rec.Numero
	}

	require.NoError(t, rc.RegistrarAprovacao(&s))

	assert.Len(t, lc.lancamentos, 1, "receita lançada uma única vez")
	require.Len(t, rb.porChave, 1, "um único recibo por dia")
	for _, rec := range rb.porChave {
		assert.Equal(t, 1, rec.QtdServicos)
		assert.Equal(t, 250.0, rec.Total)
		assert.Equal(t, numeroOriginal, rec.Numero, "número do recibo preservado no upsert")
	}
}

// O segundo serviço do mesmo instalador no mesmo dia agrega no mesmo recibo.
func TestRegistrarAprovacaoAgregaNoDia(t *testing.T) {
	s1 := servicoConcluido(1, 10, 200, 50)
	s2 := servicoConcluido(2, 10, 300, 0)

	sc := &fakeServicosConcluidos{concluidos: []servico.Servico{s1}}
	lc := &fakeLancamentos{}
	rb := newFakeRecibos()
	rc := novoRecorder(sc, lc, rb)

	require.NoError(t, rc.RegistrarAprovacao(&s1))

	sc.concluidos = append(sc.concluidos, s2)
	require.NoError(t, rc.RegistrarAprovacao(&s2))

	assert.Len(t, lc.lancamentos, 2)
	require.Len(t, rb.porChave, 1)
	for _, rec := range rb.porChave {
		assert.Equal(t, 2, rec.QtdServicos)
		assert.Equal(t, 500.0, rec.TotalMaoObra)
		assert.Equal(t, 50.0, rec.TotalReembolso)
		assert.Equal(t, 550.0, rec.Total)
	}
}

// A listagem pode ainda não refletir a transição do serviço recém-aprovado;
// o recorder soma o próprio serviço nesse caso.
func TestRegistrarAprovacaoListagemAtrasada(t *testing.T) {
	s := servicoConcluido(1, 10, 200, 50)

	sc := &fakeServicosConcluidos{} // listagem vazia
	lc := &fakeLancamentos{}
	rb := newFakeRecibos()
	rc := novoRecorder(sc, lc, rb)

	require.NoError(t, rc.RegistrarAprovacao(&s))

	require.Len(t, rb.porChave, 1)
	for _, rec := range rb.porChave {
		assert.Equal(t, 1, rec.QtdServicos)
		assert.Equal(t, 250.0, rec.Total)
	}
}

// O dia do recibo é sempre o dia UTC do instante da aprovação, mesmo quando
// o relógio do processo está em outro fuso.
func TestRegistrarAprovacaoDiaUTC(t *testing.T) {
	s := servicoConcluido(1, 10, 200, 50)

	sc := &fakeServicosConcluidos{concluidos: []servico.Servico{s}}
	lc := &fakeLancamentos{}
	rb := newFakeRecibos()

	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	rc := &Recorder{
		Servicos: sc,
		Caixa:    lc,
		Recibos:  rb,
		// 23h de 10/abr em -03:00 já é 11/abr em UTC.
		Agora: func() time.Time { return time.Date(2026, 4, 10, 23, 0, 0, 0, saoPaulo) },
	}

	require.NoError(t, rc.RegistrarAprovacao(&s))

	require.Len(t, rb.porChave, 1)
	for _, rec := range rb.porChave {
		assert.Equal(t, time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC), rec.Data)
	}
}

// Serviço finalizado pelo administrador sem instalador designado: lança a
// receita mas não gera recibo diário.
func TestRegistrarAprovacaoSemInstalador(t *testing.T) {
	s := servicoConcluido(1, 10, 200, 50)
	s.InstaladorID = nil

	lc := &fakeLancamentos{}
	rb := newFakeRecibos()
	rc := novoRecorder(&fakeServicosConcluidos{}, lc, rb)

	require.NoError(t, rc.RegistrarAprovacao(&s))

	assert.Len(t, lc.lancamentos, 1)
	assert.Empty(t, rb.porChave)
}
