package servico

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValido(t *testing.T) {
	todos := []Status{
		StatusAguardandoDistribuicao,
		StatusDisponivel,
		StatusSolicitado,
		StatusAtribuido,
		StatusEmAndamento,
		StatusAguardandoAprovacao,
		StatusConcluido,
		StatusCancelado,
	}
	for _, s := range todos {
		assert.True(t, s.Valido(), string(s))
	}

	assert.False(t, Status("pendente").Valido())
	assert.False(t, Status("").Valido())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusConcluido.Terminal())
	assert.True(t, StatusCancelado.Terminal())

	assert.False(t, StatusAguardandoDistribuicao.Terminal())
	assert.False(t, StatusDisponivel.Terminal())
	assert.False(t, StatusSolicitado.Terminal())
	assert.False(t, StatusAtribuido.Terminal())
	assert.False(t, StatusEmAndamento.Terminal())
	assert.False(t, StatusAguardandoAprovacao.Terminal())
}
