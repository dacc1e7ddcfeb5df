package usuario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNivelPorPontos(t *testing.T) {
	testes := []struct {
		pontos int
		nivel  int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{200, 3},
		{1000, 11},
	}
	for _, tc := range testes {
		assert.Equal(t, tc.nivel, NivelPorPontos(tc.pontos), "pontos=%d", tc.pontos)
	}
}

func TestAdmin(t *testing.T) {
	assert.True(t, (&Usuario{Perfil: PerfilAdmin}).Admin())
	assert.False(t, (&Usuario{Perfil: PerfilInstalador}).Admin())
	assert.False(t, (&Usuario{}).Admin())
}
