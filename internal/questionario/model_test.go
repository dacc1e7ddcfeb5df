package questionario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrigir(t *testing.T) {
	q := &Questionario{
		NotaMinima: 70,
		Perguntas: []Pergunta{
			{Enunciado: "p1", Alternativas: []string{"a", "b", "c"}, Correta: 0},
			{Enunciado: "p2", Alternativas: []string{"a", "b", "c"}, Correta: 2},
			{Enunciado: "p3", Alternativas: []string{"a", "b", "c"}, Correta: 1},
			{Enunciado: "p4", Alternativas: []string{"a", "b", "c"}, Correta: 1},
		},
	}

	testes := []struct {
		nome      string
		respostas []int
		nota      int
	}{
		{"todas corretas", []int{0, 2, 1, 1}, 100},
		{"três de quatro", []int{0, 2, 1, 0}, 75},
		{"metade", []int{0, 2, 0, 0}, 50},
		{"nenhuma correta", []int{1, 0, 2, 2}, 0},
		{"respostas faltando contam como erro", []int{0, 2}, 50},
		{"sem respostas", nil, 0},
		{"respostas extras são ignoradas", []int{0, 2, 1, 1, 0, 0}, 100},
	}

	for _, tc := range testes {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.nota, q.Corrigir(tc.respostas))
		})
	}
}

func TestCorrigirSemPerguntas(t *testing.T) {
	q := &Questionario{}
	assert.Equal(t, 0, q.Corrigir([]int{0, 1}))
}
