package indisponibilidade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCobre(t *testing.T) {
	dia := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}
	i := &Indisponibilidade{DataInicio: dia(10), DataFim: dia(15)}

	assert.True(t, i.Cobre(dia(10)), "primeiro dia do intervalo")
	assert.True(t, i.Cobre(dia(12)))
	assert.True(t, i.Cobre(dia(15)), "último dia do intervalo")

	assert.False(t, i.Cobre(dia(9)))
	assert.False(t, i.Cobre(dia(16)))
}
