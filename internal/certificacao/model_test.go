package certificacao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVigente(t *testing.T) {
	agora := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	futuro := agora.AddDate(0, 3, 0)
	passado := agora.AddDate(0, -3, 0)

	assert.True(t, (&Certificacao{Ativa: true, ValidadeAte: &futuro}).Vigente(agora))
	assert.True(t, (&Certificacao{Ativa: true}).Vigente(agora), "sem prazo não expira")

	assert.False(t, (&Certificacao{Ativa: true, ValidadeAte: &passado}).Vigente(agora))
	assert.False(t, (&Certificacao{Ativa: false, ValidadeAte: &futuro}).Vigente(agora))
}

func TestLibera(t *testing.T) {
	c := &Certificacao{TiposServicoLiberados: []string{"ar-condicionado", "eletrica"}}

	assert.True(t, c.Libera([]string{"eletrica"}))
	assert.True(t, c.Libera([]string{"hidraulica", "ar-condicionado"}))

	assert.False(t, c.Libera([]string{"hidraulica"}))
	assert.False(t, c.Libera(nil))
	assert.False(t, (&Certificacao{}).Libera([]string{"eletrica"}))
}
