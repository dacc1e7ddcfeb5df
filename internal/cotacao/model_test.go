package cotacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminal(t *testing.T) {
	assert.False(t, (&Cotacao{Status: StatusPendente}).Terminal())

	assert.True(t, (&Cotacao{Status: StatusAprovada}).Terminal())
	assert.True(t, (&Cotacao{Status: StatusPerdida}).Terminal())
	assert.True(t, (&Cotacao{Status: StatusNaoGerada}).Terminal())
}
