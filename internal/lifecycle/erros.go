package lifecycle

import "errors"

var (
	// ErrEstadoDesatualizado indica que outro ator mudou o status entre a
	// leitura e a escrita condicional. Recuperável: o chamador relê e avisa
	// o usuário que o serviço não está mais no estado esperado.
	ErrEstadoDesatualizado = errors.New("o serviço mudou de estado durante a operação")

	// ErrNaoAutorizado indica ator errado para a operação (instalador que não
	// é o responsável, ou operação restrita a administradores).
	ErrNaoAutorizado = errors.New("ator não autorizado para esta operação")

	// ErrTransicaoIlegal indica tentativa de transição fora da tabela de
	// estados — em geral um defeito de UI, nunca repetido automaticamente.
	ErrTransicaoIlegal = errors.New("transição de status não permitida")
)
