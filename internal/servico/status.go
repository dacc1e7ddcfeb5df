package servico

// Status é o conjunto fechado de estados do ciclo de vida de um serviço.
// Toda escrita em Servico.Status passa pelo gerenciador de ciclo de vida;
// nenhum handler grava o campo diretamente.
type Status string

const (
	StatusAguardandoDistribuicao Status = "aguardando_distribuicao"
	StatusDisponivel             Status = "disponivel"
	StatusSolicitado             Status = "solicitado"
	StatusAtribuido              Status = "atribuido"
	StatusEmAndamento            Status = "em_andamento"
	StatusAguardandoAprovacao    Status = "aguardando_aprovacao"
	StatusConcluido              Status = "concluido"
	StatusCancelado              Status = "cancelado"
)

// Valido informa se o valor pertence ao conjunto de estados conhecidos.
func (s Status) Valido() bool {
	switch s {
	case StatusAguardandoDistribuicao, StatusDisponivel, StatusSolicitado,
		StatusAtribuido, StatusEmAndamento, StatusAguardandoAprovacao,
		StatusConcluido, StatusCancelado:
		return true
	}
	return false
}

// Terminal informa se o estado não admite mais transições.
func (s Status) Terminal() bool {
	return s == StatusConcluido || s == StatusCancelado
}
