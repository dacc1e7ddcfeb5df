// internal/lifecycle/handler.go
package lifecycle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chamaoralph/api-servicos/internal/atribuicao"
	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler expõe as transições do ciclo de vida como rotas HTTP. É o único
// caminho de escrita para Servico.Status.
type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

type motivoRequest struct {
	Motivo string `json:"motivo"`
}

type atribuirRequest struct {
	InstaladorID uint `json:"instaladorId"`
}

type finalizarRequest struct {
	Observacao string `json:"observacao"`
}

func atorDaRequisicao(r *http.Request) (Ator, bool) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		return Ator{}, false
	}
	return Ator{ID: userID, Admin: isAdmin, TenantID: tenantID}, true
}

func servicoIDDaRota(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("ID inválido")
	}
	return uint(id), nil
}

// responde traduz o resultado da transição em resposta HTTP. Erros de corrida
// viram 409, autorização 403, transição ilegal e política 422.
func responde(w http.ResponseWriter, s *servico.Servico, err error) {
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Serviço não encontrado", http.StatusNotFound)
	case errors.Is(err, ErrEstadoDesatualizado):
		http.Error(w, "O serviço não está mais neste estado; recarregue e tente novamente", http.StatusConflict)
	case errors.Is(err, ErrNaoAutorizado):
		http.Error(w, "Operação não permitida para este usuário", http.StatusForbidden)
	case errors.Is(err, ErrTransicaoIlegal):
		http.Error(w, "Transição de status não permitida", http.StatusUnprocessableEntity)
	case errors.Is(err, atribuicao.ErrSemCertificacao), errors.Is(err, atribuicao.ErrInstaladorInativo):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Erro ao processar transição", http.StatusInternalServerError)
	}
}

// POST /servicos/{id}/publicar
func (h *Handler) Publicar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Publicar(ator, id)
	responde(w, s, err)
}

// POST /servicos/{id}/solicitar
func (h *Handler) Solicitar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Solicitar(ator, id)
	responde(w, s, err)
}

// POST /servicos/{id}/atribuir
func (h *Handler) Atribuir(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req atribuirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InstaladorID == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Atribuir(ator, id, req.InstaladorID)
	responde(w, s, err)
}

// POST /servicos/{id}/iniciar
func (h *Handler) Iniciar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Iniciar(ator, id)
	responde(w, s, err)
}

// POST /servicos/{id}/concluir
func (h *Handler) Concluir(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dados servico.Conclusao
	if err := json.NewDecoder(r.Body).Decode(&dados); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Concluir(ator, id, dados)
	responde(w, s, err)
}

// POST /servicos/{id}/aprovar
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s, err := h.Manager.Aprovar(ator, id)
	responde(w, s, err)
}

// POST /servicos/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req motivoRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	s, err := h.Manager.Rejeitar(ator, id, req.Motivo)
	responde(w, s, err)
}

// POST /servicos/{id}/cancelar
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req motivoRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	s, err := h.Manager.Cancelar(ator, id, req.Motivo)
	responde(w, s, err)
}

// POST /servicos/{id}/finalizar
func (h *Handler) Finalizar(w http.ResponseWriter, r *http.Request) {
	ator, ok := atorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, err := servicoIDDaRota(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req finalizarRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	s, err := h.Manager.Finalizar(ator, id, req.Observacao)
	responde(w, s, err)
}
