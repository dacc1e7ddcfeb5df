// internal/cotacao/handler.go
package cotacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Conversor  *Conversor
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Conversor:  NewConversor(),
	}
}

type cotacaoCreateDTO struct {
	ClienteID     uint     `json:"clienteId"`
	TiposServico  []string `json:"tiposServico"`
	DataDesejada  string   `json:"dataDesejada"` // "2006-01-02"
	JanelaInicio  string   `json:"janelaInicio"`
	JanelaFim     string   `json:"janelaFim"`
	ValorEstimado float64  `json:"valorEstimado"`
	Descricao     string   `json:"descricao"`
	Observacoes   string   `json:"observacoes"`
}

type encerrarDTO struct {
	Status string `json:"status"` // "perdida" | "nao_gerada"
}

// POST /cotacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto cotacaoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.ClienteID == 0 || len(dto.TiposServico) == 0 {
		http.Error(w, "cliente e tipos de serviço são obrigatórios", http.StatusBadRequest)
		return
	}

	data, err := time.Parse("2006-01-02", dto.DataDesejada)
	if err != nil {
		http.Error(w, "dataDesejada inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}

	c := Cotacao{
		TenantID:      tenantID,
		ClienteID:     dto.ClienteID,
		TiposServico:  dto.TiposServico,
		DataDesejada:  data,
		JanelaInicio:  dto.JanelaInicio,
		JanelaFim:     dto.JanelaFim,
		ValorEstimado: dto.ValorEstimado,
		Descricao:     dto.Descricao,
		Observacoes:   dto.Observacoes,
		Status:        StatusPendente,
	}
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar cotação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /cotacoes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	var (
		list []Cotacao
		err  error
	)
	if status != "" {
		list, err = h.Repository.ListarPorStatus(h.DB, tenantID, status)
	} else {
		list, err = h.Repository.ListarPorTenant(h.DB, tenantID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar cotações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /cotacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, tenantID, uint(id))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// PUT /cotacoes/{id} — somente cotações ainda pendentes podem mudar.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	existente, err := h.Repository.BuscarPorID(h.DB, tenantID, uint(id))
	if err != nil {
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
		return
	}
	if existente.Terminal() {
		http.Error(w, "Cotação encerrada não pode ser alterada", http.StatusConflict)
		return
	}

	var dto cotacaoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.DataDesejada != "" {
		data, err := time.Parse("2006-01-02", dto.DataDesejada)
		if err != nil {
			http.Error(w, "dataDesejada inválida (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		existente.DataDesejada = data
	}
	if len(dto.TiposServico) > 0 {
		existente.TiposServico = dto.TiposServico
	}
	existente.JanelaInicio = dto.JanelaInicio
	existente.JanelaFim = dto.JanelaFim
	existente.ValorEstimado = dto.ValorEstimado
	existente.Descricao = dto.Descricao
	existente.Observacoes = dto.Observacoes

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar cotação", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// POST /cotacoes/{id}/aprovar — cria o serviço correspondente.
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	s, err := h.Conversor.Aprovar(h.DB, tenantID, uint(id))
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(s)
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Cotação não encontrada", http.StatusNotFound)
	case errors.Is(err, ErrCotacaoEncerrada):
		http.Error(w, "Cotação já encerrada", http.StatusConflict)
	default:
		http.Error(w, "Erro ao aprovar cotação", http.StatusInternalServerError)
	}
}

// POST /cotacoes/{id}/encerrar — marca como perdida ou não gerada.
func (h *Handler) Encerrar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto encerrarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	err := h.Conversor.Encerrar(h.DB, tenantID, uint(id), dto.Status)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, ErrCotacaoEncerrada):
		http.Error(w, "Cotação já encerrada", http.StatusConflict)
	default:
		http.Error(w, "Erro ao encerrar cotação", http.StatusBadRequest)
	}
}
