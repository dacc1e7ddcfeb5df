// internal/caixa/handler.go
package caixa

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
	}
}

type lancamentoDTO struct {
	Tipo      string  `json:"tipo"`
	Valor     float64 `json:"valor"`
	Data      string  `json:"data"` // "2006-01-02"; vazio = hoje
	Descricao string  `json:"descricao"`
	ServicoID *uint   `json:"servicoId,omitempty"`
}

// POST /lancamentos — lançamento manual por administrador (despesas gerais,
// ajustes). Receitas de serviço entram pelo recorder de liquidação.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto lancamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Tipo != TipoReceita && dto.Tipo != TipoDespesa {
		http.Error(w, "tipo deve ser receita ou despesa", http.StatusBadRequest)
		return
	}
	if dto.Valor <= 0 {
		http.Error(w, "valor deve ser positivo", http.StatusBadRequest)
		return
	}

	data := time.Now()
	if dto.Data != "" {
		parsed, err := time.Parse("2006-01-02", dto.Data)
		if err != nil {
			http.Error(w, "data inválida (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		data = parsed
	}

	l := Lancamento{
		TenantID:  tenantID,
		Tipo:      dto.Tipo,
		Valor:     dto.Valor,
		Data:      data,
		Descricao: dto.Descricao,
		ServicoID: dto.ServicoID,
	}
	if err := h.Repository.Criar(&l); err != nil {
		http.Error(w, "Erro ao salvar lançamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(l)
}

// GET /lancamentos?inicio=AAAA-MM-DD&fim=AAAA-MM-DD
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	inicioStr := r.URL.Query().Get("inicio")
	fimStr := r.URL.Query().Get("fim")

	var (
		list []Lancamento
		err  error
	)
	if inicioStr != "" && fimStr != "" {
		inicio, errI := time.Parse("2006-01-02", inicioStr)
		fim, errF := time.Parse("2006-01-02", fimStr)
		if errI != nil || errF != nil {
			http.Error(w, "período inválido (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		list, err = h.Repository.ListByPeriodo(tenantID, inicio, fim.AddDate(0, 0, 1))
	} else {
		list, err = h.Repository.ListByTenant(tenantID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar lançamentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DELETE /lancamentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repository.Deletar(tenantID, uint(id)); err != nil {
		http.Error(w, "Erro ao remover lançamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
