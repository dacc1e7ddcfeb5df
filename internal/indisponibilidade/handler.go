// internal/indisponibilidade/handler.go
package indisponibilidade

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

type criarDTO struct {
	DataInicio string `json:"dataInicio"` // "2006-01-02"
	DataFim    string `json:"dataFim"`
	HoraInicio string `json:"horaInicio"`
	HoraFim    string `json:"horaFim"`
	Motivo     string `json:"motivo"`
}

// POST /indisponibilidades — o instalador registra o próprio bloqueio.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto criarDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	inicio, err := time.Parse("2006-01-02", dto.DataInicio)
	if err != nil {
		http.Error(w, "dataInicio inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}
	fim, err := time.Parse("2006-01-02", dto.DataFim)
	if err != nil {
		http.Error(w, "dataFim inválida (use AAAA-MM-DD)", http.StatusBadRequest)
		return
	}
	if fim.Before(inicio) {
		http.Error(w, "dataFim anterior a dataInicio", http.StatusBadRequest)
		return
	}

	i := Indisponibilidade{
		TenantID:     tenantID,
		InstaladorID: userID,
		DataInicio:   inicio,
		DataFim:      fim,
		HoraInicio:   dto.HoraInicio,
		HoraFim:      dto.HoraFim,
		Motivo:       dto.Motivo,
	}
	if err := h.Repository.Create(&i); err != nil {
		http.Error(w, "Erro ao salvar indisponibilidade", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(i)
}

// GET /indisponibilidades — instalador vê as suas; admin filtra por dia.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	if !isAdmin {
		list, err := h.Repository.ListByInstalador(tenantID, userID)
		if err != nil {
			http.Error(w, "Erro ao listar indisponibilidades", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
		return
	}

	dia := r.URL.Query().Get("dia")
	var (
		list []Indisponibilidade
		err  error
	)
	if dia != "" {
		data, parseErr := time.Parse("2006-01-02", dia)
		if parseErr != nil {
			http.Error(w, "dia inválido (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		list, err = h.Repository.ListNoDia(tenantID, data)
	} else {
		list, err = h.Repository.ListByTenant(tenantID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar indisponibilidades", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DELETE /indisponibilidades/{id} — somente o próprio instalador ou admin.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	i, err := h.Repository.FindByID(tenantID, uint(id))
	if err != nil {
		http.Error(w, "Indisponibilidade não encontrada", http.StatusNotFound)
		return
	}
	if !isAdmin && i.InstaladorID != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	if err := h.Repository.Delete(tenantID, uint(id)); err != nil {
		http.Error(w, "Erro ao remover indisponibilidade", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
