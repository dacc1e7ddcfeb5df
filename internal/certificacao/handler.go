// internal/certificacao/handler.go
package certificacao

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

type concederDTO struct {
	InstaladorID          uint     `json:"instaladorId"`
	TiposServicoLiberados []string `json:"tiposServicoLiberados"`
	ValidadeAte           string   `json:"validadeAte"` // "2006-01-02", vazio = sem expiração
}

// POST /certificacoes — concessão manual por administrador.
func (h *Handler) Conceder(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto concederDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.InstaladorID == 0 || len(dto.TiposServicoLiberados) == 0 {
		http.Error(w, "instalador e tipos liberados são obrigatórios", http.StatusBadRequest)
		return
	}

	c := Certificacao{
		TenantID:              tenantID,
		InstaladorID:          dto.InstaladorID,
		TiposServicoLiberados: dto.TiposServicoLiberados,
		Ativa:                 true,
	}
	if dto.ValidadeAte != "" {
		validade, err := time.Parse("2006-01-02", dto.ValidadeAte)
		if err != nil {
			http.Error(w, "validadeAte inválida (use AAAA-MM-DD)", http.StatusBadRequest)
			return
		}
		c.ValidadeAte = &validade
	}

	if err := h.Repository.Create(&c); err != nil {
		http.Error(w, "Erro ao salvar certificação", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// GET /instaladores/{id}/certificacoes
func (h *Handler) ListarPorInstalador(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if !isAdmin && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	list, err := h.Repository.ListByInstalador(tenantID, uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar certificações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// DELETE /certificacoes/{id} — revoga sem apagar o histórico.
func (h *Handler) Revogar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Repository.Revogar(tenantID, uint(id)); err != nil {
		http.Error(w, "Erro ao revogar certificação", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
