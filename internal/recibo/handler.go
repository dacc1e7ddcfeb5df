// internal/recibo/handler.go
package recibo

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

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

// GET /recibos — admin vê todos; instalador, os próprios.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var (
		list []Recibo
		err  error
	)
	if isAdmin {
		list, err = h.Repository.ListByTenant(tenantID)
	} else {
		list, err = h.Repository.ListByInstalador(tenantID, userID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar recibos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /instaladores/{id}/recibos
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
		http.Error(w, "Erro ao listar recibos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /instaladores/{id}/recibos/export — histórico de liquidações em CSV.
func (h *Handler) ExportarCSV(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "Erro ao exportar recibos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=recibos-instalador-%d.csv", id))

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"numero", "data", "qtd_servicos", "total_mao_obra", "total_reembolso", "total"})
	for _, rec := range list {
		_ = cw.Write([]string{
			rec.Numero,
			rec.Data.Format("2006-01-02"),
			strconv.Itoa(rec.QtdServicos),
			strconv.FormatFloat(rec.TotalMaoObra, 'f', 2, 64),
			strconv.FormatFloat(rec.TotalReembolso, 'f', 2, 64),
			strconv.FormatFloat(rec.Total, 'f', 2, 64),
		})
	}
	cw.Flush()
}
