// internal/servico/handler.go
package servico

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository. As transições de status vivem no
// pacote lifecycle; aqui ficam criação, consulta e edição cadastral.
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

type servicoCreateDTO struct {
	ClienteID      uint     `json:"clienteId"`
	TiposServico   []string `json:"tiposServico"`
	DataAgendada   string   `json:"dataAgendada"` // "2006-01-02T15:04"
	Endereco       string   `json:"endereco"`
	ValorTotal     float64  `json:"valorTotal"`
	ValorMaoObra   float64  `json:"valorMaoObra"`
	ValorReembolso float64  `json:"valorReembolso"`
	Descricao      string   `json:"descricao"`
}

const formatoDataAgendada = "2006-01-02T15:04"

// POST /servicos — criação direta por administrador.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto servicoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.ClienteID == 0 || len(dto.TiposServico) == 0 {
		http.Error(w, "cliente e tipos de serviço são obrigatórios", http.StatusBadRequest)
		return
	}
	data, err := time.Parse(formatoDataAgendada, dto.DataAgendada)
	if err != nil {
		http.Error(w, "dataAgendada inválida (use AAAA-MM-DDTHH:MM)", http.StatusBadRequest)
		return
	}

	// Não bloqueamos repasses acima do valor total (pode haver bonificação),
	// mas registramos para auditoria.
	if dto.ValorMaoObra+dto.ValorReembolso > dto.ValorTotal {
		log.Printf("serviço com repasse acima do total: maoObra=%.2f reembolso=%.2f total=%.2f", dto.ValorMaoObra, dto.ValorReembolso, dto.ValorTotal)
	}

	s := Servico{
		TenantID:       tenantID,
		ClienteID:      dto.ClienteID,
		TiposServico:   dto.TiposServico,
		DataAgendada:   data,
		Endereco:       dto.Endereco,
		ValorTotal:     dto.ValorTotal,
		ValorMaoObra:   dto.ValorMaoObra,
		ValorReembolso: dto.ValorReembolso,
		Descricao:      dto.Descricao,
		Status:         StatusAguardandoDistribuicao,
	}
	if err := h.Repository.Salvar(h.DB, &s); err != nil {
		http.Error(w, "Erro ao salvar serviço", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(s)
}

// GET /servicos — administradores veem todos; instaladores, os seus.
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var (
		list []Servico
		err  error
	)
	switch {
	case !isAdmin:
		list, err = h.Repository.ListarPorInstalador(h.DB, tenantID, userID)
	case r.URL.Query().Get("status") != "":
		list, err = h.Repository.ListarPorStatus(h.DB, tenantID, Status(r.URL.Query().Get("status")))
	default:
		list, err = h.Repository.ListarPorTenant(h.DB, tenantID)
	}
	if err != nil {
		http.Error(w, "Erro ao listar serviços", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /servicos/disponiveis — pool aberto visível aos instaladores.
func (h *Handler) ListarDisponiveis(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	list, err := h.Repository.ListarPorStatus(h.DB, tenantID, StatusDisponivel)
	if err != nil {
		http.Error(w, "Erro ao listar serviços disponíveis", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// GET /servicos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	s, err := h.Repository.BuscarPorID(h.DB, tenantID, uint(id))
	if err != nil {
		http.Error(w, "Serviço não encontrado", http.StatusNotFound)
		return
	}

	// Instalador só enxerga serviços do pool ou os próprios.
	if !isAdmin && s.Status != StatusDisponivel &&
		(s.InstaladorID == nil || *s.InstaladorID != userID) {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

// PUT /servicos/{id} — edição cadastral; status nunca muda por aqui.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	existente, err := h.Repository.BuscarPorID(h.DB, tenantID, uint(id))
	if err != nil {
		http.Error(w, "Serviço não encontrado", http.StatusNotFound)
		return
	}
	if existente.Status.Terminal() {
		http.Error(w, "Serviço encerrado não pode ser alterado", http.StatusConflict)
		return
	}

	var dto servicoCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.DataAgendada != "" {
		data, err := time.Parse(formatoDataAgendada, dto.DataAgendada)
		if err != nil {
			http.Error(w, "dataAgendada inválida (use AAAA-MM-DDTHH:MM)", http.StatusBadRequest)
			return
		}
		existente.DataAgendada = data
	}
	if len(dto.TiposServico) > 0 {
		existente.TiposServico = dto.TiposServico
	}
	if dto.ValorMaoObra+dto.ValorReembolso > dto.ValorTotal {
		log.Printf("serviço %d com repasse acima do total: maoObra=%.2f reembolso=%.2f total=%.2f", existente.ID, dto.ValorMaoObra, dto.ValorReembolso, dto.ValorTotal)
	}
	existente.Endereco = dto.Endereco
	existente.ValorTotal = dto.ValorTotal
	existente.ValorMaoObra = dto.ValorMaoObra
	existente.ValorReembolso = dto.ValorReembolso
	existente.Descricao = dto.Descricao

	if err := h.Repository.Atualizar(h.DB, existente); err != nil {
		http.Error(w, "Erro ao atualizar serviço", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}
