// internal/questionario/handler.go
package questionario

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB            *gorm.DB
	Repository    *Repository
	Certificacoes *certificacao.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:            db,
		Repository:    NewRepository(db),
		Certificacoes: certificacao.NewRepository(db),
	}
}

// POST /questionarios — criação por administrador.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var q Questionario
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	q.ID = 0
	q.TenantID = tenantID
	if q.Titulo == "" || len(q.Perguntas) == 0 || len(q.TiposServicoLiberados) == 0 {
		http.Error(w, "título, perguntas e tipos liberados são obrigatórios", http.StatusBadRequest)
		return
	}
	if q.NotaMinima <= 0 {
		q.NotaMinima = 70
	}
	q.Ativo = true

	if err := h.Repository.Create(&q); err != nil {
		http.Error(w, "Erro ao salvar questionário", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(q)
}

// GET /questionarios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	_, _, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	list, err := h.Repository.ListAtivos(tenantID)
	if err != nil {
		http.Error(w, "Erro ao listar questionários", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

type tentativaDTO struct {
	Respostas []int `json:"respostas"`
}

// POST /questionarios/{id}/tentativas
// Corrige a submissão do instalador; aprovação concede a certificação com a
// validade configurada no questionário.
func (h *Handler) SubmeterTentativa(w http.ResponseWriter, r *http.Request) {
	userID, isAdmin, tenantID, ok := auth.AtorDaRequisicao(r)
	if !ok {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}
	if isAdmin {
		http.Error(w, "apenas instaladores prestam o questionário", http.StatusForbidden)
		return
	}
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	q, err := h.Repository.FindByID(tenantID, uint(id))
	if err != nil {
		http.Error(w, "Questionário não encontrado", http.StatusNotFound)
		return
	}
	if !q.Ativo {
		http.Error(w, "Questionário desativado", http.StatusConflict)
		return
	}

	var dto tentativaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	nota := q.Corrigir(dto.Respostas)
	t := Tentativa{
		TenantID:       tenantID,
		QuestionarioID: q.ID,
		InstaladorID:   userID,
		Respostas:      dto.Respostas,
		Nota:           nota,
		Aprovado:       nota >= q.NotaMinima,
	}
	if err := h.Repository.CreateTentativa(&t); err != nil {
		http.Error(w, "Erro ao salvar tentativa", http.StatusInternalServerError)
		return
	}

	var cert *certificacao.Certificacao
	if t.Aprovado {
		questionarioID := q.ID
		tentativaID := t.ID
		c := certificacao.Certificacao{
			TenantID:              tenantID,
			InstaladorID:          userID,
			TiposServicoLiberados: q.TiposServicoLiberados,
			Ativa:                 true,
			QuestionarioID:        &questionarioID,
			TentativaID:           &tentativaID,
		}
		if q.ValidadeMeses > 0 {
			validade := time.Now().AddDate(0, q.ValidadeMeses, 0)
			c.ValidadeAte = &validade
		}
		if err := h.Certificacoes.Create(&c); err != nil {
			http.Error(w, "Erro ao conceder certificação", http.StatusInternalServerError)
			return
		}
		cert = &c
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"tentativa":    t,
		"certificacao": cert,
	})
}

// GET /instaladores/{id}/tentativas
func (h *Handler) ListarTentativas(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Repository.ListTentativasByInstalador(tenantID, uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar tentativas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
