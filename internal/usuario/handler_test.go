package usuario

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/chamaoralph/api-servicos/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepository struct {
	porEmail map[string]*Usuario
	salvos   []*Usuario
}

func newFakeRepository(usuarios ...*Usuario) *fakeRepository {
	f := &fakeRepository{porEmail: make(map[string]*Usuario)}
	for _, u := range usuarios {
		f.porEmail[u.Email] = u
	}
	return f
}

func (f *fakeRepository) Salvar(db *gorm.DB, u *Usuario) error {
	if u.ID == 0 {
		u.ID = uint(len(f.salvos) + 1)
	}
	f.salvos = append(f.salvos, u)
	f.porEmail[u.Email] = u
	return nil
}

func (f *fakeRepository) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	u, ok := f.porEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeRepository) BuscarPorID(db *gorm.DB, tenantID, id uint) (*Usuario, error) {
	for _, u := range f.porEmail {
		if u.TenantID == tenantID && u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListarPorTenant(db *gorm.DB, tenantID uint) ([]Usuario, error) {
	return nil, nil
}

func (f *fakeRepository) ListarInstaladores(db *gorm.DB, tenantID uint) ([]Usuario, error) {
	return nil, nil
}

func (f *fakeRepository) Atualizar(db *gorm.DB, tenantID, id uint, novosDados *Usuario) error {
	return nil
}

func (f *fakeRepository) AdicionarPontos(db *gorm.DB, tenantID, id uint, pontos int) error {
	return nil
}

func (f *fakeRepository) Deletar(db *gorm.DB, tenantID, id uint) error {
	return nil
}

func requisicaoAutenticada(metodo, alvo string, corpo []byte) *http.Request {
	r := httptest.NewRequest(metodo, alvo, bytes.NewReader(corpo))
	ctx := context.WithValue(r.Context(), auth.CtxUserID, uint(1))
	ctx = context.WithValue(ctx, auth.CtxIsAdmin, true)
	ctx = context.WithValue(ctx, auth.CtxTenantID, uint(1))
	return r.WithContext(ctx)
}

func TestLogin(t *testing.T) {
	t.Setenv("AUTH_SECRET", "segredo-de-teste")

	hash, err := utils.HashSenha("senha-certa")
	require.NoError(t, err)
	repo := newFakeRepository(
		&Usuario{ID: 1, TenantID: 1, Email: "ana@ralph.com", Senha: hash, Ativo: true, Perfil: PerfilInstalador},
		&Usuario{ID: 2, TenantID: 1, Email: "inativo@ralph.com", Senha: hash, Ativo: false, Perfil: PerfilInstalador},
	)
	h := &Handler{Repository: repo}

	login := func(email, senha string) *httptest.ResponseRecorder {
		corpo, _ := json.Marshal(LoginRequest{Email: email, Senha: senha})
		w := httptest.NewRecorder()
		h.Login(w, httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(corpo)))
		return w
	}

	t.Run("credenciais corretas", func(t *testing.T) {
		w := login("ana@ralph.com", "senha-certa")
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp["access_token"])
		assert.Equal(t, "Bearer", resp["token_type"])
	})

	t.Run("senha errada", func(t *testing.T) {
		w := login("ana@ralph.com", "senha-errada")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("usuário inativo", func(t *testing.T) {
		w := login("inativo@ralph.com", "senha-certa")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("email desconhecido", func(t *testing.T) {
		w := login("ninguem@ralph.com", "tanto-faz")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCriar(t *testing.T) {
	t.Run("com senha informada", func(t *testing.T) {
		repo := newFakeRepository()
		h := &Handler{Repository: repo}

		corpo, _ := json.Marshal(CreateUsuarioRequest{
			Nome:   "Bruno",
			Email:  "bruno@ralph.com",
			Senha:  "minha-senha",
			Perfil: PerfilInstalador,
		})
		w := httptest.NewRecorder()
		h.Criar(w, requisicaoAutenticada(http.MethodPost, "/usuarios", corpo))
		require.Equal(t, http.StatusCreated, w.Code)

		require.Len(t, repo.salvos, 1)
		salvo := repo.salvos[0]
		assert.NotEqual(t, "minha-senha", salvo.Senha, "senha nunca persiste em texto puro")
		assert.True(t, utils.VerificarSenha(salvo.Senha, "minha-senha"))
	})

	t.Run("sem senha gera temporária", func(t *testing.T) {
		repo := newFakeRepository()
		h := &Handler{Repository: repo}

		corpo, _ := json.Marshal(CreateUsuarioRequest{
			Nome:   "Carla",
			Email:  "carla@ralph.com",
			Perfil: PerfilInstalador,
		})
		w := httptest.NewRecorder()
		h.Criar(w, requisicaoAutenticada(http.MethodPost, "/usuarios", corpo))
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			SenhaTemporaria string `json:"senha_temporaria"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.NotEmpty(t, resp.SenhaTemporaria)

		require.Len(t, repo.salvos, 1)
		assert.True(t, utils.VerificarSenha(repo.salvos[0].Senha, resp.SenhaTemporaria),
			"a senha temporária devolvida deve abrir o hash persistido")
	})

	t.Run("perfil inválido", func(t *testing.T) {
		h := &Handler{Repository: newFakeRepository()}
		corpo, _ := json.Marshal(CreateUsuarioRequest{Nome: "X", Email: "x@ralph.com", Perfil: "gerente"})
		w := httptest.NewRecorder()
		h.Criar(w, requisicaoAutenticada(http.MethodPost, "/usuarios", corpo))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
