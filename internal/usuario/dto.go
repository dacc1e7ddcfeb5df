// internal/usuario/dto.go
package usuario

// LoginRequest é usado em POST /login
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// CreateUsuarioRequest é usado em POST /usuarios
type CreateUsuarioRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Foto     string `json:"foto"`
	Senha    string `json:"senha"`
	Perfil   string `json:"perfil"`
	TenantID uint   `json:"tenantId"`
}

// UpdateUsuarioRequest é usado em PUT /usuarios/{id}
// Campos como ponteiro permitem omitir no JSON se não quiser alterar.
type UpdateUsuarioRequest struct {
	Nome     *string `json:"nome,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	Foto     *string `json:"foto,omitempty"`
	Ativo    *bool   `json:"ativo,omitempty"`
}
