package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Alfabeto das senhas temporárias, sem caracteres ambíguos (0/O, 1/l/I).
const alfabetoSenha = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const tamanhoSenhaTemporaria = 12

// HashSenha gera o hash bcrypt da senha em texto puro.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerificarSenha confere a senha em texto puro contra o hash armazenado.
func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// GerarSenhaTemporaria produz a senha inicial de um usuário criado sem senha.
// O administrador repassa a senha ao usuário, que deve trocá-la no primeiro
// acesso.
func GerarSenhaTemporaria() (string, error) {
	max := big.NewInt(int64(len(alfabetoSenha)))
	senha := make([]byte, tamanhoSenhaTemporaria)
	for i := range senha {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		senha[i] = alfabetoSenha[n.Int64()]
	}
	return string(senha), nil
}
