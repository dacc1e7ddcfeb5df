package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/chamaoralph/api-servicos/internal/auth"
	"github.com/chamaoralph/api-servicos/internal/caixa"
	"github.com/chamaoralph/api-servicos/internal/certificacao"
	"github.com/chamaoralph/api-servicos/internal/cliente"
	"github.com/chamaoralph/api-servicos/internal/cotacao"
	"github.com/chamaoralph/api-servicos/internal/indisponibilidade"
	"github.com/chamaoralph/api-servicos/internal/lifecycle"
	"github.com/chamaoralph/api-servicos/internal/questionario"
	"github.com/chamaoralph/api-servicos/internal/recibo"
	"github.com/chamaoralph/api-servicos/internal/servico"
	"github.com/chamaoralph/api-servicos/internal/usuario"
	"github.com/chamaoralph/api-servicos/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&usuario.Usuario{},
		&cliente.Cliente{},
		&cotacao.Cotacao{},
		&servico.Servico{},
		&certificacao.Certificacao{},
		&questionario.Questionario{},
		&questionario.Tentativa{},
		&indisponibilidade.Indisponibilidade{},
		&caixa.Lancamento{},
		&recibo.Recibo{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	clienteHandler := cliente.NewHandler(database)
	cotacaoHandler := cotacao.NewHandler(database)
	servicoHandler := servico.NewHandler(database)
	certificacaoHandler := certificacao.NewHandler(database)
	questionarioHandler := questionario.NewHandler(database)
	indisponibilidadeHandler := indisponibilidade.NewHandler(database)
	caixaHandler := caixa.NewHandler(database)
	reciboHandler := recibo.NewHandler(database)

	// Gerenciador de ciclo de vida com o recorder de liquidação acoplado
	manager := lifecycle.NewGormManager(database, recibo.NewGormRecorder(database))
	lifecycleHandler := lifecycle.NewHandler(manager)

	// Router
	r := mux.NewRouter()

	// Rota pública
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	admin := func(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(h) }

	// Usuários e instaladores
	api.Handle("/usuarios", admin(usuarioHandler.Criar)).Methods("POST")
	api.Handle("/usuarios", admin(usuarioHandler.Listar)).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	api.Handle("/usuarios/{id}", admin(usuarioHandler.Deletar)).Methods("DELETE")
	api.Handle("/instaladores", admin(usuarioHandler.ListarInstaladores)).Methods("GET")

	// Clientes
	api.Handle("/clientes", admin(clienteHandler.Criar)).Methods("POST")
	api.Handle("/clientes", admin(clienteHandler.Listar)).Methods("GET")
	api.Handle("/clientes/{id}", admin(clienteHandler.BuscarPorID)).Methods("GET")
	api.Handle("/clientes/{id}", admin(clienteHandler.Atualizar)).Methods("PUT")
	api.Handle("/clientes/{id}", admin(clienteHandler.Deletar)).Methods("DELETE")

	// Cotações
	api.Handle("/cotacoes", admin(cotacaoHandler.Criar)).Methods("POST")
	api.Handle("/cotacoes", admin(cotacaoHandler.Listar)).Methods("GET")
	api.Handle("/cotacoes/{id}", admin(cotacaoHandler.BuscarPorID)).Methods("GET")
	api.Handle("/cotacoes/{id}", admin(cotacaoHandler.Atualizar)).Methods("PUT")
	api.Handle("/cotacoes/{id}/aprovar", admin(cotacaoHandler.Aprovar)).Methods("POST")
	api.Handle("/cotacoes/{id}/encerrar", admin(cotacaoHandler.Encerrar)).Methods("POST")

	// Serviços (cadastro e consulta)
	api.Handle("/servicos", admin(servicoHandler.Criar)).Methods("POST")
	api.HandleFunc("/servicos", servicoHandler.Listar).Methods("GET")
	api.HandleFunc("/servicos/disponiveis", servicoHandler.ListarDisponiveis).Methods("GET")
	api.HandleFunc("/servicos/{id}", servicoHandler.BuscarPorID).Methods("GET")
	api.Handle("/servicos/{id}", admin(servicoHandler.Atualizar)).Methods("PUT")

	// Transições do ciclo de vida (único caminho de escrita do status)
	api.HandleFunc("/servicos/{id}/publicar", lifecycleHandler.Publicar).Methods("POST")
	api.HandleFunc("/servicos/{id}/solicitar", lifecycleHandler.Solicitar).Methods("POST")
	api.HandleFunc("/servicos/{id}/atribuir", lifecycleHandler.Atribuir).Methods("POST")
	api.HandleFunc("/servicos/{id}/iniciar", lifecycleHandler.Iniciar).Methods("POST")
	api.HandleFunc("/servicos/{id}/concluir", lifecycleHandler.Concluir).Methods("POST")
	api.HandleFunc("/servicos/{id}/aprovar", lifecycleHandler.Aprovar).Methods("POST")
	api.HandleFunc("/servicos/{id}/rejeitar", lifecycleHandler.Rejeitar).Methods("POST")
	api.HandleFunc("/servicos/{id}/cancelar", lifecycleHandler.Cancelar).Methods("POST")
	api.HandleFunc("/servicos/{id}/finalizar", lifecycleHandler.Finalizar).Methods("POST")

	// Certificações e questionários
	api.Handle("/certificacoes", admin(certificacaoHandler.Conceder)).Methods("POST")
	api.Handle("/certificacoes/{id}", admin(certificacaoHandler.Revogar)).Methods("DELETE")
	api.HandleFunc("/instaladores/{id}/certificacoes", certificacaoHandler.ListarPorInstalador).Methods("GET")
	api.Handle("/questionarios", admin(questionarioHandler.Criar)).Methods("POST")
	api.HandleFunc("/questionarios", questionarioHandler.Listar).Methods("GET")
	api.HandleFunc("/questionarios/{id}/tentativas", questionarioHandler.SubmeterTentativa).Methods("POST")
	api.HandleFunc("/instaladores/{id}/tentativas", questionarioHandler.ListarTentativas).Methods("GET")

	// Indisponibilidades
	api.HandleFunc("/indisponibilidades", indisponibilidadeHandler.Criar).Methods("POST")
	api.HandleFunc("/indisponibilidades", indisponibilidadeHandler.Listar).Methods("GET")
	api.HandleFunc("/indisponibilidades/{id}", indisponibilidadeHandler.Deletar).Methods("DELETE")

	// Caixa
	api.Handle("/lancamentos", admin(caixaHandler.Criar)).Methods("POST")
	api.Handle("/lancamentos", admin(caixaHandler.Listar)).Methods("GET")
	api.Handle("/lancamentos/{id}", admin(caixaHandler.Deletar)).Methods("DELETE")

	// Recibos de liquidação
	api.HandleFunc("/recibos", reciboHandler.Listar).Methods("GET")
	api.HandleFunc("/instaladores/{id}/recibos", reciboHandler.ListarPorInstalador).Methods("GET")
	api.HandleFunc("/instaladores/{id}/recibos/export", reciboHandler.ExportarCSV).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Inicia servidor
	fmt.Printf("Servidor rodando em http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
