package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/louvorapp/api/internal/aviso"
	"github.com/louvorapp/api/internal/config"
	"github.com/louvorapp/api/internal/ensaio"
	"github.com/louvorapp/api/internal/escala"
	httpmiddleware "github.com/louvorapp/api/internal/http/middleware"
	"github.com/louvorapp/api/internal/repertorio"
	"github.com/louvorapp/api/internal/service"
	"github.com/louvorapp/api/internal/usuario"
)

type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	authService   *service.AuthService
	central       *aviso.Central
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	devCookies    bool
}

// NewRouter devolve roteador configurado.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, authService *service.AuthService, sessoes *service.SessaoService, central *aviso.Central) http.Handler {
	devCookies := false
	for _, origin := range cfg.AllowOrigins {
		if strings.Contains(origin, "localhost") {
			devCookies = true
			break
		}
	}

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		authService:   authService,
		central:       central,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
		devCookies:    devCookies,
	}

	usuarioHandler := usuario.NewHandler(usuario.NewService(usuario.NewRepository(pool)), central)
	ensaioHandler := ensaio.NewHandler(ensaio.NewService(ensaio.NewRepository(pool)), central)
	escalaHandler := escala.NewHandler(escala.NewService(escala.NewRepository(pool)), central)
	repertorioHandler := repertorio.NewHandler(repertorio.NewService(repertorio.NewRepository(pool)), central)
	avisoHandler := aviso.NewHandler(central)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Group(func(public chi.Router) {
		public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))

		public.Get("/health", h.Health)
		public.Get("/ready", h.Ready)

		public.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Login)
			auth.Post("/refresh", h.Refresh)
			auth.Post("/logout", h.Logout)
		})
	})

	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.Auth(authService.JWT()))
		private.Use(httpmiddleware.Sessao(sessoes))
		private.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		private.Get("/me", h.Me)
		private.Get("/menu", h.Menu)

		private.With(httpmiddleware.Permissao(service.RecursoUsuarios, service.AcaoCriar)).
			Post("/usuarios", usuarioHandler.Criar)

		private.Route("/ensaios", func(e chi.Router) {
			e.With(httpmiddleware.Permissao(service.RecursoEnsaios, service.AcaoLer)).Get("/", ensaioHandler.Listar)
			e.With(httpmiddleware.Permissao(service.RecursoEnsaios, service.AcaoLer)).Get("/{id}", ensaioHandler.Obter)
			e.With(httpmiddleware.Permissao(service.RecursoEnsaios, service.AcaoCriar)).Post("/", ensaioHandler.Criar)
			e.With(httpmiddleware.Permissao(service.RecursoEnsaios, service.AcaoEditar)).Put("/{id}", ensaioHandler.Atualizar)
			e.With(httpmiddleware.Permissao(service.RecursoEnsaios, service.AcaoExcluir)).Delete("/{id}", ensaioHandler.Excluir)
		})

		private.Route("/escalas", func(e chi.Router) {
			e.With(httpmiddleware.Permissao(service.RecursoEscalas, service.AcaoLer)).Get("/", escalaHandler.Listar)
			e.With(httpmiddleware.Permissao(service.RecursoEscalas, service.AcaoLer)).Get("/{id}", escalaHandler.Obter)
			e.With(httpmiddleware.Permissao(service.RecursoEscalas, service.AcaoCriar)).Post("/", escalaHandler.Criar)
			e.With(httpmiddleware.Permissao(service.RecursoEscalas, service.AcaoEditar)).Put("/{id}", escalaHandler.Atualizar)
			e.With(httpmiddleware.Permissao(service.RecursoEscalas, service.AcaoExcluir)).Delete("/{id}", escalaHandler.Excluir)
		})

		private.Route("/repertorios", func(rep chi.Router) {
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoLer)).Get("/", repertorioHandler.Listar)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoLer)).Get("/{id}", repertorioHandler.Obter)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoCriar)).Post("/", repertorioHandler.Criar)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoEditar)).Put("/{id}", repertorioHandler.Atualizar)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoExcluir)).Delete("/{id}", repertorioHandler.Excluir)

			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoEditar)).Post("/{id}/musicas", repertorioHandler.AdicionarMusica)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoEditar)).Put("/{id}/musicas/{musicaID}", repertorioHandler.AtualizarMusica)
			rep.With(httpmiddleware.Permissao(service.RecursoRepertorios, service.AcaoEditar)).Delete("/{id}/musicas/{musicaID}", repertorioHandler.RemoverMusica)
		})

		private.Route("/avisos", func(a chi.Router) {
			a.With(httpmiddleware.Permissao(service.RecursoAvisos, service.AcaoLer)).Get("/", avisoHandler.Listar)
			a.With(httpmiddleware.Permissao(service.RecursoAvisos, service.AcaoLer)).Get("/stream", avisoHandler.Stream)
			a.With(httpmiddleware.Permissao(service.RecursoAvisos, service.AcaoExcluir)).Delete("/{id}", avisoHandler.Dispensar)
		})
	})

	return r
}

// Health responde status simples.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready valida conexões com Postgres e Redis.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbErr := h.pool.Ping(ctx)
	redisErr := h.redis.Ping(ctx).Err()

	if dbErr != nil || redisErr != nil {
		WriteError(w, http.StatusServiceUnavailable, "INTERNAL", "dependências indisponíveis", map[string]any{
			"db":    errorString(dbErr),
			"redis": errorString(redisErr),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"ready": true})
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
