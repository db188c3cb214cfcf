package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sagarc03/edgekit"
)

// Deps are the services the handler fronts. AI may be nil; the chat and
// image endpoints then answer 503.
type Deps struct {
	Todos  *edgekit.TodoService
	Bucket *edgekit.Bucket
	Media  *edgekit.MediaService
	AI     Inference
}

// Inference is the AI passthrough capability the handler proxies to.
type Inference interface {
	Chat(ctx context.Context, model, message string) (string, error)
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
	ChatModel() string
}

// CORSConfig mirrors the go-chi/cors options the server exposes.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// DefaultCORS allows browser clients from any origin, which is what the
// example APIs are for.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Custom-Metadata"},
		MaxAge:         300,
	}
}

// HandlerConfig holds the request-handling knobs.
type HandlerConfig struct {
	// MaxUploadSize caps multipart uploads, in bytes. Raw-body uploads
	// are not capped; that asymmetry is part of the API contract.
	MaxUploadSize int64
	CORS          CORSConfig
}

// Handler provides the HTTP handlers for all resources.
type Handler struct {
	config HandlerConfig
	todos  *TodoAPI
	files  *FileAPI
	media  *MediaAPI
	ai     *AIAPI
}

// NewHandler wires the resource handlers together.
func NewHandler(config HandlerConfig, deps Deps) *Handler {
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = 10 << 20
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS = DefaultCORS()
	}

	return &Handler{
		config: config,
		todos:  &TodoAPI{service: deps.Todos},
		files:  &FileAPI{bucket: deps.Bucket, maxUploadSize: config.MaxUploadSize},
		media:  &MediaAPI{service: deps.Media},
		ai:     &AIAPI{client: deps.AI},
	}
}

// Router returns the full route tree. The CORS middleware wraps every
// route, so error responses and preflights carry the same headers as
// successes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.config.CORS.AllowedOrigins,
		AllowedMethods: h.config.CORS.AllowedMethods,
		AllowedHeaders: h.config.CORS.AllowedHeaders,
		MaxAge:         h.config.CORS.MaxAge,
	}))

	r.Get("/", h.handleCatalog)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/", h.todos.handleList)
		r.Post("/", h.todos.handleCreate)
		r.Get("/{id}", h.todos.handleGet)
		r.Put("/{id}", h.todos.handleUpdate)
		r.Delete("/{id}", h.todos.handleDelete)
	})

	r.Post("/upload", h.files.handleUpload)
	r.Get("/files", h.files.handleList)
	r.Get("/files/*", h.files.handleDownload)
	r.Head("/files/*", h.files.handleHead)
	r.Delete("/files/*", h.files.handleDelete)

	r.Post("/api/upload", h.media.handleUpload)
	r.Get("/api/media", h.media.handleList)
	r.Post("/api/delete/*", h.media.handleDelete)
	r.Get("/media/*", h.media.handleDownload)

	r.Post("/api/chat", h.ai.handleChat)
	r.Post("/api/generate-image", h.ai.handleGenerateImage)

	return r
}
