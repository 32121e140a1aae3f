package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"skillmuse/internal/apperr"
	"skillmuse/internal/config"
	"skillmuse/internal/extract"
	"skillmuse/internal/lesson"
	"skillmuse/internal/storage"
)

type Server struct {
	cfg       config.Config
	store     *storage.Store
	extractor *extract.Extractor
	generator *lesson.Generator
	log       *zap.Logger
}

func NewServer(cfg config.Config, store *storage.Store, extractor *extract.Extractor, generator *lesson.Generator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		generator: generator,
		log:       log,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(requestLogger(s.log))
	r.Use(withUserID)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeErr(w, r, &apperr.Error{Code: apperr.CodeMethodNotAllowed, Message: "This endpoint does not support the requested method."})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeErr(w, r, apperr.NotFound("route"))
	})

	r.Get("/healthz", s.handleHealthz)

	r.Route("/api", func(api chi.Router) {
		api.Route("/skills", func(sk chi.Router) {
			sk.Get("/", s.handleListSkills)
			sk.Post("/", s.handleCreateSkill)
			sk.Route("/{skillID}", func(one chi.Router) {
				one.Get("/", s.handleGetSkill)
				one.Delete("/", s.handleDeleteSkill)
				one.Post("/content", s.handleCreateContent)
				one.Post("/content/upload", s.handleUploadContent)
				one.Get("/content-list", s.handleListContent)
				one.Get("/lessons", s.handleListSkillLessons)
				one.Get("/lessons/{lessonID}", s.handleGetSkillLesson)
			})
		})

		api.Route("/lessons", func(ls chi.Router) {
			ls.Get("/", s.handleListLessons)
			ls.Post("/generate", s.handleGenerateLesson)
			ls.Get("/{lessonID}", s.handleGetLesson)
			ls.Post("/{lessonID}/quiz", s.handleSubmitQuiz)
		})

		api.Route("/groups", func(gr chi.Router) {
			gr.Get("/", s.handleListGroups)
			gr.Post("/", s.handleCreateGroup)
			gr.Post("/{groupID}/members", s.handleAddGroupMember)
		})

		api.Post("/progress", s.handleUpsertProgress)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
