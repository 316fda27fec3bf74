package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/prepmate/prepmate/config"
	"github.com/prepmate/prepmate/internal/coach"
	"github.com/prepmate/prepmate/internal/patients"
	"github.com/prepmate/prepmate/internal/research"
	"github.com/prepmate/prepmate/provider"
	"github.com/prepmate/prepmate/session"
	"github.com/prepmate/prepmate/session/redispersist"
)

// requestValidator adapts go-playground/validator to echo.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func Run(cfg *appconfig.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Validator = &requestValidator{validate: validator.New()}

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// LLM provider shared by the interview coach and the research assistant
	llm, err := provider.NewProvider(provider.OpenAI, cfg.Providers)
	if err != nil {
		return err
	}

	var persister session.Persister
	if cfg.Session.Store == "redis" {
		p, err := redispersist.New(cfg.Session)
		if err != nil {
			return err
		}
		persister = p
	}
	sess := session.New("", persister)

	uploadDir := filepath.Join(os.TempDir(), "prepmate_uploads")
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return err
	}

	ih := &InterviewHandler{
		Coach:     coach.New(sess, llm, cfg.Interview, nil),
		Session:   sess,
		UploadDir: uploadDir,
	}
	ih.Register(e)

	ph := &PatientsHandler{Store: patients.NewStore(cfg.Patients.DataFile)}
	ph.Register(e.Group("/api/patients"))

	assistant, err := research.NewAssistant(llm, cfg.Research, nil)
	if err != nil {
		return err
	}
	rh := &ResearchHandler{Assistant: assistant}
	rh.Register(e)

	addr := cfg.General.Listen
	if addr == "" {
		addr = ":8000"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
