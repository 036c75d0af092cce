// Package server hosts the fixture page over HTTP. Every request builds its
// own page, so testers can reload to start over.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goliatone/go-fielderrors/pkg/fixture"
	"github.com/goliatone/go-fielderrors/pkg/model"
	"github.com/goliatone/go-fielderrors/pkg/orchestrator"
	"github.com/goliatone/go-fielderrors/pkg/render"
	"github.com/goliatone/go-fielderrors/pkg/renderers/vanilla"
	"github.com/goliatone/go-fielderrors/pkg/widgets"
)

const (
	// StylesheetPath is where the built-in stylesheet is served.
	StylesheetPath = "/assets/" + vanilla.StylesheetName

	themeQuery   = "theme"
	variantQuery = "variant"
)

// Option configures the server.
type Option func(*Server)

// WithOrchestrator injects the render pipeline.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orch = orch
		}
	}
}

// WithLogger overrides the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssets replaces the file system the stylesheet is served from.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		if assets != nil {
			s.assets = assets
		}
	}
}

// Server wraps the fiber app serving the fixture.
type Server struct {
	app    *fiber.App
	orch   *orchestrator.Orchestrator
	logger *log.Logger
	assets fs.FS
}

// New builds the fiber app and registers the routes.
func New(options ...Option) *Server {
	s := &Server{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "server"})
	}
	if s.orch == nil {
		s.orch = orchestrator.New(orchestrator.WithLogger(s.logger))
	}
	if s.assets == nil {
		s.assets = vanilla.AssetsFS()
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "fielderrors",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(recover.New())
	s.app.Use(s.requestLogger())
	s.routes()
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes() {
	s.app.Get("/", s.renderWith("vanilla"))
	s.app.Get("/snapshot.json", s.renderWith("json"))
	s.app.Get("/snapshot.yaml", s.renderWith("yaml"))
	s.app.Get("/snapshot.txt", s.renderWith("tui"))
	s.app.Get(StylesheetPath, s.stylesheet)
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// Listen serves until ctx is canceled, then shuts the app down.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving fixture", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return <-errCh
	}
}

func (s *Server) renderWith(renderer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values, err := queryValues(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req := orchestrator.Request{
			Renderer:     renderer,
			Values:       values,
			ThemeName:    c.Query(themeQuery),
			ThemeVariant: c.Query(variantQuery),
			RenderOptions: render.RenderOptions{
				Standalone: true,
				Stylesheet: StylesheetPath,
			},
		}

		result, err := s.orch.Execute(c.UserContext(), req)
		if err != nil {
			if errors.Is(err, widgets.ErrUnknownOption) || errors.Is(err, widgets.ErrSingleSelect) ||
				errors.Is(err, fixture.ErrNotOnPage) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return err
		}

		c.Set(fiber.HeaderContentType, result.ContentType)
		c.Set("X-Fixture-Page", result.Page.ID)
		c.Set("X-Active-Indicators", fmt.Sprint(render.CollectErrors(result.Page).ActiveCount()))
		return c.Send(result.Body)
	}
}

func (s *Server) stylesheet(c *fiber.Ctx) error {
	data, err := fs.ReadFile(s.assets, vanilla.StylesheetName)
	if err != nil {
		return fiber.ErrNotFound
	}
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.Send(data)
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		s.logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return err
	}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Path(), "err", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(err.Error())
}

// queryValues reads `<Kind>=<label>[,<label>...]` parameters. An empty value
// selects nothing.
func queryValues(c *fiber.Ctx) (map[model.Kind][]string, error) {
	args := c.Context().QueryArgs()
	values := make(map[model.Kind][]string)
	for _, kind := range model.Kinds() {
		if !args.Has(kind.String()) {
			continue
		}
		raw := strings.TrimSpace(string(args.Peek(kind.String())))
		if raw == "" {
			values[kind] = []string{}
			continue
		}
		var labels []string
		for _, label := range strings.Split(raw, ",") {
			if label = strings.TrimSpace(label); label != "" {
				labels = append(labels, label)
			}
		}
		values[kind] = labels
	}
	var unknown []string
	args.VisitAll(func(key, _ []byte) {
		name := string(key)
		if name == themeQuery || name == variantQuery {
			return
		}
		if !model.Kind(name).Known() {
			unknown = append(unknown, name)
		}
	})
	if len(unknown) > 0 {
		return nil, fmt.Errorf("server: unknown query parameters: %s", strings.Join(unknown, ", "))
	}
	return values, nil
}
