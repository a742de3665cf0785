package server

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samvad-hq/fetchview/internal/app"
	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
)

// Server exposes the fetch view as an HTML page plus a small JSON API.
type Server struct {
	app *fiber.App
	rt  *app.App
	doc *view.Document
	log logger.Logger
}

type stateResponse struct {
	Token      uint64        `json:"token,omitempty"`
	State      string        `json:"state"`
	Superseded bool          `json:"superseded,omitempty"`
	View       view.Snapshot `json:"view"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the fiber app. doc must be the renderer rt presents to.
func New(rt *app.App, doc *view.Document, log logger.Logger) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "fetchview",
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
			DisableStartupMessage: true,
		}),
		rt:  rt,
		doc: doc,
		log: logger.Ensure(log),
	}

	s.app.Get("/", s.handlePage)
	s.app.Post("/fetch/:endpoint", s.handleFetch)
	s.app.Post("/clear", s.handleClear)
	s.app.Get("/api/state", s.handleState)
	s.app.Get("/api/endpoints", s.handleEndpoints)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})))
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.InfoObj("page server listening", "server_meta", map[string]any{"addr": addr})
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handlePage(c *fiber.Ctx) error {
	page, err := s.doc.HTML()
	if err != nil {
		s.log.ErrorObj("render page failed", "error", err.Error())
		return fiber.ErrInternalServerError
	}
	c.Type("html", "utf-8")
	return c.SendString(page)
}

func (s *Server) handleFetch(c *fiber.Ctx) error {
	endpointID := c.Params("endpoint")
	name := c.FormValue("name")
	s.log.DebugObj("fetch triggered", "trigger_meta", map[string]any{
		"endpoint_id": endpointID,
		"name":        name,
	})

	res, err := s.rt.Fetch(c.UserContext(), endpointID, name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{Error: err.Error()})
	}
	if !wantsJSON(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.JSON(stateResponse{
		Token:      res.Token,
		State:      view.Name(s.rt.Controller.State()),
		Superseded: res.Superseded,
		View:       s.doc.Snapshot(),
	})
}

func (s *Server) handleClear(c *fiber.Ctx) error {
	s.rt.Controller.Clear()
	if !wantsJSON(c) {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.handleState(c)
}

func (s *Server) handleState(c *fiber.Ctx) error {
	return c.JSON(stateResponse{
		State: view.Name(s.rt.Controller.State()),
		View:  s.doc.Snapshot(),
	})
}

func (s *Server) handleEndpoints(c *fiber.Ctx) error {
	return c.JSON(s.rt.Endpoints.All())
}

func wantsJSON(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

// Controls lists the page triggers for every catalogue endpoint.
func Controls(reg *endpoints.Registry) []view.Control {
	eps := reg.All()
	out := make([]view.Control, 0, len(eps))
	for _, ep := range eps {
		out = append(out, view.Control{
			EndpointID: ep.ID,
			Label:      ep.Name,
			Lookup:     ep.IsLookup(),
			Items:      ep.Items,
		})
	}
	return out
}
