package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/insightdelivered/techmarket/internal/mask"
	"github.com/insightdelivered/techmarket/internal/metrics"
	"github.com/insightdelivered/techmarket/internal/models"
	"github.com/insightdelivered/techmarket/internal/statement"
	"github.com/insightdelivered/techmarket/internal/validator"
)

// Response is the JSON envelope of the form and transfer endpoints.
type Response struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// MaskRequest is the body of POST /api/mascara.
type MaskRequest struct {
	Field string `json:"campo" form:"campo"`
	Value string `json:"valor" form:"valor"`
}

// MaskResponse carries the masked value back to the page.
type MaskResponse struct {
	Field  string `json:"campo"`
	Value  string `json:"valor"`
	Digits string `json:"digitos"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Version   string
	StaticDir string
	// Endpoint is the statement URL rendered by GET /extrato.
	Endpoint  string
	Validator *validator.Validator
	Renderer  *statement.Renderer
	Logger    *log.Logger
	Metrics   *metrics.Metrics
	// Now dates the mock statement; defaults to time.Now.
	Now func() time.Time
}

// NewApp returns a fiber app with the middleware stack and every route
// registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "techmarket",
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(h.logRequests)
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)

	app.Get("/api/transacoes/extrato", h.HandleStatement)
	app.Get("/api/extrato/:id", h.HandleStatement)
	app.Post("/api/transacoes/transferir", h.HandleTransfer)

	app.Post("/api/mascara", h.HandleMask)
	app.Post("/api/cadastro", h.HandleRegister)

	app.Get("/extrato", h.HandleStatementPage)

	if h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Metrics.Gatherer(), promhttp.HandlerOpts{})))
	}

	// Registration page assets
	if h.StaticDir != "" {
		app.Static("/", h.StaticDir)
	}
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
		"engine":  "fiber",
	})
}

// HandleStatement serves the mock statement. The legacy /api/extrato/:id
// route shares it; the account id is ignored.
func (h *Handler) HandleStatement(c *fiber.Ctx) error {
	return c.JSON(MockStatement(h.now()))
}

// HandleTransfer validates and simulates a transfer between accounts. Only
// JSON bodies are accepted.
func (h *Handler) HandleTransfer(c *fiber.Ctx) error {
	if !c.Is("json") {
		return writeError(c, fiber.StatusUnsupportedMediaType, "Content-Type must be application/json")
	}
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse body: %v", err))
	}

	res := h.validator().ValidateTransfer(req)
	h.Metrics.ObserveTransfer(res.Valid())
	if !res.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(Response{Success: false, Errors: res.Violations})
	}

	h.logger().Info("transfer received",
		"amount", req.Amount.Decimal.String(),
		"source", *req.SourceAccountID,
		"destination", *req.DestinationAccountID)

	code := uuid.NewString()
	return c.Status(fiber.StatusOK).SendString("Transferência simulada com sucesso! Código: " + code)
}

// HandleMask masks one keystroke worth of field input.
func (h *Handler) HandleMask(c *fiber.Ctx) error {
	var req MaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse body: %v", err))
	}

	field, err := mask.ParseField(req.Field)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	masked, err := mask.Format(field, req.Value)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	h.Metrics.ObserveMask(string(field))

	return c.JSON(MaskResponse{
		Field:  string(field),
		Value:  masked,
		Digits: mask.Normalize(req.Value, mask.MaxDigits),
	})
}

// HandleRegister validates a registration submission.
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	var form models.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
	}

	res := h.validator().Validate(form)
	h.Metrics.ObserveValidation(res.Valid())
	if !res.Valid() {
		h.logger().Debug("registration rejected", "violations", len(res.Violations))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(Response{Success: false, Errors: res.Violations})
	}
	return c.JSON(Response{Success: true, Redirect: "/extrato"})
}

// HandleStatementPage renders the configured statement as an HTML list.
func (h *Handler) HandleStatementPage(c *fiber.Ctx) error {
	if h.Renderer == nil {
		return writeError(c, fiber.StatusServiceUnavailable, "statement renderer not configured")
	}
	list := h.Renderer.LoadAndRender(c.UserContext(), h.Endpoint)
	items, err := statement.RenderHTML(list)
	if err != nil {
		return fmt.Errorf("render statement: %w", err)
	}
	c.Type("html", "utf-8")
	return c.SendString(`<ul id="lista-transacoes" class="list-group">` + "\n" + items + "</ul>\n")
}

func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		h.logger().Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
	}
	return writeError(c, code, msg)
}

func (h *Handler) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	h.logger().Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start))
	return err
}

var defaultValidator = validator.New()

func (h *Handler) validator() *validator.Validator {
	if h.Validator == nil {
		return defaultValidator
	}
	return h.Validator
}

func (h *Handler) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Response{
		Success: false,
		Error:   msg,
	})
}
