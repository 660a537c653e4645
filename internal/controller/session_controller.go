package controller

import (
	"rag-kb-be/internal/pkg/serverutils"
	"rag-kb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Active(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Post("session/new", c.Create)
	h.Get("session/active", c.Active)
	h.Get("sessions", c.List)
	h.Get("session/:id", c.History)
	h.Post("session/:id/deactivate", c.Deactivate)
	h.Delete("session/:id", c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.sessionService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Active(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetActiveSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get active session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	res, err := c.sessionService.GetAllSessions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *sessionController) History(ctx *fiber.Ctx) error {
	token, err := parseSessionToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.GetSessionHistory(ctx.Context(), token)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *sessionController) Deactivate(ctx *fiber.Ctx) error {
	token, err := parseSessionToken(ctx)
	if err != nil {
		return err
	}

	if err := c.sessionService.DeactivateSession(ctx.Context(), token); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success deactivate session", fiber.Map{"session_id": token}))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	token, err := parseSessionToken(ctx)
	if err != nil {
		return err
	}

	res, err := c.sessionService.DeleteSession(ctx.Context(), token)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", res))
}

func parseSessionToken(ctx *fiber.Ctx) (uuid.UUID, error) {
	token, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	return token, nil
}
