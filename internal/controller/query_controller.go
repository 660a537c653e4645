package controller

import (
	"rag-kb-be/internal/dto"
	"rag-kb-be/internal/pkg/serverutils"
	"rag-kb-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
}

type queryController struct {
	qaService service.IQaService
}

func NewQueryController(qaService service.IQaService) IQueryController {
	return &queryController{
		qaService: qaService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Post("query", c.Query)
}

func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.qaService.Answer(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}
