package controller

import (
	"rag-kb-be/internal/pkg/serverutils"
	"rag-kb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICollectionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Documents(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	DeleteDocument(ctx *fiber.Ctx) error
}

type collectionController struct {
	collectionService service.ICollectionService
}

func NewCollectionController(collectionService service.ICollectionService) ICollectionController {
	return &collectionController{
		collectionService: collectionService,
	}
}

func (c *collectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Get("collections", c.List)
	h.Get("collection/:id/documents", c.Documents)
	h.Delete("collection/:id", c.Delete)
	h.Delete("document/:id", c.DeleteDocument)
}

func (c *collectionController) List(ctx *fiber.Ctx) error {
	res, err := c.collectionService.GetAllCollections(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get collections", res))
}

func (c *collectionController) Documents(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.collectionService.GetCollectionDocuments(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get collection documents", res))
}

func (c *collectionController) Delete(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.collectionService.DeleteCollection(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete collection", fiber.Map{"id": id}))
}

func (c *collectionController) DeleteDocument(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.collectionService.DeleteDocument(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete document", fiber.Map{"id": id}))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}
