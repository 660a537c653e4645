package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"rag-kb-be/internal/pkg/serverutils"
	"rag-kb-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	JobStatus(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestService service.IIngestService
	uploadDir     string
}

func NewIngestController(ingestService service.IIngestService, uploadDir string) IIngestController {
	return &ingestController{
		ingestService: ingestService,
		uploadDir:     uploadDir,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/api")
	h.Post("ingest", c.Ingest)
	h.Get("status/:job_id", c.JobStatus)
}

func (c *ingestController) Ingest(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file upload")
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	collection := ctx.FormValue("collection")

	// Unique on-disk name so concurrent uploads of the same file never
	// clobber each other. The original filename survives in metadata.
	savedPath := filepath.Join(c.uploadDir, fmt.Sprintf("%s-%s", uuid.New(), filepath.Base(fileHeader.Filename)))
	if err := ctx.SaveFile(fileHeader, savedPath); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}

	res, err := c.ingestService.EnqueueIngest(ctx.Context(), savedPath, fileHeader.Filename, collection)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Ingestion queued", res))
}

func (c *ingestController) JobStatus(ctx *fiber.Ctx) error {
	jobId := ctx.Params("job_id")
	res := c.ingestService.GetJobStatus(jobId)
	return ctx.JSON(serverutils.SuccessResponse("Success get job status", res))
}
