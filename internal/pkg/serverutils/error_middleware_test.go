package serverutils

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"rag-kb-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("ok", fiber.Map{}))
	})
	app.Get("/not-found", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: session xyz", apperror.ErrNotFound)
	})
	app.Get("/provider", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: upstream timeout", apperror.ErrProvider)
	})
	app.Get("/extraction", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: broken xref", apperror.ErrExtraction)
	})
	app.Get("/fiber-error", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return fmt.Errorf("something exploded")
	})

	tests := []struct {
		path string
		want int
	}{
		{"/ok", fiber.StatusOK},
		{"/not-found", fiber.StatusNotFound},
		{"/provider", fiber.StatusBadGateway},
		{"/extraction", fiber.StatusBadRequest},
		{"/fiber-error", fiber.StatusBadRequest},
		{"/plain", fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
