package httpapi

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/cityinfo-aggregation/internal/cityinfo"
)

// RegisterRoutes wires the city and recipe handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *cityinfo.Service) {
	cities := app.Group("/cities/:cityId")

	cities.Get("/infos", func(c *fiber.Ctx) error {
		info, err := service.GetCityInfo(c.UserContext(), c.Params("cityId"))
		if err != nil {
			return err
		}
		return c.JSON(info)
	})

	cities.Post("/recipes", func(c *fiber.Ctx) error {
		req := parseRecipeRequest(c.Body())

		recipe, err := service.SubmitRecipe(c.UserContext(), c.Params("cityId"), req.Content)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(recipe)
	})

	cities.Delete("/recipes/:recipeId", func(c *fiber.Ctx) error {
		if err := service.RemoveRecipe(c.Params("cityId"), c.Params("recipeId")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// recipeRequest is the POST body. Content stays empty unless the body is a
// JSON object with a string content field.
type recipeRequest struct {
	Content string `json:"content"`
}

func parseRecipeRequest(body []byte) recipeRequest {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return recipeRequest{}
	}
	content, _ := raw["content"].(string)
	return recipeRequest{Content: content}
}

// errorResponse is the single-field error body returned to clients.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors to an HTTP status and client-facing message.
// Anything unrecognised is a generic server error.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, cityinfo.ErrCityNotFound):
		return fiber.StatusNotFound, "City not found"
	case errors.Is(err, cityinfo.ErrRecipeNotFound):
		return fiber.StatusNotFound, "Recipe not found"
	case errors.Is(err, cityinfo.ErrMissingContent):
		return fiber.StatusBadRequest, "Recipe content is required"
	case errors.Is(err, cityinfo.ErrContentTooShort):
		return fiber.StatusBadRequest, "Content too short"
	case errors.Is(err, cityinfo.ErrContentTooLong):
		return fiber.StatusBadRequest, "Content too long"
	case errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError:
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, "Server error"
	}
}
