// Package conversion exposes the conversion ledger over HTTP.
package conversion

import (
	"log/slog"
	"time"

	domain "github.com/TheCodister/swapdesk/pkg/conversion"
	repo "github.com/TheCodister/swapdesk/pkg/repository/conversion"
	"github.com/TheCodister/swapdesk/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers HTTP routes for the conversion ledger.
func Routes(app *fiber.App, conversions repo.Repository, logger *slog.Logger) {
	group := app.Group("/api/v1/conversions")

	group.Post("/", CreateConversion(conversions, logger))
	group.Get("/", ListConversions(conversions, logger))
	group.Put("/:id", UpdateConversion(conversions, logger))
	group.Delete("/:id", DeleteConversion(conversions, logger))
}

// CreateConversion returns a Fiber handler persisting a new conversion record.
// @Summary Create a conversion
// @Description Persist a new conversion history record
// @Tags conversions
// @Accept json
// @Produce json
// @Success 201 {object} domain.Record
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 500 {object} webapi.ProblemDetails
// @Router /api/v1/conversions [post]
func CreateConversion(conversions repo.Repository, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := webapi.BindAndValidate[UpsertConversionRequest](c)
		if err != nil {
			return nil
		}

		record := domain.Record{
			ID:           uuid.NewString(),
			FromCurrency: input.FromCurrency,
			ToCurrency:   input.ToCurrency,
			FromAmount:   input.FromAmount,
			ToAmount:     input.ToAmount,
			Date:         time.Now().UTC(),
		}
		if err := conversions.Create(c.Context(), record); err != nil {
			logger.Error("failed to create conversion", "error", err)
			return webapi.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to create conversion", err.Error())
		}

		logger.Info("conversion created", "id", record.ID,
			"from", record.FromCurrency, "to", record.ToCurrency)
		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// ListConversions returns a Fiber handler listing all conversion records in
// insertion order.
// @Summary List conversions
// @Description Get all conversion history records
// @Tags conversions
// @Produce json
// @Success 200 {array} domain.Record
// @Failure 500 {object} webapi.ProblemDetails
// @Router /api/v1/conversions [get]
func ListConversions(conversions repo.Repository, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := conversions.List(c.Context())
		if err != nil {
			logger.Error("failed to fetch conversions", "error", err)
			return webapi.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to fetch conversions", err.Error())
		}
		return c.Status(fiber.StatusOK).JSON(records)
	}
}

// UpdateConversion returns a Fiber handler replacing a record's fields.
// @Summary Update a conversion
// @Description Update a conversion history record by id
// @Tags conversions
// @Accept json
// @Produce json
// @Param id path string true "Conversion id"
// @Success 200 {object} domain.Record
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 500 {object} webapi.ProblemDetails
// @Router /api/v1/conversions/{id} [put]
func UpdateConversion(conversions repo.Repository, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return webapi.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid conversion id", err.Error())
		}

		input, err := webapi.BindAndValidate[UpsertConversionRequest](c)
		if err != nil {
			return nil
		}

		record, err := conversions.Update(c.Context(), id, domain.Request{
			FromCurrency: input.FromCurrency,
			ToCurrency:   input.ToCurrency,
			FromAmount:   input.FromAmount,
			ToAmount:     input.ToAmount,
		})
		if err != nil {
			logger.Error("failed to update conversion", "id", id, "error", err)
			return webapi.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to update conversion", err.Error())
		}

		logger.Info("conversion updated", "id", id)
		return c.Status(fiber.StatusOK).JSON(record)
	}
}

// DeleteConversion returns a Fiber handler deleting a record. Absence of the
// id is a failure; the ledger decides, callers just see the 500.
// @Summary Delete a conversion
// @Description Delete a conversion history record by id
// @Tags conversions
// @Param id path string true "Conversion id"
// @Success 204
// @Failure 400 {object} webapi.ProblemDetails
// @Failure 500 {object} webapi.ProblemDetails
// @Router /api/v1/conversions/{id} [delete]
func DeleteConversion(conversions repo.Repository, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return webapi.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid conversion id", err.Error())
		}

		if err := conversions.Delete(c.Context(), id); err != nil {
			logger.Error("failed to delete conversion", "id", id, "error", err)
			return webapi.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Failed to delete conversion", err.Error())
		}

		logger.Info("conversion deleted", "id", id)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
