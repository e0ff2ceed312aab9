package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mnavarrov/erp-planta-api/internal/application/dto"
	"github.com/mnavarrov/erp-planta-api/internal/domain"
)

// responderError mapea errores de dominio a códigos HTTP. Los errores
// tipados (stock, transición) conservan su mensaje: el cliente necesita
// saber qué faltó o qué estados sí se permiten.
func responderError(c *fiber.Ctx, err error) error {
	var stockErr *domain.StockInsuficienteError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: stockErr.Error()})
	}
	var transErr *domain.TransicionInvalidaError
	if errors.As(err, &transErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICION_INVALIDA", Message: transErr.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrTransicionInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICION_INVALIDA", Message: err.Error()})
	case errors.Is(err, domain.ErrSinFormula):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SIN_FORMULA", Message: err.Error()})
	case errors.Is(err, domain.ErrYaExiste):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "YA_EXISTE", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailYaRegistrado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_REGISTRADO", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICADO", Message: "recurso duplicado"})
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrProhibido):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// parseID lee el parámetro de ruta :id como int64 positivo.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.ErrEntradaInvalida
	}
	return int64(id), nil
}
