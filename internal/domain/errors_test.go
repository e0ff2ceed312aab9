package domain_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
)

func TestStockInsuficienteError_EnvuelveElSentinelaYDetalla(t *testing.T) {
	err := &domain.StockInsuficienteError{
		Item:       "Harina",
		Disponible: decimal.RequireFromString("100"),
		Requerido:  decimal.RequireFromString("250"),
	}

	assert.ErrorIs(t, err, domain.ErrStockInsuficiente, "errors.Is debe ver el sentinela")
	assert.True(t, err.Deficit().Equal(decimal.RequireFromString("150")))
	assert.Contains(t, err.Error(), "Harina")
	assert.Contains(t, err.Error(), "faltan 150")

	var tipado *domain.StockInsuficienteError
	assert.True(t, errors.As(err, &tipado))
}

func TestTransicionInvalidaError_NombraLosPermitidos(t *testing.T) {
	err := &domain.TransicionInvalidaError{
		EstadoActual:     "PENDIENTE",
		EstadoSolicitado: "ENTREGADO",
		Permitidos:       []string{"CANCELADO"},
	}

	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	assert.Contains(t, err.Error(), "PENDIENTE")
	assert.Contains(t, err.Error(), "CANCELADO")

	terminal := &domain.TransicionInvalidaError{EstadoActual: "ENTREGADO", EstadoSolicitado: "CANCELADO"}
	assert.Contains(t, terminal.Error(), "no permite ningún cambio")
}
