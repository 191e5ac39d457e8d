package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/decision-service/internal/core/domain"
)

// AccountDirectory lists the configured login accounts.
type AccountDirectory interface {
	Accounts() []domain.Account
}

type AccountHandler struct {
	directory AccountDirectory
}

func NewAccountHandler(directory AccountDirectory) *AccountHandler {
	return &AccountHandler{directory: directory}
}

// List returns the configured accounts and their roles. Secrets are never
// serialised.
//
// @Summary      List accounts
// @Description  Admin only. Returns every configured account with its role.
// @Tags         cuentas
// @Produce      json
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /cuentas [get]
func (h *AccountHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.directory.Accounts())
}
