package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/decision-service/internal/api/metrics"
	"github.com/99minutos/decision-service/internal/core/domain"
	"github.com/99minutos/decision-service/internal/core/ports"
)

type DecisionHandler struct {
	svc ports.DecisionService
	log zerolog.Logger
}

func NewDecisionHandler(svc ports.DecisionService, log zerolog.Logger) *DecisionHandler {
	return &DecisionHandler{svc: svc, log: log}
}

// List returns the decisions of the caller's role.
//
// @Summary      List decisions
// @Description  Returns every decision created by sessions of the caller's role, in creation order.
// @Tags         decisiones
// @Produce      json
// @Success      200  {array}   domain.Decision
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /decisiones [get]
func (h *DecisionHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	decisions, err := h.svc.List(c.Request().Context(), sess.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, decisions)
}

// Create stores a new decision owned by the caller's role.
//
// @Summary      Create a decision
// @Tags         decisiones
// @Accept       json
// @Produce      json
// @Param        body  body      createDecisionRequest  true  "Decision text and optional outcome"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /decisiones/nueva [post]
func (h *DecisionHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createDecisionRequest
	if err := bindInput(c, &req, createRules); err != nil {
		return err
	}

	d, err := h.svc.Create(c.Request().Context(), ports.CreateDecisionInput{
		Text:      *req.Text,
		Result:    req.Result,
		Succeeded: req.Succeeded,
		Role:      sess.Role,
	})
	if err != nil {
		return err
	}

	metrics.DecisionsCreatedTotal.WithLabelValues(string(sess.Role)).Inc()
	h.log.Debug().Str("id", d.ID).Str("tipo", string(d.Role)).Str("usuario", sess.Identifier).Msg("decision created")
	return c.JSON(http.StatusOK, d)
}

// Delete removes a decision of the caller's role.
//
// @Summary      Delete a decision
// @Tags         decisiones
// @Param        id   path  string  true  "Decision ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /decisiones/borrar/{id} [delete]
func (h *DecisionHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	deleted, err := h.svc.Delete(c.Request().Context(), c.Param("id"), sess.Role)
	if err != nil {
		return err
	}
	if !deleted {
		metrics.DecisionsDeletedTotal.WithLabelValues("not_found").Inc()
		return echo.ErrNotFound
	}

	metrics.DecisionsDeletedTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}

// UpdateResult replaces the result of a decision.
//
// @Summary      Edit decision result
// @Tags         decisiones
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Decision ID"
// @Param        body  body      updateResultRequest  true  "New result"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /decisiones/editar/resultado/{id} [put]
func (h *DecisionHandler) UpdateResult(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateResultRequest
	if err := bindInput(c, &req, singleFieldRule("resultado", domain.ErrInvalidResult)); err != nil {
		return err
	}

	d, err := h.svc.UpdateResult(c.Request().Context(), c.Param("id"), sess.Role, *req.Result)
	if err != nil {
		return err
	}

	metrics.DecisionsUpdatedTotal.WithLabelValues("resultado").Inc()
	return c.JSON(http.StatusOK, d)
}

// UpdateText replaces the text of a decision.
//
// @Summary      Edit decision text
// @Tags         decisiones
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Decision ID"
// @Param        body  body      updateTextRequest  true  "New text"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /decisiones/editar/texto/{id} [put]
func (h *DecisionHandler) UpdateText(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateTextRequest
	if err := bindInput(c, &req, singleFieldRule("texto", domain.ErrInvalidText)); err != nil {
		return err
	}

	d, err := h.svc.UpdateText(c.Request().Context(), c.Param("id"), sess.Role, *req.Text)
	if err != nil {
		return err
	}

	metrics.DecisionsUpdatedTotal.WithLabelValues("texto").Inc()
	return c.JSON(http.StatusOK, d)
}

// UpdateSucceeded sets whether a decision turned out well.
//
// @Summary      Edit decision outcome
// @Tags         decisiones
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Decision ID"
// @Param        body  body      updateSucceededRequest  true  "New outcome"
// @Success      200   {object}  domain.Decision
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /decisiones/editar/exito/{id} [put]
func (h *DecisionHandler) UpdateSucceeded(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateSucceededRequest
	if err := bindInput(c, &req, singleFieldRule("exito", domain.ErrInvalidSucceeded)); err != nil {
		return err
	}

	d, err := h.svc.UpdateSucceeded(c.Request().Context(), c.Param("id"), sess.Role, *req.Succeeded)
	if err != nil {
		return err
	}

	metrics.DecisionsUpdatedTotal.WithLabelValues("exito").Inc()
	return c.JSON(http.StatusOK, d)
}
