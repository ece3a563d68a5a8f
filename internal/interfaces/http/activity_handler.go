package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
)

// ActivityHandler maneja las peticiones HTTP para Activity (protegido).
type ActivityHandler struct {
	uc         *usecase.ActivityUseCase
	followupUC *usecase.FollowupUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase, followupUC *usecase.FollowupUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc, followupUC: followupUC}
}

// Create godoc
// @Summary      Registrar actividad de contacto
// @Tags         activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateActivityRequest  true  "Datos de la actividad"
// @Success      201   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/activities [post]
func (h *ActivityHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar actividades (admin ve todas, standard solo las propias)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        search  query  string  false  "Substring sobre prospecto o ubicación"
// @Success      200  {array}  dto.ActivityResponse
// @Router       /api/activities [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var filter dto.ActivityFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(GetActor(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener actividad por ID
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la actividad"
// @Success      200  {object}  dto.ActivityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [get]
func (h *ActivityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	// Los usuarios standard solo ven actividades propias; responder 404 para
	// no revelar la existencia de registros ajenos.
	actor := GetActor(c)
	if !actor.IsAdmin() && out.MarketerUsername != actor.Username {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado del prospecto
// @Tags         activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la actividad"
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ActivityResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/activities/{id}/status [patch]
func (h *ActivityHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(GetActor(c), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar actividad (requiere FEATURE_CAN_EDIT)
// @Tags         activities
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la actividad"
// @Param        body  body  dto.UpdateActivityRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ActivityResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [put]
func (h *ActivityHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateActivityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar actividad (requiere FEATURE_CAN_DELETE)
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la actividad"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/activities/{id} [delete]
func (h *ActivityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "actividad eliminada"})
}

// ListFollowups godoc
// @Summary      Historial de follow-ups de una actividad
// @Tags         activities
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la actividad"
// @Success      200  {array}  dto.FollowupResponse
// @Router       /api/activities/{id}/followups [get]
func (h *ActivityHandler) ListFollowups(c *fiber.Ctx) error {
	out, err := h.followupUC.ListByActivity(GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
