package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
)

// FollowupHandler maneja las peticiones HTTP para Followup (protegido).
type FollowupHandler struct {
	uc *usecase.FollowupUseCase
}

// NewFollowupHandler construye el handler.
func NewFollowupHandler(uc *usecase.FollowupUseCase) *FollowupHandler {
	return &FollowupHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar follow-up (actualiza el estado de la actividad en la misma operación)
// @Tags         followups
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFollowupRequest  true  "Datos del follow-up"
// @Success      201   {object}  dto.FollowupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/followups [post]
func (h *FollowupHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFollowupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar follow-ups (admin ve todos, standard solo los propios)
// @Tags         followups
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FollowupResponse
// @Router       /api/followups [get]
func (h *FollowupHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upcoming godoc
// @Summary      Follow-ups próximos dentro del horizonte (default 7 días)
// @Tags         followups
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Horizonte en días"  default(7)
// @Success      200   {array}  dto.UpcomingFollowupResponse
// @Router       /api/followups/upcoming [get]
func (h *FollowupHandler) Upcoming(c *fiber.Ctx) error {
	days := c.QueryInt("days", usecase.DefaultUpcomingHorizonDays)
	if days <= 0 {
		days = usecase.DefaultUpcomingHorizonDays
	}
	out, err := h.uc.Upcoming(GetActor(c), days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
