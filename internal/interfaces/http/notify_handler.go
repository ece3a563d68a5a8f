package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketing-tracker/internal/application/notify"
)

// NotifyHandler dispara el barrido de recordatorios por correo (solo admin).
type NotifyHandler struct {
	uc *notify.ReminderUseCase
}

// NewNotifyHandler construye el handler.
func NewNotifyHandler(uc *notify.ReminderUseCase) *NotifyHandler {
	return &NotifyHandler{uc: uc}
}

// SendReminders godoc
// @Summary      Enviar recordatorios de follow-ups próximos por correo
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  notify.Result
// @Router       /api/notifications/reminders [post]
func (h *NotifyHandler) SendReminders(c *fiber.Ctx) error {
	out, err := h.uc.SendReminders(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
