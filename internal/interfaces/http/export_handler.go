package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/export"
)

// ExportHandler expone CSV, backup/restore y el reporte de integridad (solo admin).
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportCSV godoc
// @Summary      Exportar una colección a CSV
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        kind  path  string  true  "activities.csv | followups.csv | users.csv"
// @Success      200  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/{kind} [get]
func (h *ExportHandler) ExportCSV(c *fiber.Ctx) error {
	kind := strings.TrimSuffix(c.Params("kind"), ".csv")
	data, err := h.uc.ExportCSV(GetActor(c), kind)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+kind+`.csv"`)
	return c.Send(data)
}

// Backup godoc
// @Summary      Descargar backup completo (zip con las cuatro colecciones)
// @Tags         export
// @Security     Bearer
// @Produce      application/zip
// @Success      200  {string}  string
// @Router       /api/backup [get]
func (h *ExportHandler) Backup(c *fiber.Ctx) error {
	data, err := h.uc.Backup(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	filename := "backup_" + time.Now().Format("20060102_150405") + ".zip"
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// Restore godoc
// @Summary      Restaurar desde un backup (sustituye todas las colecciones)
// @Tags         export
// @Security     Bearer
// @Accept       application/zip
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/restore [post]
func (h *ExportHandler) Restore(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se requiere el zip del backup en el cuerpo"})
	}
	if err := h.uc.Restore(GetActor(c), body); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "backup restaurado"})
}

// Integrity godoc
// @Summary      Reporte de integridad referencial
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IntegrityReport
// @Router       /api/integrity [get]
func (h *ExportHandler) Integrity(c *fiber.Ctx) error {
	out, err := h.uc.ValidateIntegrity(GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
