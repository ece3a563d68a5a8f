package dto

// SettingsRequest entrada para guardar la configuración de la aplicación.
// El guardado es una sobreescritura completa del registro singleton.
type SettingsRequest struct {
	AppName              string `json:"app_name" validate:"required"`
	CompanyName          string `json:"company_name" validate:"required"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// SettingsResponse salida de la configuración actual.
type SettingsResponse struct {
	AppName              string `json:"app_name"`
	CompanyName          string `json:"company_name"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// IntegrityReport resultado de la validación de integridad referencial.
// Issues vacío significa que no se encontraron referencias colgantes.
type IntegrityReport struct {
	OK     bool     `json:"ok"`
	Issues []string `json:"issues"`
}
