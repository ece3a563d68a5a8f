package entity

// AppConfig es el registro singleton de configuración de la aplicación.
// Se lee al arranque y se sobreescribe completo al guardar.
type AppConfig struct {
	AppName              string `json:"app_name"`
	CompanyName          string `json:"company_name"`
	Theme                string `json:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// DefaultAppConfig valores iniciales cuando el almacén aún no tiene registro.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		AppName:              "AI Suara Marketing Tracker",
		CompanyName:          "AI Suara",
		Theme:                "light",
		NotificationsEnabled: false,
	}
}
