package dto

import "time"

// CreateActivityRequest entrada para registrar una actividad de contacto.
// El propietario (marketer_username) se toma del actor, nunca del cuerpo.
type CreateActivityRequest struct {
	ProspectName     string    `json:"prospect_name" validate:"required"`
	ProspectLocation string    `json:"prospect_location" validate:"required"`
	ContactPerson    string    `json:"contact_person" validate:"required"`
	ContactPosition  string    `json:"contact_position"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	ActivityDate     time.Time `json:"activity_date"`
	ActivityType     string    `json:"activity_type" validate:"omitempty,oneof=presentation product_demo followup_call email meeting other"`
	Description      string    `json:"description" validate:"required"`
}

// UpdateActivityRequest entrada para editar una actividad existente
// (variante edit/delete, habilitada por bandera de capacidad).
type UpdateActivityRequest struct {
	ProspectName     string    `json:"prospect_name"`
	ProspectLocation string    `json:"prospect_location"`
	ContactPerson    string    `json:"contact_person"`
	ContactPosition  string    `json:"contact_position"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	ActivityDate     time.Time `json:"activity_date"`
	ActivityType     string    `json:"activity_type"`
	Description      string    `json:"description"`
}

// UpdateStatusRequest cambio directo de estado de una actividad.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress won lost"`
}

// ActivityFilter filtros de listado: igualdad de estado y búsqueda por
// substring (case-insensitive) sobre nombre o ubicación del prospecto.
type ActivityFilter struct {
	Status string `query:"status"`
	Search string `query:"search"`
}

// ActivityResponse salida de una actividad.
type ActivityResponse struct {
	ID               string    `json:"id"`
	MarketerUsername string    `json:"marketer_username"`
	ProspectName     string    `json:"prospect_name"`
	ProspectLocation string    `json:"prospect_location"`
	ContactPerson    string    `json:"contact_person"`
	ContactPosition  string    `json:"contact_position"`
	ContactPhone     string    `json:"contact_phone"`
	ContactEmail     string    `json:"contact_email"`
	ActivityDate     time.Time `json:"activity_date"`
	ActivityType     string    `json:"activity_type"`
	Status           string    `json:"status"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
