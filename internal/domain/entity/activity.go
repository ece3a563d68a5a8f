package entity

import "time"

// Estados del prospecto. Enum abierto: cualquier estado puede fijarse desde
// cualquier otro; no hay grafo de transiciones restringido.
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusLost       = "lost"
)

// Tipos de actividad de contacto.
const (
	TypePresentation = "presentation"
	TypeProductDemo  = "product_demo"
	TypeFollowupCall = "followup_call"
	TypeEmail        = "email"
	TypeMeeting      = "meeting"
	TypeOther        = "other"
)

// Activity representa un contacto con un prospecto, atribuido al marketer
// que lo creó vía MarketerUsername. El referente debe existir al crear la
// actividad; no se re-valida después (el borrado de usuarios deja
// referencias colgantes documentadas).
type Activity struct {
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

// ValidStatus indica si s es uno de los estados conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusWon, StatusLost:
		return true
	}
	return false
}
