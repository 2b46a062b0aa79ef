package intervention

import (
	"time"

	"github.com/google/uuid"
)

// Severity ranks how urgently an intervention should be surfaced.
type Severity string

const (
	SeverityCrisis Severity = "crisis"
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
	SeverityInfo   Severity = "info"
)

// Status tracks what the user did with an intervention.
type Status string

const (
	StatusPending   Status = "pending"
	StatusViewed    Status = "viewed"
	StatusActed     Status = "acted"
	StatusDismissed Status = "dismissed"
)

// Action types understood by the client.
const (
	ActionConsultation     = "consultation"
	ActionWellnessExercise = "wellness_exercise"
)

// Payload categories.
const (
	CategoryDepression = "depression"
	CategoryAnxiety    = "anxiety"
)

// ActionPayload carries the structured data attached to an intervention.
type ActionPayload struct {
	Category    string `json:"category"`
	Score       int    `json:"score"`
	Recommended string `json:"recommended,omitempty"`
}

// Intervention is a suggested action generated when a clinical threshold is crossed.
type Intervention struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"userId"`
	WeekStartDate    string        `json:"weekStartDate"`
	InterventionText string        `json:"interventionText"`
	Severity         Severity      `json:"severity"`
	ActionType       string        `json:"actionType"`
	ActionPayload    ActionPayload `json:"actionPayload"`
	Status           Status        `json:"status"`
	CreatedAt        time.Time     `json:"createdAt"`
	ViewedAt         *time.Time    `json:"viewedAt,omitempty"`
	ActedAt          *time.Time    `json:"actedAt,omitempty"`
	DismissedAt      *time.Time    `json:"dismissedAt,omitempty"`
}

// ParseStatus validates a status string.
func ParseStatus(value string) (Status, bool) {
	switch s := Status(value); s {
	case StatusPending, StatusViewed, StatusActed, StatusDismissed:
		return s, true
	default:
		return "", false
	}
}

// CanTransition reports whether an intervention may move from one status to another.
// Acted and dismissed are terminal; a viewed item can still be acted on or dismissed.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusViewed || to == StatusActed || to == StatusDismissed
	case StatusViewed:
		return to == StatusActed || to == StatusDismissed
	default:
		return false
	}
}

// MarkStatus moves the intervention to status and stamps the matching lifecycle timestamp.
func (i *Intervention) MarkStatus(status Status, at time.Time) {
	i.Status = status
	stamp := at.UTC()
	switch status {
	case StatusViewed:
		i.ViewedAt = &stamp
	case StatusActed:
		i.ActedAt = &stamp
	case StatusDismissed:
		i.DismissedAt = &stamp
	}
}

// Filter narrows intervention listings.
type Filter struct {
	Status *Status
	Limit  int
}
