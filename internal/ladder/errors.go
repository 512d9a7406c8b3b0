package ladder

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so the transport layer can map it to an
// HTTP status without inspecting individual codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindRuleViolation
	KindForbidden
	KindValidation
)

// Error is the domain error type. Code is machine-readable and stable;
// Message is for humans. Errors compare by code via errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// WithCause returns a copy of e carrying an underlying cause.
func (e *Error) WithCause(cause error) *Error {
	clone := *e
	clone.Cause = cause
	return &clone
}

// --------------------------------------------------------------------------
// Domain error catalogue
// --------------------------------------------------------------------------

var (
	// Not found / inactive
	ErrPlayerNotFound    = &Error{Kind: KindNotFound, Code: "PLAYER_NOT_FOUND", Message: "jugador no encontrado"}
	ErrPairNotFound      = &Error{Kind: KindNotFound, Code: "PAIR_NOT_FOUND", Message: "pareja no encontrada o inactiva"}
	ErrChallengeNotFound = &Error{Kind: KindNotFound, Code: "CHALLENGE_NOT_FOUND", Message: "desafío no encontrado"}
	ErrNoActivePair      = &Error{Kind: KindNotFound, Code: "NO_ACTIVE_PAIR", Message: "el jugador no tiene una pareja activa"}

	// Validation
	ErrSelfChallenge   = &Error{Kind: KindValidation, Code: "SELF_CHALLENGE", Message: "una pareja no puede desafiarse a sí misma"}
	ErrInvalidTimeSlot = &Error{Kind: KindValidation, Code: "INVALID_TIME_SLOT", Message: "la hora debe ser en punto (ej: 18:00)"}

	// Eligibility rule violations
	ErrCategoryMismatch        = &Error{Kind: KindRuleViolation, Code: "CATEGORY_MISMATCH", Message: "las parejas no pertenecen a la misma categoría"}
	ErrWeeklyLimitExceeded     = &Error{Kind: KindRuleViolation, Code: "WEEKLY_LIMIT_EXCEEDED", Message: "se alcanzó el límite de partidos por semana"}
	ErrPositionOrderViolation  = &Error{Kind: KindRuleViolation, Code: "POSITION_ORDER_VIOLATION", Message: "solo se puede desafiar a una pareja mejor posicionada"}
	ErrMaxSlotGapExceeded      = &Error{Kind: KindRuleViolation, Code: "MAX_SLOT_GAP_EXCEEDED", Message: "la pareja retada está demasiados puestos arriba"}
	ErrInterdivisionNotAllowed = &Error{Kind: KindRuleViolation, Code: "INTERDIVISION_NOT_ALLOWED", Message: "desafío entre divisiones no permitido"}

	// Score adjudication
	ErrInvalidScore       = &Error{Kind: KindRuleViolation, Code: "INVALID_SCORE", Message: "resultado de set inválido"}
	ErrMissingDecidingSet = &Error{Kind: KindRuleViolation, Code: "MISSING_DECIDING_SET", Message: "falta el tercer set de desempate"}

	// State transitions
	ErrAlreadyResolved = &Error{Kind: KindConflict, Code: "ALREADY_RESOLVED", Message: "este desafío ya fue jugado"}
	ErrAlreadyRejected = &Error{Kind: KindConflict, Code: "ALREADY_REJECTED", Message: "este desafío ya está rechazado"}

	// Authorization
	ErrNotAParticipant = &Error{Kind: KindForbidden, Code: "NOT_A_PARTICIPANT", Message: "el jugador no participa en este desafío"}
)

// KindOf returns the Kind of a domain error, or KindUnknown for foreign
// errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
