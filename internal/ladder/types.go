// Package ladder implements the challenge-ladder rules engine: eligibility
// validation, set-score adjudication, slot swaps (including cross-division
// promotion), lazy forfeit sweeping, and the challenge lifecycle state
// machine. Persistence and push delivery are consumed through the Store and
// Notifier interfaces — the engine never talks to Postgres or FCM directly.
package ladder

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Challenge states — stored verbatim, matching the original API contract
// --------------------------------------------------------------------------

const (
	StatusPending  = "Pendiente"
	StatusAccepted = "Aceptado"
	StatusRejected = "Rechazado"
	StatusPlayed   = "Jugado"
)

// ActiveStatuses are the states that count against the weekly match limit.
var ActiveStatuses = []string{StatusPending, StatusAccepted, StatusPlayed}

// --------------------------------------------------------------------------
// Date — calendar date serialized as YYYY-MM-DD
// --------------------------------------------------------------------------

// Date is a calendar date with no time-of-day component.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekRange returns the half-open Monday-to-Monday interval [start, end)
// containing d. The weekly match limit is counted against this window.
func WeekRange(d Date) (start, end Date) {
	// time.Weekday: Sunday=0 ... Saturday=6; we want Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	start = Date{d.AddDate(0, 0, -offset)}
	end = Date{start.AddDate(0, 0, 7)}
	return start, end
}

// --------------------------------------------------------------------------
// Player
// --------------------------------------------------------------------------

// Player is a registered league member. Two players form a Pair.
type Player struct {
	ID        int       `json:"id"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Phone     string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	PhotoURL  string    `json:"foto_url,omitempty"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "Nombre Apellido" for display.
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// --------------------------------------------------------------------------
// Pair
// --------------------------------------------------------------------------

// Pair is a doubles team occupying a ranked slot within a group. The group
// label combines category and division, e.g. "Masculino B". Position is nil
// until the pair is slotted into the ladder; among active pairs of a group,
// positions are dense and unique starting at 1.
type Pair struct {
	ID        int       `json:"id"`
	Player1ID int       `json:"jugador1_id"`
	Player2ID int       `json:"jugador2_id"`
	CaptainID int       `json:"capitan_id"`
	Group     string    `json:"grupo"`
	Gender    string    `json:"genero,omitempty"` // "M" | "F", optional explicit category
	Position  *int      `json:"posicion_actual"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPlayer reports whether playerID is one of the pair's two members.
func (p *Pair) HasPlayer(playerID int) bool {
	return p.Player1ID == playerID || p.Player2ID == playerID
}

// Category returns the pair's canonical category ("masculino" | "femenino").
// Two-tier lookup: the explicit gender attribute wins; otherwise the first
// whitespace-delimited token of the group label, lowercased. The fallback is
// a heuristic over free-text labels and is deliberately isolated here.
func (p *Pair) Category() string {
	switch strings.ToUpper(strings.TrimSpace(p.Gender)) {
	case "M":
		return "masculino"
	case "F":
		return "femenino"
	}
	fields := strings.Fields(p.Group)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Division returns the division letter from the group label ("Masculino B"
// -> "B"), or "" when the label carries no division token.
func (p *Pair) Division() string {
	fields := strings.Fields(p.Group)
	if len(fields) < 2 {
		return ""
	}
	return strings.ToUpper(fields[len(fields)-1])
}

// SameCategory reports whether both pairs resolve to the same non-empty
// category.
func SameCategory(a, b *Pair) bool {
	ca, cb := a.Category(), b.Category()
	return ca != "" && ca == cb
}

// GroupLabel builds a group label from a category title and division letter,
// e.g. GroupLabel("Masculino", "A") -> "Masculino A".
func GroupLabel(category, division string) string {
	return strings.TrimSpace(category) + " " + strings.ToUpper(strings.TrimSpace(division))
}

// --------------------------------------------------------------------------
// Challenge
// --------------------------------------------------------------------------

// Challenge is a proposed or resolved match between two pairs. Retadora is
// the challenger, retada the challenged side; the Spanish wire names are kept
// for client compatibility.
type Challenge struct {
	ID           int    `json:"id"`
	ChallengerID int    `json:"retadora_pareja_id"`
	ChallengedID int    `json:"retada_pareja_id"`
	WinnerID     *int   `json:"ganador_pareja_id"`
	Status       string `json:"estado"`

	Date       Date   `json:"fecha"`
	Hour       string `json:"hora"` // "HH:MM", on the hour
	PlayedDate *Date  `json:"fecha_jugado"`

	Set1Challenger *int `json:"set1_retador"`
	Set1Challenged *int `json:"set1_desafiado"`
	Set2Challenger *int `json:"set2_retador"`
	Set2Challenged *int `json:"set2_desafiado"`
	Set3Challenger *int `json:"set3_retador"`
	Set3Challenged *int `json:"set3_desafiado"`

	WeekLimitOK    bool `json:"limite_semana_ok"`
	SwapApplied    bool `json:"swap_aplicado"`
	RankingApplied bool `json:"ranking_aplicado"`

	ChallengerPosOld *int `json:"pos_retadora_old"`
	ChallengedPosOld *int `json:"pos_retada_old"`

	Title       string `json:"titulo_desafio"`
	Observation string `json:"observacion,omitempty"`

	SlotAtStake *int `json:"puesto_en_juego,omitempty"` // computed, not stored

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPair reports whether pairID participates in the challenge.
func (c *Challenge) HasPair(pairID int) bool {
	return c.ChallengerID == pairID || c.ChallengedID == pairID
}

// Resolved reports whether the challenge reached a terminal state.
func (c *Challenge) Resolved() bool {
	return c.Status == StatusPlayed || c.Status == StatusRejected
}

// RefreshSlotAtStake recomputes the slot-at-stake field from the pre-swap
// position snapshots: the better (minimum) of the two positions.
func (c *Challenge) RefreshSlotAtStake() {
	c.SlotAtStake = nil
	if c.ChallengerPosOld == nil && c.ChallengedPosOld == nil {
		return
	}
	if c.ChallengerPosOld == nil {
		v := *c.ChallengedPosOld
		c.SlotAtStake = &v
		return
	}
	if c.ChallengedPosOld == nil {
		v := *c.ChallengerPosOld
		c.SlotAtStake = &v
		return
	}
	v := min(*c.ChallengerPosOld, *c.ChallengedPosOld)
	c.SlotAtStake = &v
}

// ChallengeTitle builds the human-readable title, "5 vs 3" when both
// positions are known, otherwise the pair ids.
func ChallengeTitle(challenger, challenged *Pair) string {
	if challenger.Position != nil && challenged.Position != nil {
		return fmt.Sprintf("%d vs %d", *challenger.Position, *challenged.Position)
	}
	return fmt.Sprintf("%d vs %d", challenger.ID, challenged.ID)
}

// ParticipantIDs returns the four player ids involved in a challenge, for
// push fan-out.
func ParticipantIDs(challenger, challenged *Pair) []int {
	return []int{
		challenger.Player1ID, challenger.Player2ID,
		challenged.Player1ID, challenged.Player2ID,
	}
}

// --------------------------------------------------------------------------
// Set scores (result submission payload)
// --------------------------------------------------------------------------

// SetScores is a result submission: two mandatory sets plus an optional
// super tie-break third set.
type SetScores struct {
	Set1Challenger int  `json:"set1_retador"`
	Set1Challenged int  `json:"set1_desafiado"`
	Set2Challenger int  `json:"set2_retador"`
	Set2Challenged int  `json:"set2_desafiado"`
	Set3Challenger *int `json:"set3_retador,omitempty"`
	Set3Challenged *int `json:"set3_desafiado,omitempty"`
}

// HasThirdSet reports whether both third-set scores were submitted.
func (s *SetScores) HasThirdSet() bool {
	return s.Set3Challenger != nil && s.Set3Challenged != nil
}

// ValidHour reports whether s is an exact on-the-hour time slot ("18:00").
// Seconds are accepted when zero ("18:00:00").
func ValidHour(s string) bool {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil {
			return false
		}
	}
	return t.Minute() == 0 && t.Second() == 0
}
