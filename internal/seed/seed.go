// Package seed populates a development database with a small demo league:
// players, pairs and dense ladder positions across three groups.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
	"github.com/lidersalinas/ranking-padel-api/internal/store/postgres"
)

// SeedResult tracks counts and errors from a seeding operation.
type SeedResult struct {
	PlayersInserted int
	PairsInserted   int
	Errors          []string
}

// AddErrorf records a formatted error message.
func (r *SeedResult) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *SeedResult) Summary() string {
	return fmt.Sprintf("players=%d pairs=%d errors=%d",
		r.PlayersInserted, r.PairsInserted, len(r.Errors))
}

type demoPair struct {
	group   string
	gender  string
	players [2][2]string // {nombre, apellido} x2
}

// The demo ladder: three groups, captain is always the first player, pairs
// are slotted in declaration order.
var demoPairs = []demoPair{
	{"Masculino A", "M", [2][2]string{{"Martín", "Salinas"}, {"Diego", "Ferreyra"}}},
	{"Masculino A", "M", [2][2]string{{"Lucas", "Paredes"}, {"Nicolás", "Bustos"}}},
	{"Masculino A", "M", [2][2]string{{"Federico", "Aguirre"}, {"Tomás", "Ledesma"}}},
	{"Masculino A", "M", [2][2]string{{"Javier", "Molina"}, {"Sebastián", "Ríos"}}},
	{"Masculino A", "M", [2][2]string{{"Gonzalo", "Herrera"}, {"Matías", "Cabrera"}}},
	{"Masculino A", "M", [2][2]string{{"Pablo", "Villalba"}, {"Andrés", "Quiroga"}}},

	{"Masculino B", "M", [2][2]string{{"Ramiro", "Sosa"}, {"Emiliano", "Vega"}}},
	{"Masculino B", "M", [2][2]string{{"Franco", "Torres"}, {"Agustín", "Luna"}}},
	{"Masculino B", "M", [2][2]string{{"Marcos", "Peralta"}, {"Iván", "Correa"}}},
	{"Masculino B", "M", [2][2]string{{"Hernán", "Gauna"}, {"Leandro", "Ojeda"}}},
	{"Masculino B", "M", [2][2]string{{"Cristian", "Vera"}, {"Maximiliano", "Funes"}}},

	{"Femenino A", "F", [2][2]string{{"Valentina", "Campos"}, {"Julieta", "Moreno"}}},
	{"Femenino A", "F", [2][2]string{{"Camila", "Ibarra"}, {"Rocío", "Navarro"}}},
	{"Femenino A", "F", [2][2]string{{"Florencia", "Duarte"}, {"Milagros", "Acosta"}}},
	{"Femenino A", "F", [2][2]string{{"Sofía", "Benítez"}, {"Agustina", "Roldán"}}},
}

// Demo inserts the demo league. Not idempotent: running it twice duplicates
// the roster, so it is meant for a fresh development database only.
func Demo(ctx context.Context, pool *db.Pool, store *postgres.Store, logger *slog.Logger) (*SeedResult, error) {
	result := &SeedResult{}

	for _, dp := range demoPairs {
		var ids [2]int
		failed := false
		for i, name := range dp.players {
			id, err := insertPlayer(ctx, pool, name[0], name[1])
			if err != nil {
				result.AddErrorf("insert player %s %s: %v", name[0], name[1], err)
				failed = true
				break
			}
			ids[i] = id
			result.PlayersInserted++
		}
		if failed {
			continue
		}

		pair := &ladder.Pair{
			Player1ID: ids[0],
			Player2ID: ids[1],
			CaptainID: ids[0],
			Group:     dp.group,
			Gender:    dp.gender,
		}
		if err := store.CreatePair(ctx, pair); err != nil {
			result.AddErrorf("create pair in %s: %v", dp.group, err)
			continue
		}
		result.PairsInserted++
		logger.Info("seeded pair", "pareja_id", pair.ID, "grupo", dp.group, "posicion", *pair.Position)
	}

	return result, nil
}

func insertPlayer(ctx context.Context, pool *db.Pool, first, last string) (int, error) {
	var (
		id                   int
		createdAt, updatedAt any
	)
	email := fmt.Sprintf("%s.%s@example.com", sanitize(first), sanitize(last))
	err := pool.QueryRow(ctx, "insert_player", first, last, "", email).
		Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// sanitize lowercases and strips accents well enough for demo emails.
func sanitize(s string) string {
	replacements := map[rune]rune{
		'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ñ': 'n',
		'Á': 'a', 'É': 'e', 'Í': 'i', 'Ó': 'o', 'Ú': 'u', 'Ñ': 'n',
	}
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if repl, ok := replacements[r]; ok {
			r = repl
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
