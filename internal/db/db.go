// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lidersalinas/ranking-padel-api/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const (
	pairColumns = "id, jugador1_id, jugador2_id, capitan_id, grupo, genero, posicion_actual, activo, created_at, updated_at"

	challengeColumns = "id, retadora_pareja_id, retada_pareja_id, ganador_pareja_id, estado, " +
		"fecha, hora, fecha_jugado, " +
		"set1_retador, set1_desafiado, set2_retador, set2_desafiado, set3_retador, set3_desafiado, " +
		"limite_semana_ok, swap_aplicado, ranking_aplicado, pos_retadora_old, pos_retada_old, " +
		"titulo_desafio, observacion, created_at, updated_at"

	playerColumns = "id, nombre, apellido, telefono, email, foto_url, activo, created_at, updated_at"
)

// registerPreparedStatements registers all statements the API and admin
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Pairs
		"pair_by_id":            "SELECT " + pairColumns + " FROM parejas WHERE id = $1",
		"active_pair_by_player": "SELECT " + pairColumns + " FROM parejas WHERE activo AND (jugador1_id = $1 OR jugador2_id = $1) ORDER BY id LIMIT 1",
		"active_pairs_by_group": "SELECT " + pairColumns + " FROM parejas WHERE activo AND grupo = $1 ORDER BY posicion_actual NULLS LAST, id",
		"max_active_position":   "SELECT COALESCE(MAX(posicion_actual), 0) FROM parejas WHERE activo AND grupo = $1",
		"update_pair_slot":      "UPDATE parejas SET grupo = $2, posicion_actual = $3, updated_at = now() WHERE id = $1",
		"ranking_groups":        "SELECT DISTINCT grupo FROM parejas WHERE activo ORDER BY grupo",
		"insert_pair": "INSERT INTO parejas (jugador1_id, jugador2_id, capitan_id, grupo, genero, posicion_actual, activo) " +
			"VALUES ($1, $2, $3, $4, $5, $6, true) RETURNING id, created_at, updated_at",

		// Challenges
		"challenge_by_id": "SELECT " + challengeColumns + " FROM desafios WHERE id = $1",
		"insert_challenge": "INSERT INTO desafios (retadora_pareja_id, retada_pareja_id, estado, fecha, hora, " +
			"limite_semana_ok, titulo_desafio, observacion) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8) " +
			"RETURNING id, created_at, updated_at",
		"update_challenge": "UPDATE desafios SET ganador_pareja_id = $2, estado = $3, fecha = $4, hora = $5, fecha_jugado = $6, " +
			"set1_retador = $7, set1_desafiado = $8, set2_retador = $9, set2_desafiado = $10, set3_retador = $11, set3_desafiado = $12, " +
			"limite_semana_ok = $13, swap_aplicado = $14, ranking_aplicado = $15, pos_retadora_old = $16, pos_retada_old = $17, " +
			"titulo_desafio = $18, observacion = $19, updated_at = now() " +
			"WHERE id = $1 RETURNING updated_at",
		"challenges_by_status": "SELECT " + challengeColumns + " FROM desafios WHERE estado = ANY($1) ORDER BY fecha, hora, id",
		"challenges_by_pair":   "SELECT " + challengeColumns + " FROM desafios WHERE retadora_pareja_id = $1 OR retada_pareja_id = $1 ORDER BY fecha DESC, id DESC",
		"challenges_by_player": "SELECT " + challengeColumns + " FROM desafios d WHERE ($2::text[] IS NULL OR d.estado = ANY($2)) " +
			"AND ($3::date IS NULL OR d.fecha >= $3) " +
			"AND EXISTS (SELECT 1 FROM parejas p WHERE p.id IN (d.retadora_pareja_id, d.retada_pareja_id) " +
			"AND (p.jugador1_id = $1 OR p.jugador2_id = $1)) " +
			"ORDER BY d.fecha, d.hora, d.id",
		"count_week_challenges": "SELECT COUNT(*) FROM desafios WHERE (retadora_pareja_id = $1 OR retada_pareja_id = $1) " +
			"AND estado = ANY($2) AND fecha >= $3 AND fecha < $4 AND id <> $5",
		"pending_created_before": "SELECT " + challengeColumns + " FROM desafios WHERE estado = 'Pendiente' AND created_at < $1 ORDER BY created_at, id",

		// Players
		"player_by_id":    "SELECT " + playerColumns + " FROM jugadores WHERE id = $1",
		"player_by_email": "SELECT " + playerColumns + " FROM jugadores WHERE lower(email) = lower($1) AND activo",
		"players_active":  "SELECT " + playerColumns + " FROM jugadores WHERE activo ORDER BY apellido, nombre",
		"players_by_ids":  "SELECT " + playerColumns + " FROM jugadores WHERE id = ANY($1)",
		"insert_player": "INSERT INTO jugadores (nombre, apellido, telefono, email) VALUES ($1, $2, $3, $4) " +
			"RETURNING id, created_at, updated_at",

		// Push device tokens
		"upsert_push_token": "INSERT INTO push_tokens (jugador_id, token, platform, active, created_at, updated_at) " +
			"VALUES ($1, $2, $3, true, now(), now()) " +
			"ON CONFLICT (token) DO UPDATE SET jugador_id = EXCLUDED.jugador_id, platform = EXCLUDED.platform, active = true, updated_at = now()",
		"deactivate_push_token": "UPDATE push_tokens SET active = false, updated_at = now() WHERE token = $1",
		"tokens_by_players":     "SELECT DISTINCT token FROM push_tokens WHERE active AND jugador_id = ANY($1)",

		// Push outbox
		"outbox_enqueue": "INSERT INTO push_outbox (jugador_id, title, body, data, status, attempts, next_attempt_at, created_at) " +
			"VALUES ($1, $2, $3, $4, 'pending', 0, now(), now()) RETURNING id",
		"outbox_claim_due": "UPDATE push_outbox SET status = 'sending', attempts = attempts + 1 " +
			"WHERE id IN (SELECT id FROM push_outbox WHERE status = 'pending' AND next_attempt_at <= now() " +
			"ORDER BY next_attempt_at LIMIT $1 FOR UPDATE SKIP LOCKED) " +
			"RETURNING id, jugador_id, title, body, data, attempts",
		"outbox_mark_sent":   "UPDATE push_outbox SET status = 'sent', sent_at = now() WHERE id = $1",
		"outbox_mark_failed": "UPDATE push_outbox SET status = CASE WHEN attempts >= $2 THEN 'failed' ELSE 'pending' END, next_attempt_at = $3 WHERE id = $1",

		// Magic-link auth
		"insert_auth_token":  "INSERT INTO auth_tokens (id, jugador_id, expires_at, created_at) VALUES ($1, $2, $3, now())",
		"consume_auth_token": "DELETE FROM auth_tokens WHERE id = $1 AND expires_at > now() RETURNING jugador_id",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
