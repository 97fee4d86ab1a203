package worker

// Jobs that exhaust their retries are parked in a Redis list
// (dlq:{queue}) so an operator can inspect and replay them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqPrefix = "dlq:"

type dlqEntry struct {
	Cola      string          `json:"cola"`
	Tipo      string          `json:"tipo"`
	Payload   json.RawMessage `json:"payload"`
	Motivo    string          `json:"motivo"`
	FallidoEn time.Time       `json:"fallido_en"`
	Intentos  int             `json:"intentos"`
}

func sendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, motivo string) {
	entry := dlqEntry{
		Cola:      queue,
		Tipo:      job.Type,
		Payload:   job.Payload,
		Motivo:    motivo,
		FallidoEn: time.Now().UTC(),
		Intentos:  job.Attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo serializar la entrada")
		return
	}

	if err := rdb.LPush(ctx, dlqPrefix+queue, data).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: no se pudo encolar la entrada")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("tipo", job.Type).
		Str("motivo", motivo).
		Int("intentos", job.Attempts).
		Msg("dlq: job movido a la cola muerta")
}

// PendientesDLQ reports the backlog of each dead letter queue, keyed by the
// source queue name. Used by the health endpoint.
func PendientesDLQ(ctx context.Context, rdb *redis.Client) map[string]int64 {
	backlog := make(map[string]int64, 2)
	for _, q := range []string{QueueRecibo, QueueEmail} {
		n, err := rdb.LLen(ctx, dlqPrefix+q).Result()
		if err != nil {
			continue
		}
		backlog[q] = n
	}
	return backlog
}
