package events

import (
	"encoding/json"
	"time"
)

// Payload padrão enviado ao dashboard via Redis Pub/Sub -> WS.
// Stats carrega o resumo já serializado pelo tracker-service.
type StatsSnapshot struct {
	Type   string          `json:"type"` // "stats"
	Action string          `json:"action,omitempty"`
	Stats  json.RawMessage `json:"stats"`
	Ts     time.Time       `json:"ts"`
}
