package topics

const (
	// Ledger
	LedgerChanged = "ledger_changed"

	// Redis Pub/Sub
	StatsBroadcast = "tracker_stats_broadcast"
)
