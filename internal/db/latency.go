package db

// QueryLatencyStats returns per-query latency summaries, slowest p95 first.
func (c *Database) QueryLatencyStats() []QueryStats {
	if c == nil || c.tracker == nil {
		return nil
	}
	return c.tracker.snapshot()
}
