package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunMetrics tracks what one report run did at each pipeline stage. The
// tracker is safe for concurrent use.
type RunMetrics struct {
	FetchAttempts     int           `json:"fetch_attempts"`
	FetchBlocked      int           `json:"fetch_blocked"`
	FetchFailures     int           `json:"fetch_failures"`
	FetchDuration     time.Duration `json:"fetch_duration"`
	RowsParsed        int           `json:"rows_parsed"`
	RecordsParsed     int           `json:"records_parsed"`
	ShortRowsDropped  int           `json:"short_rows_dropped"`
	OrphanRowsDropped int           `json:"orphan_rows_dropped"`
	ParseDuration     time.Duration `json:"parse_duration"`
	DeliveryAttempts  int           `json:"delivery_attempts"`
	DeliveryFailures  int           `json:"delivery_failures"`
	DeliveryDuration  time.Duration `json:"delivery_duration"`
	LastUpdated       time.Time     `json:"last_updated"`
	mutex             sync.RWMutex
}

// NewRunMetrics creates a new metrics tracker for a report run
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		LastUpdated: time.Now(),
	}
}

// RecordFetch records the outcome of a page fetch attempt
func (m *RunMetrics) RecordFetch(blocked bool, err error, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.FetchAttempts++
	m.FetchDuration += duration

	if blocked {
		m.FetchBlocked++
	}
	if err != nil {
		m.FetchFailures++
	}

	m.LastUpdated = time.Now()
}

// RecordParse records what one pass over the table rows produced
func (m *RunMetrics) RecordParse(rows, records, shortDropped, orphanDropped int, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.RowsParsed += rows
	m.RecordsParsed += records
	m.ShortRowsDropped += shortDropped
	m.OrphanRowsDropped += orphanDropped
	m.ParseDuration += duration

	m.LastUpdated = time.Now()
}

// RecordDelivery records the outcome of a delivery attempt
func (m *RunMetrics) RecordDelivery(err error, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.DeliveryAttempts++
	m.DeliveryDuration += duration

	if err != nil {
		m.DeliveryFailures++
	}

	m.LastUpdated = time.Now()
}

// GetParseYield returns parsed records as a percentage of data rows that
// could have produced one
func (m *RunMetrics) GetParseYield() float64 {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.parseYieldLocked()
}

// parseYieldLocked computes the yield; callers must hold at least a read lock.
func (m *RunMetrics) parseYieldLocked() float64 {
	candidates := m.RecordsParsed + m.ShortRowsDropped + m.OrphanRowsDropped
	if candidates == 0 {
		return 0.0
	}

	return float64(m.RecordsParsed) / float64(candidates) * 100.0
}

// LogSummary logs a comprehensive metrics summary for the run
func (m *RunMetrics) LogSummary() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	logrus.WithFields(logrus.Fields{
		"component":           "RunMetrics",
		"fetch_attempts":      m.FetchAttempts,
		"fetch_blocked":       m.FetchBlocked,
		"fetch_failures":      m.FetchFailures,
		"fetch_duration":      m.FetchDuration,
		"rows_parsed":         m.RowsParsed,
		"records_parsed":      m.RecordsParsed,
		"short_rows_dropped":  m.ShortRowsDropped,
		"orphan_rows_dropped": m.OrphanRowsDropped,
		"parse_yield_pct":     m.parseYieldLocked(),
		"parse_duration":      m.ParseDuration,
		"delivery_attempts":   m.DeliveryAttempts,
		"delivery_failures":   m.DeliveryFailures,
		"delivery_duration":   m.DeliveryDuration,
	}).Info("Report run metrics summary")
}
