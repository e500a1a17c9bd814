package shared

import (
	"errors"
	"testing"
	"time"
)

func TestRunMetricsRecordsStages(t *testing.T) {
	metrics := NewRunMetrics()

	metrics.RecordFetch(false, nil, 100*time.Millisecond)
	metrics.RecordParse(40, 12, 2, 1, 5*time.Millisecond)
	metrics.RecordDelivery(nil, 200*time.Millisecond)

	if metrics.FetchAttempts != 1 || metrics.FetchFailures != 0 || metrics.FetchBlocked != 0 {
		t.Errorf("fetch counters = %d/%d/%d", metrics.FetchAttempts, metrics.FetchFailures, metrics.FetchBlocked)
	}
	if metrics.RowsParsed != 40 || metrics.RecordsParsed != 12 {
		t.Errorf("parse counters = %d rows, %d records", metrics.RowsParsed, metrics.RecordsParsed)
	}
	if metrics.ShortRowsDropped != 2 || metrics.OrphanRowsDropped != 1 {
		t.Errorf("drop counters = %d short, %d orphan", metrics.ShortRowsDropped, metrics.OrphanRowsDropped)
	}
	if metrics.DeliveryAttempts != 1 || metrics.DeliveryFailures != 0 {
		t.Errorf("delivery counters = %d/%d", metrics.DeliveryAttempts, metrics.DeliveryFailures)
	}
	if metrics.FetchDuration != 100*time.Millisecond {
		t.Errorf("fetch duration = %v", metrics.FetchDuration)
	}
}

func TestRunMetricsRecordsFailuresAndBlocks(t *testing.T) {
	metrics := NewRunMetrics()

	metrics.RecordFetch(true, nil, time.Millisecond)
	metrics.RecordFetch(false, errors.New("connection refused"), time.Millisecond)
	metrics.RecordDelivery(errors.New("send failed"), time.Millisecond)

	if metrics.FetchBlocked != 1 {
		t.Errorf("FetchBlocked = %d, want 1", metrics.FetchBlocked)
	}
	if metrics.FetchFailures != 1 {
		t.Errorf("FetchFailures = %d, want 1", metrics.FetchFailures)
	}
	if metrics.DeliveryFailures != 1 {
		t.Errorf("DeliveryFailures = %d, want 1", metrics.DeliveryFailures)
	}
}

func TestRunMetricsParseYield(t *testing.T) {
	metrics := NewRunMetrics()

	if yield := metrics.GetParseYield(); yield != 0.0 {
		t.Errorf("empty yield = %f, want 0", yield)
	}

	metrics.RecordParse(10, 8, 1, 1, time.Millisecond)

	if yield := metrics.GetParseYield(); yield != 80.0 {
		t.Errorf("yield = %f, want 80", yield)
	}
}
