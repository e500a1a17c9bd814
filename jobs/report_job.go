package jobs

import (
	"context"
	"time"

	"github.com/fenilmodi00/gmp-mailer/models"
	"github.com/fenilmodi00/gmp-mailer/services"
	"github.com/fenilmodi00/gmp-mailer/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReportJob runs the full pipeline once: fetch the page, parse its rows,
// render the report and deliver it. Scheduling is left to whatever invokes
// the process.
type ReportJob struct {
	SourceURL string
	Fetcher   services.PageFetcher
	Renderer  services.ReportRenderer
	Delivery  services.ReportDelivery
	Metrics   *shared.RunMetrics
}

// NewReportJob creates a report job from its pipeline stages.
func NewReportJob(sourceURL string, fetcher services.PageFetcher, renderer services.ReportRenderer, delivery services.ReportDelivery) *ReportJob {
	return &ReportJob{
		SourceURL: sourceURL,
		Fetcher:   fetcher,
		Renderer:  renderer,
		Delivery:  delivery,
		Metrics:   shared.NewRunMetrics(),
	}
}

// Run executes one report run and returns the report that was delivered.
func (j *ReportJob) Run(ctx context.Context) (*models.Report, error) {
	startTime := time.Now()
	runID := uuid.New().String()

	logger := logrus.WithFields(logrus.Fields{
		"component": "ReportJob",
		"run_id":    runID,
	})
	logger.Info("Running GMP report job...")

	fetchStart := time.Now()
	result, err := j.Fetcher.FetchPage(ctx)
	if err != nil {
		j.Metrics.RecordFetch(false, err, time.Since(fetchStart))
		logger.WithError(err).Error("GMP report job failed: could not fetch source page")
		return nil, err
	}
	j.Metrics.RecordFetch(result.Blocked, nil, time.Since(fetchStart))

	report := &models.Report{
		RunID:     runID,
		SourceURL: j.SourceURL,
		FetchedAt: time.Now(),
		Blocked:   result.Blocked,
	}

	if result.Blocked {
		logger.Warn("Source blocked the request, reporting the block instead of data")
	} else {
		parseStart := time.Now()

		document, err := services.ParseDocument(result.HTML)
		if err != nil {
			logger.WithError(err).Error("GMP report job failed: could not parse page HTML")
			return nil, err
		}

		rows := services.DocumentRows(document)
		sections, stats := services.ParseGMPRows(rows)
		report.Sections = sections
		j.Metrics.RecordParse(stats.TotalRows, stats.Records, stats.DroppedShortRows, stats.DroppedOrphanRows, time.Since(parseStart))

		if dropped := stats.DroppedShortRows + stats.DroppedOrphanRows; dropped > 0 {
			logger.WithFields(logrus.Fields{
				"dropped_short_rows":  stats.DroppedShortRows,
				"dropped_orphan_rows": stats.DroppedOrphanRows,
			}).Warn("Dropped malformed or orphaned data rows during parse")
		}

		if report.IsEmpty() {
			logger.Warn("No GMP table data parsed from source page")
		}
	}

	rendered, err := j.Renderer.Render(report)
	if err != nil {
		logger.WithError(err).Error("GMP report job failed: could not render report")
		return nil, err
	}

	deliveryStart := time.Now()
	err = j.Delivery.Deliver(rendered)
	j.Metrics.RecordDelivery(err, time.Since(deliveryStart))
	if err != nil {
		logger.WithError(err).Error("GMP report job failed: could not deliver report")
		return nil, err
	}

	duration := time.Since(startTime)
	logger.WithFields(logrus.Fields{
		"sections": len(report.Sections),
		"records":  report.TotalRecords(),
		"blocked":  report.Blocked,
	}).Infof("GMP report job completed successfully (took %v)", duration)

	j.Metrics.LogSummary()

	return report, nil
}
