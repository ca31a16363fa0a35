package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/d6vs-git/us-squash-sub000/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording planning outcomes", func() {
			So(func() {
				metrics.RecordPlanGenerated()
				metrics.RecordPlanFailure("generating")
				metrics.RecordPlanWarnings(2)
				metrics.RecordPlanDuration(1.25)
				metrics.RecordGenerationLatency(0.8)
				metrics.RecordParseRepair()
				metrics.RecordParseFailure()
				metrics.RecordRankingPageFetched()
				metrics.RecordRankingPageError()
				metrics.RecordEntrantLookup()
				metrics.RecordEntrantLookupError()
				metrics.RecordHTTPRequest("recommendations", "POST", "200")
				metrics.RecordHTTPRequestDuration("recommendations", "POST", 0.42)
			}, ShouldNotPanic)
		})

		Convey("When scraping the metrics handler", func() {
			metrics.RecordPlanGenerated()
			rec := httptest.NewRecorder()
			metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

			So(rec.Code, ShouldEqual, 200)
			So(rec.Body.String(), ShouldContainSubstring, "squashplan_engine_plans_generated_total")
		})
	})
}

func TestManagerOptions(t *testing.T) {
	Convey("Given a manager with custom options", t, func() {
		m := metrics.NewManager(
			metrics.WithNamespace("custom"),
			metrics.WithSubsystem("planner"),
			metrics.WithHistogramBuckets([]float64{0.1, 1, 10}),
		)

		Convey("Then it serves its own registry", func() {
			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
			So(rec.Code, ShouldEqual, 200)
		})
	})
}
