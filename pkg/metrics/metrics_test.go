package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register the catalog collectors", func() {
				So(manager, ShouldNotBeNil)
				manager.productsTotal.Set(4)
				So(testutil.ToFloat64(manager.productsTotal), ShouldEqual, 4)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "catalog_api_products_total")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"mode": "development"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names and labels should follow the options", func() {
				manager.priceListsTotal.Set(6)
				expected := `
# HELP test_unit_dealer_price_lists_total Number of dealer price lists in the catalog
# TYPE test_unit_dealer_price_lists_total gauge
test_unit_dealer_price_lists_total{mode="development"} 6
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_unit_dealer_price_lists_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto should panic on duplicate collectors", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When catalog size is updated", func() {
			UpdateCatalogSize(4, 6)

			Convey("Then the gauges reflect the counts", func() {
				So(testutil.ToFloat64(globalManager.productsTotal), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.priceListsTotal), ShouldEqual, 6)
			})
		})

		Convey("When seeding is recorded", func() {
			before := testutil.ToFloat64(globalManager.seededRecords.WithLabelValues("products"))
			RecordSeeded("products", 4)

			Convey("Then the counter grows by the inserted rows", func() {
				after := testutil.ToFloat64(globalManager.seededRecords.WithLabelValues("products"))
				So(after-before, ShouldEqual, 4)
			})
		})

		Convey("When HTTP requests are recorded", func() {
			before := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("getdealers", "GET", "404"))
			RecordHTTPRequest("getdealers", "GET", "404")
			RecordHTTPRequestDuration("getdealers", "GET", "404", 1.5)
			RecordErrorByEndpoint("getdealers", "GET", "not_found")
			RecordErrorByType("not_found", "medium")

			Convey("Then the request counter is incremented", func() {
				after := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("getdealers", "GET", "404"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When store operations are recorded", func() {
			before := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("find_by_name"))
			RecordStoreQuery("find_by_name", 0.3)
			RecordStoreError("find_by_name")

			Convey("Then the error counter is incremented", func() {
				after := testutil.ToFloat64(globalManager.storeErrors.WithLabelValues("find_by_name"))
				So(after-before, ShouldEqual, 1)
			})
		})

		Convey("When system metrics are recorded", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 12)
		})

		Convey("Then the exported registry is the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		before := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("products", "GET", "200"))

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					RecordHTTPRequest("products", "GET", "200")
					RecordStoreQuery("list_all", 0.1)
				}
			}()
		}
		wg.Wait()

		Convey("Then no increments are lost", func() {
			after := testutil.ToFloat64(globalManager.httpRequests.WithLabelValues("products", "GET", "200"))
			So(after-before, ShouldEqual, 1000)
		})
	})
}
