package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locker_booking",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "locker_booking",
			Name:      "booking_conflicts_total",
			Help:      "Count of booking attempts rejected for overlapping dates.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "locker_booking",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by users.",
		},
	)

	geocodeLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "locker_booking",
			Name:      "geocode_lookups_total",
			Help:      "Count of geocoding lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflicts, bookingCancelled, geocodeLookups)
	})
}

// Serve exposes /metrics on its own listener so the scrape path never goes
// through the API middleware chain.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go srv.ListenAndServe()
	return srv
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncGeocodeLookup(result string) {
	geocodeLookups.WithLabelValues(result).Inc()
}
