package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "The total number of products deleted",
	})

	// ListRequests counts catalog list queries, labelled by whether a language was requested.
	ListRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_list_requests_total",
		Help: "The total number of catalog list queries",
	}, []string{"localized"})

	// ProjectionFailures counts products that could not be projected into the requested language.
	ProjectionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_projection_failures_total",
		Help: "The total number of failed language projections",
	}, []string{"field"})
)
