package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Counter names used across the service
const (
	CounterOrdersCreated       = "manufacturing_orders_created"
	CounterOrdersCompleted     = "manufacturing_orders_completed"
	CounterReservationRejected = "size_reservations_rejected"
	CounterQRProductsCreated   = "qr_products_created"
	CounterQRReconciled        = "qr_products_reconciled"
	CounterStockTransactions   = "stock_transactions_recorded"
)

// Metrics is an in-process metrics collector
type Metrics struct {
	mu           sync.RWMutex
	counters     map[string]*int64
	gauges       map[string]*int64
	healthChecks map[string]*int64
	startTime    time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		counters:     make(map[string]*int64),
		gauges:       make(map[string]*int64),
		healthChecks: make(map[string]*int64),
		startTime:    time.Now(),
	}
}

// IncrementCounter increments a counter by 1
func (m *Metrics) IncrementCounter(name string) {
	m.IncrementCounterBy(name, 1)
}

// IncrementCounterBy increments a counter by the specified value
func (m *Metrics) IncrementCounterBy(name string, value int64) {
	atomic.AddInt64(m.counter(name), value)
}

// SetGauge sets a gauge to a specific value
func (m *Metrics) SetGauge(name string, value int64) {
	m.mu.RLock()
	gauge, exists := m.gauges[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if gauge, exists = m.gauges[name]; !exists {
			var g int64
			gauge = &g
			m.gauges[name] = gauge
		}
		m.mu.Unlock()
	}

	atomic.StoreInt64(gauge, value)
}

// SetHealthCheck records the health status of a dependency
func (m *Metrics) SetHealthCheck(name string, healthy bool) {
	m.mu.RLock()
	check, exists := m.healthChecks[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		if check, exists = m.healthChecks[name]; !exists {
			var c int64
			check = &c
			m.healthChecks[name] = check
		}
		m.mu.Unlock()
	}

	var v int64
	if healthy {
		v = 1
	}
	atomic.StoreInt64(check, v)
}

// GetHealthChecks returns the recorded health status per dependency
func (m *Metrics) GetHealthChecks() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checks := make(map[string]bool, len(m.healthChecks))
	for name, check := range m.healthChecks {
		checks[name] = atomic.LoadInt64(check) == 1
	}
	return checks
}

// GetAllMetrics returns a snapshot of all metrics
func (m *Metrics) GetAllMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counters := make(map[string]int64, len(m.counters))
	for name, counter := range m.counters {
		counters[name] = atomic.LoadInt64(counter)
	}

	gauges := make(map[string]int64, len(m.gauges))
	for name, gauge := range m.gauges {
		gauges[name] = atomic.LoadInt64(gauge)
	}

	return map[string]interface{}{
		"counters":       counters,
		"gauges":         gauges,
		"health":         m.healthChecksLocked(),
		"uptime_seconds": int64(time.Since(m.startTime).Seconds()),
	}
}

func (m *Metrics) healthChecksLocked() map[string]bool {
	checks := make(map[string]bool, len(m.healthChecks))
	for name, check := range m.healthChecks {
		checks[name] = atomic.LoadInt64(check) == 1
	}
	return checks
}

func (m *Metrics) counter(name string) *int64 {
	m.mu.RLock()
	counter, exists := m.counters[name]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		// Check again to avoid race conditions
		if counter, exists = m.counters[name]; !exists {
			var c int64
			counter = &c
			m.counters[name] = counter
		}
		m.mu.Unlock()
	}
	return counter
}
