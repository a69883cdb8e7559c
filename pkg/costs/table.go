package costs

import (
	"fmt"
	"sort"
	"sync"
)

// Table maps service identifiers to cost-per-call estimates in integer
// cost units. It is thread-safe and supports hot reload of pricing
// configuration.
type Table struct {
	estimates map[string]int64
	mu        sync.RWMutex
}

// NewTable creates a cost table from a service -> cost units mapping.
// The mapping is copied; the caller's map is not retained.
func NewTable(estimates map[string]int64) *Table {
	t := &Table{
		estimates: make(map[string]int64, len(estimates)),
	}
	for service, units := range estimates {
		t.estimates[service] = units
	}
	return t
}

// Estimate returns the cost estimate in units for a service.
// Unknown services are an error: admitting a call with no estimate
// would silently undercount spend.
func (t *Table) Estimate(service string) (int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	units, ok := t.estimates[service]
	if !ok {
		return 0, fmt.Errorf("no cost estimate configured for service %q", service)
	}
	return units, nil
}

// Services returns the configured service identifiers, sorted.
func (t *Table) Services() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	services := make([]string, 0, len(t.estimates))
	for service := range t.estimates {
		services = append(services, service)
	}
	sort.Strings(services)
	return services
}

// Replace swaps the estimate table for a reloaded one.
// Called by the config watcher on hot reload.
func (t *Table) Replace(estimates map[string]int64) {
	next := make(map[string]int64, len(estimates))
	for service, units := range estimates {
		next[service] = units
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.estimates = next
}
