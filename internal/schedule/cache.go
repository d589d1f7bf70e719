package schedule

import (
	"encoding/json"
	"slices"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/segyhp/debt-planner/internal/domain"
	"github.com/segyhp/debt-planner/pkg/utils"
)

// DefaultCacheSize is the number of schedules kept when no size is configured
const DefaultCacheSize = 500

// CacheStats is a point-in-time view of cache usage
type CacheStats struct {
	Entries  int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// Cache memoises resolved schedules keyed on every input that affects them.
// Entries are evicted least recently used first. A zero capacity disables it.
type Cache struct {
	capacity int
	entries  *lru.Cache[string, []domain.ScheduledPayment]
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewCache creates a cache holding at most capacity schedules
func NewCache(capacity int) *Cache {
	c := &Cache{}
	if capacity <= 0 {
		return c
	}

	entries, err := lru.New[string, []domain.ScheduledPayment](capacity)
	if err != nil {
		return c
	}
	c.capacity = capacity
	c.entries = entries
	return c
}

type cacheKey struct {
	ID           string   `json:"id"`
	CreditorName string   `json:"creditor"`
	Total        string   `json:"total"`
	PaidOff      bool     `json:"paid_off"`
	PlanAmount   string   `json:"plan_amount,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	PlanStart    string   `json:"plan_start,omitempty"`
	PaidOn       []string `json:"paid_on"`
}

// CacheKey builds the canonical key of a debt's schedule inputs.
// The paid set is sorted and de-duplicated so its order does not matter.
func CacheKey(debt *domain.Debt) string {
	key := cacheKey{
		ID:           debt.ID,
		CreditorName: debt.CreditorName,
		Total:        debt.TotalAmount.String(),
		PaidOff:      debt.IsPaidOff,
	}
	if plan := debt.PaymentPlan; plan != nil {
		key.PlanAmount = plan.Amount.String()
		key.Frequency = string(plan.Frequency)
		key.PlanStart = utils.DateKey(plan.StartDate)
	}

	paid := slices.Clone(debt.PaidOn)
	slices.Sort(paid)
	key.PaidOn = slices.Compact(paid)

	// Strings and bools only, Marshal cannot fail
	b, _ := json.Marshal(key)
	return string(b)
}

// GetOrCompute returns the cached schedule for debt, computing and storing it on a miss.
// The returned slice is always a copy.
func (c *Cache) GetOrCompute(debt *domain.Debt, compute func(*domain.Debt) []domain.ScheduledPayment) []domain.ScheduledPayment {
	if c.entries == nil {
		return compute(debt)
	}

	key := CacheKey(debt)

	if payments, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return slices.Clone(payments)
	}
	c.misses.Add(1)

	// A concurrent miss on the same key stores an equal value
	payments := compute(debt)
	c.entries.Add(key, slices.Clone(payments))

	return payments
}

// Purge drops every cached schedule
func (c *Cache) Purge() {
	if c.entries != nil {
		c.entries.Purge()
	}
}

// Len returns the number of cached schedules
func (c *Cache) Len() int {
	if c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Stats returns usage counters
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries:  c.Len(),
		Capacity: c.capacity,
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}
