// Package catalog holds the static definitions of every selectable queue and
// metric. Nothing here is mutable after construction.
package catalog

import (
	"slices"
	"strings"

	"github.com/ytget/prodbar/internal/model"
)

// Metric groups
const (
	GroupRealtime    = "Real-time: Queue Observations"
	GroupPerformance = "Performance: Aggregated"
)

// Default metric selection
var DefaultMetrics = []model.MetricID{"waiting", "avgWait", "aht", "abandonPct"}

var queues = []model.QueueID{
	"Support",
	"Sales",
	"Service",
	"VIP",
	"Overflow",
	"Billing",
	"Technical",
	"Spanish Support",
	"After Hours",
	"New Accounts",
}

// Metric catalog, modeled on contact-center queue observation and
// performance statistics.
var metrics = []model.MetricDescriptor{
	{ID: "waiting", Label: "Waiting (oWaiting)", Header: "WAITING", Group: GroupRealtime, ValueKey: "oWaiting", Format: model.FormatCount},
	{ID: "interacting", Label: "Interacting (oInteracting)", Header: "INTERACT", Group: GroupRealtime, ValueKey: "oInteracting", Format: model.FormatCount},
	{ID: "onQueueUsers", Label: "On-Queue Agents (oOnQueueUsers)", Header: "ON Q AGENTS", Group: GroupRealtime, ValueKey: "oOnQueueUsers", Format: model.FormatCount},
	{ID: "offQueueUsers", Label: "Off-Queue Agents (oOffQueueUsers)", Header: "OFF Q AGENTS", Group: GroupRealtime, ValueKey: "oOffQueueUsers", Format: model.FormatCount},
	{ID: "longestWaiting", Label: "Longest Waiting (oLongestWaiting)", Header: "LONGEST", Group: GroupRealtime, ValueKey: "oLongestWaiting", Format: model.FormatDuration},

	{ID: "asa", Label: "Avg Speed of Answer (ASA)", Header: "ASA", Group: GroupPerformance, ValueKey: "asa", Format: model.FormatDuration},
	{ID: "aht", Label: "Avg Handle Time (AHT)", Header: "AHT", Group: GroupPerformance, ValueKey: "aht", Format: model.FormatDuration},
	{ID: "avgWait", Label: "Avg Wait", Header: "AVG WAIT", Group: GroupPerformance, ValueKey: "avgWait", Format: model.FormatDuration},
	{ID: "answerPct", Label: "Answer %", Header: "ANSWER %", Group: GroupPerformance, ValueKey: "answerPercent", Format: model.FormatPercent},
	{ID: "abandonPct", Label: "Abandon %", Header: "ABANDON %", Group: GroupPerformance, ValueKey: "abandonPercent", Format: model.FormatPercent},
	{ID: "serviceLevelPct", Label: "Service Level %", Header: "SL %", Group: GroupPerformance, ValueKey: "serviceLevelPercent", Format: model.FormatPercent},
}

// MetricGroup is a catalog group with its metrics in catalog order
type MetricGroup struct {
	Name    string
	Metrics []model.MetricDescriptor
}

// Catalog exposes the queue and metric definitions
type Catalog struct {
	queues  []model.QueueID
	metrics []model.MetricDescriptor
	byID    map[model.MetricID]model.MetricDescriptor
}

// New returns the built-in catalog
func New() *Catalog {
	return NewWith(queues, metrics)
}

// NewWith builds a catalog from explicit definitions
func NewWith(queueIDs []model.QueueID, descriptors []model.MetricDescriptor) *Catalog {
	c := &Catalog{
		queues:  slices.Clone(queueIDs),
		metrics: slices.Clone(descriptors),
		byID:    make(map[model.MetricID]model.MetricDescriptor, len(descriptors)),
	}
	for _, m := range c.metrics {
		c.byID[m.ID] = m
	}
	return c
}

// Queues returns every queue in catalog order
func (c *Catalog) Queues() []model.QueueID {
	return slices.Clone(c.queues)
}

// Metrics returns every metric descriptor in catalog order
func (c *Catalog) Metrics() []model.MetricDescriptor {
	return slices.Clone(c.metrics)
}

// FindMetric looks up a metric by id
func (c *Catalog) FindMetric(id model.MetricID) (model.MetricDescriptor, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// HasQueue reports whether id is a catalog queue
func (c *Catalog) HasQueue(id model.QueueID) bool {
	return slices.Contains(c.queues, id)
}

// HasMetric reports whether id is a catalog metric
func (c *Catalog) HasMetric(id model.MetricID) bool {
	_, ok := c.byID[id]
	return ok
}

// DefaultSelection is the first MaxQueues queues with the default metrics
func (c *Catalog) DefaultSelection() model.SelectionState {
	n := min(len(c.queues), model.MaxQueues)

	defaults := make([]model.MetricID, 0, model.MaxMetrics)
	for _, id := range DefaultMetrics {
		if c.HasMetric(id) && len(defaults) < model.MaxMetrics {
			defaults = append(defaults, id)
		}
	}
	if len(defaults) == 0 && len(c.metrics) > 0 {
		defaults = append(defaults, c.metrics[0].ID)
	}

	return model.SelectionState{
		Queues:  slices.Clone(c.queues[:n]),
		Metrics: defaults,
	}
}

// Groups returns metrics grouped by Group, groups in first-seen order
func (c *Catalog) Groups() []MetricGroup {
	var groups []MetricGroup
	index := make(map[string]int)

	for _, m := range c.metrics {
		i, ok := index[m.Group]
		if !ok {
			i = len(groups)
			index[m.Group] = i
			groups = append(groups, MetricGroup{Name: m.Group})
		}
		groups[i].Metrics = append(groups[i].Metrics, m)
	}
	return groups
}

// SearchQueues returns catalog queues whose name contains filter, ignoring case
func (c *Catalog) SearchQueues(filter string) []model.QueueID {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return c.Queues()
	}

	var found []model.QueueID
	for _, q := range c.queues {
		if strings.Contains(strings.ToLower(string(q)), needle) {
			found = append(found, q)
		}
	}
	return found
}
