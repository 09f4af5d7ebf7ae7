// Package queue decouples location-sample persistence from the realtime
// broadcast path. The hub enqueues without blocking; workers drain into the
// location service at store speed.
package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fleetpulse/tracking-api/internal/api/metrics"
	"github.com/fleetpulse/tracking-api/internal/core/domain"
	"github.com/fleetpulse/tracking-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
)

// Dispatcher routes location samples to a fixed set of workers using
// consistent hashing on the agent id, so one agent's samples are persisted
// in arrival order.
type Dispatcher struct {
	workers []chan domain.LocationSample
	service ports.LocationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers and
// buffer slots per worker. Non-positive values fall back to defaults.
func NewDispatcher(numWorkers, buffer int, service ports.LocationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.LocationSample, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LocationSample, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// TryEnqueue hands a sample to the worker responsible for its agent. It
// never blocks: when the worker's buffer is full the sample is discarded and
// false is returned. The caller decides whether that is worth logging.
func (d *Dispatcher) TryEnqueue(sample domain.LocationSample) bool {
	i := d.shardIndex(sample.AgentID)
	select {
	case d.workers[i] <- sample:
		metrics.QueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
		return true
	default:
		return false
	}
}

// shardIndex maps an agent id deterministically to a worker index.
func (d *Dispatcher) shardIndex(agentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(agentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LocationSample) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-ch:
			if !ok {
				return
			}
			metrics.QueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Record(ctx, sample); err != nil {
				// Persistence is best-effort: log and move on.
				d.log.Error().Err(err).
					Str("agent_id", sample.AgentID).
					Str("order_id", sample.OrderID).
					Int("worker_id", id).
					Msg("failed to persist location sample")
			}
		}
	}
}
