package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/KirkDiggler/raidhall/internal/telemetry"

// Metrics holds the raid counters. A nil *Metrics records nothing.
type Metrics struct {
	lobbies  metric.Int64Counter
	starts   metric.Int64Counter
	finishes metric.Int64Counter
	actions  metric.Int64Counter
	buffs    metric.Int64Counter
	votes    metric.Int64Counter
}

// New registers the counters on meter, or on the global meter provider when
// meter is nil
func New(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	m := &Metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.lobbies, "raidhall.lobbies.created", "Lobbies created"},
		{&m.starts, "raidhall.raids.started", "Raid instances started"},
		{&m.finishes, "raidhall.raids.finished", "Raid instances finished, by status"},
		{&m.actions, "raidhall.actions", "Player actions processed, by type"},
		{&m.buffs, "raidhall.buffs", "Raid buffs applied, by type"},
		{&m.votes, "raidhall.viewer_votes", "Viewer votes accepted"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	return m, nil
}

func (m *Metrics) LobbyCreated(ctx context.Context, raidID string) {
	if m == nil {
		return
	}
	m.lobbies.Add(ctx, 1, metric.WithAttributes(attribute.String("raid", raidID)))
}

func (m *Metrics) RaidStarted(ctx context.Context, raidID string) {
	if m == nil {
		return
	}
	m.starts.Add(ctx, 1, metric.WithAttributes(attribute.String("raid", raidID)))
}

func (m *Metrics) RaidFinished(ctx context.Context, raidID, status string) {
	if m == nil {
		return
	}
	m.finishes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("raid", raidID),
		attribute.String("status", status),
	))
}

func (m *Metrics) ActionProcessed(ctx context.Context, actionType string) {
	if m == nil {
		return
	}
	m.actions.Add(ctx, 1, metric.WithAttributes(attribute.String("type", actionType)))
}

func (m *Metrics) BuffApplied(ctx context.Context, buffType string) {
	if m == nil {
		return
	}
	m.buffs.Add(ctx, 1, metric.WithAttributes(attribute.String("type", buffType)))
}

func (m *Metrics) VoteAccepted(ctx context.Context) {
	if m == nil {
		return
	}
	m.votes.Add(ctx, 1)
}
