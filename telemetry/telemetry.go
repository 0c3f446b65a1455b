// Package telemetry turns per-frame protocol statistics into MQTT messages, the way
// cmd/mqttradio turns radio packets into MQTT messages: JSON-encode, publish, and
// de-duplicate identical consecutive payloads via an fnv hash instead of a broker round
// trip.
package telemetry

// FrameStats is one frame's worth of dongle-side slot accounting (spec.md §4.5 item 5).
type FrameStats struct {
	Successes int
	Misses    int
}

// Publisher receives one FrameStats per completed frame. Implementations must not block
// the caller for long: RunDongle calls Publish synchronously between frames.
type Publisher interface {
	Publish(stats FrameStats)
}

// NopPublisher discards every FrameStats it receives. It is the default when no telemetry
// sink is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(FrameStats) {}

var _ Publisher = NopPublisher{}
