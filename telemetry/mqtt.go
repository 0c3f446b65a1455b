package telemetry

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// LogPrintf is called with connection and publish diagnostics when non-nil.
var LogPrintf func(format string, v ...interface{})

func logf(format string, v ...interface{}) {
	if LogPrintf != nil {
		LogPrintf(format, v...)
	}
}

// Config describes how to reach the MQTT broker telemetry is published to, in the same
// shape cmd/mqttradio's MqttConfig takes from its TOML file.
type Config struct {
	Host  string
	Port  int
	User  string
	Password string
	// Topic is the MQTT topic FrameStats are published to. Defaults to
	// "shockburst/dongle/frame" if empty.
	Topic string
}

func (c Config) topic() string {
	if c.Topic != "" {
		return c.Topic
	}
	return "shockburst/dongle/frame"
}

// MQTTPublisher publishes FrameStats as JSON to an MQTT broker, skipping a republish when
// the payload is identical to the last one sent (a frame with no change in
// successes/misses is not worth a new broker round trip).
type MQTTPublisher struct {
	conn  mqtt.Client
	topic string

	mu       sync.Mutex
	lastHash uint64
	haveLast bool
}

// NewMQTTPublisher connects to the broker described by cfg and returns a Publisher backed
// by it. The connection persists and reconnects on its own, per paho's default behavior.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.ClientID = "shockburst-dongle"
	opts.Username = cfg.User
	opts.Password = cfg.Password

	conn := mqtt.NewClient(opts)
	token := conn.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("telemetry: timed out connecting to %s:%d", cfg.Host, cfg.Port)
	}
	if err := token.Error(); err != nil {
		return nil, err
	}

	logf("telemetry: MQTT connected to %s:%d", cfg.Host, cfg.Port)
	return &MQTTPublisher{conn: conn, topic: cfg.topic()}, nil
}

// Publish implements Publisher.
func (m *MQTTPublisher) Publish(stats FrameStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		logf("telemetry: marshal error: %v", err)
		return
	}

	hash := hashMessage(m.topic, string(payload))

	m.mu.Lock()
	dup := m.haveLast && m.lastHash == hash
	m.lastHash = hash
	m.haveLast = true
	m.mu.Unlock()

	if dup {
		return
	}

	m.conn.Publish(m.topic, 1, false, payload)
}

func hashMessage(s ...string) uint64 {
	key := strings.Join(s, "ǂ")
	h := fnv.New64()
	h.Write([]byte(key))
	return h.Sum64()
}

var _ Publisher = (*MQTTPublisher)(nil)
