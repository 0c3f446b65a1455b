package telemetry

import "testing"

func TestNopPublisherDiscards(t *testing.T) {
	var p NopPublisher
	p.Publish(FrameStats{Successes: 10, Misses: 3}) // must not panic
}

func TestHashMessageStableAndSensitive(t *testing.T) {
	a := hashMessage("topic", `{"Successes":1,"Misses":0}`)
	b := hashMessage("topic", `{"Successes":1,"Misses":0}`)
	if a != b {
		t.Fatal("hashMessage is not deterministic for identical input")
	}

	c := hashMessage("topic", `{"Successes":2,"Misses":0}`)
	if a == c {
		t.Fatal("hashMessage collided for different payloads")
	}
}

func TestConfigDefaultTopic(t *testing.T) {
	var c Config
	if c.topic() != "shockburst/dongle/frame" {
		t.Fatalf("default topic = %q, want shockburst/dongle/frame", c.topic())
	}
	c.Topic = "custom/topic"
	if c.topic() != "custom/topic" {
		t.Fatalf("topic = %q, want custom/topic", c.topic())
	}
}
