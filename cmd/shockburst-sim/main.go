// Command shockburst-sim runs the full dongle/keyboard-half protocol stack as ordinary
// goroutines on a host machine, using package simradio in place of real nRF52840 silicon.
// It exists for development and demonstration; a real board brings up package nrfradio
// against the actual RADIO peripheral instead (out of scope for this module).
package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/korken89/crkbd-shockburst/clock"
	"github.com/korken89/crkbd-shockburst/hop"
	"github.com/korken89/crkbd-shockburst/nrfradio"
	"github.com/korken89/crkbd-shockburst/protocol"
	"github.com/korken89/crkbd-shockburst/simradio"
	"github.com/korken89/crkbd-shockburst/telemetry"
)

type LogPrintf func(format string, v ...interface{})

// Config is this binary's TOML configuration, in the same Debug/sub-section shape
// cmd/mqttradio's Config takes.
type Config struct {
	Debug            bool
	MaxMissedBeacons int `toml:"max_missed_beacons"`
	RunFor           string `toml:"run_for"`
	Telemetry        TelemetryConfig
}

// TelemetryConfig mirrors cmd/mqttradio's MqttConfig; Enabled defaults to false, running
// with telemetry.NopPublisher.
type TelemetryConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
}

func main() {
	help := flag.Bool("help", false, "print usage help")
	configFile := flag.String("config", "shockburst-sim.toml", "path to config file")
	flag.Parse()

	if *help {
		fmt.Fprintf(os.Stderr, "Usage: %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  simulates one dongle and two keyboard halves over an in-process radio medium\n")
		os.Exit(1)
	}

	config := &Config{MaxMissedBeacons: 0, RunFor: "0"}
	if raw, err := ioutil.ReadFile(*configFile); err == nil {
		if err := toml.Unmarshal(raw, config); err != nil {
			fmt.Fprintf(os.Stderr, "cannot parse config file: %s\n", err)
			os.Exit(1)
		}
	}

	logger := LogPrintf(func(format string, v ...interface{}) {})
	if config.Debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		logger = log.Printf
	}
	nrfradio.LogPrintf = logger
	protocol.LogPrintf = logger
	telemetry.LogPrintf = logger

	var pub telemetry.Publisher = telemetry.NopPublisher{}
	if config.Telemetry.Enabled {
		mq, err := telemetry.NewMQTTPublisher(telemetry.Config{
			Host:     config.Telemetry.Host,
			Port:     config.Telemetry.Port,
			User:     config.Telemetry.User,
			Password: config.Telemetry.Password,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to MQTT broker: %s\n", err)
			os.Exit(2)
		}
		pub = mq
	}

	runDuration, err := time.ParseDuration(config.RunFor)
	if err != nil {
		runDuration = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()
	if runDuration > 0 {
		go func() {
			time.Sleep(runDuration)
			cancel()
		}()
	}

	medium := simradio.NewMedium()
	clk := clock.NewRealClock()

	log.Printf("starting dongle and two keyboard halves")

	errc := make(chan error, 3)
	go func() {
		if err := clock.LockRealtime(); err != nil {
			log.Printf("dongle: could not elevate scheduling priority: %v", err)
		}
		drv := nrfradio.Init(simradio.New(medium, clk))
		errc <- protocol.RunDongle(ctx, drv, clk, hop.New(), pub)
	}()
	go func() {
		if err := clock.LockRealtime(); err != nil {
			log.Printf("right half: could not elevate scheduling priority: %v", err)
		}
		drv := nrfradio.Init(simradio.New(medium, clk))
		keys := protocol.NewStaticKeyState([]byte{0})
		errc <- protocol.RunKeyboardHalf(ctx, drv, clk, hop.New(), protocol.RoleRight, keys, config.MaxMissedBeacons)
	}()
	go func() {
		if err := clock.LockRealtime(); err != nil {
			log.Printf("left half: could not elevate scheduling priority: %v", err)
		}
		drv := nrfradio.Init(simradio.New(medium, clk))
		keys := protocol.NewStaticKeyState([]byte{0})
		errc <- protocol.RunKeyboardHalf(ctx, drv, clk, hop.New(), protocol.RoleLeft, keys, config.MaxMissedBeacons)
	}()

	for i := 0; i < 3; i++ {
		if err := <-errc; err != nil && ctx.Err() == nil {
			log.Printf("peer exited with error: %v", err)
		}
	}
	log.Printf("shutting down")
}
