// Command door-monitor watches a door reed switch on GPIO and keeps the
// door's status and daily opening statistics synced to the remote store.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sourceclub/door-monitor/internal/config"
	"github.com/sourceclub/door-monitor/internal/door"
	"github.com/sourceclub/door-monitor/internal/gpio"
	"github.com/sourceclub/door-monitor/internal/mqtt"
	"github.com/sourceclub/door-monitor/internal/remote"
	"github.com/sourceclub/door-monitor/internal/state"
	"github.com/sourceclub/door-monitor/internal/status"
	"github.com/sourceclub/door-monitor/internal/web"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $CONFIG_PATH or ./config.yaml)")
	printState := flag.Bool("print-state", false, "Print current persisted door state and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if *printState {
		if err := runPrintState(cfg); err != nil {
			log.Fatalf("fatal: %v", err)
		}
		return
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func runPrintState(cfg *config.Config) error {
	store := state.NewFileStore(cfg.DataDir)
	st, err := store.ReadStatus()
	if errors.Is(err, state.ErrNotInitialized) {
		fmt.Println("door: no state recorded yet")
		return nil
	}
	if err != nil {
		return err
	}
	name := "CLOSED"
	if st.IsOpen {
		name = "OPEN"
	}
	fmt.Printf("door: %s (lastOpened=%d lastClosed=%d)\n", name, st.LastOpened, st.LastClosed)
	return nil
}

func run(cfg *config.Config) error {
	loc, err := cfg.Rollover.Location()
	if err != nil {
		return err
	}

	store := state.NewFileStore(cfg.DataDir)

	rem, err := remote.NewFirestoreStore(context.Background(),
		cfg.Remote.ProjectID, cfg.Remote.CredentialsFile, cfg.Remote.Collection)
	if err != nil {
		return fmt.Errorf("init remote store: %w", err)
	}
	defer rem.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		Pin:        cfg.GPIO.Pin,
		DebounceMs: cfg.GPIO.Debounce().Milliseconds(),
		Timezone:   cfg.Rollover.Timezone,
		RolloverAt: cfg.Rollover.At(),
		Broker:     cfg.MQTT.Broker,
		Collection: cfg.Remote.Collection,
		HTTPAddr:   cfg.HTTP.Addr,
	})

	mon := door.NewMonitor(store, rem, loc, time.Now)
	mon.SetTracker(tracker)

	var pub *mqtt.RealPublisher
	if cfg.MQTT.Broker != "" {
		pub, err = mqtt.NewRealPublisher(cfg.MQTT.Broker)
		if err != nil {
			// Fan-out is best-effort; run without it rather than die.
			log.Printf("mqtt disabled: %v", err)
			pub = nil
		} else {
			defer pub.Close()
			mon.SetPublisher(pub)
		}
	}

	// Local state must be durable before anything else runs.
	if err := mon.Bootstrap(); err != nil {
		return err
	}

	watcher, err := gpio.NewRealWatcher(cfg.GPIO.Chip, cfg.GPIO.Pin, cfg.GPIO.ActiveLow, cfg.GPIO.Debounce())
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer watcher.Close()

	// Daily rollover, pinned to the configured timezone so the trigger
	// tracks local midnight across DST changes.
	sched := cron.New(cron.WithLocation(loc))
	if _, err := sched.AddFunc(cfg.Rollover.CronSpec(), mon.Rollover); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	if pub != nil {
		snap := tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := pub.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	log.Printf("started: pin=%d debounce=%v rollover=%s %s data=%s",
		cfg.GPIO.Pin, cfg.GPIO.Debounce(), cfg.Rollover.At(), cfg.Rollover.Timezone, cfg.DataDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Avoid typed-nil interfaces when MQTT is disabled.
	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if pub != nil {
		publisher = pub
		mqttStatus = pub
	}

	return runLoop(mon, watcher.Edges(), publisher, mqttStatus, tracker, sigCh)
}

func runLoop(mon *door.Monitor, edges <-chan gpio.Edge, pub mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if pub != nil {
				signalName := "UNKNOWN"
				if s == syscall.SIGINT {
					signalName = "SIGINT"
				} else if s == syscall.SIGTERM {
					signalName = "SIGTERM"
				}
				event := mqtt.SystemEvent{
					Timestamp: time.Now(),
					Event:     "SHUTDOWN",
					Reason:    signalName,
					Retained:  true,
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					snap := tracker.Snapshot()
					event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
				}
				if err := pub.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case e, ok := <-edges:
			if !ok {
				return errors.New("edge source closed")
			}
			mon.HandleEdge(e.Open, e.Time)
			if tracker != nil && mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}
	}
}
