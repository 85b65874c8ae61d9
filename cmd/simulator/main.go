package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"building_simulator/internal/api"
	"building_simulator/internal/config"
	"building_simulator/internal/model"
	"building_simulator/internal/simulator"
	"building_simulator/internal/telemetry"
	"building_simulator/internal/ws"
)

func main() {
	cfg := config.Load()

	equipment := flag.String("equipment", cfg.Equipment, "equipment type: ahu, vav0-5, chiller, meter")
	deviceName := flag.String("device-name", cfg.DeviceName, "human-readable device name")
	instance := flag.Int("instance", cfg.Instance, "device instance number (point naming only)")
	addr := flag.String("addr", cfg.Addr, "listen address")
	flag.Parse()

	eq, err := model.ParseEquipment(*equipment)
	if err != nil {
		log.Fatalf("Invalid equipment selector: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	name := *deviceName
	if name == "" {
		name = fmt.Sprintf("%s-%d", eq, *instance)
	}

	hub := ws.NewHub()
	callbacks := simulator.Fanout{
		ws.NewBridge(hub),
		&statusLogger{equipment: eq},
	}

	var pub *telemetry.Publisher
	if cfg.MQTTBroker != "" {
		pub, err = telemetry.NewPublisher(cfg.MQTTBroker, name, cfg.MQTTTopicPrefix, eq.String())
		if err != nil {
			log.Printf("Telemetry disabled: %v", err)
		} else {
			defer pub.Close()
			callbacks = append(callbacks, pub)
		}
	}

	engine := simulator.New(simulator.Config{
		Equipment:  eq,
		DeviceName: name,
		Instance:   *instance,
		Location:   loc,
	}, callbacks)

	engine.Init(time.Now())
	engine.Start()
	log.Printf("Initialized %s (%s) with %d points", name, eq, len(engine.Points()))

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(hub, engine))
	mux.Handle("/", api.NewRouter(engine, os.Stdout))

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

// statusLogger writes one status line per tick for the local equipment, in
// the style of a BAS controller console.
type statusLogger struct {
	equipment model.Equipment
}

func (l *statusLogger) OnState(_ simulator.State) {}

func (l *statusLogger) OnPoints(pts []model.Point) {
	get := func(suffix string) float64 {
		for _, p := range pts {
			if strings.HasSuffix(p.Name, suffix) {
				return p.Value
			}
		}
		return 0
	}

	switch l.equipment.Type {
	case model.EquipmentAHU:
		log.Printf("AHU: Supply=%.1f°F, Return=%.1f°F, Fan=%.0f%%, Cooling=%.0f%%",
			get("Supply-Air-Temp"), get("Return-Air-Temp"), get("Fan-Speed-Cmd"), get("Cooling-Valve"))
	case model.EquipmentVAV:
		log.Printf("VAV%d: Zone=%.1f°F, SP=%.1f°F, Damper=%.0f%%, Flow=%.0fCFM",
			l.equipment.Zone, get("Zone-Temp"), get("Zone-Temp-SP"), get("Damper-Pos"), get("Airflow"))
	case model.EquipmentChiller:
		log.Printf("Chiller: Supply=%.1f°F, Return=%.1f°F",
			get("CHW-Supply-Temp"), get("CHW-Return-Temp"))
	case model.EquipmentMeter:
		log.Printf("Meter: Power=%.1fkW, Energy=%.1fkWh",
			get("Total-Power"), get("Total-Energy"))
	}
}
