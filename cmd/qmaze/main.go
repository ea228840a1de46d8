package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/audit"
	"github.com/Rallt/Quantum-maze/pkg/config"
	"github.com/Rallt/Quantum-maze/pkg/encryption"
	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/metrics"
	"github.com/Rallt/Quantum-maze/pkg/rotation"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	size := flag.Int("size", 0, "Maze lattice size (overrides config)")
	level := flag.String("level", "", "Security level: low, medium, high (overrides config)")
	window := flag.Int("window", 0, "Key window duration in seconds (overrides config)")
	density := flag.Float64("density", -1, "Extra edge density (overrides config)")
	seedHex := flag.String("seed-hex", "", "Hex-encoded initial seed material (32+ bytes); random when empty")
	secretHex := flag.String("secret-hex", "", "Hex-encoded master secret (overrides config)")
	message := flag.String("message", "the maze keeps the secret", "Demo message to seal under the derived key")
	compress := flag.Bool("compress", false, "Also seal the message snappy-compressed via a counter-nonce engine")
	rotations := flag.Int("rotations", 2, "Number of demo rotations to perform")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(*logLevel))
	logging.SetDefaultLogger(logger)

	cfg := loadConfig(*configPath)
	if *size > 0 {
		cfg.MazeSize = *size
	}
	if *level != "" {
		cfg.SecurityLevel = *level
	}
	if *window > 0 {
		cfg.TimeWindowSeconds = *window
	}
	if *density >= 0 {
		cfg.ExtraEdgeDensity = *density
	}
	if *secretHex != "" {
		cfg.MasterSecretHex = *secretHex
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	schedCfg, err := cfg.SchedulerConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	master, err := cfg.MasterSecret()
	if err != nil {
		log.Fatalf("Invalid master secret: %v", err)
	}

	seed, err := resolveSeed(*seedHex)
	if err != nil {
		log.Fatalf("Invalid seed: %v", err)
	}

	fmt.Printf("🌀 Quantum Maze Key Lifecycle Engine\n")
	fmt.Printf("====================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Maze Size: %dx%dx%d\n", cfg.MazeSize, cfg.MazeSize, cfg.MazeSize)
	fmt.Printf("  Security Level: %s\n", cfg.SecurityLevel)
	fmt.Printf("  Window: %ds\n", cfg.TimeWindowSeconds)
	fmt.Printf("  Extra Edge Density: %.2f\n", cfg.ExtraEdgeDensity)
	fmt.Printf("  Initial Seed: %s\n\n", seed)

	trail := audit.NewAuditLogger(256)
	engine, err := rotation.New(schedCfg,
		rotation.WithLogger(logger),
		rotation.WithMetrics(metrics.DefaultRegistry()),
		rotation.WithAudit(trail),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Terminate()

	now := time.Now()
	fmt.Printf("🔑 Starting engine...\n")
	start := time.Now()
	if err := engine.Start(seed, master, now); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	printStatus(engine, time.Since(start))

	fmt.Printf("\n🔒 Sealing demo message (%d bytes)...\n", len(*message))
	frame, err := engine.Seal([]byte(*message), []byte("qmaze-demo"))
	if err != nil {
		log.Fatalf("Seal failed: %v", err)
	}
	fmt.Printf("  Frame: %d bytes (nonce + ciphertext + tag)\n", len(frame))

	opened, err := engine.OpenSealed(frame, []byte("qmaze-demo"))
	if err != nil {
		log.Fatalf("Open failed: %v", err)
	}
	fmt.Printf("  ✅ Round trip: %q\n", string(opened))

	if *compress {
		if err := demoCompressed(engine, *message); err != nil {
			log.Fatalf("Compressed seal failed: %v", err)
		}
	}

	for i := 1; i <= *rotations; i++ {
		fmt.Printf("\n🔄 Rotation %d...\n", i)
		now = now.Add(schedCfg.WindowDuration + time.Second)
		start = time.Now()
		rotated, err := engine.Tick(now)
		if err != nil {
			log.Fatalf("Rotation failed: %v", err)
		}
		if !rotated {
			log.Fatalf("Rotation %d did not trigger", i)
		}
		printStatus(engine, time.Since(start))

		// Frames sealed under the retired key are gone for good.
		if _, err := engine.OpenSealed(frame, []byte("qmaze-demo")); err != nil {
			fmt.Printf("  🔥 Pre-rotation frame now unreadable: %v\n", err)
		}
		frame, err = engine.Seal([]byte(*message), []byte("qmaze-demo"))
		if err != nil {
			log.Fatalf("Seal failed: %v", err)
		}
	}

	fmt.Printf("\n📋 Audit trail (%d events):\n", trail.GetEventCount())
	for _, e := range trail.GetRecentEvents(10) {
		fmt.Printf("  window=%d action=%-9s resource=%-6s status=%s\n",
			e.WindowIndex, e.Action, e.ResourceType, e.Status)
	}
}

// demoCompressed seals the message compress-then-encrypt under the
// window's current key, using a counter-nonce engine instead of the
// scheduler's random-nonce path.
func demoCompressed(sched *rotation.Scheduler, message string) error {
	key, err := sched.CurrentKey()
	if err != nil {
		return err
	}
	enc, err := encryption.NewEngine(key.Bytes())
	if err != nil {
		return err
	}

	// Repeat the message so snappy has something to chew on.
	plaintext := []byte(strings.Repeat(message+" ", 16))
	frame := enc.SealCompressed(plaintext, []byte("qmaze-demo"))
	fmt.Printf("\n🗜️  Compressed seal: %d plaintext bytes -> %d frame bytes\n", len(plaintext), len(frame))

	opened, err := enc.OpenCompressed(frame, []byte("qmaze-demo"))
	if err != nil {
		return err
	}
	if string(opened) != string(plaintext) {
		return fmt.Errorf("compressed round trip mismatch")
	}
	fmt.Printf("  ✅ Compressed round trip intact\n")
	return nil
}

func loadConfig(path string) *config.Config {
	if path == "" {
		cfg := config.Default()
		if cfg.MasterSecretHex == "" {
			// Demo runs without a config file get an ephemeral secret.
			raw := make([]byte, 32)
			if _, err := rand.Read(raw); err != nil {
				log.Fatalf("Failed to generate master secret: %v", err)
			}
			cfg.MasterSecretHex = hex.EncodeToString(raw)
		}
		return &cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func resolveSeed(seedHex string) (maze.Seed, error) {
	if seedHex == "" {
		return maze.RandomSeed()
	}
	raw, err := hex.DecodeString(seedHex)
	if err != nil {
		return maze.Seed{}, fmt.Errorf("invalid hex: %w", err)
	}
	return maze.NewSeed(raw)
}

func printStatus(engine *rotation.Scheduler, elapsed time.Duration) {
	st := engine.Status()
	key, err := engine.CurrentKey()
	if err != nil {
		log.Fatalf("CurrentKey failed: %v", err)
	}
	fmt.Printf("  Window: %d  State: %s  (%v)\n", st.Window.Index, st.State, elapsed)
	fmt.Printf("  Maze: %s  Path: %d moves, %d turns, %d attempt(s)\n",
		st.MazeFingerprint, st.PathLength, st.DirectionChanges, st.Attempts)
	fmt.Printf("  Key: %s\n", kdf.KeyFingerprint(key))
}
