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

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rallt/Quantum-maze/pkg/audit"
	"github.com/Rallt/Quantum-maze/pkg/config"
	"github.com/Rallt/Quantum-maze/pkg/logging"
	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/rotation"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	auditBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	rotatedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginLeft(2)
)

type tickMsg time.Time

type model struct {
	engine    *rotation.Scheduler
	trail     *audit.AuditLogger
	bar       progress.Model
	rotations int
	lastEvent string
	err       error
}

func newModel(engine *rotation.Scheduler, trail *audit.AuditLogger) model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return model{engine: engine, trail: trail, bar: bar}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			// Force a rotation by ticking past the window end.
			if w, err := m.engine.Window(); err == nil {
				if rotated, err := m.engine.Tick(w.End.Add(time.Second)); err != nil {
					m.err = err
				} else if rotated {
					m.rotations++
					m.lastEvent = "manual rotation"
				}
			}
			return m, nil
		}

	case tickMsg:
		rotated, err := m.engine.Tick(time.Time(msg))
		if err != nil {
			m.err = err
		} else if rotated {
			m.rotations++
			m.lastEvent = "window expired"
		}
		return m, tick()

	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	st := m.engine.Status()

	var b strings.Builder
	b.WriteString(titleStyle.Render("🌀 Quantum Maze — Key Lifecycle Watch"))
	b.WriteString("\n\n")

	keyFP := st.KeyFingerprint
	if keyFP == "" {
		keyFP = "--------"
	}

	elapsed := 0.0
	if w, err := m.engine.Window(); err == nil {
		total := w.End.Sub(w.Start)
		if total > 0 {
			elapsed = 1 - float64(w.Remaining(time.Now()))/float64(total)
		}
	}

	stats := fmt.Sprintf("%s %s\n%s %s\n%s %d\n%s %s\n%s %d moves, %d turns\n%s %d\n\n%s\n",
		labelStyle.Render("State:   "), valueStyle.Render(st.State.String()),
		labelStyle.Render("Engine:  "), valueStyle.Render(st.InstanceID[:8]),
		labelStyle.Render("Window:  "), st.Window.Index,
		labelStyle.Render("Key:     "), valueStyle.Render(keyFP),
		labelStyle.Render("Path:    "), st.PathLength, st.DirectionChanges,
		labelStyle.Render("Rotations:"), m.rotations,
		m.bar.ViewAs(elapsed),
	)

	var auditLines []string
	for _, e := range m.trail.GetRecentEvents(6) {
		auditLines = append(auditLines, fmt.Sprintf("w%-3d %-9s %-6s %s",
			e.WindowIndex, e.Action, e.ResourceType, e.Status))
	}
	if len(auditLines) == 0 {
		auditLines = append(auditLines, "no events yet")
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(stats),
		auditBoxStyle.Render(strings.Join(auditLines, "\n")),
	))
	b.WriteString("\n")

	if m.lastEvent != "" {
		b.WriteString(rotatedStyle.Render("  ⟳ last rotation: " + m.lastEvent))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(rotatedStyle.Render("  error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("r: rotate now • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	window := flag.Int("window", 15, "Key window duration in seconds")
	flag.Parse()

	var cfg *config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	} else {
		def := config.Default()
		def.TimeWindowSeconds = *window
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			log.Fatalf("Failed to generate master secret: %v", err)
		}
		def.MasterSecretHex = hex.EncodeToString(raw)
		cfg = &def
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
	seed, err := maze.RandomSeed()
	if err != nil {
		log.Fatalf("Failed to create seed: %v", err)
	}

	trail := audit.NewAuditLogger(256)
	engine, err := rotation.New(schedCfg,
		rotation.WithLogger(logging.NewNopLogger()),
		rotation.WithAudit(trail),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Terminate()

	if err := engine.Start(seed, master, time.Now()); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	p := tea.NewProgram(newModel(engine, trail))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}
