package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/host"
)

// footerRows is the number of rows below the game screen: status and help.
const footerRows = 2

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model running a hot-reloadable unit.
// The host is only touched from Update, so one program drives it at a time.
type Model struct {
	host     *host.Host
	backend  *Backend
	renderer *lipgloss.Renderer
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	status   string
	failed   bool // status holds an error
	quitting bool
}

// NewModel creates a model driving h. A nil renderer uses the lipgloss
// default; SSH sessions pass their own.
func NewModel(h *host.Host, cfg core.RuntimeConfig, r *lipgloss.Renderer, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.Default()
	}
	hm := help.New()
	hm.ShowAll = false

	return Model{
		host:     h,
		backend:  NewBackend(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1), cfg.TickRate),
		renderer: r,
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     hm,
		status:   "unit " + h.Unit().Name(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.backend.PointAtCell(msg.X, msg.Y)
		if b := MouseButton(msg); b != core.ButtonNone {
			m.backend.Press(b)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.backend.Resize(msg.Width, max(msg.Height-footerRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Game buttons are held until the next
// frame consumes them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if err := m.host.Reload(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("reloaded " + m.host.Unit().Name())
		}
		return m, nil

	case key.Matches(msg, m.keys.Shot):
		if path, err := m.saveScreenshot(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("screenshot " + path)
		}
		return m, nil
	}

	if dx, dy, ok := m.keys.Direction(msg); ok {
		m.backend.MovePointer(dx, dy)
		return m, nil
	}
	if b := m.keys.Button(msg); b != core.ButtonNone {
		m.backend.Press(b)
	}
	return m, nil
}

// handleTick runs one frame: pick up a rebuilt unit, run it, present.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	reloaded, err := m.host.PollAndMaybeReload()
	switch {
	case err != nil:
		m.setError(err)
	case reloaded:
		m.setStatus(fmt.Sprintf("reloaded %s (%d)", m.host.Unit().Name(), m.host.Reloads()))
	}

	faults := m.host.Faults()
	m.backend.Advance(now)
	m.host.InvokeFrame(m.backend)
	m.backend.Present()
	if m.host.Faults() > faults {
		m.setError(fmt.Errorf("frame fault: %s", m.host.LastFault()))
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".comfywars", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.host.Unit().Name(), timestamp))
	return path, os.WriteFile(path, []byte(m.backend.Screen().String()), 0o600)
}

// View renders the last presented frame with a status and help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.backend.Screen(), m.renderer))
	b.WriteString("\n")

	style := statusStyle
	if m.failed {
		style = errorStyle
	}
	status := m.status
	if w := m.config.ScreenW; w > 0 && len(status) > w {
		status = status[:w]
	}
	b.WriteString(m.style(style).Render(status))
	b.WriteString("\n")
	b.WriteString(m.style(helpStyle).Render(m.help.View(m.keys)))
	return b.String()
}

// style binds a package style to the session's renderer.
func (m Model) style(s lipgloss.Style) lipgloss.Style {
	if m.renderer == nil {
		return s
	}
	return m.renderer.NewStyle().Inherit(s)
}

// Backend returns the model's backend.
func (m Model) Backend() *Backend {
	return m.backend
}

// Status returns the status line and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.failed
}

// Run starts the Bubble Tea program for h on the local terminal.
func Run(h *host.Host, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(h, cfg, nil, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse moves the pointer
	)

	_, err := p.Run()
	return err
}
