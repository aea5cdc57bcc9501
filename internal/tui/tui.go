// Package tui provides a Bubble Tea terminal user interface for fmmd.
package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fmmd/fmmd/internal/model"
	"github.com/fmmd/fmmd/internal/rename"
	"github.com/fmmd/fmmd/internal/watcher"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxPreviewLines is how many planned renames are listed before the rest
// is summarized.
const maxPreviewLines = 12

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StatePreview
	StateRenaming
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model

	// Scanned audio files and their planned renames
	paths   []string
	preview []rename.Result
	results []rename.Result
	renamer *rename.Renamer
	err     error

	// Rename progress
	processed int32
	total     int32

	// Options
	sanitize  bool
	noClobber bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/music (empty for current directory)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ScanDoneMsg is sent when the directory scan completes.
	ScanDoneMsg struct {
		Paths   []string
		Results []rename.Result
		Err     error
	}

	// PreviewMsg carries recomputed planned renames after an option toggle.
	PreviewMsg struct {
		Results []rename.Result
	}

	// RenameDoneMsg is sent when the rename run finishes.
	RenameDoneMsg struct {
		Results []rename.Result
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			switch m.state {
			case StateInput:
				return m, tea.Quit
			case StatePreview:
				m.state = StateInput
				m.paths = nil
				m.preview = nil
				m.textInput.Focus()
			}

		case "enter":
			if m.state == StateInput {
				m.state = StateScanning
				return m, tea.Batch(m.scan(), m.spinner.Tick)
			}
			if m.state == StatePreview && m.renameableCount() > 0 {
				m.state = StateRenaming
				m.renamer = rename.New(m.config(),
					rename.WithOutput(io.Discard),
					rename.WithErrOutput(io.Discard),
				)
				return m, tea.Batch(m.startRename(), m.tickProgress())
			}

		case "s":
			if m.state == StatePreview {
				m.sanitize = !m.sanitize
				return m, m.refreshPreview()
			}

		case "c":
			if m.state == StatePreview {
				m.noClobber = !m.noClobber
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another run
				m.state = StateInput
				m.paths = nil
				m.preview = nil
				m.results = nil
				m.renamer = nil
				m.err = nil
				m.processed = 0
				m.total = 0
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.paths = msg.Paths
			m.preview = msg.Results
			m.state = StatePreview
		}

	case PreviewMsg:
		m.preview = msg.Results

	case RenameDoneMsg:
		m.results = msg.Results
		m.state = StateComplete

	case TickMsg:
		// Update progress from the renamer
		if m.renamer != nil && m.state == StateRenaming {
			processed, total := m.renamer.GetProgress()
			m.processed = processed
			m.total = total

			var percent float64
			if total > 0 {
				percent = float64(processed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) config() rename.Config {
	return rename.Config{
		NoClobber: m.noClobber,
		Naming: model.NameConfig{
			Sanitize: m.sanitize,
		},
	}
}

func (m Model) renameableCount() int {
	count := 0
	for _, res := range m.preview {
		if res.Err == nil && !res.Skipped {
			count++
		}
	}
	return count
}

// scan walks the entered directory, collects audio files, and computes the
// planned renames.
func (m *Model) scan() tea.Cmd {
	return func() tea.Msg {
		root := m.textInput.Value()
		if root == "" {
			root = "."
		}

		var paths []string
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != root && strings.HasPrefix(filepath.Base(path), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if watcher.IsAudioFile(path) {
				paths = append(paths, path)
			}
			return nil
		})

		if len(paths) == 0 {
			return ScanDoneMsg{Err: fmt.Errorf("no audio files found under %s", root)}
		}
		sort.Strings(paths)

		return ScanDoneMsg{Paths: paths, Results: m.planRenames(paths)}
	}
}

// refreshPreview recomputes the planned renames after an option toggle.
func (m *Model) refreshPreview() tea.Cmd {
	return func() tea.Msg {
		return PreviewMsg{Results: m.planRenames(m.paths)}
	}
}

func (m Model) planRenames(paths []string) []rename.Result {
	cfg := m.config()
	cfg.DryRun = true
	previewer := rename.New(cfg,
		rename.WithOutput(io.Discard),
		rename.WithErrOutput(io.Discard),
	)
	return previewer.Run(paths)
}

// startRename runs the actual rename in the background.
func (m *Model) startRename() tea.Cmd {
	return func() tea.Msg {
		return RenameDoneMsg{Results: m.renamer.Run(m.paths)}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 fmmd"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Rename audio files from their embedded metadata"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StatePreview:
		b.WriteString(m.viewPreview())
	case StateRenaming:
		b.WriteString(m.viewRenaming())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Directory to scan:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Naming: %s", model.DefaultFormat)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning for audio files..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Found %d audio file(s), %d can be renamed:", len(m.preview), m.renameableCount())))
	b.WriteString("\n\n")
	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	// Options
	sanitizeCheck := "[ ]"
	if m.sanitize {
		sanitizeCheck = "[×]"
	}
	noClobberCheck := "[ ]"
	if m.noClobber {
		noClobberCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Sanitize filenames (s)\n", sanitizeCheck))
	b.WriteString(fmt.Sprintf("  %s Never overwrite existing files (c)\n", noClobberCheck))

	return b.String()
}

func (m Model) renderPreview() string {
	var b strings.Builder

	shown := m.preview
	if len(shown) > maxPreviewLines {
		shown = shown[:maxPreviewLines]
	}

	for _, res := range shown {
		if res.Err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %s", filepath.Base(res.Path), res.Err)))
		} else {
			b.WriteString(trackStyle.Render(fmt.Sprintf("  ♪ %s", filepath.Base(res.Path))))
			b.WriteString(dimStyle.Render(" -> "))
			b.WriteString(successStyle.Render(filepath.Base(res.NewPath)))
		}
		b.WriteString("\n")
	}

	if len(m.preview) > maxPreviewLines {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ...and %d more", len(m.preview)-maxPreviewLines)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRenaming() string {
	var b strings.Builder

	var percent float64
	if m.total > 0 {
		percent = float64(m.processed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.processed, m.total)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var renamed, failed int
	for _, res := range m.results {
		switch {
		case res.Err != nil:
			failed++
		case res.Renamed:
			renamed++
		}
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Rename Complete!\n\n"+
			"Renamed: %d\n"+
			"Failed: %d",
		renamed,
		failed,
	))
	b.WriteString(box)

	if failed > 0 {
		b.WriteString("\n\n")
		for _, res := range m.results {
			if res.Err != nil {
				b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %s", filepath.Base(res.Path), res.Err)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: scan • esc: quit"
	case StateScanning:
		return "ctrl+c: quit"
	case StatePreview:
		return "enter: rename • s: sanitize • c: no overwrite • esc: back"
	case StateRenaming:
		return "ctrl+c: quit"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
