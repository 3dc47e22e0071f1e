package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Enums & Types ---

type sessionState int

const (
	stateDefault sessionState = iota
	stateFilePicker
	stateSaveFilepath
)

type (
	fileReadMsg    struct{ content []byte; path string }
	parseDoneMsg   struct{ text string; records []Record }
	fileWriteMsg   struct{ path string }
	clipboardMsg   struct{ err error }
	resetStatusMsg struct{}
	errMsg         struct{ err error }
)

func (e errMsg) Error() string { return e.err.Error() }

// --- Commands ---

func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		c, err := os.ReadFile(path)
		if err != nil {
			return errMsg{err}
		}
		return fileReadMsg{content: c, path: path}
	}
}

// convertCmd runs decode+parse off the update loop as one opaque unit;
// progress is reported only at its start and completion, never per line.
func convertCmd(content []byte) tea.Cmd {
	return func() tea.Msg {
		text, err := decodeText(content)
		if err != nil {
			log.Printf("decode failed: %v", err)
			return errMsg{fmt.Errorf("could not read file")}
		}
		return parseDoneMsg{text: text, records: parseEntries(text)}
	}
}

// parseCmd re-parses already-decoded text, e.g. after edits in the source
// pane.
func parseCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return parseDoneMsg{records: parseEntries(text)}
	}
}

func writeFileCmd(path, content string) tea.Cmd {
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return errMsg{err}
		}
		return fileWriteMsg{path: path}
	}
}

func copyCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(content)}
	}
}

func resetStatusCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return resetStatusMsg{}
	})
}

// --- Styles ---
var (
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	focusedStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62"))
	blurredStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// --- Model ---

type model struct {
	state         sessionState
	err           error
	status        string
	defaultStatus string

	// UI Components
	inputs     []textarea.Model
	focused    int
	pathInput  textinput.Model
	filepicker filepicker.Model

	// Content
	cfg           appConfig
	inputFilePath string
	records       []Record
	csv           string
}

const (
	sourceIdx = 0
	csvIdx    = 1
)

func initialModel() model {
	cfg := loadConfig("config.json")

	defaultStatus := "Ctrl+O: Open | Ctrl+G: Convert | Ctrl+S: Save CSV | Ctrl+Y: Copy CSV | Tab: Switch Panes"
	m := model{
		state:         stateDefault,
		status:        defaultStatus,
		defaultStatus: defaultStatus,
		inputs:        make([]textarea.Model, 2),
		focused:       0,
		cfg:           cfg,
	}

	// Textareas
	for i := range m.inputs {
		t := textarea.New()
		t.ShowLineNumbers = true
		t.FocusedStyle.Base = focusedStyle
		t.BlurredStyle.Base = blurredStyle
		if i == sourceIdx {
			t.Placeholder = "Open a dictionary export (Ctrl+O) or paste its text here."
			t.Focus()
		} else {
			t.Placeholder = "Converted CSV will appear here."
		}
		m.inputs[i] = t
	}

	// Save-path input
	m.pathInput = textinput.New()
	m.pathInput.Placeholder = "Save file as..."
	m.pathInput.CharLimit = 256
	m.pathInput.Width = 80

	// Filepicker
	fp := filepicker.New()
	fp.AllowedTypes = []string{".txt"}
	fp.CurrentDirectory, _ = filepath.Abs(cfg.ScanDir)
	m.filepicker = fp

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.filepicker.Init())
}

// --- Update ---

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		panelWidth := (msg.Width - h) / 2
		panelHeight := msg.Height - v - 3

		for i := range m.inputs {
			m.inputs[i].SetWidth(panelWidth)
			m.inputs[i].SetHeight(panelHeight)
		}
		m.filepicker.Height = panelHeight
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// State-specific updates
		switch m.state {
		case stateFilePicker:
			// If the user presses escape, cancel the file picker
			if msg.String() == "esc" {
				m.state = stateDefault
				m.status = "File selection cancelled."
				return m, resetStatusCmd()
			}
			var cmd tea.Cmd
			m.filepicker, cmd = m.filepicker.Update(msg)
			if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
				m.state = stateDefault
				return m, readFileCmd(path)
			}
			return m, cmd
		case stateSaveFilepath:
			return updatePathInput(msg, m)
		default:
			return updateDefault(msg, m)
		}

	case resetStatusMsg:
		m.status = m.defaultStatus
		return m, nil

	case fileReadMsg:
		m.inputFilePath = msg.path
		m.status = fmt.Sprintf("Loaded '%s', converting...", filepath.Base(msg.path))
		log.Printf("read %d bytes from %s", len(msg.content), msg.path)
		return m, convertCmd(msg.content)

	case parseDoneMsg:
		m.records = msg.records
		m.csv = toCSV(msg.records)
		if msg.text != "" {
			m.inputs[sourceIdx].SetValue(msg.text)
		}
		m.inputs[csvIdx].SetValue(m.csv)
		m.status = fmt.Sprintf("Parsed %d records.", len(msg.records))
		m.state = stateDefault
		log.Printf("parsed %d records", len(msg.records))
		return m, resetStatusCmd()

	case fileWriteMsg:
		m.status = fmt.Sprintf("Saved to '%s'", filepath.Base(msg.path))
		m.state = stateDefault
		return m, resetStatusCmd()

	case clipboardMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Clipboard error: %v", msg.err)
		} else {
			m.status = "Copied CSV to clipboard."
		}
		return m, resetStatusCmd()

	case errMsg:
		m.status = fmt.Sprintf("Error: %v", msg.err)
		return m, resetStatusCmd()
	}

	// Update focused textarea in default state; the filepicker needs
	// non-key messages (its directory reads) while it is showing.
	switch m.state {
	case stateDefault:
		var taCmd tea.Cmd
		m.inputs[m.focused], taCmd = m.inputs[m.focused].Update(msg)
		cmds = append(cmds, taCmd)
	case stateFilePicker:
		var fpCmd tea.Cmd
		m.filepicker, fpCmd = m.filepicker.Update(msg)
		cmds = append(cmds, fpCmd)
	}

	return m, tea.Batch(cmds...)
}

func updateDefault(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o":
		m.state = stateFilePicker
		m.status = "Select a dictionary export to load."
		return m, m.filepicker.Init()

	case "ctrl+g":
		if m.inputs[sourceIdx].Value() == "" {
			m.status = "Cannot convert: source pane is empty."
			return m, resetStatusCmd()
		}
		m.status = "Converting..."
		return m, parseCmd(m.inputs[sourceIdx].Value())

	case "ctrl+s":
		if m.csv == "" {
			m.status = "Nothing to save: convert a file first."
			return m, resetStatusCmd()
		}
		m.state = stateSaveFilepath
		originalName := "records"
		if m.inputFilePath != "" {
			base := filepath.Base(m.inputFilePath)
			originalName = strings.TrimSuffix(base, filepath.Ext(base))
		}
		m.pathInput.SetValue(fmt.Sprintf("%s%s.csv", originalName, m.cfg.OutputSuffix))
		m.pathInput.Focus()
		m.status = "Enter file path to save."
		return m, nil

	case "ctrl+y":
		if m.csv == "" {
			m.status = "Nothing to copy: convert a file first."
			return m, resetStatusCmd()
		}
		return m, copyCmd(m.csv)

	case "tab":
		m.inputs[m.focused].Blur()
		m.focused = (m.focused + 1) % len(m.inputs)
		m.inputs[m.focused].Focus()
		return m, textarea.Blink
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func updatePathInput(msg tea.KeyMsg, m model) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.String() {
	case "enter":
		path := m.pathInput.Value()
		if path == "" {
			return m, nil
		}
		m.state = stateDefault
		m.status = "Saving..."
		return m, writeFileCmd(path, m.csv)
	case "esc":
		m.state = stateDefault
		m.status = "Cancelled save."
		return m, resetStatusCmd()
	}
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// --- View ---

func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("\nError: %v\n\nPress ctrl+c to exit.", m.err)
	}

	switch m.state {
	case stateFilePicker:
		return docStyle.Render(m.filepicker.View())
	case stateSaveFilepath:
		return docStyle.Render(fmt.Sprintf("Save file as:\n\n%s", m.pathInput.View()) + "\n\nEnter: confirm | Esc: cancel")
	default:
		panels := lipgloss.JoinHorizontal(lipgloss.Top, m.inputs[sourceIdx].View(), m.inputs[csvIdx].View())
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, panels, helpStyle.Render(m.status)))
	}
}
