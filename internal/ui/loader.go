package ui

import (
	"io"
	"strings"
	"sync"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DefaultLoaderMessage is shown when no message is given.
const DefaultLoaderMessage = "Loading..."

// AnalyzingMessage is shown while a prediction request is in flight.
const AnalyzingMessage = "Analyzing air quality data..."

// LoaderModel is the Bubble Tea model for the loading indicator.
type LoaderModel struct {
	spinner spinner.Model
	message string
	hidden  bool
	done    bool
}

// NewLoaderModel creates a loader showing message, or DefaultLoaderMessage
// when message is blank.
func NewLoaderModel(message string) LoaderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	if strings.TrimSpace(message) == "" {
		message = DefaultLoaderMessage
	}
	return LoaderModel{spinner: s, message: message}
}

// Init starts the spinner.
func (m LoaderModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// LoaderDoneMsg stops the loader program.
type LoaderDoneMsg struct{}

// Update handles messages. esc hides the indicator without stopping the
// request it stands for.
func (m LoaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.hidden = true
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case LoaderDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// Hidden reports whether the user dismissed the indicator.
func (m LoaderModel) Hidden() bool { return m.hidden }

// Message returns the text shown next to the spinner.
func (m LoaderModel) Message() string { return m.message }

// View renders the spinner line, or nothing once hidden or done.
func (m LoaderModel) View() tea.View {
	if m.hidden || m.done {
		return tea.NewView("")
	}
	return tea.NewView(m.spinner.View() + " " + Dim.Render(m.message) + "\n" + Muted.Render("esc to hide"))
}

// Indicator is shown while a request is in flight.
type Indicator interface {
	Start()
	Stop()
}

// Loader runs a LoaderModel on its own goroutine so callers never touch
// Bubble Tea directly.
type Loader struct {
	message string
	input   io.Reader
	output  io.Writer

	mu      sync.Mutex
	program *tea.Program
	exited  chan struct{}
	running bool
}

// NewLoader creates a loader for message. Nil input or output fall back to
// the terminal.
func NewLoader(message string, input io.Reader, output io.Writer) *Loader {
	return &Loader{message: message, input: input, output: output}
}

// Start begins the animation. Calling Start twice is a no-op.
func (l *Loader) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return
	}

	opts := []tea.ProgramOption{tea.WithoutSignalHandler()}
	if l.input != nil {
		opts = append(opts, tea.WithInput(l.input))
	}
	if l.output != nil {
		opts = append(opts, tea.WithOutput(l.output))
	}

	l.program = tea.NewProgram(NewLoaderModel(l.message), opts...)
	l.exited = make(chan struct{})
	l.running = true

	go func(p *tea.Program, exited chan struct{}) {
		defer close(exited)
		if _, err := p.Run(); err != nil {
			logger.Error().Err(err).Msg("loader exited")
		}
	}(l.program, l.exited)
}

// Stop ends the animation and waits for the program to restore the terminal.
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.program == nil || !l.running {
		return
	}

	l.program.Send(LoaderDoneMsg{})
	<-l.exited
	l.running = false
}
