package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/mgomes/rockflow/rockflow"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	highlightColor = lipgloss.Color("#F59E0B")
	mutedColor     = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	mutedStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	nameStyle   = lipgloss.NewStyle().Foreground(highlightColor)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// linesPerEntry is the rendered height of one transcript entry: input,
// output and a blank separator.
const linesPerEntry = 3

type transcriptEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput  textinput.Model
	session    *session
	ctx        rockflow.Context
	transcript []transcriptEntry
	recalled   []string
	recallIdx  int
	height     int
	showHelp   bool
	showVars   bool
	quitting   bool
}

var replKeys = struct {
	Quit     key.Binding
	Previous key.Binding
	Next     key.Binding
	Complete key.Binding
	Submit   key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d")),
	Previous: key.NewBinding(key.WithKeys("up")),
	Next:     key.NewBinding(key.WithKeys("down")),
	Complete: key.NewBinding(key.WithKeys("tab")),
	Submit:   key.NewBinding(key.WithKeys("enter")),
}

// attrLister is implemented by the in-memory reference contexts.
type attrLister interface {
	Keys() []string
	Attr(key string) (rockflow.Value, bool)
}

func replCmd() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactively call builtins against a context",
		Flags: []cli.Flag{contextFlag},
		Action: func(c *cli.Context) error {
			engine, err := newEngine(c)
			if err != nil {
				return err
			}
			ctx, err := loadContext(c)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(newREPLModel(engine, ctx), tea.WithAltScreen()).Run()
			return err
		},
	}
}

func newREPLModel(engine *rockflow.Engine, ctx rockflow.Context) replModel {
	ti := textinput.New()
	ti.Placeholder = `rockflow_context.get_int(ctx, "age", -1)`
	ti.Prompt = "rockflow> "
	ti.PromptStyle = promptStyle
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return replModel{
		textInput: ti,
		session:   newSession(engine, ctx),
		ctx:       ctx,
		recallIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.textInput.Width = msg.Width - 12
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, replKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, replKeys.Previous):
			return m.recall(-1), nil
		case key.Matches(msg, replKeys.Next):
			return m.recall(1), nil
		case key.Matches(msg, replKeys.Complete):
			return m.handleAutocomplete(), nil
		case key.Matches(msg, replKeys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil
	}
	m.textInput.SetValue("")
	m.recallIdx = -1

	if strings.HasPrefix(input, ":") {
		return m.handleCommand(input)
	}
	output, isErr := m.evaluate(input)
	m.transcript = append(m.transcript, transcriptEntry{input: input, output: output, isErr: isErr})
	m.recalled = append(m.recalled, input)
	return m, nil
}

// recall steps through previously evaluated inputs. Stepping past the
// newest entry clears the prompt.
func (m replModel) recall(step int) replModel {
	if len(m.recalled) == 0 {
		return m
	}
	idx := m.recallIdx
	switch {
	case idx == -1 && step < 0:
		idx = len(m.recalled) - 1
	case idx == -1:
		return m
	default:
		idx = max(idx+step, 0)
	}
	if idx >= len(m.recalled) {
		m.recallIdx = -1
		m.textInput.SetValue("")
		return m
	}
	m.recallIdx = idx
	m.textInput.SetValue(m.recalled[idx])
	m.textInput.CursorEnd()
	return m
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.transcript = nil
	case ":vars", ":v":
		m.showVars = !m.showVars
	case ":reset", ":r":
		m.session.reset(m.ctx)
		m.note(input, "Variables reset", false)
	case ":attrs", ":a":
		output, isErr := m.describeAttrs()
		m.note(input, output, isErr)
	case ":builtins", ":b":
		registry := m.session.engine.Registry()
		sigs := make([]string, 0, registry.Len())
		for _, name := range registry.Names() {
			b, _ := registry.Lookup(name)
			sigs = append(sigs, b.Signature())
		}
		m.note(input, strings.Join(sigs, "\n    "), false)
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.note(input, "Unknown command: "+cmd, true)
	}
	return m, nil
}

func (m *replModel) note(input, output string, isErr bool) {
	m.transcript = append(m.transcript, transcriptEntry{input: input, output: output, isErr: isErr})
}

// describeAttrs lists the stored attributes of the bound context, when the
// context can enumerate them.
func (m replModel) describeAttrs() (string, bool) {
	lister, ok := m.ctx.(attrLister)
	if !ok {
		return fmt.Sprintf("context %T does not list its attributes", m.ctx), true
	}
	keys := lister.Keys()
	if len(keys) == 0 {
		return "No attributes", false
	}
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		val, _ := lister.Attr(k)
		lines = append(lines, fmt.Sprintf("%s: %s = %s", k, rockflow.TypeOf(val), val))
	}
	return strings.Join(lines, "\n    "), false
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	cut := strings.LastIndexAny(input, " (,")
	word := input[cut+1:]
	if word == "" {
		return m
	}

	var completions []string
	candidates := append(m.session.engine.Registry().Names(), m.session.varNames()...)
	for _, name := range candidates {
		if strings.HasPrefix(name, word) {
			completions = append(completions, name)
		}
	}

	switch len(completions) {
	case 0:
	case 1:
		m.textInput.SetValue(input[:cut+1] + completions[0])
		m.textInput.CursorEnd()
	default:
		m.note("", "Completions: "+strings.Join(completions, ", "), false)
	}
	return m
}

func (m replModel) evaluate(input string) (string, bool) {
	result, err := m.session.evaluate(input)
	if err != nil {
		return err.Error(), true
	}
	m.session.env["_"] = result
	return result.String(), false
}

func (m replModel) View() string {
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("rockflow REPL") + " " + mutedStyle.Render("v"+Version) + "\n\n")

	shown := m.transcript
	if m.height > 0 {
		shown = shown[max(len(shown)-m.height/linesPerEntry, 0):]
	}
	for _, entry := range shown {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n\n")
		}
	}

	if m.showVars {
		b.WriteString(renderVarsPanel(m.session) + "\n")
	}
	if m.showHelp {
		b.WriteString(renderHelpPanel() + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	b.WriteString(mutedStyle.Render(":help commands  tab complete  ↑/↓ recall  ctrl+c quit"))
	return b.String()
}

func renderVarsPanel(s *session) string {
	lines := []string{titleStyle.Render("Variables")}
	for _, name := range s.varNames() {
		lines = append(lines, fmt.Sprintf("  %s = %s", nameStyle.Render(name), s.env[name]))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := [][2]string{
		{"Enter", "Evaluate call, e.g. x = ns.f(ctx, 1)"},
		{":attrs", "List context attributes"},
		{":builtins", "List builtin signatures"},
		{":vars", "Toggle variables panel"},
		{":clear", "Clear transcript"},
		{":reset", "Drop variables except ctx"},
		{":quit", "Exit REPL"},
	}
	lines := []string{titleStyle.Render("Help")}
	for _, h := range help {
		lines = append(lines, "  "+nameStyle.Render(fmt.Sprintf("%-9s", h[0]))+"  "+mutedStyle.Render(h[1]))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
