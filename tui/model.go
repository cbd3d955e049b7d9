// Package tui is the interactive console of the responder.
package tui

import (
	"fmt"
	"pizza-bot/domain"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const QuitCommand = "sair"

// Responder is the TUI-facing subset of the responder service.
type Responder interface {
	Respond(message string) domain.Turn
}

type exchange struct {
	message string
	turn    domain.Turn
}

// Model is the Bubble Tea model of the chat console.
type Model struct {
	responder Responder
	title     string
	input     textinput.Model
	viewport  viewport.Model
	exchanges []exchange
	status    string
	ready     bool
}

func New(responder Responder, title string) Model {
	ti := textinput.New()
	ti.Prompt = "Você: "
	ti.Placeholder = "Digite sua mensagem e pressione Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		responder: responder,
		title:     title,
		input:     ti,
		viewport:  viewport.New(0, 0),
		status:    fmt.Sprintf("Digite '%s' para encerrar.", QuitCommand),
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := conversationBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // title, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-ch)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			text := m.input.Value()
			if strings.EqualFold(strings.TrimSpace(text), QuitCommand) {
				return m, tea.Quit
			}
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			turn := m.responder.Respond(text)
			m.exchanges = append(m.exchanges, exchange{message: text, turn: turn})
			m.status = fmt.Sprintf("Intenção detectada: %s  Probabilidade: %.2f%%", turn.Intent, turn.Probability())
			m.input.Reset()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Carregando..."
	}
	header := titleStyle.Render(m.title)
	conversation := conversationBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + conversation + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

func (m Model) renderConversation() string {
	if len(m.exchanges) == 0 {
		return helpStyle.Render("Nenhuma mensagem ainda.")
	}
	var b strings.Builder
	for i, e := range m.exchanges {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(userStyle.Render("Você: ") + e.message + "\n")
		b.WriteString(botStyle.Render("Bot: ") + e.turn.Reply + "\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("[%s %.2f%%]", e.turn.Intent, e.turn.Probability())))
	}
	return b.String()
}

var (
	titleStyle           = lipgloss.NewStyle().Bold(true)
	conversationBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle             = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	helpStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)
