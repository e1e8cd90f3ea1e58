// Package tui implements interactive hot-seat play over a single local
// game: every hand is visible, the current player types draw or stay, and
// scores are shown as each round closes.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/flip7/internal/game"
)

const maxLogLines = 8

// Model is the Bubble Tea model for local play.
type Model struct {
	game   *game.GameState
	logger *log.Logger

	input    textinput.Model
	gameLog  []string
	errLine  string
	quitting bool
}

// New creates a model around a started game.
func New(g *game.GameState, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "draw, stay, next (after a round), quit"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 48
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		game:   g,
		logger: logger.WithPrefix("tui"),
		input:  ti,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			command := strings.TrimSpace(strings.ToLower(m.input.Value()))
			m.input.SetValue("")
			return m.runCommand(command)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) runCommand(command string) (tea.Model, tea.Cmd) {
	m.errLine = ""

	switch command {
	case "":
		return m, nil

	case "quit", "q":
		m.quitting = true
		return m, tea.Quit

	case "draw", "d":
		current := m.game.CurrentPlayer()
		if err := m.game.PlayerDraw(current.ID); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		card := current.Hand.Cards[len(current.Hand.Cards)-1]
		m.appendLog(fmt.Sprintf("%s drew a %s (total %d)", current.Name, card, current.Hand.TotalValue()))
		if current.Hand.IsBust() {
			m.appendLog(fmt.Sprintf("%s is bust!", current.Name))
		}
		m.finishRoundIfOver()

	case "stay", "s":
		current := m.game.CurrentPlayer()
		if err := m.game.PlayerStay(current.ID); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.appendLog(fmt.Sprintf("%s stayed", current.Name))
		m.finishRoundIfOver()

	case "next", "n":
		if !m.game.Round.IsFinished {
			m.errLine = "the round is still in progress"
			return m, nil
		}
		if err := m.game.StartRound(); err != nil {
			m.errLine = err.Error()
			return m, nil
		}
		m.appendLog(fmt.Sprintf("round %d started", m.game.Round.RoundNumber))

	default:
		m.errLine = fmt.Sprintf("unknown command %q", command)
	}

	return m, nil
}

// finishRoundIfOver computes and logs scores when the last stay or bust
// closes the round.
func (m *Model) finishRoundIfOver() {
	if !m.game.Round.IsFinished {
		return
	}

	byID := make(map[string]*game.Player, len(m.game.Players))
	flip7 := make(map[string]bool, len(m.game.Players))
	for _, p := range m.game.Players {
		byID[p.ID] = p
		flip7[p.ID] = p.Hand.HasFlip7()
	}

	scores := m.game.ComputeScores()
	m.appendLog("round finished, scores:")

	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		line := fmt.Sprintf("  %s: %d points", byID[id].Name, scores[id])
		if flip7[id] {
			line += " (Flip7!)"
		}
		m.appendLog(line)
	}
	m.appendLog("type next to start the next round")
}

func (m *Model) appendLog(line string) {
	m.logger.Debug(line)
	m.gameLog = append(m.gameLog, line)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

// View renders the table.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Flip7 — round %d", m.game.Round.RoundNumber)))
	b.WriteString("\n\n")

	current := m.game.CurrentPlayer()
	for _, p := range m.game.Players {
		marker := "  "
		if p == current && !m.game.Round.IsFinished {
			marker = TurnStyle.Render("> ")
		}

		cards := make([]string, len(p.Hand.Cards))
		for i, c := range p.Hand.Cards {
			cards[i] = CardStyle.Render(c.String())
		}

		status := ""
		switch {
		case p.Hand.HasFlip7():
			status = Flip7Style.Render(" FLIP7")
		case p.Hand.IsBust():
			status = BustStyle.Render(" BUST")
		case p.HasStayed:
			status = StayedStyle.Render(" stayed")
		}

		b.WriteString(fmt.Sprintf("%s%s  [%s]  total %d, score %d%s\n",
			marker, p.Name, strings.Join(cards, " "), p.Hand.TotalValue(), p.Score, status))
	}

	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("%d cards left in deck", m.game.Deck.Len())))
	b.WriteString("\n\n")

	for _, line := range m.gameLog {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.errLine != "" {
		b.WriteString(ErrorStyle.Render(m.errLine))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("esc or ctrl+c to quit"))
	b.WriteString("\n")

	return b.String()
}
