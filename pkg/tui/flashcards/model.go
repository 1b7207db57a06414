// Package flashcards is the interactive study screen: one card at a
// time, front first, progress tags applied without leaving the deck.
package flashcards

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/shuffle"
)

// SaveFunc persists the progress book after a tag change.
type SaveFunc func(*progress.Book) error

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 4).
			Align(lipgloss.Center)
	frontStyle  = lipgloss.NewStyle().Bold(true)
	backStyle   = lipgloss.NewStyle().Faint(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	statusStyle = lipgloss.NewStyle().Faint(true)
)

// Model drives the flashcard deck. The deck order is whatever the view
// composer produced; "s" reshuffles the session without touching the
// persisted seed.
type Model struct {
	collection string
	cards      []card.Card
	front      []string
	back       []string
	book       *progress.Book
	save       SaveFunc

	idx      int
	revealed bool
	status   string
	width    int
}

// New builds a deck over the composed card list. front and back name
// the fields shown before and after reveal. book and save may be nil
// for collections that do not track progress.
func New(collection string, cards []card.Card, front, back []string, book *progress.Book, save SaveFunc) Model {
	return Model{
		collection: collection,
		cards:      cards,
		front:      front,
		back:       back,
		book:       book,
		save:       save,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "enter":
		m.revealed = !m.revealed
	case "n", "right", "j":
		if m.idx < len(m.cards)-1 {
			m.idx++
			m.revealed = false
		}
	case "p", "left", "k":
		if m.idx > 0 {
			m.idx--
			m.revealed = false
		}
	case "s":
		m.reshuffle(rand.Uint32())
	case "l":
		m.toggleLearned()
	case "f":
		m.toggleFocus()
	}
	return m, nil
}

// reshuffle reorders the session deck with a fresh seed. The persisted
// collection seed is owned by the shuffle command, not the deck.
func (m *Model) reshuffle(seed uint32) {
	if len(m.cards) == 0 {
		return
	}
	perm := shuffle.Permute(len(m.cards), seed)
	reordered := make([]card.Card, len(m.cards))
	for i, p := range perm {
		reordered[i] = m.cards[p]
	}
	m.cards = reordered
	m.idx = 0
	m.revealed = false
	m.status = fmt.Sprintf("reshuffled (seed %d)", seed)
}

func (m *Model) toggleLearned() {
	key := m.currentKey()
	if key == "" {
		m.status = "card has no study key"
		return
	}
	if m.book.Learned(key) {
		m.book.ClearLearned(key)
		m.status = fmt.Sprintf("%s unlearned", key)
	} else {
		m.book.MarkLearned(key)
		m.status = fmt.Sprintf("%s learned", key)
	}
	m.persist()
}

func (m *Model) toggleFocus() {
	key := m.currentKey()
	if key == "" {
		m.status = "card has no study key"
		return
	}
	if m.book.Focus(key) {
		m.book.ClearFocus(key)
		m.status = fmt.Sprintf("%s out of focus", key)
	} else {
		m.book.MarkFocus(key)
		m.status = fmt.Sprintf("%s in focus", key)
	}
	m.persist()
}

func (m *Model) currentKey() string {
	if m.book == nil || m.idx >= len(m.cards) {
		return ""
	}
	return m.book.Key(m.cards[m.idx])
}

func (m *Model) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(m.book); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if len(m.cards) == 0 {
		return statusStyle.Render("nothing to study: the filter left an empty deck") + "\n"
	}

	c := m.cards[m.idx]
	var b strings.Builder

	var lines []string
	for _, f := range m.front {
		if v := c.String(f); v != "" {
			lines = append(lines, frontStyle.Render(v))
		}
	}
	if m.revealed {
		for _, f := range m.back {
			if v := c.String(f); v != "" {
				lines = append(lines, backStyle.Render(fmt.Sprintf("%s: %s", f, v)))
			}
		}
	} else {
		lines = append(lines, backStyle.Render("(space to reveal)"))
	}
	b.WriteString(cardStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if key := m.currentKey(); key != "" {
		var tags []string
		if m.book.Learned(key) {
			tags = append(tags, "learned")
		}
		if m.book.Focus(key) {
			tags = append(tags, "focus")
		}
		if len(tags) > 0 {
			b.WriteString(tagStyle.Render(strings.Join(tags, " · ")))
			b.WriteString("\n")
		}
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  %d/%d", m.collection, m.idx+1, len(m.cards))))
	if m.status != "" {
		b.WriteString(statusStyle.Render("  " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render("space reveal · n/p move · l learned · f focus · s shuffle · q quit"))
	b.WriteString("\n")
	return b.String()
}
