package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bear/internal/engage"
	"bear/internal/state"
)

const defaultChatLimit = 500

// chatItemKind tags what a rendered line represents.
type chatItemKind int

const (
	itemUser chatItemKind = iota
	itemBear
	itemNotice
	itemError
)

// ChatItem is one rendered transcript entry.
type ChatItem struct {
	Kind        chatItemKind
	Mode        state.Mode
	Content     string
	Reactions   []string
	Distraction bool
}

// ChatModel renders the shared transcript plus transient notices.
type ChatModel struct {
	items    []ChatItem
	maxItems int

	scrollTop      int
	viewportHeight int
}

// NewChatModel creates a transcript buffer with a retention limit.
func NewChatModel(maxItems int) ChatModel {
	limit := maxItems
	if limit <= 0 {
		limit = defaultChatLimit
	}
	return ChatModel{maxItems: limit}
}

// Rebuild replaces the buffer with the persisted transcript. Notices are
// transient and do not survive a rebuild.
func (m *ChatModel) Rebuild(messages []state.Message) {
	wasAtBottom := m.isAtBottom()

	m.items = m.items[:0]
	for _, msg := range messages {
		item := ChatItem{
			Content:   msg.Text,
			Reactions: append([]string(nil), msg.Reactions...),
		}
		if msg.Role == state.RoleModel {
			item.Kind = itemBear
			item.Mode = msg.Mode
			item.Distraction = engage.DistractionEligible(msg.ID)
		}
		m.items = append(m.items, item)
	}
	m.trim()

	if wasAtBottom {
		m.scrollToBottom()
		return
	}
	m.clampScrollTop()
}

// AppendNotice adds a transient line that is not part of the transcript.
func (m *ChatModel) AppendNotice(text string) {
	m.appendItem(ChatItem{Kind: itemNotice, Content: text})
}

// AppendError adds a transient error line.
func (m *ChatModel) AppendError(text string) {
	m.appendItem(ChatItem{Kind: itemError, Content: text})
}

// AppendUser shows a user turn before the round trip resolves.
func (m *ChatModel) AppendUser(text string) {
	m.appendItem(ChatItem{Kind: itemUser, Content: text})
}

func (m *ChatModel) appendItem(item ChatItem) {
	if strings.TrimSpace(item.Content) == "" {
		return
	}
	wasAtBottom := m.isAtBottom()
	m.items = append(m.items, item)
	m.trim()
	if wasAtBottom {
		m.scrollToBottom()
		return
	}
	m.clampScrollTop()
}

func (m *ChatModel) trim() {
	if overflow := len(m.items) - m.maxItems; overflow > 0 {
		m.items = append([]ChatItem(nil), m.items[overflow:]...)
	}
}

// Items returns a defensive copy of buffered items.
func (m ChatModel) Items() []ChatItem {
	return append([]ChatItem(nil), m.items...)
}

// Clear removes all buffered items.
func (m *ChatModel) Clear() {
	m.items = nil
	m.scrollTop = 0
}

// SetViewportHeight configures the visible line count.
func (m *ChatModel) SetViewportHeight(height int) {
	if height < 0 {
		height = 0
	}
	m.viewportHeight = height
	m.clampScrollTop()
}

// ScrollUp moves the viewport up by lines.
func (m *ChatModel) ScrollUp(lines int) {
	if lines <= 0 {
		return
	}
	m.scrollTop -= lines
	m.clampScrollTop()
}

// ScrollDown moves the viewport down by lines.
func (m *ChatModel) ScrollDown(lines int) {
	if lines <= 0 {
		return
	}
	m.scrollTop += lines
	m.clampScrollTop()
}

// PageUp scrolls one viewport up.
func (m *ChatModel) PageUp() {
	step := m.viewportHeight
	if step <= 0 {
		step = 10
	}
	m.ScrollUp(step)
}

// PageDown scrolls one viewport down.
func (m *ChatModel) PageDown() {
	step := m.viewportHeight
	if step <= 0 {
		step = 10
	}
	m.ScrollDown(step)
}

// ScrollToTop jumps to the oldest buffered lines.
func (m *ChatModel) ScrollToTop() {
	m.scrollTop = 0
}

// ScrollToBottom jumps to the most recent lines.
func (m *ChatModel) ScrollToBottom() {
	m.scrollToBottom()
}

// Render draws the transcript inside a panel.
func (m ChatModel) Render(width int, theme Theme) string {
	if len(m.items) == 0 {
		return renderPanel(width, theme.PanelStyle, "Transcript empty. The bear is waiting.")
	}

	lines := make([]string, 0, len(m.items))
	for _, item := range m.items {
		lines = append(lines, m.renderItem(item, theme)...)
	}

	if m.viewportHeight > 0 && len(lines) > m.viewportHeight {
		start := m.scrollTop
		maxTop := len(lines) - m.viewportHeight
		if start < 0 {
			start = 0
		}
		if start > maxTop {
			start = maxTop
		}
		lines = lines[start : start+m.viewportHeight]
	}

	return renderPanel(width, theme.PanelStyle, strings.Join(lines, "\n"))
}

func (m ChatModel) renderItem(item ChatItem, theme Theme) []string {
	switch item.Kind {
	case itemNotice:
		return []string{theme.NoticeStyle.Render(item.Content)}
	case itemError:
		return []string{theme.ErrorStyle.Render(item.Content)}
	}

	prefix, style := itemPrefix(item, theme)
	raw := strings.Split(item.Content, "\n")
	lines := make([]string, 0, len(raw)+2)
	lines = append(lines, style.Render(prefix)+" "+raw[0])
	if len(raw) > 1 {
		lines = append(lines, raw[1:]...)
	}
	if len(item.Reactions) > 0 {
		lines = append(lines, theme.ReactionStyle.Render("  "+strings.Join(item.Reactions, " ")))
	}
	if item.Distraction {
		lines = append(lines, theme.DistractionStyle.Render("  ( o.o ) do not press"))
	}
	return lines
}

func itemPrefix(item ChatItem, theme Theme) (string, lipgloss.Style) {
	if item.Kind == itemUser {
		return "you:", theme.UserPrefixStyle
	}
	if item.Mode == state.ModeClaws {
		return "claws:", theme.BearPrefixStyle
	}
	return "paws:", theme.BearPrefixStyle
}

func renderPanel(width int, style lipgloss.Style, content string) string {
	if width > 0 {
		return style.Width(width).Render(content)
	}
	return style.Render(content)
}

func (m *ChatModel) isAtBottom() bool {
	if m.viewportHeight <= 0 {
		return true
	}
	return m.scrollTop >= m.maxScrollTop()
}

func (m *ChatModel) maxScrollTop() int {
	if m.viewportHeight <= 0 {
		return 0
	}
	maxTop := m.totalRenderedLines() - m.viewportHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func (m *ChatModel) scrollToBottom() {
	m.scrollTop = m.maxScrollTop()
}

func (m *ChatModel) clampScrollTop() {
	if m.scrollTop < 0 {
		m.scrollTop = 0
		return
	}
	if maxTop := m.maxScrollTop(); m.scrollTop > maxTop {
		m.scrollTop = maxTop
	}
}

func (m *ChatModel) totalRenderedLines() int {
	total := 0
	for _, item := range m.items {
		total += len(strings.Split(item.Content, "\n"))
		if len(item.Reactions) > 0 {
			total++
		}
		if item.Distraction {
			total++
		}
	}
	return total
}
