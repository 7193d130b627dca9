package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/config"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/language"
	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/markdown"
)

const helpText = "ctrl+r review • tab language • ctrl+l clear • ctrl+s save report • esc quit"

type model struct {
	styles   styles
	cfg      *config.Config
	renderer *markdown.Renderer

	// UI Components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Review state. session is only changed through core.Reduce.
	session   core.Session
	synced    string // textarea value last reconciled with session
	requestor core.Requestor
	cleanup   func()
	provider  string
	cancel    context.CancelFunc
	status    string
	reportDir string
	initErr   error
}

func initialModel(theme ThemeName, cfg *config.Config) *model {
	st := GetTheme(theme)

	ta := textarea.New()
	ta.Placeholder = "Paste your code here..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(60)
	ta.SetHeight(20)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = st.title

	return &model{
		styles:    st,
		cfg:       cfg,
		renderer:  markdown.NewRenderer(60, ""),
		viewport:  viewport.New(60, 20),
		textarea:  ta,
		spinner:   sp,
		session:   core.NewSession(),
		reportDir: ".",
	}
}

// load preloads a file as if it had been uploaded. The session keeps the
// content byte for byte; the textarea only displays it.
func (m *model) load(name, content string) {
	m.apply(core.FileLoaded{Name: name, Content: content})
	m.textarea.SetValue(content)
	m.synced = m.textarea.Value()
}

// syncSource records a user edit of the textarea. Values the textarea merely
// normalized on display are not edits.
func (m *model) syncSource() {
	if v := m.textarea.Value(); v != m.synced {
		m.synced = v
		m.apply(core.SourceEdited{Text: v})
	}
}

// apply runs ev through the reducer. A request the event superseded is
// cancelled.
func (m *model) apply(ev core.Event) {
	m.session = core.Reduce(m.session, ev)
	if !m.session.Busy {
		m.releaseRequest()
	}
	m.refreshReview()
}

func (m *model) Init() tea.Cmd {
	if m.cfg == nil {
		return textarea.Blink
	}
	return tea.Batch(initializeServiceCmd(m.cfg), textarea.Blink)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case serviceReadyMsg:
		if msg.err != nil {
			m.initErr = msg.err
			m.status = m.styles.error.Render("Initialization failed: " + msg.err.Error())
			return m, nil
		}
		m.requestor = msg.requestor
		m.cleanup = msg.cleanup
		m.provider = msg.provider
		m.status = m.styles.success.Render("Ready")
		return m, nil

	case reviewDoneMsg:
		if msg.err != nil {
			m.apply(core.ReviewFailed{Generation: msg.generation, Message: core.UserMessage(msg.err)})
		} else {
			m.apply(core.ReviewSucceeded{Generation: msg.generation, Review: msg.review})
		}
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.status = m.styles.error.Render("Could not save report: " + msg.err.Error())
		} else {
			m.status = m.styles.success.Render("Report saved to " + msg.path)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	}

	var taCmd, vpCmd tea.Cmd
	m.textarea, taCmd = m.textarea.Update(msg)
	m.syncSource()
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(taCmd, vpCmd)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.releaseRequest()
		if m.cleanup != nil {
			m.cleanup()
		}
		return m, tea.Quit
	case tea.KeyCtrlR:
		return m, m.submit()
	case tea.KeyTab:
		m.apply(core.LanguageSelected{Tag: nextLanguage(m.session.Language)})
		return m, nil
	case tea.KeyCtrlL:
		m.apply(core.Cleared{})
		m.textarea.Reset()
		m.synced = ""
		m.status = ""
		return m, nil
	case tea.KeyCtrlS:
		if !m.session.HasReview() {
			m.status = m.styles.inactive.Render("Nothing to export yet")
			return m, nil
		}
		return m, saveReportCmd(m.reportDir, m.session)
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.syncSource()
	return m, cmd
}

// submit starts a review, cancelling any request still in flight.
func (m *model) submit() tea.Cmd {
	if m.requestor == nil {
		if m.initErr != nil {
			m.status = m.styles.error.Render("Review service unavailable: " + m.initErr.Error())
		} else {
			m.status = m.styles.inactive.Render("Still initializing...")
		}
		return nil
	}

	m.apply(core.SubmitRequested{})
	if !m.session.Busy {
		return nil
	}

	m.releaseRequest()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.status = ""
	return tea.Batch(m.spinner.Tick, reviewCmd(ctx, m.requestor, m.session.Submission(), m.session.Generation))
}

func (m *model) releaseRequest() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func nextLanguage(current language.Tag) language.Tag {
	all := language.All()
	for i, info := range all {
		if info.Tag == current {
			return all[(i+1)%len(all)].Tag
		}
	}
	return language.Default
}

func (m *model) resize(width, height int) {
	paneWidth := (width - 6) / 2
	paneHeight := height - 6
	if paneWidth < 20 {
		paneWidth = 20
	}
	if paneHeight < 5 {
		paneHeight = 5
	}
	m.textarea.SetWidth(paneWidth - 2)
	m.textarea.SetHeight(paneHeight)
	m.viewport.Width = paneWidth - 2
	m.viewport.Height = paneHeight
	m.renderer.SetWidth(paneWidth - 2)
	m.refreshReview()
}

// refreshReview renders the result pane for the current session.
func (m *model) refreshReview() {
	var content string
	switch core.Render(m.session) {
	case core.ViewError:
		content = m.styles.error.Render(m.session.ErrorMessage)
	case core.ViewLoading:
		content = m.styles.inactive.Render("Analyzing your code...")
	case core.ViewReview:
		content = m.renderer.Render(m.session.Review)
	default:
		content = m.styles.inactive.Render("Upload or paste code to get started")
	}
	m.viewport.SetContent(content)
	m.viewport.GotoTop()
}

func (m *model) View() string {
	source := m.session.FileName
	if source == "" {
		source = "Pasted Code"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.title.Render("AI Code Review Assistant"),
		"  ",
		m.styles.badge.Render(m.session.Language.Label()),
		"  ",
		m.styles.inactive.Render(source),
	)

	reviewTitle := "Review"
	if m.session.Busy {
		reviewTitle = m.spinner.View() + " Analyzing..."
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.active.Render(m.textarea.View()),
		m.styles.pane.Render(lipgloss.JoinVertical(lipgloss.Left, m.styles.title.Render(reviewTitle), m.viewport.View())),
	)

	var statusParts []string
	if m.provider != "" {
		statusParts = append(statusParts, fmt.Sprintf("provider: %s", m.provider))
	}
	if m.status != "" {
		statusParts = append(statusParts, m.status)
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			panes,
			strings.Join(statusParts, " │ "),
			m.styles.help.Render(helpText),
		),
	)
}
