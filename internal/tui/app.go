package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/1001pranav/fintrax/internal/backup"
	"github.com/1001pranav/fintrax/internal/config"
	"github.com/1001pranav/fintrax/internal/database"
	"github.com/1001pranav/fintrax/internal/database/repository"
	"github.com/1001pranav/fintrax/internal/keymap"
	"github.com/1001pranav/fintrax/internal/service"
)

// App ties together views.
type App struct {
	ctx        context.Context
	cfg        config.Config
	repos      Repos
	backups    *service.BackupService
	exporter   *backup.Exporter
	registry   *keymap.Registry
	dispatcher *keymap.Dispatcher
	platform   keymap.Platform

	state  appState
	modal  modalState
	status string
	width  int
	height int

	projects     []repository.Project
	roadmaps     []repository.Roadmap
	tasks        []repository.Task
	transactions []repository.Transaction
	savings      []repository.Saving
	loans        []repository.Loan

	projectCursor int
	taskCursor    int
	financeMode   financeMode

	fileList      list.Model
	taskInput     string
	paletteQuery  string
	paletteCursor int
	lastImport    *backup.ImportResult

	// commands queued by shortcut handlers during the current Dispatch pass
	pending []tea.Cmd
}

type Repos struct {
	Projects     *repository.ProjectRepo
	Roadmaps     *repository.RoadmapRepo
	Tasks        *repository.TaskRepo
	Transactions *repository.TransactionRepo
	Savings      *repository.SavingRepo
	Loans        *repository.LoanRepo
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewProjects  appState = "projects"
	viewTasks     appState = "tasks"
	viewFinance   appState = "finance"
)

type modalState string

const (
	modalNone         modalState = ""
	modalHelp         modalState = "help"
	modalPalette      modalState = "palette"
	modalNewTask      modalState = "newTask"
	modalImportPicker modalState = "importPicker"
)

type financeMode int

const (
	financeTransactions financeMode = iota
	financeSavings
	financeLoans
)

func New(ctx context.Context, cfg config.Config, repos Repos, backups *service.BackupService, exporter *backup.Exporter, registry *keymap.Registry) *App {
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		repos:    repos,
		backups:  backups,
		exporter: exporter,
		registry: registry,
		state:    viewDashboard,
		fileList: newFileList(),
	}
	switch cfg.UI.Platform {
	case "mac":
		a.platform = keymap.Platform{Name: "MacIntel"}
	case "":
		a.platform = keymap.DetectPlatform()
	default:
		a.platform = keymap.Platform{Name: cfg.UI.Platform}
	}
	a.dispatcher = keymap.NewDispatcher()
	a.bindShortcuts()
	return a
}

// bindShortcuts wires the registered shortcut table into the dispatcher.
// App-wide shortcuts live in the global scope; view-specific ones live in a
// scope named after the view so they only fire there.
func (a *App) bindShortcuts() {
	a.dispatcher.BindAll(keymap.ScopeGlobal, a.registry, map[string]keymap.Handler{
		"go-dashboard": func(keymap.KeyEvent) { a.state = viewDashboard; a.status = "" },
		"go-projects":  func(keymap.KeyEvent) { a.state = viewProjects; a.status = "" },
		"go-tasks":     func(keymap.KeyEvent) { a.state = viewTasks; a.status = "" },
		"go-finance":   func(keymap.KeyEvent) { a.state = viewFinance; a.status = "" },
		"toggle-view": func(keymap.KeyEvent) {
			if a.state == viewFinance {
				a.financeMode = (a.financeMode + 1) % 3
			}
		},
		"export-backup": func(keymap.KeyEvent) {
			a.status = "exporting..."
			a.enqueue(a.exportCmd())
		},
		"import-backup": func(keymap.KeyEvent) {
			a.modal = modalImportPicker
			a.status = ""
			a.enqueue(loadBackupFilesCmd(a.cfg.Backup.Dir))
		},
		"command-palette": func(keymap.KeyEvent) {
			a.modal = modalPalette
			a.paletteQuery = ""
			a.paletteCursor = 0
		},
		"help": func(keymap.KeyEvent) { a.modal = modalHelp },
		"save": func(keymap.KeyEvent) { a.enqueue(a.saveConfigCmd()) },
		"close": func(keymap.KeyEvent) {
			if a.modal != modalNone {
				a.closeModal()
				return
			}
			a.state = viewDashboard
		},
		"quit":      func(keymap.KeyEvent) { a.enqueue(tea.Quit) },
		"quit-hard": func(keymap.KeyEvent) { a.enqueue(tea.Quit) },
	})
	a.dispatcher.BindAll(string(viewTasks), a.registry, map[string]keymap.Handler{
		"new-task": func(keymap.KeyEvent) {
			a.modal = modalNewTask
			a.taskInput = ""
		},
	})
}

func (a *App) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

func (a *App) drain() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Batch(cmds...)
}

func (a *App) activeScope() string {
	return string(a.state)
}

// typing reports whether a text input currently owns the keyboard.
func (a *App) typing() bool {
	return a.modal == modalNewTask || a.modal == modalPalette
}

func (a *App) closeModal() {
	a.modal = modalNone
	a.taskInput = ""
	a.paletteQuery = ""
	a.paletteCursor = 0
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadProjects(), a.loadRoadmaps(), a.loadTasks(),
		a.loadTransactions(), a.loadSavings(), a.loadLoans(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.fileList.SetSize(m.Width-4, min(m.Height-6, 12))
	case projectsMsg:
		a.projects = []repository.Project(m)
		if a.projectCursor >= len(a.projects) {
			a.projectCursor = 0
		}
	case roadmapsMsg:
		a.roadmaps = []repository.Roadmap(m)
	case tasksMsg:
		a.tasks = []repository.Task(m)
		if a.taskCursor >= len(a.tasks) {
			a.taskCursor = 0
		}
	case transactionsMsg:
		a.transactions = []repository.Transaction(m)
	case savingsMsg:
		a.savings = []repository.Saving(m)
	case loansMsg:
		a.loans = []repository.Loan(m)
	case filesLoadedMsg:
		if m.err != nil {
			a.status = "error: " + m.err.Error()
			a.modal = modalNone
			return a, nil
		}
		a.fileList.SetItems(m.items)
	case exportDoneMsg:
		a.status = "exported " + m.file
	case importDoneMsg:
		res := m.Result
		a.lastImport = &res
		a.status = res.Message
		if len(res.Errors) > 0 {
			a.status += fmt.Sprintf(" (%d records skipped)", len(res.Errors))
		}
		if res.Success {
			return a, a.Init()
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.modal == modalImportPicker {
		return a.handlePickerKey(m)
	}
	if a.modal == modalPalette {
		if model, cmd, done := a.handlePaletteKey(m); done {
			return model, cmd
		}
	}
	if a.modal == modalNewTask {
		if model, cmd, done := a.handleNewTaskKey(m); done {
			return model, cmd
		}
	}

	ev := keymap.ParseKeyMsg(m)
	out := a.dispatcher.Dispatch(ev, a.activeScope(), a.typing())
	if out.Matched > 0 {
		return a, a.drain()
	}

	// cursor movement is ordinary list navigation, not part of the
	// configurable shortcut table
	switch m.String() {
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	switch a.state {
	case viewProjects:
		a.projectCursor = clamp(a.projectCursor+delta, len(a.projects))
	case viewTasks:
		a.taskCursor = clamp(a.taskCursor+delta, len(a.tasks))
	}
}

func clamp(v, n int) int {
	if v < 0 || n == 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "escape", "q":
		a.closeModal()
		return a, nil
	case "enter":
		item, ok := a.fileList.SelectedItem().(fileItem)
		a.closeModal()
		if !ok {
			return a, nil
		}
		a.status = "importing " + item.name + "..."
		return a, a.importCmd(filepath.Join(a.cfg.Backup.Dir, item.name))
	}
	var cmd tea.Cmd
	a.fileList, cmd = a.fileList.Update(m)
	return a, cmd
}

// handlePaletteKey consumes navigation and commit keys for the command
// palette. Everything else falls through to the dispatcher, whose typing
// guard leaves only escape live.
func (a *App) handlePaletteKey(m tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	ranked := rankShortcuts(a.paletteQuery, a.registry.Shortcuts())
	switch m.String() {
	case "up":
		if a.paletteCursor > 0 {
			a.paletteCursor--
		}
		return a, nil, true
	case "down":
		if a.paletteCursor < len(ranked)-1 {
			a.paletteCursor++
		}
		return a, nil, true
	case "enter":
		if a.paletteCursor >= len(ranked) {
			a.closeModal()
			return a, nil, true
		}
		s := ranked[a.paletteCursor]
		a.closeModal()
		ev := keymap.KeyEvent{Key: s.Key, Ctrl: s.Ctrl, Alt: s.Alt, Shift: s.Shift, Meta: s.Meta}
		a.dispatcher.Dispatch(ev, a.activeScope(), false)
		return a, a.drain(), true
	}
	switch m.Type {
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.paletteQuery) > 0 {
			a.paletteQuery = a.paletteQuery[:len(a.paletteQuery)-1]
			a.paletteCursor = 0
		}
		return a, nil, true
	case tea.KeySpace:
		a.paletteQuery += " "
		return a, nil, true
	case tea.KeyRunes:
		a.paletteQuery += string(m.Runes)
		a.paletteCursor = 0
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) handleNewTaskKey(m tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.Type {
	case tea.KeyEnter:
		title := strings.TrimSpace(a.taskInput)
		a.closeModal()
		if title == "" {
			a.status = "enter a task title"
			return a, nil, true
		}
		return a, a.createTaskCmd(title), true
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.taskInput) > 0 {
			a.taskInput = a.taskInput[:len(a.taskInput)-1]
		}
		return a, nil, true
	case tea.KeySpace:
		a.taskInput += " "
		return a, nil, true
	case tea.KeyRunes:
		a.taskInput += string(m.Runes)
		return a, nil, true
	}
	return a, nil, false
}

// commands

func (a *App) loadProjects() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Projects.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return projectsMsg(rows)
	}
}

func (a *App) loadRoadmaps() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Roadmaps.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return roadmapsMsg(rows)
	}
}

func (a *App) loadTasks() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Tasks.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return tasksMsg(rows)
	}
}

func (a *App) loadTransactions() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Transactions.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return transactionsMsg(rows)
	}
}

func (a *App) loadSavings() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Savings.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return savingsMsg(rows)
	}
}

func (a *App) loadLoans() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.repos.Loans.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return loansMsg(rows)
	}
}

func (a *App) exportCmd() tea.Cmd {
	return func() tea.Msg {
		file, err := a.exporter.ExportCompleteBackup(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{file: file}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return errMsg{fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()

		importers := a.backups.Importers()
		var res backup.ImportResult
		if strings.HasSuffix(strings.ToLower(path), ".csv") {
			typ := typeFromFilename(path)
			if typ == "" {
				return errMsg{fmt.Errorf("cannot tell which collection %s holds", filepath.Base(path))}
			}
			res, err = backup.ImportIndividualCSV(a.ctx, f, typ, importers[typ])
		} else {
			res, err = backup.ImportCompleteBackup(a.ctx, f, importers)
		}
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{Result: res}
	}
}

func (a *App) createTaskCmd(title string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			now := database.Now()
			t := repository.Task{
				ID:        uuid.NewString(),
				Title:     title,
				Priority:  "low",
				Status:    "todo",
				CreatedAt: now,
				UpdatedAt: now,
			}
			if len(a.projects) > 0 {
				t.ProjectID = a.projects[a.projectCursor].ID
			}
			if err := a.repos.Tasks.Insert(a.ctx, t); err != nil {
				return errMsg{err}
			}
			return statusMsg("task added")
		},
		a.loadTasks(),
	)
}

func (a *App) saveConfigCmd() tea.Cmd {
	return func() tea.Msg {
		if err := config.Save(a.cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg("config saved")
	}
}

// messages

type projectsMsg []repository.Project

type roadmapsMsg []repository.Roadmap

type tasksMsg []repository.Task

type transactionsMsg []repository.Transaction

type savingsMsg []repository.Saving

type loansMsg []repository.Loan

type filesLoadedMsg struct {
	items []list.Item
	err   error
}

type exportDoneMsg struct {
	file string
}

type importDoneMsg struct {
	Result backup.ImportResult
}

type statusMsg string

type errMsg struct{ error }

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewProjects:
		body = a.renderProjects()
	case viewTasks:
		body = a.renderTasks()
	case viewFinance:
		body = a.renderFinance()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		body += "\n" + a.status
	}
	return body
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("Fintrax Dashboard")
	open := 0
	for _, t := range a.tasks {
		if t.Status != "done" {
			open++
		}
	}
	var net float64
	for _, t := range a.transactions {
		if t.Type == "income" {
			net += t.Amount
		} else {
			net -= t.Amount
		}
	}
	body := fmt.Sprintf("Projects: %d  Roadmaps: %d  Tasks: %d (%d open)\nTransactions: %d  Net: %.2f  Savings: %d  Loans: %d",
		len(a.projects), len(a.roadmaps), len(a.tasks), open,
		len(a.transactions), net, len(a.savings), len(a.loans))
	if a.lastImport != nil {
		body += "\nLast import: " + a.lastImport.Message
		if len(a.lastImport.Errors) > 0 {
			body += "\nFirst skipped record: " + a.lastImport.Errors[0]
			if len(a.lastImport.Errors) > 1 {
				body += fmt.Sprintf(" (+%d more)", len(a.lastImport.Errors)-1)
			}
		}
	}
	return fmt.Sprintf("%s\n%s\n%s", title, body, a.footer())
}

func (a *App) renderProjects() string {
	title := titleStyle.Render("Projects")
	out := title + "\n"
	if len(a.projects) == 0 {
		out += dimStyle.Render("(no projects yet - import a backup to get started)") + "\n"
	}
	roadmapCount := map[string]int{}
	for _, r := range a.roadmaps {
		roadmapCount[r.ProjectID]++
	}
	for i, p := range a.projects {
		marker := " "
		if i == a.projectCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-30s %-10s %d roadmaps\n", marker, p.Name, p.Status, roadmapCount[p.ID])
	}
	return out + a.footer()
}

func (a *App) renderTasks() string {
	title := titleStyle.Render("Tasks")
	out := title + "\n"
	projectName := map[string]string{}
	for _, p := range a.projects {
		projectName[p.ID] = p.Name
	}
	for i, t := range a.tasks {
		marker := " "
		if i == a.taskCursor {
			marker = "▶"
		}
		proj := projectName[t.ProjectID]
		if proj == "" {
			proj = "-"
		}
		out += fmt.Sprintf("%s %-40s %-8s %-12s %s\n", marker, t.Title, t.Priority, t.Status, proj)
	}
	if s := a.registry.ByID("new-task"); s != nil {
		out += fmt.Sprintf("[%s] New task\n", keymap.Format(*s, a.platform))
	}
	return out + a.footer()
}

func (a *App) renderFinance() string {
	var title, rows string
	switch a.financeMode {
	case financeSavings:
		title = "Savings"
		for _, s := range a.savings {
			rows += fmt.Sprintf("  %-30s %10.2f  %.2f%%  %s\n", s.Source, s.Amount, s.InterestRate, s.MaturityDate)
		}
	case financeLoans:
		title = "Loans"
		for _, l := range a.loans {
			rows += fmt.Sprintf("  %-30s %10.2f  EMI %8.2f  %d months\n", l.Name, l.TotalAmount, l.EMI, l.DurationMonths)
		}
	default:
		title = "Transactions"
		for _, t := range a.transactions {
			rows += fmt.Sprintf("  %s  %-30s %10.2f  %s\n", t.Date, t.Name, t.Amount, t.Type)
		}
	}
	out := titleStyle.Render(title) + "\n" + rows
	if s := a.registry.ByID("toggle-view"); s != nil {
		out += fmt.Sprintf("[%s] Toggle transactions/savings/loans\n", keymap.Format(*s, a.platform))
	}
	return out + a.footer()
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalHelp:
		return a.renderHelp()
	case modalPalette:
		return a.renderPalette()
	case modalNewTask:
		return titleStyle.Render("New task") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.taskInput)
	case modalImportPicker:
		header := titleStyle.Render("Import backup") + "\n" + dimStyle.Render(a.cfg.Backup.Dir) + "\n"
		return header + a.fileList.View() + "\n[enter] Import  [esc] Cancel"
	default:
		return ""
	}
}

func (a *App) renderHelp() string {
	out := titleStyle.Render("Keyboard Shortcuts") + "\n"
	for _, g := range keymap.GroupByCategory(a.registry.Shortcuts()) {
		out += "\n" + headingStyle.Render(g.Category.Label()) + "\n"
		for _, s := range g.Shortcuts {
			if s.Disabled {
				continue
			}
			out += fmt.Sprintf("  %-14s %s\n", keymap.Format(s, a.platform), s.Description)
		}
	}
	return out + "\n[esc] Close"
}

func (a *App) renderPalette() string {
	out := titleStyle.Render("Command Palette") + "\n> " + a.paletteQuery + "\n"
	ranked := rankShortcuts(a.paletteQuery, a.registry.Shortcuts())
	if len(ranked) > 8 {
		ranked = ranked[:8]
	}
	for i, s := range ranked {
		marker := " "
		if i == a.paletteCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-32s %s\n", marker, s.Description, dimStyle.Render(keymap.Format(s, a.platform)))
	}
	if len(ranked) == 0 {
		out += dimStyle.Render("  no matching commands") + "\n"
	}
	return out + "[enter] Run  [esc] Cancel"
}

func (a *App) footer() string {
	ids := []string{"go-dashboard", "go-projects", "go-tasks", "go-finance", "export-backup", "import-backup", "help", "quit"}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		s := a.registry.ByID(id)
		if s == nil || s.Disabled {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", keymap.Format(*s, a.platform), s.Description))
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}
