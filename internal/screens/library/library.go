package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/config"
	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/screen"
	"github.com/abhisek/skimr/internal/screens/history"
	"github.com/abhisek/skimr/internal/screens/reader"
	"github.com/abhisek/skimr/internal/store"
	"github.com/abhisek/skimr/internal/ui/components"
	"github.com/abhisek/skimr/internal/ui/layout"
	"github.com/abhisek/skimr/internal/ui/theme"
)

const storeTimeout = 5 * time.Second

type booksLoadedMsg struct {
	Books []store.BookInfo
	Err   error
}

type bookImportedMsg struct {
	Info    *store.BookInfo
	Created bool
	Err     error
}

// LibraryScreen is the root screen: the imported books, each opening a
// reading session, plus entries for importing and history.
type LibraryScreen struct {
	store *store.Store
	cfg   config.Config

	books  []store.BookInfo
	menu   components.Menu
	loaded bool
	errMsg string

	importing   bool
	importInput components.TextInput
	notice      string
	noticeErr   bool
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.Refresher = (*LibraryScreen)(nil)

// New creates the library screen. Books load asynchronously in Init.
func New(st *store.Store, cfg config.Config) *LibraryScreen {
	return &LibraryScreen{store: st, cfg: cfg}
}

func (l *LibraryScreen) Init() tea.Cmd {
	return l.loadCmd()
}

// Refresh reloads the library when a reading session pops back, so saved
// positions are current.
func (l *LibraryScreen) Refresh() tea.Cmd {
	return l.loadCmd()
}

func (l *LibraryScreen) loadCmd() tea.Cmd {
	st := l.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		books, err := st.Books(ctx)
		return booksLoadedMsg{Books: books, Err: err}
	}
}

func (l *LibraryScreen) importCmd(path string) tea.Cmd {
	st := l.store
	return func() tea.Msg {
		b, words, err := book.FromFile(path)
		if err != nil {
			return bookImportedMsg{Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		created, err := st.AddBook(ctx, b, words)
		if err != nil {
			return bookImportedMsg{Err: err}
		}
		return bookImportedMsg{Info: &store.BookInfo{Book: *b}, Created: created}
	}
}

func (l *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case booksLoadedMsg:
		if msg.Err != nil {
			l.errMsg = fmt.Sprintf("could not load library: %v", msg.Err)
			return l, nil
		}
		l.errMsg = ""
		l.books = msg.Books
		l.rebuildMenu()
		l.loaded = true
		return l, nil

	case bookImportedMsg:
		l.importing = false
		if msg.Err != nil {
			l.notice = fmt.Sprintf("import failed: %v", msg.Err)
			l.noticeErr = true
			return l, nil
		}
		verb := "Imported"
		if !msg.Created {
			verb = "Re-imported"
		}
		l.notice = fmt.Sprintf("%s %q (%d words)", verb, msg.Info.Title, msg.Info.WordCount)
		l.noticeErr = false
		return l, l.loadCmd()

	case tea.KeyMsg:
		return l.handleKey(msg)
	}

	if l.importing {
		var cmd tea.Cmd
		l.importInput, cmd = l.importInput.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LibraryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if l.importing {
		switch msg.String() {
		case "esc":
			l.importing = false
			return l, nil
		case "enter":
			path := strings.TrimSpace(l.importInput.Value())
			if path == "" {
				l.importing = false
				return l, nil
			}
			l.notice = fmt.Sprintf("Importing %s...", path)
			l.noticeErr = false
			return l, l.importCmd(path)
		}
		var cmd tea.Cmd
		l.importInput, cmd = l.importInput.Update(msg)
		return l, cmd
	}

	switch msg.String() {
	case "esc", "q":
		return l, tea.Quit
	case "i":
		return l, l.openImport()
	case "h":
		return l, l.pushHistory()
	}

	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LibraryScreen) openImport() tea.Cmd {
	l.importing = true
	l.notice = ""
	l.importInput = components.NewTextInput("path to a .txt file", false, 0)
	return l.importInput.Init()
}

func (l *LibraryScreen) pushHistory() tea.Cmd {
	st := l.store
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: history.New(st)}
	}
}

// rebuildMenu rebuilds the menu from the current book list, keeping the
// selection in place across reloads.
func (l *LibraryScreen) rebuildMenu() {
	selected := l.menu.Selected

	items := make([]components.MenuItem, 0, len(l.books)+3)
	for _, bi := range l.books {
		info := bi
		items = append(items, components.MenuItem{
			Label:  bookTitle(info),
			Detail: bookDetail(info),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: reader.New(l.store, l.cfg, info)}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "Import a book", Action: func() tea.Cmd {
			return l.openImport()
		}},
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return l.pushHistory()
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	l.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		l.menu.Selected = selected
	}
}

// bookTitle truncates long titles so the detail column stays on screen.
func bookTitle(bi store.BookInfo) string {
	return runewidth.Truncate(bi.Title, 40, "...")
}

// bookDetail formats the size and saved position column.
func bookDetail(bi store.BookInfo) string {
	pos := fmt.Sprintf("%3d%%", int(book.Progress(bi.WordIndex, bi.WordCount)*100))
	if bi.WordIndex == 0 {
		pos = " new"
	}
	return fmt.Sprintf("%7d words  %s", bi.WordCount, pos)
}

func (l *LibraryScreen) View(width, height int) string {
	if l.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("\n\n\n  Error: %s", l.errMsg))
	}
	if !l.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Loading library...")
	}
	if l.importing {
		return l.renderImport(width)
	}

	var b strings.Builder
	b.WriteString("\n")

	count := "no books yet"
	switch len(l.books) {
	case 1:
		count = "1 book"
	default:
		if len(l.books) > 1 {
			count = fmt.Sprintf("%d books", len(l.books))
		}
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(count))
	b.WriteString("\n\n")

	menu := l.menu
	menu.MaxVisible = height - 8
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu.View()))

	if len(l.books) == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("Import a plain-text file to start reading.")))
	}

	if l.notice != "" {
		color := theme.Success
		if l.noticeErr {
			color = theme.Error
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(color).
			Render(l.notice))
	}

	return b.String()
}

func (l *LibraryScreen) renderImport(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Import a book"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Path to a plain-text file. Re-importing the same path replaces the text."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "File: "+l.importInput.View()))

	return b.String()
}

func (l *LibraryScreen) Title() string {
	return "Library"
}

func (l *LibraryScreen) KeyHints() []layout.KeyHint {
	if l.importing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Import"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "i", Description: "Import"},
		{Key: "h", Description: "History"},
		{Key: "Esc", Description: "Quit"},
	}
}
