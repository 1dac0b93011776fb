package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/skimr/internal/book"
	"github.com/abhisek/skimr/internal/config"
	"github.com/abhisek/skimr/internal/router"
	"github.com/abhisek/skimr/internal/screens/reader"
	"github.com/abhisek/skimr/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "skimr.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func addBook(t *testing.T, st *store.Store, title string, words book.Words) {
	t.Helper()
	b := &book.Book{
		ID:      uuid.New().String(),
		Title:   title,
		Path:    "/tmp/" + title + ".txt",
		AddedAt: time.Now().UTC(),
	}
	if _, err := st.AddBook(context.Background(), b, words); err != nil {
		t.Fatalf("add book %q: %v", title, err)
	}
}

// loadedLibrary builds a library screen and runs its load synchronously.
func loadedLibrary(t *testing.T, st *store.Store) *LibraryScreen {
	t.Helper()
	l := New(st, config.Default())
	l.Update(l.Init()())
	if !l.loaded {
		t.Fatal("expected library to be loaded")
	}
	return l
}

func TestLibraryScreen_Title(t *testing.T) {
	l := New(openTestStore(t), config.Default())
	if l.Title() != "Library" {
		t.Errorf("Title = %q, want %q", l.Title(), "Library")
	}
}

func TestLoadBuildsMenu(t *testing.T) {
	st := openTestStore(t)
	addBook(t, st, "First", book.Words{"a", "b", "c"})
	addBook(t, st, "Second", book.Words{"d", "e", "f"})

	l := loadedLibrary(t, st)

	// Two books plus Import, History and Quit.
	if got := len(l.menu.Items); got != 5 {
		t.Errorf("menu items = %d, want 5", got)
	}
}

func TestEnterOpensReader(t *testing.T) {
	st := openTestStore(t)
	addBook(t, st, "Only Book", book.Words{"a", "b", "c"})

	l := loadedLibrary(t, st)

	_, cmd := l.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command opening the reader")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want PushScreenMsg", cmd())
	}
	if _, ok := push.Screen.(*reader.ReaderScreen); !ok {
		t.Errorf("pushed screen is %T, want *reader.ReaderScreen", push.Screen)
	}
}

func TestImportCreatesBook(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	path := filepath.Join(t.TempDir(), "short_story.txt")
	if err := os.WriteFile(path, []byte("It was a bright cold day in April."), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l.Update(keyPress('i'))
	if !l.importing {
		t.Fatal("expected import dialog after i")
	}

	l.importInput.Model.SetValue(path)
	_, cmd := l.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected an import command")
	}

	msg := cmd()
	imported, ok := msg.(bookImportedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want bookImportedMsg", msg)
	}
	if imported.Err != nil {
		t.Fatalf("import: %v", imported.Err)
	}
	if !imported.Created {
		t.Error("expected a newly created library entry")
	}
	if imported.Info.Title != "short story" {
		t.Errorf("imported title = %q, want %q", imported.Info.Title, "short story")
	}

	_, reload := l.Update(msg)
	if reload == nil {
		t.Fatal("expected a reload command after import")
	}
	l.Update(reload())

	if len(l.books) != 1 {
		t.Errorf("books after import = %d, want 1", len(l.books))
	}
}

func TestImportMissingFileShowsError(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	l.Update(keyPress('i'))
	l.importInput.Model.SetValue(filepath.Join(t.TempDir(), "nope.txt"))
	_, cmd := l.Update(specialKey(tea.KeyEnter))

	l.Update(cmd())
	if !l.noticeErr {
		t.Error("expected an error notice for a missing file")
	}
	if l.importing {
		t.Error("expected import dialog closed after failure")
	}
}

func TestImportEscCancels(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	l.Update(keyPress('i'))
	l.Update(specialKey(tea.KeyEscape))
	if l.importing {
		t.Error("expected import dialog closed after esc")
	}
}

func TestRefreshReloads(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	addBook(t, st, "Added Later", book.Words{"a", "b"})

	cmd := l.Refresh()
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
	l.Update(cmd())

	if len(l.books) != 1 {
		t.Errorf("books after refresh = %d, want 1", len(l.books))
	}
}

func TestQuitKey(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	_, cmd := l.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a quit command on esc")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("cmd returned %T, want tea.QuitMsg", cmd())
	}
}

func TestHistoryKey(t *testing.T) {
	st := openTestStore(t)
	l := loadedLibrary(t, st)

	_, cmd := l.Update(keyPress('h'))
	if cmd == nil {
		t.Fatal("expected a command pushing history")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Errorf("cmd returned %T, want PushScreenMsg", cmd())
	}
}

func TestBookDetailShowsProgress(t *testing.T) {
	detail := bookDetail(store.BookInfo{
		Book:      book.Book{Title: "A Book", WordCount: 200},
		WordIndex: 100,
	})
	if want := " 50%"; !strings.Contains(detail, want) {
		t.Errorf("detail %q missing %q", detail, want)
	}

	fresh := bookDetail(store.BookInfo{
		Book: book.Book{Title: "A Book", WordCount: 200},
	})
	if want := " new"; !strings.Contains(fresh, want) {
		t.Errorf("detail %q missing %q", fresh, want)
	}
}

func TestBookTitleTruncates(t *testing.T) {
	long := strings.Repeat("word ", 20)
	got := bookTitle(store.BookInfo{Book: book.Book{Title: long}})
	if w := runewidth.StringWidth(got); w > 40 {
		t.Errorf("truncated title is %d cells wide, want <= 40", w)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated title %q missing ellipsis", got)
	}
}
