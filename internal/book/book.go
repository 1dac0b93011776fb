package book

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is an imported text in the library.
type Book struct {
	ID        string
	Title     string
	Author    string
	Path      string
	WordCount int
	AddedAt   time.Time
}

// Words is a book's tokenized text in reading order. It satisfies the
// playback engine's word sequence contract.
type Words []string

// Len returns the number of tokens.
func (w Words) Len() int {
	return len(w)
}

// Word returns the token at index i.
func (w Words) Word(i int) string {
	return w[i]
}

// Tokenize splits raw text into display tokens on whitespace. Punctuation
// stays attached to its word; the cadence weighting depends on it.
func Tokenize(text string) Words {
	return Words(strings.Fields(text))
}

// TitleFromPath derives a human-readable title from a file name.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.NewReplacer("_", " ", "-", " ").Replace(title)
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return base
	}
	return title
}

// FromFile reads and tokenizes a plain-text file into a new Book.
func FromFile(path string) (*Book, Words, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read book: %w", err)
	}

	words := Tokenize(string(data))
	if len(words) == 0 {
		return nil, nil, fmt.Errorf("%s contains no words", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &Book{
		ID:        uuid.New().String(),
		Title:     TitleFromPath(path),
		Path:      abs,
		WordCount: len(words),
		AddedAt:   time.Now(),
	}, words, nil
}

// Progress formats a word index as a percentage of the book.
func Progress(wordIndex, wordCount int) float64 {
	if wordCount <= 0 {
		return 0
	}
	p := float64(wordIndex) / float64(wordCount)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
