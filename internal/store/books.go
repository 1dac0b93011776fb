package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/skimr/internal/book"
)

// ErrBookNotFound is returned when no book matches a lookup query.
var ErrBookNotFound = errors.New("book not found")

// BookInfo is a library entry: the book plus its saved reading position.
type BookInfo struct {
	book.Book
	WordIndex int
}

// AddBook stores a book and its word sequence. If a book with the same
// source path already exists it is re-imported in place: the text is
// replaced, the original ID and added-at time are kept, and any saved
// position is clamped to the new length. Returns whether a new library
// entry was created.
func (s *Store) AddBook(ctx context.Context, b *book.Book, words book.Words) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	var addedAt string
	err = tx.QueryRowContext(ctx,
		"SELECT id, added_at FROM books WHERE path = ?", b.Path,
	).Scan(&existingID, &addedAt)

	created := false
	switch {
	case err == sql.ErrNoRows:
		created = true
		_, err = tx.ExecContext(ctx,
			`INSERT INTO books (id, title, author, path, word_count, added_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Title, b.Author, b.Path, len(words), b.AddedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return false, fmt.Errorf("insert book: %w", err)
		}
	case err != nil:
		return false, fmt.Errorf("lookup book by path: %w", err)
	default:
		// Re-import: keep identity, replace the text.
		b.ID = existingID
		if t, perr := time.Parse(time.RFC3339Nano, addedAt); perr == nil {
			b.AddedAt = t
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE books SET title = ?, author = ?, word_count = ? WHERE id = ?",
			b.Title, b.Author, len(words), b.ID,
		)
		if err != nil {
			return false, fmt.Errorf("update book: %w", err)
		}
		if _, err = tx.ExecContext(ctx, "DELETE FROM book_words WHERE book_id = ?", b.ID); err != nil {
			return false, fmt.Errorf("clear words: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE progress SET word_index = MIN(word_index, ?) WHERE book_id = ?`,
			maxIndex(len(words)), b.ID,
		)
		if err != nil {
			return false, fmt.Errorf("clamp progress: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO book_words (book_id, idx, word) VALUES (?, ?, ?)")
	if err != nil {
		return false, fmt.Errorf("prepare word insert: %w", err)
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, b.ID, i, w); err != nil {
			return false, fmt.Errorf("insert word %d: %w", i, err)
		}
	}

	b.WordCount = len(words)
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}

// Books lists the library ordered by most recently added, with the saved
// position for each book (zero when never read).
func (s *Store) Books(ctx context.Context) ([]BookInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.title, b.author, b.path, b.word_count, b.added_at,
		        COALESCE(p.word_index, 0)
		 FROM books b
		 LEFT JOIN progress p ON p.book_id = b.id
		 ORDER BY b.added_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var infos []BookInfo
	for rows.Next() {
		var bi BookInfo
		var addedAt string
		if err := rows.Scan(&bi.ID, &bi.Title, &bi.Author, &bi.Path,
			&bi.WordCount, &addedAt, &bi.WordIndex); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		bi.AddedAt, _ = time.Parse(time.RFC3339Nano, addedAt)
		infos = append(infos, bi)
	}
	return infos, rows.Err()
}

// FindBook resolves a query to a single library entry. The query is tried
// as an exact ID, then an exact title, then a case-insensitive title
// substring. Returns ErrBookNotFound when nothing matches.
func (s *Store) FindBook(ctx context.Context, query string) (*BookInfo, error) {
	lookups := []struct {
		where string
		arg   string
	}{
		{"b.id = ?", query},
		{"b.title = ?", query},
		{"b.title LIKE ? ESCAPE '\\'", "%" + escapeLike(query) + "%"},
	}

	for _, l := range lookups {
		bi, err := s.findBookWhere(ctx, l.where, l.arg)
		if err == nil {
			return bi, nil
		}
		if !errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%q: %w", query, ErrBookNotFound)
}

func (s *Store) findBookWhere(ctx context.Context, where, arg string) (*BookInfo, error) {
	var bi BookInfo
	var addedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT b.id, b.title, b.author, b.path, b.word_count, b.added_at,
		        COALESCE(p.word_index, 0)
		 FROM books b
		 LEFT JOIN progress p ON p.book_id = b.id
		 WHERE `+where+`
		 ORDER BY b.added_at DESC
		 LIMIT 1`, arg,
	).Scan(&bi.ID, &bi.Title, &bi.Author, &bi.Path, &bi.WordCount, &addedAt, &bi.WordIndex)
	if err == sql.ErrNoRows {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query book: %w", err)
	}
	bi.AddedAt, _ = time.Parse(time.RFC3339Nano, addedAt)
	return &bi, nil
}

// Words loads a book's word sequence in order.
func (s *Store) Words(ctx context.Context, bookID string) (book.Words, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT word FROM book_words WHERE book_id = ? ORDER BY idx", bookID)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var words book.Words
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// escapeLike escapes LIKE metacharacters so user queries match literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func maxIndex(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return wordCount - 1
}
