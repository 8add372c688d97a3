package librarytest

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("book is not available")
	ErrLimitExceeded = errors.New("borrowing limit exceeded")
	ErrBorrowed      = errors.New("entity has borrowed copies")
)

// DefaultBorrowLimit is how many books one user may hold at once.
const DefaultBorrowLimit = 5

// BookRow is a stored book with its circulation counters.
type BookRow struct {
	ID                    int64
	Title                 string
	Author                string
	Amount                int
	AmountOfBorrowedBooks int
}

// UserRow is a stored user together with the titles currently lent to them.
type UserRow struct {
	ID                    int64
	Name                  string
	MembershipDate        time.Time
	NumberOfBorrowedBooks int
	BorrowedTitles        []string
}

// StatisticRow counts the copies of one title currently lent out.
type StatisticRow struct {
	Title string
	Count int64
}

// Database is the SQLite store behind the stand-in API.
type Database struct {
	db *sql.DB

	BorrowLimit int

	addBookStmt *sql.Stmt
	addUserStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db, BorrowLimit: DefaultBorrowLimit}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.addBookStmt != nil {
		d.addBookStmt.Close()
	}
	if d.addUserStmt != nil {
		d.addUserStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            membership_date INTEGER NOT NULL,
            number_of_borrowed_books INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS books (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            title TEXT NOT NULL,
            author TEXT NOT NULL,
            amount INTEGER NOT NULL DEFAULT 1,
            amount_of_borrowed_books INTEGER NOT NULL DEFAULT 0
        );`,
		`CREATE TABLE IF NOT EXISTS borrowings (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            user_id INTEGER NOT NULL REFERENCES users(id),
            book_id INTEGER NOT NULL REFERENCES books(id),
            borrowed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE INDEX IF NOT EXISTS idx_borrowings_user_book ON borrowings(user_id, book_id);`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addBookStmt, err = d.db.Prepare(`INSERT INTO books(title,author) VALUES(?,?)`); err != nil {
		return err
	}
	if d.addUserStmt, err = d.db.Prepare(`INSERT INTO users(name,membership_date) VALUES(?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

// AddBook registers one more copy. A book with the same title and author
// gains a copy instead of getting a second row.
func (d *Database) AddBook(title, author string) (int64, error) {
	var id int64
	err := d.db.QueryRow(`SELECT id FROM books WHERE title=? AND author=?`, title, author).Scan(&id)
	switch {
	case err == nil:
		if _, err := d.db.Exec(`UPDATE books SET amount=amount+1 WHERE id=?`, id); err != nil {
			return 0, err
		}
		return id, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, err
	}

	res, err := d.addBookStmt.Exec(title, author)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *Database) GetBook(id int64) (*BookRow, error) {
	var b BookRow
	err := d.db.QueryRow(`SELECT id,title,author,amount,amount_of_borrowed_books FROM books WHERE id=?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Amount, &b.AmountOfBorrowedBooks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("book %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (d *Database) UpdateBook(id int64, title, author string, amount int) error {
	res, err := d.db.Exec(`UPDATE books SET title=?, author=?, amount=? WHERE id=?`, title, author, amount, id)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("book %d", id))
}

// DeleteBook refuses to drop a book while copies of it are lent out.
func (d *Database) DeleteBook(id int64) error {
	b, err := d.GetBook(id)
	if err != nil {
		return err
	}
	if b.AmountOfBorrowedBooks > 0 {
		return fmt.Errorf("book %d: %w", id, ErrBorrowed)
	}
	_, err = d.db.Exec(`DELETE FROM books WHERE id=?`, id)
	return err
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// AddUser registers a user whose membership starts at now.
func (d *Database) AddUser(name string, now time.Time) (int64, error) {
	res, err := d.addUserStmt.Exec(name, now.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *Database) GetUser(id int64) (*UserRow, error) {
	var (
		u  UserRow
		ms int64
	)
	err := d.db.QueryRow(`SELECT id,name,membership_date,number_of_borrowed_books FROM users WHERE id=?`, id).
		Scan(&u.ID, &u.Name, &ms, &u.NumberOfBorrowedBooks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	u.MembershipDate = time.UnixMilli(ms).UTC()

	titles, err := d.queryTitles(`SELECT b.title FROM borrowings br JOIN books b ON b.id = br.book_id WHERE br.user_id = ? ORDER BY br.id`, id)
	if err != nil {
		return nil, err
	}
	u.BorrowedTitles = titles
	return &u, nil
}

func (d *Database) UpdateUser(id int64, name string) error {
	res, err := d.db.Exec(`UPDATE users SET name=? WHERE id=?`, name, id)
	if err != nil {
		return err
	}
	return requireAffected(res, fmt.Sprintf("user %d", id))
}

// DeleteUser refuses to drop a user who still holds books.
func (d *Database) DeleteUser(id int64) error {
	u, err := d.GetUser(id)
	if err != nil {
		return err
	}
	if u.NumberOfBorrowedBooks > 0 {
		return fmt.Errorf("user %d: %w", id, ErrBorrowed)
	}
	_, err = d.db.Exec(`DELETE FROM users WHERE id=?`, id)
	return err
}

// ---------------------------------------------------------------------------
// Circulation
// ---------------------------------------------------------------------------

// Borrow lends one copy of a book and updates both counters in one transaction.
func (d *Database) Borrow(userID, bookID int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var held int
	if err := tx.QueryRow(`SELECT number_of_borrowed_books FROM users WHERE id=?`, userID).Scan(&held); err != nil {
		return notFound(err, fmt.Sprintf("user %d", userID))
	}
	var amount int
	if err := tx.QueryRow(`SELECT amount FROM books WHERE id=?`, bookID).Scan(&amount); err != nil {
		return notFound(err, fmt.Sprintf("book %d", bookID))
	}

	if amount == 0 {
		return fmt.Errorf("book %d: %w", bookID, ErrUnavailable)
	}
	if held >= d.BorrowLimit {
		return fmt.Errorf("user %d: %w", userID, ErrLimitExceeded)
	}

	if _, err := tx.Exec(`INSERT INTO borrowings(user_id,book_id) VALUES(?,?)`, userID, bookID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE books SET amount=amount-1, amount_of_borrowed_books=amount_of_borrowed_books+1 WHERE id=?`, bookID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE users SET number_of_borrowed_books=number_of_borrowed_books+1 WHERE id=?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// Return takes back the oldest copy of a book lent to the user.
func (d *Database) Return(userID, bookID int64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var borrowingID int64
	err = tx.QueryRow(`SELECT id FROM borrowings WHERE user_id=? AND book_id=? ORDER BY id LIMIT 1`, userID, bookID).
		Scan(&borrowingID)
	if err != nil {
		return notFound(err, fmt.Sprintf("borrowing of book %d by user %d", bookID, userID))
	}

	if _, err := tx.Exec(`DELETE FROM borrowings WHERE id=?`, borrowingID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE books SET amount=amount+1, amount_of_borrowed_books=amount_of_borrowed_books-1 WHERE id=?`, bookID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE users SET number_of_borrowed_books=number_of_borrowed_books-1 WHERE id=?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// BorrowedTitles lists the titles lent to the user with the given name.
func (d *Database) BorrowedTitles(name string) ([]string, error) {
	var id int64
	if err := d.db.QueryRow(`SELECT id FROM users WHERE name=? ORDER BY id LIMIT 1`, name).Scan(&id); err != nil {
		return nil, notFound(err, fmt.Sprintf("user %q", name))
	}
	return d.queryTitles(`SELECT b.title FROM borrowings br JOIN books b ON b.id = br.book_id WHERE br.user_id = ? ORDER BY br.id`, id)
}

// Statistic counts lent copies per title.
func (d *Database) Statistic() ([]StatisticRow, error) {
	rows, err := d.db.Query(`
        SELECT b.title, COUNT(*)
        FROM borrowings br
        JOIN books b ON b.id = br.book_id
        GROUP BY b.title
        ORDER BY b.title;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []StatisticRow
	for rows.Next() {
		var s StatisticRow
		if err := rows.Scan(&s.Title, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// DistinctTitles lists every title with at least one copy lent out.
func (d *Database) DistinctTitles() ([]string, error) {
	return d.queryTitles(`SELECT DISTINCT b.title FROM borrowings br JOIN books b ON b.id = br.book_id ORDER BY b.title`)
}

func (d *Database) queryTitles(query string, args ...any) ([]string, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
