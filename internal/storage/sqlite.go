// Package storage provides the SQLite implementation of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		document_type TEXT NOT NULL,
		category TEXT,
		sub_category TEXT,
		department TEXT,
		created_date TEXT,
		last_updated TEXT,
		status TEXT DEFAULT 'Active',
		jurisdiction TEXT,
		keywords TEXT,
		document_url TEXT,
		search_priority INTEGER DEFAULT 1,
		full_text_content TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_type ON documents(document_type);
	CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);
	CREATE INDEX IF NOT EXISTS idx_documents_department ON documents(department);
	`
	_, err := db.Exec(schema)
	return err
}

const documentColumns = `id, title, content, document_type, category, sub_category,
	department, created_date, last_updated, status, jurisdiction, keywords,
	document_url, search_priority, full_text_content`

func scanDocument(row interface{ Scan(...any) error }) (*models.Document, error) {
	var doc models.Document
	var category, subCategory, department, createdDate, lastUpdated sql.NullString
	var status, jurisdiction, keywords, documentURL, fullText sql.NullString
	var priority sql.NullInt64
	err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.DocumentType,
		&category, &subCategory, &department, &createdDate, &lastUpdated,
		&status, &jurisdiction, &keywords, &documentURL, &priority, &fullText)
	if err != nil {
		return nil, err
	}
	doc.Category = category.String
	doc.SubCategory = subCategory.String
	doc.Department = department.String
	doc.CreatedDate = createdDate.String
	doc.LastUpdated = lastUpdated.String
	doc.Status = status.String
	doc.Jurisdiction = jurisdiction.String
	doc.Keywords = keywords.String
	doc.DocumentURL = documentURL.String
	doc.SearchPriority = int(priority.Int64)
	doc.FullTextContent = fullText.String
	return &doc, nil
}

// CreateDocument inserts a document. When doc.ID is zero the generated
// rowid is written back into doc.ID.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	return s.insertDocument(ctx, s.db, doc)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) insertDocument(ctx context.Context, ex execer, doc *models.Document) error {
	if doc.ID == 0 {
		res, err := ex.ExecContext(ctx,
			`INSERT INTO documents (title, content, document_type, category, sub_category,
				department, created_date, last_updated, status, jurisdiction, keywords,
				document_url, search_priority, full_text_content)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.Title, doc.Content, doc.DocumentType, doc.Category, doc.SubCategory,
			doc.Department, doc.CreatedDate, doc.LastUpdated, doc.Status, doc.Jurisdiction,
			doc.Keywords, doc.DocumentURL, doc.SearchPriority, doc.FullTextContent,
		)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		doc.ID = id
		return nil
	}
	_, err := ex.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.Title, doc.Content, doc.DocumentType, doc.Category, doc.SubCategory,
		doc.Department, doc.CreatedDate, doc.LastUpdated, doc.Status, doc.Jurisdiction,
		doc.Keywords, doc.DocumentURL, doc.SearchPriority, doc.FullTextContent,
	)
	return err
}

// GetDocument returns a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %d", id)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns the full catalog ordered by search priority, then
// newest first.
func (s *SQLiteStore) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 ORDER BY COALESCE(search_priority, 1) DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ReplaceAll replaces the whole catalog in a single transaction. Used when
// the seed file is (re)loaded.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, docs []*models.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.insertDocument(ctx, tx, doc); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SearchDocuments runs the weighted LIKE search. With a query, relevance is
// scored by where the match occurs (title 5, keywords 3, content 2, anything
// else 1) multiplied by the document's search priority, and results are
// ordered by that relevance. Without a query, results are the filtered
// catalog newest first.
func (s *SQLiteStore) SearchDocuments(ctx context.Context, f Filter) ([]*models.Document, error) {
	var (
		query  string
		params []any
	)
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		query = `SELECT ` + documentColumns + `,
			(CASE
			 WHEN title LIKE ? THEN 5
			 WHEN keywords LIKE ? THEN 3
			 WHEN content LIKE ? THEN 2
			 ELSE 1
			END) * COALESCE(search_priority, 1) AS relevance
			FROM documents
			WHERE (title LIKE ? OR content LIKE ? OR keywords LIKE ? OR full_text_content LIKE ?)`
		params = []any{pattern, pattern, pattern, pattern, pattern, pattern, pattern}
	} else {
		query = `SELECT ` + documentColumns + `, 1 AS relevance FROM documents WHERE 1=1`
	}

	if f.DocumentType != "" {
		query += ` AND document_type = ?`
		params = append(params, f.DocumentType)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		params = append(params, f.Category)
	}
	if f.Department != "" {
		query += ` AND department = ?`
		params = append(params, f.Department)
	}

	if f.Query != "" {
		query += ` ORDER BY relevance DESC, COALESCE(search_priority, 1) DESC, id DESC`
	} else {
		query += ` ORDER BY id DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocumentWithRelevance(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// scanDocumentWithRelevance scans rows that carry the computed relevance
// column. Relevance only drives the ORDER BY; it is not surfaced.
func scanDocumentWithRelevance(rows *sql.Rows) (*models.Document, error) {
	var doc models.Document
	var category, subCategory, department, createdDate, lastUpdated sql.NullString
	var status, jurisdiction, keywords, documentURL, fullText sql.NullString
	var priority, relevance sql.NullInt64
	err := rows.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.DocumentType,
		&category, &subCategory, &department, &createdDate, &lastUpdated,
		&status, &jurisdiction, &keywords, &documentURL, &priority, &fullText,
		&relevance)
	if err != nil {
		return nil, err
	}
	doc.Category = category.String
	doc.SubCategory = subCategory.String
	doc.Department = department.String
	doc.CreatedDate = createdDate.String
	doc.LastUpdated = lastUpdated.String
	doc.Status = status.String
	doc.Jurisdiction = jurisdiction.String
	doc.Keywords = keywords.String
	doc.DocumentURL = documentURL.String
	doc.SearchPriority = int(priority.Int64)
	doc.FullTextContent = fullText.String
	return &doc, nil
}

func (s *SQLiteStore) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT `+column+` FROM documents
		 WHERE `+column+` IS NOT NULL AND `+column+` != '' ORDER BY `+column)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Categories returns all distinct categories, sorted.
func (s *SQLiteStore) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// DocumentTypes returns all distinct document types, sorted.
func (s *SQLiteStore) DocumentTypes(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "document_type")
}

// Departments returns all distinct departments, sorted.
func (s *SQLiteStore) Departments(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "department")
}

// CountDocuments returns the total number of documents.
func (s *SQLiteStore) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
