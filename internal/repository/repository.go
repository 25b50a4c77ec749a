package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"newspulse/internal/models"
)

// ErrDuplicateEmail is returned when a user row violates the email unique constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks database connectivity
func (r *Repository) Ping() error {
	return r.db.Ping()
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRow(query, user.Email, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash
		FROM users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListBookmarks returns all articles bookmarked by the user, in arbitrary order
func (r *Repository) ListBookmarks(userID int64) ([]models.Article, error) {
	query := `
		SELECT a.id, a.url, a.title, a.description, a.url_to_image, a.source_name
		FROM articles a
		JOIN user_bookmarks ub ON a.id = ub.article_id
		WHERE ub.user_id = $1`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.URL, &a.Title, &a.Description, &a.URLToImage, &a.SourceName); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}
	return articles, nil
}

// AddBookmark stores the article if its URL is new, then links it to the user.
// All three statements run in one transaction; any failure rolls back the whole
// sequence. Re-bookmarking the same URL is a no-op, and a URL already stored by
// another user keeps its original metadata.
func (r *Repository) AddBookmark(userID int64, article *models.Article) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertArticle := `
		INSERT INTO articles (url, title, description, url_to_image, source_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (url) DO NOTHING`
	if _, err := tx.Exec(insertArticle, article.URL, article.Title, article.Description, article.URLToImage, article.SourceName); err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	var articleID int64
	if err := tx.QueryRow(`SELECT id FROM articles WHERE url = $1`, article.URL).Scan(&articleID); err != nil {
		return fmt.Errorf("failed to resolve article id: %w", err)
	}

	insertBookmark := `
		INSERT INTO user_bookmarks (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(insertBookmark, userID, articleID); err != nil {
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark deletes the user's bookmark for the given URL.
// Deleting a bookmark that does not exist is not an error.
func (r *Repository) RemoveBookmark(userID int64, articleURL string) error {
	query := `
		DELETE FROM user_bookmarks
		WHERE user_id = $1 AND article_id = (SELECT id FROM articles WHERE url = $2)`
	if _, err := r.db.Exec(query, userID, articleURL); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}
