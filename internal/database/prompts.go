package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"story-insights-backend/internal/errs"
	"story-insights-backend/internal/models"
	"story-insights-backend/internal/prompts"
)

const uniqueViolation = "23505"

const promptColumns = `prompt_id, flow, prompt_title, mode, prompt_description, version, prompt, author, changelog, tokens, display_date, display_time`

// Client is the prompt-version store over direct PostgreSQL.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

// ListVersions returns every stored prompt version. Dashboard volumes are
// hundreds of rows; the visible-set projection runs over the full list.
func (c *Client) ListVersions() ([]models.PromptVersion, error) {
	rows, err := c.db.Query(`
		SELECT ` + promptColumns + `
		FROM prompt_versions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// VersionsByPromptID returns all versions of one logical prompt, newest
// first.
func (c *Client) VersionsByPromptID(promptID string) ([]models.PromptVersion, error) {
	rows, err := c.db.Query(`
		SELECT `+promptColumns+`
		FROM prompt_versions
		WHERE prompt_id = $1
		ORDER BY version DESC
	`, promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prompt versions: %w", err)
	}
	defer rows.Close()

	return scanVersions(rows)
}

// TupleExists reports whether a prompt was already created with this exact
// flow+title+mode combination.
func (c *Client) TupleExists(flow, title, mode string) (bool, error) {
	var count int
	err := c.db.QueryRow(`
		SELECT COUNT(*) FROM prompt_versions
		WHERE flow = $1 AND prompt_title = $2 AND mode = $3 AND version = 1
	`, flow, title, mode).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check prompt tuple: %w", err)
	}
	return count > 0, nil
}

// CreatePrompt inserts version 1 of a new logical prompt. A duplicate
// flow+title+mode tuple fails with a ConflictError; the partial unique index
// backstops the lookup against concurrent creators.
func (c *Client) CreatePrompt(req models.CreatePromptRequest, meta models.PromptMetadata) (*models.PromptVersion, error) {
	exists, err := c.TupleExists(req.Flow, req.PromptTitle, req.Mode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &errs.ConflictError{
			Message: fmt.Sprintf("A prompt with flow %q, title %q and mode %q already exists", req.Flow, req.PromptTitle, req.Mode),
		}
	}

	pv := &models.PromptVersion{
		PromptID:          uuid.NewString(),
		Flow:              req.Flow,
		PromptTitle:       req.PromptTitle,
		Mode:              req.Mode,
		PromptDescription: req.PromptDescription,
		Version:           1,
		Prompt:            req.Prompt,
		Metadata:          meta,
	}

	if err := insertVersion(c.db, pv); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, &errs.ConflictError{
				Message: fmt.Sprintf("A prompt with flow %q, title %q and mode %q already exists", req.Flow, req.PromptTitle, req.Mode),
			}
		}
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	return pv, nil
}

// AppendVersion inserts a new version at max(version)+1 for an existing
// promptId, carrying forward flow, title, mode and description from the
// latest version. Runs in a transaction; the latest row is locked so
// concurrent appends serialize.
func (c *Client) AppendVersion(promptID, promptText string, meta models.PromptMetadata) (*models.PromptVersion, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var latest models.PromptVersion
	err = tx.QueryRow(`
		SELECT `+promptColumns+`
		FROM prompt_versions
		WHERE prompt_id = $1
		ORDER BY version DESC
		LIMIT 1
		FOR UPDATE
	`, promptID).Scan(scanTargets(&latest)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &errs.NotFoundError{Message: "Prompt not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest version: %w", err)
	}

	pv := &models.PromptVersion{
		PromptID:          latest.PromptID,
		Flow:              latest.Flow,
		PromptTitle:       latest.PromptTitle,
		Mode:              latest.Mode,
		PromptDescription: latest.PromptDescription,
		Version:           latest.Version + 1,
		Prompt:            promptText,
		Metadata:          prompts.MergeMetadata(latest.Metadata, meta),
	}

	if err := insertVersion(tx, pv); err != nil {
		return nil, fmt.Errorf("failed to append version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit version append: %w", err)
	}

	return pv, nil
}

// DeleteVersion removes exactly one (promptId, version) pair. Sibling
// versions are unaffected.
func (c *Client) DeleteVersion(promptID string, version int) error {
	res, err := c.db.Exec(`
		DELETE FROM prompt_versions
		WHERE prompt_id = $1 AND version = $2
	`, promptID, version)
	if err != nil {
		return fmt.Errorf("failed to delete prompt version: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete prompt version: %w", err)
	}
	if n == 0 {
		return &errs.NotFoundError{Message: fmt.Sprintf("version %d of prompt %s not found", version, promptID)}
	}
	return nil
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

func insertVersion(e execer, pv *models.PromptVersion) error {
	_, err := e.Exec(`
		INSERT INTO prompt_versions (`+promptColumns+`, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, pv.PromptID, pv.Flow, pv.PromptTitle, pv.Mode, pv.PromptDescription,
		pv.Version, pv.Prompt, pv.Metadata.Author, pv.Metadata.Changelog,
		pv.Metadata.Tokens, pv.Metadata.DisplayDate, pv.Metadata.DisplayTime,
		time.Now())
	return err
}

func scanTargets(pv *models.PromptVersion) []interface{} {
	return []interface{}{
		&pv.PromptID, &pv.Flow, &pv.PromptTitle, &pv.Mode, &pv.PromptDescription,
		&pv.Version, &pv.Prompt, &pv.Metadata.Author, &pv.Metadata.Changelog,
		&pv.Metadata.Tokens, &pv.Metadata.DisplayDate, &pv.Metadata.DisplayTime,
	}
}

func scanVersions(rows *sql.Rows) ([]models.PromptVersion, error) {
	var versions []models.PromptVersion
	for rows.Next() {
		var pv models.PromptVersion
		if err := rows.Scan(scanTargets(&pv)...); err != nil {
			return nil, fmt.Errorf("failed to scan prompt version: %w", err)
		}
		versions = append(versions, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt versions: %w", err)
	}
	return versions, nil
}
