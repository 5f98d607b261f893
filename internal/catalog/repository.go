package catalog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/uuid"
)

// Repository provides CRUD operations for folders, items and the activity
// log. Statements are prepared on first use and cached for reuse.
type Repository struct {
	db *sql.DB

	stmtCache sync.Map // map[string]*sql.Stmt
}

// NewRepository creates a new Repository instance.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// PrepareStmt gets or creates a prepared statement from cache.
func (r *Repository) PrepareStmt(query string) (*sql.Stmt, error) {
	if stmt, ok := r.stmtCache.Load(query); ok {
		return stmt.(*sql.Stmt), nil
	}

	stmt, err := r.db.Prepare(query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	actual, loaded := r.stmtCache.LoadOrStore(query, stmt)
	if loaded {
		// Another goroutine already prepared this, close our duplicate
		stmt.Close()
		return actual.(*sql.Stmt), nil
	}

	return stmt, nil
}

// Close closes all cached prepared statements.
func (r *Repository) Close() error {
	var firstErr error
	r.stmtCache.Range(func(key, value interface{}) bool {
		stmt := value.(*sql.Stmt)
		if err := stmt.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	return firstErr
}

// =====================================================
// Folder Operations
// =====================================================

// CreateFolder creates a new folder.
func (r *Repository) CreateFolder(folder *models.Folder) error {
	now := time.Now().Unix()
	folder.ID = models.UUID(uuid.New())
	folder.CreatedAt = now
	folder.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.Name, folder.CreatedAt, folder.UpdatedAt)
	return err
}

// GetFolder retrieves a folder by ID.
func (r *Repository) GetFolder(id models.UUID) (*models.Folder, error) {
	var f models.Folder
	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM folders WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrFolderNotFound, "folder not found: "+id.String())
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFolders returns all folders ordered by creation time.
func (r *Repository) ListFolders() ([]models.Folder, error) {
	rows, err := r.db.Query(`SELECT id, name, created_at, updated_at FROM folders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// DeleteFolder removes a folder and, via the foreign key cascade, its items.
func (r *Repository) DeleteFolder(id models.UUID) error {
	res, err := r.db.Exec(`DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrFolderNotFound, "folder not found: "+id.String())
	}
	return nil
}

// =====================================================
// Item Operations
// =====================================================

const itemColumns = `id, folder_id, kind, payload, source_value, template_id, prefix,
	weight_grams, product_type, quantity, discount, unique_id, decimal_pos,
	active, position, created_at, updated_at`

// CreateItem creates a new catalog item. The position defaults to the end of
// the folder.
func (r *Repository) CreateItem(item *models.Item) error {
	now := time.Now().Unix()
	item.ID = models.UUID(uuid.New())
	item.CreatedAt = now
	item.UpdatedAt = now

	if item.Position == 0 {
		var max sql.NullInt64
		if err := r.db.QueryRow(
			`SELECT MAX(position) FROM items WHERE folder_id = ?`, item.FolderID).Scan(&max); err == nil && max.Valid {
			item.Position = int(max.Int64) + 1
		}
	}

	_, err := r.db.Exec(`
	INSERT INTO items (`+itemColumns+`)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.FolderID, item.Kind, item.Payload, item.SourceValue,
		item.TemplateID, item.Prefix, item.WeightGrams, item.ProductType,
		item.Quantity, item.Discount, item.UniqueID, item.DecimalPos,
		item.Active, item.Position, item.CreatedAt, item.UpdatedAt)
	return err
}

// GetItem retrieves an item by ID.
func (r *Repository) GetItem(id models.UUID) (*models.Item, error) {
	row := r.db.QueryRow(`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrItemNotFound, "item not found: "+id.String())
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns all items of a folder in rotation order.
func (r *Repository) ListItems(folderID models.UUID) ([]models.Item, error) {
	return r.queryItems(
		`SELECT `+itemColumns+` FROM items WHERE folder_id = ? ORDER BY position, created_at`, folderID)
}

// ActiveItems returns the ordered rotation list: every selected item of the
// folder.
func (r *Repository) ActiveItems(folderID models.UUID) ([]models.Item, error) {
	return r.queryItems(
		`SELECT `+itemColumns+` FROM items WHERE folder_id = ? AND active = 1 ORDER BY position, created_at`, folderID)
}

// SetItemActive toggles the selection flag, the one mutable item field.
func (r *Repository) SetItemActive(id models.UUID, active bool) error {
	res, err := r.db.Exec(
		`UPDATE items SET active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().Unix(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrItemNotFound, "item not found: "+id.String())
	}
	return nil
}

// DeleteItem removes an item.
func (r *Repository) DeleteItem(id models.UUID) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New(errors.ErrItemNotFound, "item not found: "+id.String())
	}
	return nil
}

func (r *Repository) queryItems(query string, args ...interface{}) ([]models.Item, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	err := row.Scan(&item.ID, &item.FolderID, &item.Kind, &item.Payload,
		&item.SourceValue, &item.TemplateID, &item.Prefix, &item.WeightGrams,
		&item.ProductType, &item.Quantity, &item.Discount, &item.UniqueID,
		&item.DecimalPos, &item.Active, &item.Position, &item.CreatedAt,
		&item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// =====================================================
// Activity Log Operations
// =====================================================

// AddActivity appends one entry to the process-wide activity log. Called
// exactly once per newly generated payload, never on history replay.
func (r *Repository) AddActivity(kind, payload string) error {
	stmt, err := r.PrepareStmt(
		`INSERT INTO activity_log (id, kind, payload, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	_, err = stmt.Exec(uuid.New(), kind, payload, time.Now().Unix())
	return err
}

// ListActivity returns activity entries, newest first.
func (r *Repository) ListActivity(limit, offset int) ([]models.ActivityEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(
		`SELECT id, kind, payload, created_at FROM activity_log
		 ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
