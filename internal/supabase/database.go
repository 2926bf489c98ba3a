package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modforge-backend/internal/models"
)

var (
	// ErrDuplicatePath is returned when an insert or move would give two
	// records in the same project the same file_path.
	ErrDuplicatePath = errors.New("duplicate file path")
	// ErrNotFound is returned when a row lookup matches nothing.
	ErrNotFound = errors.New("record not found")
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) Ping() error {
	return d.db.Ping()
}

// --- projects ---

func (d *DatabaseClient) CreateProject(userID uuid.UUID, name, description, platform, minecraftVersion, modID string) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		INSERT INTO projects (user_id, name, description, platform, minecraft_version, mod_id, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, 'active')
		RETURNING id, user_id, name, description, platform, minecraft_version, mod_id, status, created_at, updated_at
	`, userID, name, description, platform, minecraftVersion, modID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Description,
		&project.Platform, &project.MinecraftVersion, &project.ModID,
		&project.Status, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) GetProject(projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := d.db.QueryRow(`
		SELECT id, user_id, name, description, platform, minecraft_version, mod_id, status, created_at, updated_at
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID).Scan(
		&project.ID, &project.UserID, &project.Name, &project.Description,
		&project.Platform, &project.MinecraftVersion, &project.ModID,
		&project.Status, &project.CreatedAt, &project.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

func (d *DatabaseClient) ListProjects(userID uuid.UUID) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, description, platform, minecraft_version, mod_id, status, created_at, updated_at
		FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID, &project.UserID, &project.Name, &project.Description,
			&project.Platform, &project.MinecraftVersion, &project.ModID,
			&project.Status, &project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func (d *DatabaseClient) UpdateProjectStatus(projectID, userID uuid.UUID, status string) error {
	res, err := d.db.Exec(`
		UPDATE projects
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, status, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *DatabaseClient) DeleteProject(projectID, userID uuid.UUID) error {
	// project_files rows go with the project via ON DELETE CASCADE
	res, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- project files ---

const fileColumns = "id, project_id, file_path, file_name, file_content, file_type, is_directory, parent_path, created_at, updated_at"

func scanFile(row interface{ Scan(...any) error }) (*models.ProjectFile, error) {
	var f models.ProjectFile
	err := row.Scan(
		&f.ID, &f.ProjectID, &f.Path, &f.Name, &f.Content,
		&f.FileType, &f.IsDirectory, &f.ParentPath, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (d *DatabaseClient) CreateFile(projectID uuid.UUID, path, name, content, fileType string, isDirectory bool, parentPath string) (*models.ProjectFile, error) {
	row := d.db.QueryRow(`
		INSERT INTO project_files (project_id, file_path, file_name, file_content, file_type, is_directory, parent_path)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING `+fileColumns,
		projectID, path, name, content, fileType, isDirectory, parentPath)

	file, err := scanFile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePath
		}
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	return file, nil
}

func (d *DatabaseClient) GetFile(fileID uuid.UUID) (*models.ProjectFile, error) {
	row := d.db.QueryRow(`SELECT `+fileColumns+` FROM project_files WHERE id = $1`, fileID)
	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return file, nil
}

func (d *DatabaseClient) ListFiles(projectID uuid.UUID) ([]models.ProjectFile, error) {
	rows, err := d.db.Query(`
		SELECT `+fileColumns+`
		FROM project_files
		WHERE project_id = $1
		ORDER BY file_path ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []models.ProjectFile
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, *file)
	}

	return files, nil
}

func (d *DatabaseClient) UpdateFileContent(fileID uuid.UUID, content string) (*models.ProjectFile, error) {
	row := d.db.QueryRow(`
		UPDATE project_files
		SET file_content = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+fileColumns, content, fileID)

	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update file: %w", err)
	}
	return file, nil
}

// MoveFile rewrites a record's path, and, when the record is a directory,
// rewrites the path prefix and parent_path of every descendant in the same
// transaction. Content is updated in the same statement so an editor save
// combined with a drag move is one atomic change.
func (d *DatabaseClient) MoveFile(fileID uuid.UUID, newPath string, content *string) (*models.ProjectFile, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanFile(tx.QueryRow(`SELECT `+fileColumns+` FROM project_files WHERE id = $1 FOR UPDATE`, fileID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	newContent := current.Content
	if content != nil {
		newContent = *content
	}

	row := tx.QueryRow(`
		UPDATE project_files
		SET file_path = $1, file_name = $2, parent_path = NULLIF($3, ''), file_content = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+fileColumns,
		newPath, models.BaseOf(newPath), models.ParentOf(newPath), newContent, fileID)

	moved, err := scanFile(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicatePath
		}
		return nil, fmt.Errorf("failed to move file: %w", err)
	}

	if current.IsDirectory && current.Path != newPath {
		oldPrefix := current.Path + "/"
		newPrefix := newPath + "/"
		// Direct children carry the directory's exact path as parent_path;
		// deeper descendants carry a path under the old prefix.
		_, err = tx.Exec(`
			UPDATE project_files
			SET file_path = $1 || substr(file_path, $2),
			    parent_path = CASE
			        WHEN parent_path LIKE $5 THEN $1 || substr(parent_path, $2)
			        ELSE $4
			    END,
			    updated_at = NOW()
			WHERE project_id = $3 AND file_path LIKE $5
		`, newPrefix, len(oldPrefix)+1, current.ProjectID, newPath, likePrefix(oldPrefix))
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicatePath
			}
			return nil, fmt.Errorf("failed to move descendants: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit move: %w", err)
	}

	return moved, nil
}

// DeleteFile removes a record and, for directories, every descendant by path
// prefix in the same transaction. It reports how many rows were removed.
func (d *DatabaseClient) DeleteFile(fileID uuid.UUID) (int64, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := scanFile(tx.QueryRow(`SELECT `+fileColumns+` FROM project_files WHERE id = $1 FOR UPDATE`, fileID))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get file: %w", err)
	}

	removed := int64(0)
	if current.IsDirectory {
		res, err := tx.Exec(`
			DELETE FROM project_files
			WHERE project_id = $1 AND file_path LIKE $2
		`, current.ProjectID, likePrefix(current.Path+"/"))
		if err != nil {
			return 0, fmt.Errorf("failed to delete descendants: %w", err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}

	if _, err := tx.Exec(`DELETE FROM project_files WHERE id = $1`, fileID); err != nil {
		return 0, fmt.Errorf("failed to delete file: %w", err)
	}
	removed++

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	return removed, nil
}

// CreateFilesBatch inserts every record in one transaction so a scaffold is
// all-or-nothing. Input order is preserved; a duplicate path anywhere in the
// batch rolls the whole batch back.
func (d *DatabaseClient) CreateFilesBatch(projectID uuid.UUID, files []models.ProjectFile) ([]models.ProjectFile, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO project_files (project_id, file_path, file_name, file_content, file_type, is_directory, parent_path)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING ` + fileColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	created := make([]models.ProjectFile, 0, len(files))
	for _, f := range files {
		parent := ""
		if f.ParentPath.Valid {
			parent = f.ParentPath.String
		}
		row := stmt.QueryRow(projectID, f.Path, f.Name, f.Content, f.FileType, f.IsDirectory, parent)
		inserted, err := scanFile(row)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicatePath
			}
			return nil, fmt.Errorf("failed to insert %s: %w", f.Path, err)
		}
		created = append(created, *inserted)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}

	return created, nil
}

// ClearProjectFiles removes every file record for a project in one statement.
func (d *DatabaseClient) ClearProjectFiles(projectID uuid.UUID) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM project_files WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear project files: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// likePrefix escapes LIKE metacharacters so a path prefix matches literally.
func likePrefix(prefix string) string {
	escaped := make([]byte, 0, len(prefix)+8)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c == '%' || c == '_' || c == '\\' {
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped) + "%"
}
