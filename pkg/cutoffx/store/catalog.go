package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
)

// Catalog holds colleges and their courses.
type Catalog struct {
	db *sql.DB
}

// OpenCatalog opens or creates the catalog database at path.
func OpenCatalog(ctx context.Context, path string) (*Catalog, error) {
	db, err := open(ctx, path, catalogSchema)
	if err != nil {
		return nil, err
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// AddCollege inserts a college, or updates state, type and city of the
// college with the same name. It returns the college id.
func (c *Catalog) AddCollege(ctx context.Context, col models.College) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO colleges (name, state, type, city) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			state = CASE WHEN excluded.state <> '' THEN excluded.state ELSE colleges.state END,
			type  = CASE WHEN excluded.type  <> '' THEN excluded.type  ELSE colleges.type  END,
			city  = CASE WHEN excluded.city  <> '' THEN excluded.city  ELSE colleges.city  END
		RETURNING id`,
		col.Name, col.State, col.Type, col.City,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add college %q: %w", col.Name, err)
	}
	return id, nil
}

// AddCourse inserts a course under a college, or updates its seat count.
// It returns the course id.
func (c *Catalog) AddCourse(ctx context.Context, course models.Course) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO courses (college_id, course_name, seats) VALUES (?, ?, ?)
		ON CONFLICT(college_id, course_name) DO UPDATE SET
			seats = CASE WHEN excluded.seats > 0 THEN excluded.seats ELSE courses.seats END
		RETURNING id`,
		course.CollegeID, course.CourseName, course.Seats,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add course %q: %w", course.CourseName, err)
	}
	return id, nil
}

// FindCollege returns the college whose name contains name, or whose name
// is contained in name, case-insensitively. Among several matches the
// shortest name wins.
func (c *Catalog) FindCollege(ctx context.Context, name string) (models.College, error) {
	var col models.College
	if strings.TrimSpace(name) == "" {
		return col, ErrNotFound
	}
	err := c.db.QueryRowContext(ctx, `
		SELECT id, name, state, type, city FROM colleges
		WHERE LOWER(name) LIKE LOWER('%' || ? || '%')
		   OR LOWER(?) LIKE '%' || LOWER(name) || '%'
		ORDER BY LENGTH(name) ASC, id ASC
		LIMIT 1`,
		name, name,
	).Scan(&col.ID, &col.Name, &col.State, &col.Type, &col.City)
	if errors.Is(err, sql.ErrNoRows) {
		return col, fmt.Errorf("college %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return col, fmt.Errorf("find college %q: %w", name, err)
	}
	return col, nil
}

// FindCourse looks up a course of a college with the same bidirectional
// substring match as FindCollege.
func (c *Catalog) FindCourse(ctx context.Context, collegeID int64, name string) (models.Course, error) {
	var course models.Course
	if strings.TrimSpace(name) == "" {
		return course, ErrNotFound
	}
	err := c.db.QueryRowContext(ctx, `
		SELECT id, college_id, course_name, seats FROM courses
		WHERE college_id = ?
		  AND (LOWER(course_name) LIKE LOWER('%' || ? || '%')
		       OR LOWER(?) LIKE '%' || LOWER(course_name) || '%')
		ORDER BY LENGTH(course_name) ASC, id ASC
		LIMIT 1`,
		collegeID, name, name,
	).Scan(&course.ID, &course.CollegeID, &course.CourseName, &course.Seats)
	if errors.Is(err, sql.ErrNoRows) {
		return course, fmt.Errorf("course %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return course, fmt.Errorf("find course %q: %w", name, err)
	}
	return course, nil
}

// Search runs a full-text prefix search over college name, state and city.
func (c *Catalog) Search(ctx context.Context, q string, limit int) ([]models.College, error) {
	match := ftsQuery(q)
	if match == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.state, c.type, c.city
		FROM colleges_fts f JOIN colleges c ON c.id = f.rowid
		WHERE colleges_fts MATCH ?
		ORDER BY f.rank
		LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.College
	for rows.Next() {
		var col models.College
		if err := rows.Scan(&col.ID, &col.Name, &col.State, &col.Type, &col.City); err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

// Colleges lists all colleges ordered by name.
func (c *Catalog) Colleges(ctx context.Context) ([]models.College, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name, state, type, city FROM colleges ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.College
	for rows.Next() {
		var col models.College
		if err := rows.Scan(&col.ID, &col.Name, &col.State, &col.Type, &col.City); err != nil {
			return nil, err
		}
		out = append(out, col)
	}
	return out, rows.Err()
}

// ftsQuery turns free text into an FTS5 query: every word quoted, the
// last one as a prefix.
func ftsQuery(q string) string {
	words := strings.FieldsFunc(q, func(r rune) bool {
		return !(r == '\'' || r == '.' || r == '-' || r == '&' ||
			(r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 127)
	})
	if len(words) == 0 {
		return ""
	}
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"`
	}
	parts[len(parts)-1] += "*"
	return strings.Join(parts, " ")
}
