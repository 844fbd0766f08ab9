package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

// PostgresStore persists course documents as JSONB rows. It backs the
// request/response mode: same contract as the realtime store, minus
// the live subscription.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the courses table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS courses (
			id  TEXT PRIMARY KEY,
			doc JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create courses table: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAll(ctx context.Context) ([]model.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, doc FROM courses
		ORDER BY (doc->>'createdAt')::bigint, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}

		course, err := decodeCourse(id, doc)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM courses WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read course %s: %w", id, err)
	}

	course, err := decodeCourse(id, doc)
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *PostgresStore) Create(ctx context.Context, course model.Course) (model.Course, error) {
	now := time.Now().UnixMilli()
	course.ID = model.NewEntryID()
	course.CreatedAt = now
	course.UpdatedAt = now

	doc, err := json.Marshal(course)
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to encode course: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO courses (id, doc) VALUES ($1, $2)`, course.ID, doc)
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to insert course: %w", err)
	}

	return course, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, course model.Course) (model.Course, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if existing == nil {
		return model.Course{}, model.ErrCourseNotFound
	}

	course.ID = id
	course.CreatedAt = existing.CreatedAt
	course.UpdatedAt = time.Now().UnixMilli()

	doc, err := json.Marshal(course)
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to encode course: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE courses SET doc = $2 WHERE id = $1`, id, doc)
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to update course %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Course{}, model.ErrCourseNotFound
	}

	return course, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) Duplicate(ctx context.Context, id string) (model.Course, error) {
	source, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Course{}, err
	}
	if source == nil {
		return model.Course{}, model.ErrCourseNotFound
	}

	copy := source.Clone()
	copy.Title = copy.Title + " (Copy)"
	return s.Create(ctx, copy)
}
