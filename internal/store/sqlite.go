package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteStore(connectionString string) (ReductionStore, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// Each pooled connection to ":memory:" would see its own database
	db.SetMaxOpenConns(1)

	return &SQLiteStore{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteStore) Init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS reductions (
		id TEXT PRIMARY KEY,
		image BLOB,
		original_width INTEGER,
		original_height INTEGER,
		reduced_width INTEGER,
		reduced_height INTEGER,
		created_at INTEGER
	)`)
	return err
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateReduction(reduction *Reduction) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	createdAt := reduction.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.Exec(
		`INSERT INTO reductions (id, image, original_width, original_height, reduced_width, reduced_height, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		reduction.Image,
		reduction.OriginalWidth,
		reduction.OriginalHeight,
		reduction.ReducedWidth,
		reduction.ReducedHeight,
		createdAt.Unix(),
	)
	if err != nil {
		return "", err
	}

	reduction.ID = id
	reduction.CreatedAt = createdAt
	return id, nil
}

func (s *SQLiteStore) GetReduction(id string) (*Reduction, error) {
	row := s.db.QueryRow(
		`SELECT id, image, original_width, original_height, reduced_width, reduced_height, created_at
		 FROM reductions WHERE id = ?`, id)

	var reduction Reduction
	var createdAt int64
	err := row.Scan(
		&reduction.ID,
		&reduction.Image,
		&reduction.OriginalWidth,
		&reduction.OriginalHeight,
		&reduction.ReducedWidth,
		&reduction.ReducedHeight,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	reduction.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &reduction, nil
}

func (s *SQLiteStore) GetReductionImage(id string) ([]byte, error) {
	row := s.db.QueryRow("SELECT image FROM reductions WHERE id = ?", id)
	var image []byte
	if err := row.Scan(&image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *SQLiteStore) ListReductions() ([]*Reduction, error) {
	rows, err := s.db.Query(
		`SELECT id, original_width, original_height, reduced_width, reduced_height, created_at
		 FROM reductions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var reductions []*Reduction
	for rows.Next() {
		var reduction Reduction
		var createdAt int64
		if err := rows.Scan(
			&reduction.ID,
			&reduction.OriginalWidth,
			&reduction.OriginalHeight,
			&reduction.ReducedWidth,
			&reduction.ReducedHeight,
			&createdAt,
		); err != nil {
			return nil, err
		}
		reduction.CreatedAt = time.Unix(createdAt, 0).UTC()
		reductions = append(reductions, &reduction)
	}
	return reductions, rows.Err()
}

func (s *SQLiteStore) DeleteReduction(id string) error {
	_, err := s.db.Exec("DELETE FROM reductions WHERE id = ?", id)
	return err
}
