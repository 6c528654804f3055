package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"

	sq "github.com/Masterminds/squirrel"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

type FileRepo struct{ *Repo }
type KeyRepo struct{ *Repo }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{NewRepo(db)} }
func NewKeyRepo(db *sql.DB) *KeyRepo   { return &KeyRepo{NewRepo(db)} }

func HashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

func (r *FileRepo) Create(ctx context.Context, f *domain.File) error {
	now, ts := nowString()
	q := r.SQ.Insert("files").Columns("project_id", "path", "format", "locale", "hash", "created_at").
		Values(f.ProjectID, f.Path, f.Format, f.Locale, f.Hash, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	f.ID = id
	f.CreatedAt = now
	return nil
}

func (r *FileRepo) Get(ctx context.Context, id int64) (*domain.File, error) {
	q := r.SQ.Select("id", "project_id", "path", "format", "locale", "hash", "created_at").
		From("files").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	return scanFile(r.DB.QueryRowContext(ctx, sqlStr, args...).Scan)
}

func (r *FileRepo) GetByPath(ctx context.Context, projectID int64, path string) (*domain.File, error) {
	q := r.SQ.Select("id", "project_id", "path", "format", "locale", "hash", "created_at").
		From("files").Where(sq.Eq{"project_id": projectID, "path": path}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	f, err := scanFile(r.DB.QueryRowContext(ctx, sqlStr, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return f, err
}

func (r *FileRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.File, error) {
	q := r.SQ.Select("id", "project_id", "path", "format", "locale", "hash", "created_at").
		From("files").Where(sq.Eq{"project_id": projectID}).OrderBy("id DESC")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.File
	for rows.Next() {
		f, err := scanFile(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FileRepo) Update(ctx context.Context, f *domain.File) error {
	q := r.SQ.Update("files").
		Set("format", f.Format).Set("locale", f.Locale).Set("hash", f.Hash).
		Where(sq.Eq{"id": f.ID})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *FileRepo) Delete(ctx context.Context, id int64) error {
	q := r.SQ.Delete("files").Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func scanFile(scan func(...any) error) (*domain.File, error) {
	var f domain.File
	var created string
	if err := scan(&f.ID, &f.ProjectID, &f.Path, &f.Format, &f.Locale, &f.Hash, &created); err != nil {
		return nil, err
	}
	f.CreatedAt = parseTime(created)
	return &f, nil
}

func (r *KeyRepo) UpsertBatch(ctx context.Context, keys []*domain.Key) error {
	if len(keys) == 0 {
		return nil
	}
	ib := r.SQ.Insert("keys").Columns("file_id", "path", "source_text", "context", "metadata_json")
	for _, k := range keys {
		ib = ib.Values(k.FileID, k.Path, k.SourceText, k.Context, k.MetadataRaw)
	}
	sqlStr, args, _ := ib.Suffix("ON CONFLICT(file_id, path) DO UPDATE SET source_text=excluded.source_text, context=excluded.context, metadata_json=excluded.metadata_json").ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *KeyRepo) ListByFile(ctx context.Context, fileID int64) ([]*domain.Key, error) {
	q := r.SQ.Select("id", "file_id", "path", "source_text", "context", "metadata_json", "created_at").
		From("keys").Where(sq.Eq{"file_id": fileID}).OrderBy("path")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Key
	for rows.Next() {
		k, err := scanKey(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *KeyRepo) CountByProject(ctx context.Context, projectID int64) (int, error) {
	q := r.SQ.Select("COUNT(*)").From("keys k").
		Join("files f ON f.id = k.file_id").
		Where(sq.Eq{"f.project_id": projectID})
	sqlStr, args, _ := q.ToSql()
	var n int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteMissing removes keys of the file whose path is not in keepPaths.
// Translations cascade with the keys.
func (r *KeyRepo) DeleteMissing(ctx context.Context, fileID int64, keepPaths []string) error {
	q := r.SQ.Delete("keys").Where(sq.Eq{"file_id": fileID})
	if len(keepPaths) > 0 {
		q = q.Where(sq.NotEq{"path": keepPaths})
	}
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *KeyRepo) Get(ctx context.Context, id int64) (*domain.Key, error) {
	q := r.SQ.Select("id", "file_id", "path", "source_text", "context", "metadata_json", "created_at").
		From("keys").Where(sq.Eq{"id": id}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanKey(r.DB.QueryRowContext(ctx, sqlStr, args...).Scan)
}

func scanKey(scan func(...any) error) (*domain.Key, error) {
	var k domain.Key
	var created string
	if err := scan(&k.ID, &k.FileID, &k.Path, &k.SourceText, &k.Context, &k.MetadataRaw, &created); err != nil {
		return nil, err
	}
	k.CreatedAt = parseTime(created)
	return &k, nil
}
