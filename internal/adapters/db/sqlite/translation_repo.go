package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

type TranslationRepo struct{ *Repo }

func NewTranslationRepo(db *sql.DB) *TranslationRepo { return &TranslationRepo{NewRepo(db)} }

func (r *TranslationRepo) Upsert(ctx context.Context, t *domain.Translation) error {
	_, ts := nowString()
	q := r.SQ.Insert("translations").
		Columns("key_id", "locale", "text", "status", "provider_id", "confidence", "created_at", "updated_at").
		Values(t.KeyID, t.Locale, t.Text, t.Status, t.ProviderID, t.Confidence, ts, ts).
		Suffix("ON CONFLICT(key_id, locale) DO UPDATE SET text=excluded.text, status=excluded.status, provider_id=excluded.provider_id, confidence=excluded.confidence, updated_at=excluded.updated_at")
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *TranslationRepo) Get(ctx context.Context, keyID int64, locale string) (*domain.Translation, error) {
	q := r.SQ.Select("id", "key_id", "locale", "text", "status", "provider_id", "confidence", "created_at", "updated_at").
		From("translations").Where(sq.Eq{"key_id": keyID, "locale": locale}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	t, err := scanTranslation(r.DB.QueryRowContext(ctx, sqlStr, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

func (r *TranslationRepo) ListByFileLocale(ctx context.Context, fileID int64, locale string) ([]*domain.Translation, error) {
	q := r.SQ.Select("t.id", "t.key_id", "t.locale", "t.text", "t.status", "t.provider_id", "t.confidence", "t.created_at", "t.updated_at").
		From("translations t").
		Join("keys k ON k.id = t.key_id").
		Where(sq.Eq{"k.file_id": fileID, "t.locale": locale}).
		OrderBy("k.path")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Translation
	for rows.Next() {
		t, err := scanTranslation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountFilledByProject counts keys in the project that have a non-empty
// translation for the locale.
func (r *TranslationRepo) CountFilledByProject(ctx context.Context, projectID int64, locale string) (int, error) {
	q := r.SQ.Select("COUNT(*)").
		From("translations t").
		Join("keys k ON k.id = t.key_id").
		Join("files f ON f.id = k.file_id").
		Where(sq.Eq{"f.project_id": projectID, "t.locale": locale}).
		Where("TRIM(t.text) != ''")
	sqlStr, args, _ := q.ToSql()
	var n int
	if err := r.DB.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanTranslation(scan func(...any) error) (*domain.Translation, error) {
	var t domain.Translation
	var created, updated string
	var prov sql.NullInt64
	var conf sql.NullFloat64
	if err := scan(&t.ID, &t.KeyID, &t.Locale, &t.Text, &t.Status, &prov, &conf, &created, &updated); err != nil {
		return nil, err
	}
	if prov.Valid {
		v := prov.Int64
		t.ProviderID = &v
	}
	if conf.Valid {
		v := conf.Float64
		t.Confidence = &v
	}
	t.CreatedAt = parseTime(created)
	t.UpdatedAt = parseTime(updated)
	return &t, nil
}
