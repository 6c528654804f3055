package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/yunweneric/lingo-desk/internal/domain"
)

type JobRepo struct{ *Repo }

func NewJobRepo(db *sql.DB) *JobRepo { return &JobRepo{NewRepo(db)} }

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) (int64, error) {
	_, ts := nowString()
	q := r.SQ.Insert("jobs").
		Columns("type", "status", "project_id", "provider_id", "params_json", "progress", "total", "created_at", "updated_at").
		Values(j.Type, j.Status, j.ProjectID, j.ProviderID, j.ParamsRaw, j.Progress, j.Total, ts, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	j.ID = id
	return id, nil
}

func (r *JobRepo) UpdateProgress(ctx context.Context, jobID int64, done, total int, status string) error {
	_, ts := nowString()
	q := r.SQ.Update("jobs").
		Set("progress", done).Set("total", total).Set("status", status).Set("updated_at", ts).
		Where(sq.Eq{"id": jobID})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) AddItem(ctx context.Context, ji *domain.JobItem) (int64, error) {
	_, ts := nowString()
	q := r.SQ.Insert("job_items").
		Columns("job_id", "key_id", "locale", "status", "error", "created_at", "updated_at").
		Values(ji.JobID, ji.KeyID, ji.Locale, ji.Status, ji.Error, ts, ts)
	sqlStr, args, _ := q.ToSql()
	res, err := r.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	ji.ID = id
	return id, nil
}

func (r *JobRepo) UpdateItem(ctx context.Context, itemID int64, status, errMsg string) error {
	_, ts := nowString()
	q := r.SQ.Update("job_items").
		Set("status", status).Set("error", errMsg).Set("updated_at", ts).
		Where(sq.Eq{"id": itemID})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) AddLog(ctx context.Context, jl *domain.JobLog) error {
	_, ts := nowString()
	q := r.SQ.Insert("job_logs").Columns("job_id", "ts", "level", "message").
		Values(jl.JobID, ts, jl.Level, jl.Message)
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func (r *JobRepo) Get(ctx context.Context, jobID int64) (*domain.Job, error) {
	q := r.SQ.Select("id", "type", "status", "project_id", "provider_id", "params_json", "progress", "total", "created_at", "updated_at").
		From("jobs").Where(sq.Eq{"id": jobID}).Limit(1)
	sqlStr, args, _ := q.ToSql()
	return scanJob(r.DB.QueryRowContext(ctx, sqlStr, args...).Scan)
}

func (r *JobRepo) List(ctx context.Context, limit int) ([]*domain.Job, error) {
	b := r.SQ.Select("id", "type", "status", "project_id", "provider_id", "params_json", "progress", "total", "created_at", "updated_at").
		From("jobs").OrderBy("id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	sqlStr, args, _ := b.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepo) ListItems(ctx context.Context, jobID int64) ([]*domain.JobItem, error) {
	q := r.SQ.Select("id", "job_id", "key_id", "locale", "status", "error", "created_at", "updated_at").
		From("job_items").Where(sq.Eq{"job_id": jobID}).OrderBy("id")
	sqlStr, args, _ := q.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.JobItem
	for rows.Next() {
		var ji domain.JobItem
		var keyID sql.NullInt64
		var locale sql.NullString
		var created, updated string
		if err := rows.Scan(&ji.ID, &ji.JobID, &keyID, &locale, &ji.Status, &ji.Error, &created, &updated); err != nil {
			return nil, err
		}
		if keyID.Valid {
			v := keyID.Int64
			ji.KeyID = &v
		}
		if locale.Valid {
			v := locale.String
			ji.Locale = &v
		}
		ji.CreatedAt = parseTime(created)
		ji.UpdatedAt = parseTime(updated)
		out = append(out, &ji)
	}
	return out, rows.Err()
}

func (r *JobRepo) ListLogs(ctx context.Context, jobID int64, limit int) ([]*domain.JobLog, error) {
	b := r.SQ.Select("id", "job_id", "ts", "level", "message").
		From("job_logs").Where(sq.Eq{"job_id": jobID}).OrderBy("id DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	sqlStr, args, _ := b.ToSql()
	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.JobLog
	for rows.Next() {
		var jl domain.JobLog
		var ts string
		if err := rows.Scan(&jl.ID, &jl.JobID, &ts, &jl.Level, &jl.Message); err != nil {
			return nil, err
		}
		jl.Time = parseTime(ts)
		out = append(out, &jl)
	}
	return out, rows.Err()
}

func (r *JobRepo) Delete(ctx context.Context, jobID int64) error {
	q := r.SQ.Delete("jobs").Where(sq.Eq{"id": jobID})
	sqlStr, args, _ := q.ToSql()
	_, err := r.DB.ExecContext(ctx, sqlStr, args...)
	return err
}

func scanJob(scan func(...any) error) (*domain.Job, error) {
	var j domain.Job
	var projectID, providerID sql.NullInt64
	var created, updated string
	if err := scan(&j.ID, &j.Type, &j.Status, &projectID, &providerID, &j.ParamsRaw, &j.Progress, &j.Total, &created, &updated); err != nil {
		return nil, err
	}
	if projectID.Valid {
		v := projectID.Int64
		j.ProjectID = &v
	}
	if providerID.Valid {
		v := providerID.Int64
		j.ProviderID = &v
	}
	j.CreatedAt = parseTime(created)
	j.UpdatedAt = parseTime(updated)
	return &j, nil
}
