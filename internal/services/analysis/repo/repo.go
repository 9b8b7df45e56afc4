// Package repo provides the analysis report repository implementation
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	perr "clipscout/internal/platform/errors"
	"clipscout/internal/platform/store"
	"clipscout/internal/services/analysis/domain"

	"github.com/jackc/pgx/v5"
)

// Schema creates the backing table; applied by tests and fresh deployments
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_reports (
	id           uuid PRIMARY KEY,
	video_id     text NOT NULL,
	generated_at timestamptz NOT NULL,
	report       jsonb NOT NULL
);
CREATE INDEX IF NOT EXISTS analysis_reports_video_idx
	ON analysis_reports (video_id, generated_at DESC);
`

// EnsureSchema applies the report schema, one statement per Exec inside a
// single transaction so a fresh deployment never sees the table without its
// index
func EnsureSchema(ctx context.Context, db store.TxRunner) error {
	err := db.Tx(ctx, func(q store.RowQuerier) error {
		for _, stmt := range strings.Split(Schema, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return perr.MapPG(err)
}

// Storage defines the stored report surface
type Storage interface {
	Insert(ctx context.Context, r domain.Report) error
	Get(ctx context.Context, id string) (domain.Report, error)
	List(ctx context.Context, videoID string, limit int) ([]domain.ReportSummary, error)
}

type pg struct{ q store.RowQuerier }

// NewPG constructs a Postgres report repository
func NewPG(q store.RowQuerier) Storage { return &pg{q: q} }

// Insert stores the whole report as a jsonb document keyed by its id
func (s *pg) Insert(ctx context.Context, r domain.Report) error {
	doc, err := json.Marshal(r)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "marshal report")
	}
	_, err = s.q.Exec(ctx, `
		INSERT INTO analysis_reports (id, video_id, generated_at, report)
		VALUES ($1, $2, $3, $4)`,
		r.ID, r.VideoID, r.GeneratedAt, doc,
	)
	return perr.MapPG(err)
}

func (s *pg) Get(ctx context.Context, id string) (domain.Report, error) {
	var doc []byte
	err := s.q.QueryRow(ctx, `SELECT report FROM analysis_reports WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Report{}, perr.NotFoundf("report %s", id)
	}
	if err != nil {
		return domain.Report{}, perr.MapPG(err)
	}
	var r domain.Report
	if err := json.Unmarshal(doc, &r); err != nil {
		return domain.Report{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal report")
	}
	return r, nil
}

// List returns recent report summaries, newest first, optionally filtered
// by video id. Clip stats are pulled out of the jsonb document
func (s *pg) List(ctx context.Context, videoID string, limit int) ([]domain.ReportSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	var sb strings.Builder
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	sb.WriteString(`
		SELECT
			id::text,
			video_id,
			generated_at,
			COALESCE(jsonb_array_length(report->'recommended_clips'), 0),
			COALESCE((report->'recommended_clips'->0->>'clip_score')::float8, 0)
		FROM analysis_reports`)
	if videoID != "" {
		sb.WriteString(` WHERE video_id = ` + arg(videoID))
	}
	sb.WriteString(` ORDER BY generated_at DESC LIMIT ` + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, perr.MapPG(err)
	}
	defer rows.Close()

	var out []domain.ReportSummary
	for rows.Next() {
		var r domain.ReportSummary
		if err := rows.Scan(&r.ID, &r.VideoID, &r.GeneratedAt, &r.ClipCount, &r.TopScore); err != nil {
			return nil, perr.MapPG(err)
		}
		out = append(out, r)
	}
	return out, perr.MapPG(rows.Err())
}
