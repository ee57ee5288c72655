package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/hirelink/hirelink/internal/model"
	appErr "github.com/hirelink/hirelink/internal/pkg/errors"
)

// JobVectorRepo persists the encoded match index so a restart can restore
// it without a rebuild. A build is stored as one meta row plus one vector
// row per job, all tagged with the build version.
type JobVectorRepo struct {
	db *sql.DB
}

func NewJobVectorRepo(db *sql.DB) *JobVectorRepo {
	return &JobVectorRepo{db: db}
}

// ReplaceBuild stores a complete build transactionally and drops every
// older build version.
func (r *JobVectorRepo) ReplaceBuild(ctx context.Context, meta *model.MatchIndexMeta, vectors []*model.JobVector) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM job_vectors WHERE build_version <> $1`, meta.BuildVersion); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_index_meta WHERE build_version <> $1`, meta.BuildVersion); err != nil {
		return err
	}

	const metaQuery = `
		INSERT INTO match_index_meta (build_version, vocabulary, locations, job_count, dimension, ctime)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (build_version) DO UPDATE SET
			vocabulary = EXCLUDED.vocabulary,
			locations = EXCLUDED.locations,
			job_count = EXCLUDED.job_count,
			dimension = EXCLUDED.dimension,
			ctime = EXCLUDED.ctime
	`
	if _, err := tx.ExecContext(ctx, metaQuery,
		meta.BuildVersion, meta.Vocabulary, meta.Locations,
		meta.JobCount, meta.Dimension, meta.Ctime,
	); err != nil {
		return err
	}

	const vecQuery = `
		INSERT INTO job_vectors (job_id, build_version, embedding, position, ctime)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_id, build_version) DO UPDATE SET
			embedding = EXCLUDED.embedding,
			position = EXCLUDED.position,
			ctime = EXCLUDED.ctime
	`
	for _, vec := range vectors {
		if _, err := tx.ExecContext(ctx, vecQuery,
			vec.JobID, vec.BuildVersion, pgvector.NewVector(vec.Embedding), vec.Position, vec.Ctime,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LatestMeta returns the newest stored build.
func (r *JobVectorRepo) LatestMeta(ctx context.Context) (*model.MatchIndexMeta, error) {
	const query = `
		SELECT build_version, vocabulary, locations, job_count, dimension, ctime
		FROM match_index_meta
		ORDER BY ctime DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query)
	var meta model.MatchIndexMeta
	if err := row.Scan(&meta.BuildVersion, &meta.Vocabulary, &meta.Locations, &meta.JobCount, &meta.Dimension, &meta.Ctime); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErr.ErrNotFound
		}
		return nil, err
	}
	return &meta, nil
}

// LoadVectors returns a build's vectors in their build positions, so a
// restore reproduces the original insertion order exactly.
func (r *JobVectorRepo) LoadVectors(ctx context.Context, buildVersion string) ([]*model.JobVector, error) {
	const query = `SELECT job_id, embedding, position FROM job_vectors WHERE build_version = $1 ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query, buildVersion)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	result := make([]*model.JobVector, 0)
	for rows.Next() {
		var jobID string
		var embedding pgvector.Vector
		var position int
		if err := rows.Scan(&jobID, &embedding, &position); err != nil {
			return nil, err
		}
		result = append(result, &model.JobVector{
			JobID:        jobID,
			BuildVersion: buildVersion,
			Embedding:    embedding.Slice(),
			Position:     position,
		})
	}
	return result, rows.Err()
}
