// Package store persists indexed outputs in SQLite so the browser UI can
// reload past runs without re-segmenting.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"podtopics/internal/domain"
)

const schema = `
create table if not exists outputs (
	fingerprint text primary key,
	audio_file text not null,
	language_detected text not null
);
create table if not exists topics (
	fingerprint text not null,
	topic_id integer not null,
	start real not null,
	"end" real not null,
	title text not null,
	summary text not null,
	keywords text not null,
	sentiment text not null,
	sentiment_score real not null,
	boundary_confidence real,
	primary key (fingerprint, topic_id)
);
create table if not exists topic_segments (
	fingerprint text not null,
	topic_id integer not null,
	segment_id integer not null,
	start real not null,
	"end" real not null,
	text text not null,
	language text not null,
	translation text not null,
	romanized text not null,
	primary key (fingerprint, topic_id, segment_id)
);
`

// SQLiteRepo stores indexed outputs keyed by input fingerprint.
type SQLiteRepo struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepo) Close() error { return r.db.Close() }

// SaveOutput writes the whole artifact in one transaction, replacing any
// previous run for the same fingerprint.
func (r *SQLiteRepo) SaveOutput(ctx context.Context, fingerprint string, out domain.IndexedOutput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save output: begin trx: %w", err)
	}
	if err := r.saveOutput(ctx, tx, fingerprint, out); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback save output: %w", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save output: commit: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) saveOutput(ctx context.Context, tx *sql.Tx, fingerprint string, out domain.IndexedOutput) error {
	for _, table := range []string{"topic_segments", "topics", "outputs"} {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("delete from %s where fingerprint = $1", table), fingerprint); err != nil {
			return fmt.Errorf("clear previous %s: %w", table, err)
		}
	}
	_, err := tx.ExecContext(ctx,
		"insert into outputs (fingerprint, audio_file, language_detected) values ($1, $2, $3)",
		fingerprint, out.AudioFile, out.LanguageDetected,
	)
	if err != nil {
		return fmt.Errorf("persisting output header: %w", err)
	}
	for _, topic := range out.Topics {
		var confidence any
		if topic.BoundaryConfidence != nil {
			confidence = *topic.BoundaryConfidence
		}
		_, err = tx.ExecContext(ctx, `insert into topics (
			fingerprint, topic_id, start, "end", title, summary,
			keywords, sentiment, sentiment_score, boundary_confidence
		) values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			fingerprint, topic.TopicID, topic.Start, topic.End, topic.Title, topic.Summary,
			strings.Join(topic.Keywords, ","), string(topic.Sentiment), topic.SentimentScore, confidence,
		)
		if err != nil {
			return fmt.Errorf("persisting topic %d: %w", topic.TopicID, err)
		}
		if err := r.insertSegments(ctx, tx, fingerprint, topic); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepo) insertSegments(ctx context.Context, tx *sql.Tx, fingerprint string, topic domain.Topic) error {
	var query strings.Builder
	query.WriteString(`insert into topic_segments (
		fingerprint, topic_id, segment_id, start, "end",
		text, language, translation, romanized) values `)
	args := make([]any, 0, 9*len(topic.Segments))
	for n, seg := range topic.Segments {
		if n > 0 {
			query.WriteString(", ")
		}
		b := n * 9
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			b+1, b+2, b+3, b+4, b+5, b+6, b+7, b+8, b+9)
		args = append(args,
			fingerprint, topic.TopicID, seg.SegmentID, seg.Start, seg.End,
			seg.Text, seg.Language, seg.Translation, seg.Romanized)
	}
	if _, err := tx.ExecContext(ctx, query.String(), args...); err != nil {
		return fmt.Errorf("persisting segments of topic %d: %w", topic.TopicID, err)
	}
	return nil
}
