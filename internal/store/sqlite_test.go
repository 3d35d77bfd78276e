package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"podtopics/internal/domain"
)

func sampleOutput() domain.IndexedOutput {
	conf := 0.9
	return domain.IndexedOutput{
		AudioFile:        "episode.mp3",
		LanguageDetected: "es",
		Topics: []domain.Topic{
			{
				TopicID: 0, Start: 0, End: 60,
				Title: "Opening", Summary: "The opening.", Keywords: []string{"opening"},
				Sentiment: domain.SentimentNeutral, BoundaryConfidence: &conf,
				Segments: []domain.Segment{
					{SegmentID: 0, Start: 0, End: 60, Text: "hola", Language: "es", Translation: "hello"},
				},
			},
			{
				TopicID: 1, Start: 60, End: 150,
				Title: "Closing", Summary: "The closing.", Keywords: []string{},
				Sentiment: domain.SentimentPositive,
				Segments: []domain.Segment{
					{SegmentID: 1, Start: 60, End: 100, Text: "adios", Language: "es", Translation: "goodbye"},
					{SegmentID: 2, Start: 100, End: 150, Text: "gracias", Language: "es", Translation: "thanks"},
				},
			},
		},
	}
}

func openTestRepo(t *testing.T) (*SQLiteRepo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.db")
	repo, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func countRows(t *testing.T, path, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("select count(*) from " + table).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestSaveOutput(t *testing.T) {
	repo, path := openTestRepo(t)
	if err := repo.SaveOutput(context.Background(), "fp1", sampleOutput()); err != nil {
		t.Fatal(err)
	}
	if n := countRows(t, path, "outputs"); n != 1 {
		t.Errorf("outputs rows = %d, want 1", n)
	}
	if n := countRows(t, path, "topics"); n != 2 {
		t.Errorf("topics rows = %d, want 2", n)
	}
	if n := countRows(t, path, "topic_segments"); n != 3 {
		t.Errorf("segment rows = %d, want 3", n)
	}
}

func TestSaveOutputReplacesPreviousRun(t *testing.T) {
	repo, path := openTestRepo(t)
	ctx := context.Background()
	if err := repo.SaveOutput(ctx, "fp1", sampleOutput()); err != nil {
		t.Fatal(err)
	}
	smaller := sampleOutput()
	smaller.Topics = smaller.Topics[:1]
	if err := repo.SaveOutput(ctx, "fp1", smaller); err != nil {
		t.Fatal(err)
	}
	if n := countRows(t, path, "topics"); n != 1 {
		t.Errorf("topics rows after replace = %d, want 1", n)
	}
	if n := countRows(t, path, "outputs"); n != 1 {
		t.Errorf("outputs rows after replace = %d, want 1", n)
	}
}

func TestSaveOutputDistinctFingerprints(t *testing.T) {
	repo, path := openTestRepo(t)
	ctx := context.Background()
	if err := repo.SaveOutput(ctx, "fp1", sampleOutput()); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveOutput(ctx, "fp2", sampleOutput()); err != nil {
		t.Fatal(err)
	}
	if n := countRows(t, path, "outputs"); n != 2 {
		t.Errorf("outputs rows = %d, want 2", n)
	}
}
