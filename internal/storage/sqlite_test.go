package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("rockfield", 144); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("rockfield")
	if err != nil || high != 144 {
		t.Errorf("HighScore() after reopen = %d, %v; want 144", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("rockfield", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("rockfield_timed", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("rockfield", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	timed, err := store.TopScores("rockfield_timed", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(timed) != 1 {
		t.Errorf("Expected 1 timed score, got %d", len(timed))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("rockfield", (i+1)*100)
	}

	scores, err := store.TopScores("rockfield", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("rockfield")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("rockfield", 100)
	store.SaveScore("rockfield", 300)
	store.SaveScore("rockfield", 200)

	high, err = store.HighScore("rockfield")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "rockfield", Player: "ada", Seed: 7, Difficulty: "normal", Score: 244, Kills: 2, Shots: 5, Distance: 812.5, Duration: 21500 * time.Millisecond},
		{GameID: "rockfield", Player: "bob", Seed: 8, Difficulty: "hard", Score: 1020, Kills: 9, Shots: 14, Distance: 2400, Duration: 45 * time.Second},
		{GameID: "rockfield", Player: "ada", Seed: 9, Score: 0, Distance: 95},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns("rockfield", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	best := top[0]
	if best.Player != "bob" || best.Score != 1020 || best.Kills != 9 || best.Shots != 14 {
		t.Errorf("best run = %+v", best)
	}
	if best.Distance != 2400 || best.Duration != 45*time.Second || best.Difficulty != "hard" || best.Seed != 8 {
		t.Errorf("best run details = %+v", best)
	}
	if top[1].Duration != 21500*time.Millisecond {
		t.Errorf("duration = %v, want 21.5s", top[1].Duration)
	}

	// Every run also counts as a score entry
	high, _ := store.HighScore("rockfield")
	if high != 1020 {
		t.Errorf("HighScore() = %d, want 1020", high)
	}
	scores, _ := store.TopScores("rockfield", 10)
	if len(scores) != 3 {
		t.Errorf("Expected 3 score entries, got %d", len(scores))
	}
}

func TestStorePlayerRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "rockfield", Player: "ada", Score: 100})
	store.SaveRun(Run{GameID: "rockfield_timed", Player: "ada", Score: 300})
	store.SaveRun(Run{GameID: "rockfield", Player: "bob", Score: 200})

	runs, err := store.PlayerRuns("ada", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for ada, got %d", len(runs))
	}
	// Most recent first
	if runs[0].GameID != "rockfield_timed" || runs[1].GameID != "rockfield" {
		t.Errorf("runs not newest first: %+v", runs)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("rockfield", 100)
	store.SaveRun(Run{GameID: "rockfield", Score: 200, Kills: 2})
	store.SaveScore("rockfield_timed", 300)

	if err := store.ClearScores("rockfield"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("rockfield", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	runs, _ := store.TopRuns("rockfield", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	timed, _ := store.TopScores("rockfield_timed", 10)
	if len(timed) != 1 {
		t.Errorf("Timed scores should not be affected by clearing rockfield")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("rockfield")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "rockfield", Score: 100, Kills: 1, Distance: 300})
	store.SaveRun(Run{GameID: "rockfield", Score: 300, Kills: 3, Distance: 900})
	store.SaveScore("rockfield", 200)
	store.SaveRun(Run{GameID: "rockfield_timed", Score: 50, Kills: 1, Distance: 100})

	stats, err := store.Stats("rockfield")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.TotalScore != 600 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalKills != 4 || stats.BestDistance != 900 {
		t.Errorf("run stats = kills %d, distance %v", stats.TotalKills, stats.BestDistance)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["rockfield_timed"].HighScore != 50 {
		t.Errorf("timed high score = %d, want 50", all["rockfield_timed"].HighScore)
	}
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", now, now},
		{"sqlite string", "2024-03-01 12:30:00", now},
		{"bad string", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}
	for _, tt := range tests {
		if got := parseTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("%s: parseTime() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
