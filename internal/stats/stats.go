// Package stats persists finished-game results and aggregates per-player
// statistics.
package stats

import (
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS game_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			opponent_name TEXT NOT NULL,
			player_score INTEGER NOT NULL,
			opponent_score INTEGER NOT NULL,
			won INTEGER NOT NULL,
			ai_difficulty TEXT,
			game_mode TEXT NOT NULL DEFAULT 'single',
			hand_scores TEXT NOT NULL DEFAULT '[]',
			crib_scores TEXT NOT NULL DEFAULT '[]',
			highest_hand_score INTEGER NOT NULL DEFAULT 0,
			total_points_scored INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Result is one finished game from a single player's perspective.
type Result struct {
	PlayerName    string `json:"player_name"`
	OpponentName  string `json:"opponent_name"`
	PlayerScore   int    `json:"player_score"`
	OpponentScore int    `json:"opponent_score"`
	Won           bool   `json:"won"`
	Difficulty    string `json:"ai_difficulty,omitempty"`
	Mode          string `json:"game_mode"`
	HandScores    []int  `json:"hand_scores"`
	CribScores    []int  `json:"crib_scores"`
}

func (s *Store) Record(r Result) error {
	handJSON, err := json.Marshal(orEmpty(r.HandScores))
	if err != nil {
		return err
	}
	cribJSON, err := json.Marshal(orEmpty(r.CribScores))
	if err != nil {
		return err
	}
	best := 0
	total := r.PlayerScore
	for _, v := range r.HandScores {
		if v > best {
			best = v
		}
	}
	won := 0
	if r.Won {
		won = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO game_results
		 (player_name, opponent_name, player_score, opponent_score, won,
		  ai_difficulty, game_mode, hand_scores, crib_scores,
		  highest_hand_score, total_points_scored, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlayerName, r.OpponentName, r.PlayerScore, r.OpponentScore, won,
		r.Difficulty, r.Mode, string(handJSON), string(cribJSON),
		best, total, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func orEmpty(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

type DifficultyStats struct {
	Difficulty string  `json:"difficulty"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"win_rate"`
}

type PlayerStats struct {
	PlayerName    string            `json:"player_name"`
	Games         int               `json:"games"`
	Wins          int               `json:"wins"`
	Losses        int               `json:"losses"`
	WinRate       float64           `json:"win_rate"`
	AvgHandScore  float64           `json:"avg_hand_score"`
	AvgCribScore  float64           `json:"avg_crib_score"`
	BestHand      int               `json:"best_hand"`
	TotalPoints   int               `json:"total_points"`
	CurrentStreak int               `json:"current_streak"`
	BestWinStreak int               `json:"best_win_streak"`
	PerDifficulty []DifficultyStats `json:"per_difficulty,omitempty"`
}

// PlayerStats aggregates every recorded game for one player, oldest first.
func (s *Store) PlayerStats(name string) (PlayerStats, error) {
	rows, err := s.db.Query(
		`SELECT won, ai_difficulty, hand_scores, crib_scores,
		        highest_hand_score, total_points_scored
		 FROM game_results WHERE player_name = ? ORDER BY created_at ASC, id ASC`,
		name)
	if err != nil {
		return PlayerStats{}, err
	}
	defer rows.Close()

	out := PlayerStats{PlayerName: name}
	var handScores, cribScores []int
	streak := 0
	diffMap := map[string]*DifficultyStats{}

	for rows.Next() {
		var won int
		var difficulty sql.NullString
		var handJSON, cribJSON string
		var best, total int
		if err := rows.Scan(&won, &difficulty, &handJSON, &cribJSON, &best, &total); err != nil {
			return PlayerStats{}, err
		}
		out.Games++
		if won == 1 {
			out.Wins++
			if streak > 0 {
				streak++
			} else {
				streak = 1
			}
			if streak > out.BestWinStreak {
				out.BestWinStreak = streak
			}
		} else {
			out.Losses++
			if streak < 0 {
				streak--
			} else {
				streak = -1
			}
		}
		var hs, cs []int
		if err := json.Unmarshal([]byte(handJSON), &hs); err == nil {
			handScores = append(handScores, hs...)
		}
		if err := json.Unmarshal([]byte(cribJSON), &cs); err == nil {
			cribScores = append(cribScores, cs...)
		}
		if best > out.BestHand {
			out.BestHand = best
		}
		out.TotalPoints += total

		d := difficulty.String
		if d == "" {
			d = "multiplayer"
		}
		ds := diffMap[d]
		if ds == nil {
			ds = &DifficultyStats{Difficulty: d}
			diffMap[d] = ds
		}
		ds.Games++
		if won == 1 {
			ds.Wins++
		}
	}
	if err := rows.Err(); err != nil {
		return PlayerStats{}, err
	}
	out.CurrentStreak = streak

	if out.Games > 0 {
		out.WinRate = round1(float64(out.Wins) / float64(out.Games) * 100)
	}
	out.AvgHandScore = round1(average(handScores))
	out.AvgCribScore = round1(average(cribScores))

	for _, ds := range diffMap {
		ds.Losses = ds.Games - ds.Wins
		if ds.Games > 0 {
			ds.WinRate = round1(float64(ds.Wins) / float64(ds.Games) * 100)
		}
		out.PerDifficulty = append(out.PerDifficulty, *ds)
	}
	sort.Slice(out.PerDifficulty, func(i, j int) bool {
		return out.PerDifficulty[i].Difficulty < out.PerDifficulty[j].Difficulty
	})
	return out, nil
}

func average(v []int) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0
	for _, x := range v {
		sum += x
	}
	return float64(sum) / float64(len(v))
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
