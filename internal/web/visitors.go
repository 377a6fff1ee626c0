package web

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "modernc.org/sqlite"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	retention  = 12 // months
)

// Store records page visits in sqlite with hashed client addresses.
type Store struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

type PathCount struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	TopPaths         []PathCount `json:"top_paths"`
}

// OpenStore opens (or creates) the database at path and its schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open visitors db: %w", err)
	}
	// single writer; also keeps ":memory:" databases on one connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db, salt: newSalt(), now: time.Now}
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Init() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create visitors table: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func newSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("visitor salt: %v", err)
	}
	return hex.EncodeToString(b)
}

// hashIP is stable for the life of the process only.
func (s *Store) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + s.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (s *Store) Record(ip, userAgent, path string) error {
	_, err := s.db.Exec(
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.hashIP(ip), userAgent, path, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than the retention window.
func (s *Store) Cleanup() (int64, error) {
	cutoff := s.now().UTC().AddDate(0, -retention, 0).Format(timeLayout)
	res, err := s.db.Exec(`DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) Stats() (*Stats, error) {
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Format(timeLayout)
	week := now.AddDate(0, 0, -7).Format(timeLayout)

	st := &Stats{TopPaths: []PathCount{}}
	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&st.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&st.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&st.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&st.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{week}},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
	}

	rows, err := s.db.Query(`
		SELECT path, COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("visitor stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Visits); err != nil {
			return nil, fmt.Errorf("visitor stats: %w", err)
		}
		st.TopPaths = append(st.TopPaths, pc)
	}
	return st, rows.Err()
}

var untracked = []string{"/stream/", "/frame/", "/stats", "/favicon"}

// Track records every page view except streams, frames and DNT requests.
func Track(s *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untracked {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		if err := s.Record(c.ClientIP(), c.GetHeader("User-Agent"), path); err != nil {
			log.Printf("visitor: %v", err)
		}
		c.Next()
	}
}
