// ABOUTME: Request log storage operations.
// ABOUTME: Handles inserting and querying diagnostic request logs.

package store

import (
	"strings"
	"time"
)

// RequestLog is one logged round trip through the diagnostic proxy.
type RequestLog struct {
	ID           int64
	Timestamp    time.Time
	Surface      string
	Method       string
	Path         string
	StatusCode   int
	DurationMs   int
	Error        string
	RequestBody  string
	ResponseBody string
}

// LogRequest inserts a request log entry
func (s *Store) LogRequest(log *RequestLog) error {
	_, err := s.db.Exec(`
		INSERT INTO request_logs (surface, method, path, status_code, duration_ms, error, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, log.Surface, log.Method, log.Path, log.StatusCode, log.DurationMs, log.Error, log.RequestBody, log.ResponseBody)
	return err
}

// RequestLogQuery represents filters for request logs
type RequestLogQuery struct {
	Limit      int
	Offset     int
	Surface    string
	Method     string
	PathPrefix string
	StatusCode int
}

// RequestLogStats represents aggregate statistics for the log UI
type RequestLogStats struct {
	TotalRequests   int
	TodayRequests   int
	ErrorRequests   int
	AvgDurationMs   int
	UniqueEndpoints int
}

// GetRequestLogs retrieves request logs with filtering, newest first
func (s *Store) GetRequestLogs(q *RequestLogQuery) ([]*RequestLog, error) {
	query := `SELECT id, timestamp, COALESCE(surface, ''), method, path, status_code, duration_ms,
	          COALESCE(error, ''), COALESCE(request_body, ''), COALESCE(response_body, '')
	          FROM request_logs WHERE 1=1`
	args := []any{}

	if q.Surface != "" {
		query += " AND surface = ?"
		args = append(args, q.Surface)
	}
	if q.Method != "" {
		query += " AND method = ?"
		args = append(args, q.Method)
	}
	if q.PathPrefix != "" {
		query += ` AND path LIKE ? ESCAPE '\'`
		args = append(args, escapeSQLLike(q.PathPrefix)+"%")
	}
	if q.StatusCode > 0 {
		query += " AND status_code = ?"
		args = append(args, q.StatusCode)
	}

	query += " ORDER BY timestamp DESC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*RequestLog
	for rows.Next() {
		entry := &RequestLog{}
		var timestamp string
		if err := rows.Scan(&entry.ID, &timestamp, &entry.Surface, &entry.Method, &entry.Path,
			&entry.StatusCode, &entry.DurationMs, &entry.Error,
			&entry.RequestBody, &entry.ResponseBody); err != nil {
			return nil, err
		}
		entry.Timestamp, _ = time.Parse("2006-01-02 15:04:05", timestamp)
		logs = append(logs, entry)
	}
	return logs, nil
}

// GetRequestLogStats returns aggregate statistics
func (s *Store) GetRequestLogStats() (*RequestLogStats, error) {
	stats := &RequestLogStats{}

	s.db.QueryRow("SELECT COUNT(*) FROM request_logs").Scan(&stats.TotalRequests)

	today := time.Now().Format("2006-01-02")
	s.db.QueryRow("SELECT COUNT(*) FROM request_logs WHERE date(timestamp) = ?", today).Scan(&stats.TodayRequests)

	s.db.QueryRow("SELECT COUNT(*) FROM request_logs WHERE status_code >= 400").Scan(&stats.ErrorRequests)
	s.db.QueryRow("SELECT COALESCE(AVG(duration_ms), 0) FROM request_logs").Scan(&stats.AvgDurationMs)
	s.db.QueryRow("SELECT COUNT(DISTINCT path) FROM request_logs").Scan(&stats.UniqueEndpoints)

	return stats, nil
}

// GetSurfaceRequestCount returns the number of requests for a surface since
// a given time
func (s *Store) GetSurfaceRequestCount(surface string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM request_logs
		WHERE surface = ? AND timestamp >= ?
	`, surface, since).Scan(&count)
	return count, err
}

// escapeSQLLike escapes the LIKE wildcards %, _, and \ so a path prefix
// filter matches literally. Backslash goes first to avoid double-escaping.
func escapeSQLLike(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "\\", "\\\\")
	pattern = strings.ReplaceAll(pattern, "%", "\\%")
	pattern = strings.ReplaceAll(pattern, "_", "\\_")
	return pattern
}

// GetSurfaceErrorRate returns the error rate percentage for a surface since
// a given time
func (s *Store) GetSurfaceErrorRate(surface string, since time.Time) (float64, error) {
	var totalCount, errorCount int

	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM request_logs
		WHERE surface = ? AND timestamp >= ?
	`, surface, since).Scan(&totalCount)
	if err != nil {
		return 0, err
	}
	if totalCount == 0 {
		return 0, nil
	}

	err = s.db.QueryRow(`
		SELECT COUNT(*)
		FROM request_logs
		WHERE surface = ? AND timestamp >= ? AND status_code >= 400
	`, surface, since).Scan(&errorCount)
	if err != nil {
		return 0, err
	}

	return float64(errorCount) / float64(totalCount) * 100, nil
}
