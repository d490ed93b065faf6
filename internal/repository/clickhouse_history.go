package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"IndexPulse/internal/domain/models"
	domrepo "IndexPulse/internal/domain/repository"
	applogger "IndexPulse/pkg/logger"
)

// ClickHouseHistory implements SignalHistory on ClickHouse. Every evaluated
// signal is appended; the dashboard's history view reads ranges back out.
type ClickHouseHistory struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewClickHouseHistory(db *sql.DB, table string) *ClickHouseHistory {
	return &ClickHouseHistory{db: db, table: table}
}

// SetLogger injects a structured logger.
func (s *ClickHouseHistory) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseHistory) Init(ctx context.Context) error {
	return nil // schema init happens in pkg/clickhouse
}

func (s *ClickHouseHistory) Store(ctx context.Context, r *models.SignalResult) error {
	return s.StoreBatch(ctx, []*models.SignalResult{r})
}

func (s *ClickHouseHistory) StoreBatch(ctx context.Context, rs []*models.SignalResult) error {
	if len(rs) == 0 {
		return nil
	}
	// Multi-row VALUES insert to keep round-trips down. 2000-row chunks.
	const chunkSize = 2000
	for start := 0; start < len(rs); start += chunkSize {
		end := start + chunkSize
		if end > len(rs) {
			end = len(rs)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*11)
		for _, r := range rs[start:end] {
			if r == nil || r.Symbol == "" {
				continue
			}
			factors, err := json.Marshal(r.Factors)
			if err != nil {
				return fmt.Errorf("marshal factors: %w", err)
			}
			ts := r.Timestamp
			if ts.IsZero() {
				ts = time.Now().UTC()
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				ts,
				r.Symbol,
				string(r.MarketStatus),
				string(r.Action),
				uint8(r.Confidence),
				r.TotalScore,
				string(r.Trend5Min),
				string(r.Trend15Min),
				string(r.Prediction.Direction),
				uint8(r.Prediction.Confidence),
				string(factors),
			)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf(
			"INSERT INTO %s (ts, symbol, market_status, action, confidence, total_score, trend_5m, trend_15m, predict_dir, predict_conf, factors) VALUES %s",
			s.table, strings.Join(values, ","),
		)
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_signals error",
					applogger.String("table", s.table),
					applogger.Int("rows", len(values)),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store signals: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseHistory) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.SignalResult, error) {
	start := time.Now()
	q := fmt.Sprintf(
		"SELECT ts, symbol, market_status, action, confidence, total_score, trend_5m, trend_15m, predict_dir, predict_conf, factors FROM %s WHERE symbol = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?",
		s.table,
	)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse query_signals error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SignalResult, 0, 256)
	for rows.Next() {
		var (
			r          models.SignalResult
			status     string
			action     string
			conf       uint8
			t5, t15    string
			pdir       string
			pconf      uint8
			factorsRaw string
		)
		if err := rows.Scan(&r.Timestamp, &r.Symbol, &status, &action, &conf, &r.TotalScore, &t5, &t15, &pdir, &pconf, &factorsRaw); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		r.MarketStatus = models.MarketStatus(status)
		r.Action = models.Action(action)
		r.Confidence = int(conf)
		r.Trend5Min = models.TrendDirection(t5)
		r.Trend15Min = models.TrendDirection(t15)
		r.Prediction.Direction = models.PredictionDirection(pdir)
		r.Prediction.Confidence = int(pconf)
		if factorsRaw != "" {
			if err := json.Unmarshal([]byte(factorsRaw), &r.Factors); err != nil {
				// factor breakdown is display-only; a bad row should not sink the range
				r.Factors = nil
			}
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse query_signals ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *ClickHouseHistory) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseHistory) Close() error {
	return nil // connection lifecycle is managed by pkg/clickhouse
}

var _ domrepo.SignalHistory = (*ClickHouseHistory)(nil)
