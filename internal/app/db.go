package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riftlabs/fantasy-esports/internal/config"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
