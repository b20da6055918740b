package similarity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const viewPrefix = "word2vec_"

// querier is the subset of *pgxpool.Pool the oracle uses
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresConfig holds configuration for the Postgres oracle
type PostgresConfig struct {
	// Pool is the connection pool to the embeddings database
	Pool *pgxpool.Pool
}

// postgresOracle reads ranks from a per-secret materialized view built over
// the word2vec table (columns word, vec).
type postgresOracle struct {
	db querier
}

// NewPostgres creates an oracle backed by the pgvector embeddings table
func NewPostgres(cfg *PostgresConfig) (*postgresOracle, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Pool == nil {
		return nil, errors.New("pool cannot be nil")
	}

	return &postgresOracle{
		db: cfg.Pool,
	}, nil
}

func viewName(secret string) string {
	return pgx.Identifier{viewPrefix + secret}.Sanitize()
}

// RankOf looks the word up in the secret's materialized view
func (o *postgresOracle) RankOf(ctx context.Context, secret, word string) (*Similarity, error) {
	query := fmt.Sprintf(`SELECT word, rank, similarity FROM %s WHERE word = $1`, viewName(secret))

	var result Similarity
	var rank int64
	err := o.db.QueryRow(ctx, query, word).Scan(&result.Word, &rank, &result.Similarity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("querying similarity: %w", err)
	}
	result.Rank = int(rank)

	return &result, nil
}

// Prepare (re)creates the materialized view ranking every vocabulary word
// against secret. The secret ranks 0.
func (o *postgresOracle) Prepare(ctx context.Context, secret string) error {
	view := viewName(secret)
	index := pgx.Identifier{viewPrefix + secret + "_idx"}.Sanitize()

	// DDL takes no bind parameters, so the secret is inlined as a literal
	statements := []string{
		fmt.Sprintf(`DROP MATERIALIZED VIEW IF EXISTS %s`, view),
		fmt.Sprintf(`CREATE MATERIALIZED VIEW %s AS
			SELECT
				a.word,
				s.rank - 1 AS rank,
				s.similarity * -100 AS similarity
			FROM word2vec a
			LEFT JOIN (
				SELECT
					a.word,
					(a.vec <=> b.vec) AS similarity,
					ROW_NUMBER() OVER (ORDER BY (a.vec <=> b.vec)) AS rank
				FROM word2vec AS a
				LEFT JOIN word2vec AS b ON b.word = %s
			) AS s ON a.word = s.word
			WITH DATA`, view, quoteLiteral(secret)),
		fmt.Sprintf(`CREATE UNIQUE INDEX %s ON %s (word)`, index, view),
	}

	for _, stmt := range statements {
		if _, err := o.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("preparing similarity view for %q: %w", secret, err)
		}
	}

	return nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
