// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance-quote-workers/internal/common/config"
	"insurance-quote-workers/internal/common/database"
	"insurance-quote-workers/internal/common/logger"
	"insurance-quote-workers/internal/common/random"
	"insurance-quote-workers/internal/models"
	"insurance-quote-workers/internal/workflow"

	assignrepresentative "insurance-quote-workers/internal/workers/advisory/assign-representative"
	recordquoteinterest "insurance-quote-workers/internal/workers/advisory/record-quote-interest"
	generatequotes "insurance-quote-workers/internal/workers/quote/generate-quotes"
	recommendquote "insurance-quote-workers/internal/workers/quote/recommend-quote"
)

// Runs against live PostgreSQL, Redis, and Zeebe. Gated behind E2E_TESTS=1.
func TestFullE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("set E2E_TESTS=1 to run against live services")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	log := logger.NewTestLogger(t)

	// --- Service connectivity ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "PostgreSQL connection failed")
	require.NoError(t, pg.Ping(ctx), "PostgreSQL ping failed")
	defer pg.Close()

	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "Redis client creation failed")
	require.NoError(t, rdb.Ping(ctx), "Redis ping failed")
	defer rdb.Close()

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
	})
	require.NoError(t, err, "Zeebe client creation failed")
	defer zeebeClient.Close()

	_, err = zeebeClient.NewTopologyCommand().Send(ctx)
	require.NoError(t, err, "Zeebe topology request failed")

	createDatabaseTables(t, ctx, pg)

	// --- Build handler cores against the live services ---
	rnd := random.New()

	generator := generatequotes.NewHandler(generatequotes.LoadConfig(cfg), nil, rnd, log)
	scorer := recommendquote.NewHandler(recommendquote.LoadConfig(cfg), log)
	assigner, err := assignrepresentative.NewHandler(assignrepresentative.LoadConfig(cfg), rnd, log)
	require.NoError(t, err)
	recorder := recordquoteinterest.NewHandler(recordquoteinterest.LoadConfig(cfg), pg.DB, rdb.Client, log)

	// --- Quote generation ---
	generated, err := generator.Execute(ctx, &generatequotes.Input{
		UserID:        "e2e-user",
		InsuranceType: models.InsuranceTypeAuto,
		FormData:      map[string]interface{}{"budgetMax": 1500.0},
	})
	require.NoError(t, err)
	require.NotEmpty(t, generated.Quotes)
	assert.Equal(t, len(generated.Quotes), generated.QuoteCount)

	// --- Full session through the state machine ---
	session := workflow.NewSession(
		"e2e-user",
		workflow.SessionConfig{MatchingDelay: 10 * time.Millisecond},
		generator, scorer, assigner, recorder, log,
	)

	_, err = session.LoadQuotes(models.InsuranceTypeAuto, generated.Quotes)
	require.NoError(t, err)

	_, err = session.MarkInterested(ctx, generated.Quotes[0].ID)
	require.NoError(t, err)
	require.NotNil(t, session.Recommendation())
	assert.GreaterOrEqual(t, session.Recommendation().Confidence, 0.0)
	assert.LessOrEqual(t, session.Recommendation().Confidence, 100.0)
	assert.LessOrEqual(t, len(session.Recommendation().AlternativeQuotes), 3)

	_, err = session.Decide(ctx, models.UserChoiceProceed)
	require.NoError(t, err)
	require.NotNil(t, session.Representative())
	assert.True(t, session.Representative().IsAvailable)
	require.NotNil(t, session.Interest())
	require.NotNil(t, session.Assignment())
	assert.Equal(t, 3, session.Assignment().ExpectedResponseDays)

	// --- Verify persistence ---
	var status string
	err = pg.DB.QueryRowContext(ctx,
		`SELECT status FROM quote_interests WHERE id = $1`, session.Interest().ID,
	).Scan(&status)
	require.NoError(t, err)
	assert.Equal(t, string(session.Interest().Status), status)

	var repID string
	err = pg.DB.QueryRowContext(ctx,
		`SELECT representative_id FROM representative_assignments WHERE id = $1`, session.Assignment().ID,
	).Scan(&repID)
	require.NoError(t, err)
	assert.Equal(t, session.Representative().ID, repID)

	cached, err := rdb.Client.Get(ctx, "interest:"+session.Interest().ID).Result()
	require.NoError(t, err)
	assert.Contains(t, cached, session.Interest().ID)

	// --- Session reset ---
	_, err = session.ConfirmRepresentative()
	require.NoError(t, err)
	_, err = session.Close()
	require.NoError(t, err)
	assert.Equal(t, workflow.StateComparison, session.State())
	assert.Nil(t, session.Interest())
}

func createDatabaseTables(t *testing.T, ctx context.Context, pg *database.PostgresClient) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS quote_interests (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			interested_quote_id VARCHAR(255) NOT NULL,
			recommended_quote_id VARCHAR(255) NOT NULL,
			status VARCHAR(50) NOT NULL,
			representative_id VARCHAR(255),
			form_data JSONB,
			created_at VARCHAR(50) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS representative_assignments (
			id VARCHAR(255) PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			representative_id VARCHAR(255) NOT NULL,
			quote_interest_id VARCHAR(255) REFERENCES quote_interests(id),
			status VARCHAR(50) NOT NULL,
			assigned_at VARCHAR(50) NOT NULL,
			expected_response_days INTEGER NOT NULL,
			respond_by VARCHAR(50) NOT NULL
		)`,
	}

	for _, query := range queries {
		_, err := pg.DB.ExecContext(ctx, query)
		require.NoError(t, err)
	}
}
