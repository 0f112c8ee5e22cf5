package sqlgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
	"github.com/askdata-labs/askdata-engine/pkg/llm"
	"github.com/askdata-labs/askdata-engine/pkg/models"
)

type fakeExecutor struct {
	result   *models.QueryResult
	err      error
	lastSQL  string
	executed int
}

func (f *fakeExecutor) Execute(_ context.Context, sqlText string) (*models.QueryResult, error) {
	f.executed++
	f.lastSQL = sqlText
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func sampleSchema() []models.TableSchema {
	return []models.TableSchema{
		{
			TableName: "users",
			Columns: []models.ColumnSchema{
				{ColumnName: "id", DataType: "int", IsNullable: "NO", ColumnKey: "PRI"},
				{ColumnName: "email", DataType: "varchar(255)", IsNullable: "NO"},
			},
		},
	}
}

// scriptedChat answers the generation call first, the explanation call
// second.
func scriptedChat(sqlAnswer, explanation string) *llm.MockClient {
	mock := llm.NewMockClient()
	mock.GenerateResponseFunc = func(context.Context, string, string, float64) (string, error) {
		if mock.GenerateResponseCalls == 1 {
			return sqlAnswer, nil
		}
		return explanation, nil
	}
	return mock
}

func TestEngine_GenerateReadOnly(t *testing.T) {
	mock := scriptedChat("```sql\nSELECT id, email FROM users\n```", "Lists every user.")
	engine := New(mock, nil, 0.1, 1000, zap.NewNop())

	got, err := engine.Generate(context.Background(), Request{
		Question:       "show all users",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       true,
	})

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, email FROM users", got.Candidate.NormalizedSQL)
	assert.True(t, got.Candidate.IsValid)
	assert.Equal(t, "Lists every user.", got.Explanation)
	assert.Nil(t, got.Results)
	assert.Zero(t, got.DurationMs)
	assert.True(t, got.ReadOnly)
	assert.Equal(t, 2, mock.GenerateResponseCalls)
}

func TestEngine_GeneratePromptContents(t *testing.T) {
	mock := scriptedChat("SELECT 1", "explanation")
	engine := New(mock, nil, 0.1, 1000, zap.NewNop())

	_, err := engine.Generate(context.Background(), Request{
		Question:       "count users",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       true,
	})
	require.NoError(t, err)

	require.Len(t, mock.Prompts, 2)
	generation := mock.Prompts[0]
	assert.Contains(t, generation, "Only generate SELECT queries")
	assert.Contains(t, generation, "Table: users")
	assert.Contains(t, generation, `Natural Language Query: "count users"`)
	assert.Contains(t, generation, "Limit results to 1000 rows maximum")

	explanation := mock.Prompts[1]
	assert.Contains(t, explanation, "Explain the following SQL query")
	assert.Contains(t, explanation, "SELECT 1")
}

func TestEngine_MaxRowsCeiling(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      string
	}{
		{name: "zero uses default", requested: 0, want: "Limit results to 1000 rows maximum"},
		{name: "below ceiling honored", requested: 50, want: "Limit results to 50 rows maximum"},
		{name: "above ceiling clamped", requested: 5000, want: "Limit results to 1000 rows maximum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := scriptedChat("SELECT 1", "explanation")
			engine := New(mock, nil, 0.1, 1000, zap.NewNop())

			_, err := engine.Generate(context.Background(), Request{
				Question:       "q",
				Schema:         sampleSchema(),
				SelectedTables: []string{"users"},
				ReadOnly:       true,
				MaxRows:        tt.requested,
			})
			require.NoError(t, err)
			assert.Contains(t, mock.Prompts[0], tt.want)
		})
	}
}

func TestEngine_ValidationRejection(t *testing.T) {
	mock := scriptedChat("DROP TABLE users", "never reached")
	executor := &fakeExecutor{}
	engine := New(mock, executor, 0.1, 1000, zap.NewNop())

	got, err := engine.Generate(context.Background(), Request{
		Question:       "remove the users table",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       true,
	})

	require.ErrorIs(t, err, apperrors.ErrValidationRejected)
	assert.Contains(t, err.Error(), "DROP")
	require.NotNil(t, got)
	assert.False(t, got.Candidate.IsValid)
	assert.Equal(t, "DROP TABLE users", got.Candidate.NormalizedSQL)
	assert.Equal(t, 0, executor.executed)
	assert.Equal(t, 1, mock.GenerateResponseCalls)
}

func TestEngine_ExecutesWhenWritesAllowed(t *testing.T) {
	mock := scriptedChat("SELECT id FROM users", "One row per user.")
	executor := &fakeExecutor{result: &models.QueryResult{
		Columns: []string{"id"},
		Rows:    []map[string]any{{"id": int64(1)}, {"id": int64(2)}},
	}}
	engine := New(mock, executor, 0.1, 1000, zap.NewNop())

	got, err := engine.Generate(context.Background(), Request{
		Question:       "list user ids",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       false,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, executor.executed)
	assert.Equal(t, "SELECT id FROM users", executor.lastSQL)
	require.NotNil(t, got.Results)
	assert.Len(t, got.Results.Rows, 2)
	assert.GreaterOrEqual(t, got.DurationMs, int64(0))
}

func TestEngine_ExecutionFailureIsDistinctFromRejection(t *testing.T) {
	mock := scriptedChat("SELECT id FROM users", "never reached")
	executor := &fakeExecutor{err: errors.New("table 'users' doesn't exist")}
	engine := New(mock, executor, 0.1, 1000, zap.NewNop())

	got, err := engine.Generate(context.Background(), Request{
		Question:       "list user ids",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       false,
	})

	require.ErrorIs(t, err, apperrors.ErrExecutionFailed)
	assert.NotErrorIs(t, err, apperrors.ErrValidationRejected)
	require.NotNil(t, got)
	assert.True(t, got.Candidate.IsValid)
}

func TestEngine_NoExecutorMeansNotConnected(t *testing.T) {
	mock := scriptedChat("SELECT id FROM users", "never reached")
	engine := New(mock, nil, 0.1, 1000, zap.NewNop())

	_, err := engine.Generate(context.Background(), Request{
		Question:       "list user ids",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       false,
	})

	assert.ErrorIs(t, err, apperrors.ErrNotConnected)
}

func TestEngine_GenerationFailureIsFatal(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateResponseFunc = func(context.Context, string, string, float64) (string, error) {
		return "", llm.NewError(llm.ErrorTypeAuth, "authentication failed", false, nil)
	}
	engine := New(mock, nil, 0.1, 1000, zap.NewNop())

	_, err := engine.Generate(context.Background(), Request{
		Question:       "q",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       true,
	})

	assert.ErrorIs(t, err, apperrors.ErrGenerationFailed)
}

func TestEngine_ExplanationFailureFailsRequest(t *testing.T) {
	mock := llm.NewMockClient()
	mock.GenerateResponseFunc = func(context.Context, string, string, float64) (string, error) {
		if mock.GenerateResponseCalls == 1 {
			return "SELECT id FROM users", nil
		}
		return "", llm.NewError(llm.ErrorTypeModel, "model not found", false, nil)
	}
	engine := New(mock, nil, 0.1, 1000, zap.NewNop())

	got, err := engine.Generate(context.Background(), Request{
		Question:       "q",
		Schema:         sampleSchema(),
		SelectedTables: []string{"users"},
		ReadOnly:       true,
	})

	require.ErrorIs(t, err, apperrors.ErrGenerationFailed)
	require.NotNil(t, got)
	assert.Empty(t, got.Explanation)
	assert.Equal(t, "SELECT id FROM users", got.Candidate.NormalizedSQL)
}
