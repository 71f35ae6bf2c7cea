package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTrainer struct {
	expanded  []string
	expandErr error
	report    *runtime.Report
	trainErr  error
}

func (s *stubTrainer) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return &domain.Snapshot{Domains: []domain.Domain{{
		Key:  "smalltalk",
		Name: "smalltalk",
		Skills: []domain.Skill{{
			Key:  "greeting",
			Name: "greeting",
			NLU: map[string]*domain.NLUDocument{
				"en": {Actions: map[string]domain.Action{"hello": {Type: domain.ActionDialog}}},
			},
		}},
	}}}, nil
}

func (s *stubTrainer) Compile(ctx context.Context, lang string) ([]domain.Record, error) {
	return []domain.Record{domain.NewDocument(lang, "Hi", "greeting.hello")}, nil
}

func (s *stubTrainer) CompileResolvers(ctx context.Context, lang string) ([]domain.Record, error) {
	return nil, &domain.UnsupportedActionTypeError{Skill: "system", Action: "x", Type: "reminder"}
}

func (s *stubTrainer) Expand(template string) ([]string, error) {
	return s.expanded, s.expandErr
}

func (s *stubTrainer) Train(ctx context.Context) (*runtime.Report, error) {
	return s.report, s.trainErr
}

func TestHandleExpand(t *testing.T) {
	s := NewServer(&stubTrainer{expanded: []string{"Hi", "Hello"}})
	resp, err := s.handleExpand(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"template": "{Hi|Hello}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hi", "Hello"}, resp.Alternatives)
	assert.False(t, resp.Truncated)

	s = NewServer(&stubTrainer{expanded: []string{"a"}, expandErr: &domain.ExpansionLimitError{Limit: 1}})
	resp, err = s.handleExpand(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"template": "{a|b}"})
	require.NoError(t, err)
	assert.True(t, resp.Truncated)
}

func TestHandleCompile(t *testing.T) {
	s := NewServer(&stubTrainer{})
	ctx := context.Background()

	resp, err := s.handleCompile(ctx, mcp.CallToolRequest{}, map[string]interface{}{"lang": "en"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModelMain, resp.Pass)
	require.Len(t, resp.Records, 1)

	_, err = s.handleCompile(ctx, mcp.CallToolRequest{}, map[string]interface{}{"lang": "en", "pass": "resolvers"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedActionType)

	_, err = s.handleCompile(ctx, mcp.CallToolRequest{}, map[string]interface{}{"lang": "en", "pass": "bogus"})
	assert.Error(t, err)

	_, err = s.handleCompile(ctx, mcp.CallToolRequest{}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestHandleTrain(t *testing.T) {
	s := NewServer(&stubTrainer{
		report: &runtime.Report{
			Languages: []string{"en"},
			Models: []runtime.ModelResult{
				{Name: domain.ModelResolvers, Records: 4},
				{Name: domain.ModelMain, Records: 7, Err: errors.New("disk full")},
			},
		},
		trainErr: &domain.ModelError{Model: domain.ModelMain, Err: errors.New("disk full")},
	})

	resp, err := s.handleTrain(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"en"}, resp.Languages)
	require.Len(t, resp.Models, 2)
	assert.Empty(t, resp.Models[0].Error)
	assert.Equal(t, "disk full", resp.Models[1].Error)

	s = NewServer(&stubTrainer{report: &runtime.Report{}, trainErr: domain.ErrUnsupportedActionType})
	_, err = s.handleTrain(context.Background(), mcp.CallToolRequest{}, nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedActionType)
}

func TestHandleGraph(t *testing.T) {
	s := NewServer(&stubTrainer{})
	resp, err := s.handleGraph(context.Background(), mcp.CallToolRequest{}, map[string]interface{}{"lang": "en"})
	require.NoError(t, err)
	assert.Equal(t, "en", resp.Lang)
	assert.Contains(t, resp.Mermaid, "graph TD")
}
