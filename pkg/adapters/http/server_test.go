package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/glossa/internal/runtime"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTrainer struct {
	snap      *domain.Snapshot
	records   []domain.Record
	compErr   error
	expandErr error
	report    *runtime.Report
	trainErr  error
	models    map[string]*domain.Model
	watchFunc func(ctx context.Context) (<-chan string, error)
}

func (m *mockTrainer) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	return m.snap, nil
}

func (m *mockTrainer) Compile(ctx context.Context, lang string) ([]domain.Record, error) {
	return m.records, m.compErr
}

func (m *mockTrainer) CompileResolvers(ctx context.Context, lang string) ([]domain.Record, error) {
	return []domain.Record{domain.NewDocument(lang, "yes", "system.affirmation_denial.yes")}, nil
}

func (m *mockTrainer) Expand(template string) ([]string, error) {
	return strings.Split(strings.Trim(template, "{}"), "|"), m.expandErr
}

func (m *mockTrainer) Train(ctx context.Context) (*runtime.Report, error) {
	return m.report, m.trainErr
}

func (m *mockTrainer) Model(ctx context.Context, name string) (*domain.Model, error) {
	if model, ok := m.models[name]; ok {
		return model, nil
	}
	return nil, fmt.Errorf("load %s: %w", name, domain.ErrModelNotFound)
}

func (m *mockTrainer) Models(ctx context.Context) ([]string, error) {
	var names []string
	for name := range m.models {
		names = append(names, name)
	}
	return names, nil
}

func (m *mockTrainer) Watch(ctx context.Context) (<-chan string, error) {
	if m.watchFunc != nil {
		return m.watchFunc(ctx)
	}
	ch := make(chan string)
	close(ch)
	return ch, nil
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndInfo(t *testing.T) {
	h := NewHandler(&mockTrainer{})

	w := do(t, h, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, "GET", "/info", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"glossa"`)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetDomains(t *testing.T) {
	h := NewHandler(&mockTrainer{snap: &domain.Snapshot{
		Domains: []domain.Domain{{
			Key:  "smalltalk",
			Name: "smalltalk",
			Skills: []domain.Skill{{
				Key:  "greeting",
				Name: "greeting",
				NLU: map[string]*domain.NLUDocument{
					"en": {Actions: map[string]domain.Action{"hello": {Type: domain.ActionDialog}}},
					"pt": {Actions: map[string]domain.Action{"hello": {Type: domain.ActionDialog}, "bye": {Type: domain.ActionLogic}}},
				},
			}},
		}},
	}})

	w := do(t, h, "GET", "/domains", "")
	require.Equal(t, http.StatusOK, w.Code)

	var domains []DomainInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &domains))
	require.Len(t, domains, 1)
	require.Len(t, domains[0].Skills, 1)
	assert.Equal(t, []string{"en", "pt"}, domains[0].Skills[0].Languages)
	assert.Equal(t, []string{"greeting.bye", "greeting.hello"}, domains[0].Skills[0].Intents)
}

func TestGetCorpus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h := NewHandler(&mockTrainer{records: []domain.Record{
			domain.NewDomainAssignment("en", "greeting.hello", "smalltalk"),
			domain.NewDocument("en", "Hi", "greeting.hello"),
		}})

		w := do(t, h, "GET", "/corpus/en", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp CorpusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "en", resp.Lang)
		assert.Len(t, resp.Records, 2)
		assert.Empty(t, resp.Error)
	})

	t.Run("unsupported action keeps partial records", func(t *testing.T) {
		h := NewHandler(&mockTrainer{
			records: []domain.Record{domain.NewDocument("en", "Hi", "greeting.hello")},
			compErr: &domain.UnsupportedActionTypeError{Skill: "greeting", Action: "zzz", Type: "reminder"},
		})

		w := do(t, h, "GET", "/corpus/en", "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp CorpusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Records, 1)
		assert.Contains(t, resp.Error, "isn't supported")
	})

	t.Run("resolvers", func(t *testing.T) {
		h := NewHandler(&mockTrainer{})
		w := do(t, h, "GET", "/resolvers/pt", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "system.affirmation_denial.yes")
	})
}

func TestPostExpand(t *testing.T) {
	h := NewHandler(&mockTrainer{})
	w := do(t, h, "POST", "/expand", `{"template":"{Hi|Hello}"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExpandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Hi", "Hello"}, resp.Alternatives)
	assert.False(t, resp.Truncated)

	h = NewHandler(&mockTrainer{expandErr: &domain.ExpansionLimitError{Limit: 1}})
	w = do(t, h, "POST", "/expand", `{"template":"{a|b}"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Truncated)

	w = do(t, h, "POST", "/expand", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostTrain(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := NewHandler(&mockTrainer{report: &runtime.Report{
			Languages: []string{"en"},
			Models: []runtime.ModelResult{
				{Name: domain.ModelResolvers, Records: 4},
				{Name: domain.ModelMain, Records: 7},
			},
		}})
		w := do(t, h, "POST", "/train", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp TrainResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Models, 2)
		assert.Equal(t, 7, resp.Models[1].Records)
		assert.Empty(t, resp.Error)
	})

	t.Run("one model fails", func(t *testing.T) {
		saveErr := &domain.ModelError{Model: domain.ModelMain, Err: errors.New("disk full")}
		h := NewHandler(&mockTrainer{
			report: &runtime.Report{
				Languages: []string{"en"},
				Models: []runtime.ModelResult{
					{Name: domain.ModelResolvers, Records: 4},
					{Name: domain.ModelMain, Records: 7, Err: saveErr.Err},
				},
			},
			trainErr: errors.Join(saveErr),
		})
		w := do(t, h, "POST", "/train", "")
		assert.Equal(t, http.StatusBadGateway, w.Code)

		var resp TrainResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Empty(t, resp.Models[0].Error)
		assert.Equal(t, "disk full", resp.Models[1].Error)
		assert.Contains(t, resp.Error, "failed to save main model")
	})
}

func TestModels(t *testing.T) {
	h := NewHandler(&mockTrainer{models: map[string]*domain.Model{
		"main": {Name: "main", Languages: []string{"en"}},
	}})

	w := do(t, h, "GET", "/models", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["main"]`, w.Body.String())

	w = do(t, h, "GET", "/models/main", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"languages":["en"]`)

	w = do(t, h, "GET", "/models/resolvers", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsMount(t *testing.T) {
	h := NewHandler(&mockTrainer{})
	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/metrics", "").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "glossa_records_total 1")
	})
	h = NewHandler(&mockTrainer{}, WithMetrics(metrics))
	w := do(t, h, "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "glossa_records_total")
}

func TestSubscribeEvents(t *testing.T) {
	h := NewHandler(&mockTrainer{
		watchFunc: func(ctx context.Context) (<-chan string, error) {
			ch := make(chan string, 1)
			ch <- "reload"
			close(ch)
			return ch, nil
		},
	})

	w := do(t, h, "GET", "/events", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: ping")
	assert.Contains(t, body, "data: reload")
}

func TestSubscribeEvents_WatchUnsupported(t *testing.T) {
	h := NewHandler(&mockTrainer{
		watchFunc: func(ctx context.Context) (<-chan string, error) {
			return nil, errors.New("current loader does not support watching")
		},
	})
	w := do(t, h, "GET", "/events", "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe(trainedTopic)

	sm.Broadcast(trainedTopic, "trained")
	assert.Equal(t, "trained", <-ch)

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// No subscribers left: must not block or panic.
	sm.Broadcast(trainedTopic, "trained")
}
