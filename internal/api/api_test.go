package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/diary/internal/diary"
	"github.com/ethanbaker/diary/pkg/sdk"
	"github.com/ethanbaker/diary/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

// fakeLLM implements llm.Client
type fakeLLM struct {
	text  string
	err   error
	calls int
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeStore implements store.Store in memory
type fakeStore struct {
	data     map[string]string
	failure  error
	putCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]string)}
}

func (f *fakeStore) Put(ctx context.Context, key, value string) error {
	f.putCalls++
	if f.failure != nil {
		return f.failure
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if f.failure != nil {
		return nil, f.failure
	}

	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (f *fakeStore) MultiGet(ctx context.Context, keys []string) ([]*string, error) {
	if f.failure != nil {
		return nil, f.failure
	}

	values := make([]*string, len(keys))
	for i, key := range keys {
		if value, ok := f.data[key]; ok {
			v := value
			values[i] = &v
		}
	}
	return values, nil
}

func newTestEngine(ai *fakeLLM, st *fakeStore) *gin.Engine {
	cfg := utils.NewConfig(nil)

	var svc *diary.Service
	switch {
	case ai == nil && st == nil:
		svc = diary.NewServiceWith(nil, nil, nil)
	case st == nil:
		svc = diary.NewServiceWith(ai, nil, nil)
	case ai == nil:
		svc = diary.NewServiceWith(nil, st, nil)
	default:
		svc = diary.NewServiceWith(ai, st, nil)
	}

	return NewEngine(cfg, svc)
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

const sampleAnalysis = "감정: 슬픔\n\n괜찮아요, 내일은 더 나을 거예요."

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("end to end", func(t *testing.T) {
		ai := &fakeLLM{text: sampleAnalysis}
		st := newFakeStore()
		engine := newTestEngine(ai, st)

		recorder := doRequest(engine, http.MethodPost, "/api/analyze", `{"content": "today was hard"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp sdk.AnalyzeResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, sampleAnalysis, resp.Analysis)

		// Exactly one store write under a 14-digit diary key, holding both
		// the raw content and the analysis
		require.Equal(t, 1, st.putCalls)
		keyPattern := regexp.MustCompile(`^diary-\d{14}$`)
		for key, value := range st.data {
			assert.Regexp(t, keyPattern, key)
			assert.Contains(t, value, "today was hard")
			assert.Contains(t, value, "슬픔")
		}
	})

	t.Run("missing content yields 400 without adapter calls", func(t *testing.T) {
		ai := &fakeLLM{text: sampleAnalysis}
		st := newFakeStore()
		engine := newTestEngine(ai, st)

		for _, body := range []string{`{}`, `{"content": ""}`, ``, `not json`} {
			recorder := doRequest(engine, http.MethodPost, "/api/analyze", body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code, "body %q", body)

			var resp sdk.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		}

		assert.Equal(t, 0, ai.calls)
		assert.Equal(t, 0, st.putCalls)
	})

	t.Run("missing AI credential yields 500", func(t *testing.T) {
		engine := newTestEngine(nil, newFakeStore())

		recorder := doRequest(engine, http.MethodPost, "/api/analyze", `{"content": "entry"}`)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "API 키가 서버에 설정되지 않았습니다.", resp.Error)
	})

	t.Run("AI failure yields 500 with generic message", func(t *testing.T) {
		ai := &fakeLLM{err: errors.New("quota exceeded for project 12345")}
		engine := newTestEngine(ai, newFakeStore())

		recorder := doRequest(engine, http.MethodPost, "/api/analyze", `{"content": "entry"}`)
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		// The upstream detail must not leak to the client
		assert.NotContains(t, recorder.Body.String(), "quota")
	})

	t.Run("storage failure is invisible to the client", func(t *testing.T) {
		ai := &fakeLLM{text: sampleAnalysis}
		st := newFakeStore()
		st.failure = errors.New("connection refused")
		engine := newTestEngine(ai, st)

		recorder := doRequest(engine, http.MethodPost, "/api/analyze", `{"content": "entry"}`)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp sdk.AnalyzeResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, sampleAnalysis, resp.Analysis)
	})
}

func TestHistoryEndpoint(t *testing.T) {
	storedValue := func(content, createdAt string) string {
		payload, _ := json.Marshal(sdk.DiaryRecord{
			Content:   content,
			AIMessage: "감정: 평온\n\n쉬어가도 괜찮아요.",
			CreatedAt: createdAt,
		})
		return string(payload)
	}

	t.Run("unconfigured store returns empty array, never null", func(t *testing.T) {
		engine := newTestEngine(nil, nil)

		recorder := doRequest(engine, http.MethodGet, "/api/history", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"history": []}`, recorder.Body.String())
	})

	t.Run("returns records newest first", func(t *testing.T) {
		st := newFakeStore()
		st.data["diary-20240101090000"] = storedValue("first", "2024-01-01T09:00:00Z")
		st.data["diary-20240103090000"] = storedValue("third", "2024-01-03T09:00:00Z")
		st.data["diary-20240102090000"] = storedValue("second", "2024-01-02T09:00:00Z")
		engine := newTestEngine(nil, st)

		recorder := doRequest(engine, http.MethodGet, "/api/history", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp sdk.HistoryResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp.History, 3)
		assert.Equal(t, "third", resp.History[0].Content)
		assert.Equal(t, "second", resp.History[1].Content)
		assert.Equal(t, "first", resp.History[2].Content)
	})

	t.Run("store failure yields 500", func(t *testing.T) {
		st := newFakeStore()
		st.failure = errors.New("connection refused")
		engine := newTestEngine(nil, st)

		recorder := doRequest(engine, http.MethodGet, "/api/history", "")
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, "일기 히스토리를 불러오는 중 오류가 발생했습니다.", resp.Error)
	})
}

func TestMethodGuards(t *testing.T) {
	engine := newTestEngine(&fakeLLM{text: sampleAnalysis}, newFakeStore())

	t.Run("GET analyze", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/analyze", "")
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.JSONEq(t, `{"error": "Method Not Allowed"}`, recorder.Body.String())
	})

	t.Run("POST history", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodPost, "/api/history", "{}")
		assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
		assert.JSONEq(t, `{"error": "Method Not Allowed"}`, recorder.Body.String())
	})
}

func TestUnknownRoute(t *testing.T) {
	engine := newTestEngine(nil, nil)

	recorder := doRequest(engine, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error": "Not Found"}`, recorder.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestEngine(nil, nil)

	recorder := doRequest(engine, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status": "ok"}`, recorder.Body.String())
}

func TestRequestID(t *testing.T) {
	engine := newTestEngine(nil, nil)

	t.Run("assigned when absent", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/health", "")
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("honored when supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Request-ID", "caller-id-1")

		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		assert.Equal(t, "caller-id-1", recorder.Header().Get("X-Request-ID"))
	})
}
