package repository_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"onborder/internal/repository"
	"onborder/internal/screen"
)

const welcomeScreen = `{"id":1,"name":"S","content":{"time":1,"version":"1.0","blocks":[{"id":"b1","type":"header","data":{"text":"Welcome","level":1}}]}}`

func TestNewClient(t *testing.T) {
	tests := []struct {
		desc     string
		endpoint string
		wantErr  assert.ErrorAssertionFunc
	}{
		{desc: "default", endpoint: repository.DefaultEndpoint, wantErr: assert.NoError},
		{desc: "https with path", endpoint: "https://api.example.com/v1", wantErr: assert.NoError},
		{desc: "no scheme", endpoint: "localhost:3000", wantErr: assert.Error},
		{desc: "wrong scheme", endpoint: "ftp://example.com", wantErr: assert.Error},
		{desc: "empty", endpoint: "", wantErr: assert.Error},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			_, err := repository.NewClient(test.endpoint)
			test.wantErr(t, err)
		})
	}
}

func TestClient_OnboardingScreen(t *testing.T) {
	requestIDs := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/onboarding_screen", r.URL.Path)
		requestIDs <- r.Header.Get(repository.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, welcomeScreen)
	}))
	defer srv.Close()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	client, err := repository.NewClient(srv.URL, repository.WithTracer(provider.Tracer("test")))
	require.NoError(t, err)

	got, err := client.OnboardingScreen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, got.ID)
	require.Len(t, got.Blocks(), 1)
	assert.Equal(t, screen.Header{Text: "Welcome", Level: 1}, got.Blocks()[0].Data)
	assert.NotEmpty(t, <-requestIDs)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "repository.fetch_screen", spans[0].Name())
}

func TestClient_OnboardingScreen_Failures(t *testing.T) {
	tests := []struct {
		desc    string
		status  int
		body    string
		wantErr error
	}{
		{desc: "server error", status: http.StatusInternalServerError, body: `oops`, wantErr: repository.ErrUnexpectedStatus},
		{desc: "not found", status: http.StatusNotFound, body: ``, wantErr: repository.ErrUnexpectedStatus},
		{desc: "block matches no variant", status: http.StatusOK, body: `{"id":1,"name":"S","content":{"time":1,"version":"1","blocks":[{"id":"x","type":"header","data":{"foo":1}}]}}`, wantErr: screen.ErrNoVariantMatched},
		{desc: "malformed envelope", status: http.StatusOK, body: `{"id":1}`, wantErr: screen.ErrMalformed},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(test.status)
				_, _ = io.WriteString(w, test.body)
			}))
			defer srv.Close()

			client, err := repository.NewClient(srv.URL)
			require.NoError(t, err)

			_, err = client.OnboardingScreen(context.Background())
			assert.ErrorIs(t, err, test.wantErr)
		})
	}
}

func TestClient_OnboardingScreen_TooLarge(t *testing.T) {
	padding := strings.Repeat("a", repository.MaxBodySize)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":1,"name":"`+padding+`","content":{"time":1,"version":"","blocks":[]}}`)
	}))
	defer srv.Close()

	client, err := repository.NewClient(srv.URL, repository.WithTimeout(5*time.Second))
	require.NoError(t, err)

	_, err = client.OnboardingScreen(context.Background())
	assert.ErrorIs(t, err, repository.ErrResponseTooLarge)
	assert.NotErrorIs(t, err, screen.ErrMalformed)
}

func TestClient_OnboardingScreen_AtLimit(t *testing.T) {
	head := `{"id":1,"name":"`
	tail := `","content":{"time":1,"version":"","blocks":[]}}`
	name := strings.Repeat("a", repository.MaxBodySize-len(head)-len(tail))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, head+name+tail)
	}))
	defer srv.Close()

	client, err := repository.NewClient(srv.URL, repository.WithTimeout(5*time.Second))
	require.NoError(t, err)

	got, err := client.OnboardingScreen(context.Background())
	require.NoError(t, err)
	assert.Len(t, got.Name, len(name))
}

func TestClient_OnboardingScreen_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	client, err := repository.NewClient(endpoint, repository.WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = client.OnboardingScreen(context.Background())
	assert.Error(t, err)
}

func TestClient_LogConversion(t *testing.T) {
	calls := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		calls <- r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := repository.NewClient(srv.URL)
	require.NoError(t, err)

	require.NoError(t, client.LogConversion(context.Background(), 42))
	assert.Equal(t, "/screens/42/log_conversion", <-calls)
}

func TestClient_LogConversion_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := repository.NewClient(srv.URL)
	require.NoError(t, err)

	err = client.LogConversion(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrUnexpectedStatus)
}

func TestClient_EndpointWithPath(t *testing.T) {
	paths := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		_, _ = io.WriteString(w, welcomeScreen)
	}))
	defer srv.Close()

	client, err := repository.NewClient(srv.URL + "/api")
	require.NoError(t, err)

	_, err = client.OnboardingScreen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/onboarding_screen", <-paths)
}

func TestStatic(t *testing.T) {
	static := repository.NewStatic(repository.EmptyScreen())

	got, err := static.OnboardingScreen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)
	assert.Equal(t, "Test", got.Name)
	assert.Empty(t, got.Blocks())

	require.NoError(t, static.LogConversion(context.Background(), 1))
	require.NoError(t, static.LogConversion(context.Background(), 3))
	assert.Equal(t, []int{1, 3}, static.Conversions())
}

func TestStatic_Failing(t *testing.T) {
	errDown := io.ErrUnexpectedEOF
	static := repository.NewFailing(errDown)

	_, err := static.OnboardingScreen(context.Background())
	assert.ErrorIs(t, err, errDown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = repository.NewStatic(repository.EmptyScreen()).OnboardingScreen(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
