package assistant_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"shootflow-backend/internal/assistant"
)

func TestEnabled(t *testing.T) {
	assert.False(t, assistant.NewClient("", "").Enabled())
	assert.False(t, assistant.NewClient("http://localhost", "").Enabled())
	assert.True(t, assistant.NewClient("http://localhost", "key").Enabled())
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Tomorrow at 10am."}}]}`)
	}))
	defer srv.Close()

	client := assistant.NewClient(srv.URL, "test-key")
	reply, err := client.Complete("when is the Oak St shoot?")
	assert.NoError(t, err)
	assert.Equal(t, "Tomorrow at 10am.", reply)
}

func TestCompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := assistant.NewClient(srv.URL, "test-key")
	_, err := client.Complete("hello")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestRetryWithBackoffRecovers(t *testing.T) {
	client := assistant.NewClient("http://localhost", "key")

	attempts := 0
	err := client.RetryWithBackoff(func() error {
		attempts++
		if attempts < 2 {
			return errors.New("transient")
		}
		return nil
	}, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryWithBackoffExhausts(t *testing.T) {
	client := assistant.NewClient("http://localhost", "key")

	err := client.RetryWithBackoff(func() error {
		return errors.New("upstream down")
	}, 1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 1 retries")
	assert.Contains(t, err.Error(), "upstream down")
}
