package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.APIURL = url
	cfg.Token = "E35EBAD0BDE751A7B0F154E4B817DF07"
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestRedcapClientSubmit(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		got = map[string]string{}
		for k := range r.PostForm {
			got[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1}`))
	}))
	defer srv.Close()

	c := NewRedcapClient(testConfig(srv.URL))
	n, err := c.Submit(context.Background(), Record{"record_id": "PT001", "q1": 5, "q2": "2021-03-04"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "E35EBAD0BDE751A7B0F154E4B817DF07", got["token"])
	assert.Equal(t, "record", got["content"])
	assert.Equal(t, "json", got["format"])
	assert.Equal(t, "flat", got["type"])
	assert.Equal(t, "count", got["returnContent"])

	var data []map[string]any
	require.NoError(t, json.Unmarshal([]byte(got["data"]), &data))
	require.Len(t, data, 1)
	assert.Equal(t, "PT001", data[0]["record_id"])
	assert.Equal(t, 5.0, data[0]["q1"])
}

func TestRedcapClientFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"redcap error body", http.StatusBadRequest, `{"error": "You do not have permissions to use the API"}`, "permissions"},
		{"server error", http.StatusInternalServerError, `oops`, "HTTP 500"},
		{"error with 200", http.StatusOK, `{"error": "bad token"}`, "bad token"},
		{"zero count", http.StatusOK, `{"count": 0}`, "no record was imported"},
		{"missing count", http.StatusOK, `{"ids": []}`, "unexpected response"},
		{"not json", http.StatusOK, `<html></html>`, "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewRedcapClient(testConfig(srv.URL))
			_, err := c.Submit(context.Background(), Record{"record_id": "PT001"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRedcapClientCountAsString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": "1"}`))
	}))
	defer srv.Close()

	c := NewRedcapClient(testConfig(srv.URL))
	n, err := c.Submit(context.Background(), Record{"record_id": "PT001", "q1": 1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedcapClientUnreachableIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	asm := NewAssembler(NewRedcapClient(testConfig(url)))
	_, err := asm.Send(context.Background(), Record{"record_id": "PT001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: TransportFailure})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{APIURL: "https://redcap.example.org/api/", Token: "t"}, false},
		{"dry run needs nothing", Config{DryRun: true}, false},
		{"missing url", Config{Token: "t"}, true},
		{"bad scheme", Config{APIURL: "ftp://x", Token: "t"}, true},
		{"missing token", Config{APIURL: "https://redcap.example.org/api/"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DELECTABLE_API_URL", "https://redcap.example.org/api/")
	t.Setenv("DELECTABLE_API_TOKEN", "secret")
	t.Setenv("DELECTABLE_DRY_RUN", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://redcap.example.org/api/", cfg.APIURL)
	assert.Equal(t, "secret", cfg.Token)
	assert.False(t, cfg.DryRun)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	c, err := NewClient(cfg)
	require.NoError(t, err)
	assert.IsType(t, &RedcapClient{}, c)
}

func TestDryRunClient(t *testing.T) {
	c, err := NewClient(Config{DryRun: true})
	require.NoError(t, err)

	n, err := c.Submit(context.Background(), Record{"record_id": "PT001", "a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
