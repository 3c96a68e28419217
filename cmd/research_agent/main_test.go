package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

const (
	siteHome = `<html><head><title>Acme Inc.</title></head><body>
<nav><a href="/about-us">About</a> <a href="/services">Our Services</a></nav>
<p>We build widgets for factories.</p>
</body></html>`
	siteAbout = `<html><body><h1>About Acme</h1>
<div class="team-grid"><h3>Jane Smith</h3><p>Marketing Director</p></div>
</body></html>`
	siteServices = `<html><body><h2>Services</h2><ul><li>Widget design</li></ul></body></html>`
)

func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/", serve(siteHome))
	mux.HandleFunc("/about-us", serve(siteAbout))
	mux.HandleFunc("/services", serve(siteServices))

	site := httptest.NewServer(mux)
	t.Cleanup(site.Close)
	return site
}

// newFakeOpenAI serves chat completions with a fixed reply and records prompts.
func newFakeOpenAI(t *testing.T, reply string) (*httptest.Server, *[]string) {
	t.Helper()
	var prompts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		for _, m := range req.Messages {
			prompts = append(prompts, m.Content)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "o3",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &prompts
}

// runCommand sets flags on cmd, runs runE and restores the flags afterwards.
func runCommand(t *testing.T, cmd *cobra.Command, runE func(*cobra.Command, []string) error, flags map[string]string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	})
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value), name)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err := runE(cmd, nil)
	return out.String(), err
}
