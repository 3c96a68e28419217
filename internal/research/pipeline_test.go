package research

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/llm"
	"github.com/jonathan/client-research/internal/roles"
)

const (
	homeHTML = `<html><head><title>Acme Inc.</title></head><body>
<nav><a href="/about-us">About</a> <a href="/services">Our Services</a></nav>
<p>We build widgets.</p>
</body></html>`
	aboutHTML = `<html><body><h1>About Acme</h1>
<div class="team-grid"><h3>Jane Smith</h3><p>Marketing Director</p></div>
</body></html>`
	servicesHTML = `<html><body><h2>Services</h2><ul><li>Widget design</li></ul></body></html>`
)

type fakeLLM struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeLLM) Close() error { return nil }

func newSiteServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func acmeSite(t *testing.T) *httptest.Server {
	return newSiteServer(t, map[string]string{
		"/":         homeHTML,
		"/about-us": aboutHTML,
		"/services": servicesHTML,
	})
}

func TestGather_FullSite(t *testing.T) {
	server := acmeSite(t)
	p := NewPipeline(fetch.NewFetcher(nil, nil), nil)

	rc, err := p.Gather(context.Background(), server.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "Acme Inc.", rc.Home.Title)
	assert.Equal(t, "We build widgets.", rc.Home.BodyText)
	assert.Equal(t, server.URL+"/about-us", rc.About.URL)
	assert.Equal(t, "About Acme Marketing Director", rc.About.BodyText)
	assert.Equal(t, server.URL+"/services", rc.Services.URL)
	assert.Equal(t, "Services Widget design", rc.Services.BodyText)
	assert.Equal(t, []string{"Jane Smith – Marketing Director"}, rc.People.Strings())

	text := rc.Text()
	assert.Contains(t, text, "--- About Page ("+server.URL+"/about-us) ---\nAbout Acme Marketing Director\n")
	assert.Contains(t, text, "--- Team Info ---\nJane Smith – Marketing Director\n")
}

func TestGather_NoRelatedLinks(t *testing.T) {
	server := newSiteServer(t, map[string]string{
		"/": `<html><head><title>Acme Inc.</title></head><body><p>We build widgets.</p></body></html>`,
	})
	p := NewPipeline(fetch.NewFetcher(nil, nil), nil)

	rc, err := p.Gather(context.Background(), server.URL+"/")
	require.NoError(t, err)

	assert.True(t, rc.About.Empty())
	assert.True(t, rc.Services.Empty())
	assert.Equal(t, 0, rc.People.Len())
	assert.Equal(t, "\nTitle: Acme Inc.\n\n"+
		"--- Home Page ---\nWe build widgets.\n\n"+
		"--- About Page (none) ---\n\n\n"+
		"--- Services Page (none) ---\n\n\n"+
		"--- Team Info ---\nNo team info found.\n", rc.Text())
}

func TestGather_UnreachableSeedDegrades(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	seed := server.URL + "/"
	server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPipeline(fetch.NewFetcher(nil, nil), nil, WithLogger(zap.New(core)))

	rc, err := p.Gather(context.Background(), seed)
	require.NoError(t, err)

	assert.True(t, rc.Home.Failed())
	assert.True(t, strings.HasPrefix(rc.Home.BodyText, "Error scraping "+seed+": "), rc.Home.BodyText)
	assert.Equal(t, "", rc.Home.Title)
	assert.True(t, rc.About.Empty())
	assert.True(t, rc.Services.Empty())
	assert.Equal(t, 0, rc.People.Len())
	assert.Equal(t, 1, logs.FilterMessage("page scrape degraded").Len())

	discoveries := logs.FilterMessage("related page discovery").All()
	require.Len(t, discoveries, 2)
	for _, entry := range discoveries {
		assert.Equal(t, "fetch_failed", entry.ContextMap()["status"])
	}
}

// homeOnceFailing fails the seed scrape but serves every other page.
type homeOnceFailing struct {
	*fetch.Fetcher
	seed string
}

func (s homeOnceFailing) Scrape(ctx context.Context, urlStr string) fetch.Page {
	if urlStr == s.seed {
		return fetch.ErrorPage(urlStr, errors.New("connection reset"))
	}
	return s.Fetcher.Scrape(ctx, urlStr)
}

func TestGather_FailedHomeRefetchedForDiscovery(t *testing.T) {
	server := acmeSite(t)
	seed := server.URL + "/"
	p := NewPipeline(homeOnceFailing{Fetcher: fetch.NewFetcher(nil, nil), seed: seed}, nil)

	rc, err := p.Gather(context.Background(), seed)
	require.NoError(t, err)

	assert.True(t, rc.Home.Failed())
	assert.Equal(t, server.URL+"/about-us", rc.About.URL)
	assert.Equal(t, server.URL+"/services", rc.Services.URL)
	assert.Equal(t, []string{"Jane Smith – Marketing Director"}, rc.People.Strings())
}

type pageOnlyScraper struct{}

func (pageOnlyScraper) Scrape(_ context.Context, urlStr string) fetch.Page {
	return fetch.ErrorPage(urlStr, errors.New("connection refused"))
}

func TestGather_FailedHomeWithoutDiscovererReportsFetchFailed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewPipeline(pageOnlyScraper{}, nil, WithLogger(zap.New(core)))

	rc, err := p.Gather(context.Background(), "https://acme.test/")
	require.NoError(t, err)

	assert.True(t, rc.About.Empty())
	discoveries := logs.FilterMessage("related page discovery").All()
	require.Len(t, discoveries, 2)
	for _, entry := range discoveries {
		fields := entry.ContextMap()
		assert.Equal(t, "fetch_failed", fields["status"])
		assert.Equal(t, "connection refused", fields["error"])
	}
}

func TestGather_RelatedPageFailureDegrades(t *testing.T) {
	server := newSiteServer(t, map[string]string{
		"/":         homeHTML,
		"/services": servicesHTML,
	})
	p := NewPipeline(fetch.NewFetcher(nil, nil), nil)

	rc, err := p.Gather(context.Background(), server.URL+"/")
	require.NoError(t, err)

	// A 404 still yields a page; its body is whatever the server sent.
	assert.False(t, rc.About.Failed())
	assert.Equal(t, http.StatusNotFound, rc.About.StatusCode)
	assert.Equal(t, "Services Widget design", rc.Services.BodyText)
	assert.Equal(t, 0, rc.People.Len())
}

func TestGather_CancelledContext(t *testing.T) {
	server := acmeSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(fetch.NewFetcher(nil, nil), nil)
	_, err := p.Gather(ctx, server.URL+"/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Success(t *testing.T) {
	server := acmeSite(t)
	summarizer := &fakeLLM{response: "```markdown\n# Acme briefing\n```"}

	var steps []string
	p := NewPipeline(fetch.NewFetcher(nil, nil), summarizer, WithProgress(func(e ProgressEvent) {
		steps = append(steps, e.Step)
	}))

	result, err := p.Run(context.Background(), server.URL+"/", roles.Strategist)
	require.NoError(t, err)

	assert.Equal(t, "# Acme briefing", result.Summary)
	assert.Equal(t, "fake-model", result.Model)
	assert.Equal(t, roles.Strategist, result.Role)
	assert.Equal(t, []string{StepHome, StepDiscover, StepRelated, StepPeople, StepSummarize}, steps)

	require.Len(t, summarizer.prompts, 1)
	prompt := summarizer.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "You're analyzing a company based on its website.\n\n\nTitle: Acme Inc.\n"), prompt)
	assert.Contains(t, prompt, "Jane Smith – Marketing Director")
	assert.True(t, strings.HasSuffix(prompt, roles.Instructions(roles.Strategist)))
}

func TestRun_UnknownRoleStillSummarizes(t *testing.T) {
	server := acmeSite(t)
	summarizer := &fakeLLM{response: "ok"}
	p := NewPipeline(fetch.NewFetcher(nil, nil), summarizer)

	_, err := p.Run(context.Background(), server.URL+"/", roles.Parse("Designer"))
	require.NoError(t, err)

	require.Len(t, summarizer.prompts, 1)
	assert.True(t, strings.HasSuffix(summarizer.prompts[0], "# Unknown role"))
}

func TestRun_SummarizerFailure(t *testing.T) {
	server := acmeSite(t)
	cause := errors.New("quota exceeded")
	p := NewPipeline(fetch.NewFetcher(nil, nil), &fakeLLM{err: cause})

	_, err := p.Run(context.Background(), server.URL+"/", roles.BusinessDevelopment)
	require.Error(t, err)

	var sumErr *SummarizeError
	require.True(t, errors.As(err, &sumErr))
	assert.Equal(t, "fake-model", sumErr.Model)
	assert.ErrorIs(t, err, cause)
}

func TestRun_NoSummarizer(t *testing.T) {
	server := acmeSite(t)
	p := NewPipeline(fetch.NewFetcher(nil, nil), nil)

	_, err := p.Run(context.Background(), server.URL+"/", roles.Strategist)

	var sumErr *SummarizeError
	assert.True(t, errors.As(err, &sumErr))
}

func TestRunWithProgress_OverridesPipelineCallback(t *testing.T) {
	server := acmeSite(t)
	var pipelineEvents, callEvents int
	p := NewPipeline(fetch.NewFetcher(nil, nil), &fakeLLM{response: "ok"},
		WithProgress(func(ProgressEvent) { pipelineEvents++ }))

	_, err := p.RunWithProgress(context.Background(), server.URL+"/", roles.Strategist,
		func(ProgressEvent) { callEvents++ })
	require.NoError(t, err)

	assert.Equal(t, 0, pipelineEvents)
	assert.Equal(t, 5, callEvents)
}
