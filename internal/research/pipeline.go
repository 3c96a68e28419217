package research

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/client-research/internal/crawling"
	"github.com/jonathan/client-research/internal/fetch"
	"github.com/jonathan/client-research/internal/llm"
	"github.com/jonathan/client-research/internal/people"
	"github.com/jonathan/client-research/internal/roles"
)

// Progress steps reported through ProgressCallback.
const (
	StepHome      = "home"
	StepDiscover  = "discover"
	StepRelated   = "related"
	StepPeople    = "people"
	StepSummarize = "summarize"
)

// ProgressEvent represents a progress update during a research run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Scraper fetches a page and extracts its text without failing.
type Scraper interface {
	Scrape(ctx context.Context, urlStr string) fetch.Page
}

// Result is the outcome of a full research run.
type Result struct {
	Context  *Context
	Role     roles.Key
	Model    string
	Summary  string
	Duration time.Duration
}

// Pipeline runs gather and summarize for one seed URL at a time.
// It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	scraper    Scraper
	discoverer *crawling.Discoverer
	miner      *people.Miner
	summarizer llm.Client
	tier       llm.ModelTier
	logger     *zap.Logger
	onProgress ProgressCallback
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMiner replaces the default people miner.
func WithMiner(m *people.Miner) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.miner = m
		}
	}
}

// WithDiscoverer sets the discoverer that re-fetches the seed page when the
// home scrape failed.
func WithDiscoverer(d *crawling.Discoverer) Option {
	return func(p *Pipeline) { p.discoverer = d }
}

// WithTier selects the summarizer model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(p *Pipeline) { p.tier = tier }
}

// WithProgress registers a callback for progress events.
func WithProgress(cb ProgressCallback) Option {
	return func(p *Pipeline) { p.onProgress = cb }
}

// NewPipeline creates a pipeline. summarizer may be nil when only Gather is used.
// A scraper that can also fetch raw pages doubles as the discoverer.
func NewPipeline(scraper Scraper, summarizer llm.Client, opts ...Option) *Pipeline {
	p := &Pipeline{
		scraper:    scraper,
		miner:      people.NewMiner(),
		summarizer: summarizer,
		tier:       llm.TierAdvanced,
		logger:     zap.NewNop(),
	}
	if f, ok := scraper.(crawling.PageFetcher); ok {
		p.discoverer = crawling.NewDiscoverer(f)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Gather scrapes the seed page, discovers and scrapes the about and services
// pages, and mines the about page for team members. Page failures degrade into
// placeholders; only cancellation of ctx is returned as an error.
func (p *Pipeline) Gather(ctx context.Context, seedURL string) (*Context, error) {
	return p.gather(ctx, seedURL, p.onProgress)
}

func (p *Pipeline) gather(ctx context.Context, seedURL string, progress ProgressCallback) (*Context, error) {
	log := p.logger.With(zap.String("seed_url", seedURL))

	home := p.scraper.Scrape(ctx, seedURL)
	p.logPage(log, "home", home)
	emit(progress, ProgressEvent{Step: StepHome, Message: "Fetched home page", URL: seedURL, Content: home.Title})

	aboutLink := p.discover(ctx, seedURL, home, crawling.KeywordAbout)
	servicesLink := p.discover(ctx, seedURL, home, crawling.KeywordServices)
	p.logDiscovery(log, aboutLink)
	p.logDiscovery(log, servicesLink)
	emit(progress, ProgressEvent{
		Step:    StepDiscover,
		Message: "Discovered related pages",
		Content: map[string]string{
			crawling.KeywordAbout:    aboutLink.URL,
			crawling.KeywordServices: servicesLink.URL,
		},
	})

	var about, services fetch.Page
	g, gctx := errgroup.WithContext(ctx)
	if aboutLink.Found() {
		g.Go(func() error {
			about = p.scraper.Scrape(gctx, aboutLink.URL)
			return nil
		})
	}
	if servicesLink.Found() {
		g.Go(func() error {
			services = p.scraper.Scrape(gctx, servicesLink.URL)
			return nil
		})
	}
	_ = g.Wait()
	if aboutLink.Found() {
		p.logPage(log, "about", about)
	}
	if servicesLink.Found() {
		p.logPage(log, "services", services)
	}
	emit(progress, ProgressEvent{Step: StepRelated, Message: "Fetched related pages"})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	team := p.miner.Extract(about.RawHTML)
	log.Debug("mined team records", zap.Int("count", team.Len()))
	emit(progress, ProgressEvent{Step: StepPeople, Message: "Extracted team info", Content: team.Strings()})

	return &Context{
		Home:     home,
		About:    about,
		Services: services,
		People:   team,
	}, nil
}

// Run gathers the company context and asks the summarizer for a briefing
// tailored to role.
func (p *Pipeline) Run(ctx context.Context, seedURL string, role roles.Key) (*Result, error) {
	return p.RunWithProgress(ctx, seedURL, role, p.onProgress)
}

// RunWithProgress is Run with a per-call progress callback, used by streaming
// callers that share one Pipeline.
func (p *Pipeline) RunWithProgress(ctx context.Context, seedURL string, role roles.Key, progress ProgressCallback) (*Result, error) {
	start := time.Now()

	rc, err := p.gather(ctx, seedURL, progress)
	if err != nil {
		return nil, err
	}

	if p.summarizer == nil {
		return nil, &SummarizeError{Cause: errNoSummarizer}
	}

	model := p.summarizer.GetModel(p.tier)
	prompt := BuildPrompt(rc.Text(), role)
	emit(progress, ProgressEvent{Step: StepSummarize, Message: "Generating briefing", Content: model})
	p.logger.Info("summarizing",
		zap.String("seed_url", seedURL),
		zap.String("role", role.DisplayName()),
		zap.String("model", model),
		zap.Int("prompt_chars", len(prompt)),
	)

	summary, err := p.summarizer.GenerateContent(ctx, prompt, p.tier)
	if err != nil {
		return nil, &SummarizeError{Model: model, Cause: err}
	}

	return &Result{
		Context:  rc,
		Role:     role,
		Model:    model,
		Summary:  llm.StripCodeFence(summary),
		Duration: time.Since(start),
	}, nil
}

// discover looks for keyword among the home page anchors. When the home scrape
// failed, the seed is fetched again through the discoverer.
func (p *Pipeline) discover(ctx context.Context, seedURL string, home fetch.Page, keyword string) crawling.Discovery {
	if !home.Failed() {
		return crawling.Match(home.RawHTML, seedURL, keyword)
	}
	if p.discoverer != nil {
		return p.discoverer.FindRelated(ctx, seedURL, keyword)
	}
	return crawling.Discovery{Keyword: keyword, Status: crawling.StatusFetchFailed, Err: home.Err}
}

func (p *Pipeline) logPage(log *zap.Logger, name string, page fetch.Page) {
	if page.Failed() {
		log.Warn("page scrape degraded",
			zap.String("page", name),
			zap.String("url", page.URL),
			zap.Error(page.Err),
		)
		return
	}
	log.Debug("page scraped",
		zap.String("page", name),
		zap.String("url", page.URL),
		zap.Int("status", page.StatusCode),
		zap.Int("text_chars", len(page.BodyText)),
	)
}

func (p *Pipeline) logDiscovery(log *zap.Logger, d crawling.Discovery) {
	fields := []zap.Field{
		zap.String("keyword", d.Keyword),
		zap.String("status", string(d.Status)),
	}
	if d.URL != "" {
		fields = append(fields, zap.String("url", d.URL))
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}
	log.Debug("related page discovery", fields...)
}

func emit(cb ProgressCallback, event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}
