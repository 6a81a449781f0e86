package jobqueue

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fulbito-app/fulbito/internal/platform/logging"
	"github.com/fulbito-app/fulbito/internal/platform/resilience"
)

var errPublishTransient = crerr.New("job queue transient failure")

type PublisherConfig struct {
	BaseURL        string
	Token          string
	TargetBaseURL  string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Publisher pushes delayed jobs to a QStash-compatible queue. The queue calls
// the target URL back once the delay elapses; this process never holds timers
// itself.
type Publisher struct {
	client         *fasthttp.Client
	timeout        time.Duration
	baseURL        string
	token          string
	targetBaseURL  string
	retries        int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Publisher{
		client:         &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		timeout:        timeout,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		targetBaseURL:  strings.TrimRight(strings.TrimSpace(cfg.TargetBaseURL), "/"),
		retries:        cfg.Retries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

func (p *Publisher) Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "job queue circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("job queue is temporarily unavailable: %w", err)
		}
	}

	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "/" {
		return crerr.New("job path is required")
	}

	baseURL, err := validateHTTPBaseURL(p.baseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid queue base url")
	}
	targetBaseURL, err := validateHTTPBaseURL(p.targetBaseURL)
	if err != nil {
		return crerr.Wrap(err, "invalid queue target base url")
	}

	targetURL := targetBaseURL + path
	publishURL := baseURL + "/v2/publish/" + targetURL

	bodyPayload := payload
	if bodyPayload == nil {
		bodyPayload = map[string]any{}
	}
	body, err := sonic.Marshal(bodyPayload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	preview := buildPublishPreview(publishURL, normalizeDelay(delay), p.retries, deduplicationID, truncateForLog(string(body), 4096))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("jobqueue.publish_url", publishURL),
			attribute.String("jobqueue.path", path),
			attribute.String("jobqueue.request_preview", preview),
		)
	}
	p.logger.InfoContext(ctx, "job queue publish request", "path", path, "publish_url", publishURL, "preview", preview)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(publishURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+p.token)
	req.Header.SetContentType("application/json")
	req.Header.Set("Upstash-Method", fasthttp.MethodPost)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if delay > 0 {
		req.Header.Set("Upstash-Delay", normalizeDelay(delay))
	}
	if id := strings.TrimSpace(deduplicationID); id != "" {
		req.Header.Set("Upstash-Deduplication-Id", id)
	}
	req.SetBody(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		callErr := fmt.Errorf("%w: publish job publish_url=%s: %v", errPublishTransient, publishURL, err)
		p.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(truncateForLog(string(resp.Body()), 4096))
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: publish job status=%d publish_url=%s body=%s", errPublishTransient, status, publishURL, raw)
			p.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("publish job status=%d publish_url=%s body=%s", status, publishURL, raw)
		p.recordCircuitResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "job published", "path", path, "delay", normalizeDelay(delay), "deduplication_id", deduplicationID)
	p.recordCircuitResult(nil)
	return nil
}

func (p *Publisher) recordCircuitResult(err error) {
	if !p.circuitEnabled || p.breaker == nil {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errPublishTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func normalizeDelay(delay time.Duration) string {
	if delay <= 0 {
		return "0s"
	}
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%ds", seconds)
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return strings.TrimRight(candidate, "/"), nil
}

// buildPublishPreview renders a single-line summary of the outbound publish
// for logs and spans. Secrets are masked.
func buildPublishPreview(publishURL, delay string, retries int, deduplicationID, body string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("POST ")
	_, _ = buf.WriteString(publishURL)
	_, _ = buf.WriteString(" auth=***")
	if retries > 0 {
		_, _ = buf.WriteString(" retries=")
		_, _ = buf.WriteString(strconv.Itoa(retries))
	}
	if delay != "" && delay != "0s" {
		_, _ = buf.WriteString(" delay=")
		_, _ = buf.WriteString(delay)
	}
	if id := strings.TrimSpace(deduplicationID); id != "" {
		_, _ = buf.WriteString(" dedup=")
		_, _ = buf.WriteString(id)
	}
	_, _ = buf.WriteString(" body=")
	_, _ = buf.WriteString(body)

	return buf.String()
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == fasthttp.StatusRequestTimeout ||
		statusCode == fasthttp.StatusTooManyRequests ||
		statusCode >= fasthttp.StatusInternalServerError
}
