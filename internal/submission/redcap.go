package submission

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/untillpro/goutils/logger"
)

// countResponseSchema is the body REDCap returns for a record import with
// returnContent=count.
const countResponseSchema = `{
	"type": "object",
	"properties": {
		"count": {"type": ["integer", "string"], "pattern": "^[0-9]+$"}
	},
	"required": ["count"]
}`

const countSchemaURL = "schema://redcap-import-count.json"

var (
	countSchemaOnce sync.Once
	countSchema     *jsonschema.Schema
	countSchemaErr  error
)

// compiledCountSchema compiles the response schema once.
func compiledCountSchema() (*jsonschema.Schema, error) {
	countSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(countResponseSchema), &def); err != nil {
			countSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(countSchemaURL, def); err != nil {
			countSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		countSchema, countSchemaErr = c.Compile(countSchemaURL)
	})
	return countSchema, countSchemaErr
}

// RedcapClient imports records through the REDCap API.
type RedcapClient struct {
	apiURL string
	token  string
	http   *http.Client
}

// NewRedcapClient creates a client for cfg's endpoint.
func NewRedcapClient(cfg Config) *RedcapClient {
	return &RedcapClient{
		apiURL: cfg.APIURL,
		token:  cfg.Token,
		http:   &http.Client{Timeout: cfg.Timeout},
	}
}

// Submit posts rec as a flat JSON record and checks that REDCap reports
// at least one imported record.
func (c *RedcapClient) Submit(ctx context.Context, rec Record) (int, error) {
	data, err := json.Marshal([]Record{rec})
	if err != nil {
		return 0, fmt.Errorf("encode record: %w", err)
	}

	form := url.Values{
		"token":         {c.token},
		"content":       {"record"},
		"format":        {"json"},
		"type":          {"flat"},
		"data":          {string(data)},
		"returnContent": {"count"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post record: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}
	logger.Verbose(fmt.Sprintf("REDCap HTTP %d: %s", resp.StatusCode, body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, redcapMessage(body))
	}

	count, err := parseCount(body)
	if err != nil {
		return 0, err
	}
	if count < 1 {
		return 0, fmt.Errorf("no record was imported")
	}
	return rec.FieldCount(), nil
}

// parseCount validates an import response and returns its count.
func parseCount(body []byte) (int, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("invalid JSON response: %w", err)
	}

	if m, ok := parsed.(map[string]any); ok {
		if msg, ok := m["error"].(string); ok {
			return 0, fmt.Errorf("REDCap error: %s", msg)
		}
	}

	schema, err := compiledCountSchema()
	if err != nil {
		return 0, fmt.Errorf("compile response schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return 0, fmt.Errorf("unexpected response: %w", err)
	}

	var out struct {
		Count json.Number `json:"count"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	n, err := out.Count.Int64()
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", out.Count, err)
	}
	return int(n), nil
}

// redcapMessage extracts the "error" member of a REDCap failure body.
func redcapMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// DryRunClient logs records instead of sending them.
type DryRunClient struct{}

func (DryRunClient) Submit(_ context.Context, rec Record) (int, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("encode record: %w", err)
	}
	logger.Info("dry run, record not sent: " + string(data))
	return rec.FieldCount(), nil
}
