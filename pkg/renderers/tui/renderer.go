package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-tessgen/pkg/render"
	"github.com/goliatone/go-tessgen/pkg/tesseract"
)

// Renderer drives an interactive terminal session over the flattened field
// descriptors and serializes the assembled apply payload.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	httpClient        *http.Client
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field in order and returns the serialized payload.
// When an HTTP client is configured the payload is also posted to the
// Tesseract's apply endpoint, unless testing mode is on or the user declines.
func (r *Renderer) Render(ctx context.Context, data render.TemplateData, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if data.Metadata.Title != "" {
		_ = r.driver.Info(ctx, r.theme.InfoPrefix+data.Metadata.Title)
	}
	if data.Metadata.Description != "" {
		_ = r.driver.Info(ctx, data.Metadata.Description)
	}

	state := NewState(nil)
	for _, field := range data.Fields {
		if err := r.promptField(ctx, field, state, options); err != nil {
			return nil, err
		}
	}

	payload := state.Payload()
	if r.submitTransformer != nil {
		var err error
		payload, err = r.submitTransformer(payload)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	if r.httpClient != nil && data.URL != "" && !options.Testing {
		if err := r.submit(ctx, data.URL, payload, options); err != nil {
			return nil, err
		}
	}

	return r.serialize(payload)
}

func (r *Renderer) promptField(ctx context.Context, field tesseract.UIField, state *State, options render.Options) error {
	switch field.Type {
	case tesseract.TypeComposite:
		msg := r.theme.PromptPrefix + field.Title
		if field.Description != "" {
			msg += ": " + field.Description
		}
		return r.driver.Info(ctx, msg)
	case tesseract.TypeBoolean:
		return r.promptBoolean(ctx, field, state, options)
	case tesseract.TypeNumber, tesseract.TypeInteger:
		return r.promptNumber(ctx, field, state, options)
	case tesseract.TypeString:
		return r.promptString(ctx, field, state, options)
	case tesseract.TypeArray, tesseract.TypeJSON:
		return r.promptStructured(ctx, field, state, options)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedField, field.Key, field.Type)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field tesseract.UIField, state *State, options render.Options) error {
	defaultVal := false
	if b, ok := r.defaultFor(field, options).(bool); ok {
		defaultVal = b
	}
	resp, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.theme.PromptPrefix + field.Title,
		Default: defaultVal,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	return state.Set(field.Key, resp)
}

func (r *Renderer) promptNumber(ctx context.Context, field tesseract.UIField, state *State, options render.Options) error {
	defaultStr := defaultText(r.defaultFor(field, options))
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: r.theme.PromptPrefix + field.Title,
			Default: defaultStr,
			Help:    numberHelp(field),
		})
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			if field.Optional {
				return state.Set(field.Key, nil)
			}
			_ = r.driver.Info(ctx, r.invalid(field, "a value is required"))
			continue
		}

		num, err := parseNumber(input, field.Type == tesseract.TypeInteger)
		if err != nil {
			_ = r.driver.Info(ctx, r.invalid(field, err.Error()))
			continue
		}
		if err := checkConstraints(num, field.NumberConstraints); err != nil {
			_ = r.driver.Info(ctx, r.invalid(field, err.Error()))
			continue
		}
		return state.Set(field.Key, num)
	}
}

func (r *Renderer) promptString(ctx context.Context, field tesseract.UIField, state *State, options render.Options) error {
	defaultStr := defaultText(r.defaultFor(field, options))
	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: r.theme.PromptPrefix + field.Title,
			Default: defaultStr,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}

		if input == "" {
			if field.Optional {
				return state.Set(field.Key, nil)
			}
			if !field.HasDefault {
				_ = r.driver.Info(ctx, r.invalid(field, "a value is required"))
				continue
			}
		}

		if field.CouldBeNumber {
			if num, err := parseNumber(strings.TrimSpace(input), false); err == nil {
				return state.Set(field.Key, num)
			}
		}
		return state.Set(field.Key, input)
	}
}

// promptStructured collects array and free-form JSON fields from a multi-line
// prompt. Arrays must parse as JSON; JSON fields additionally accept a bare
// string.
func (r *Renderer) promptStructured(ctx context.Context, field tesseract.UIField, state *State, options render.Options) error {
	defaultStr := jsonText(r.defaultFor(field, options))
	for {
		input, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: r.theme.PromptPrefix + field.Title,
			Default: defaultStr,
			Help:    field.Description,
		})
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			if field.Optional {
				return state.Set(field.Key, nil)
			}
			_ = r.driver.Info(ctx, r.invalid(field, "a value is required"))
			continue
		}

		value, err := decodeJSON(trimmed)
		if err != nil {
			if field.Type == tesseract.TypeJSON {
				return state.Set(field.Key, trimmed)
			}
			_ = r.driver.Info(ctx, r.invalid(field, "not valid JSON"))
			continue
		}
		return state.Set(field.Key, value)
	}
}

func (r *Renderer) submit(ctx context.Context, baseURL string, payload map[string]any, options render.Options) error {
	if options.SubmitButton {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Submit to %s/apply?", strings.TrimRight(baseURL, "/")),
			Default: true,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("tui: encode payload: %w", err)
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/apply"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("tui: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tui: apply request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("tui: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tui: apply returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(responseBody)))
	}
	return r.driver.Info(ctx, r.theme.InfoPrefix+strings.TrimSpace(string(responseBody)))
}

func (r *Renderer) serialize(payload map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(payload)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(payload)), nil
	default:
		return json.Marshal(payload)
	}
}

// defaultFor prefers a caller-supplied value over the schema default.
func (r *Renderer) defaultFor(field tesseract.UIField, options render.Options) any {
	if value, ok := options.Values[field.Key]; ok {
		return value
	}
	if field.HasDefault {
		return field.Default
	}
	return nil
}

func (r *Renderer) invalid(field tesseract.UIField, reason string) string {
	return fmt.Sprintf("%sInvalid %s: %s", r.theme.ErrorPrefix, field.Key, reason)
}

func defaultText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func jsonText(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	return string(encoded)
}

func parseNumber(input string, integer bool) (json.Number, error) {
	num := json.Number(input)
	if integer {
		if _, err := num.Int64(); err != nil {
			return "", fmt.Errorf("expected an integer")
		}
		return num, nil
	}
	if _, err := num.Float64(); err != nil {
		return "", fmt.Errorf("expected a number")
	}
	return num, nil
}

func checkConstraints(num json.Number, constraints *tesseract.NumberConstraints) error {
	if constraints == nil {
		return nil
	}
	value, err := num.Float64()
	if err != nil {
		return fmt.Errorf("expected a number")
	}
	if constraints.MinValue != nil {
		if min, err := constraints.MinValue.Float64(); err == nil && value < min {
			return fmt.Errorf("minimum is %s", constraints.MinValue.String())
		}
	}
	if constraints.MaxValue != nil {
		if max, err := constraints.MaxValue.Float64(); err == nil && value > max {
			return fmt.Errorf("maximum is %s", constraints.MaxValue.String())
		}
	}
	return nil
}

func numberHelp(field tesseract.UIField) string {
	help := field.Description
	if field.NumberConstraints == nil {
		return help
	}
	var parts []string
	if field.NumberConstraints.MinValue != nil {
		parts = append(parts, "min "+field.NumberConstraints.MinValue.String())
	}
	if field.NumberConstraints.MaxValue != nil {
		parts = append(parts, "max "+field.NumberConstraints.MaxValue.String())
	}
	if field.NumberConstraints.Step != nil {
		parts = append(parts, "step "+field.NumberConstraints.Step.String())
	}
	if len(parts) == 0 {
		return help
	}
	hint := "(" + strings.Join(parts, ", ") + ")"
	if help == "" {
		return hint
	}
	return help + " " + hint
}

func decodeJSON(input string) (any, error) {
	decoder := json.NewDecoder(strings.NewReader(input))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	flattenInto("", values, flattened)
	return flattened.Encode()
}

func flattenInto(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flattenInto(next, val, out)
		}
	case []any:
		for _, val := range v {
			out.Add(prefix+"[]", fmt.Sprint(val))
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	writePretty(&b, "", values)
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			writePretty(b, next, v[key])
		}
	case []any:
		for idx, val := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), val)
		}
	default:
		if prefix != "" {
			fmt.Fprintf(b, "%s=%v\n", prefix, v)
		}
	}
}
