package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/credably/internal/application/service"
	"github.com/khoahotran/credably/internal/domain/skill"
	"github.com/khoahotran/credably/pkg/apperror"
	"github.com/khoahotran/credably/pkg/logger"
	"github.com/khoahotran/credably/pkg/metrics"
)

var tracer = otel.Tracer("analysis_usecase")

var errMalformed = errors.New("model returned malformed output")

// completer runs the single prompt/response round trip shared by every analysis.
type completer struct {
	llm     service.LLMService
	metrics *metrics.Recorder
	logger  logger.Logger
}

// complete returns the parsed response when it is valid JSON holding an
// array under every key in arrays. Anything else is logged and surfaced as a generic
// internal error; the model output never reaches the caller.
func (c completer) complete(ctx context.Context, kind, system, prompt string, arrays ...string) (gjson.Result, error) {
	ctx, span := tracer.Start(ctx, "Analysis."+kind)
	defer span.End()
	span.SetAttributes(attribute.String("analysis.kind", kind))

	l := c.logger.With(zap.String("analysis", kind))

	raw, err := c.llm.CompleteJSON(ctx, system, prompt)
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveAICall(kind, err)
		l.Error("AI completion failed", err)
		return gjson.Result{}, apperror.NewInternal("AI analysis is unavailable", err)
	}

	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		c.metrics.ObserveAICall(kind, errMalformed)
		l.Error("AI returned non-JSON output", errMalformed, zap.Int("length", len(raw)))
		return gjson.Result{}, apperror.NewInternal("AI analysis failed", errMalformed)
	}
	parsed := gjson.Parse(raw)
	for _, key := range arrays {
		if !parsed.Get(key).IsArray() {
			return gjson.Result{}, c.malformed(kind, fmt.Errorf("%w: %q is not an array", errMalformed, key))
		}
	}

	c.metrics.ObserveAICall(kind, nil)
	return parsed, nil
}

// malformed counts and logs output that parsed but cannot be used, and
// returns the generic error callers surface.
func (c completer) malformed(kind string, err error) error {
	c.metrics.ObserveAICall(kind, err)
	c.logger.Error("AI output does not match the expected shape", err, zap.String("analysis", kind))
	return apperror.NewInternal("AI analysis failed", err)
}

func stringList(r gjson.Result) []string {
	out := []string{}
	for _, v := range r.Array() {
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// describeSkills renders skills one per line for prompts.
func describeSkills(skills []*skill.UserSkill) string {
	if len(skills) == 0 {
		return "(none recorded)"
	}
	var b strings.Builder
	for _, us := range skills {
		fmt.Fprintf(&b, "- %s (%s, proficiency %d, source %s", us.Skill.Name, us.Level, us.Proficiency, us.Source)
		if us.Verified {
			b.WriteString(", verified")
		}
		b.WriteString(")\n")
	}
	return b.String()
}
