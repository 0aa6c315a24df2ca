package targets

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/logging"
	"github.com/arthur-debert/vuegen/pkg/paths"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// SourceBasename is the placeholder replaced by the triggering file's stem
const SourceBasename = "sourceBasename"

var placeholderPattern = regexp.MustCompile(`\$\{([^}]*)\}`)

// Resolver expands target values and joins them with their roots
type Resolver struct {
	roots  *paths.Resolver
	policy MissingPolicy
	logger zerolog.Logger
}

// NewResolver creates a target resolver
func NewResolver(roots *paths.Resolver, policy MissingPolicy) *Resolver {
	if policy == "" {
		policy = MissingFail
	}
	return &Resolver{
		roots:  roots,
		policy: policy,
		logger: logging.GetLogger("targets"),
	}
}

// Resolve returns one absolute path per location target.Root resolves to
func (r *Resolver) Resolve(target types.TemplateTarget, dataKey, triggeringFile string, context map[string]interface{}) ([]string, error) {
	rel, err := r.Expand(target.Value, dataKey, triggeringFile, context)
	if err != nil {
		return nil, err
	}

	bases := r.roots.Resolve(target.Root, triggeringFile)
	if len(bases) == 0 {
		return nil, errors.Newf(errors.ErrTargetUnresolved, "root %q resolves to no locations", target.Root).
			WithDetail("root", string(target.Root)).
			WithDetail("target", target.Value)
	}

	result := make([]string, 0, len(bases))
	for _, base := range bases {
		result = append(result, filepath.Join(base, filepath.FromSlash(rel)))
	}
	return result, nil
}

// Expand substitutes every ${name} placeholder in value
func (r *Resolver) Expand(value, dataKey, triggeringFile string, context map[string]interface{}) (string, error) {
	var firstErr error

	expanded := placeholderPattern.ReplaceAllStringFunc(value, func(token string) string {
		if firstErr != nil {
			return token
		}
		name := placeholderPattern.FindStringSubmatch(token)[1]

		if name == SourceBasename {
			return types.FileStem(triggeringFile)
		}

		if v, ok := lookup(context, dataKey, name); ok {
			return format(v)
		}

		switch r.policy {
		case MissingEmpty:
			r.logMissing(value, name, "")
			return ""
		case MissingUndefined:
			r.logMissing(value, name, "undefined")
			return "undefined"
		default:
			firstErr = errors.Newf(errors.ErrPlaceholderMissing, "placeholder ${%s} has no value under %q", name, dataKey).
				WithDetail("placeholder", name).
				WithDetail("key", dataKey).
				WithDetail("target", value)
			return token
		}
	})

	if firstErr != nil {
		return "", firstErr
	}
	return expanded, nil
}

func (r *Resolver) logMissing(value, name, substitute string) {
	r.logger.Warn().
		Str("target", value).
		Str("placeholder", name).
		Str("substitute", substitute).
		Msg("Placeholder has no value")
}

// lookup returns context[dataKey][name]
func lookup(context map[string]interface{}, dataKey, name string) (interface{}, bool) {
	results := jp.C(dataKey).C(name).Get(context)
	if len(results) == 0 {
		return nil, false
	}
	return results[0], true
}

func format(v interface{}) string {
	switch tv := v.(type) {
	case string:
		return tv
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(tv)
	case int64:
		return strconv.FormatInt(tv, 10)
	case int:
		return strconv.Itoa(tv)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	default:
		return oj.JSON(tv)
	}
}
