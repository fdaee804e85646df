// Package resolve turns an ambiguous session selector into exactly one
// concrete session name, or a reported failure. It never falls back
// between strategies on its own; chains are the caller's business.
package resolve

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/strrl/session-resume/internal/errors"
	"github.com/strrl/session-resume/internal/logger"
	"github.com/strrl/session-resume/internal/paths"
	"github.com/strrl/session-resume/internal/query"
	"github.com/strrl/session-resume/pkg/models"
)

// Records is the cached session listing the resolver works from.
type Records interface {
	Records() ([]models.Session, error)
}

// ActiveFunc reports the name of the session currently open in the
// editor, if any.
type ActiveFunc func() (string, bool)

// Resolver resolves selectors against a cached session listing. It
// keeps no state of its own between calls.
type Resolver struct {
	records Records
	active  ActiveFunc
}

// New returns a resolver over the given listing and active-session
// provider.
func New(records Records, active ActiveFunc) *Resolver {
	return &Resolver{records: records, active: active}
}

// Resolve maps a selector to a single session name. Existence of the
// result is not validated for Explicit and literal selectors; callers
// about to act destructively must check separately.
func (r *Resolver) Resolve(sel Selector) (string, error) {
	switch s := sel.(type) {
	case Explicit:
		return s.Name, nil

	case Current:
		name, ok := r.active()
		if !ok {
			return "", apperrors.NoActiveSession()
		}
		return name, nil

	case LastGlobal:
		records, err := r.records.Records()
		if err != nil {
			return "", err
		}
		return lastByMtime(records, "")

	case LastForDirectory:
		return r.lastForDirectory(s.Dir)

	case LiteralOrDirectory:
		if info, err := os.Stat(s.Value); err == nil && info.IsDir() {
			logger.Debug("Resolve: %q is a directory, resolving its last session", s.Value)
			return r.lastForDirectory(s.Value)
		}
		return strings.TrimSuffix(s.Value, paths.SessionExt), nil

	default:
		panic(fmt.Sprintf("resolve: unhandled selector %T", sel))
	}
}

func (r *Resolver) lastForDirectory(dir string) (string, error) {
	abs, err := paths.AbsoluteDir(dir)
	if err != nil {
		return "", err
	}

	records, err := r.records.Records()
	if err != nil {
		return "", err
	}

	matched := query.FilterBy(records, map[string]any{query.FieldCwd: abs})
	return lastByMtime(matched, abs)
}

// lastByMtime returns the name of the most recently saved record. Ties
// keep the listing's original order, so the result is deterministic for
// a fixed cache snapshot.
func lastByMtime(records []models.Session, dir string) (string, error) {
	if len(records) == 0 {
		if dir != "" {
			return "", apperrors.NotFound(fmt.Sprintf("no sessions for directory %s", dir))
		}
		return "", apperrors.NotFound("no sessions found")
	}

	sorted := make([]models.Session, len(records))
	copy(sorted, records)
	query.SortBy(sorted, query.FieldMtime, true)
	return sorted[0].Name, nil
}
