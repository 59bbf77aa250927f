package module

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dnfbridge/dnfbridge/pkg/engine"
)

// SessionOpener opens an engine session for one invocation.
type SessionOpener func(ctx context.Context, opts engine.Options) (engine.Session, error)

// Module runs invocations against the package engine.
type Module struct {
	open SessionOpener
	log  zerolog.Logger
}

// New creates a module backed by the given session opener.
func New(open SessionOpener, log zerolog.Logger) *Module {
	return &Module{open: open, log: log}
}

// Run executes one invocation to completion: validate parameters, open a
// session, dispatch the convergence or list query, and translate errors
// into the response contract. The session is released on every exit path;
// failures never leave a partially reported result.
func (m *Module) Run(ctx context.Context, params *Params) *Response {
	id := uuid.NewString()
	log := m.log.With().Str("invocation", id).Logger()

	params.Normalize()
	if err := params.Validate(); err != nil {
		return failure(id, err)
	}

	sess, err := m.open(ctx, params.Options())
	if err != nil {
		return failure(id, err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("closing engine session")
		}
	}()

	if params.List != "" {
		return m.list(ctx, id, sess, params.List)
	}

	specs, err := engine.ParseSpecs(params.Name)
	if err != nil {
		return failure(id, err)
	}
	state := params.DesiredState()
	log.Debug().Str("state", string(state)).Int("specs", len(specs)).Msg("converging package state")

	res, err := engine.Converge(ctx, sess, state, specs)
	if err != nil {
		log.Error().Err(err).Msg("convergence failed")
		return failure(id, err)
	}

	return &Response{
		InvocationID: id,
		Changed:      res.Changed,
		Msg:          "ok",
		Results: &Results{
			Installed: records(res.Installed),
			Removed:   records(res.Removed),
			Upgraded:  records(res.Upgraded),
			Summary:   res.Summary,
		},
	}
}

func (m *Module) list(ctx context.Context, id string, sess engine.Session, what string) *Response {
	if what == "repos" {
		repos, err := sess.ListRepos(ctx)
		if err != nil {
			return failure(id, err)
		}
		if repos == nil {
			repos = []string{}
		}
		return &Response{InvocationID: id, Msg: "ok", Repos: repos}
	}

	var (
		recs []engine.PackageRecord
		err  error
	)
	switch what {
	case "installed":
		recs, err = sess.ListInstalled(ctx)
	case "available":
		recs, err = sess.ListAvailable(ctx)
	case "updates":
		recs, err = sess.ListUpdates(ctx)
	default:
		return failure(id, engine.NewConfigurationError("unknown list query: "+what, nil))
	}
	if err != nil {
		return failure(id, err)
	}
	return &Response{InvocationID: id, Msg: "ok", Packages: records(recs)}
}
