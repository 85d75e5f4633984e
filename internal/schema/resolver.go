package schema

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxDepth bounds nested component expansion. Authored schemas
	// rarely nest past three levels; the cap exists for malformed ones.
	DefaultMaxDepth = 8

	// maxParallelFetches bounds concurrent sibling sub-schema fetches.
	maxParallelFetches = 4

	mediaSelection = "data { attributes { url } }"
)

// Resolver expands a component's attribute schema into GraphQL selections.
type Resolver struct {
	client   *Client
	maxDepth int
	log      *slog.Logger
}

// NewResolver creates a resolver. A maxDepth of zero or less falls back to
// DefaultMaxDepth; a nil logger falls back to slog.Default.
func NewResolver(client *Client, maxDepth int, log *slog.Logger) *Resolver {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{client: client, maxDepth: maxDepth, log: log}
}

// Resolve fetches the schema for id and expands it into one selection string
// per field, in schema order: media fields select the asset url, component
// fields recurse into the nested component's schema, anything else selects
// the bare field name.
//
// A fetch failure for id itself is returned as an error. A failure inside a
// nested component drops only that branch: the wrapping field is omitted from
// the result with a warning, and sibling fields resolve normally.
//
// A resolution that ends with no selections at all is an error: an empty
// selection set cannot produce a valid fragment.
func (r *Resolver) Resolve(ctx context.Context, id string) ([]string, error) {
	selections, err := r.resolve(ctx, id, 0)
	if err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, oops.Code("SCHEMA_EMPTY").
			With("component", id).
			Errorf("component resolved to no selectable fields")
	}
	return selections, nil
}

func (r *Resolver) resolve(ctx context.Context, id string, depth int) ([]string, error) {
	if depth >= r.maxDepth {
		return nil, oops.Code("MAX_DEPTH_EXCEEDED").
			With("component", id).
			Errorf("component nesting exceeds %d levels", r.maxDepth)
	}

	attrs, err := r.client.ComponentSchema(ctx, id)
	if err != nil {
		return nil, err
	}

	// Component fields fetch their sub-schemas concurrently; every result
	// lands in its declaration slot so the join preserves schema order.
	selections := make([]string, len(attrs))
	branchErrs := make([]error, len(attrs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)

	for i, attr := range attrs {
		switch attr.Type {
		case "media":
			selections[i] = attr.Name + " { " + mediaSelection + " }"
		case "component":
			i, attr := i, attr
			g.Go(func() error {
				nested, err := r.resolve(gctx, attr.Component, depth+1)
				switch {
				case err != nil:
					branchErrs[i] = err
				case len(nested) == 0:
					branchErrs[i] = oops.Code("SCHEMA_EMPTY").
						With("component", attr.Component).
						Errorf("nested component resolved to no fields")
				default:
					selections[i] = attr.Name + " { " + strings.Join(nested, "\n") + " }"
				}
				// Branch failures never abort sibling resolution.
				return nil
			})
		default:
			selections[i] = attr.Name
		}
	}
	_ = g.Wait()

	out := make([]string, 0, len(selections))
	for i, sel := range selections {
		if branchErrs[i] != nil {
			r.log.Warn("dropping unresolved component field",
				"parent", id,
				"field", attrs[i].Name,
				"error", branchErrs[i])
			continue
		}
		out = append(out, sel)
	}
	return out, nil
}
