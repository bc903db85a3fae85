package provider

import (
    "context"
    "fmt"
    "strings"

    "golang.org/x/sync/errgroup"
)

// Registry holds the providers configured at startup and resolves the
// per-request provider selection. It is built once in the app lifecycle and
// read-only afterwards.
type Registry struct {
    providers map[string]Provider
    order     []string
    defaultID string
}

// NewRegistry builds a registry from the given providers. The first provider
// is the default unless defaultID names another one.
func NewRegistry(defaultID string, providers ...Provider) (*Registry, error) {
    if len(providers) == 0 {
        return nil, fmt.Errorf("registry: at least one provider is required")
    }
    r := &Registry{providers: make(map[string]Provider, len(providers))}
    for _, p := range providers {
        id := p.Name()
        if _, dup := r.providers[id]; dup {
            return nil, fmt.Errorf("registry: duplicate provider %q", id)
        }
        r.providers[id] = p
        r.order = append(r.order, id)
    }
    r.defaultID = r.order[0]
    if strings.TrimSpace(defaultID) != "" {
        if _, ok := r.providers[defaultID]; !ok {
            return nil, fmt.Errorf("registry: default provider %q: %w", defaultID, ErrUnknownProvider)
        }
        r.defaultID = defaultID
    }
    return r, nil
}

// Get resolves a provider id; the empty id selects the default provider.
func (r *Registry) Get(id string) (Provider, error) {
    if strings.TrimSpace(id) == "" {
        id = r.defaultID
    }
    p, ok := r.providers[id]
    if !ok {
        return nil, fmt.Errorf("registry: %q: %w", id, ErrUnknownProvider)
    }
    return p, nil
}

// Default returns the default provider id.
func (r *Registry) Default() string { return r.defaultID }

// Available lists the configured provider ids in registration order.
func (r *Registry) Available() []string {
    return append([]string(nil), r.order...)
}

// Preflight probes every provider that supports Ping concurrently and
// returns the first failure. Callers treat the result as best-effort: a
// failed probe is logged, not fatal.
func (r *Registry) Preflight(ctx context.Context) error {
    g, ctx := errgroup.WithContext(ctx)
    for _, id := range r.order {
        pinger, ok := r.providers[id].(Pinger)
        if !ok {
            continue
        }
        g.Go(func() error {
            return pinger.Ping(ctx)
        })
    }
    return g.Wait()
}
