// Package registry provides an in-process store of registered predictors
// and their inspected schemas.
//
// Registration runs signature inspection once, at load time; the resulting
// Schema is immutable and shared by every subsequent invocation. The
// registry itself is safe for concurrent use.
//
// Inspection outcomes are instrumented through OpenTelemetry: a span wraps
// each registration and counters track successes and definition errors.
// Only the API packages are used; installing exporters is the host's
// concern.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/inferkit/sdk/schema"
	"github.com/inferkit/sdk/signature"
)

const instrumentationName = "github.com/inferkit/sdk/registry"

// ErrAlreadyRegistered is returned when a predictor name is already taken.
var ErrAlreadyRegistered = errors.New("predictor already registered")

// Entry is one registered predictor.
type Entry struct {
	// ID is the opaque registration handle.
	ID string

	// Name is the predictor's declared name, unique within the registry.
	Name string

	// Schema is the immutable inspected schema.
	Schema *schema.Schema

	// RegisteredAt records when the registration happened.
	RegisteredAt time.Time
}

// Registry stores registered predictors keyed by handle and by name.
// All methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Entry
	byName map[string]string

	logger *slog.Logger
	tracer trace.Tracer

	registered metric.Int64Counter
	rejected   metric.Int64Counter
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for non-fatal registry events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		byID:   make(map[string]Entry),
		byName: make(map[string]string),
		logger: slog.Default(),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(r)
	}

	meter := otel.Meter(instrumentationName)
	if c, err := meter.Int64Counter("predictors.registered",
		metric.WithDescription("Predictors successfully registered")); err == nil {
		r.registered = c
	}
	if c, err := meter.Int64Counter("predictors.rejected",
		metric.WithDescription("Predictor registrations rejected with a definition error")); err == nil {
		r.rejected = c
	}

	return r
}

// Register inspects the description and stores its schema under a fresh
// handle. A DefinitionError from inspection is returned unchanged; the
// predictor is simply unusable until its signature is fixed.
func (r *Registry) Register(ctx context.Context, d signature.Description) (Entry, error) {
	ctx, span := r.tracer.Start(ctx, "registry.Register",
		trace.WithAttributes(attribute.String("predictor.name", d.Name)))
	defer span.End()

	s, err := signature.Inspect(d)
	if err != nil {
		if r.rejected != nil {
			r.rejected.Add(ctx, 1)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "definition error")
		return Entry{}, err
	}

	entry := Entry{
		ID:           uuid.New().String(),
		Name:         d.Name,
		Schema:       s,
		RegisteredAt: time.Now().UTC(),
	}

	r.mu.Lock()
	if _, exists := r.byName[d.Name]; exists {
		r.mu.Unlock()
		span.SetStatus(codes.Error, "duplicate name")
		return Entry{}, fmt.Errorf("%w: %s", ErrAlreadyRegistered, d.Name)
	}
	r.byID[entry.ID] = entry
	r.byName[entry.Name] = entry.ID
	r.mu.Unlock()

	if r.registered != nil {
		r.registered.Add(ctx, 1)
	}
	span.SetAttributes(attribute.String("predictor.id", entry.ID))
	return entry, nil
}

// Get returns the entry for a registration handle.
func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return e, ok
}

// Lookup returns the entry for a predictor name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	if !ok {
		return Entry{}, false
	}
	return r.byID[id], true
}

// List returns all entries sorted by predictor name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Deregister removes a registration by handle. Removing an unknown handle
// is not an error, but it is logged: the caller's bookkeeping is off.
func (r *Registry) Deregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		r.logger.Warn("deregister of unknown predictor handle", "id", id)
		return
	}
	delete(r.byID, id)
	delete(r.byName, e.Name)
}
