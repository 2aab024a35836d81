package convert

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/born-ml/nbt/internal/nbt"
)

// Config configures a Registry. The zero value is ready to use.
type Config struct {
	// Logger receives debug records for registration events.
	// Nil discards them.
	Logger *slog.Logger
}

// Registry resolves converters for Go types and drives conversions.
type Registry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]Converter
	overrides  map[reflect.Type]map[string]Converter // struct type -> Go field name
	plans      map[reflect.Type]*structPlan
	logger     *slog.Logger
}

// NewRegistry creates a registry with only the built-in rules.
func NewRegistry(config Config) *Registry {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		converters: make(map[reflect.Type]Converter),
		overrides:  make(map[reflect.Type]map[string]Converter),
		plans:      make(map[reflect.Type]*structPlan),
		logger:     logger,
	}
}

// RegisterConverter installs c for values of exactly type typ, replacing
// any converter previously registered for it.
func (r *Registry) RegisterConverter(typ reflect.Type, c Converter) error {
	if typ == nil || c == nil {
		return fmt.Errorf("%w: nil type or converter", ErrInvalidConverterDeclaration)
	}

	r.mu.Lock()
	_, replaced := r.converters[typ]
	r.converters[typ] = c
	r.mu.Unlock()

	r.logger.Debug("registered converter", "type", typ.String(), "replaced", replaced)
	return nil
}

// Register installs c for values of type T.
func Register[T any](r *Registry, c Converter) error {
	return r.RegisterConverter(reflect.TypeFor[T](), c)
}

// DeclareProperty attaches a converter of type converterType to one field
// of structType. field is either the Go field name or its NBT key.
//
// The declaration is validated immediately: the struct must have such an
// exported field, no two of its fields may share a key, and converterType
// must implement Converter. Otherwise ErrInvalidConverterDeclaration is
// returned.
func (r *Registry) DeclareProperty(structType reflect.Type, field string, converterType reflect.Type) error {
	if structType != nil && structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}
	if structType == nil || structType.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v is not a struct type", ErrInvalidConverterDeclaration, structType)
	}

	if err := checkKeys(structType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConverterDeclaration, err)
	}

	goName, ok := lookupField(structType, field)
	if !ok {
		return fmt.Errorf("%w: %s has no exported property %q", ErrInvalidConverterDeclaration, structType, field)
	}

	c, err := instantiate(converterType)
	if err != nil {
		return fmt.Errorf("property %s.%s: %w", structType, field, err)
	}

	r.mu.Lock()
	props := r.overrides[structType]
	if props == nil {
		props = make(map[string]Converter)
		r.overrides[structType] = props
	}
	props[goName] = c
	delete(r.plans, structType)
	r.mu.Unlock()

	r.logger.Debug("declared property converter",
		"struct", structType.String(), "field", goName, "converter", converterType.String())
	return nil
}

func (r *Registry) lookup(typ reflect.Type) (Converter, bool) {
	r.mu.RLock()
	c, ok := r.converters[typ]
	r.mu.RUnlock()
	return c, ok
}

// ToTag converts v to a tag.
func (r *Registry) ToTag(v any) (nbt.Tag, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil value", ErrNoConverterFound)
	}
	return r.encode(reflect.ValueOf(v), &encodeState{})
}

// FromTag stores the value represented by t into the value ptr points to.
func (r *Registry) FromTag(t nbt.Tag, ptr any) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("%w: FromTag needs a non-nil pointer, got %T", ErrConversion, ptr)
	}
	return r.decode(t, v.Elem())
}

// ToTag converts v to a tag using its static type T, so interface-typed
// values resolve converters registered for the interface.
func ToTag[T any](r *Registry, v T) (nbt.Tag, error) {
	return r.encode(reflect.ValueOf(&v).Elem(), &encodeState{})
}

// ToNative converts t into a new value of type T.
func ToNative[T any](r *Registry, t nbt.Tag) (T, error) {
	var out T
	if err := r.decode(t, reflect.ValueOf(&out).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// encodeState tracks one ToTag call. A tag tree cannot share nodes, so
// a value graph that nests deeper than nbt.MaxDepth containers or reaches
// the same pointer again is rejected with nbt.ErrMaxDepth.
type encodeState struct {
	depth  int
	active map[visit]struct{} // pointers on the current path
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// enter records one more level of container nesting.
func (st *encodeState) enter(typ reflect.Type) error {
	if st.depth >= nbt.MaxDepth {
		return fmt.Errorf("%w: %s nested more than %d levels", nbt.ErrMaxDepth, typ, nbt.MaxDepth)
	}
	st.depth++
	return nil
}

func (st *encodeState) leave() { st.depth-- }

// follow marks pointer v as being encoded. The returned func unmarks it.
func (st *encodeState) follow(v reflect.Value) (func(), error) {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, ok := st.active[key]; ok {
		return nil, fmt.Errorf("%w: cycle through %s", nbt.ErrMaxDepth, v.Type())
	}
	if st.active == nil {
		st.active = make(map[visit]struct{})
	}
	st.active[key] = struct{}{}
	return func() { delete(st.active, key) }, nil
}

// encode resolves a converter for v's type and applies it.
func (r *Registry) encode(v reflect.Value, st *encodeState) (nbt.Tag, error) {
	if c, ok := r.lookup(v.Type()); ok {
		return c.ToTag(v)
	}
	return r.encodeBuiltin(v, st)
}

// decode resolves a converter for v's type and fills v from t.
func (r *Registry) decode(t nbt.Tag, v reflect.Value) error {
	if t == nil {
		return fmt.Errorf("%w: nil tag", ErrConversion)
	}
	if c, ok := r.lookup(v.Type()); ok {
		if err := c.FromTag(t, v); err != nil {
			return conversionFailure(err, t, v.Type())
		}
		return nil
	}
	return r.decodeBuiltin(t, v)
}
