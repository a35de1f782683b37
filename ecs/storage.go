package ecs

import (
	"hash/fnv"
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity, singleton and event queue of one world.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	registry   *ComponentRegistry
	singletons map[reflect.Type]any
	events     map[reflect.Type]eventBuffer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](32),
		registry:   registry,
		singletons: make(map[reflect.Type]any),
		events:     make(map[reflect.Type]eventBuffer),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	archetype, _ := s.archetypes.Get(hashTypesToUint32(types))
	return archetype
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// GetArchetypes returns all archetypes in a stable order.
func (s *Storage) GetArchetypes() []*Archetype {
	result := make([]*Archetype, 0, s.archetypes.Len())
	s.archetypes.ForEach(func(_ uint32, archetype *Archetype) bool {
		result = append(result, archetype)
		return true
	})
	sort.Slice(result, func(i, j int) bool { return result[i].id < result[j].id })
	return result
}

func (s *Storage) archetypeCount() int {
	return s.archetypes.Len()
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, exists := s.archetypes.Get(archetypeId)
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes.Put(archetypeId, archetype)
	}

	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetypeId, entityIndex)
}

// Delete removes all data related to the entity ID. Deleting a dead entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.Alive(id.Index())
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType) && archetype.Alive(id.Index())
}

// AddSingleton stores value as the singleton of its type. If the singleton
// already exists its value is overwritten in place, so pointers obtained
// earlier stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if existing, ok := s.singletons[v.Type()]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = ptr.Interface()
}

// ReadSingleton points *target at the singleton of the target's element type.
// target must be a **T. Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry, ok := s.singletons[ptr.Elem().Type().Elem()]
	if !ok {
		return false
	}
	ptr.Elem().Set(reflect.ValueOf(entry))
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) any {
	return s.singletons[t]
}

// componentType returns the value type of a component, unwrapping one pointer level.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components can be structs or primitives but not reference-like kinds
		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 generates an FNV-1a hash for a sorted slice of types.
// The hash is derived from package path and type name, so archetype ids (and
// therefore iteration order) are the same on every run.
func hashTypesToUint32(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(t.PkgPath()))
		h.Write([]byte{0})
		h.Write([]byte(t.String()))
		h.Write([]byte{0})
	}
	return h.Sum32()
}

// ComponentReader is implemented by Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
