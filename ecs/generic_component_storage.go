package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

type genericBlock[T any] struct {
	items  [genericBlockSize]T
	filled [genericBlockSize]bool
}

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are heap allocated individually so a pointer handed out by Get stays
// valid when later appends grow the block list.
type genericComponentStorage[T any] struct {
	blocks    []*genericBlock[T]
	freeSlots []int
	nextIndex int
}

func (cs *genericComponentStorage[T]) locate(index int) (*genericBlock[T], int) {
	if index < 0 {
		return nil, 0
	}
	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return nil, 0
	}
	return cs.blocks[blockIdx], index % genericBlockSize
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, &genericBlock[T]{})
		}
	}

	block, slot := cs.locate(index)
	block.items[slot] = value
	block.filled[slot] = true
	return index
}

// Get returns a pointer to the component at the given index, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slot := cs.locate(index)
	if block == nil || !block.filled[slot] {
		return nil
	}
	return &block.items[slot]
}

// Delete marks a component slot as empty and zeroes it.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slot := cs.locate(index)
	if block == nil || !block.filled[slot] {
		return
	}
	var zero T
	block.items[slot] = zero
	block.filled[slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slot := cs.locate(index)
	return block != nil && block.filled[slot]
}

// Len returns the number of live components.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.nextIndex - len(cs.freeSlots)
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot := cs.locate(i)
			if block == nil || !block.filled[slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
