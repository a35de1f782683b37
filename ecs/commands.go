package ecs

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

// Defer queues a function to run after the frame's structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation. Deleting the same entity twice
// in one frame is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// Pending returns the number of queued spawns and deletes.
func (c *Commands) Pending() (spawns, deletes int) {
	return len(c.spawns), len(c.deletes)
}

// Flush applies all commands to the provided storage, resetting the buffer state.
// Order: deletes, spawns, event rotation, deferred functions.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		if _, done := deleted[id]; done {
			continue
		}
		storage.Delete(id)
		deleted[id] = struct{}{}
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	storage.rotateEvents()

	defers := c.defers
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}
}
