package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are structs whose exported Query, Singleton and Events fields are wired by
// Scheduler.Register; any other fields keep their state between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
