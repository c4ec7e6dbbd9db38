// Package ecs is the archetype entity-component-system the game runs on.
//
// Entities live in archetypes keyed by their component set. Systems declare
// what they read as Query[T] and Singleton[T] fields; the Scheduler fills
// them before each Execute. Structural changes made while a frame runs go
// through the frame's Commands and land at the end of the frame, so a
// projectile spawned by the fire system is first seen by movement on the
// next frame. Timer is the frame-delta countdown behind sprite animation,
// entity lifetimes and the cannon's fire rate. EntityRef follows an entity
// across archetype moves, which is how a tween completion finds the cannon
// again after its Animator component has been removed.
package ecs
