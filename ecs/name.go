package ecs

// Name is a human readable label for an entity, shown by debugging tools.
type Name string
