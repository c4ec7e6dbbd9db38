package debugui

import "github.com/plus3/handcannon/ecs"

// Window is an overlay window drawn from ECS state.
type Window interface {
	Render(storage *ecs.Storage)
}

// SpawnWindow adds w to the overlay as a named ImguiItem.
func SpawnWindow(storage *ecs.Storage, name string, w Window) ecs.EntityId {
	return storage.Spawn(
		ImguiItem{Render: func() { w.Render(storage) }},
		ecs.Name(name),
	)
}

// SpawnDebugUI adds the archetype viewer and entity browser.
func SpawnDebugUI(storage *ecs.Storage) {
	SpawnWindow(storage, "Archetype Viewer", NewArchetypeViewer())
	SpawnWindow(storage, "Entity Browser", NewEntityBrowser(100))
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}
