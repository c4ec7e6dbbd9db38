package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handcannon/ecs"
)

var nameType = reflect.TypeFor[ecs.Name]()

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID         ecs.EntityId
	Name       string
	Components []string
}

// EntityBrowser pages through live entities, filterable by name or component.
// Selecting a row shows that entity's component values.
type EntityBrowser struct {
	filterText  string
	selected    ecs.EntityId
	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{perPage: perPage}
}

// Entities lists the live entities matching filter, in archetype order.
// The filter matches names and component type names, case-insensitively.
func Entities(storage *ecs.Storage, filter string) []EntityInfo {
	filter = strings.ToLower(filter)
	var entities []EntityInfo

	for _, archetype := range storage.GetArchetypes() {
		components := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			components[i] = t.String()
		}
		joined := strings.ToLower(strings.Join(components, " "))
		hasName := archetype.HasComponent(nameType)

		for id := range archetype.Iter() {
			info := EntityInfo{ID: id, Components: components}
			if hasName {
				if name := ecs.ReadComponent[ecs.Name](storage, id); name != nil {
					info.Name = string(*name)
				}
			}
			if filter != "" && !strings.Contains(strings.ToLower(info.Name), filter) && !strings.Contains(joined, filter) {
				continue
			}
			entities = append(entities, info)
		}
	}
	return entities
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.InputTextWithHint("##search", "Filter by name or component...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	entities := Entities(storage, eb.filterText)
	totalPages := max(1, (len(entities)+eb.perPage-1)/eb.perPage)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := eb.currentPage * eb.perPage
		end := min(start+eb.perPage, len(entities))
		for _, entity := range entities[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(entity.Name)
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && eb.currentPage > 0 {
		eb.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && eb.currentPage < totalPages-1 {
		eb.currentPage++
	}

	imgui.Separator()
	eb.renderSelected(storage)
}

func (eb *EntityBrowser) renderSelected(storage *ecs.Storage) {
	if eb.selected == 0 || !storage.Alive(eb.selected) {
		imgui.Text("No entity selected")
		return
	}

	for _, line := range Describe(storage, eb.selected) {
		imgui.BulletText(line)
	}
}

// Describe formats each component of id as "Type: value".
func Describe(storage *ecs.Storage, id ecs.EntityId) []string {
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil || !storage.Alive(id) {
		return nil
	}

	lines := make([]string, 0, len(archetype.Types()))
	for _, t := range archetype.Types() {
		component := storage.GetComponent(id, t)
		if component == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %+v", t, reflect.ValueOf(component).Elem().Interface()))
	}
	return lines
}
