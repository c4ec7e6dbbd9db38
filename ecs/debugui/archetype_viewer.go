package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/handcannon/ecs"
)

const (
	archColumnID = iota
	archColumnComponents
	archColumnEntities
)

// ArchetypeViewer lists every archetype with its live entity count.
type ArchetypeViewer struct {
	rows          []ecs.ArchetypeStats
	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: archColumnEntities}
}

func (av *ArchetypeViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	stats := storage.CollectStats()
	av.rows = stats.ArchetypeBreakdown
	imgui.Text(fmt.Sprintf("%d archetypes, %d entities, %d singletons",
		stats.ArchetypeCount, stats.TotalEntityCount, stats.SingletonCount))

	maxEntityCount := 0
	for _, arch := range av.rows {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Archetype ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Entities")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		av.sortColumn = int(spec.ColumnIndex())
		av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSpecs.SetSpecsDirty(false)
	}
	av.sortRows()

	for _, arch := range av.rows {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("0x%X", arch.ID))

		imgui.TableNextColumn()
		imgui.Text(strings.Join(arch.ComponentTypes, ", "))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
		if maxEntityCount > 0 {
			barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
			imgui.SameLine()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
		}
	}

	imgui.EndTable()
}

func (av *ArchetypeViewer) sortRows() {
	sort.SliceStable(av.rows, func(i, j int) bool {
		a, b := av.rows[i], av.rows[j]
		var less bool
		switch av.sortColumn {
		case archColumnID:
			less = a.ID < b.ID
		case archColumnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.EntityCount < b.EntityCount
		}
		if !av.sortAscending {
			return !less
		}
		return less
	})
}
