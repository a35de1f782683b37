package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
)

// EntityRow is one line of the entity table.
type EntityRow struct {
	ID      ecs.EntityId
	Kind    string
	X, Y    float64
	Heading float64
	Speed   float64
	Size    int
}

type entityItem struct {
	ecs.EntityId
	*game.Position
	*game.Movement
	*game.Collider
	Meteor *game.Meteor `ecs:"optional"`
}

// collectRows snapshots every moving collidable entity.
func collectRows(view *ecs.View[entityItem]) []EntityRow {
	var rows []EntityRow
	for id, item := range view.Iter() {
		row := EntityRow{
			ID:      id,
			Kind:    item.Collider.Kind.String(),
			X:       item.Position.X,
			Y:       item.Position.Y,
			Heading: item.Movement.Heading,
			Speed:   item.Movement.Speed,
		}
		if item.Meteor != nil {
			row.Size = item.Meteor.Size
		}
		rows = append(rows, row)
	}
	return rows
}

const (
	columnID = iota
	columnKind
	columnPosition
	columnHeading
	columnSpeed
	columnSize
)

func sortRows(rows []EntityRow, column int, ascending bool) {
	slices.SortStableFunc(rows, func(a, b EntityRow) int {
		var c int
		switch column {
		case columnKind:
			c = strings.Compare(a.Kind, b.Kind)
		case columnPosition:
			c = cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
		case columnHeading:
			c = cmp.Compare(a.Heading, b.Heading)
		case columnSpeed:
			c = cmp.Compare(a.Speed, b.Speed)
		case columnSize:
			c = cmp.Compare(a.Size, b.Size)
		}
		c = cmp.Or(c, cmp.Compare(a.ID, b.ID))
		if !ascending {
			return -c
		}
		return c
	})
}

// filterRows keeps rows whose kind or id contains text.
func filterRows(rows []EntityRow, text string) []EntityRow {
	if text == "" {
		return rows
	}
	text = strings.ToLower(text)
	out := make([]EntityRow, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(r.Kind, text) || strings.Contains(fmt.Sprint(r.ID), text) {
			out = append(out, r)
		}
	}
	return out
}

// page returns the rows of page p and the page count.
func page(rows []EntityRow, p, perPage int) ([]EntityRow, int) {
	pages := max(1, (len(rows)+perPage-1)/perPage)
	p = min(max(p, 0), pages-1)
	start := p * perPage
	end := min(start+perPage, len(rows))
	return rows[start:end], pages
}

type entityPanel struct {
	view       *ecs.View[entityItem]
	perPage    int
	current    int
	filter     string
	sortColumn int
	ascending  bool
}

// NewEntityPanel lists ships, meteors and bullets with their motion.
func NewEntityPanel(storage *ecs.Storage, perPage int) Panel {
	p := &entityPanel{
		view:      ecs.NewView[entityItem](storage),
		perPage:   perPage,
		ascending: true,
	}
	return Panel{Name: "entities", Render: p.render}
}

func (p *entityPanel) render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(360, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 320), imgui.CondOnce)
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "ship, meteor, bullet...", &p.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		p.filter = ""
	}

	rows := filterRows(collectRows(p.view), p.filter)
	sortRows(rows, p.sortColumn, p.ascending)
	visible, pages := page(rows, p.current, p.perPage)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 6, tableFlags, imgui.NewVec2(0, -30), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Heading")
		imgui.TableSetupColumn("Speed")
		imgui.TableSetupColumn("Size")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			p.sortColumn = int(spec.ColumnIndex())
			p.ascending = spec.SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}

		for _, r := range visible {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", r.ID))
			imgui.TableNextColumn()
			imgui.Text(r.Kind)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f, %.1f", r.X, r.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.3f", r.Heading))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f", r.Speed))
			imgui.TableNextColumn()
			if r.Size > 0 {
				imgui.Text(fmt.Sprintf("%d", r.Size))
			}
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", min(p.current+1, pages), pages, len(rows)))
	imgui.SameLine()
	if imgui.Button("Prev") && p.current > 0 {
		p.current--
	}
	imgui.SameLine()
	if imgui.Button("Next") && p.current < pages-1 {
		p.current++
	}

	imgui.End()
}
