package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/t0mdavid-m/seqviz/pkg/cluster"
	"github.com/t0mdavid-m/seqviz/pkg/config"
	"github.com/t0mdavid-m/seqviz/pkg/dendro"
	"github.com/t0mdavid-m/seqviz/pkg/pipeline"
)

// newPreviewCmd creates the interactive terminal preview command.
func newPreviewCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Preview a dendrogram in the terminal",
		Long: `Preview renders an ASCII dendrogram directly in the terminal.
Use o to cycle orientations, t to cycle distance transforms, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var popts pipeline.Options
			if err := pipeline.DetectInput(data, &popts); err != nil {
				return err
			}
			tree, err := parseInputTree(popts)
			if err != nil {
				return err
			}

			model := newPreviewModel(tree, cfg.Render.Orientation, cfg.Render.Transform)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

func parseInputTree(opts pipeline.Options) (*cluster.Tree, error) {
	if opts.Newick != "" {
		return cluster.ParseNewick(opts.Newick)
	}
	return cluster.FromLinkage(opts.Labels, opts.Merges)
}

// orientationCycle and transformCycle fix the key-cycling order.
var (
	orientationCycle = []string{"left-right", "right-left", "top-bottom", "bottom-top"}
	transformCycle   = []string{"identity", "sqrt", "log"}
)

// previewModel is the bubbletea model for the terminal dendrogram viewer.
type previewModel struct {
	tree        *cluster.Tree
	orientation int // index into orientationCycle
	transform   int // index into transformCycle
	width       int
	height      int
}

func newPreviewModel(tree *cluster.Tree, orientation, transform string) previewModel {
	m := previewModel{tree: tree, width: 80, height: 24}
	for i, o := range orientationCycle {
		if o == orientation {
			m.orientation = i
		}
	}
	for i, t := range transformCycle {
		if t == transform {
			m.transform = i
		}
	}
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "o":
			m.orientation = (m.orientation + 1) % len(orientationCycle)
		case "t":
			m.transform = (m.transform + 1) % len(transformCycle)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("seqviz preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %s", orientationCycle[m.orientation], transformCycle[m.transform])))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("o orientation  t transform  q quit"))
	b.WriteString("\n\n")

	plotW := m.width - 2
	plotH := m.height - 5
	if plotW < 20 {
		plotW = 20
	}
	if plotH < 8 {
		plotH = 8
	}

	art, err := asciiDendrogram(m.tree, orientationCycle[m.orientation], transformCycle[m.transform], plotW, plotH)
	if err != nil {
		b.WriteString(StyleWarning.Render(err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(art)
	return b.String()
}

// asciiDendrogram renders the tree as character art. The layout engine
// produces the geometry; this only rasterizes segments onto a rune grid.
func asciiDendrogram(tree *cluster.Tree, orientation, transform string, width, height int) (string, error) {
	o, err := dendro.ParseOrientation(orientation)
	if err != nil {
		return "", err
	}
	tf, err := dendro.ParseTransform(transform)
	if err != nil {
		return "", err
	}

	res, err := dendro.Layout(tree,
		dendro.WithOrientation(o),
		dendro.WithTransform(tf),
		dendro.WithAllowNonMonotonic(),
	)
	if err != nil {
		return "", err
	}

	// In the vertical orientations the leaf axis runs down the terminal,
	// one leaf per row, with the tree growing rightward; those rows get
	// inline labels. The horizontal orientations spread leaves across
	// columns where labels will not fit.
	rowPerLeaf := orientation == "top-bottom" || orientation == "bottom-top"
	labelW := 0
	if rowPerLeaf {
		for _, l := range res.LeafOrder {
			if len(l) > labelW {
				labelW = len(l)
			}
		}
		if labelW > width/3 {
			labelW = width / 3
		}
	}

	grid := newRuneGrid(res, width-labelW-1, height)
	for _, s := range res.Segments {
		grid.drawSegment(s)
	}

	lines := grid.lines()
	if rowPerLeaf {
		attachLeafLabels(lines, grid, res, labelW)
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// runeGrid rasterizes axis-parallel segments onto a character grid.
type runeGrid struct {
	cells      [][]rune
	cols, rows int
	minX, minY float64
	spanX      float64
	spanY      float64
}

func newRuneGrid(res *dendro.Result, cols, rows int) *runeGrid {
	if cols < 4 {
		cols = 4
	}
	if rows < 2 {
		rows = 2
	}
	minX, maxX := res.Coords[0].X, res.Coords[0].X
	minY, maxY := res.Coords[0].Y, res.Coords[0].Y
	for _, p := range res.Coords {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	g := &runeGrid{
		cols: cols, rows: rows,
		minX: minX, minY: minY,
		spanX: maxX - minX, spanY: maxY - minY,
	}
	g.cells = make([][]rune, rows)
	for i := range g.cells {
		g.cells[i] = make([]rune, cols)
		for j := range g.cells[i] {
			g.cells[i][j] = ' '
		}
	}
	return g
}

// cell maps a plot coordinate to a grid cell. Y grows downward on the
// terminal, so the plot Y axis is flipped.
func (g *runeGrid) cell(p dendro.Point) (col, row int) {
	fx, fy := 0.0, 0.0
	if g.spanX > 0 {
		fx = (p.X - g.minX) / g.spanX
	}
	if g.spanY > 0 {
		fy = (p.Y - g.minY) / g.spanY
	}
	col = int(fx * float64(g.cols-1))
	row = int((1 - fy) * float64(g.rows-1))
	return col, row
}

func (g *runeGrid) drawSegment(s dendro.Segment) {
	c0, r0 := g.cell(s.From)
	c1, r1 := g.cell(s.To)
	switch {
	case r0 == r1:
		for c := min(c0, c1); c <= max(c0, c1); c++ {
			g.set(c, r0, '─')
		}
	case c0 == c1:
		for r := min(r0, r1); r <= max(r0, r1); r++ {
			g.set(c0, r, '│')
		}
	default:
		// Slanted brackets degrade to a stepped line.
		for c := min(c0, c1); c <= max(c0, c1); c++ {
			g.set(c, r0, '─')
		}
		for r := min(r0, r1); r <= max(r0, r1); r++ {
			g.set(max(c0, c1), r, '│')
		}
	}
}

func (g *runeGrid) set(col, row int, r rune) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	// Crossing runs become junctions.
	cur := g.cells[row][col]
	if (cur == '─' && r == '│') || (cur == '│' && r == '─') {
		r = '┼'
	}
	g.cells[row][col] = r
}

func (g *runeGrid) lines() []string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		lines[i] = string(row)
	}
	return lines
}

// attachLeafLabels prefixes each grid row with its leaf label. Leaves sit
// at the low end of the distance axis, which rasterizes to the left edge,
// so labels always go on the left.
func attachLeafLabels(lines []string, g *runeGrid, res *dendro.Result, labelW int) {
	if labelW == 0 {
		return
	}
	labels := make(map[int]string, len(res.LeafIndices))
	for i, idx := range res.LeafIndices {
		label := res.LeafOrder[i]
		if len(label) > labelW {
			label = label[:labelW]
		}
		_, row := g.cell(res.Coords[idx])
		labels[row] = label
	}
	for row := range lines {
		lines[row] = fmt.Sprintf("%*s ", labelW, labels[row]) + lines[row]
	}
}
