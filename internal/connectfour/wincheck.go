package connectfour

import "github.com/rocketscienceinc/connectfour-backend/internal/entity"

// axis is a direction step; its opposite is walked as well.
type axis struct {
	dRow, dCol int
}

var axes = [4]axis{
	{dRow: 0, dCol: 1},  // horizontal
	{dRow: 1, dCol: 0},  // vertical
	{dRow: 1, dCol: 1},  // down diagonal
	{dRow: 1, dCol: -1}, // up diagonal
}

// CheckWin - reports whether player owns runLength contiguous slots on any axis through last.
func CheckWin(grid *entity.Grid, last entity.Position, player entity.PlayerID, runLength int) bool {
	return len(WinningLine(grid, last, player, runLength)) > 0
}

// WinningLine returns the run through last that satisfies runLength, ordered along its axis,
// or nil when there is none.
func WinningLine(grid *entity.Grid, last entity.Position, player entity.PlayerID, runLength int) []entity.Position {
	if owner, ok := grid.OccupantAt(last.Row, last.Col); !ok || owner != player {
		return nil
	}

	for _, a := range axes {
		backward := countRun(grid, last, player, -a.dRow, -a.dCol)
		forward := countRun(grid, last, player, a.dRow, a.dCol)

		if 1+backward+forward < runLength {
			continue
		}

		line := make([]entity.Position, 0, 1+backward+forward)
		for step := -backward; step <= forward; step++ {
			line = append(line, entity.Position{
				Row: last.Row + step*a.dRow,
				Col: last.Col + step*a.dCol,
			})
		}

		return line
	}

	return nil
}

// countRun counts slots owned by player walking from start (exclusive) by (dRow, dCol).
func countRun(grid *entity.Grid, start entity.Position, player entity.PlayerID, dRow, dCol int) int {
	count := 0
	row, col := start.Row+dRow, start.Col+dCol

	for {
		owner, ok := grid.OccupantAt(row, col)
		if !ok || owner != player {
			return count
		}

		count++
		row += dRow
		col += dCol
	}
}
