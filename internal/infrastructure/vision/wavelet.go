package vision

// dwt2Haar выполняет один уровень двумерного вейвлет-преобразования Хаара.
// Каждый одномерный шаг масштабируется на 1/sqrt(2); нечётные размеры
// дополняются краевыми значениями до чётных, поэтому суб-полосы имеют
// размер ceil(n/2) по каждой оси.
func dwt2Haar(values [][]float64) (cA, cH, cV, cD [][]float64) {
	src := padToEven(values)
	outRows := len(src) / 2
	outCols := len(src[0]) / 2

	cA = newGrid(outRows, outCols)
	cH = newGrid(outRows, outCols)
	cV = newGrid(outRows, outCols)
	cD = newGrid(outRows, outCols)

	for y := 0; y < outRows; y++ {
		for x := 0; x < outCols; x++ {
			a := src[2*y][2*x]
			b := src[2*y][2*x+1]
			c := src[2*y+1][2*x]
			d := src[2*y+1][2*x+1]

			cA[y][x] = (a + b + c + d) / 2
			cH[y][x] = (a + b - c - d) / 2
			cV[y][x] = (a - b + c - d) / 2
			cD[y][x] = (a - b - c + d) / 2
		}
	}
	return cA, cH, cV, cD
}

// padToEven дополняет матрицу копией последней строки и столбца до чётных размеров.
func padToEven(values [][]float64) [][]float64 {
	rows := len(values)
	cols := len(values[0])
	if rows%2 == 0 && cols%2 == 0 {
		return values
	}

	padRows := rows + rows%2
	padCols := cols + cols%2

	out := make([][]float64, padRows)
	for y := 0; y < padRows; y++ {
		srcY := y
		if srcY >= rows {
			srcY = rows - 1
		}
		row := make([]float64, padCols)
		copy(row, values[srcY])
		if padCols > cols {
			row[cols] = values[srcY][cols-1]
		}
		out[y] = row
	}
	return out
}

func newGrid(rows, cols int) [][]float64 {
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}
	return out
}
