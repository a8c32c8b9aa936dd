package utils

import (
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/facette/natsort"
)

type CSV [][]string

func (data CSV) Less(i, j int) bool {
	return natsort.Compare(data[i][0], data[j][0])
}

func (data CSV) Len() int {
	return len(data)
}
func (data CSV) Swap(i, j int) {
	data[i], data[j] = data[j], data[i]
}

// WriteAsCSV saves data under path (see OpenFile for the layout), first
// column in natural order, header row on top.
func WriteAsCSV(data CSV, makeDir bool, path, subdir, name string, columns []string) error {
	file, err := OpenFile(makeDir, path, subdir, GetFilename(name))
	if err != nil {
		return fmt.Errorf("unable to save %s: %w", name, err)
	}
	defer file.Close()

	sort.Sort(data)
	w := csv.NewWriter(file)
	w.Write(columns)
	w.WriteAll(data)
	w.Flush()
	return w.Error()
}
