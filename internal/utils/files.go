package utils

import (
	"os"
	"path/filepath"
	"strings"
)

func GetFilename(filePath string) string {
	base := filepath.Base(filePath)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}

func OpenFile(makeDir bool, outputPath, subdir, name string) (*os.File, error) {
	if makeDir && subdir != "" && subdir != "." {
		os.MkdirAll(outputPath+subdir, 0750)
		return os.Create(outputPath + subdir + "/" + name + ".csv")
	}
	if subdir != "" {
		name = name + "_" + subdir
	}
	return os.Create(outputPath + name + ".csv")
}
