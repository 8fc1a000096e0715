package files

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var digits = regexp.MustCompile(`\d+`)

// SortNumeric orders names by the number formed by their digits, so that
// page2 comes before page10. Names without digits come first, in lexical
// order; equal numbers fall back to lexical order too.
func SortNumeric(names []string) {
	number := func(s string) (int, bool) {
		match := strings.Join(digits.FindAllString(s, -1), "")
		if match == "" {
			return 0, false
		}
		n, err := strconv.Atoi(match)
		return n, err == nil
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, iok := number(names[i])
		nj, jok := number(names[j])
		switch {
		case iok != jok:
			return jok
		case iok && ni != nj:
			return ni < nj
		}
		return names[i] < names[j]
	})
}

// Entries lists the images stored in a container, in reading order.
func Entries(archive Archive) ([]string, error) {
	content, err := archive.List()
	if err != nil {
		return nil, err
	}
	_, isPDF := archive.(*pdfArchive)
	names := lo.Filter(content, func(name string, _ int) bool {
		if strings.HasPrefix(name, "__MACOSX") {
			return false
		}
		return isPDF || IsImage(name)
	})
	SortNumeric(names)
	return names, nil
}

// Expand turns command line arguments into image paths: directories become
// the images they hold, containers become their entries. Anything else is
// kept as given and left for the decoder to reject.
func (l *Library) Expand(args []string) []string {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err != nil:
			out = append(out, arg)

		case info.IsDir():
			dirEntries, err := os.ReadDir(arg)
			if err != nil {
				log.Printf("Unable to read %s: %v", arg, err)
				continue
			}
			images := lo.FilterMap(dirEntries, func(e os.DirEntry, _ int) (string, bool) {
				return filepath.Join(arg, e.Name()), !e.IsDir() && IsImage(e.Name())
			})
			out = append(out, images...)

		case IsArchive(arg):
			a, err := l.archive(arg)
			if err != nil {
				log.Printf("Unable to open %s: %v", arg, err)
				continue
			}
			names, err := Entries(a)
			if err != nil {
				log.Printf("Unable to list %s: %v", arg, err)
				continue
			}
			out = append(out, lo.Map(names, func(name string, _ int) string {
				return Join(arg, name)
			})...)

		default:
			out = append(out, arg)
		}
	}
	return out
}
