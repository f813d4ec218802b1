// Package main rewrites enumer-generated files to report errors through
// cockroachdb/errors instead of fmt.Errorf.
package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	errorsImport    = `"github.com/cockroachdb/errors"`
	filePermissions = 0o644
)

var (
	errUsage = errors.New("usage: enumerfix <file>...")

	importBlock = regexp.MustCompile(`import \(\n([\s\S]*?)\n\)`)
	fmtUses     = regexp.MustCompile(`\bfmt\.[A-Z]\w*`)
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "enumerfix: %v\n", err)
		os.Exit(1)
	}
}

func run(files []string) error {
	if len(files) == 0 {
		return errUsage
	}

	for _, name := range files {
		if err := fixFile(name); err != nil {
			return err
		}
	}

	return nil
}

func fixFile(name string) error {
	//nolint:gosec // G304: path comes from go:generate
	content, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	fixed := fixEnumerFile(content)
	if string(fixed) == string(content) {
		return nil
	}

	return errors.Wrapf(os.WriteFile(name, fixed, filePermissions), "writing %s", name)
}

// fixEnumerFile swaps fmt.Errorf for errors.Newf and fixes the imports. The
// fmt import is kept only while other fmt identifiers remain in use.
func fixEnumerFile(content []byte) []byte {
	src := string(content)
	if !strings.Contains(src, "fmt.Errorf") {
		return content
	}

	src = strings.ReplaceAll(src, "fmt.Errorf", "errors.Newf")

	if fmtUses.MatchString(src) {
		return []byte(addImport(src, errorsImport))
	}

	return []byte(replaceImport(src, `"fmt"`, errorsImport))
}

func addImport(src, path string) string {
	match := importBlock.FindStringSubmatch(src)
	if match == nil || strings.Contains(match[1], path) {
		return src
	}

	return strings.Replace(src, match[0], "import (\n"+match[1]+"\n\t"+path+"\n)", 1)
}

func replaceImport(src, oldPath, newPath string) string {
	if strings.Contains(src, "import "+oldPath) {
		return strings.Replace(src, "import "+oldPath, "import "+newPath, 1)
	}

	return strings.Replace(src, "\t"+oldPath, "\t"+newPath, 1)
}
