// Package dnatraits opens consumer genome exports wherever they live: local
// files or Google Storage objects, plain or compressed, tab or comma
// delimited. Parsing the rows is left to the rawgenome package.
package dnatraits

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return "", pfx.Err(err)
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path, nil
}
