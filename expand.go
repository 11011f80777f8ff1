package gdsc

import (
	"log"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Println(pfx.Err(err))
			return path
		}
		if path == "~" {
			return usr.HomeDir
		}
		path = filepath.Join(usr.HomeDir, path[2:])
	}

	return path
}
