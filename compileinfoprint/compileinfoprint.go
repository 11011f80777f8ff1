// compileinfoprint is imported by the gdsc commands for the side effect of
// printing the compileinfo to os.Stderr at startup.
package compileinfoprint

import "github.com/carbocation/gdsc/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
