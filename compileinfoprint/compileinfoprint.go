// compileinfoprint is imported by every dnatraits command for the side effect
// of printing the compileinfo to os.StdErr
package compileinfoprint

import "github.com/carbocation/dnatraits/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
