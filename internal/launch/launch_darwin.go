//go:build darwin

package launch

import "fmt"

func open(path string) error {
	return start("open", path)
}

func runElevated(path string) error {
	script := fmt.Sprintf(`do shell script quoted form of %s with administrator privileges`, appleScriptString(path))
	return start("osascript", "-e", script)
}
