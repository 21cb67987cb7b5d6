//go:build !windows && !darwin

package launch

func open(path string) error {
	return start("xdg-open", path)
}

func runElevated(path string) error {
	return start("pkexec", path)
}
