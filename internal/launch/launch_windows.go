//go:build windows

package launch

import "golang.org/x/sys/windows"

func open(path string) error {
	return shellExecute("open", path)
}

func runElevated(path string) error {
	return shellExecute("runas", path)
}

func shellExecute(verb, path string) error {
	verbPtr, err := windows.UTF16PtrFromString(verb)
	if err != nil {
		return err
	}
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.ShellExecute(0, verbPtr, pathPtr, nil, nil, windows.SW_SHOWNORMAL)
}
