// SPDX-License-Identifier: MPL-2.0

//go:build windows

package discovery

import "syscall"

func hasHiddenAttribute(path string) bool {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&syscall.FILE_ATTRIBUTE_HIDDEN != 0
}
