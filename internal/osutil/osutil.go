// Package osutil holds the few platform facts shared across packages.
package osutil

const Windows = "windows"

// DirPermission is the mode for application-owned directories.
const DirPermission = 0o755
