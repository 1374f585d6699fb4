// SPDX-License-Identifier: MPL-2.0

// Package source indexes the module files under a source tree.
//
// A module is identified by its file name with the configured suffix removed
// ("scene/Camera.js" is module "Camera"). Directories do not namespace
// modules, so two files with the same base name collide; the DuplicatePolicy
// decides whether the last one scanned wins or the build fails.
package source
