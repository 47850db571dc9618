// Package pathutils resolves user-supplied directories, expanding the home
// shortcut and anchoring relative paths at the configuration file that named them.
package pathutils
