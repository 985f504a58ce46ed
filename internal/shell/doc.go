// Package shell opens directories in the platform file browser.
package shell
