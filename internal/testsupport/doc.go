// Package testsupport provides shared builders for tests: temp-rooted
// configs, file and image writers, and store openers.
package testsupport
