// Package preflight provides readiness checks for the directories, tools, and
// remote services the launcher depends on.
//
// The CLI "ssmt doctor" command runs RunAll and renders the results. Checks
// never modify anything; a failing check reports why in Detail.
package preflight
