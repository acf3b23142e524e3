// Package cli provides the interactive command-line client for the blog API.
//
// It wires configuration, the local session store, the API services and a
// read-eval-print loop. On start it restores a saved session if there is
// one, starts a background reachability watcher against /health, and then
// executes user commands until "exit".
//
// Commands:
//   - signup, login, logout, whoami
//   - profile, profile edit
//   - posts, post, delete <id>
//   - help, exit
package cli
